// Package stamina owns the energy economy: what actions cost, how fighters
// recover, fatigue tier penalties and the one-shot second wind.
package stamina

import (
	"log/slog"
	"math"
	"math/rand"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

// Reason explains why an action was refused.
type Reason string

const (
	ReasonOK            Reason = ""
	ReasonInsufficient  Reason = "insufficient_stamina"
	ReasonComboTooTired Reason = "too_tired_for_combination"
	ReasonPowerTooTired Reason = "too_tired_for_power"
	ReasonDown          Reason = "fighter_down"
)

type Check struct {
	CanPerform bool
	Reason     Reason
}

// Economy is per fight: it remembers which fighters already used their
// second wind.
type Economy struct {
	cfg        config.StaminaConfig
	secondWind map[string]bool
}

func NewEconomy(cfg config.StaminaConfig) *Economy {
	return &Economy{cfg: cfg, secondWind: map[string]bool{}}
}

// BaseCost is the table cost of an action before fighter multipliers.
func (e *Economy) BaseCost(a fighter.Action, subState fighter.SubState) float64 {
	switch a.Kind {
	case fighter.ActionPunch:
		cost := 0.0
		for _, p := range a.Punches() {
			cost += e.punchCost(p)
		}
		if n := len(a.Punches()); n > 1 {
			cost += float64(n-1) * e.cfg.ComboSurcharge
		}
		return cost
	case fighter.ActionMove:
		return e.cfg.MoveCosts[a.Direction]
	case fighter.ActionBlock, fighter.ActionEvade:
		if c, ok := e.cfg.DefenseCosts[subState]; ok {
			return c
		}
		if a.Kind == fighter.ActionEvade {
			return e.cfg.DefenseCosts[fighter.SubHeadMovement]
		}
		return e.cfg.DefenseCosts[fighter.SubBlock]
	case fighter.ActionClinch:
		return e.cfg.ClinchCost
	}
	return 0
}

func (e *Economy) punchCost(p fighter.PunchType) float64 {
	if c, ok := e.cfg.PunchCosts[p]; ok {
		return c
	}
	return e.cfg.PunchCosts[fighter.Jab]
}

// ActionCost is what the action alone would cost this fighter right now.
func (e *Economy) ActionCost(f *fighter.Fighter, a fighter.Action) float64 {
	return e.BaseCost(a, f.SubState) * e.Multiplier(f)
}

// Multiplier folds the fighter's conditioning into a cost multiplier.
func (e *Economy) Multiplier(f *fighter.Fighter) float64 {
	workRate := math.Max(e.cfg.WorkRateFloor, 1.2-f.Attr(f.Stamina.WorkRate)/100*0.85)
	pace := math.Max(e.cfg.PaceFloor, 1.1-f.Attr(f.Stamina.PaceControl)/100*0.4)
	body := 1 + f.BodyDamagePercent()*e.cfg.BodyDamageWeight
	feedback := 1 + (1-f.StaminaPercent())*e.cfg.FatigueFeedback
	return workRate * pace * body * feedback
}

// Cost is what the decision will drain this tick, baseline included.
func (e *Economy) Cost(f *fighter.Fighter, d fighter.Decision, dt float64) float64 {
	raw := e.cfg.BaselineDrain*dt + e.BaseCost(d.Action, d.SubState)
	if f.IsHurt {
		raw += e.cfg.HurtSurcharge
	}
	return raw * e.Multiplier(f)
}

// Recovery is the stamina regained over dt in the decision's state.
func (e *Economy) Recovery(f *fighter.Fighter, d fighter.Decision, dt float64) float64 {
	if f.IsHurt || d.State == fighter.StateHurt || d.State == fighter.StateDown {
		return 0
	}
	base := e.cfg.RecoveryBase + f.Attr(f.Stamina.Cardio)/100*e.cfg.RecoveryCardio
	mult, ok := e.cfg.StateRecovery[d.State]
	if !ok {
		mult = 1
	}
	if d.Action.Kind == fighter.ActionWait && mult < 1 {
		mult = 1
	}
	decay := (1 - f.BodyDamagePercent()*0.4) * (1 - f.HeadDamagePercent()*0.2)
	return base * mult * decay * ageDecay(f.Age()) * dt
}

func ageDecay(age int) float64 {
	if age <= 30 {
		return 1
	}
	return math.Max(0.7, 1-float64(age-30)*0.02)
}

// Update charges the decision's cost, applies recovery and refreshes the
// fatigue tier. Stamina stays within [0, MaxStamina].
func (e *Economy) Update(f *fighter.Fighter, d fighter.Decision, dt float64) {
	if dt <= 0 || math.IsNaN(dt) {
		return
	}
	f.SpendStamina(e.Cost(f, d, dt))
	f.RecoverStamina(e.Recovery(f, d, dt))
	f.UpdateStaminaTier()
}

// CanPerformAction reports whether the fighter can afford the action now.
func (e *Economy) CanPerformAction(f *fighter.Fighter, a fighter.Action) Check {
	if f.State == fighter.StateDown {
		return Check{Reason: ReasonDown}
	}
	if !a.IsPunch() {
		return Check{CanPerform: true}
	}
	pct := f.StaminaPercent()
	if a.IsCombination() && pct < e.cfg.MinComboStamina {
		return Check{Reason: ReasonComboTooTired}
	}
	if pct < e.cfg.MinPowerStamina {
		for _, p := range a.Punches() {
			if p.IsPower() {
				return Check{Reason: ReasonPowerTooTired}
			}
		}
	}
	if e.ActionCost(f, a) > f.CurrentStamina {
		return Check{Reason: ReasonInsufficient}
	}
	return Check{CanPerform: true}
}

// GatedAlternative picks what a fighter does instead of a punch it cannot
// afford: tie up when close and able, rest when nearly empty, otherwise
// defend with whichever guard the fighter is better at.
func (e *Economy) GatedAlternative(f *fighter.Fighter, distance float64) fighter.Decision {
	if distance <= 2.5 && f.Attr(f.Defense.ClinchOffense) >= 40 {
		return fighter.Decision{
			State:    fighter.StateClinch,
			SubState: fighter.SubTieUp,
			Action:   fighter.Action{Kind: fighter.ActionClinch},
		}
	}
	if f.StaminaPercent() < e.cfg.MinPowerStamina || distance > 5 {
		return fighter.Decision{
			State:    fighter.StateDefensive,
			SubState: fighter.SubRecover,
			Action:   fighter.Wait(),
		}
	}
	if f.Attr(f.Defense.HeadMovement) > f.Attr(f.Defense.Blocking) {
		return fighter.Decision{
			State:    fighter.StateDefensive,
			SubState: fighter.SubHeadMovement,
			Action:   fighter.Action{Kind: fighter.ActionEvade},
		}
	}
	return fighter.Decision{
		State:    fighter.StateDefensive,
		SubState: fighter.SubBlock,
		Action:   fighter.Action{Kind: fighter.ActionBlock},
	}
}

// BetweenRounds restores stamina during the rest minute and returns the
// amount gained. The lump is capped at BetweenRoundCap of max stamina.
func (e *Economy) BetweenRounds(f *fighter.Fighter, cornerBonus float64) float64 {
	amount := f.MaxStamina*(e.cfg.BetweenRoundBase+f.Attr(f.Stamina.RecoveryRate)/100*e.cfg.BetweenRoundRate) + cornerBonus
	amount *= ageDecay(f.Age())
	amount = util.Clamp(amount, 0, f.MaxStamina*e.cfg.BetweenRoundCap)
	before := f.CurrentStamina
	f.RecoverStamina(amount)
	f.UpdateStaminaTier()
	return f.CurrentStamina - before
}

// Penalties returns the fatigue tier's attribute penalties, softened by
// heart: an elite heart removes up to HeartDampening of each penalty.
func (e *Economy) Penalties(f *fighter.Fighter) config.Penalty {
	p := e.cfg.TierPenalties[f.Tier]
	damp := 1 - f.Attr(f.Mental.Heart)/100*e.cfg.HeartDampening
	return config.Penalty{
		Power:    p.Power * damp,
		Speed:    p.Speed * damp,
		Accuracy: p.Accuracy * damp,
		Defense:  p.Defense * damp,
	}
}

// TrySecondWind rolls the one-shot late-fight revival. It only fires in
// championship rounds at low stamina and never twice for the same fighter.
func (e *Economy) TrySecondWind(rng *rand.Rand, f *fighter.Fighter, round, rounds int) bool {
	sw := e.cfg.SecondWind
	if e.secondWind[f.ID] || !fighter.InChampionshipRounds(round, rounds, sw.FromRound) ||
		f.StaminaPercent() >= sw.StaminaBelow || f.IsHurt {
		return false
	}
	chance := f.Attr(f.Stamina.SecondWind) / 100 * sw.BaseChance
	if heart := f.Attr(f.Mental.Heart); heart > 70 {
		chance += (heart - 70) / 30 * sw.HeartBonus
	}
	if !util.Chance(rng, chance) {
		return false
	}
	e.secondWind[f.ID] = true
	f.RecoverStamina(f.MaxStamina * sw.Restore)
	f.UpdateStaminaTier()
	for _, attr := range []string{fighter.BuffPower, fighter.BuffHandSpeed, fighter.BuffFootSpeed} {
		f.AddBuff(fighter.Buff{Name: "second_wind", Attribute: attr, Amount: sw.BuffAmount, Ticks: sw.BuffTicks})
	}
	slog.Debug("second wind", "fighter", f.ID, "round", round, "stamina", f.CurrentStamina)
	return true
}

// UsedSecondWind reports whether the fighter already had their second wind.
func (e *Economy) UsedSecondWind(id string) bool { return e.secondWind[id] }

// Reset forgets second-wind usage at the end of a fight.
func (e *Economy) Reset() { e.secondWind = map[string]bool{} }
