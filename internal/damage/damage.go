// Package damage turns landed punches into damage and injury outcomes.
//
// Every method is a pure function of its inputs; the random source is passed
// in by the caller for the probabilistic checks.
package damage

import (
	"math"
	"math/rand"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

// Hit describes one landed punch.
type Hit struct {
	Punch     fighter.PunchType
	Target    fighter.Target
	Base      float64 // pre-resistance damage, see Resolver.BaseDamage
	IsCounter bool
	Blocked   bool
}

type Resolver struct {
	cfg config.DamageConfig
}

func NewResolver(cfg config.DamageConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// BaseDamage is the raw damage of a punch thrown by attacker, before the
// defender is considered. powerBonus comes from effect modifiers.
func (r *Resolver) BaseDamage(p fighter.PunchType, attacker *fighter.Fighter, powerBonus float64) float64 {
	base, ok := r.cfg.BaseDamage[p]
	if !ok {
		base = r.cfg.BaseDamage[fighter.Jab]
	}
	power := attacker.Rating(fighter.BuffPower, attacker.Power.KnockoutPower) / 100
	return base * (r.cfg.PowerFloor + power*r.cfg.PowerScale) * (1 + powerBonus)
}

// Resistance is the fraction of damage the defender shrugs off, in [0, ResistanceMax].
func (r *Resolver) Resistance(defender *fighter.Fighter) float64 {
	res := defender.Attr(defender.Defense.Blocking)/100*r.cfg.BlockingWeight +
		defender.Attr(defender.Mental.Experience)/100*r.cfg.ExperienceWeight +
		r.cfg.BodyTypeResistance[defender.Physical.BodyType]
	return util.Clamp(res, 0, r.cfg.ResistanceMax)
}

// CalculateDamage resolves a hit into integer damage, never less than 1.
func (r *Resolver) CalculateDamage(hit Hit, attacker, defender *fighter.Fighter) int {
	dmg := hit.Base
	if math.IsNaN(dmg) || dmg < 0 {
		dmg = 0
	}
	dmg *= 1 - r.Resistance(defender)

	if hit.Target == fighter.TargetHead {
		chin := defender.Attr(defender.Mental.Chin)
		dmg *= 1 + (50-chin)/100*r.cfg.ChinWeight
	}

	// tired arms lose snap; punching stamina keeps some of it
	if pct := attacker.StaminaPercent(); pct < r.cfg.FatigueStart {
		retention := attacker.Attr(attacker.Power.PunchingStamina) / 100 * r.cfg.StaminaRetention
		dmg *= 1 - (r.cfg.FatigueStart-pct)*(1-retention)
	}

	if hit.Blocked {
		dmg *= r.cfg.BlockedDamageFraction
	}

	out := int(math.Round(dmg))
	if out < 1 {
		return 1
	}
	return out
}

// CheckHurt decides whether a shot leaves the defender hurt. Only shots above
// a threshold that shrinks with accumulated damage qualify, and then two
// independent gates resisted by chin and composure must both pass.
func (r *Resolver) CheckHurt(rng *rand.Rand, damage int, defender *fighter.Fighter) bool {
	chin := defender.Attr(defender.Mental.Chin)
	threshold := (r.cfg.HurtThreshold + chin*r.cfg.HurtChinWeight) *
		(1 - defender.HeadDamagePercent()*r.cfg.HurtDamageErosion)
	if float64(damage) < threshold {
		return false
	}
	chinGate := r.cfg.HurtGate * (1 - chin/100*r.cfg.HurtChinResist)
	composure := defender.Attr(defender.Mental.Composure)
	composureGate := r.cfg.HurtComposureGate * (1 - composure/100*r.cfg.HurtComposureResist)
	return util.Chance(rng, chinGate) && util.Chance(rng, composureGate)
}

// KnockdownThreshold is the damage a single shot must exceed to threaten a knockdown.
func (r *Resolver) KnockdownThreshold(defender *fighter.Fighter) float64 {
	t := r.cfg.KnockdownBase +
		defender.Attr(defender.Mental.Chin)*r.cfg.KnockdownChin +
		defender.Attr(defender.Mental.Experience)*r.cfg.KnockdownExperience
	t *= 1 - defender.HeadDamagePercent()*r.cfg.KnockdownErosion
	if defender.StaminaPercent() < r.cfg.KnockdownLowStamina {
		t *= 0.85
	}
	if defender.IsHurt {
		t *= r.cfg.KnockdownHurtFactor
	}
	return t
}

// KnockdownChance returns the probability that this hit drops the defender, in [0, KnockdownMax].
func (r *Resolver) KnockdownChance(damage int, hit Hit, defender *fighter.Fighter) float64 {
	if hit.Blocked {
		return 0
	}
	threshold := r.KnockdownThreshold(defender)
	if threshold <= 0 {
		threshold = 1
	}
	overage := float64(damage) - threshold
	if overage <= 0 {
		return 0
	}
	chance := overage / threshold * 0.5
	if hit.Punch.IsHook() || hit.Punch.IsUppercut() {
		chance *= r.cfg.KnockdownPowerAmp
	}
	if hit.IsCounter {
		chance *= r.cfg.KnockdownCounterAmp
	}
	chance *= 1 - defender.Attr(defender.Mental.Chin)/100*r.cfg.KnockdownChinResist
	return util.Clamp(chance, 0, r.cfg.KnockdownMax)
}

// RecoveryChance is the chance a downed fighter beats the count when trying
// to rise at standingCount. knockdowns includes the current one.
func (r *Resolver) RecoveryChance(f *fighter.Fighter, knockdowns, standingCount int) float64 {
	chance := 0.35 +
		f.Attr(f.Mental.Chin)/100*0.2 +
		f.Attr(f.Mental.Heart)/100*0.25 +
		f.Attr(f.Mental.Experience)/100*0.1
	chance -= f.HeadDamagePercent() * 0.3
	chance -= (1 - f.StaminaPercent()) * 0.15
	if standingCount > 0 && standingCount <= 4 {
		// an early attempt after a flash knockdown
		chance += 0.05
	}
	if knockdowns > 1 {
		chance *= math.Pow(r.cfg.RecoveryRepeatDecay, float64(knockdowns-1))
	}
	return util.Clamp(chance, r.cfg.RecoveryMin, r.cfg.RecoveryMax)
}

// TKOProbability is the per-check chance the referee or corner stops the fight.
func (r *Resolver) TKOProbability(f *fighter.Fighter, protectiveness float64) float64 {
	p := 0.0
	switch head := f.HeadDamagePercent(); {
	case head > 0.9:
		p += 0.25
	case head > 0.75:
		p += 0.1
	case head > 0.6:
		p += 0.04
	}
	if f.IsHurt {
		p += math.Min(0.15, float64(f.HurtTicks)*0.01)
	}
	switch kd := f.KnockdownsThisRound; {
	case kd >= 3:
		p += 0.6
	case kd == 2:
		p += 0.2
	case kd == 1:
		p += 0.05
	}
	switch f.MaxCutSeverity() {
	case 4:
		p += 0.15
	case 3:
		p += 0.05
	}
	p *= 0.5 + util.Clamp01(protectiveness)
	return util.Clamp01(p)
}

// BetweenRoundRecovery heals part of the accumulated damage during the minute's rest.
func (r *Resolver) BetweenRoundRecovery(f *fighter.Fighter) {
	rate := r.cfg.BetweenRoundRecovery * (0.5 + f.Attr(f.Stamina.RecoveryRate)/100)
	f.HeadDamage *= 1 - rate
	f.BodyDamage *= 1 - rate*0.5
	if f.HeadDamage < 0 {
		f.HeadDamage = 0
	}
	if f.BodyDamage < 0 {
		f.BodyDamage = 0
	}
}
