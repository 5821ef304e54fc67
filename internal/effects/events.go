package effects

import (
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

// The On* handlers turn fight events into momentum and probabilistic effect
// applications. Each returns the effects it applied, as fighter id and type.

// Applied records one effect applied by an event handler.
type Applied struct {
	FighterID string
	Type      Type
}

func (r *Registry) roll(p float64) bool { return util.Chance(r.rng, p) }

func (r *Registry) apply(out []Applied, id string, t Type, intensity float64) []Applied {
	if _, ok := r.Apply(id, t, intensity, 0); ok {
		out = append(out, Applied{FighterID: id, Type: t})
	}
	return out
}

func rating(f *fighter.Fighter, v float64) float64 { return f.Attr(v) / 100 }

// OnPunchLanded reacts to a clean shot.
func (r *Registry) OnPunchLanded(attacker, defender *fighter.Fighter, damage int, punch fighter.PunchType) []Applied {
	var out []Applied
	r.AdjustMomentum(attacker.ID, 0.5+float64(damage)*0.15)

	if damage >= 15 && punch.IsPower() && r.roll(0.1+rating(attacker, attacker.Mental.KillerInstinct)*0.15) {
		out = r.apply(out, attacker.ID, Confidence, 0.5)
	}
	if damage >= 18 && r.roll(0.25*(1-rating(defender, defender.Mental.Composure))) {
		out = r.apply(out, defender.ID, Rattled, 0.5)
	}
	if r.Has(defender.ID, Focused) && damage >= 12 && r.roll(0.2) {
		r.Remove(defender.ID, Focused)
	}
	return out
}

// OnHurt reacts to a defender being hurt by attacker.
func (r *Registry) OnHurt(attacker, defender *fighter.Fighter) []Applied {
	var out []Applied
	r.AdjustMomentum(attacker.ID, 8)
	out = r.apply(out, defender.ID, Rattled, 0.8)
	if r.roll(rating(attacker, attacker.Mental.KillerInstinct)) {
		out = r.apply(out, attacker.ID, KillerMode, rating(attacker, attacker.Mental.KillerInstinct))
	}
	if r.roll(rating(defender, defender.Mental.Heart) * 0.5) {
		out = r.apply(out, defender.ID, Adrenaline, 0.6)
	}
	return out
}

// OnKnockdown reacts to attacker dropping defender.
func (r *Registry) OnKnockdown(attacker, defender *fighter.Fighter) []Applied {
	var out []Applied
	r.AdjustMomentum(attacker.ID, 20)
	out = r.apply(out, attacker.ID, Confidence, 0.8)
	if r.roll(util.Clamp01(rating(attacker, attacker.Mental.KillerInstinct) * 1.2)) {
		out = r.apply(out, attacker.ID, KillerMode, 1)
	}
	out = r.apply(out, defender.ID, Rattled, 1)
	if r.roll(1 - rating(defender, defender.Mental.Heart)) {
		out = r.apply(out, defender.ID, Hesitant, 0.7)
	}
	return out
}

// OnRecovery reacts to a fighter beating the count or shaking off being hurt.
func (r *Registry) OnRecovery(f *fighter.Fighter) []Applied {
	var out []Applied
	heart := rating(f, f.Mental.Heart)
	if r.roll(heart) {
		out = r.apply(out, f.ID, Adrenaline, heart)
	}
	if heart >= 0.7 {
		r.Remove(f.ID, Hesitant)
	}
	return out
}

// OnHighOutput reacts to a fighter throwing punches in the last window.
func (r *Registry) OnHighOutput(f *fighter.Fighter, punches int) []Applied {
	var out []Applied
	if punches < r.cfg.HighOutputPunches {
		return out
	}
	r.AdjustMomentum(f.ID, 2)
	if r.roll(0.2) {
		out = r.apply(out, f.ID, Confidence, 0.4)
	}
	if f.StaminaPercent() < 0.5 && r.roll((1-rating(f, f.Stamina.Cardio))*0.5) {
		out = r.apply(out, f.ID, HeavyLegs, 0.5)
	}
	return out
}

// OnLowStamina reacts to a fighter running low on gas.
func (r *Registry) OnLowStamina(f *fighter.Fighter) []Applied {
	var out []Applied
	if r.Has(f.ID, HeavyLegs) {
		return out
	}
	if r.roll(0.3 + (1-rating(f, f.Stamina.Cardio))*0.4) {
		out = r.apply(out, f.ID, HeavyLegs, 1-f.StaminaPercent())
	}
	return out
}

// OnBehindOnCards reacts to a fighter trailing by deficit points with
// roundsLeft rounds to go.
func (r *Registry) OnBehindOnCards(f *fighter.Fighter, deficit float64, roundsLeft int) []Applied {
	var out []Applied
	if deficit <= 0 {
		return out
	}
	if roundsLeft <= 3 && deficit >= 2 {
		if r.roll(0.3 + rating(f, f.Mental.ClutchFactor)*0.5) {
			out = r.apply(out, f.ID, Desperation, util.Clamp01(deficit/6))
		}
		return out
	}
	if r.roll((1 - rating(f, f.Mental.Composure)) * 0.3) {
		out = r.apply(out, f.ID, Frustrated, 0.5)
	}
	return out
}

// OnDomination reacts to one fighter clearly winning a stretch of the fight.
func (r *Registry) OnDomination(dominant, dominated *fighter.Fighter) []Applied {
	var out []Applied
	r.AdjustMomentum(dominant.ID, 5)
	out = r.apply(out, dominant.ID, Confidence, 0.6)
	if r.roll((1 - rating(dominated, dominated.Mental.Composure)) * 0.5) {
		out = r.apply(out, dominated.ID, Frustrated, 0.6)
	}
	if r.roll((1 - rating(dominated, dominated.Mental.Heart)) * 0.3) {
		out = r.apply(out, dominated.ID, Intimidated, 0.5)
	}
	return out
}

// OnCutOpened reacts to a new or worsened cut.
func (r *Registry) OnCutOpened(f *fighter.Fighter, severity int) []Applied {
	var out []Applied
	out = r.apply(out, f.ID, CutConcern, util.Clamp01(float64(severity)/4))
	if severity >= 3 && r.roll(1-rating(f, f.Mental.Composure)) {
		out = r.apply(out, f.ID, Hesitant, 0.5)
	}
	return out
}

// OnIntimidation is rolled at the opening bell: a feared puncher can get
// into the head of a less experienced opponent.
func (r *Registry) OnIntimidation(intimidator, target *fighter.Fighter) []Applied {
	var out []Applied
	threat := (rating(intimidator, intimidator.Power.KnockoutPower) + rating(intimidator, intimidator.Mental.KillerInstinct)) / 2
	resolve := (rating(target, target.Mental.Composure) + rating(target, target.Mental.Experience)) / 2
	if chance := threat - resolve; chance > 0 && r.roll(chance+0.1) {
		out = r.apply(out, target.ID, Intimidated, util.Clamp01(chance*2))
	}
	return out
}

// OnFocusLapse is rolled periodically; poorly focused fighters drift.
func (r *Registry) OnFocusLapse(f *fighter.Fighter) []Applied {
	var out []Applied
	if r.Has(f.ID, Focused) {
		return out
	}
	focus := rating(f, f.Mental.Focus)
	if r.roll((1 - focus) * 0.3) {
		return r.apply(out, f.ID, FocusLapse, 1-focus)
	}
	if r.roll(focus * 0.1) {
		out = r.apply(out, f.ID, Focused, focus)
	}
	return out
}

// OnFastStart is rolled at the first bell for front-runners.
func (r *Registry) OnFastStart(f *fighter.Fighter) []Applied {
	var out []Applied
	chance := rating(f, f.Mental.KillerInstinct) * 0.3
	switch f.Style.Primary {
	case "swarmer", "volume_puncher", "slugger":
		chance += 0.3
	}
	if r.roll(chance) {
		out = r.apply(out, f.ID, FastStart, 0.7)
	}
	return out
}

// OnBigFight is rolled at the opening bell of title fights.
func (r *Registry) OnBigFight(f *fighter.Fighter, titleFight bool) []Applied {
	var out []Applied
	if !titleFight {
		return out
	}
	clutch := rating(f, f.Mental.ClutchFactor)
	experience := rating(f, f.Mental.Experience)
	switch {
	case r.roll(clutch * 0.8):
		out = r.apply(out, f.ID, BigFight, clutch)
	case experience < 0.4 && r.roll(0.5-experience):
		out = r.apply(out, f.ID, Hesitant, 0.5)
	}
	return out
}
