package combat

import (
	"ringsim/internal/effects"
	"ringsim/internal/fighter"
)

// ReactionResolver forwards fight events to the effects registry and reports
// every effect the registry applied in response.
type ReactionResolver struct {
	Effects *effects.Registry
	Emit    func(ev Event)
	TimeNow func() float64

	OnApplied func(a effects.Applied, source string)
}

func NewReactionResolver(reg *effects.Registry, now func() float64, emit func(Event)) *ReactionResolver {
	return &ReactionResolver{Effects: reg, TimeNow: now, Emit: emit}
}

func (rr *ReactionResolver) report(source string, applied []effects.Applied) {
	now := rr.TimeNow()
	for _, a := range applied {
		payload := map[string]any{"fighter": a.FighterID, "effect": string(a.Type), "source": source}
		if e, ok := rr.Effects.Get(a.FighterID, a.Type); ok {
			payload["intensity"] = e.Intensity
			payload["stacks"] = e.Stacks
			payload["duration"] = e.Duration
		}
		rr.Emit(Event{T: now, Type: EvEffectApplied, Payload: payload})
		if rr.OnApplied != nil {
			rr.OnApplied(a, source)
		}
	}
}

func (rr *ReactionResolver) PunchLanded(att, def *fighter.Fighter, dmg int, p fighter.PunchType) {
	rr.report("punch_landed", rr.Effects.OnPunchLanded(att, def, dmg, p))
}

func (rr *ReactionResolver) Hurt(att, def *fighter.Fighter) {
	rr.report("hurt", rr.Effects.OnHurt(att, def))
}

func (rr *ReactionResolver) Knockdown(att, def *fighter.Fighter) {
	rr.report("knockdown", rr.Effects.OnKnockdown(att, def))
}

func (rr *ReactionResolver) Recovery(f *fighter.Fighter) {
	rr.report("recovery", rr.Effects.OnRecovery(f))
}

func (rr *ReactionResolver) CutOpened(f *fighter.Fighter, severity int) {
	rr.report("cut", rr.Effects.OnCutOpened(f, severity))
}

func (rr *ReactionResolver) HighOutput(f *fighter.Fighter, punches int) {
	rr.report("high_output", rr.Effects.OnHighOutput(f, punches))
}

func (rr *ReactionResolver) LowStamina(f *fighter.Fighter) {
	rr.report("low_stamina", rr.Effects.OnLowStamina(f))
}

func (rr *ReactionResolver) FocusCheck(f *fighter.Fighter) {
	rr.report("focus", rr.Effects.OnFocusLapse(f))
}

func (rr *ReactionResolver) BehindOnCards(f *fighter.Fighter, deficit float64, roundsLeft int) {
	rr.report("scorecards", rr.Effects.OnBehindOnCards(f, deficit, roundsLeft))
}

func (rr *ReactionResolver) Domination(dominant, dominated *fighter.Fighter) {
	rr.report("domination", rr.Effects.OnDomination(dominant, dominated))
}

// OpeningBell rolls the first-round effects for both fighters.
func (rr *ReactionResolver) OpeningBell(a, b *fighter.Fighter, titleFight bool) {
	for _, f := range []*fighter.Fighter{a, b} {
		rr.report("opening_bell", rr.Effects.OnFastStart(f))
		rr.report("opening_bell", rr.Effects.OnBigFight(f, titleFight))
	}
	rr.report("opening_bell", rr.Effects.OnIntimidation(a, b))
	rr.report("opening_bell", rr.Effects.OnIntimidation(b, a))
}
