package decision

import (
	"slices"

	"ringsim/internal/fighter"
	"ringsim/internal/position"
	"ringsim/internal/util"
)

// followUps lists the punches that flow naturally from each punch.
var followUps = map[fighter.PunchType][]fighter.PunchType{
	fighter.Jab:          {fighter.Jab, fighter.Cross, fighter.LeadHook, fighter.LeadUppercut, fighter.BodyJab, fighter.BodyCross},
	fighter.Cross:        {fighter.LeadHook, fighter.LeadUppercut, fighter.LeadBodyHook, fighter.Jab},
	fighter.LeadHook:     {fighter.Cross, fighter.RearHook, fighter.RearUppercut, fighter.BodyCross, fighter.LeadBodyHook},
	fighter.RearHook:     {fighter.LeadHook, fighter.LeadUppercut, fighter.Jab, fighter.LeadBodyHook},
	fighter.LeadUppercut: {fighter.Cross, fighter.RearHook, fighter.RearUppercut, fighter.LeadHook},
	fighter.RearUppercut: {fighter.LeadHook, fighter.Jab},
	fighter.BodyJab:      {fighter.Cross, fighter.Jab, fighter.BodyCross, fighter.LeadHook},
	fighter.BodyCross:    {fighter.LeadHook, fighter.LeadBodyHook},
	fighter.LeadBodyHook: {fighter.Cross, fighter.LeadHook, fighter.RearUppercut, fighter.RearBodyHook},
	fighter.RearBodyHook: {fighter.LeadHook, fighter.LeadBodyHook},
}

type choice[T any] struct {
	item   T
	weight float64
}

func pick[T any](e *Engine, choices []choice[T]) T {
	ws := make([]float64, len(choices))
	for i, c := range choices {
		ws[i] = c.weight
	}
	i := util.PickWeighted(e.rng, ws)
	if i < 0 {
		var zero T
		return zero
	}
	return choices[i].item
}

func (e *Engine) subState(f *fighter.Fighter, state fighter.State, s Situation) fighter.SubState {
	switch state {
	case fighter.StateOffensive:
		return e.offensiveSub(f, s)
	case fighter.StateDefensive:
		return e.defensiveSub(f, s)
	case fighter.StateTiming:
		iq := f.Attr(f.Technical.FightIQ) / 50
		return pick(e, []choice[fighter.SubState]{
			{fighter.SubCounter, 3 * (0.5 + s.OppAggress*2)},
			{fighter.SubRead, 2},
			{fighter.SubFeint, 1.5 * iq},
		})
	case fighter.StateMoving:
		return e.movingSub(f, s)
	case fighter.StateClinch:
		return fighter.SubTieUp
	}
	return fighter.SubNone
}

func (e *Engine) offensiveSub(f *fighter.Fighter, s Situation) fighter.SubState {
	jab, power, body, combo := 3.0, 2.0, 1.5, 2.0
	switch f.Style.Offensive {
	case "power":
		power *= 2
	case "volume", "pressure":
		combo *= 2
	case "body":
		body *= 2.5
	case "jab", "technical":
		jab *= 2
	}
	if s.OppHurt {
		power *= 2
		combo *= 1.5
	}
	switch {
	case s.RangeGap > 1:
		jab *= 1.5
		power *= 0.6
	case s.Zone == position.ZoneInside || s.Zone == position.ZoneClinch:
		body *= 1.5
		jab *= 0.6
	}
	if s.OppBody > 0.3 {
		body *= 1.5
	}
	switch s.Tier {
	case fighter.TierTired:
		combo *= 0.6
		power *= 0.8
	case fighter.TierExhausted, fighter.TierGassed:
		combo *= 0.3
		power *= 0.6
	}
	if s.KOHunting {
		power *= 2
	}
	return pick(e, []choice[fighter.SubState]{
		{fighter.SubJab, jab},
		{fighter.SubPowerShot, power},
		{fighter.SubBodyWork, body},
		{fighter.SubCombination, combo},
	})
}

func (e *Engine) defensiveSub(f *fighter.Fighter, s Situation) fighter.SubState {
	block := 3 * f.Attr(f.Defense.Blocking) / 50
	head := 2 * f.Attr(f.Defense.HeadMovement) / 50
	roll := 1 * f.Attr(f.Defense.ShoulderRoll) / 50
	feet := 1.5 * f.Attr(f.Technical.Footwork) / 50
	cover := 1.0
	switch f.Style.Defensive {
	case "slick", "elusive":
		head *= 2
	case "philly", "shell":
		roll *= 2.5
	case "guard", "high_guard":
		block *= 1.5
	case "mobile":
		feet *= 2
	}
	if s.OwnHurt {
		cover *= 3
		head *= 0.6
	}
	if s.OwnRing != position.RingCenter && s.OwnRing != "" {
		feet *= 1.5
	}
	if s.Distance > 5 {
		feet *= 1.5
	}
	return pick(e, []choice[fighter.SubState]{
		{fighter.SubBlock, block},
		{fighter.SubHeadMovement, head},
		{fighter.SubShoulderRoll, roll},
		{fighter.SubFootwork, feet},
		{fighter.SubCover, cover},
	})
}

func (e *Engine) movingSub(f *fighter.Fighter, s Situation) fighter.SubState {
	closeIn, createSpace, circle, escape, cutOff := 0.5, 0.5, 2.0, 0.0, 0.0
	switch {
	case s.RangeGap > 1:
		closeIn = 4
	case s.RangeGap < -1:
		createSpace = 4
	}
	if s.OwnRing != position.RingCenter && s.OwnRing != "" {
		escape = 5
	}
	if s.OppRing != position.RingCenter && s.OppRing != "" {
		cutOff = 3 * f.Attr(f.Technical.Footwork) / 50
	}
	if s.OwnHurt {
		escape *= 2
		createSpace *= 2
		closeIn *= 0.3
	}
	return pick(e, []choice[fighter.SubState]{
		{fighter.SubCloseDistance, closeIn},
		{fighter.SubCreateDistance, createSpace},
		{fighter.SubCircle, circle},
		{fighter.SubEscape, escape},
		{fighter.SubCutOff, cutOff},
	})
}

// action turns the state and sub-state into something physical.
func (e *Engine) action(f *fighter.Fighter, state fighter.State, sub fighter.SubState, s Situation) fighter.Action {
	switch state {
	case fighter.StateOffensive:
		if s.Zone == position.ZoneOutside || s.Zone == position.ZoneOutOfRange {
			return fighter.MoveAction(fighter.DirForward)
		}
		switch sub {
		case fighter.SubJab:
			if util.Chance(e.rng, 0.2) {
				return fighter.PunchAction(fighter.BodyJab)
			}
			return fighter.PunchAction(fighter.Jab)
		case fighter.SubPowerShot:
			return fighter.PunchAction(e.pickPunch(f, s, fighter.PunchType.IsPower))
		case fighter.SubBodyWork:
			return fighter.PunchAction(e.pickPunch(f, s, fighter.PunchType.IsBody))
		case fighter.SubCombination:
			return fighter.ComboAction(e.combination(f, s))
		}
		return fighter.PunchAction(e.pickPunch(f, s, nil))

	case fighter.StateDefensive:
		switch sub {
		case fighter.SubHeadMovement:
			return fighter.Action{Kind: fighter.ActionEvade}
		case fighter.SubFootwork:
			return fighter.MoveAction(fighter.DirBackward)
		}
		return fighter.Action{Kind: fighter.ActionBlock}

	case fighter.StateTiming:
		if sub == fighter.SubCounter && s.OppState == fighter.StateOffensive && s.Distance <= 5 {
			chance := e.cfg.CounterChance * (0.5 + f.Attr(f.Technical.FightIQ)/100)
			if util.Chance(e.rng, chance) {
				a := fighter.PunchAction(e.pickPunch(f, s, isCounterPunch))
				a.Counter = true
				return a
			}
		}
		return fighter.Wait()

	case fighter.StateMoving:
		switch sub {
		case fighter.SubCloseDistance, fighter.SubCutOff:
			return fighter.MoveAction(fighter.DirForward)
		case fighter.SubCreateDistance:
			return fighter.MoveAction(fighter.DirBackward)
		case fighter.SubEscape:
			if util.Chance(e.rng, 0.5) {
				return fighter.MoveAction(fighter.DirLeft)
			}
			return fighter.MoveAction(fighter.DirRight)
		}
		if e.ring != nil {
			return fighter.MoveAction(e.ring.CircleDirection(f.ID))
		}
		return fighter.MoveAction(fighter.DirLeft)

	case fighter.StateClinch:
		if s.Distance > 3 {
			return fighter.MoveAction(fighter.DirForward)
		}
		return fighter.Action{Kind: fighter.ActionClinch}
	}
	return fighter.Wait()
}

func isCounterPunch(p fighter.PunchType) bool {
	return p == fighter.Cross || p == fighter.LeadHook || p == fighter.RearHook || p == fighter.LeadUppercut
}

// punchWeight is the table weight of p adjusted for range, fatigue and intent.
func (e *Engine) punchWeight(f *fighter.Fighter, s Situation, p fighter.PunchType) float64 {
	w := e.cfg.PunchWeights[p]
	switch s.Zone {
	case position.ZoneClinch, position.ZoneInside:
		if p.IsHook() || p.IsUppercut() {
			w *= 1.5
		}
		if p == fighter.Jab || p == fighter.BodyJab {
			w *= 0.6
		}
	case position.ZoneLong, position.ZoneOutside:
		switch {
		case p == fighter.Jab:
			w *= 1.5
		case p == fighter.Cross:
			w *= 1.2
		case p.IsUppercut():
			w *= 0.2
		case p.IsHook():
			w *= 0.5
		}
	}
	if p.IsPower() {
		switch s.Tier {
		case fighter.TierTired:
			w *= 0.8
		case fighter.TierExhausted:
			w *= 0.6
		case fighter.TierGassed:
			w *= 0.4
		}
		if s.KOHunting {
			w *= 1.8
		}
		if s.OwnStamina < e.cfg.PowerStaminaFloor {
			w *= 0.3
		}
		w *= 1 + s.mods.power
	}
	if p == fighter.Jab || p == fighter.Cross {
		w *= 1 + s.mods.accuracy
	}
	if p.IsBody() && s.OppBody > 0.3 {
		w *= 1.3
	}
	if p == fighter.Cross && s.OpenStance {
		w *= 1.2
	}
	return w
}

// pickPunch draws one punch among those keep accepts; nil keeps all.
func (e *Engine) pickPunch(f *fighter.Fighter, s Situation, keep func(fighter.PunchType) bool) fighter.PunchType {
	choices := make([]choice[fighter.PunchType], 0, len(fighter.PunchTypes))
	for _, p := range fighter.PunchTypes {
		if keep != nil && !keep(p) {
			continue
		}
		choices = append(choices, choice[fighter.PunchType]{p, e.punchWeight(f, s, p)})
	}
	if len(choices) == 0 {
		return fighter.Jab
	}
	return pick(e, choices)
}

// combination builds a punch sequence as a walk over followUps. Power shots
// drop out when stamina cannot carry them; the walk stops early when no
// follow-up is left.
func (e *Engine) combination(f *fighter.Fighter, s Situation) []fighter.PunchType {
	lr, ok := e.cfg.ComboLength[s.Tier]
	if !ok {
		lr.Min, lr.Max = 2, 3
	}
	n := util.RangeInt(e.rng, max(2, lr.Min), max(2, lr.Max))
	if f.Attr(f.Stamina.WorkRate) >= e.cfg.HighWorkRate {
		n++
	}
	if s.mods.speed >= 0.1 {
		n++
	}
	allowPower := s.OwnStamina >= e.cfg.PowerStaminaFloor

	first := e.pickPunch(f, s, func(p fighter.PunchType) bool {
		return allowPower || !p.IsPower()
	})
	seq := []fighter.PunchType{first}
	for len(seq) < n {
		prev := seq[len(seq)-1]
		next := followUps[prev]
		choices := make([]choice[fighter.PunchType], 0, len(next))
		for _, p := range next {
			if !allowPower && p.IsPower() {
				continue
			}
			choices = append(choices, choice[fighter.PunchType]{p, e.punchWeight(f, s, p)})
		}
		if len(choices) == 0 {
			break
		}
		seq = append(seq, pick(e, choices))
	}
	return slices.Clip(seq)
}
