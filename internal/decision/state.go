package decision

import (
	"math"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/position"
	"ringsim/internal/util"
)

// weights are the primary state weights in fighter.PrimaryStates order.
type weights struct {
	off, def, timing, moving, clinch float64
}

func fromStyle(w config.StyleWeights) weights {
	return weights{off: w.Offensive, def: w.Defensive, timing: w.Timing, moving: w.Moving, clinch: w.Clinch}
}

func (w weights) slice() []float64 { return []float64{w.off, w.def, w.timing, w.moving, w.clinch} }

func (w *weights) scale(off, def, timing, moving, clinch float64) {
	w.off *= off
	w.def *= def
	w.timing *= timing
	w.moving *= moving
	w.clinch *= clinch
}

// styleWeights returns the archetype's base weights, falling back to the
// baseline archetype for unknown styles.
func (e *Engine) styleWeights(style string) weights {
	if w, ok := e.cfg.Styles[style]; ok {
		return fromStyle(w)
	}
	if w, ok := e.cfg.Styles[e.cfg.BaselineStyle]; ok {
		return fromStyle(w)
	}
	return weights{off: 1, def: 1, timing: 1, moving: 1, clinch: 0.3}
}

// stateWeights applies the situational modifiers to the archetype weights,
// in order, and clamps the result.
func (e *Engine) stateWeights(f *fighter.Fighter, s Situation, m modifiers) weights {
	w := e.styleWeights(f.Style.Primary)

	// conserve energy as the tank empties
	switch s.Tier {
	case fighter.TierGood:
		w.scale(0.95, 1, 1, 1, 1.05)
	case fighter.TierTired:
		w.scale(0.8, 1.1, 1.05, 0.95, 1.2)
	case fighter.TierExhausted:
		w.scale(0.6, 1.25, 1.05, 0.9, 1.6)
	case fighter.TierGassed:
		w.scale(0.45, 1.4, 1, 0.8, 2)
	}

	// a busy opponent is there to be countered
	if s.OppAggress > 0.4 {
		w.scale(1, 1, 1.2, 1, 1)
	}

	if s.OppStamina < 0.3 {
		w.scale(1.25, 0.9, 0.9, 1, 1)
	}

	if s.LateFight {
		switch {
		case s.ScoreDiff < 0:
			w.scale(1+math.Min(0.5, -s.ScoreDiff*0.08), 0.9, 1, 0.95, 0.9)
		case s.ScoreDiff > 0:
			w.scale(0.95, 1+math.Min(0.3, s.ScoreDiff*0.05), 1, 1.1, 1.05)
		}
	}

	switch {
	case s.ReachAdv >= e.cfg.ReachAdvantage:
		w.scale(1, 1, 1.1, 1.15, 0.8)
	case s.ReachAdv <= -e.cfg.ReachAdvantage:
		w.scale(1.1, 1, 1, 0.9, 1.1)
	}
	switch {
	case s.RangeEdge > 0.3:
		w.scale(1.1, 1, 1, 0.95, 1)
	case s.RangeEdge < -0.3:
		w.scale(0.95, 1.05, 1, 1.2, 1.05)
	}

	switch s.OwnRing {
	case position.RingCorner:
		w.scale(0.85, 1, 0.9, 1.8, 1.5)
	case position.RingRopes:
		w.scale(0.9, 1, 0.95, 1.4, 1.3)
	}
	if s.OppRing != position.RingCenter && s.OppRing != "" {
		w.scale(1.3, 1, 1, 0.8, 1)
	}

	if s.Championship {
		clutch := f.Attr(f.Mental.ClutchFactor) / 100
		w.scale(0.9+clutch*0.3, 1, 1, 1, 1)
	}

	risk := (f.Attr(f.Mental.KillerInstinct) + f.Attr(f.Mental.Heart)) / 200
	w.scale(0.8+risk*0.4, 1.2-risk*0.4, 1, 1, 1)

	if s.KOHunting {
		w.scale(1.5, 0.9, 0.7, 1, 0.5)
	}

	if s.RecentlyHurt && !s.OwnHurt {
		caution := 1 - f.Attr(f.Mental.Heart)/200
		w.scale(1-0.25*caution, 1+0.3*caution, 1, 1, 1+0.4*caution)
	}

	if s.OppHurt {
		w.scale(1.5+f.Attr(f.Mental.KillerInstinct)/100, 0.7, 0.8, 1, 0.4)
	}

	if s.RestRound {
		w.scale(0.6, 1.2, 1, 1.2, 1.2)
	}
	switch s.Strategy {
	case StrategyPush:
		w.scale(1.2, 0.9, 1, 1, 0.9)
	case StrategyCoast:
		w.scale(0.85, 1.15, 1, 1.1, 1)
	}

	w.scale(1+m.aggression, 1-m.aggression*0.5, 1, 1, 1)
	w.scale(1, 1+m.defense, 1, 1, 1)
	w.scale(1+s.Momentum/400, 1, 1, 1, 1)

	// distance feasibility
	switch s.Zone {
	case position.ZoneClinch:
		w.scale(1, 1, 1, 1, 1.5)
	case position.ZoneLong:
		w.scale(0.8, 1, 1, 1.2, 0.2)
	case position.ZoneOutside, position.ZoneOutOfRange:
		w.scale(0.3, 0.8, 0.6, 1.5, 0)
	}

	if s.OwnHurt {
		heart := f.Attr(f.Mental.Heart) / 100
		w.scale(0.3+0.3*heart, 2, 0.7, 1.3, 2.5)
	}

	ceiling := e.cfg.MaxStateWeight
	w.off = util.Clamp(w.off, 0, ceiling)
	w.def = util.Clamp(w.def, 0, ceiling)
	w.timing = util.Clamp(w.timing, 0, ceiling)
	w.moving = util.Clamp(w.moving, 0, ceiling)
	w.clinch = util.Clamp(w.clinch, 0, ceiling)
	return w
}

func (e *Engine) pickState(w weights) fighter.State {
	i := util.PickWeighted(e.rng, w.slice())
	if i < 0 || i >= len(fighter.PrimaryStates) {
		return fighter.PrimaryStates[0]
	}
	return fighter.PrimaryStates[i]
}
