package decision

import (
	"ringsim/internal/fighter"
	"ringsim/internal/position"
	"ringsim/internal/util"
)

// Situation is everything the engine weighs for one decision, read once from
// the fighter, the opponent snapshot and the fight context.
type Situation struct {
	OwnStamina float64
	OppStamina float64
	OwnHead    float64
	OwnBody    float64
	OppHead    float64
	OppBody    float64
	OwnHurt    bool
	OppHurt    bool
	Tier       fighter.FatigueTier
	OppTier    fighter.FatigueTier
	OppState   fighter.State

	Distance   float64
	Zone       position.Zone
	OwnRing    position.RingZone
	OppRing    position.RingZone
	RangeGap   float64 // distance minus own optimal range
	RangeEdge  float64 // position advantage, -1..1
	ReachAdv   float64 // cm
	OpenStance bool    // orthodox against southpaw
	OppAggress float64 // share of observed opponent ticks spent on offense

	Round         int
	Rounds        int
	RoundProgress float64
	Championship  bool
	LateFight     bool
	ScoreDiff     float64
	Momentum      float64

	RecentlyHurt    bool
	KnockdownsTaken int
	RestRound       bool
	KOHunting       bool
	Strategy        Strategy

	mods modifiers
}

func (e *Engine) assess(f, opp *fighter.Fighter, ctx fighter.Context, mem *Memory) Situation {
	s := Situation{
		OwnStamina: f.StaminaPercent(),
		OppStamina: opp.StaminaPercent(),
		OwnHead:    f.HeadDamagePercent(),
		OwnBody:    f.BodyDamagePercent(),
		OppHead:    opp.HeadDamagePercent(),
		OppBody:    opp.BodyDamagePercent(),
		OwnHurt:    f.IsHurt,
		OppHurt:    opp.IsHurt,
		Tier:       f.Tier,
		OppTier:    opp.Tier,
		OppState:   opp.State,

		Distance: position.Distance(f, opp),
		ReachAdv: reach(f) - reach(opp),

		Momentum:        e.mods.MomentumScore(f.ID),
		RecentlyHurt:    mem.recentlyHurt(e.cfg.RecentHurtWindow),
		KnockdownsTaken: f.TotalKnockdowns,
		OppAggress:      mem.OpponentShare(fighter.StateOffensive),
		Strategy:        mem.Strategy,
	}
	if s.Tier == "" {
		s.Tier = fighter.TierFor(s.OwnStamina)
	}
	s.OpenStance = stance(f) != stance(opp)
	s.RangeGap = s.Distance - f.OptimalRange
	if e.ring != nil {
		s.Zone = e.ring.Zone(s.Distance)
		s.OwnRing = e.ring.RingZoneOf(f.Position)
		s.OppRing = e.ring.RingZoneOf(opp.Position)
		s.RangeEdge = e.ring.PositionAdvantage(f, opp)
	}

	if ctx != nil {
		s.Round = ctx.CurrentRound()
		s.Rounds = ctx.Rounds()
		if d := ctx.RoundDuration(); d > 0 {
			s.RoundProgress = util.Clamp01(ctx.ElapsedInRound() / d)
		}
		s.ScoreDiff = fighter.ScoreDiff(ctx, f.ID, opp.ID)
	}
	if s.Rounds > 0 {
		s.Championship = fighter.InChampionshipRounds(s.Round, s.Rounds, e.cfg.ChampionshipRound)
		s.LateFight = float64(s.Round) >= float64(s.Rounds)*e.cfg.LateRoundFraction
	}
	s.RestRound = mem.isRestRound(s.Round)
	s.KOHunting = s.LateFight &&
		s.ScoreDiff <= -e.cfg.KOHuntDeficit &&
		f.Attr(f.Power.KnockoutPower) >= e.cfg.KOHuntPower
	return s
}

func stance(f *fighter.Fighter) fighter.Stance {
	if f.Physical.Stance == fighter.Southpaw {
		return fighter.Southpaw
	}
	return fighter.Orthodox
}

func reach(f *fighter.Fighter) float64 {
	if f.Physical.Reach <= 0 {
		return 180
	}
	return f.Physical.Reach
}
