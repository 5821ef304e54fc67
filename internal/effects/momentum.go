package effects

import (
	"log/slog"
	"math"

	"ringsim/internal/util"
)

const momentumLimit = 100.0

// ShiftKind says why momentum changed hands.
type ShiftKind string

const (
	ShiftLeadChange  ShiftKind = "lead_change"
	ShiftFromNeutral ShiftKind = "from_neutral"
	ShiftDominance   ShiftKind = "dominance"
)

// Shift is a detected momentum swing.
type Shift struct {
	Leader string
	Kind   ShiftKind
	Score  float64
}

type shiftState struct {
	leader    string
	leadSince int
	lastShift int
	fired     bool
}

// MomentumScore returns the fighter's score in [-100, 100].
func (r *Registry) MomentumScore(id string) float64 { return r.momentum[id] }

// AdjustMomentum moves the fighter's score by delta. A paired opponent's
// score is kept as the exact negation.
func (r *Registry) AdjustMomentum(id string, delta float64) {
	if math.IsNaN(delta) {
		return
	}
	v := util.Clamp(r.momentum[id]+delta, -momentumLimit, momentumLimit)
	r.momentum[id] = v
	if opp := r.opponents[id]; opp != "" {
		r.momentum[opp] = -v
	}
}

// DetectMomentumShift compares the pair's current leader with the previous
// one. It fires when the lead changes hands, when a fighter takes control
// from neutral, or when a large lead has been held long enough, but never
// twice within MomentumCooldown ticks. A detected shift applies the
// Momentum effect to the leader.
func (r *Registry) DetectMomentumShift(id string) (Shift, bool) {
	opp := r.opponents[id]
	if opp == "" {
		return Shift{}, false
	}
	key := pairKey(id, opp)
	st := r.shifts[key]
	if st == nil {
		st = &shiftState{}
		r.shifts[key] = st
	}

	leader := ""
	score := r.momentum[id]
	switch {
	case score >= r.cfg.MomentumLead:
		leader = id
	case score <= -r.cfg.MomentumLead:
		leader = opp
	}

	if leader == "" {
		st.leader = ""
		st.leadSince = r.tick
		return Shift{}, false
	}
	if st.fired && r.tick-st.lastShift < r.cfg.MomentumCooldown {
		return Shift{}, false
	}

	var kind ShiftKind
	switch {
	case st.leader == "":
		kind = ShiftFromNeutral
	case st.leader != leader:
		kind = ShiftLeadChange
	case math.Abs(score) >= r.cfg.DominanceScore &&
		r.tick-st.leadSince >= r.cfg.DominanceInterval &&
		(!st.fired || r.tick-st.lastShift >= r.cfg.DominanceInterval):
		kind = ShiftDominance
	default:
		return Shift{}, false
	}

	if st.leader != leader {
		st.leadSince = r.tick
	}
	st.leader = leader
	st.lastShift = r.tick
	st.fired = true

	r.Apply(leader, Momentum, util.Clamp01(math.Abs(score)/momentumLimit+0.3), 0)
	shift := Shift{Leader: leader, Kind: kind, Score: r.momentum[leader]}
	slog.Debug("momentum shift", "leader", leader, "kind", kind, "score", shift.Score, "tick", r.tick)
	return shift, true
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
