package decision

import (
	"slices"

	"ringsim/internal/fighter"
)

// Strategy is the plan a fighter settles on at the start of a round.
type Strategy string

const (
	StrategySteady Strategy = "steady"
	StrategyPush   Strategy = "push"
	StrategyCoast  Strategy = "coast"
	StrategyRest   Strategy = "rest"
)

// Memory is what a fighter remembers about the fight so far.
type Memory struct {
	History []fighter.Decision // most recent last, capped

	OpponentStates   map[fighter.State]int
	OpponentObserved int

	Round      int
	Strategy   Strategy
	RestRounds []int

	Decisions  int
	LastHurtAt int // decision count when last hurt, -1 when never
	Knockdowns int
}

// defaultMemoryCap bounds the action history when no cap is configured.
const defaultMemoryCap = 20

func newMemory() *Memory {
	return &Memory{
		OpponentStates: map[fighter.State]int{},
		Strategy:       StrategySteady,
		LastHurtAt:     -1,
	}
}

func (m *Memory) remember(d fighter.Decision, limit int) {
	if limit <= 0 {
		limit = defaultMemoryCap
	}
	m.History = append(m.History, d)
	if over := len(m.History) - limit; over > 0 {
		m.History = append(m.History[:0], m.History[over:]...)
	}
	m.Decisions++
}

func (m *Memory) observe(s fighter.State) {
	if s == "" {
		return
	}
	m.OpponentStates[s]++
	m.OpponentObserved++
}

// OpponentShare is the fraction of observed opponent ticks spent in s.
func (m *Memory) OpponentShare(s fighter.State) float64 {
	if m.OpponentObserved == 0 {
		return 0
	}
	return float64(m.OpponentStates[s]) / float64(m.OpponentObserved)
}

func (m *Memory) recentlyHurt(window int) bool {
	return m.LastHurtAt >= 0 && m.Decisions-m.LastHurtAt <= window
}

func (m *Memory) isRestRound(round int) bool { return slices.Contains(m.RestRounds, round) }

// LastAction returns the most recent decision, if any.
func (m *Memory) LastAction() (fighter.Decision, bool) {
	if len(m.History) == 0 {
		return fighter.Decision{}, false
	}
	return m.History[len(m.History)-1], true
}
