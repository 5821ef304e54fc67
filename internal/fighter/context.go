package fighter

// Scores maps fighter id to cumulative scorecard points.
type Scores map[string]float64

// Context is what the core reads about the fight around the two fighters.
type Context interface {
	CurrentRound() int
	Rounds() int
	RoundDuration() float64
	ElapsedInRound() float64
	CurrentScores() Scores
}

// FightState is a plain Context, handy for tests and tooling.
type FightState struct {
	Round       int
	TotalRounds int
	RoundLength float64
	Elapsed     float64
	Scorecard   Scores
}

func (s *FightState) CurrentRound() int       { return s.Round }
func (s *FightState) Rounds() int             { return s.TotalRounds }
func (s *FightState) RoundDuration() float64  { return s.RoundLength }
func (s *FightState) ElapsedInRound() float64 { return s.Elapsed }
func (s *FightState) CurrentScores() Scores   { return s.Scorecard }

// ScoreDiff returns own minus opponent points, 0 when ctx has no scores.
func ScoreDiff(ctx Context, id, oppID string) float64 {
	if ctx == nil {
		return 0
	}
	sc := ctx.CurrentScores()
	if sc == nil {
		return 0
	}
	return sc[id] - sc[oppID]
}

// InChampionshipRounds reports whether round is a championship round: from
// on, or the final round of a fight scheduled shorter than that.
func InChampionshipRounds(round, rounds, from int) bool {
	if rounds <= 0 {
		return false
	}
	return round >= min(max(from, 1), rounds)
}
