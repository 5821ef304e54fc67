package combat

import (
	"math"
	"math/rand"

	"ringsim/internal/config"
)

// roundTally is what the judges saw from one fighter in the current round.
type roundTally struct {
	points     float64 // clean punches weighted by type and damage
	landed     int
	knockdowns int // suffered
}

// judging scores rounds on the 10-point must system. Each judge reads the
// same tallies through their own noise.
type judging struct {
	cfg   config.JudgesConfig
	rng   *rand.Rand
	cards []Scorecard
}

func newJudging(cfg config.JudgesConfig, rng *rand.Rand) *judging {
	n := max(1, cfg.Count)
	j := &judging{cfg: cfg, rng: rng, cards: make([]Scorecard, n)}
	for i := range j.cards {
		j.cards[i].Judge = i + 1
	}
	return j
}

// score adds one round to every card and returns the round as each judge
// scored it.
func (j *judging) score(t [2]roundTally) [][2]int {
	out := make([][2]int, len(j.cards))
	for i := range j.cards {
		a := t[0].points * (1 + j.cfg.Noise*(j.rng.Float64()*2-1))
		b := t[1].points * (1 + j.cfg.Noise*(j.rng.Float64()*2-1))
		r := mustScore(a, b, t[0].knockdowns, t[1].knockdowns)
		j.cards[i].Rounds = append(j.cards[i].Rounds, r)
		j.cards[i].Totals[0] += r[0]
		j.cards[i].Totals[1] += r[1]
		out[i] = r
	}
	return out
}

// mustScore scores one round: the winner on points takes 10 and the loser 9,
// each knockdown suffered costs a point, and an even round is 10-10.
func mustScore(a, b float64, kdA, kdB int) [2]int {
	// a knockdown usually swings the round on its own
	effA := a - float64(kdA)*4
	effB := b - float64(kdB)*4
	card := [2]int{10, 10}
	switch margin := math.Max(0.5, 0.05*math.Max(effA, effB)); {
	case effA-effB > margin:
		card[1] = 9
	case effB-effA > margin:
		card[0] = 9
	}
	card[0] -= kdA
	card[1] -= kdB
	shift := 10 - max(card[0], card[1])
	card[0] = max(6, card[0]+shift)
	card[1] = max(6, card[1]+shift)
	return card
}

func (j *judging) average() [2]float64 {
	var sum [2]float64
	for _, c := range j.cards {
		sum[0] += float64(c.Totals[0])
		sum[1] += float64(c.Totals[1])
	}
	n := float64(len(j.cards))
	return [2]float64{sum[0] / n, sum[1] / n}
}

// verdict reads the cards at the final bell. winner is 0 or 1, or -1 for a
// draw.
func (j *judging) verdict() (winner int, method Method) {
	votes := [3]int{} // a, b, even
	for _, c := range j.cards {
		switch {
		case c.Totals[0] > c.Totals[1]:
			votes[0]++
		case c.Totals[1] > c.Totals[0]:
			votes[1]++
		default:
			votes[2]++
		}
	}
	n := len(j.cards)
	switch {
	case votes[0] == votes[1]:
		return -1, MethodDraw
	case votes[0] > votes[1]:
		winner = 0
	default:
		winner = 1
	}
	loser := 1 - winner
	switch {
	case votes[winner] == n:
		method = MethodUnanimous
	case votes[loser] == 0:
		method = MethodMajority
	default:
		method = MethodSplit
	}
	return winner, method
}

func (j *judging) scorecards() []Scorecard {
	out := make([]Scorecard, len(j.cards))
	for i, c := range j.cards {
		out[i] = Scorecard{Judge: c.Judge, Totals: c.Totals, Rounds: append([][2]int(nil), c.Rounds...)}
	}
	return out
}
