package combat

import (
	"fmt"
	"math/rand"

	"ringsim/internal/config"
	"ringsim/internal/damage"
	"ringsim/internal/decision"
	"ringsim/internal/effects"
	"ringsim/internal/fighter"
	"ringsim/internal/position"
	"ringsim/internal/stamina"
	"ringsim/internal/util"
)

// Bout is one fight between two fighters. Every component of the fight
// draws from the same random source. A Bout is also the fight context the
// decision engine reads.
type Bout struct {
	cfg config.Tuning
	rng *rand.Rand

	fighters [2]*fighter.Fighter

	damage   *damage.Resolver
	stamina  *stamina.Economy
	ring     *position.Model
	effects  *effects.Registry
	engine   *decision.Engine
	reaction *ReactionResolver
	judges   *judging

	round   int
	elapsed float64 // seconds into the current round
	clock   float64 // seconds of fighting so far

	stats  [2]FighterStats
	tally  [2]roundTally
	window [2]int // punches thrown in the current output window
	ticks  int

	count  *count
	result *stoppage
	emit   func(Event)
}

type stoppage struct {
	winner int
	method Method
}

// NewBout wires a fight between a and b. Both fighters are primed and must
// have distinct ids.
func NewBout(cfg config.Tuning, a, b *fighter.Fighter, rng *rand.Rand) (*Bout, error) {
	if a == nil || b == nil {
		return nil, ErrMissingFighter
	}
	if a.ID == b.ID {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateFighter, a.ID)
	}
	if rng == nil {
		rng = util.New(0)
	}

	reg := effects.NewRegistry(cfg.Effects, rng)
	reg.Pair(a.ID, b.ID)
	econ := stamina.NewEconomy(cfg.Stamina)
	ring := position.NewModel(cfg.Ring, rng)

	bt := &Bout{
		cfg:      cfg,
		rng:      rng,
		fighters: [2]*fighter.Fighter{a, b},
		damage:   damage.NewResolver(cfg.Damage),
		stamina:  econ,
		ring:     ring,
		effects:  reg,
		engine:   decision.NewEngine(cfg.Decision, rng, econ, ring, reg),
		judges:   newJudging(cfg.Fight.Judges, rng),
		emit:     func(Event) {},
	}
	bt.reaction = NewReactionResolver(reg, func() float64 { return bt.clock }, func(ev Event) { bt.emit(ev) })
	bt.reaction.OnApplied = func(ap effects.Applied, _ string) {
		if i, ok := bt.index(ap.FighterID); ok {
			bt.stats[i].Effects[string(ap.Type)]++
		}
	}
	for i, f := range bt.fighters {
		bt.stats[i] = FighterStats{ID: f.ID, Name: f.Name, Effects: map[string]int{}}
	}
	return bt, nil
}

func (bt *Bout) index(id string) (int, bool) {
	for i, f := range bt.fighters {
		if f.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (bt *Bout) CurrentRound() int       { return bt.round }
func (bt *Bout) Rounds() int             { return bt.cfg.Fight.Rounds }
func (bt *Bout) RoundDuration() float64  { return bt.cfg.Fight.RoundDuration }
func (bt *Bout) ElapsedInRound() float64 { return bt.elapsed }

// CurrentScores averages the judges' running totals.
func (bt *Bout) CurrentScores() fighter.Scores {
	avg := bt.judges.average()
	return fighter.Scores{bt.fighters[0].ID: avg[0], bt.fighters[1].ID: avg[1]}
}

// Fighter returns the fighter in corner i (0 or 1).
func (bt *Bout) Fighter(i int) *fighter.Fighter { return bt.fighters[i] }

// Effects exposes the fight's effect registry.
func (bt *Bout) Effects() *effects.Registry { return bt.effects }
