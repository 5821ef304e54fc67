package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"ringsim/internal/combat"
	"ringsim/internal/config"
	"ringsim/internal/util"
)

// seedStride spaces the per-fight seeds so neighbouring runs do not share
// low-order bits.
const seedStride = 7919

type cornerSummary struct {
	ID          string  `json:"id"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	KOWins      int     `json:"ko_wins"`
	AvgThrown   float64 `json:"avg_thrown"`
	AvgLanded   float64 `json:"avg_landed"`
	Accuracy    float64 `json:"accuracy"`
	AvgDamage   float64 `json:"avg_damage"`
	Knockdowns  int     `json:"knockdowns"`
	SecondWinds int     `json:"second_winds"`
}

type batchSummary struct {
	Runs         int                   `json:"runs"`
	Seed         int64                 `json:"seed"`
	Draws        int                   `json:"draws"`
	StoppageRate float64               `json:"stoppage_rate"`
	AvgRounds    float64               `json:"avg_rounds"`
	Methods      map[combat.Method]int `json:"methods"`
	Corners      [2]cornerSummary      `json:"corners"`
}

// tally folds fight results into running sums. It is safe for concurrent use.
type tally struct {
	mu       sync.Mutex
	runs     int
	draws    int
	stops    int
	rounds   int
	methods  map[combat.Method]int
	wins     [2]int
	koWins   [2]int
	thrown   [2]int
	landed   [2]int
	damage   [2]int
	kds      [2]int
	secWinds [2]int
}

func newTally() *tally {
	return &tally{methods: map[combat.Method]int{}}
}

func (t *tally) add(res combat.SimResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs++
	t.rounds += res.Round
	t.methods[res.Method]++
	if res.Method.IsStoppage() {
		t.stops++
	}
	if res.Winner == "" {
		t.draws++
	}
	for i, st := range res.Stats {
		if res.Winner == st.ID {
			t.wins[i]++
			if res.Method.IsStoppage() {
				t.koWins[i]++
			}
		}
		t.thrown[i] += st.Thrown
		t.landed[i] += st.Landed
		t.damage[i] += st.DamageDealt
		t.kds[i] += st.Knockdowns
		if st.SecondWind {
			t.secWinds[i]++
		}
	}
}

func (t *tally) summary(ids [2]string, seed int64) batchSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := batchSummary{Runs: t.runs, Seed: seed, Draws: t.draws, Methods: map[combat.Method]int{}}
	for m, c := range t.methods {
		s.Methods[m] = c
	}
	if t.runs == 0 {
		for i := range s.Corners {
			s.Corners[i].ID = ids[i]
		}
		return s
	}
	n := float64(t.runs)
	s.StoppageRate = float64(t.stops) / n
	s.AvgRounds = float64(t.rounds) / n
	for i := range s.Corners {
		c := cornerSummary{
			ID:          ids[i],
			Wins:        t.wins[i],
			WinRate:     float64(t.wins[i]) / n,
			KOWins:      t.koWins[i],
			AvgThrown:   float64(t.thrown[i]) / n,
			AvgLanded:   float64(t.landed[i]) / n,
			AvgDamage:   float64(t.damage[i]) / n,
			Knockdowns:  t.kds[i],
			SecondWinds: t.secWinds[i],
		}
		if t.thrown[i] > 0 {
			c.Accuracy = float64(t.landed[i]) / float64(t.thrown[i])
		}
		s.Corners[i] = c
	}
	return s
}

// runBatch fights red against blue n times on a bounded pool of workers.
// Fight i always uses seed+i*seedStride, so results do not depend on
// scheduling.
func runBatch(ctx context.Context, tuning config.Tuning, red, blue config.FighterDef, seed int64, n, workers int) (batchSummary, error) {
	agg := newTally()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			env := &combat.Env{Rng: util.New(seed + int64(i)*seedStride)}
			res, err := combat.RunSingle(env, tuning, red.Build(), blue.Build(), false)
			if err != nil {
				return fmt.Errorf("fight %d: %w", i, err)
			}
			agg.add(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batchSummary{}, err
	}
	s := agg.summary([2]string{red.ID, blue.ID}, seed)
	slog.Debug("batch finished", "runs", s.Runs, "stoppage_rate", s.StoppageRate, "avg_rounds", s.AvgRounds)
	return s, nil
}
