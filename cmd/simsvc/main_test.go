package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringsim/internal/combat"
	"ringsim/internal/config"
	"ringsim/internal/fighter"
)

func roster() *config.FightersConfig {
	return &config.FightersConfig{Fighters: []config.FighterDef{
		{ID: "mendez", Name: "Luis Mendez", Style: fighter.Style{Primary: "swarmer"}},
		{ID: "okafor", Name: "Tobi Okafor", Style: fighter.Style{Primary: "out_boxer"}},
		{ID: "reyes", Name: "Dan Reyes", Style: fighter.Style{Primary: "slugger"}},
	}}
}

func TestPickCorners(t *testing.T) {
	red, blue, err := pickCorners(roster(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "mendez", red.ID)
	assert.Equal(t, "okafor", blue.ID)

	red, blue, err = pickCorners(roster(), "okafor", "")
	require.NoError(t, err)
	assert.Equal(t, "okafor", red.ID)
	assert.Equal(t, "mendez", blue.ID)

	_, _, err = pickCorners(roster(), "reyes", "reyes")
	assert.ErrorIs(t, err, combat.ErrDuplicateFighter)

	_, _, err = pickCorners(roster(), "ghost", "reyes")
	assert.ErrorIs(t, err, config.ErrUnknownFighter)

	_, _, err = pickCorners(&config.FightersConfig{}, "", "")
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	r := roster()
	red, blue := r.Fighters[0], r.Fighters[2]
	s, err := runBatch(context.Background(), config.Default(), red, blue, 11, 6, 3)
	require.NoError(t, err)

	assert.Equal(t, 6, s.Runs)
	assert.Equal(t, "mendez", s.Corners[0].ID)
	assert.Equal(t, "reyes", s.Corners[1].ID)
	assert.Equal(t, s.Runs, s.Corners[0].Wins+s.Corners[1].Wins+s.Draws)

	methods := 0
	for _, c := range s.Methods {
		methods += c
	}
	assert.Equal(t, s.Runs, methods)
	assert.GreaterOrEqual(t, s.AvgRounds, 1.0)
	assert.InDelta(t, 0.5, s.StoppageRate, 0.5)
}

func TestRunBatchIsScheduleIndependent(t *testing.T) {
	r := roster()
	one, err := runBatch(context.Background(), config.Default(), r.Fighters[0], r.Fighters[1], 5, 4, 1)
	require.NoError(t, err)
	many, err := runBatch(context.Background(), config.Default(), r.Fighters[0], r.Fighters[1], 5, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, one, many)
}

func TestRunBatchCancelled(t *testing.T) {
	r := roster()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runBatch(ctx, config.Default(), r.Fighters[0], r.Fighters[1], 1, 4, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
