package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

func pair() (*fighter.Fighter, *fighter.Fighter) {
	a := fighter.New("red")
	a.Style.Primary = "swarmer"
	b := fighter.New("blue")
	b.Style.Primary = "out_boxer"
	return a, b
}

func newTestBout(t *testing.T, cfg config.Tuning, seed int64) *Bout {
	t.Helper()
	a, b := pair()
	bt, err := NewBout(cfg, a, b, util.New(seed))
	require.NoError(t, err)
	return bt
}

func TestRunSingleRefusesMissingFighter(t *testing.T) {
	a, _ := pair()
	_, err := RunSingle(&Env{Rng: util.New(1)}, config.Default(), a, nil, false)
	require.ErrorIs(t, err, ErrMissingFighter)

	_, err = RunSingle(&Env{Rng: util.New(1)}, config.Default(), a, fighter.New("red"), false)
	require.ErrorIs(t, err, ErrDuplicateFighter)
}

func TestSameSeedSameFight(t *testing.T) {
	run := func() SimResult {
		a, b := pair()
		res, err := RunSingle(&Env{Rng: util.New(42)}, config.Default(), a, b, true)
		require.NoError(t, err)
		return res
	}
	first, second := run(), run()
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Events)
}

func TestFightsFinishConsistently(t *testing.T) {
	cfg := config.Default()
	for seed := int64(1); seed <= 15; seed++ {
		a, b := pair()
		res, err := RunSingle(&Env{Rng: util.New(seed)}, cfg, a, b, false)
		require.NoError(t, err)

		require.NotEmpty(t, res.Method, "seed %d", seed)
		assert.Nil(t, res.Events)
		assert.Equal(t, [2]string{"red", "blue"}, res.Fighters)
		assert.GreaterOrEqual(t, res.Round, 1)
		assert.LessOrEqual(t, res.Round, cfg.Fight.Rounds)
		assert.Len(t, res.Scorecards, cfg.Fight.Judges.Count)

		if res.Method.IsStoppage() {
			assert.Contains(t, res.Fighters, res.Winner)
		} else {
			for _, c := range res.Scorecards {
				assert.Len(t, c.Rounds, cfg.Fight.Rounds)
			}
			if res.Method == MethodDraw {
				assert.Empty(t, res.Winner)
			}
		}

		for _, st := range res.Stats {
			assert.GreaterOrEqual(t, st.Thrown, st.Landed+st.Blocked)
			assert.GreaterOrEqual(t, st.Landed, st.PowerLanded)
			assert.GreaterOrEqual(t, st.FinalStamina, 0.0)
			assert.LessOrEqual(t, st.FinalStamina, 1.0)
			if res.Duration > 60 {
				assert.Positive(t, st.Thrown, "seed %d: %s never threw", seed, st.ID)
			}
		}
	}
}

func TestTicksKeepInvariants(t *testing.T) {
	cfg := config.Default()
	bt := newTestBout(t, cfg, 7)
	bt.round = 1
	bt.startRound()

	for i := 0; i < 600 && bt.result == nil; i++ {
		bt.tick(1)
		for _, f := range bt.fighters {
			require.GreaterOrEqual(t, f.CurrentStamina, 0.0)
			require.LessOrEqual(t, f.CurrentStamina, f.MaxStamina)
			require.GreaterOrEqual(t, f.HeadDamage, 0.0)
			require.GreaterOrEqual(t, f.BodyDamage, 0.0)
			require.LessOrEqual(t, abs(f.Position.X), cfg.Ring.HalfWidth+1e-9)
			require.LessOrEqual(t, abs(f.Position.Y), cfg.Ring.HalfWidth+1e-9)
		}
		a, b := bt.fighters[0], bt.fighters[1]
		require.GreaterOrEqual(t, a.Position.Dist(b.Position), cfg.Ring.MinSeparation-1e-6)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestCountedOut(t *testing.T) {
	cfg := config.Default()
	cfg.Damage.RecoveryMin, cfg.Damage.RecoveryMax = 0, 0
	bt := newTestBout(t, cfg, 3)
	bt.round = 1
	bt.startRound()

	require.False(t, bt.knockdown(0))
	require.NotNil(t, bt.count)
	assert.Equal(t, fighter.StateDown, bt.fighters[1].State)
	assert.Equal(t, 1, bt.stats[0].Knockdowns)

	for i := 1; i < fullCount; i++ {
		require.False(t, bt.tick(1), "count %d", i)
	}
	require.True(t, bt.tick(1))
	require.NotNil(t, bt.result)
	assert.Equal(t, MethodKO, bt.result.method)
	assert.Equal(t, 0, bt.result.winner)
}

func TestBeatingTheCount(t *testing.T) {
	cfg := config.Default()
	cfg.Damage.RecoveryMin, cfg.Damage.RecoveryMax = 1, 1
	bt := newTestBout(t, cfg, 3)
	bt.round = 1
	bt.startRound()

	require.False(t, bt.knockdown(1))
	require.Equal(t, 4, bt.count.rise)
	for i := 1; i < mandatoryCount; i++ {
		require.False(t, bt.tick(1))
		require.NotNil(t, bt.count, "count %d", i)
	}
	bt.tick(1)
	assert.Nil(t, bt.count)
	if bt.result == nil {
		down := bt.fighters[0]
		assert.Equal(t, fighter.StateNeutral, down.State)
		assert.True(t, down.IsHurt)
	}
}

func TestThreeKnockdownRule(t *testing.T) {
	bt := newTestBout(t, config.Default(), 3)
	bt.round = 1
	bt.startRound()
	bt.fighters[1].KnockdownsThisRound = 2

	require.True(t, bt.knockdown(0))
	assert.Equal(t, MethodTKO, bt.result.method)
	assert.Equal(t, 0, bt.result.winner)
}

func TestMustScore(t *testing.T) {
	cases := []struct {
		a, b     float64
		kdA, kdB int
		want     [2]int
	}{
		{10, 5, 0, 0, [2]int{10, 9}},
		{5, 10, 0, 0, [2]int{9, 10}},
		{5, 5.2, 0, 0, [2]int{10, 10}},
		{10, 5, 0, 1, [2]int{10, 8}},
		{10, 5, 1, 0, [2]int{10, 10}},
		{0, 20, 2, 0, [2]int{7, 10}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, mustScore(c.a, c.b, c.kdA, c.kdB), "%+v", c)
	}
}

func TestVerdict(t *testing.T) {
	cards := func(totals ...[2]int) *judging {
		j := newJudging(config.JudgesConfig{Count: len(totals)}, util.New(1))
		for i, tt := range totals {
			j.cards[i].Totals = tt
		}
		return j
	}
	cases := []struct {
		j      *judging
		winner int
		method Method
	}{
		{cards([2]int{115, 113}, [2]int{116, 112}, [2]int{114, 114}), 0, MethodMajority},
		{cards([2]int{115, 113}, [2]int{116, 112}, [2]int{117, 111}), 0, MethodUnanimous},
		{cards([2]int{113, 115}, [2]int{116, 112}, [2]int{112, 116}), 1, MethodSplit},
		{cards([2]int{113, 115}, [2]int{116, 112}, [2]int{114, 114}), -1, MethodDraw},
	}
	for _, c := range cases {
		w, m := c.j.verdict()
		assert.Equal(t, c.winner, w)
		assert.Equal(t, c.method, m)
	}
}

func TestScoresFeedContext(t *testing.T) {
	bt := newTestBout(t, config.Default(), 5)
	bt.round = 1
	bt.startRound()
	bt.tally[0].points = 12
	bt.tally[1].points = 2
	bt.endRound()

	sc := bt.CurrentScores()
	assert.Equal(t, 10.0, sc["red"])
	assert.Equal(t, 9.0, sc["blue"])
	assert.Equal(t, 1.0, fighter.ScoreDiff(bt, "red", "blue"))
}

func TestHeavyHitterOutdamages(t *testing.T) {
	cfg := config.Default()
	var heavy, light int
	for seed := int64(1); seed <= 8; seed++ {
		a := fighter.New("hammer")
		a.Power.KnockoutPower = 95
		a.Technical.Accuracy = 90
		a.Speed.HandSpeed = 85
		a.Style.Primary = "slugger"
		b := fighter.New("feather")
		b.Power.KnockoutPower = 15
		b.Technical.Accuracy = 20
		b.Mental.Chin = 25
		b.Style.Primary = "out_boxer"

		res, err := RunSingle(&Env{Rng: util.New(seed)}, cfg, a, b, false)
		require.NoError(t, err)
		heavy += res.Stats[0].DamageDealt
		light += res.Stats[1].DamageDealt
	}
	assert.Greater(t, heavy, light)
}

func TestEventsAreOrderedInTime(t *testing.T) {
	a, b := pair()
	res, err := RunSingle(&Env{Rng: util.New(9)}, config.Default(), a, b, true)
	require.NoError(t, err)
	require.NotEmpty(t, res.Events)
	assert.Equal(t, EvFightStart, res.Events[0].Type)
	for i := 1; i < len(res.Events); i++ {
		assert.GreaterOrEqual(t, res.Events[i].T, res.Events[i-1].T)
	}
}

func TestRunLeavesNoEffectsBehind(t *testing.T) {
	bt := newTestBout(t, config.Default(), 21)
	res := bt.Run(&Env{}, false)
	require.NotEmpty(t, res.Method)
	assert.Empty(t, bt.Effects().Active("red"))
	assert.Empty(t, bt.Effects().Active("blue"))
	assert.Zero(t, bt.engine.Memory("red").Decisions)
}

func TestDecisionsUseTickStartSnapshots(t *testing.T) {
	run := func(disturb bool) [2]fighter.Decision {
		bt := newTestBout(t, config.Default(), 33)
		bt.round = 1
		bt.startRound()
		for range 5 {
			bt.tick(1)
		}
		snaps := bt.snapshot()
		first := bt.decide(0, snaps)
		if disturb {
			a := bt.fighters[0]
			a.Position = fighter.Vec2{X: 9.5, Y: 9.5}
			a.State = fighter.StateHurt
			a.IsHurt = true
			a.CurrentStamina = 1
			a.HeadDamage = 500
		}
		return [2]fighter.Decision{first, bt.decide(1, snaps)}
	}

	calm, disturbed := run(false), run(true)
	assert.Equal(t, calm[0], disturbed[0])
	assert.Equal(t, calm[1], disturbed[1], "blue decides against red as red stood when the tick began")
}
