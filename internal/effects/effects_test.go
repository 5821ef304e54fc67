package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

func newRegistry(seed int64) *Registry {
	return NewRegistry(config.DefaultEffects(), util.New(seed))
}

func TestEffectExpiresAfterItsDuration(t *testing.T) {
	r := newRegistry(1)
	_, ok := r.Apply("a", Rattled, 1, 1)
	require.True(t, ok)
	assert.True(t, r.Has("a", Rattled))

	expired := r.Tick()
	assert.False(t, r.Has("a", Rattled))
	assert.Equal(t, []Expired{{FighterID: "a", Type: Rattled}}, expired)
}

func TestApplyRefreshesAndStacks(t *testing.T) {
	r := newRegistry(1)
	for i := 0; i < 5; i++ {
		r.Apply("a", Confidence, 0.3, 10)
	}
	e, ok := r.Get("a", Confidence)
	require.True(t, ok)
	assert.Equal(t, 3, e.Stacks)
	assert.Equal(t, 3, e.MaxStacks)

	r.Tick()
	r.Apply("a", Confidence, 0.9, 5)
	e, _ = r.Get("a", Confidence)
	assert.Equal(t, 9, e.Duration, "refresh keeps the longer duration")
	assert.InDelta(t, 0.9, e.Intensity, 1e-12)

	_, ok = r.Apply("a", Type("nope"), 1, 5)
	assert.False(t, ok)

	e, _ = r.Apply("b", Focused, 1, 0)
	assert.Equal(t, 45, e.Duration)
}

func TestMomentumIsExclusive(t *testing.T) {
	r := newRegistry(1)
	r.Pair("a", "b")
	r.Apply("a", Momentum, 1, 0)
	require.True(t, r.Has("a", Momentum))

	r.Apply("b", Momentum, 1, 0)
	assert.True(t, r.Has("b", Momentum))
	assert.False(t, r.Has("a", Momentum))
	assert.Equal(t, "a", r.Opponent("b"))
}

func TestCancellingEffects(t *testing.T) {
	r := newRegistry(1)
	r.Apply("a", Hesitant, 1, 0)
	r.Apply("a", Confidence, 1, 0)
	assert.False(t, r.Has("a", Hesitant))
	assert.True(t, r.Has("a", Confidence))
}

func TestSoftExpiry(t *testing.T) {
	r := newRegistry(1)
	r.Apply("a", Focused, 1, 100)
	e, _ := r.Get("a", Focused)
	assert.InDelta(t, 1.0, r.EffectiveIntensity(e), 1e-12)

	for i := 0; i < 80; i++ {
		r.Tick()
	}
	e, _ = r.Get("a", Focused)
	assert.Equal(t, 20, e.Duration)
	assert.InDelta(t, 0.8, r.EffectiveIntensity(e), 1e-12)

	e.Stacks = 2
	assert.InDelta(t, 1.6, r.EffectiveIntensity(e), 1e-12)
}

func TestAggregateModifiersClamped(t *testing.T) {
	r := newRegistry(1)
	assert.Zero(t, r.AggressionModifier("a"))

	for _, typ := range []Type{KillerMode, Desperation, FastStart, Momentum} {
		r.Apply("a", typ, 1, 0)
	}
	cfg := config.DefaultEffects()
	assert.InDelta(t, cfg.AggressionBound, r.AggressionModifier("a"), 1e-12)
	assert.InDelta(t, -0.25, r.DefenseModifier("a"), 1e-12)
	assert.InDelta(t, 0.2, r.PowerModifier("a"), 1e-12)
	assert.InDelta(t, 0.05, r.SpeedModifier("a"), 1e-12)
	assert.InDelta(t, 0.05, r.AccuracyModifier("a"), 1e-12)

	r.Apply("b", HeavyLegs, 1, 0)
	r.Apply("b", HeavyLegs, 1, 0)
	assert.InDelta(t, -0.4, r.Modifiers("b")[Speed], 1e-12)
	assert.InDelta(t, -cfg.SpeedBound, r.SpeedModifier("b"), 1e-12)
}

func TestActiveIsOrdered(t *testing.T) {
	r := newRegistry(1)
	r.Apply("a", Rattled, 1, 0)
	r.Apply("a", Adrenaline, 1, 0)
	r.Apply("a", KillerMode, 1, 0)
	var types []Type
	for _, e := range r.Active("a") {
		types = append(types, e.Type)
	}
	assert.Equal(t, []Type{Adrenaline, KillerMode, Rattled}, types)
	assert.Empty(t, r.Active("nobody"))
}

func TestMomentumScoreZeroSum(t *testing.T) {
	r := newRegistry(1)
	r.Pair("a", "b")
	r.AdjustMomentum("a", 30)
	assert.Equal(t, 30.0, r.MomentumScore("a"))
	assert.Equal(t, -30.0, r.MomentumScore("b"))

	r.AdjustMomentum("b", 500)
	assert.Equal(t, 100.0, r.MomentumScore("b"))
	assert.Equal(t, -100.0, r.MomentumScore("a"))

	r.Tick()
	assert.InDelta(t, 99.0, r.MomentumScore("b"), 1e-9)
	assert.InDelta(t, 0.0, r.MomentumScore("a")+r.MomentumScore("b"), 1e-9)
}

func TestMomentumShiftDetection(t *testing.T) {
	r := newRegistry(1)
	_, ok := r.DetectMomentumShift("solo")
	assert.False(t, ok)

	r.Pair("a", "b")
	_, ok = r.DetectMomentumShift("a")
	assert.False(t, ok, "nobody leads yet")

	r.AdjustMomentum("a", 20)
	shift, ok := r.DetectMomentumShift("a")
	require.True(t, ok)
	assert.Equal(t, "a", shift.Leader)
	assert.Equal(t, ShiftFromNeutral, shift.Kind)
	assert.True(t, r.Has("a", Momentum))

	r.AdjustMomentum("b", 50)
	_, ok = r.DetectMomentumShift("b")
	assert.False(t, ok, "cooldown")

	for i := 0; i < 30; i++ {
		r.Tick()
	}
	shift, ok = r.DetectMomentumShift("a")
	require.True(t, ok)
	assert.Equal(t, "b", shift.Leader)
	assert.Equal(t, ShiftLeadChange, shift.Kind)
	assert.True(t, r.Has("b", Momentum))
	assert.False(t, r.Has("a", Momentum))
}

func TestSustainedDominance(t *testing.T) {
	r := newRegistry(1)
	r.Pair("a", "b")
	r.AdjustMomentum("a", 80)
	_, ok := r.DetectMomentumShift("a")
	require.True(t, ok)

	for i := 1; i < 90; i++ {
		r.Tick()
		r.AdjustMomentum("a", 80-r.MomentumScore("a"))
		_, ok = r.DetectMomentumShift("b")
		require.False(t, ok, "tick %d", i)
	}
	r.Tick()
	r.AdjustMomentum("a", 80-r.MomentumScore("a"))
	shift, ok := r.DetectMomentumShift("b")
	require.True(t, ok)
	assert.Equal(t, ShiftDominance, shift.Kind)
	assert.Equal(t, "a", shift.Leader)
}

func TestEventHandlers(t *testing.T) {
	r := newRegistry(3)
	a := fighter.New("a")
	b := fighter.New("b")
	r.Pair("a", "b")

	r.OnKnockdown(a, b)
	assert.Equal(t, 20.0, r.MomentumScore("a"))
	assert.True(t, r.Has("a", Confidence))
	assert.True(t, r.Has("b", Rattled))

	applied := r.OnCutOpened(b, 2)
	assert.Contains(t, applied, Applied{FighterID: "b", Type: CutConcern})
	e, _ := r.Get("b", CutConcern)
	assert.InDelta(t, 0.5, e.Intensity, 1e-12)

	assert.Empty(t, r.OnHighOutput(a, 3))
	assert.Empty(t, r.OnBehindOnCards(a, 0, 2))
	assert.Empty(t, r.OnBigFight(a, false))

	r.OnHurt(b, a)
	assert.True(t, r.Has("a", Rattled))
	assert.Less(t, r.MomentumScore("a"), 20.0)
}

func TestDesperationWhenBehindLate(t *testing.T) {
	hits := 0
	for seed := int64(1); seed <= 200; seed++ {
		r := newRegistry(seed)
		f := fighter.New("a")
		f.Mental.ClutchFactor = 100
		if len(r.OnBehindOnCards(f, 4, 2)) > 0 {
			hits++
			assert.True(t, r.Has("a", Desperation))
		}
	}
	assert.InDelta(t, 160, hits, 30)
}

func TestClearResetsEverything(t *testing.T) {
	r := newRegistry(1)
	r.Pair("a", "b")
	r.Apply("a", Momentum, 1, 0)
	r.AdjustMomentum("a", 40)
	r.Tick()
	r.Clear()
	assert.False(t, r.Has("a", Momentum))
	assert.Zero(t, r.MomentumScore("a"))
	assert.Equal(t, "", r.Opponent("a"))
	assert.Zero(t, r.Now())
}
