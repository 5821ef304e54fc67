package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

func newResolver() *Resolver { return NewResolver(config.DefaultDamage()) }

func rated(id string, v float64) *fighter.Fighter {
	f := &fighter.Fighter{ID: id}
	f.Defense = fighter.Defense{Blocking: v, HeadMovement: v, ShoulderRoll: v, ClinchOffense: v}
	f.Mental = fighter.Mental{Chin: v, Heart: v, Composure: v, KillerInstinct: v, ClutchFactor: v, Experience: v, Focus: v}
	f.Power = fighter.Power{KnockoutPower: v, PunchingStamina: v}
	f.Prime()
	return f
}

func TestCalculateDamage_Floor(t *testing.T) {
	r := newResolver()
	a, d := rated("a", 50), rated("d", 100)
	for _, base := range []float64{0, 0.1, 0.4, 1, 3} {
		got := r.CalculateDamage(Hit{Punch: fighter.Jab, Target: fighter.TargetHead, Base: base}, a, d)
		assert.GreaterOrEqual(t, got, 1, "base=%v", base)
	}
	got := r.CalculateDamage(Hit{Punch: fighter.Jab, Base: -5}, a, d)
	assert.Equal(t, 1, got)
}

func TestResistanceBounds(t *testing.T) {
	r := newResolver()
	for _, v := range []float64{1, 50, 100} {
		for _, bt := range []fighter.BodyType{fighter.BodyLean, fighter.BodyStocky, ""} {
			d := rated("d", v)
			d.Physical.BodyType = bt
			res := r.Resistance(d)
			assert.GreaterOrEqual(t, res, 0.0)
			assert.LessOrEqual(t, res, 0.3)
		}
	}
}

func TestCalculateDamage_ChinAndFatigue(t *testing.T) {
	r := newResolver()
	a := rated("a", 50)
	glass, granite := rated("g", 10), rated("s", 95)
	granite.Defense.Blocking, granite.Mental.Experience = 10, 10
	glass.Mental.Experience = 10
	hit := Hit{Punch: fighter.RearHook, Target: fighter.TargetHead, Base: 20}
	assert.Greater(t, r.CalculateDamage(hit, a, glass), r.CalculateDamage(hit, a, granite))

	fresh := r.CalculateDamage(hit, a, glass)
	a.CurrentStamina = 0
	assert.Less(t, r.CalculateDamage(hit, a, glass), fresh)

	blocked := hit
	blocked.Blocked = true
	a.CurrentStamina = a.MaxStamina
	assert.Less(t, r.CalculateDamage(blocked, a, glass), fresh)
}

func TestBaseDamage_PowerScales(t *testing.T) {
	r := newResolver()
	weak, strong := rated("w", 20), rated("s", 95)
	assert.Greater(t, r.BaseDamage(fighter.RearHook, strong, 0), r.BaseDamage(fighter.RearHook, weak, 0))
	assert.Greater(t, r.BaseDamage(fighter.Cross, weak, 0.2), r.BaseDamage(fighter.Cross, weak, 0))
	assert.Greater(t, r.BaseDamage(fighter.RearUppercut, weak, 0), r.BaseDamage(fighter.Jab, weak, 0))
}

func TestKnockdownChanceBounds(t *testing.T) {
	r := newResolver()
	d := rated("d", 1)
	d.HeadDamage = fighter.DamageCapacity
	d.CurrentStamina = 0
	d.IsHurt = true
	c := r.KnockdownChance(500, Hit{Punch: fighter.RearUppercut, IsCounter: true}, d)
	assert.Equal(t, 0.9, c)

	fresh := rated("f", 90)
	assert.Equal(t, 0.0, r.KnockdownChance(3, Hit{Punch: fighter.Jab}, fresh))
	assert.Equal(t, 0.0, r.KnockdownChance(500, Hit{Punch: fighter.Jab, Blocked: true}, fresh))
}

func TestKnockdownChance_HooksAndCountersAmplify(t *testing.T) {
	r := newResolver()
	d := rated("d", 40)
	straight := r.KnockdownChance(25, Hit{Punch: fighter.Cross}, d)
	hook := r.KnockdownChance(25, Hit{Punch: fighter.RearHook}, d)
	counter := r.KnockdownChance(25, Hit{Punch: fighter.Cross, IsCounter: true}, d)
	require.Greater(t, straight, 0.0)
	assert.Greater(t, hook, straight)
	assert.Greater(t, counter, straight)
}

func TestRecoveryChanceBounds(t *testing.T) {
	r := newResolver()
	weak := rated("w", 1)
	weak.HeadDamage = fighter.DamageCapacity
	weak.CurrentStamina = 0
	assert.Equal(t, 0.1, r.RecoveryChance(weak, 5, 9))

	iron := rated("i", 100)
	assert.Equal(t, 0.95, r.RecoveryChance(iron, 1, 2))

	avg := rated("a", 60)
	first := r.RecoveryChance(avg, 1, 6)
	third := r.RecoveryChance(avg, 3, 6)
	assert.InDelta(t, first*0.85*0.85, third, 1e-9)
}

func TestCheckHurt_Rare(t *testing.T) {
	r := newResolver()
	rng := util.New(11)
	d := rated("d", 70)
	hurts := 0
	const trials = 20000
	for range trials {
		if r.CheckHurt(rng, 20, d) {
			hurts++
		}
	}
	rate := float64(hurts) / trials
	assert.InDelta(t, 0.03, rate, 0.015)

	assert.False(t, r.CheckHurt(rng, 2, d))
}

func TestTKOProbability(t *testing.T) {
	r := newResolver()
	f := rated("f", 60)
	assert.Equal(t, 0.0, r.TKOProbability(f, 0.5))

	f.HeadDamage = fighter.DamageCapacity * 0.95
	f.KnockdownsThisRound = 2
	f.Cuts = []fighter.Cut{{Location: LocLeftEyebrow, Severity: 4}}
	lenient := r.TKOProbability(f, 0)
	strict := r.TKOProbability(f, 1)
	assert.Greater(t, strict, lenient)
	assert.LessOrEqual(t, strict, 1.0)

	f.KnockdownsThisRound = 3
	assert.Greater(t, r.TKOProbability(f, 0), lenient)
}

func TestCheckCut(t *testing.T) {
	r := newResolver()
	rng := util.New(5)
	_, ok := r.CheckCut(rng, Hit{Punch: fighter.Jab, Target: fighter.TargetHead}, 40)
	assert.False(t, ok, "jabs do not cut")
	_, ok = r.CheckCut(rng, Hit{Punch: fighter.LeadBodyHook, Target: fighter.TargetBody}, 40)
	assert.False(t, ok, "body shots do not cut")
	_, ok = r.CheckCut(rng, Hit{Punch: fighter.LeadHook, Target: fighter.TargetHead}, 12)
	assert.False(t, ok, "needs damage above threshold")

	opened := 0
	for range 2000 {
		c, ok := r.CheckCut(rng, Hit{Punch: fighter.RearUppercut, Target: fighter.TargetHead}, 30)
		if ok {
			opened++
			assert.GreaterOrEqual(t, c.Severity, 0)
			assert.LessOrEqual(t, c.Severity, 4)
		}
	}
	assert.InDelta(t, 0.35, float64(opened)/2000, 0.05)
}

func TestApplyCutDeepens(t *testing.T) {
	f := rated("f", 50)
	ApplyCut(f, fighter.Cut{Location: LocNose, Severity: 1})
	c := ApplyCut(f, fighter.Cut{Location: LocNose, Severity: 0})
	assert.Equal(t, 2, c.Severity)
	assert.Len(t, f.Cuts, 1)
}

func TestSwellingAndVision(t *testing.T) {
	r := newResolver()
	rng := util.New(9)
	f := rated("f", 50)
	_, ok := r.CheckSwelling(rng, f)
	assert.False(t, ok)

	f.CleanHeadPunchesTaken = 60
	var got bool
	for range 200 {
		if s, ok := r.CheckSwelling(rng, f); ok {
			assert.Equal(t, 2, s.Severity)
			got = true
		}
	}
	require.True(t, got)
	assert.Empty(t, f.Swelling, "rolling alone leaves the fighter untouched")

	s := ApplySwelling(f, fighter.Swelling{Location: LocLeftEye, Severity: 2})
	assert.Equal(t, 2, s.Severity)
	s = ApplySwelling(f, fighter.Swelling{Location: LocLeftEye, Severity: 1})
	assert.Equal(t, 2, s.Severity)
	s = ApplySwelling(f, fighter.Swelling{Location: LocLeftEye, Severity: 3})
	assert.Equal(t, 3, s.Severity)
	require.Len(t, f.Swelling, 1)

	for range 200 {
		if s, ok := r.CheckSwelling(rng, f); ok {
			assert.Equal(t, LocRightEye, s.Location, "the left eye is already worse than the roll")
		}
	}

	f.Cuts = []fighter.Cut{{Location: LocLeftEyebrow, Severity: 4}, {Location: LocNose, Severity: 4}}
	f.Swelling = []fighter.Swelling{{Location: LocLeftEye, Severity: 4}, {Location: LocRightEye, Severity: 4}}
	assert.Equal(t, 0.8, r.VisionImpairment(f))
}

func TestBetweenRoundRecovery(t *testing.T) {
	r := newResolver()
	f := rated("f", 50)
	f.HeadDamage, f.BodyDamage = 100, 100
	r.BetweenRoundRecovery(f)
	assert.Less(t, f.HeadDamage, 100.0)
	assert.Less(t, f.BodyDamage, 100.0)
	assert.Less(t, f.HeadDamage, f.BodyDamage)
	assert.GreaterOrEqual(t, f.HeadDamage, 0.0)
}
