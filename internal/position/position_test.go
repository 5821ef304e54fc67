package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

func pair(ax, bx float64) (*fighter.Fighter, *fighter.Fighter) {
	a := fighter.New("red")
	b := fighter.New("blue")
	a.Position = fighter.Vec2{X: ax}
	b.Position = fighter.Vec2{X: bx}
	return a, b
}

func still() config.RingConfig {
	cfg := config.DefaultRing()
	cfg.Jitter = 0
	return cfg
}

func move(d fighter.Direction) fighter.Decision {
	return fighter.Decision{State: fighter.StateMoving, Action: fighter.MoveAction(d)}
}

func TestForwardClosesDistance(t *testing.T) {
	m := NewModel(config.DefaultRing(), util.New(1))
	a, b := pair(-4, 4)
	before := Distance(a, b)

	m.UpdatePair(a, move(fighter.DirForward), b, move(fighter.DirForward), 1)

	after := Distance(a, b)
	assert.Less(t, after, before)
	assert.GreaterOrEqual(t, after, 1.0-1e-9)
}

func TestStaysInRingAndApart(t *testing.T) {
	cfg := config.DefaultRing()
	rng := util.New(42)
	m := NewModel(cfg, rng)
	a, b := pair(-4, 4)
	states := append([]fighter.State{fighter.StateNeutral}, fighter.PrimaryStates...)
	subs := []fighter.SubState{fighter.SubCircle, fighter.SubCloseDistance, fighter.SubEscape, fighter.SubFootwork, fighter.SubNone}
	dirs := []fighter.Direction{fighter.DirForward, fighter.DirBackward, fighter.DirLeft, fighter.DirRight}

	random := func() fighter.Decision {
		d := fighter.Decision{State: states[rng.Intn(len(states))], SubState: subs[rng.Intn(len(subs))]}
		if rng.Intn(3) == 0 {
			d.Action = fighter.MoveAction(dirs[rng.Intn(len(dirs))])
		}
		return d
	}

	for i := 0; i < 3000; i++ {
		m.UpdatePair(a, random(), b, random(), 1)
		for _, f := range []*fighter.Fighter{a, b} {
			require.LessOrEqual(t, f.Position.X, cfg.HalfWidth)
			require.GreaterOrEqual(t, f.Position.X, -cfg.HalfWidth)
			require.LessOrEqual(t, f.Position.Y, cfg.HalfWidth)
			require.GreaterOrEqual(t, f.Position.Y, -cfg.HalfWidth)
		}
		require.GreaterOrEqual(t, Distance(a, b), cfg.MinSeparation-1e-9, "tick %d", i)
	}
}

func TestSeparatesStackedFighters(t *testing.T) {
	m := NewModel(still(), util.New(1))
	a, b := pair(0, 0)
	m.UpdatePair(a, fighter.Decision{}, b, fighter.Decision{}, 1)
	assert.InDelta(t, 1.0, Distance(a, b), 1e-9)

	// both pinned in the same corner
	a.Position = fighter.Vec2{X: 10, Y: 10}
	b.Position = fighter.Vec2{X: 10, Y: 10}
	m.UpdatePair(a, fighter.Decision{}, b, fighter.Decision{}, 1)
	assert.GreaterOrEqual(t, Distance(a, b), 1.0-1e-9)
	assert.LessOrEqual(t, a.Position.X, 10.0)
	assert.LessOrEqual(t, b.Position.X, 10.0)
}

func TestUpdatePairOrderIndependent(t *testing.T) {
	a1, b1 := pair(-3, 2)
	a1.Speed.FootSpeed = 80
	a2, b2 := pair(-3, 2)
	a2.Speed.FootSpeed = 80

	NewModel(still(), util.New(1)).UpdatePair(a1, move(fighter.DirForward), b1, move(fighter.DirBackward), 1)
	NewModel(still(), util.New(1)).UpdatePair(b2, move(fighter.DirBackward), a2, move(fighter.DirForward), 1)

	assert.InDelta(t, a1.Position.X, a2.Position.X, 1e-9)
	assert.InDelta(t, a1.Position.Y, a2.Position.Y, 1e-9)
	assert.InDelta(t, b1.Position.X, b2.Position.X, 1e-9)
	assert.InDelta(t, b1.Position.Y, b2.Position.Y, 1e-9)
}

func TestDownedFighterDoesNotMove(t *testing.T) {
	m := NewModel(still(), util.New(1))
	a, b := pair(-4, 4)
	a.State = fighter.StateDown
	m.UpdatePair(a, fighter.Decision{State: fighter.StateDown}, b, fighter.Decision{State: fighter.StateNeutral}, 1)
	assert.Equal(t, fighter.Vec2{X: -4}, a.Position)
}

func TestDistanceManagementResistsClosing(t *testing.T) {
	even, _ := pair(-4, 4)
	evenOpp := fighter.New("opp")
	evenOpp.Position = fighter.Vec2{X: 4}

	slow, _ := pair(-4, 4)
	slow.Technical.DistanceManagement = 10
	ring := fighter.New("ring")
	ring.Position = fighter.Vec2{X: 4}
	ring.Technical.DistanceManagement = 95

	wait := fighter.Decision{State: fighter.StateNeutral, Action: fighter.Wait()}
	NewModel(still(), util.New(1)).UpdatePair(even, move(fighter.DirForward), evenOpp, wait, 1)
	NewModel(still(), util.New(1)).UpdatePair(slow, move(fighter.DirForward), ring, wait, 1)

	assert.Greater(t, even.Position.X, slow.Position.X)
}

func TestCirclingPersists(t *testing.T) {
	cfg := still()
	m := NewModel(cfg, util.New(3))
	f := fighter.New("a")
	toward := fighter.Vec2{X: 1}

	last := m.circle(f, toward)
	run := 1
	for i := 0; i < 500; i++ {
		next := m.circle(f, toward)
		if next == last {
			run++
			continue
		}
		require.GreaterOrEqual(t, run, cfg.CircleMinTicks)
		run = 1
		last = next
	}
}

func TestZones(t *testing.T) {
	m := NewModel(config.DefaultRing(), util.New(1))
	cases := []struct {
		dist float64
		want Zone
	}{
		{1.0, ZoneClinch},
		{2.5, ZoneInside},
		{4, ZoneMid},
		{6.5, ZoneLong},
		{8, ZoneOutside},
		{12, ZoneOutOfRange},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, m.Zone(c.dist), "distance %.1f", c.dist)
	}

	assert.Equal(t, RingCenter, m.RingZoneOf(fighter.Vec2{}))
	assert.Equal(t, RingRopes, m.RingZoneOf(fighter.Vec2{X: 9.2}))
	assert.Equal(t, RingCorner, m.RingZoneOf(fighter.Vec2{X: -9, Y: 8}))
}

func TestRingControlAndAdvantage(t *testing.T) {
	m := NewModel(config.DefaultRing(), util.New(1))
	center := fighter.New("c")
	trapped := fighter.New("t")
	trapped.Position = fighter.Vec2{X: 9, Y: 9}

	assert.Greater(t, m.RingControl(center, trapped), 0.0)
	assert.InDelta(t, -m.RingControl(center, trapped), m.RingControl(trapped, center), 1e-12)

	adv := m.PositionAdvantage(center, trapped)
	assert.Greater(t, adv, 0.0)
	assert.LessOrEqual(t, adv, 1.0)
	assert.Less(t, m.PositionAdvantage(trapped, center), 0.0)
	assert.GreaterOrEqual(t, m.PositionAdvantage(trapped, center), -1.0)

	assert.InDelta(t, 0.7853981, RelativeAngle(center, trapped), 1e-6)
}

func TestResetCorners(t *testing.T) {
	m := NewModel(config.DefaultRing(), util.New(1))
	a, b := pair(0, 1)
	m.Movement(a.ID)
	m.ResetCorners(a, b)
	assert.Equal(t, RingCorner, m.RingZoneOf(a.Position))
	assert.Equal(t, RingCorner, m.RingZoneOf(b.Position))
	assert.InDelta(t, -a.Position.X, b.Position.X, 1e-12)
	assert.Empty(t, m.movement)

	m.Place(a, b, 8)
	assert.Equal(t, fighter.Vec2{X: -4}, a.Position)
	assert.Equal(t, fighter.Vec2{X: 4}, b.Position)
}

func TestCircleDirectionSharesState(t *testing.T) {
	m := NewModel(still(), util.New(5))
	first := m.CircleDirection("a")
	ms := m.Movement("a")
	want := fighter.DirRight
	if ms.Direction > 0 {
		want = fighter.DirLeft
	}
	assert.Equal(t, want, first)
	for i := 0; i < 4; i++ {
		assert.Equal(t, first, m.CircleDirection("a"), "direction holds for the minimum circling time")
	}
}

func TestFatigueAndFootworkSlowMovement(t *testing.T) {
	m := NewModel(still(), util.New(1))
	fresh := fighter.New("fresh")
	fresh.Technical.Footwork = 90
	gassed := fighter.New("gassed")
	gassed.Technical.Footwork = 10
	gassed.CurrentStamina = gassed.MaxStamina * 0.05

	assert.Greater(t, m.Speed(fresh), m.Speed(gassed))

	step := func(f *fighter.Fighter) float64 {
		opp := fighter.New("opp")
		f.Position = fighter.Vec2{X: -6}
		opp.Position = fighter.Vec2{X: 6}
		NewModel(still(), util.New(1)).UpdatePair(f, move(fighter.DirForward), opp, fighter.Decision{}, 1)
		return f.Position.X + 6
	}
	freshStep, gassedStep := step(fresh), step(gassed)
	assert.Greater(t, freshStep, gassedStep)
	assert.Positive(t, gassedStep)
}

func TestDefaultMovementByState(t *testing.T) {
	decide := func(s fighter.State, sub fighter.SubState) fighter.Decision {
		return fighter.Decision{State: s, SubState: sub, Action: fighter.Wait()}
	}
	// run moves a at distance dist from a motionless b and returns how far a
	// travelled and the new distance.
	run := func(d fighter.Decision, dist float64) (float64, float64) {
		a, b := pair(-dist/2, dist/2)
		a.OptimalRange = 4
		start := a.Position
		NewModel(still(), util.New(2)).UpdatePair(a, d, b, fighter.Decision{}, 1)
		return a.Position.Dist(start), Distance(a, b)
	}

	forward, _ := run(move(fighter.DirForward), 8)

	t.Run("neutral drifts toward optimal range", func(t *testing.T) {
		moved, dist := run(decide(fighter.StateNeutral, fighter.SubNone), 10)
		assert.Positive(t, moved)
		assert.Less(t, dist, 10.0)

		_, dist = run(decide(fighter.StateNeutral, fighter.SubNone), 2)
		assert.Greater(t, dist, 2.0)
	})

	t.Run("offensive circles inside range", func(t *testing.T) {
		moved, dist := run(decide(fighter.StateOffensive, fighter.SubJab), 3)
		assert.Positive(t, moved)
		assert.LessOrEqual(t, dist, 3.0)
	})

	t.Run("defensive circles away", func(t *testing.T) {
		for _, sub := range []fighter.SubState{fighter.SubBlock, fighter.SubHeadMovement, fighter.SubCover} {
			moved, dist := run(decide(fighter.StateDefensive, sub), 3)
			assert.Positive(t, moved, sub)
			assert.Greater(t, dist, 3.0, sub)
		}
	})

	t.Run("clinch barely drifts", func(t *testing.T) {
		moved, _ := run(decide(fighter.StateClinch, fighter.SubNone), 3)
		assert.Positive(t, moved)
		assert.Less(t, moved, forward*0.2)
	})
}
