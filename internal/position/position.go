// Package position moves fighters around a square ring and answers spatial
// questions about them.
package position

import (
	"math"
	"math/rand"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

// Zone buckets the distance between two fighters.
type Zone string

const (
	ZoneClinch     Zone = "clinch"
	ZoneInside     Zone = "inside"
	ZoneMid        Zone = "mid"
	ZoneLong       Zone = "long"
	ZoneOutside    Zone = "outside"
	ZoneOutOfRange Zone = "out_of_range"
)

// RingZone is where a single fighter stands in the ring.
type RingZone string

const (
	RingCenter RingZone = "center"
	RingRopes  RingZone = "ropes"
	RingCorner RingZone = "corner"
)

// MovementState keeps a fighter circling the same way for a while.
type MovementState struct {
	Direction float64 // +1 counter-clockwise, -1 clockwise
	Timer     int     // ticks before the direction is reconsidered
}

type Model struct {
	cfg      config.RingConfig
	rng      *rand.Rand
	movement map[string]*MovementState
}

func NewModel(cfg config.RingConfig, rng *rand.Rand) *Model {
	return &Model{cfg: cfg, rng: rng, movement: map[string]*MovementState{}}
}

// Movement returns the circling state of a fighter, creating it on first use.
func (m *Model) Movement(id string) *MovementState {
	ms, ok := m.movement[id]
	if !ok {
		ms = &MovementState{Direction: 1}
		if m.rng.Intn(2) == 0 {
			ms.Direction = -1
		}
		ms.Timer = util.RangeInt(m.rng, m.cfg.CircleMinTicks, m.cfg.CircleMaxTicks)
		m.movement[id] = ms
	}
	return ms
}

// Reset forgets all movement state.
func (m *Model) Reset() { m.movement = map[string]*MovementState{} }

// UpdatePair moves both fighters for one tick. Both displacements are
// computed from the same starting positions, so the order of a and b does
// not matter. Afterwards both are inside the ring and at least
// MinSeparation apart.
func (m *Model) UpdatePair(a *fighter.Fighter, decA fighter.Decision, b *fighter.Fighter, decB fighter.Decision, dt float64) {
	if dt <= 0 || math.IsNaN(dt) {
		m.separate(a, b)
		return
	}
	posA, posB := a.Position, b.Position
	dispA := m.displacement(a, decA, posA, b, posB, dt)
	dispB := m.displacement(b, decB, posB, a, posA, dt)
	a.Position = m.Clamp(posA.Add(dispA))
	b.Position = m.Clamp(posB.Add(dispB))
	m.separate(a, b)
}

func (m *Model) displacement(f *fighter.Fighter, d fighter.Decision, self fighter.Vec2, opp *fighter.Fighter, other fighter.Vec2, dt float64) fighter.Vec2 {
	if d.State == fighter.StateDown || f.State == fighter.StateDown {
		return fighter.Vec2{}
	}
	toward := other.Sub(self).Norm()
	if toward == (fighter.Vec2{}) {
		toward = fighter.Vec2{X: 1}
	}
	dist := self.Dist(other)

	dir, effort := m.intent(f, d, toward, dist)
	speed := m.Speed(f) * dt

	// distance control: the better distance manager resists being closed
	// down and slips away more easily
	adv := (f.Attr(f.Technical.DistanceManagement) - opp.Attr(opp.Technical.DistanceManagement)) / 100
	switch along := dir.Dot(toward); {
	case along > 0 && adv < 0:
		effort *= 1 + m.cfg.ClosingResist*adv
	case along < 0 && adv > 0:
		effort *= 1 + m.cfg.RetreatBoost*adv
	}

	disp := dir.Norm().Scale(speed * effort)
	disp = m.ropeBlend(self, disp)

	if m.RingZoneOf(self) == RingCorner && d.State != fighter.StateOffensive && d.State != fighter.StateClinch {
		disp = disp.Add(self.Scale(-1).Norm().Scale(speed * 0.5))
	}

	if m.cfg.Jitter > 0 {
		disp = disp.Add(fighter.Vec2{
			X: (m.rng.Float64()*2 - 1) * m.cfg.Jitter,
			Y: (m.rng.Float64()*2 - 1) * m.cfg.Jitter,
		})
	}
	return disp
}

// Speed is how far f covers in one second at full effort. Foot speed sets
// the pace; fatigue and poor footwork take from it.
func (m *Model) Speed(f *fighter.Fighter) float64 {
	speed := m.cfg.BaseSpeed + f.Rating(fighter.BuffFootSpeed, f.Speed.FootSpeed)/100*m.cfg.FootSpeedScale
	floor := util.Clamp01(m.cfg.StaminaFloor)
	speed *= floor + (1-floor)*util.Clamp01(f.StaminaPercent())
	speed *= math.Max(0.1, 1+m.cfg.FootworkScale*(f.Attr(f.Technical.Footwork)-50)/100)
	if f.IsHurt {
		speed *= 0.6
	}
	return speed
}

// intent returns the unit direction a fighter wants to move in and the share
// of full speed it commits.
func (m *Model) intent(f *fighter.Fighter, d fighter.Decision, toward fighter.Vec2, dist float64) (fighter.Vec2, float64) {
	away := toward.Scale(-1)
	if d.Action.Kind == fighter.ActionMove {
		switch d.Action.Direction {
		case fighter.DirForward:
			return toward, 1
		case fighter.DirBackward:
			return away, 1
		case fighter.DirLeft:
			return toward.Perp(), 1
		case fighter.DirRight:
			return toward.Perp().Scale(-1), 1
		}
	}

	switch d.State {
	case fighter.StateNeutral:
		switch {
		case dist > f.OptimalRange+0.5:
			return toward, 0.3
		case dist < f.OptimalRange-0.5:
			return away, 0.3
		}
		return fighter.Vec2{}, 0
	case fighter.StateOffensive:
		if dist > f.OptimalRange {
			return toward, 0.6
		}
		return m.circle(f, toward).Add(toward.Scale(0.5)), 0.4
	case fighter.StateClinch:
		return toward, 0.1
	case fighter.StateMoving:
		switch d.SubState {
		case fighter.SubCloseDistance, fighter.SubCutOff:
			return toward, 1
		case fighter.SubCreateDistance, fighter.SubEscape:
			return away, 1
		}
		return m.circle(f, toward), 0.8
	case fighter.StateTiming:
		switch {
		case dist < f.OptimalRange-0.5:
			return away, 0.4
		case dist > f.OptimalRange+0.5:
			return toward, 0.4
		}
		return m.circle(f, toward), 0.3
	case fighter.StateDefensive:
		if d.SubState == fighter.SubFootwork {
			return away, 0.5
		}
		return m.circle(f, toward).Add(away.Scale(0.5)), 0.35
	case fighter.StateHurt:
		return away, 0.3
	}
	return fighter.Vec2{}, 0
}

func (m *Model) circle(f *fighter.Fighter, toward fighter.Vec2) fighter.Vec2 {
	return toward.Perp().Scale(m.circleSign(f.ID))
}

// circleSign advances the fighter's circling timer and returns the current
// direction, reconsidering it only when the timer has run out.
func (m *Model) circleSign(id string) float64 {
	ms := m.Movement(id)
	if ms.Timer <= 0 {
		if m.rng.Intn(2) == 0 {
			ms.Direction = -ms.Direction
		}
		ms.Timer = util.RangeInt(m.rng, m.cfg.CircleMinTicks, m.cfg.CircleMaxTicks)
	}
	ms.Timer--
	return ms.Direction
}

// CircleDirection is the lateral step a fighter circling by choice takes
// this tick. It shares the persistence of the default circling policy.
func (m *Model) CircleDirection(id string) fighter.Direction {
	if m.circleSign(id) > 0 {
		return fighter.DirLeft
	}
	return fighter.DirRight
}

// ropeBlend turns most of a move into the ropes into a move along them.
func (m *Model) ropeBlend(pos, disp fighter.Vec2) fighter.Vec2 {
	limit := m.cfg.HalfWidth - m.cfg.RopeZone
	if math.Abs(pos.X) > limit && disp.X*pos.X > 0 {
		out := math.Abs(disp.X) * 0.7
		disp.X *= 0.3
		disp.Y += math.Copysign(out*0.5, slide(disp.Y, pos.Y))
	}
	if math.Abs(pos.Y) > limit && disp.Y*pos.Y > 0 {
		out := math.Abs(disp.Y) * 0.7
		disp.Y *= 0.3
		disp.X += math.Copysign(out*0.5, slide(disp.X, pos.X))
	}
	return disp
}

// slide keeps an existing sideways motion, otherwise heads back toward the
// middle of the rope.
func slide(along, coord float64) float64 {
	switch {
	case along != 0:
		return along
	case coord != 0:
		return -coord
	}
	return 1
}

// Clamp keeps a point inside the ring.
func (m *Model) Clamp(p fighter.Vec2) fighter.Vec2 {
	h := m.cfg.HalfWidth
	return fighter.Vec2{X: util.Clamp(p.X, -h, h), Y: util.Clamp(p.Y, -h, h)}
}

// separate pushes the fighters apart symmetrically until they are at least
// MinSeparation apart, falling back to moving one of them when the other is
// pinned against the ropes.
func (m *Model) separate(a, b *fighter.Fighter) {
	a.Position, b.Position = m.Clamp(a.Position), m.Clamp(b.Position)
	minSep := m.cfg.MinSeparation
	d := a.Position.Dist(b.Position)
	if d >= minSep {
		return
	}
	axis := b.Position.Sub(a.Position).Norm()
	if axis == (fighter.Vec2{}) {
		axis = fighter.Vec2{X: 1}
		if a.Position.X > 0 {
			axis = fighter.Vec2{X: -1}
		}
	}
	push := (minSep - d) / 2
	a.Position = m.Clamp(a.Position.Sub(axis.Scale(push)))
	b.Position = m.Clamp(b.Position.Add(axis.Scale(push)))
	if a.Position.Dist(b.Position) >= minSep-1e-9 {
		return
	}
	for _, ax := range []fighter.Vec2{axis, axis.Perp(), axis.Perp().Scale(-1), axis.Scale(-1)} {
		if p := m.Clamp(a.Position.Add(ax.Scale(minSep))); p.Dist(a.Position) >= minSep-1e-9 {
			b.Position = p
			return
		}
		if p := m.Clamp(b.Position.Sub(ax.Scale(minSep))); p.Dist(b.Position) >= minSep-1e-9 {
			a.Position = p
			return
		}
	}
}

// Distance between two fighters.
func Distance(a, b *fighter.Fighter) float64 { return a.Position.Dist(b.Position) }

// Zone buckets a distance using the configured bounds.
func (m *Model) Zone(distance float64) Zone {
	zones := [...]Zone{ZoneClinch, ZoneInside, ZoneMid, ZoneLong, ZoneOutside}
	for i, bound := range m.cfg.ZoneBounds {
		if distance <= bound {
			return zones[i]
		}
	}
	return ZoneOutOfRange
}

func (m *Model) RingZoneOf(p fighter.Vec2) RingZone {
	dx := m.cfg.HalfWidth - math.Abs(p.X)
	dy := m.cfg.HalfWidth - math.Abs(p.Y)
	switch {
	case dx < m.cfg.CornerZone && dy < m.cfg.CornerZone:
		return RingCorner
	case math.Min(dx, dy) < m.cfg.RopeZone:
		return RingRopes
	}
	return RingCenter
}

// RingControl is positive when f holds the center relative to opp, in [-1, 1].
func (m *Model) RingControl(f, opp *fighter.Fighter) float64 {
	if m.cfg.HalfWidth <= 0 {
		return 0
	}
	own := f.Position.Len()
	theirs := opp.Position.Len()
	return util.Clamp((theirs-own)/(m.cfg.HalfWidth*math.Sqrt2), -1, 1)
}

// PositionAdvantage scores f's spatial situation against opp in [-1, 1]:
// ring control, the opponent being trapped and distance to preferred range.
func (m *Model) PositionAdvantage(f, opp *fighter.Fighter) float64 {
	adv := m.RingControl(f, opp) * 0.5
	adv += trapScore(m.RingZoneOf(opp.Position)) - trapScore(m.RingZoneOf(f.Position))

	dist := Distance(f, opp)
	ownGap := math.Abs(dist - f.OptimalRange)
	oppGap := math.Abs(dist - opp.OptimalRange)
	adv += util.Clamp((oppGap-ownGap)/4, -1, 1) * 0.2
	return util.Clamp(adv, -1, 1)
}

func trapScore(z RingZone) float64 {
	switch z {
	case RingCorner:
		return 0.4
	case RingRopes:
		return 0.2
	}
	return 0
}

// RelativeAngle is the bearing of opp from f in radians, (-Pi, Pi].
func RelativeAngle(f, opp *fighter.Fighter) float64 {
	return opp.Position.Sub(f.Position).Angle()
}

// ResetCorners sends a to the red corner and b to the blue corner and clears
// circling state.
func (m *Model) ResetCorners(a, b *fighter.Fighter) {
	c := m.cfg.HalfWidth - m.cfg.CornerZone/2
	a.Position = fighter.Vec2{X: -c, Y: -c}
	b.Position = fighter.Vec2{X: c, Y: c}
	m.Reset()
}

// Place puts both fighters on the center line distance apart, a on the left.
func (m *Model) Place(a, b *fighter.Fighter, distance float64) {
	half := math.Max(distance, m.cfg.MinSeparation) / 2
	a.Position = m.Clamp(fighter.Vec2{X: -half})
	b.Position = m.Clamp(fighter.Vec2{X: half})
	m.Reset()
}
