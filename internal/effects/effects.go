// Package effects tracks the short-lived psychological and physical states
// fight events put fighters in, and reduces them into attribute modifiers.
package effects

import (
	"math/rand"
	"slices"

	"ringsim/internal/config"
	"ringsim/internal/util"
)

type Type string

const (
	Momentum    Type = "momentum"
	Confidence  Type = "confidence"
	Adrenaline  Type = "adrenaline"
	Focused     Type = "focused"
	KillerMode  Type = "killer_mode"
	BigFight    Type = "big_fight"
	FastStart   Type = "fast_start"
	Desperation Type = "desperation"

	Rattled     Type = "rattled"
	Frustrated  Type = "frustrated"
	Hesitant    Type = "hesitant"
	Intimidated Type = "intimidated"
	CutConcern  Type = "cut_concern"
	FocusLapse  Type = "focus_lapse"
	HeavyLegs   Type = "heavy_legs"
)

type Category string

const (
	Buff   Category = "buff"
	Debuff Category = "debuff"
)

// Attribute is one of the fighter qualities effects can shift.
type Attribute int

const (
	Aggression Attribute = iota
	Defense
	Accuracy
	Power
	Speed
	NumAttributes
)

func (a Attribute) String() string {
	switch a {
	case Aggression:
		return "aggression"
	case Defense:
		return "defense"
	case Accuracy:
		return "accuracy"
	case Power:
		return "power"
	case Speed:
		return "speed"
	}
	return "unknown"
}

// Modifiers holds one delta per Attribute.
type Modifiers [NumAttributes]float64

// Add returns m + o*scale.
func (m Modifiers) Add(o Modifiers, scale float64) Modifiers {
	for i := range m {
		m[i] += o[i] * scale
	}
	return m
}

// Definition is the static shape of an effect type.
type Definition struct {
	Category  Category
	Duration  int // default ticks
	MaxStacks int
	Modifiers Modifiers // at intensity 1 and one stack
	Cancels   []Type
}

var definitions = map[Type]Definition{
	Momentum: {Category: Buff, Duration: 30, MaxStacks: 1,
		Modifiers: Modifiers{Aggression: 0.15, Accuracy: 0.05, Power: 0.05}},
	Confidence: {Category: Buff, Duration: 40, MaxStacks: 3,
		Modifiers: Modifiers{Aggression: 0.08, Accuracy: 0.04}, Cancels: []Type{Hesitant}},
	Adrenaline: {Category: Buff, Duration: 20, MaxStacks: 1,
		Modifiers: Modifiers{Power: 0.1, Speed: 0.1}, Cancels: []Type{HeavyLegs}},
	Focused: {Category: Buff, Duration: 45, MaxStacks: 1,
		Modifiers: Modifiers{Accuracy: 0.1, Defense: 0.05}, Cancels: []Type{FocusLapse}},
	KillerMode: {Category: Buff, Duration: 25, MaxStacks: 1,
		Modifiers: Modifiers{Aggression: 0.3, Power: 0.1, Defense: -0.1}},
	BigFight: {Category: Buff, Duration: 180, MaxStacks: 1,
		Modifiers: Modifiers{Aggression: 0.05, Accuracy: 0.05, Power: 0.05}},
	FastStart: {Category: Buff, Duration: 60, MaxStacks: 1,
		Modifiers: Modifiers{Aggression: 0.2, Speed: 0.05}},
	Desperation: {Category: Buff, Duration: 90, MaxStacks: 1,
		Modifiers: Modifiers{Aggression: 0.35, Power: 0.05, Defense: -0.15}},

	Rattled: {Category: Debuff, Duration: 20, MaxStacks: 2,
		Modifiers: Modifiers{Aggression: -0.15, Accuracy: -0.1, Defense: -0.1}, Cancels: []Type{Focused}},
	Frustrated: {Category: Debuff, Duration: 40, MaxStacks: 2,
		Modifiers: Modifiers{Aggression: 0.1, Accuracy: -0.1, Defense: -0.1}},
	Hesitant: {Category: Debuff, Duration: 40, MaxStacks: 2,
		Modifiers: Modifiers{Aggression: -0.2, Speed: -0.05}, Cancels: []Type{Confidence}},
	Intimidated: {Category: Debuff, Duration: 120, MaxStacks: 1,
		Modifiers: Modifiers{Aggression: -0.15, Power: -0.05}},
	CutConcern: {Category: Debuff, Duration: 60, MaxStacks: 1,
		Modifiers: Modifiers{Aggression: -0.1, Defense: 0.1}},
	FocusLapse: {Category: Debuff, Duration: 10, MaxStacks: 1,
		Modifiers: Modifiers{Accuracy: -0.05, Defense: -0.15}},
	HeavyLegs: {Category: Debuff, Duration: 45, MaxStacks: 2,
		Modifiers: Modifiers{Speed: -0.2, Defense: -0.05}},
}

// Lookup returns the definition of an effect type.
func Lookup(t Type) (Definition, bool) {
	d, ok := definitions[t]
	return d, ok
}

// Effect is an active effect on one fighter.
type Effect struct {
	Type            Type
	Category        Category
	Intensity       float64 // 0..1
	Duration        int     // ticks left
	InitialDuration int
	Stacks          int
	MaxStacks       int
	Modifiers       Modifiers
}

// Expired names an effect removed by Tick.
type Expired struct {
	FighterID string
	Type      Type
}

// Registry holds the effects and momentum of the fighters in one fight.
// It is not safe for concurrent use.
type Registry struct {
	cfg config.EffectsConfig
	rng *rand.Rand

	effects   map[string]map[Type]*Effect
	opponents map[string]string
	momentum  map[string]float64
	shifts    map[string]*shiftState
	tick      int
}

func NewRegistry(cfg config.EffectsConfig, rng *rand.Rand) *Registry {
	r := &Registry{cfg: cfg, rng: rng}
	r.Clear()
	return r
}

// Pair registers a and b as opponents. Momentum is exclusive and its score
// zero-sum between paired fighters.
func (r *Registry) Pair(a, b string) {
	r.opponents[a] = b
	r.opponents[b] = a
}

// Opponent returns the paired opponent id, or "".
func (r *Registry) Opponent(id string) string { return r.opponents[id] }

// Apply creates an effect or, when already active, refreshes its duration,
// keeps the stronger intensity and adds a stack up to the cap. A zero
// duration uses the type's default. Unknown types are ignored and report
// false.
func (r *Registry) Apply(id string, t Type, intensity float64, duration int) (Effect, bool) {
	def, ok := definitions[t]
	if !ok {
		return Effect{}, false
	}
	if duration <= 0 {
		duration = def.Duration
	}
	intensity = util.Clamp01(intensity)

	if t == Momentum {
		if opp := r.opponents[id]; opp != "" {
			r.Remove(opp, Momentum)
		}
	}
	for _, c := range def.Cancels {
		r.Remove(id, c)
	}

	byType := r.effects[id]
	if byType == nil {
		byType = map[Type]*Effect{}
		r.effects[id] = byType
	}
	if e, ok := byType[t]; ok {
		e.Duration = max(e.Duration, duration)
		e.InitialDuration = e.Duration
		e.Intensity = max(e.Intensity, intensity)
		if e.Stacks < e.MaxStacks {
			e.Stacks++
		}
		return *e, true
	}
	e := &Effect{
		Type:            t,
		Category:        def.Category,
		Intensity:       intensity,
		Duration:        duration,
		InitialDuration: duration,
		Stacks:          1,
		MaxStacks:       max(1, def.MaxStacks),
		Modifiers:       def.Modifiers,
	}
	byType[t] = e
	return *e, true
}

func (r *Registry) Remove(id string, t Type) {
	delete(r.effects[id], t)
}

func (r *Registry) Has(id string, t Type) bool {
	_, ok := r.effects[id][t]
	return ok
}

// Get returns a copy of the active effect.
func (r *Registry) Get(id string, t Type) (Effect, bool) {
	e, ok := r.effects[id][t]
	if !ok {
		return Effect{}, false
	}
	return *e, true
}

// Active lists a fighter's effects ordered by type.
func (r *Registry) Active(id string) []Effect {
	out := make([]Effect, 0, len(r.effects[id]))
	for _, t := range r.sortedTypes(id) {
		out = append(out, *r.effects[id][t])
	}
	return out
}

func (r *Registry) sortedTypes(id string) []Type {
	types := make([]Type, 0, len(r.effects[id]))
	for t := range r.effects[id] {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func (r *Registry) sortedFighters() []string {
	ids := make([]string, 0, len(r.effects))
	for id := range r.effects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Tick advances every effect by one tick, removes the ones that ran out and
// decays momentum scores. It returns what expired.
func (r *Registry) Tick() []Expired {
	r.tick++
	var expired []Expired
	for _, id := range r.sortedFighters() {
		for _, t := range r.sortedTypes(id) {
			e := r.effects[id][t]
			e.Duration--
			if e.Duration <= 0 {
				delete(r.effects[id], t)
				expired = append(expired, Expired{FighterID: id, Type: t})
			}
		}
	}
	if d := r.cfg.MomentumDecay; d > 0 {
		for id, s := range r.momentum {
			r.momentum[id] = s * (1 - d)
		}
	}
	return expired
}

// Now is the number of ticks the registry has seen.
func (r *Registry) Now() int { return r.tick }

// EffectiveIntensity is intensity times stacks, fading linearly to zero over
// the last SoftExpiryFraction of the effect's duration.
func (r *Registry) EffectiveIntensity(e Effect) float64 {
	v := e.Intensity * float64(e.Stacks)
	window := float64(e.InitialDuration) * r.cfg.SoftExpiryFraction
	if window > 0 && float64(e.Duration) < window {
		v *= float64(e.Duration) / window
	}
	return v
}

// Modifiers reduces a fighter's active effects into one modifier vector.
func (r *Registry) Modifiers(id string) Modifiers {
	var total Modifiers
	for _, t := range r.sortedTypes(id) {
		e := r.effects[id][t]
		total = total.Add(e.Modifiers, r.EffectiveIntensity(*e))
	}
	return total
}

func (r *Registry) AggressionModifier(id string) float64 {
	return bounded(r.Modifiers(id)[Aggression], r.cfg.AggressionBound)
}

func (r *Registry) DefenseModifier(id string) float64 {
	return bounded(r.Modifiers(id)[Defense], r.cfg.DefenseBound)
}

func (r *Registry) AccuracyModifier(id string) float64 {
	return bounded(r.Modifiers(id)[Accuracy], r.cfg.AccuracyBound)
}

func (r *Registry) PowerModifier(id string) float64 {
	return bounded(r.Modifiers(id)[Power], r.cfg.PowerBound)
}

func (r *Registry) SpeedModifier(id string) float64 {
	return bounded(r.Modifiers(id)[Speed], r.cfg.SpeedBound)
}

func bounded(v, bound float64) float64 { return util.Clamp(v, -bound, bound) }

// Clear drops every effect, pairing and momentum score.
func (r *Registry) Clear() {
	r.effects = map[string]map[Type]*Effect{}
	r.opponents = map[string]string{}
	r.momentum = map[string]float64{}
	r.shifts = map[string]*shiftState{}
	r.tick = 0
}
