package fighter

import "math"

// DefaultRating stands in for any 0-100 rating left unset.
const DefaultRating = 50.0

// DamageCapacity is the damage that reads as 100% on the head/body meters.
const DamageCapacity = 600.0

const (
	defaultMaxStamina   = 100.0
	defaultOptimalRange = 4.0
)

type Stance string

const (
	Orthodox Stance = "orthodox"
	Southpaw Stance = "southpaw"
)

type BodyType string

const (
	BodyLean     BodyType = "lean"
	BodyAverage  BodyType = "average"
	BodyMuscular BodyType = "muscular"
	BodyStocky   BodyType = "stocky"
)

type FatigueTier string

const (
	TierFresh     FatigueTier = "fresh"
	TierGood      FatigueTier = "good"
	TierTired     FatigueTier = "tired"
	TierExhausted FatigueTier = "exhausted"
	TierGassed    FatigueTier = "gassed"
)

// TierFor buckets a stamina fraction into a fatigue tier.
func TierFor(pct float64) FatigueTier {
	switch {
	case pct > 0.75:
		return TierFresh
	case pct > 0.5:
		return TierGood
	case pct > 0.3:
		return TierTired
	case pct > 0.15:
		return TierExhausted
	}
	return TierGassed
}

type Physical struct {
	Reach    float64  `yaml:"reach"` // cm
	Height   float64  `yaml:"height"`
	Weight   float64  `yaml:"weight"`
	Stance   Stance   `yaml:"stance"`
	BodyType BodyType `yaml:"body_type"`
	Age      int      `yaml:"age"`
}

type Power struct {
	KnockoutPower   float64 `yaml:"knockout_power"`
	PunchingStamina float64 `yaml:"punching_stamina"`
}

type Speed struct {
	HandSpeed float64 `yaml:"hand_speed"`
	FootSpeed float64 `yaml:"foot_speed"`
	FirstStep float64 `yaml:"first_step"`
}

type Defense struct {
	Blocking      float64 `yaml:"blocking"`
	HeadMovement  float64 `yaml:"head_movement"`
	ShoulderRoll  float64 `yaml:"shoulder_roll"`
	ClinchOffense float64 `yaml:"clinch_offense"`
}

type Technical struct {
	Footwork           float64 `yaml:"footwork"`
	FightIQ            float64 `yaml:"fight_iq"`
	DistanceManagement float64 `yaml:"distance_management"`
	Accuracy           float64 `yaml:"accuracy"`
}

type Mental struct {
	Chin           float64 `yaml:"chin"`
	Heart          float64 `yaml:"heart"`
	Composure      float64 `yaml:"composure"`
	KillerInstinct float64 `yaml:"killer_instinct"`
	ClutchFactor   float64 `yaml:"clutch_factor"`
	Experience     float64 `yaml:"experience"`
	Focus          float64 `yaml:"focus"`
}

type StaminaProfile struct {
	Cardio       float64 `yaml:"cardio"`
	WorkRate     float64 `yaml:"work_rate"`
	PaceControl  float64 `yaml:"pace_control"`
	RecoveryRate float64 `yaml:"recovery_rate"`
	SecondWind   float64 `yaml:"second_wind"`
}

// Style names the archetypes a fighter fights from, e.g. primary "swarmer",
// offensive "volume", defensive "slick".
type Style struct {
	Primary   string `yaml:"primary"`
	Offensive string `yaml:"offensive"`
	Defensive string `yaml:"defensive"`
}

type Cut struct {
	Location string
	Severity int // 0-4
}

type Swelling struct {
	Location string
	Severity int // 0-4
}

// Buff attribute keys.
const (
	BuffPower     = "power"
	BuffHandSpeed = "hand_speed"
	BuffFootSpeed = "foot_speed"
	BuffAccuracy  = "accuracy"
)

// Buff is a short attribute boost, expressed as a fraction of the rating.
type Buff struct {
	Name      string
	Attribute string
	Amount    float64
	Ticks     int
}

type Fighter struct {
	ID   string
	Name string

	Physical  Physical
	Power     Power
	Speed     Speed
	Defense   Defense
	Technical Technical
	Mental    Mental
	Stamina   StaminaProfile
	Style     Style

	Position     Vec2
	OptimalRange float64

	CurrentStamina float64
	MaxStamina     float64
	Tier           FatigueTier

	HeadDamage float64
	BodyDamage float64
	Cuts       []Cut
	Swelling   []Swelling

	State    State
	SubState SubState

	IsHurt              bool
	HurtTicks           int
	KnockdownsThisRound int
	TotalKnockdowns     int

	CleanHeadPunchesTaken int

	Buffs []Buff
}

// New returns a fighter with runtime fields primed from its ratings.
func New(id string) *Fighter {
	f := &Fighter{ID: id, Name: id}
	f.Prime()
	return f
}

// Prime fills runtime defaults: full stamina, fresh tier, neutral state.
func (f *Fighter) Prime() {
	if f.MaxStamina <= 0 {
		f.MaxStamina = defaultMaxStamina + (f.Attr(f.Stamina.Cardio)-DefaultRating)*0.4
	}
	f.CurrentStamina = f.MaxStamina
	if f.OptimalRange <= 0 {
		f.OptimalRange = defaultOptimalRange
	}
	if f.Name == "" {
		f.Name = f.ID
	}
	f.State = StateNeutral
	f.SubState = SubNone
	f.UpdateStaminaTier()
}

// Attr returns a usable rating: unset or invalid values fall back to
// DefaultRating and the result is kept within 1..100.
func (f *Fighter) Attr(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return DefaultRating
	}
	if v > 100 {
		return 100
	}
	if v < 1 {
		return 1
	}
	return v
}

// Rating returns Attr(v) boosted by active buffs on the named attribute.
func (f *Fighter) Rating(name string, v float64) float64 {
	r := f.Attr(v) * (1 + f.BuffBonus(name))
	if r > 100 {
		return 100
	}
	return r
}

func (f *Fighter) Age() int {
	if f.Physical.Age <= 0 {
		return 28
	}
	return f.Physical.Age
}

func (f *Fighter) StaminaPercent() float64 {
	if f.MaxStamina <= 0 {
		return 0
	}
	return clamp01(f.CurrentStamina / f.MaxStamina)
}

func (f *Fighter) HeadDamagePercent() float64 { return clamp01(f.HeadDamage / DamageCapacity) }
func (f *Fighter) BodyDamagePercent() float64 { return clamp01(f.BodyDamage / DamageCapacity) }

// SpendStamina removes amount, never dropping below zero.
func (f *Fighter) SpendStamina(amount float64) {
	if amount <= 0 || math.IsNaN(amount) {
		return
	}
	f.CurrentStamina -= amount
	if f.CurrentStamina < 0 {
		f.CurrentStamina = 0
	}
}

// RecoverStamina adds amount, never exceeding MaxStamina.
func (f *Fighter) RecoverStamina(amount float64) {
	if amount <= 0 || math.IsNaN(amount) {
		return
	}
	f.CurrentStamina += amount
	if f.CurrentStamina > f.MaxStamina {
		f.CurrentStamina = f.MaxStamina
	}
}

func (f *Fighter) UpdateStaminaTier() FatigueTier {
	f.Tier = TierFor(f.StaminaPercent())
	return f.Tier
}

// AddHeadDamage and AddBodyDamage ignore negative input.
func (f *Fighter) AddHeadDamage(d float64) {
	if d > 0 {
		f.HeadDamage += d
	}
}

func (f *Fighter) AddBodyDamage(d float64) {
	if d > 0 {
		f.BodyDamage += d
	}
}

// AddBuff adds or refreshes a named buff.
func (f *Fighter) AddBuff(b Buff) {
	if b.Ticks <= 0 {
		return
	}
	for i := range f.Buffs {
		if f.Buffs[i].Name == b.Name && f.Buffs[i].Attribute == b.Attribute {
			f.Buffs[i] = b
			return
		}
	}
	f.Buffs = append(f.Buffs, b)
}

// TickBuffs ages buffs by one tick and drops the expired ones.
func (f *Fighter) TickBuffs() {
	n := 0
	for _, b := range f.Buffs {
		b.Ticks--
		if b.Ticks > 0 {
			f.Buffs[n] = b
			n++
		}
	}
	f.Buffs = f.Buffs[:n]
}

func (f *Fighter) BuffBonus(attribute string) float64 {
	total := 0.0
	for _, b := range f.Buffs {
		if b.Attribute == attribute {
			total += b.Amount
		}
	}
	return total
}

// MaxCutSeverity returns the worst open cut, 0 if none.
func (f *Fighter) MaxCutSeverity() int {
	worst := 0
	for _, c := range f.Cuts {
		if c.Severity > worst {
			worst = c.Severity
		}
	}
	return worst
}

// StartRound clears per-round counters.
func (f *Fighter) StartRound() {
	f.KnockdownsThisRound = 0
	f.IsHurt = false
	f.HurtTicks = 0
	f.State = StateNeutral
	f.SubState = SubNone
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
