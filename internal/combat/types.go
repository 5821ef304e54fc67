package combat

import (
	"errors"
	"math/rand"
)

var (
	ErrMissingFighter   = errors.New("missing fighter")
	ErrDuplicateFighter = errors.New("fighters share an id")
)

type Event struct {
	T       float64        `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Event types.
const (
	EvFightStart    = "FightStart"
	EvRoundStart    = "RoundStart"
	EvRoundEnd      = "RoundEnd"
	EvPunch         = "Punch"
	EvHurt          = "Hurt"
	EvHurtRecovered = "HurtRecovered"
	EvKnockdown     = "Knockdown"
	EvCount         = "Count"
	EvCut           = "Cut"
	EvSwelling      = "Swelling"
	EvEffectApplied = "EffectApplied"
	EvEffectExpired = "EffectExpired"
	EvMomentumShift = "MomentumShift"
	EvSecondWind    = "SecondWind"
	EvStoppage      = "Stoppage"
	EvDecision      = "Decision"
	EvLogLine       = "LogLine"
	EvBetweenRounds = "BetweenRounds"
)

type Env struct {
	Time  float64
	Delta float64
	Rng   *rand.Rand
}

type Method string

const (
	MethodKO        Method = "KO"
	MethodTKO       Method = "TKO"
	MethodUnanimous Method = "UD"
	MethodSplit     Method = "SD"
	MethodMajority  Method = "MD"
	MethodDraw      Method = "DRAW"
)

// IsStoppage reports whether the fight ended inside the distance.
func (m Method) IsStoppage() bool { return m == MethodKO || m == MethodTKO }

// FighterStats is one fighter's punch and damage record for a fight.
type FighterStats struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Thrown      int `json:"thrown"`
	Landed      int `json:"landed"`
	Blocked     int `json:"blocked"`
	PowerThrown int `json:"power_thrown"`
	PowerLanded int `json:"power_landed"`
	Counters    int `json:"counters"`
	Combos      int `json:"combos"`

	DamageDealt int     `json:"damage_dealt"`
	HeadDamage  float64 `json:"head_damage"` // taken
	BodyDamage  float64 `json:"body_damage"` // taken
	Knockdowns  int     `json:"knockdowns"`  // scored
	TimesHurt   int     `json:"times_hurt"`
	Cuts        int     `json:"cuts"`

	FinalStamina float64        `json:"final_stamina"`
	SecondWind   bool           `json:"second_wind"`
	Effects      map[string]int `json:"effects,omitempty"` // applications by effect type
}

// Accuracy is landed over thrown, 0 when nothing was thrown.
func (s FighterStats) Accuracy() float64 {
	if s.Thrown == 0 {
		return 0
	}
	return float64(s.Landed) / float64(s.Thrown)
}

// Scorecard is one judge's card. Scores are in fighter order.
type Scorecard struct {
	Judge  int      `json:"judge"`
	Rounds [][2]int `json:"rounds"`
	Totals [2]int   `json:"totals"`
}

type SimResult struct {
	Fighters   [2]string       `json:"fighters"`
	Winner     string          `json:"winner,omitempty"`
	Method     Method          `json:"method"`
	Round      int             `json:"round"`
	Time       float64         `json:"time"`     // seconds into the final round
	Duration   float64         `json:"duration"` // seconds of fighting
	Scorecards []Scorecard     `json:"scorecards"`
	Stats      [2]FighterStats `json:"stats"`
	Events     []Event         `json:"events,omitempty"`
}
