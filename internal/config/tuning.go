package config

import "ringsim/internal/fighter"

// Tuning is every tuned constant the simulation reads. It is built once at
// startup (Default, optionally overlaid by a YAML file) and passed down
// read-only; components never mutate it.
//
// The numbers are calibration defaults, not derived from fight statistics.
type Tuning struct {
	Fight    FightConfig    `yaml:"fight"`
	Ring     RingConfig     `yaml:"ring"`
	Damage   DamageConfig   `yaml:"damage"`
	Stamina  StaminaConfig  `yaml:"stamina"`
	Effects  EffectsConfig  `yaml:"effects"`
	Decision DecisionConfig `yaml:"decision"`
}

// FightConfig drives the orchestrator.
type FightConfig struct {
	Rounds                int     `yaml:"rounds"`
	RoundDuration         float64 `yaml:"round_duration"` // seconds
	TickSeconds           float64 `yaml:"tick_seconds"`
	StartDistance         float64 `yaml:"start_distance"`
	CornerBonus           float64 `yaml:"corner_bonus"` // stamina points between rounds
	RefereeProtectiveness float64 `yaml:"referee_protectiveness"`
	ThreeKnockdownRule    bool    `yaml:"three_knockdown_rule"`
	HurtRecoveryTicks     int     `yaml:"hurt_recovery_ticks"`
	TitleFight            bool    `yaml:"title_fight"`

	Exchange ExchangeConfig `yaml:"exchange"`
	Judges   JudgesConfig   `yaml:"judges"`
}

// ExchangeConfig drives punch resolution in the orchestrator.
type ExchangeConfig struct {
	LandBase       float64 `yaml:"land_base"`
	AccuracyWeight float64 `yaml:"accuracy_weight"`
	DefenseWeight  float64 `yaml:"defense_weight"`
	LandMin        float64 `yaml:"land_min"`
	LandMax        float64 `yaml:"land_max"`
	BlockChance    float64 `yaml:"block_chance"` // chance a guarded shot is caught on the gloves
	EvadeFactor    float64 `yaml:"evade_factor"` // land multiplier against an evading target
	ClinchFactor   float64 `yaml:"clinch_factor"`
	CounterBonus   float64 `yaml:"counter_bonus"`
	ComboDecay     float64 `yaml:"combo_decay"` // land multiplier per punch into a combination
	StraightRange  float64 `yaml:"straight_range"`
	HookRange      float64 `yaml:"hook_range"`
	UppercutRange  float64 `yaml:"uppercut_range"`
	CountAttempts  []int   `yaml:"count_attempts"` // counts at which a downed fighter tries to rise
	OutputWindow   int     `yaml:"output_window"`  // ticks
	FocusInterval  int     `yaml:"focus_interval"` // ticks
}

type JudgesConfig struct {
	Count         int     `yaml:"count"`
	Noise         float64 `yaml:"noise"`          // relative scoring noise per judge and round
	PowerWeight   float64 `yaml:"power_weight"`   // power shots count this much more than jabs
	DominanceEdge float64 `yaml:"dominance_edge"` // round score ratio that reads as domination
}

type RingConfig struct {
	HalfWidth      float64 `yaml:"half_width"`
	RopeZone       float64 `yaml:"rope_zone"`
	CornerZone     float64 `yaml:"corner_zone"`
	MinSeparation  float64 `yaml:"min_separation"`
	Jitter         float64 `yaml:"jitter"`
	BaseSpeed      float64 `yaml:"base_speed"`
	FootSpeedScale float64 `yaml:"foot_speed_scale"`
	StaminaFloor   float64 `yaml:"stamina_floor"`  // speed share left to a fighter with no stamina
	FootworkScale  float64 `yaml:"footwork_scale"` // speed swing per 100 footwork points around 50
	CircleMinTicks int     `yaml:"circle_min_ticks"`
	CircleMaxTicks int     `yaml:"circle_max_ticks"`
	ClosingResist  float64 `yaml:"closing_resist"`
	RetreatBoost   float64 `yaml:"retreat_boost"`
	// upper bounds of clinch, inside, mid, long and outside; beyond is out of range
	ZoneBounds [5]float64 `yaml:"zone_bounds"`
}

type DamageConfig struct {
	BaseDamage         map[fighter.PunchType]float64 `yaml:"base_damage"`
	PowerFloor         float64                       `yaml:"power_floor"`
	PowerScale         float64                       `yaml:"power_scale"`
	ResistanceMax      float64                       `yaml:"resistance_max"`
	BlockingWeight     float64                       `yaml:"blocking_weight"`
	ExperienceWeight   float64                       `yaml:"experience_weight"`
	BodyTypeResistance map[fighter.BodyType]float64  `yaml:"body_type_resistance"`
	ChinWeight         float64                       `yaml:"chin_weight"`
	FatigueStart       float64                       `yaml:"fatigue_start"`
	StaminaRetention   float64                       `yaml:"stamina_retention"`

	HurtThreshold       float64 `yaml:"hurt_threshold"`
	HurtChinWeight      float64 `yaml:"hurt_chin_weight"`
	HurtDamageErosion   float64 `yaml:"hurt_damage_erosion"`
	HurtGate            float64 `yaml:"hurt_gate"`
	HurtChinResist      float64 `yaml:"hurt_chin_resist"`
	HurtComposureGate   float64 `yaml:"hurt_composure_gate"`
	HurtComposureResist float64 `yaml:"hurt_composure_resist"`

	KnockdownBase         float64 `yaml:"knockdown_base"`
	KnockdownChin         float64 `yaml:"knockdown_chin"`
	KnockdownExperience   float64 `yaml:"knockdown_experience"`
	KnockdownErosion      float64 `yaml:"knockdown_erosion"`
	KnockdownLowStamina   float64 `yaml:"knockdown_low_stamina"`
	KnockdownHurtFactor   float64 `yaml:"knockdown_hurt_factor"`
	KnockdownPowerAmp     float64 `yaml:"knockdown_power_amp"`
	KnockdownCounterAmp   float64 `yaml:"knockdown_counter_amp"`
	KnockdownChinResist   float64 `yaml:"knockdown_chin_resist"`
	KnockdownMax          float64 `yaml:"knockdown_max"`
	RecoveryMin           float64 `yaml:"recovery_min"`
	RecoveryMax           float64 `yaml:"recovery_max"`
	RecoveryRepeatDecay   float64 `yaml:"recovery_repeat_decay"`
	CutThreshold          float64 `yaml:"cut_threshold"`
	CutChancePerPoint     float64 `yaml:"cut_chance_per_point"`
	CutChanceMax          float64 `yaml:"cut_chance_max"`
	SwellingThreshold     int     `yaml:"swelling_threshold"`
	SwellingChance        float64 `yaml:"swelling_chance"`
	VisionCap             float64 `yaml:"vision_cap"`
	BetweenRoundRecovery  float64 `yaml:"between_round_recovery"`
	BlockedDamageFraction float64 `yaml:"blocked_damage_fraction"`
}

// Penalty is a set of fractional attribute reductions.
type Penalty struct {
	Power    float64 `yaml:"power"`
	Speed    float64 `yaml:"speed"`
	Accuracy float64 `yaml:"accuracy"`
	Defense  float64 `yaml:"defense"`
}

type SecondWindConfig struct {
	FromRound    int     `yaml:"from_round"`
	StaminaBelow float64 `yaml:"stamina_below"`
	BaseChance   float64 `yaml:"base_chance"` // per check at a 100 rating
	HeartBonus   float64 `yaml:"heart_bonus"`
	Restore      float64 `yaml:"restore"` // fraction of max stamina
	BuffAmount   float64 `yaml:"buff_amount"`
	BuffTicks    int     `yaml:"buff_ticks"`
}

type StaminaConfig struct {
	BaselineDrain    float64                         `yaml:"baseline_drain"` // per second
	PunchCosts       map[fighter.PunchType]float64   `yaml:"punch_costs"`
	MoveCosts        map[fighter.Direction]float64   `yaml:"move_costs"`
	DefenseCosts     map[fighter.SubState]float64    `yaml:"defense_costs"`
	ClinchCost       float64                         `yaml:"clinch_cost"`
	ComboSurcharge   float64                         `yaml:"combo_surcharge"` // per punch beyond the first
	HurtSurcharge    float64                         `yaml:"hurt_surcharge"`
	WorkRateFloor    float64                         `yaml:"work_rate_floor"`
	PaceFloor        float64                         `yaml:"pace_floor"`
	BodyDamageWeight float64                         `yaml:"body_damage_weight"`
	FatigueFeedback  float64                         `yaml:"fatigue_feedback"`
	RecoveryBase     float64                         `yaml:"recovery_base"` // per second
	RecoveryCardio   float64                         `yaml:"recovery_cardio"`
	StateRecovery    map[fighter.State]float64       `yaml:"state_recovery"`
	BetweenRoundBase float64                         `yaml:"between_round_base"`
	BetweenRoundRate float64                         `yaml:"between_round_rate"`
	BetweenRoundCap  float64                         `yaml:"between_round_cap"`
	TierPenalties    map[fighter.FatigueTier]Penalty `yaml:"tier_penalties"`
	HeartDampening   float64                         `yaml:"heart_dampening"`
	MinComboStamina  float64                         `yaml:"min_combo_stamina"`
	MinPowerStamina  float64                         `yaml:"min_power_stamina"`
	SecondWind       SecondWindConfig                `yaml:"second_wind"`
}

type EffectsConfig struct {
	AggressionBound    float64 `yaml:"aggression_bound"`
	DefenseBound       float64 `yaml:"defense_bound"`
	AccuracyBound      float64 `yaml:"accuracy_bound"`
	PowerBound         float64 `yaml:"power_bound"`
	SpeedBound         float64 `yaml:"speed_bound"`
	SoftExpiryFraction float64 `yaml:"soft_expiry_fraction"`
	MomentumLead       float64 `yaml:"momentum_lead"`
	MomentumCooldown   int     `yaml:"momentum_cooldown"` // ticks
	DominanceScore     float64 `yaml:"dominance_score"`
	DominanceInterval  int     `yaml:"dominance_interval"` // ticks
	MomentumDecay      float64 `yaml:"momentum_decay"`     // fraction per tick
	HighOutputPunches  int     `yaml:"high_output_punches"`
}

type StyleWeights struct {
	Offensive float64 `yaml:"offensive"`
	Defensive float64 `yaml:"defensive"`
	Timing    float64 `yaml:"timing"`
	Moving    float64 `yaml:"moving"`
	Clinch    float64 `yaml:"clinch"`
}

type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type DecisionConfig struct {
	BaselineStyle     string                           `yaml:"baseline_style"`
	Styles            map[string]StyleWeights          `yaml:"styles"`
	PunchWeights      map[fighter.PunchType]float64    `yaml:"punch_weights"`
	ComboLength       map[fighter.FatigueTier]IntRange `yaml:"combo_length"`
	HighWorkRate      float64                          `yaml:"high_work_rate"`
	PowerStaminaFloor float64                          `yaml:"power_stamina_floor"`
	MaxStateWeight    float64                          `yaml:"max_state_weight"`
	MemoryCap         int                              `yaml:"memory_cap"`
	RecentHurtWindow  int                              `yaml:"recent_hurt_window"` // decisions
	ChampionshipRound int                              `yaml:"championship_round"`
	LateRoundFraction float64                          `yaml:"late_round_fraction"`
	KOHuntPower       float64                          `yaml:"ko_hunt_power"`
	KOHuntDeficit     float64                          `yaml:"ko_hunt_deficit"`
	ReachAdvantage    float64                          `yaml:"reach_advantage"` // cm
	RestRoundChance   float64                          `yaml:"rest_round_chance"`
	RestRoundStamina  float64                          `yaml:"rest_round_stamina"`
	CounterChance     float64                          `yaml:"counter_chance"`
}

// Default returns the calibrated baseline tuning.
func Default() Tuning {
	return Tuning{
		Fight:    DefaultFight(),
		Ring:     DefaultRing(),
		Damage:   DefaultDamage(),
		Stamina:  DefaultStamina(),
		Effects:  DefaultEffects(),
		Decision: DefaultDecision(),
	}
}

func DefaultFight() FightConfig {
	return FightConfig{
		Rounds:                12,
		RoundDuration:         180,
		TickSeconds:           1,
		StartDistance:         8,
		CornerBonus:           4,
		RefereeProtectiveness: 0.5,
		ThreeKnockdownRule:    true,
		HurtRecoveryTicks:     8,
		Exchange: ExchangeConfig{
			LandBase:       0.33,
			AccuracyWeight: 0.3,
			DefenseWeight:  0.25,
			LandMin:        0.05,
			LandMax:        0.75,
			BlockChance:    0.55,
			EvadeFactor:    0.5,
			ClinchFactor:   0.35,
			CounterBonus:   0.12,
			ComboDecay:     0.88,
			StraightRange:  7,
			HookRange:      4.5,
			UppercutRange:  3.5,
			CountAttempts:  []int{4, 6, 8, 9},
			OutputWindow:   10,
			FocusInterval:  30,
		},
		Judges: JudgesConfig{
			Count:         3,
			Noise:         0.15,
			PowerWeight:   1.5,
			DominanceEdge: 2.5,
		},
	}
}

func DefaultRing() RingConfig {
	return RingConfig{
		HalfWidth:      10,
		RopeZone:       1.5,
		CornerZone:     3,
		MinSeparation:  1.0,
		Jitter:         0.05,
		BaseSpeed:      2.0,
		FootSpeedScale: 2.0,
		StaminaFloor:   0.6,
		FootworkScale:  0.4,
		CircleMinTicks: 6,
		CircleMaxTicks: 16,
		ClosingResist:  0.5,
		RetreatBoost:   0.3,
		ZoneBounds:     [5]float64{1.5, 3, 5, 7, 9},
	}
}

func DefaultDamage() DamageConfig {
	return DamageConfig{
		BaseDamage: map[fighter.PunchType]float64{
			fighter.Jab:          4,
			fighter.Cross:        8,
			fighter.LeadHook:     8,
			fighter.RearHook:     10,
			fighter.LeadUppercut: 8,
			fighter.RearUppercut: 11,
			fighter.BodyJab:      3,
			fighter.BodyCross:    7,
			fighter.LeadBodyHook: 8,
			fighter.RearBodyHook: 9,
		},
		PowerFloor:       0.6,
		PowerScale:       0.8,
		ResistanceMax:    0.3,
		BlockingWeight:   0.15,
		ExperienceWeight: 0.1,
		BodyTypeResistance: map[fighter.BodyType]float64{
			fighter.BodyLean:     -0.02,
			fighter.BodyAverage:  0,
			fighter.BodyMuscular: 0.02,
			fighter.BodyStocky:   0.04,
		},
		ChinWeight:       0.5,
		FatigueStart:     0.5,
		StaminaRetention: 0.6,

		HurtThreshold:       10,
		HurtChinWeight:      0.05,
		HurtDamageErosion:   0.5,
		HurtGate:            0.25,
		HurtChinResist:      0.6,
		HurtComposureGate:   0.3,
		HurtComposureResist: 0.5,

		KnockdownBase:         10,
		KnockdownChin:         0.1,
		KnockdownExperience:   0.04,
		KnockdownErosion:      0.4,
		KnockdownLowStamina:   0.3,
		KnockdownHurtFactor:   0.6,
		KnockdownPowerAmp:     1.3,
		KnockdownCounterAmp:   1.25,
		KnockdownChinResist:   0.4,
		KnockdownMax:          0.9,
		RecoveryMin:           0.1,
		RecoveryMax:           0.95,
		RecoveryRepeatDecay:   0.85,
		CutThreshold:          12,
		CutChancePerPoint:     0.03,
		CutChanceMax:          0.35,
		SwellingThreshold:     25,
		SwellingChance:        0.15,
		VisionCap:             0.8,
		BetweenRoundRecovery:  0.12,
		BlockedDamageFraction: 0.3,
	}
}

func DefaultStamina() StaminaConfig {
	return StaminaConfig{
		BaselineDrain: 0.05,
		PunchCosts: map[fighter.PunchType]float64{
			fighter.Jab:          0.22,
			fighter.Cross:        0.40,
			fighter.LeadHook:     0.42,
			fighter.RearHook:     0.50,
			fighter.LeadUppercut: 0.45,
			fighter.RearUppercut: 0.60,
			fighter.BodyJab:      0.25,
			fighter.BodyCross:    0.42,
			fighter.LeadBodyHook: 0.45,
			fighter.RearBodyHook: 0.55,
		},
		MoveCosts: map[fighter.Direction]float64{
			fighter.DirForward:  0.08,
			fighter.DirBackward: 0.06,
			fighter.DirLeft:     0.07,
			fighter.DirRight:    0.07,
		},
		DefenseCosts: map[fighter.SubState]float64{
			fighter.SubBlock:        0.06,
			fighter.SubHeadMovement: 0.10,
			fighter.SubShoulderRoll: 0.05,
			fighter.SubFootwork:     0.08,
			fighter.SubCover:        0.04,
		},
		ClinchCost:       0.05,
		ComboSurcharge:   0.08,
		HurtSurcharge:    0.15,
		WorkRateFloor:    0.35,
		PaceFloor:        0.7,
		BodyDamageWeight: 0.5,
		FatigueFeedback:  0.3,
		RecoveryBase:     0.08,
		RecoveryCardio:   0.14,
		StateRecovery: map[fighter.State]float64{
			fighter.StateNeutral:   1.3,
			fighter.StateClinch:    1.5,
			fighter.StateTiming:    0.9,
			fighter.StateDefensive: 0.7,
			fighter.StateMoving:    0.6,
			fighter.StateOffensive: 0.25,
			fighter.StateHurt:      0,
			fighter.StateDown:      0,
		},
		BetweenRoundBase: 0.1,
		BetweenRoundRate: 0.15,
		BetweenRoundCap:  0.55,
		TierPenalties: map[fighter.FatigueTier]Penalty{
			fighter.TierFresh:     {},
			fighter.TierGood:      {Power: 0.03, Speed: 0.02, Accuracy: 0.02, Defense: 0.02},
			fighter.TierTired:     {Power: 0.10, Speed: 0.08, Accuracy: 0.06, Defense: 0.08},
			fighter.TierExhausted: {Power: 0.20, Speed: 0.15, Accuracy: 0.12, Defense: 0.15},
			fighter.TierGassed:    {Power: 0.35, Speed: 0.25, Accuracy: 0.20, Defense: 0.25},
		},
		HeartDampening:  0.4,
		MinComboStamina: 0.2,
		MinPowerStamina: 0.12,
		SecondWind: SecondWindConfig{
			FromRound:    10,
			StaminaBelow: 0.3,
			BaseChance:   0.01,
			HeartBonus:   0.005,
			Restore:      0.2,
			BuffAmount:   0.1,
			BuffTicks:    60,
		},
	}
}

func DefaultEffects() EffectsConfig {
	return EffectsConfig{
		AggressionBound:    0.5,
		DefenseBound:       0.4,
		AccuracyBound:      0.3,
		PowerBound:         0.25,
		SpeedBound:         0.25,
		SoftExpiryFraction: 0.25,
		MomentumLead:       15,
		MomentumCooldown:   30,
		DominanceScore:     60,
		DominanceInterval:  90,
		MomentumDecay:      0.01,
		HighOutputPunches:  12,
	}
}

func DefaultDecision() DecisionConfig {
	return DecisionConfig{
		BaselineStyle: "boxer",
		Styles: map[string]StyleWeights{
			"boxer":           {Offensive: 3, Defensive: 2, Timing: 2, Moving: 2, Clinch: 0.5},
			"swarmer":         {Offensive: 5, Defensive: 1.5, Timing: 1, Moving: 1.5, Clinch: 1},
			"out_boxer":       {Offensive: 2.5, Defensive: 2, Timing: 2.5, Moving: 3, Clinch: 0.3},
			"slugger":         {Offensive: 4.5, Defensive: 1.5, Timing: 1.5, Moving: 1, Clinch: 0.8},
			"boxer_puncher":   {Offensive: 3.5, Defensive: 2, Timing: 2, Moving: 1.8, Clinch: 0.5},
			"counter_puncher": {Offensive: 2, Defensive: 2.5, Timing: 4, Moving: 1.5, Clinch: 0.5},
			"volume_puncher":  {Offensive: 5.5, Defensive: 1.2, Timing: 1, Moving: 1.5, Clinch: 0.6},
		},
		PunchWeights: map[fighter.PunchType]float64{
			fighter.Jab:          30,
			fighter.Cross:        18,
			fighter.LeadHook:     12,
			fighter.RearHook:     8,
			fighter.LeadUppercut: 5,
			fighter.RearUppercut: 5,
			fighter.BodyJab:      7,
			fighter.BodyCross:    5,
			fighter.LeadBodyHook: 6,
			fighter.RearBodyHook: 4,
		},
		ComboLength: map[fighter.FatigueTier]IntRange{
			fighter.TierFresh:     {Min: 2, Max: 5},
			fighter.TierGood:      {Min: 2, Max: 4},
			fighter.TierTired:     {Min: 2, Max: 3},
			fighter.TierExhausted: {Min: 2, Max: 2},
			fighter.TierGassed:    {Min: 2, Max: 2},
		},
		HighWorkRate:      80,
		PowerStaminaFloor: 0.3,
		MaxStateWeight:    50,
		MemoryCap:         20,
		RecentHurtWindow:  40,
		ChampionshipRound: 10,
		LateRoundFraction: 0.6,
		KOHuntPower:       75,
		KOHuntDeficit:     2,
		ReachAdvantage:    5,
		RestRoundChance:   0.35,
		RestRoundStamina:  0.55,
		CounterChance:     0.35,
	}
}
