// Package decision chooses what a fighter does each tick.
//
// A decision runs in fixed steps: read the situation, pull effect modifiers,
// draw a primary state from weighted style preferences, refine it into a
// sub-state, turn that into a concrete action, and finally check the action
// against the stamina economy. The engine keeps a small memory per fighter
// that shapes later decisions.
package decision

import (
	"math/rand"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/position"
	"ringsim/internal/stamina"
	"ringsim/internal/util"
)

// ModifierSource supplies effect-driven attribute modifiers and momentum.
// effects.Registry satisfies it.
type ModifierSource interface {
	AggressionModifier(id string) float64
	DefenseModifier(id string) float64
	AccuracyModifier(id string) float64
	PowerModifier(id string) float64
	SpeedModifier(id string) float64
	MomentumScore(id string) float64
}

type noModifiers struct{}

func (noModifiers) AggressionModifier(string) float64 { return 0 }
func (noModifiers) DefenseModifier(string) float64    { return 0 }
func (noModifiers) AccuracyModifier(string) float64   { return 0 }
func (noModifiers) PowerModifier(string) float64      { return 0 }
func (noModifiers) SpeedModifier(string) float64      { return 0 }
func (noModifiers) MomentumScore(string) float64      { return 0 }

type modifiers struct {
	aggression, defense, accuracy, power, speed float64
}

// Engine decides for every fighter in one fight. It is not safe for
// concurrent use.
type Engine struct {
	cfg     config.DecisionConfig
	rng     *rand.Rand
	stamina *stamina.Economy
	ring    *position.Model
	mods    ModifierSource
	memory  map[string]*Memory
}

// NewEngine wires the engine to its collaborators. mods may be nil. A
// non-positive MemoryCap falls back to the default of 20.
func NewEngine(cfg config.DecisionConfig, rng *rand.Rand, econ *stamina.Economy, ring *position.Model, mods ModifierSource) *Engine {
	if mods == nil {
		mods = noModifiers{}
	}
	if cfg.MemoryCap <= 0 {
		cfg.MemoryCap = defaultMemoryCap
	}
	return &Engine{
		cfg:     cfg,
		rng:     rng,
		stamina: econ,
		ring:    ring,
		mods:    mods,
		memory:  map[string]*Memory{},
	}
}

// Decide picks f's state, sub-state and action for this tick. opp should be
// a snapshot of the opponent taken before either fighter acted.
func (e *Engine) Decide(f, opp *fighter.Fighter, ctx fighter.Context) fighter.Decision {
	mem := e.Memory(f.ID)
	if f.State == fighter.StateDown {
		d := fighter.Decision{State: fighter.StateDown, Action: fighter.Wait()}
		mem.remember(d, e.cfg.MemoryCap)
		return d
	}

	e.planRound(f, opp, ctx, mem)
	s := e.assess(f, opp, ctx, mem)
	m := modifiers{
		aggression: e.mods.AggressionModifier(f.ID),
		defense:    e.mods.DefenseModifier(f.ID),
		accuracy:   e.mods.AccuracyModifier(f.ID),
		power:      e.mods.PowerModifier(f.ID),
		speed:      e.mods.SpeedModifier(f.ID),
	}
	s.mods = m

	state := e.pickState(e.stateWeights(f, s, m))
	sub := e.subState(f, state, s)
	d := fighter.Decision{State: state, SubState: sub, Action: e.action(f, state, sub, s)}
	if d.Action.IsPunch() {
		d.Target = string(d.Action.Target)
	}

	if d.Action.IsPunch() && e.stamina != nil {
		if check := e.stamina.CanPerformAction(f, d.Action); !check.CanPerform {
			d = e.stamina.GatedAlternative(f, s.Distance)
		}
	}

	mem.remember(d, e.cfg.MemoryCap)
	mem.observe(opp.State)
	return d
}

// planRound settles the round strategy the first time a fighter decides in
// a new round, including whether to take the round off.
func (e *Engine) planRound(f, opp *fighter.Fighter, ctx fighter.Context, mem *Memory) {
	if ctx == nil || ctx.CurrentRound() == mem.Round {
		return
	}
	round, rounds := ctx.CurrentRound(), ctx.Rounds()
	mem.Round = round
	diff := fighter.ScoreDiff(ctx, f.ID, opp.ID)
	late := rounds > 0 && float64(round) >= float64(rounds)*e.cfg.LateRoundFraction
	championship := rounds > 0 && round >= min(e.cfg.ChampionshipRound, rounds)

	switch {
	case !championship && round < rounds && f.StaminaPercent() < e.cfg.RestRoundStamina &&
		!mem.isRestRound(round-1) && util.Chance(e.rng, e.cfg.RestRoundChance):
		mem.Strategy = StrategyRest
		mem.RestRounds = append(mem.RestRounds, round)
	case late && diff <= -e.cfg.KOHuntDeficit:
		mem.Strategy = StrategyPush
	case late && diff >= 3:
		mem.Strategy = StrategyCoast
	default:
		mem.Strategy = StrategySteady
	}
}

// Memory returns f's memory, creating it on first use.
func (e *Engine) Memory(id string) *Memory {
	m, ok := e.memory[id]
	if !ok {
		m = newMemory()
		e.memory[id] = m
	}
	return m
}

// RecordHurt notes that the fighter was just hurt; the engine stays
// cautious for RecentHurtWindow decisions.
func (e *Engine) RecordHurt(id string) {
	m := e.Memory(id)
	m.LastHurtAt = m.Decisions
}

// RecordKnockdown notes a knockdown taken.
func (e *Engine) RecordKnockdown(id string) {
	m := e.Memory(id)
	m.Knockdowns++
	m.LastHurtAt = m.Decisions
}

func (e *Engine) ResetMemory(id string) { delete(e.memory, id) }

func (e *Engine) Reset() { e.memory = map[string]*Memory{} }
