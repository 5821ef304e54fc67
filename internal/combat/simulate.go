package combat

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"ringsim/internal/config"
	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

// RunSingle fights a against b to a finish under tuning. Both fighters are
// mutated; pass fresh ones for every fight. Events are collected only when
// record is set.
func RunSingle(env *Env, tuning config.Tuning, a, b *fighter.Fighter, record bool) (SimResult, error) {
	if env == nil {
		env = &Env{}
	}
	if env.Rng == nil {
		env.Rng = util.New(0)
	}
	bt, err := NewBout(tuning, a, b, env.Rng)
	if err != nil {
		return SimResult{}, err
	}
	return bt.Run(env, record), nil
}

// Run plays the whole fight: rounds of ticks, the rest between rounds and
// the verdict.
func (bt *Bout) Run(env *Env, record bool) SimResult {
	var events []Event
	bt.emit = func(ev Event) {
		if record {
			events = append(events, ev)
		}
	}
	if env.Delta <= 0 {
		env.Delta = bt.cfg.Fight.TickSeconds
	}

	a, b := bt.fighters[0], bt.fighters[1]
	bt.emit(Event{T: 0, Type: EvFightStart, Payload: map[string]any{
		"fighters": []string{a.ID, b.ID}, "rounds": bt.Rounds(), "title_fight": bt.cfg.Fight.TitleFight,
	}})
	bt.logLine("%s vs %s, %d rounds", a.Name, b.Name, bt.Rounds())

	for r := 1; r <= bt.Rounds(); r++ {
		bt.round = r
		bt.startRound()
		bt.fightRound(env)
		if bt.result != nil {
			break
		}
		bt.endRound()
		if r == bt.Rounds() {
			break
		}
		bt.betweenRounds()
		if bt.result != nil {
			break
		}
	}
	env.Time = bt.clock

	res := bt.finish()
	bt.effects.Clear()
	bt.engine.Reset()
	if record {
		res.Events = events
	}
	slog.Debug("fight finished", "winner", res.Winner, "method", res.Method, "round", res.Round, "ticks", bt.ticks)
	return res
}

func (bt *Bout) startRound() {
	a, b := bt.fighters[0], bt.fighters[1]
	a.StartRound()
	b.StartRound()
	bt.elapsed = 0
	bt.tally = [2]roundTally{}

	if bt.round == 1 {
		bt.ring.Place(a, b, bt.cfg.Fight.StartDistance)
		bt.reaction.OpeningBell(a, b, bt.cfg.Fight.TitleFight)
	} else {
		bt.ring.ResetCorners(a, b)
		avg := bt.judges.average()
		left := bt.Rounds() - bt.round + 1
		for i, f := range bt.fighters {
			bt.reaction.BehindOnCards(f, avg[1-i]-avg[i], left)
		}
	}
	bt.emit(Event{T: bt.clock, Type: EvRoundStart, Payload: map[string]any{"round": bt.round}})
	bt.logLine("Round %d", bt.round)
}

// fightRound runs ticks until the bell. A count in progress at the bell
// runs to its end.
func (bt *Bout) fightRound(env *Env) {
	dur := bt.RoundDuration()
	for bt.elapsed < dur || bt.count != nil {
		env.Time = bt.clock
		ended := bt.tick(env.Delta)
		bt.elapsed += env.Delta
		bt.clock += env.Delta
		if ended {
			return
		}
	}
}

// tick advances the fight by one step and reports whether it ended.
func (bt *Bout) tick(dt float64) bool {
	bt.ticks++
	if bt.count != nil {
		ended := bt.tickCount(dt)
		bt.tickEffects()
		return ended
	}

	a, b := bt.fighters[0], bt.fighters[1]
	snaps := bt.snapshot()
	decs := [2]fighter.Decision{bt.decide(0, snaps), bt.decide(1, snaps)}
	for i, f := range bt.fighters {
		f.State, f.SubState = decs[i].State, decs[i].SubState
		bt.stamina.Update(f, decs[i], dt)
	}
	bt.ring.UpdatePair(a, decs[0], b, decs[1], dt)

	first := bt.rng.Intn(2)
	for _, i := range [2]int{first, 1 - first} {
		if bt.exchange(i, decs[i], decs[1-i]) {
			return true
		}
	}

	for i, f := range bt.fighters {
		bt.recoverHurt(i)
		f.TickBuffs()
		if bt.stamina.TrySecondWind(bt.rng, f, bt.round, bt.Rounds()) {
			bt.stats[i].SecondWind = true
			bt.emit(Event{T: bt.clock, Type: EvSecondWind, Payload: map[string]any{"fighter": f.ID, "stamina": f.CurrentStamina}})
			bt.logLine("%s finds a second wind", f.Name)
		}
	}
	bt.periodicChecks()
	bt.tickEffects()
	return false
}

// snapshot copies both fighters as they stood at the start of the tick.
func (bt *Bout) snapshot() [2]fighter.Fighter {
	return [2]fighter.Fighter{*bt.fighters[0], *bt.fighters[1]}
}

// decide picks fighter i's action against the opponent's snapshot, never the
// live opponent, so neither corner sees the other's choice this tick.
func (bt *Bout) decide(i int, snaps [2]fighter.Fighter) fighter.Decision {
	return bt.engine.Decide(bt.fighters[i], &snaps[1-i], bt)
}

// periodicChecks rolls the windowed effect triggers: output, fatigue and
// focus.
func (bt *Bout) periodicChecks() {
	ex := bt.cfg.Fight.Exchange
	if ex.OutputWindow > 0 && bt.ticks%ex.OutputWindow == 0 {
		for i, f := range bt.fighters {
			bt.reaction.HighOutput(f, bt.window[i])
			bt.window[i] = 0
			if f.StaminaPercent() < 0.3 {
				bt.reaction.LowStamina(f)
			}
		}
	}
	if ex.FocusInterval > 0 && bt.ticks%ex.FocusInterval == 0 {
		for _, f := range bt.fighters {
			bt.reaction.FocusCheck(f)
		}
	}
}

func (bt *Bout) tickEffects() {
	for _, ex := range bt.effects.Tick() {
		bt.emit(Event{T: bt.clock, Type: EvEffectExpired, Payload: map[string]any{"fighter": ex.FighterID, "effect": string(ex.Type)}})
	}
	if s, ok := bt.effects.DetectMomentumShift(bt.fighters[0].ID); ok {
		bt.emit(Event{T: bt.clock, Type: EvMomentumShift, Payload: map[string]any{
			"leader": s.Leader, "kind": string(s.Kind), "score": s.Score,
		}})
	}
}

func (bt *Bout) endRound() {
	cards := bt.judges.score(bt.tally)
	bt.emit(Event{T: bt.clock, Type: EvRoundEnd, Payload: map[string]any{
		"round":  bt.round,
		"cards":  cards,
		"landed": []int{bt.tally[0].landed, bt.tally[1].landed},
	}})

	edge := bt.cfg.Fight.Judges.DominanceEdge
	for i := range bt.fighters {
		mine, theirs := bt.tally[i].points, bt.tally[1-i].points
		if mine >= 5 && mine >= theirs*edge {
			bt.reaction.Domination(bt.fighters[i], bt.fighters[1-i])
		}
	}
}

// betweenRounds is the minute in the corner. The corner may retire a badly
// beaten fighter before the recovery work starts.
func (bt *Bout) betweenRounds() {
	for i := range bt.fighters {
		if bt.checkTKO(i, "corner_retirement", 0.5) {
			return
		}
	}
	for _, f := range bt.fighters {
		gained := bt.stamina.BetweenRounds(f, bt.cfg.Fight.CornerBonus)
		bt.damage.BetweenRoundRecovery(f)
		bt.emit(Event{T: bt.clock, Type: EvBetweenRounds, Payload: map[string]any{
			"fighter":     f.ID,
			"gained":      gained,
			"stamina":     f.StaminaPercent(),
			"head_damage": f.HeadDamagePercent(),
			"body_damage": f.BodyDamagePercent(),
		}})
	}
}

func (bt *Bout) finish() SimResult {
	res := SimResult{
		Fighters:   [2]string{bt.fighters[0].ID, bt.fighters[1].ID},
		Round:      bt.round,
		Time:       bt.elapsed,
		Duration:   bt.clock,
		Scorecards: bt.judges.scorecards(),
	}
	if bt.result != nil {
		res.Winner = bt.fighters[bt.result.winner].ID
		res.Method = bt.result.method
	} else {
		w, m := bt.judges.verdict()
		res.Method = m
		totals := make([][2]int, 0, len(res.Scorecards))
		for _, c := range res.Scorecards {
			totals = append(totals, c.Totals)
		}
		payload := map[string]any{"method": string(m), "cards": totals}
		if w >= 0 {
			res.Winner = bt.fighters[w].ID
			payload["winner"] = res.Winner
			bt.logLine("%s wins by %s", bt.fighters[w].Name, m)
		} else {
			bt.logLine("the fight is scored a draw")
		}
		bt.emit(Event{T: bt.clock, Type: EvDecision, Payload: payload})
	}

	for i, f := range bt.fighters {
		bt.stats[i].HeadDamage = f.HeadDamage
		bt.stats[i].BodyDamage = f.BodyDamage
		bt.stats[i].FinalStamina = f.StaminaPercent()
	}
	res.Stats = bt.stats
	return res
}

func (bt *Bout) logLine(format string, args ...any) {
	bt.emit(Event{T: bt.clock, Type: EvLogLine, Payload: map[string]any{
		"text":  fmt.Sprintf(format, args...),
		"round": bt.round,
	}})
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
