package combat

import (
	"log/slog"
	"math"

	"ringsim/internal/damage"
	"ringsim/internal/fighter"
	"ringsim/internal/position"
	"ringsim/internal/util"
)

// count is a knockdown count in progress.
type count struct {
	down int     // corner of the fighter on the canvas
	at   float64 // seconds counted
	rise int     // count at which the fighter beats it, 0 when counted out
}

const (
	mandatoryCount = 8
	fullCount      = 10
)

// punchRange is how far p thrown by f can land.
func (bt *Bout) punchRange(f *fighter.Fighter, p fighter.PunchType) float64 {
	ex := bt.cfg.Fight.Exchange
	r := ex.StraightRange
	switch {
	case p.IsUppercut():
		r = ex.UppercutRange
	case p.IsHook():
		r = ex.HookRange
	}
	reach := f.Physical.Reach
	if reach <= 0 {
		reach = 180
	}
	return r + (reach-180)/20
}

// guardRating is the 0..1 defensive skill the defender is using this tick.
func guardRating(f *fighter.Fighter, d fighter.Decision) float64 {
	switch d.SubState {
	case fighter.SubHeadMovement:
		return f.Attr(f.Defense.HeadMovement) / 100
	case fighter.SubShoulderRoll:
		return f.Attr(f.Defense.ShoulderRoll) / 100
	case fighter.SubBlock, fighter.SubCover:
		return f.Attr(f.Defense.Blocking) / 100
	case fighter.SubFootwork:
		return f.Attr(f.Technical.Footwork) / 100
	}
	return (f.Attr(f.Defense.Blocking) + f.Attr(f.Defense.HeadMovement) + f.Attr(f.Technical.Footwork)) / 300
}

// landChance is the chance the idx-th punch of the attack connects.
func (bt *Bout) landChance(att, def *fighter.Fighter, decDef fighter.Decision, p fighter.PunchType, idx int, counter bool) float64 {
	ex := bt.cfg.Fight.Exchange
	acc := att.Rating(fighter.BuffAccuracy, att.Technical.Accuracy) / 100
	chance := ex.LandBase + (acc-0.5)*ex.AccuracyWeight - (guardRating(def, decDef)-0.5)*ex.DefenseWeight

	hand := att.Rating(fighter.BuffHandSpeed, att.Speed.HandSpeed) / 100
	chance *= 0.9 + hand*0.2
	chance *= (1 + bt.effects.AccuracyModifier(att.ID)) * (1 + bt.effects.SpeedModifier(att.ID)*0.5)
	chance *= 1 - bt.effects.DefenseModifier(def.ID)
	chance *= 1 - bt.stamina.Penalties(att).Accuracy
	chance *= 1 + bt.stamina.Penalties(def).Defense
	chance *= 1 - bt.damage.VisionImpairment(att)

	if p == fighter.Jab || p == fighter.BodyJab {
		chance *= 1.1
	}
	if counter {
		chance += ex.CounterBonus
	}
	chance *= math.Pow(ex.ComboDecay, float64(idx))

	switch decDef.Action.Kind {
	case fighter.ActionEvade:
		if p.IsBody() {
			chance *= (1 + ex.EvadeFactor) / 2
		} else {
			chance *= ex.EvadeFactor
		}
	case fighter.ActionClinch:
		chance *= ex.ClinchFactor
	}
	if def.IsHurt {
		chance *= 1.3
	}
	return util.Clamp(chance, ex.LandMin, ex.LandMax)
}

// blockChance is the chance a connecting punch is caught on the guard.
func (bt *Bout) blockChance(def *fighter.Fighter, decDef fighter.Decision, p fighter.PunchType) float64 {
	if decDef.Action.Kind != fighter.ActionBlock {
		return 0
	}
	ex := bt.cfg.Fight.Exchange
	skill := def.Attr(def.Defense.Blocking)
	switch decDef.SubState {
	case fighter.SubShoulderRoll:
		if !p.IsBody() {
			skill = def.Attr(def.Defense.ShoulderRoll)
		}
	case fighter.SubCover:
		skill *= 1.2
	}
	c := ex.BlockChance * (0.5 + skill/100)
	if def.IsHurt {
		c *= 0.7
	}
	return util.Clamp(c, 0, 0.9)
}

// exchange resolves every punch fighter i throws this tick and reports
// whether the fight ended.
func (bt *Bout) exchange(i int, dec, decDef fighter.Decision) bool {
	att, def := bt.fighters[i], bt.fighters[1-i]
	punches := dec.Action.Punches()
	if len(punches) == 0 || att.State == fighter.StateDown {
		return false
	}
	st := &bt.stats[i]
	if dec.Action.IsCombination() {
		st.Combos++
	}

	for idx, p := range punches {
		if def.State == fighter.StateDown {
			break
		}
		bt.window[i]++
		st.Thrown++
		if p.IsPower() {
			st.PowerThrown++
		}
		counter := dec.Action.Counter && idx == 0

		if position.Distance(att, def) > bt.punchRange(att, p) {
			bt.emitPunch(i, p, "short", 0, counter)
			continue
		}
		if !util.Chance(bt.rng, bt.landChance(att, def, decDef, p, idx, counter)) {
			bt.emitPunch(i, p, "missed", 0, counter)
			continue
		}

		hit := damage.Hit{
			Punch:     p,
			Target:    fighter.PunchAction(p).Target,
			Base:      bt.damage.BaseDamage(p, att, bt.effects.PowerModifier(att.ID)-bt.stamina.Penalties(att).Power),
			IsCounter: counter,
			Blocked:   util.Chance(bt.rng, bt.blockChance(def, decDef, p)),
		}
		dmg := bt.damage.CalculateDamage(hit, att, def)
		if hit.Target == fighter.TargetBody {
			def.AddBodyDamage(float64(dmg))
		} else {
			def.AddHeadDamage(float64(dmg))
		}
		st.DamageDealt += dmg

		if hit.Blocked {
			st.Blocked++
			bt.tally[i].points += 0.1
			bt.emitPunch(i, p, "blocked", dmg, counter)
			continue
		}

		st.Landed++
		weight := 1.0
		if p.IsPower() {
			st.PowerLanded++
			weight = bt.cfg.Fight.Judges.PowerWeight
		}
		if counter {
			st.Counters++
		}
		bt.tally[i].landed++
		bt.tally[i].points += weight + float64(dmg)/20
		if hit.Target == fighter.TargetHead {
			def.CleanHeadPunchesTaken++
		}
		bt.emitPunch(i, p, "landed", dmg, counter)

		wasHurt := def.IsHurt
		bt.reaction.PunchLanded(att, def, dmg, p)
		if bt.injuries(i, hit, dmg) {
			return true
		}
		if util.Chance(bt.rng, bt.damage.KnockdownChance(dmg, hit, def)) {
			return bt.knockdown(i)
		}
		switch {
		case !wasHurt && bt.damage.CheckHurt(bt.rng, dmg, def):
			if bt.hurt(i) {
				return true
			}
		case wasHurt && p.IsPower():
			// the referee watches a hurt fighter taking power shots
			if bt.checkTKO(1-i, "punishment", 0.5) {
				return true
			}
		}
	}
	return false
}

// injuries rolls cuts and swelling from a clean shot. A deep cut can end
// the fight on the doctor's advice.
func (bt *Bout) injuries(i int, hit damage.Hit, dmg int) bool {
	def := bt.fighters[1-i]
	if c, ok := bt.damage.CheckCut(bt.rng, hit, dmg); ok {
		c = damage.ApplyCut(def, c)
		bt.stats[1-i].Cuts++
		bt.emit(Event{T: bt.clock, Type: EvCut, Payload: map[string]any{
			"fighter": def.ID, "location": c.Location, "severity": c.Severity,
		}})
		bt.reaction.CutOpened(def, c.Severity)
		if c.Severity >= 3 && bt.checkTKO(1-i, "cut", 1) {
			return true
		}
	}
	if hit.Target == fighter.TargetHead {
		if s, ok := bt.damage.CheckSwelling(bt.rng, def); ok {
			s = damage.ApplySwelling(def, s)
			bt.emit(Event{T: bt.clock, Type: EvSwelling, Payload: map[string]any{
				"fighter": def.ID, "location": s.Location, "severity": s.Severity,
			}})
		}
	}
	return false
}

func (bt *Bout) hurt(i int) bool {
	att, def := bt.fighters[i], bt.fighters[1-i]
	def.IsHurt = true
	def.HurtTicks = 0
	bt.stats[1-i].TimesHurt++
	bt.engine.RecordHurt(def.ID)
	bt.emit(Event{T: bt.clock, Type: EvHurt, Payload: map[string]any{"fighter": def.ID, "by": att.ID}})
	bt.logLine("%s is hurt by %s", def.Name, att.Name)
	bt.reaction.Hurt(att, def)
	return bt.checkTKO(1-i, "hurt", 1)
}

// knockdown drops fighter 1-i and starts the count. The outcome of the count
// is settled now and plays out over the following ticks.
func (bt *Bout) knockdown(i int) bool {
	att, def := bt.fighters[i], bt.fighters[1-i]
	def.KnockdownsThisRound++
	def.TotalKnockdowns++
	def.State = fighter.StateDown
	def.SubState = fighter.SubNone
	bt.stats[i].Knockdowns++
	bt.tally[1-i].knockdowns++
	bt.engine.RecordKnockdown(def.ID)
	bt.emit(Event{T: bt.clock, Type: EvKnockdown, Payload: map[string]any{
		"fighter": def.ID, "by": att.ID, "this_round": def.KnockdownsThisRound, "total": def.TotalKnockdowns,
	}})
	bt.logLine("%s goes down from a shot by %s", def.Name, att.Name)
	bt.reaction.Knockdown(att, def)

	if bt.cfg.Fight.ThreeKnockdownRule && def.KnockdownsThisRound >= 3 {
		bt.stop(i, MethodTKO, "three_knockdowns")
		return true
	}

	c := &count{down: 1 - i}
	for _, at := range bt.cfg.Fight.Exchange.CountAttempts {
		if at <= 0 || at >= fullCount {
			continue
		}
		if util.Chance(bt.rng, bt.damage.RecoveryChance(def, def.TotalKnockdowns, at)) {
			c.rise = at
			break
		}
	}
	bt.count = c
	return false
}

// tickCount advances the count by one tick. Nobody fights during a count.
func (bt *Bout) tickCount(dt float64) bool {
	c := bt.count
	down, up := bt.fighters[c.down], bt.fighters[1-c.down]
	bt.stamina.Update(up, fighter.Decision{State: fighter.StateNeutral, Action: fighter.Wait()}, dt)
	bt.stamina.Update(down, fighter.Decision{State: fighter.StateDown, Action: fighter.Wait()}, dt)

	c.at += dt
	n := int(math.Floor(c.at + 1e-9))
	bt.emit(Event{T: bt.clock, Type: EvCount, Payload: map[string]any{"fighter": down.ID, "count": n}})

	switch {
	case c.rise == 0 && n >= fullCount:
		bt.count = nil
		bt.logLine("%s is counted out", down.Name)
		bt.stop(1-c.down, MethodKO, "counted_out")
		return true
	case c.rise > 0 && n >= max(c.rise, mandatoryCount):
		bt.count = nil
		down.State = fighter.StateNeutral
		down.IsHurt = true
		down.HurtTicks = 0
		bt.emit(Event{T: bt.clock, Type: EvHurtRecovered, Payload: map[string]any{"fighter": down.ID, "beat_count": c.rise}})
		bt.logLine("%s beats the count at %d", down.Name, c.rise)
		bt.reaction.Recovery(down)
		bt.ring.Place(bt.fighters[0], bt.fighters[1], bt.cfg.Fight.StartDistance)
		return bt.checkTKO(c.down, "after_knockdown", 1)
	}
	return false
}

// recoverHurt clears the hurt flag once the fighter has survived long
// enough; heart shortens the wait.
func (bt *Bout) recoverHurt(i int) {
	f := bt.fighters[i]
	if !f.IsHurt || f.State == fighter.StateDown {
		return
	}
	f.HurtTicks++
	need := float64(bt.cfg.Fight.HurtRecoveryTicks) * (1.5 - f.Attr(f.Mental.Heart)/100)
	if float64(f.HurtTicks) < need {
		return
	}
	f.IsHurt = false
	f.HurtTicks = 0
	bt.emit(Event{T: bt.clock, Type: EvHurtRecovered, Payload: map[string]any{"fighter": f.ID}})
	bt.reaction.Recovery(f)
}

// checkTKO asks the referee, doctor or corner whether fighter loser should
// be saved. scale weights the per-check probability.
func (bt *Bout) checkTKO(loser int, reason string, scale float64) bool {
	p := bt.damage.TKOProbability(bt.fighters[loser], bt.cfg.Fight.RefereeProtectiveness) * scale
	if !util.Chance(bt.rng, p) {
		return false
	}
	bt.stop(1-loser, MethodTKO, reason)
	return true
}

func (bt *Bout) stop(winner int, method Method, reason string) {
	bt.result = &stoppage{winner: winner, method: method}
	w, l := bt.fighters[winner], bt.fighters[1-winner]
	bt.emit(Event{T: bt.clock, Type: EvStoppage, Payload: map[string]any{
		"winner": w.ID, "method": string(method), "reason": reason, "round": bt.round, "time": bt.elapsed,
	}})
	bt.logLine("%s wins by %s over %s in round %d", w.Name, method, l.Name, bt.round)
	slog.Debug("stoppage", "winner", w.ID, "method", method, "reason", reason, "round", bt.round, "time", bt.elapsed)
}

func (bt *Bout) emitPunch(i int, p fighter.PunchType, result string, dmg int, counter bool) {
	payload := map[string]any{
		"attacker": bt.fighters[i].ID,
		"defender": bt.fighters[1-i].ID,
		"punch":    string(p),
		"result":   result,
	}
	if dmg > 0 {
		payload["damage"] = dmg
	}
	if counter {
		payload["counter"] = true
	}
	bt.emit(Event{T: bt.clock, Type: EvPunch, Payload: payload})
}
