package damage

import (
	"math"
	"math/rand"

	"ringsim/internal/fighter"
	"ringsim/internal/util"
)

const (
	LocLeftEyebrow  = "left_eyebrow"
	LocRightEyebrow = "right_eyebrow"
	LocLeftEyelid   = "left_eyelid"
	LocRightEyelid  = "right_eyelid"
	LocNose         = "nose"
	LocLeftEye      = "left_eye"
	LocRightEye     = "right_eye"
)

// CheckCut rolls for a cut from a head hook or uppercut. Harder shots open
// cuts more often and deeper; severity runs 0-4.
func (r *Resolver) CheckCut(rng *rand.Rand, hit Hit, damage int) (fighter.Cut, bool) {
	if hit.Blocked || hit.Target != fighter.TargetHead {
		return fighter.Cut{}, false
	}
	if !hit.Punch.IsHook() && !hit.Punch.IsUppercut() {
		return fighter.Cut{}, false
	}
	over := float64(damage) - r.cfg.CutThreshold
	if over <= 0 {
		return fighter.Cut{}, false
	}
	chance := math.Min(r.cfg.CutChanceMax, over*r.cfg.CutChancePerPoint)
	if !util.Chance(rng, chance) {
		return fighter.Cut{}, false
	}
	loc := cutLocation(rng, hit.Punch)
	sev := cutSeverity(over)
	if loc == LocLeftEyelid || loc == LocRightEyelid {
		sev++
	}
	if sev > 4 {
		sev = 4
	}
	return fighter.Cut{Location: loc, Severity: sev}, true
}

func cutSeverity(over float64) int {
	switch {
	case over < 2:
		return 0
	case over < 5:
		return 1
	case over < 8:
		return 2
	case over < 12:
		return 3
	}
	return 4
}

// uppercuts split the nose or catch the lids, hooks land on the brow of the
// side they come from
func cutLocation(rng *rand.Rand, p fighter.PunchType) string {
	if p.IsUppercut() {
		if rng.Float64() < 0.5 {
			return LocNose
		}
		if p == fighter.LeadUppercut {
			return LocRightEyelid
		}
		return LocLeftEyelid
	}
	if p == fighter.LeadHook {
		return LocRightEyebrow
	}
	return LocLeftEyebrow
}

// ApplyCut records a cut, deepening an existing one at the same spot.
func ApplyCut(f *fighter.Fighter, c fighter.Cut) fighter.Cut {
	for i := range f.Cuts {
		if f.Cuts[i].Location == c.Location {
			f.Cuts[i].Severity = min(4, max(f.Cuts[i].Severity+1, c.Severity))
			return f.Cuts[i]
		}
	}
	f.Cuts = append(f.Cuts, c)
	return c
}

// CheckSwelling rolls for swelling once clean head punches taken pass the
// threshold; it worsens with every further multiple of the threshold. The
// defender is not modified, see ApplySwelling.
func (r *Resolver) CheckSwelling(rng *rand.Rand, defender *fighter.Fighter) (fighter.Swelling, bool) {
	if r.cfg.SwellingThreshold <= 0 || defender.CleanHeadPunchesTaken < r.cfg.SwellingThreshold {
		return fighter.Swelling{}, false
	}
	if !util.Chance(rng, r.cfg.SwellingChance) {
		return fighter.Swelling{}, false
	}
	loc := LocLeftEye
	if rng.Float64() < 0.5 {
		loc = LocRightEye
	}
	sev := min(4, defender.CleanHeadPunchesTaken/r.cfg.SwellingThreshold)
	for _, cur := range defender.Swelling {
		if cur.Location == loc && cur.Severity >= sev {
			return fighter.Swelling{}, false
		}
	}
	return fighter.Swelling{Location: loc, Severity: sev}, true
}

// ApplySwelling records a swelling, raising an existing one at the same spot.
// Swelling never goes down during a fight.
func ApplySwelling(f *fighter.Fighter, s fighter.Swelling) fighter.Swelling {
	for i := range f.Swelling {
		if f.Swelling[i].Location == s.Location {
			f.Swelling[i].Severity = min(4, max(f.Swelling[i].Severity, s.Severity))
			return f.Swelling[i]
		}
	}
	f.Swelling = append(f.Swelling, s)
	return s
}

// VisionImpairment is a capped weighted sum of eye-area injuries, in [0, VisionCap].
func (r *Resolver) VisionImpairment(f *fighter.Fighter) float64 {
	total := 0.0
	for _, c := range f.Cuts {
		w := 0.4
		switch c.Location {
		case LocLeftEyebrow, LocRightEyebrow, LocLeftEyelid, LocRightEyelid:
			w = 1
		}
		total += float64(c.Severity) * 0.05 * w
	}
	for _, s := range f.Swelling {
		total += float64(s.Severity) * 0.1
	}
	return util.Clamp(total, 0, r.cfg.VisionCap)
}
