package fighter

import "strings"

// State is the primary tactical mode chosen each tick.
type State string

const (
	StateNeutral   State = "neutral"
	StateOffensive State = "offensive"
	StateDefensive State = "defensive"
	StateTiming    State = "timing"
	StateMoving    State = "moving"
	StateClinch    State = "clinch"
	StateHurt      State = "hurt"
	StateDown      State = "down"
)

// PrimaryStates are the candidates of the per-tick state draw, in draw order.
var PrimaryStates = []State{StateOffensive, StateDefensive, StateTiming, StateMoving, StateClinch}

type SubState string

const (
	SubNone SubState = ""

	SubJab         SubState = "jab"
	SubPowerShot   SubState = "power_shot"
	SubBodyWork    SubState = "body_work"
	SubCombination SubState = "combination"

	SubBlock        SubState = "block"
	SubHeadMovement SubState = "head_movement"
	SubShoulderRoll SubState = "shoulder_roll"
	SubFootwork     SubState = "footwork"
	SubCover        SubState = "cover_up"

	SubCounter SubState = "counter"
	SubRead    SubState = "read"
	SubFeint   SubState = "feint"

	SubCircle         SubState = "circle"
	SubCloseDistance  SubState = "close_distance"
	SubCreateDistance SubState = "create_distance"
	SubEscape         SubState = "escape"
	SubCutOff         SubState = "cut_off"

	SubTieUp   SubState = "tie_up"
	SubRecover SubState = "recover"
)

type PunchType string

const (
	Jab          PunchType = "jab"
	Cross        PunchType = "cross"
	LeadHook     PunchType = "lead_hook"
	RearHook     PunchType = "rear_hook"
	LeadUppercut PunchType = "lead_uppercut"
	RearUppercut PunchType = "rear_uppercut"
	BodyJab      PunchType = "body_jab"
	BodyCross    PunchType = "body_cross"
	LeadBodyHook PunchType = "lead_body_hook"
	RearBodyHook PunchType = "rear_body_hook"
)

// PunchTypes lists every punch in a stable order.
var PunchTypes = []PunchType{
	Jab, Cross, LeadHook, RearHook, LeadUppercut,
	RearUppercut, BodyJab, BodyCross, LeadBodyHook, RearBodyHook,
}

func (p PunchType) IsBody() bool { return strings.HasPrefix(string(p), "body_") || strings.HasSuffix(string(p), "body_hook") }

func (p PunchType) IsHook() bool {
	return p == LeadHook || p == RearHook || p == LeadBodyHook || p == RearBodyHook
}

func (p PunchType) IsUppercut() bool { return p == LeadUppercut || p == RearUppercut }

// IsPower reports rear-hand shots thrown with full weight transfer.
func (p PunchType) IsPower() bool {
	switch p {
	case Cross, RearHook, RearUppercut, BodyCross, RearBodyHook:
		return true
	}
	return false
}

type Target string

const (
	TargetHead Target = "head"
	TargetBody Target = "body"
)

type Direction string

const (
	DirForward  Direction = "forward"
	DirBackward Direction = "backward"
	DirLeft     Direction = "left"
	DirRight    Direction = "right"
)

type ActionKind string

const (
	ActionPunch  ActionKind = "PUNCH"
	ActionBlock  ActionKind = "BLOCK"
	ActionEvade  ActionKind = "EVADE"
	ActionMove   ActionKind = "MOVE"
	ActionClinch ActionKind = "CLINCH"
	ActionWait   ActionKind = "WAIT"
)

// Action is what a fighter physically does this tick. Punch, Combo, Target and
// Counter are meaningful for PUNCH; Direction for MOVE.
type Action struct {
	Kind      ActionKind
	Punch     PunchType
	Combo     []PunchType
	Target    Target
	Counter   bool
	Direction Direction
}

func PunchAction(p PunchType) Action {
	t := TargetHead
	if p.IsBody() {
		t = TargetBody
	}
	return Action{Kind: ActionPunch, Punch: p, Target: t}
}

func ComboAction(seq []PunchType) Action {
	if len(seq) == 0 {
		return PunchAction(Jab)
	}
	a := PunchAction(seq[0])
	a.Combo = append([]PunchType(nil), seq...)
	return a
}

func MoveAction(d Direction) Action { return Action{Kind: ActionMove, Direction: d} }
func Wait() Action                  { return Action{Kind: ActionWait} }

func (a Action) IsPunch() bool       { return a.Kind == ActionPunch }
func (a Action) IsCombination() bool { return a.Kind == ActionPunch && len(a.Combo) > 1 }

// Punches returns every punch the action throws, in order.
func (a Action) Punches() []PunchType {
	if a.Kind != ActionPunch {
		return nil
	}
	if len(a.Combo) > 0 {
		return a.Combo
	}
	return []PunchType{a.Punch}
}

type Decision struct {
	State    State
	SubState SubState
	Action   Action
	Target   string
}
