package verbs

import "github.com/zond/grue/vocab"

// Action ids of the builtin verbs.
const (
	Look         = "LOOK"
	Take         = "TAKE"
	Drop         = "DROP"
	Put          = "PUT"
	Inventory    = "INVENTORY"
	Open         = "OPEN"
	Close        = "CLOSE"
	Read         = "READ"
	Eat          = "EAT"
	Drink        = "DRINK"
	Throw        = "THROW"
	Wave         = "WAVE"
	Attack       = "ATTACK"
	Move         = "MOVE"
	Lift         = "LIFT"
	Raise        = "RAISE"
	Lower        = "LOWER"
	Give         = "GIVE"
	Burn         = "BURN"
	Turn         = "TURN"
	TurnOn       = "TURNON"
	TurnOff      = "TURNOFF"
	Wait         = "WAIT"
	Walk         = "WALK"
	Brief        = "BRIEF"
	Unbrief      = "UNBRIEF"
	Superbrief   = "SUPERBRIEF"
	Unsuperbrief = "UNSUPERBRIEF"
	Score        = "SCORE"
	Diagnose     = "DIAGNOSE"
	Info         = "INFO"
	Quit         = "QUIT"
	Save         = "SAVE"
	Restore      = "RESTORE"
	Script       = "SCRIPT"
	Unscript     = "UNSCRIPT"
)

// Orphans are the one-object actions an answer to a "Which" question may complete.
var Orphans = map[string]bool{
	Take:  true,
	Drop:  true,
	Open:  true,
	Close: true,
	Read:  true,
	Eat:   true,
	Drink: true,
}

var (
	empty      = Slot{}
	held       = Slot{Scope: Held}
	room       = Slot{Scope: Room}
	roomNoTake = Slot{Scope: Room, NoTake: true}
	heldWith   = Slot{Scope: Held, Prep: vocab.With}
	roomIn     = Slot{Scope: Room, Prep: vocab.In, NoTake: true}
	roomTo     = Slot{Scope: Room, Prep: vocab.To, NoTake: true}
	roomAt     = Slot{Scope: Room, Prep: vocab.At, NoTake: true}
)

func bare(action string) *Spec {
	return one(action, empty)
}

func one(action string, slot Slot) *Spec {
	return &Spec{
		Action: action,
		Syntaxes: []Syntax{
			{Slot1: slot, Action: action, Driver: true},
		},
	}
}

// Default returns the builtin verb table.
func Default() *Table {
	take := one(Take, roomNoTake)
	return New(
		Entry{Words: []string{"LOOK", "L", "EXAMINE", "DESCRIBE"}, Spec: bare(Look)},
		Entry{Words: []string{"TAKE", "GET", "CARRY"}, Spec: take},
		Entry{Words: []string{"PICK"}, Spec: &Spec{
			Action:    Take,
			Syntaxes:  take.Syntaxes,
			Particles: map[string]*Spec{"UP": take},
		}},
		Entry{Words: []string{"DROP", "RELEASE"}, Spec: one(Drop, held)},
		Entry{Words: []string{"PUT", "INSERT", "PLACE"}, Spec: &Spec{
			Action: Put,
			Syntaxes: []Syntax{
				{Slot1: held, Slot2: roomIn, Action: Put},
				{Slot1: held, Action: Put, Driver: true},
			},
		}},
		Entry{Words: []string{"INVENTORY", "I"}, Spec: bare(Inventory)},
		Entry{Words: []string{"OPEN"}, Spec: one(Open, roomNoTake)},
		Entry{Words: []string{"CLOSE", "SHUT"}, Spec: one(Close, roomNoTake)},
		Entry{Words: []string{"READ", "SKIM"}, Spec: one(Read, room)},
		Entry{Words: []string{"EAT", "DEVOUR", "CONSUME"}, Spec: one(Eat, room)},
		Entry{Words: []string{"DRINK", "SWALLOW", "IMBIBE"}, Spec: one(Drink, room)},
		Entry{Words: []string{"THROW", "TOSS", "HURL"}, Spec: &Spec{
			Action: Throw,
			Syntaxes: []Syntax{
				{Slot1: held, Action: Throw, Driver: true},
				{Slot1: held, Slot2: roomAt, Action: Throw},
			},
		}},
		Entry{Words: []string{"WAVE", "SHAKE"}, Spec: one(Wave, room)},
		Entry{Words: []string{"SWING", "BRANDISH"}, Spec: &Spec{
			Action: Wave,
			Syntaxes: []Syntax{
				{Slot1: held, Action: Wave, Driver: true},
				{Slot1: held, Slot2: roomAt, Action: Attack, Flip: true},
			},
		}},
		Entry{Words: []string{"ATTACK", "KILL", "FIGHT", "HIT", "STAB"}, Spec: &Spec{
			Action: Attack,
			Syntaxes: []Syntax{
				{Slot1: roomNoTake, Action: Attack, Driver: true},
				{Slot1: roomNoTake, Slot2: heldWith, Action: Attack},
			},
		}},
		Entry{Words: []string{"MOVE", "PUSH", "SLIDE", "PULL"}, Spec: one(Move, roomNoTake)},
		Entry{Words: []string{"LIFT"}, Spec: one(Lift, roomNoTake)},
		Entry{Words: []string{"RAISE"}, Spec: one(Raise, roomNoTake)},
		Entry{Words: []string{"LOWER"}, Spec: one(Lower, roomNoTake)},
		Entry{Words: []string{"GIVE", "FEED", "OFFER"}, Spec: &Spec{
			Action: Give,
			Syntaxes: []Syntax{
				{Slot1: held, Action: Give, Driver: true},
				{Slot1: held, Slot2: roomTo, Action: Give},
			},
		}},
		Entry{Words: []string{"BURN", "LIGHT", "IGNITE"}, Spec: &Spec{
			Action: Burn,
			Syntaxes: []Syntax{
				{Slot1: roomNoTake, Action: Burn, Driver: true},
				{Slot1: roomNoTake, Slot2: heldWith, Action: Burn},
			},
		}},
		Entry{Words: []string{"TURN", "SWITCH", "FLIP"}, Spec: &Spec{
			Action:   Turn,
			Syntaxes: one(Turn, roomNoTake).Syntaxes,
			Particles: map[string]*Spec{
				vocab.On:  one(TurnOn, room),
				vocab.Off: one(TurnOff, roomNoTake),
			},
		}},
		Entry{Words: []string{"WAIT", "Z"}, Spec: bare(Wait)},
		Entry{Words: []string{"WALK", "GO", "RUN"}, Spec: bare(Walk)},
		Entry{Words: []string{"BRIEF"}, Spec: bare(Brief)},
		Entry{Words: []string{"UNBRIEF"}, Spec: bare(Unbrief)},
		Entry{Words: []string{"SUPERBRIEF"}, Spec: bare(Superbrief)},
		Entry{Words: []string{"UNSUPERBRIEF"}, Spec: bare(Unsuperbrief)},
		Entry{Words: []string{"SCORE"}, Spec: bare(Score)},
		Entry{Words: []string{"DIAGNOSE"}, Spec: bare(Diagnose)},
		Entry{Words: []string{"INFO"}, Spec: bare(Info)},
		Entry{Words: []string{"QUIT", "Q"}, Spec: bare(Quit)},
		Entry{Words: []string{"SAVE"}, Spec: bare(Save)},
		Entry{Words: []string{"RESTORE"}, Spec: bare(Restore)},
		Entry{Words: []string{"SCRIPT"}, Spec: bare(Script)},
		Entry{Words: []string{"UNSCRIPT"}, Spec: bare(Unscript)},
	)
}
