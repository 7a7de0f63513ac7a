// Package game interprets player commands against a world and advances its
// clock.
//
// Every command runs the same pipeline: the line is normalized, the verb is
// looked up, object phrases are resolved (possibly suspending the command
// with a "Which ...?" question), the resolved objects are matched against
// the syntaxes of the verb, and the result is dispatched to the behaviors
// and handlers of the Library. Afterwards the turn scheduler runs the light
// countdown, due events, location hazards and the demons, in that order.
package game

import (
	"github.com/zond/grue/structs"
)

// Outcome classifies how a command ended.
type Outcome int

const (
	OK Outcome = iota
	UnknownWord
	NotFound
	Dark
	Ambiguous
	SyntaxMismatch
	Refused
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "OK"
	case UnknownWord:
		return "UnknownWord"
	case NotFound:
		return "NotFound"
	case Dark:
		return "Dark"
	case Ambiguous:
		return "Ambiguous"
	case SyntaxMismatch:
		return "SyntaxMismatch"
	case Refused:
		return "Refused"
	case Fatal:
		return "Fatal"
	}
	return "Unknown"
}

// Call is one dispatch of an action.
type Call struct {
	Verb     string
	Direct   *structs.Object
	Indirect *structs.Object
}

// Handler performs an action after the behaviors of the objects involved declined it.
// Direct is nil only when the syntax was reached as a driver, in which case the
// handler asks what to act on.
type Handler func(c *Context, direct, indirect *structs.Object)

// Behavior lets an object take over a call it is part of. It returns whether it handled the call.
type Behavior func(c *Context, self *structs.Object, call Call) bool

// RoomBehavior lets a location take over a call made while the player is there.
// It also sees the Enter pseudo verb when the player arrives.
type RoomBehavior func(c *Context, loc *structs.Location, call Call) bool

// ExitBehavior runs when the player uses a conditional exit.
type ExitBehavior func(c *Context, exit *structs.Exit)

// EventFunc runs a scheduled event. The target may no longer exist.
type EventFunc func(c *Context, target string)

// Enter is the verb room behaviors see when the player arrives.
const Enter = "!ENTER"

// Library is the set of named handlers and behaviors content refers to.
type Library struct {
	Handlers map[string]Handler
	Objects  map[string]Behavior
	Rooms    map[string]RoomBehavior
	Exits    map[string]ExitBehavior
	Events   map[string]EventFunc
}

// Persister saves and restores games on behalf of the SAVE and RESTORE actions.
type Persister interface {
	Save(*structs.Snapshot) error
	Restore() (*structs.Snapshot, error)
}

// Scripter records transcripts on behalf of the SCRIPT and UNSCRIPT actions.
type Scripter interface {
	StartScript() (string, error)
	StopScript() error
}

// Last holds what the most recent dispatch referred to, for IT and AGAIN.
type Last struct {
	Verb     string
	Direct   string
	Indirect string
	// Line is the last command line, repeated by AGAIN.
	Line string
}

// Pending is a command suspended by an ambiguous object word.
// It lives until the next input.
type Pending struct {
	Verb       string
	Words      []string
	Candidates []*structs.Object
	// Word is the ambiguous word as typed.
	Word string
}
