package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
	"github.com/zond/grue"
	"github.com/zond/grue/schedule"
	"github.com/zond/grue/structs"
	"github.com/zond/grue/verbs"
)

// Context is the state of one game, passed to every handler, behavior and event.
type Context struct {
	World  *structs.World
	Verbs  *verbs.Table
	Events *schedule.Queue
	Rand   *rand.Rand
	Out    io.Writer

	Last    Last
	Pending *Pending

	// Persister and Scripter are nil when saving or transcripts aren't available.
	Persister Persister
	Scripter  Scripter

	lib     Library
	source  *rand.PCG
	running bool
	outcome Outcome
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Refuse prints a message explaining why an action didn't happen.
func (c *Context) Refuse(format string, args ...any) {
	c.outcome = Refused
	fmt.Fprintf(c.Out, format, args...)
	fmt.Fprintln(c.Out)
}

// Ask prints the question handlers reached without an object reply with.
func (c *Context) Ask(action string) {
	c.Refuse("What do you want to %s?", strings.ToLower(action))
}

// Stop ends the game once the current turn is done.
func (c *Context) Stop() {
	c.running = false
}

func (c *Context) Running() bool {
	return c.running
}

// Turn returns the number of the current turn.
func (c *Context) Turn() int {
	return c.World.Player.Moves
}

func (c *Context) Here() *structs.Location {
	return c.World.Here()
}

// Object returns the object with the id, if it still exists.
func (c *Context) Object(id string) (*structs.Object, bool) {
	if id == "" {
		return nil, false
	}
	return c.World.Object(id)
}

// Chance returns true with the given percent probability.
func (c *Context) Chance(percent int) bool {
	return c.Rand.IntN(100) < percent
}

// Schedule registers an event to fire after the given number of turns.
func (c *Context) Schedule(after int, kind string, target string) schedule.Event {
	return c.Events.Add(c.Turn()+after, kind, target)
}

// Lit reports whether the player's location is lit.
func (c *Context) Lit() bool {
	return c.World.IsLit(c.Here())
}

// Armed reports whether the player holds a weapon.
func (c *Context) Armed() (*structs.Object, bool) {
	for _, obj := range c.World.Held() {
		if obj.Is(structs.Weapon) {
			return obj, true
		}
	}
	return nil, false
}

// AddScore raises the score.
func (c *Context) AddScore(points int) {
	c.World.Player.Score += points
}

// Perform dispatches an action: the behaviors of the direct and indirect
// objects and the location get to take it over, in that order, before the
// handler bound to the action runs.
func (c *Context) Perform(action string, direct, indirect *structs.Object) {
	call := Call{
		Verb:     action,
		Direct:   direct,
		Indirect: indirect,
	}
	for _, obj := range []*structs.Object{direct, indirect} {
		if obj == nil || obj.Behavior == "" || (obj == indirect && indirect == direct) {
			continue
		}
		if behavior, found := c.lib.Objects[obj.Behavior]; found && behavior(c, obj, call) {
			return
		}
	}
	if here := c.Here(); here != nil && here.Behavior != "" {
		if behavior, found := c.lib.Rooms[here.Behavior]; found && behavior(c, here, call) {
			return
		}
	}
	handler, found := c.lib.Handlers[action]
	if !found {
		c.Refuse("I don't know how to do that.")
		return
	}
	handler(c, direct, indirect)
}

// Kill removes a defeated villain from the world.
func (c *Context) Kill(villain *structs.Object) {
	if death := villain.Death; death != nil {
		if death.Flag != "" {
			c.World.Flags.Set(death.Flag, true)
		}
		if death.Message != "" {
			c.Println(death.Message)
		}
	} else {
		c.Printf("The %s is killed.\n", villain.Name())
	}
	c.World.Destroy(villain.ID)
}

// Walk moves the player through the exit in the direction, if it can be used.
func (c *Context) Walk(dir string) {
	here := c.Here()
	exit, found := here.Exits.Find(dir)
	if !found {
		c.Refuse("You can't go that way.")
		return
	}
	if exit.To == "" {
		c.blocked(exit)
		return
	}
	if exit.Flag != "" {
		if before, found := c.lib.Exits[exit.Before]; found {
			before(c, exit)
			if !c.running || c.Here() != here {
				return
			}
		}
		if !c.World.Flags.Get(exit.Flag) {
			if blocked, found := c.lib.Exits[exit.Blocked]; found {
				c.outcome = Refused
				blocked(c, exit)
				return
			}
			c.blocked(exit)
			return
		}
	}
	target, found := c.World.Location(exit.To)
	if !found {
		c.Refuse("You can't go that way.")
		return
	}
	if target.Munged {
		msg := target.MungMessage
		if msg == "" {
			msg = "The way is blocked."
		}
		c.Refuse("%s", msg)
		return
	}
	c.MoveTo(target)
}

func (c *Context) blocked(exit *structs.Exit) {
	if exit.Message != "" {
		c.Refuse("%s", exit.Message)
	} else {
		c.Refuse("You can't go that way.")
	}
}

// MoveTo puts the player in the location, scores the first visit, runs the
// arrival behavior and describes the place.
func (c *Context) MoveTo(loc *structs.Location) {
	c.World.Player.Location = loc.ID
	if !loc.Seen {
		c.AddScore(loc.VisitScore)
	}
	brief := loc.Seen
	loc.Seen = true
	if loc.Behavior != "" {
		if behavior, found := c.lib.Rooms[loc.Behavior]; found {
			behavior(c, loc, Call{Verb: Enter})
		}
	}
	if !c.running || c.Here() != loc {
		return
	}
	c.Describe(!brief)
}

// Describe looks around, in full when verbose or when brief mode is off.
func (c *Context) Describe(verbose bool) {
	player := &c.World.Player
	savedBrief := player.Brief
	if verbose {
		player.Brief = false
	}
	c.Perform(verbs.Look, nil, nil)
	player.Brief = savedBrief
}

// Snapshot captures the whole game.
func (c *Context) Snapshot() (*structs.Snapshot, error) {
	s := c.World.Snapshot()
	s.Events = c.Events.Pending()
	s.Seq = c.Events.Seq()
	random, err := c.source.MarshalBinary()
	if err != nil {
		return nil, grue.WithStack(err)
	}
	s.Random = random
	return s, nil
}

// Restore replaces the game with a snapshot taken from a game with the same content.
// A snapshot taken by a command holds the clock of that turn still to run, and
// the clock of the restoring turn runs it.
func (c *Context) Restore(s *structs.Snapshot) error {
	if s == nil {
		return errors.New("no snapshot")
	}
	if err := c.World.Apply(s); err != nil {
		return grue.WithStack(err)
	}
	if len(s.Random) > 0 {
		if err := c.source.UnmarshalBinary(s.Random); err != nil {
			return grue.WithStack(err)
		}
	}
	c.Events.Restore(s.Events, s.Seq)
	c.Pending = nil
	c.Last = Last{}
	c.running = true
	return nil
}
