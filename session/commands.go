package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/buildkite/shellwords"
	"github.com/goccy/go-json"
	"github.com/rodaine/table"
	"github.com/zond/grue"
	"github.com/zond/grue/lang"
)

var (
	errLeave = fmt.Errorf("leaving")
)

type command struct {
	names map[string]bool
	usage string
	help  string
	f     func(s *Session, args []string) error
}

type commands []command

func (c commands) attempt(s *Session, name string, args []string) (bool, error) {
	for _, cmd := range c {
		if cmd.names[name] {
			if err := cmd.f(s, args); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

func m(s ...string) map[string]bool {
	res := map[string]bool{}
	for _, p := range s {
		res[p] = true
	}
	return res
}

// meta runs a slash command.
func (s *Session) meta(line string) error {
	parts, err := shellwords.SplitPosix(line)
	if err != nil {
		return grue.WithStack(err)
	}
	if len(parts) == 0 {
		return nil
	}
	found, err := metaCommands.attempt(s, strings.ToLower(parts[0]), parts[1:])
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(s.term, "Unknown command: %q\n", parts[0])
	}
	return nil
}

var metaCommands commands

func init() {
	metaCommands = commands{
		{
			names: m("/help", "/?"),
			usage: "/help",
			help:  "Lists the session commands.",
			f: func(s *Session, _ []string) error {
				t := table.New("Command", "Description").WithWriter(s.term)
				for _, cmd := range metaCommands {
					t.AddRow(cmd.usage, cmd.help)
				}
				t.Print()
				return nil
			},
		},
		{
			names: m("/slot"),
			usage: "/slot [name]",
			help:  "Shows or changes the slot SAVE and RESTORE use.",
			f: func(s *Session, args []string) error {
				switch len(args) {
				case 0:
				case 1:
					s.slot = args[0]
				default:
					fmt.Fprintln(s.term, "usage: /slot [name]")
					return nil
				}
				fmt.Fprintf(s.term, "Saving to slot %q.\n", s.slot)
				return nil
			},
		},
		{
			names: m("/slots"),
			usage: "/slots",
			help:  "Lists your saved games.",
			f: func(s *Session, _ []string) error {
				if s.config.Store == nil {
					fmt.Fprintln(s.term, "Saving is not available here.")
					return nil
				}
				slots, err := s.config.Store.List(s.ctx, s.config.Owner)
				if err != nil {
					return grue.WithStack(err)
				}
				if len(slots) == 0 {
					fmt.Fprintln(s.term, "No saved games.")
					return nil
				}
				t := table.New("Slot", "Turns", "Score", "Location", "Saved").WithWriter(s.term)
				for _, slot := range slots {
					t.AddRow(slot.Name, slot.Turns, slot.Score, slot.Location, slot.Saved().Format(time.DateTime))
				}
				t.Print()
				return nil
			},
		},
		{
			names: m("/delete"),
			usage: "/delete <slot>",
			help:  "Deletes a saved game.",
			f: func(s *Session, args []string) error {
				if s.config.Store == nil {
					fmt.Fprintln(s.term, "Saving is not available here.")
					return nil
				}
				if len(args) != 1 {
					fmt.Fprintln(s.term, "usage: /delete <slot>")
					return nil
				}
				if err := s.config.Store.Delete(s.ctx, s.config.Owner, args[0]); err != nil {
					return grue.WithStack(err)
				}
				fmt.Fprintf(s.term, "Deleted slot %q.\n", args[0])
				return nil
			},
		},
		{
			names: m("/events"),
			usage: "/events",
			help:  "Lists the scheduled events.",
			f: func(s *Session, _ []string) error {
				c := s.engine.Context()
				pending := c.Events.Pending()
				fmt.Fprintf(s.term, "Turn %d, %s pending.\n", c.Turn(), lang.Card(len(pending), "event"))
				if len(pending) == 0 {
					return nil
				}
				t := table.New("Trigger", "Seq", "Kind", "Target").WithWriter(s.term)
				for _, ev := range pending {
					t.AddRow(ev.Trigger, ev.Seq, ev.Kind, ev.Target)
				}
				t.Print()
				return nil
			},
		},
		{
			names: m("/flags"),
			usage: "/flags",
			help:  "Lists the world flags that are set.",
			f: func(s *Session, _ []string) error {
				names := s.engine.Context().World.Flags.Names()
				if len(names) == 0 {
					fmt.Fprintln(s.term, "No flags are set.")
					return nil
				}
				t := table.New("Flag").WithWriter(s.term)
				for _, name := range names {
					t.AddRow(name)
				}
				t.Print()
				return nil
			},
		},
		{
			names: m("/seed"),
			usage: "/seed",
			help:  "Shows the random seed of the game.",
			f: func(s *Session, _ []string) error {
				fmt.Fprintf(s.term, "Seed %d.\n", s.seed)
				return nil
			},
		},
		{
			names: m("/dump"),
			usage: "/dump",
			help:  "Prints the game state as JSON.",
			f: func(s *Session, _ []string) error {
				snap, err := s.engine.Snapshot()
				if err != nil {
					return grue.WithStack(err)
				}
				js, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return grue.WithStack(err)
				}
				fmt.Fprintf(s.term, "%s\n", js)
				return nil
			},
		},
		{
			names: m("/leave"),
			usage: "/leave",
			help:  "Disconnects, keeping the game for a while.",
			f: func(s *Session, _ []string) error {
				fmt.Fprintln(s.term, "Bye for now.")
				return errLeave
			},
		},
	}
}
