// Package session runs one player's game over a line oriented terminal.
//
// A session owns an engine and its world, feeds it the lines the player
// types, and handles the slash commands that inspect the game or manage save
// slots without spending a turn. It also provides the engine with a
// persister backed by the save store and a scripter writing transcripts.
package session

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/zond/grue"
	"github.com/zond/grue/actions"
	"github.com/zond/grue/game"
	"github.com/zond/grue/storage"
	"github.com/zond/grue/structs"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultSlot = "default"

	transcriptMaxMB      = 1
	transcriptMaxBackups = 3
)

// Terminal is what a session reads commands from and writes text to.
// *term.Terminal implements it.
type Terminal interface {
	io.Writer
	ReadLine() (string, error)
}

type Config struct {
	// Owner names the player, and owns the save slots of the session.
	Owner string
	// Seed seeds the random source. Zero picks a random seed.
	Seed uint64
	// Store keeps saved games. Nil disables SAVE and RESTORE.
	Store *storage.Storage
	// ScriptDir is where transcripts go. Empty disables SCRIPT.
	ScriptDir string
	// Resume continues a game instead of starting at the beginning.
	Resume *structs.Snapshot
	// OnCommand, if set, sees the outcome of every game command.
	OnCommand func(game.Outcome)
}

type Session struct {
	ctx    context.Context
	term   Terminal
	config Config
	engine *game.Engine
	seed   uint64
	slot   string
	script *lumberjack.Logger
	// scriptName is the transcript path relative to the script dir.
	scriptName string
}

// New prepares a session playing world. The world must be a fresh load of the content.
func New(ctx context.Context, t Terminal, world *structs.World, config Config) (*Session, error) {
	s := &Session{
		ctx:    ctx,
		term:   t,
		config: config,
		seed:   config.Seed,
		slot:   DefaultSlot,
	}
	if s.seed == 0 {
		s.seed = rand.Uint64()
	}
	opts := []game.Option{
		game.WithSeed(s.seed),
		game.WithOutput(writer{s}),
	}
	if config.Store != nil {
		opts = append(opts, game.WithPersister(persister{s}))
	}
	if config.ScriptDir != "" {
		opts = append(opts, game.WithScripter(scripter{s}))
	}
	s.engine = game.New(world, actions.Library(), opts...)
	if config.Resume != nil {
		if err := s.engine.Restore(config.Resume); err != nil {
			return nil, grue.WithStack(err)
		}
	}
	return s, nil
}

// writer sends game output to the terminal and the open transcript.
type writer struct {
	s *Session
}

func (w writer) Write(b []byte) (int, error) {
	if w.s.script != nil {
		if _, err := w.s.script.Write(b); err != nil {
			return 0, grue.WithStack(err)
		}
	}
	return w.s.term.Write(b)
}

func (s *Session) Engine() *game.Engine {
	return s.engine
}

func (s *Session) Running() bool {
	return s.engine.Running()
}

// Snapshot captures the game so that it can be resumed later.
func (s *Session) Snapshot() (*structs.Snapshot, error) {
	return s.engine.Snapshot()
}

// Run plays until the game ends, the player leaves, or the terminal fails.
// The game is still running after a player leaves.
func (s *Session) Run() error {
	defer s.closeScript()
	if s.config.Resume != nil {
		fmt.Fprint(s.term, "Welcome back.\n\n")
	} else {
		fmt.Fprint(s.term, "Welcome to grue! Type /help for session commands.\n\n")
	}
	s.engine.Look()
	for s.engine.Running() {
		line, err := s.term.ReadLine()
		if err != nil {
			return grue.WithStack(err)
		}
		if strings.HasPrefix(strings.TrimSpace(line), "/") {
			if err := s.meta(strings.TrimSpace(line)); errors.Is(err, errLeave) {
				return nil
			} else if err != nil {
				fmt.Fprintf(s.term, "Error: %v\n", err)
			}
			continue
		}
		if s.script != nil {
			if _, err := fmt.Fprintf(s.script, "> %s\n", line); err != nil {
				return grue.WithStack(err)
			}
		}
		outcome := s.engine.Execute(line)
		if s.config.OnCommand != nil {
			s.config.OnCommand(outcome)
		}
	}
	return nil
}

func (s *Session) closeScript() error {
	if s.script == nil {
		return nil
	}
	err := s.script.Close()
	s.script = nil
	s.scriptName = ""
	return grue.WithStack(err)
}

type persister struct {
	s *Session
}

func (p persister) Save(snap *structs.Snapshot) error {
	return p.s.config.Store.Save(p.s.ctx, p.s.config.Owner, p.s.slot, snap)
}

func (p persister) Restore() (*structs.Snapshot, error) {
	return p.s.config.Store.Load(p.s.ctx, p.s.config.Owner, p.s.slot)
}

type scripter struct {
	s *Session
}

func (sc scripter) StartScript() (string, error) {
	s := sc.s
	if s.script != nil {
		return "", errors.Errorf("already scripting to %s", s.scriptName)
	}
	if err := os.MkdirAll(s.config.ScriptDir, 0700); err != nil {
		return "", grue.WithStack(err)
	}
	name := fmt.Sprintf("%s-%s.txt", safeName(s.config.Owner), time.Now().Format("20060102-150405"))
	s.script = &lumberjack.Logger{
		Filename:   filepath.Join(s.config.ScriptDir, name),
		MaxSize:    transcriptMaxMB,
		MaxBackups: transcriptMaxBackups,
	}
	s.scriptName = name
	return name, nil
}

func (sc scripter) StopScript() error {
	if sc.s.script == nil {
		return errors.New("not scripting")
	}
	return sc.s.closeScript()
}

// safeName keeps the letters and digits of a player name, for use in file names.
func safeName(s string) string {
	result := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, s)
	if result == "" {
		return "player"
	}
	return result
}
