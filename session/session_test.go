package session

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/zond/grue/content"
	"github.com/zond/grue/game"
	"github.com/zond/grue/storage"
	"golang.org/x/term"
)

// scripted is a terminal that reads a fixed list of lines.
type scripted struct {
	lines []string
	out   bytes.Buffer
}

func (s *scripted) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scripted) Write(b []byte) (int, error) {
	return s.out.Write(b)
}

func newSession(t *testing.T, lines []string, config Config) (*Session, *scripted) {
	t.Helper()
	world, err := content.Load()
	if err != nil {
		t.Fatal(err)
	}
	if config.Owner == "" {
		config.Owner = "tester"
	}
	if config.Seed == 0 {
		config.Seed = 7
	}
	term := &scripted{lines: lines}
	s, err := New(context.Background(), term, world, config)
	if err != nil {
		t.Fatal(err)
	}
	return s, term
}

func newStore(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(context.Background(), filepath.Join(t.TempDir(), "saves.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func contains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestQuit(t *testing.T) {
	outcomes := []game.Outcome{}
	s, term := newSession(t, []string{"OPEN MAILBOX", "", "QUIT", "NEVER READ"}, Config{
		OnCommand: func(o game.Outcome) {
			outcomes = append(outcomes, o)
		},
	})
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if s.Running() {
		t.Errorf("game should be over")
	}
	contains(t, term.out.String(),
		"Welcome to grue!",
		"You are in an open field west of a big white house",
		"Opening the small mailbox reveals a leaflet.",
		"Huh?",
		"Your score is 0 (total possible 350).",
	)
	if diff := cmp.Diff([]game.Outcome{game.OK, game.OK, game.Fatal}, outcomes); diff != "" {
		t.Errorf("outcomes: %s", diff)
	}
}

func TestDisconnect(t *testing.T) {
	s, _ := newSession(t, []string{"OPEN MAILBOX"}, Config{})
	if err := s.Run(); !errors.Is(err, io.EOF) {
		t.Errorf("got %v, want EOF", err)
	}
	if !s.Running() {
		t.Errorf("game should still run")
	}
}

func TestLeave(t *testing.T) {
	s, term := newSession(t, []string{"/leave", "QUIT"}, Config{})
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if !s.Running() {
		t.Errorf("game should still run")
	}
	contains(t, term.out.String(), "Bye for now.")
}

func TestResume(t *testing.T) {
	first, _ := newSession(t, []string{"OPEN MAILBOX"}, Config{})
	first.Run()
	snap, err := first.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	second, term := newSession(t, nil, Config{Resume: snap})
	second.Run()
	contains(t, term.out.String(), "Welcome back.", "The small mailbox contains:")
	mailbox, _ := second.Engine().Context().World.Object("MAILB")
	if !mailbox.Open {
		t.Errorf("mailbox should be open")
	}
}

func TestSaveAndRestore(t *testing.T) {
	store := newStore(t)
	s, term := newSession(t, []string{
		"/slot",
		"/slot first",
		"SAVE",
		"OPEN MAILBOX",
		"RESTORE",
		"/slots",
	}, Config{Store: store})
	s.Run()
	contains(t, term.out.String(),
		`Saving to slot "default".`,
		`Saving to slot "first".`,
		"Done.",
		"Restored.",
		"WHOUS",
	)
	mailbox, _ := s.Engine().Context().World.Object("MAILB")
	if mailbox.Open {
		t.Errorf("mailbox should be closed again")
	}
	slots, err := store.List(context.Background(), "tester")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 || slots[0].Name != "first" {
		t.Errorf("got %+v, want the first slot", slots)
	}

	other, term := newSession(t, []string{"RESTORE", "/slots"}, Config{Owner: "other", Store: store})
	other.Run()
	contains(t, term.out.String(), "Restore failed:", "No saved games.")

	again, term := newSession(t, []string{"/slot first", "RESTORE", "/delete first", "/slots", "/delete first"}, Config{Store: store})
	again.Run()
	contains(t, term.out.String(), "Restored.", `Deleted slot "first".`, "No saved games.", "Error: ")
}

func TestWithoutStore(t *testing.T) {
	s, term := newSession(t, []string{"SAVE", "RESTORE", "SCRIPT", "/slots", "/delete x"}, Config{})
	s.Run()
	contains(t, term.out.String(),
		"Saving is not available here.",
		"Restoring is not available here.",
		"Scripting is not available here.",
	)
}

func TestMetaCommands(t *testing.T) {
	s, term := newSession(t, []string{
		"/flags",
		"/seed",
		"/events",
		"/dump",
		"/help",
		"/bogus",
	}, Config{Seed: 1234})
	s.Run()
	contains(t, term.out.String(),
		"No flags are set.",
		"Seed 1234.",
		"Turn 0, no events pending.",
		`"location": "WHOUS"`,
		"/slots",
		`Unknown command: "/bogus"`,
	)

	s, term = newSession(t, []string{"/flags", "/events"}, Config{})
	c := s.Engine().Context()
	c.World.Flags.Set("KITCHEN-WINDOW", true)
	c.Schedule(3, "match", "MATCH")
	s.Run()
	contains(t, term.out.String(), "KITCHEN-WINDOW", "an event pending.", "match", "MATCH")
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	s, term := newSession(t, []string{
		"SCRIPT",
		"SCRIPT",
		"OPEN MAILBOX",
		"UNSCRIPT",
		"CLOSE MAILBOX",
		"UNSCRIPT",
	}, Config{Owner: "../tester", ScriptDir: dir})
	s.Run()
	contains(t, term.out.String(), "Scripting to tester-", "Script failed: already scripting", "Script file closed.", "Script failed: not scripting")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %v transcripts, want 1", len(entries))
	}
	b, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	contains(t, string(b), "> OPEN MAILBOX", "Opening the small mailbox reveals a leaflet.", "> UNSCRIPT")
	if strings.Contains(string(b), "CLOSE MAILBOX") {
		t.Errorf("transcript should stop at UNSCRIPT:\n%s", b)
	}
}

func TestSelect(t *testing.T) {
	term := &scripted{lines: []string{"maybe", " YES "}}
	got, err := Select(term, "Resume?", []string{"yes", "no"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "yes" {
		t.Errorf("got %q, want yes", got)
	}
	if n := strings.Count(term.out.String(), "Resume? [yes] or [no]\n"); n != 2 {
		t.Errorf("asked %v times, want 2", n)
	}
	if _, err := Select(term, "Resume?", []string{"yes", "no"}); !errors.Is(err, io.EOF) {
		t.Errorf("got %v, want EOF", err)
	}
}

type testReadWriter struct {
	io.Reader
	io.Writer
}

func TestTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	rw := &testReadWriter{Reader: strings.NewReader("OPEN MAILBOX\rQUIT\r"), Writer: out}
	world, err := content.Load()
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(context.Background(), term.NewTerminal(rw, "> "), world, Config{Owner: "tester", Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	contains(t, out.String(), "Opening the small mailbox reveals a leaflet.", "Your score is 0 (total possible 350).")
}
