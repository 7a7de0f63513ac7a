package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/zond/grue/content"
	"github.com/zond/grue/schedule"
	"github.com/zond/grue/structs"
)

func withStorage(t *testing.T, f func(s *Storage)) {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "saves.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			t.Error(err)
		}
	}()
	f(s)
}

func snapshot(t *testing.T) *structs.Snapshot {
	t.Helper()
	w, err := content.Load()
	if err != nil {
		t.Fatal(err)
	}
	lamp, _ := w.Object("LAMP")
	w.Give(lamp)
	w.Player.Score = 10
	w.Player.Moves = 7
	w.Flags.Set("KITCHEN-WINDOW", true)
	snap := w.Snapshot()
	snap.Events = []schedule.Event{
		{Trigger: 9, Seq: 1, Kind: "match", Target: "MATCH"},
		{Trigger: 12, Seq: 2, Kind: "gnome"},
	}
	snap.Seq = 2
	snap.Random = []byte{1, 2, 3, 4}
	return snap
}

func TestSaveLoad(t *testing.T) {
	withStorage(t, func(s *Storage) {
		ctx := context.Background()
		want := snapshot(t)
		if err := s.Save(ctx, "alice", "first", want); err != nil {
			t.Fatal(err)
		}
		got, err := s.Load(ctx, "alice", "first")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSaveOverwrites(t *testing.T) {
	withStorage(t, func(s *Storage) {
		ctx := context.Background()
		snap := snapshot(t)
		if err := s.Save(ctx, "alice", "slot", snap); err != nil {
			t.Fatal(err)
		}
		snap.Score = 42
		snap.Turns = 8
		if err := s.Save(ctx, "alice", "slot", snap); err != nil {
			t.Fatal(err)
		}
		got, err := s.Load(ctx, "alice", "slot")
		if err != nil {
			t.Fatal(err)
		}
		if got.Score != 42 || got.Turns != 8 {
			t.Errorf("got score %v and turns %v, want 42 and 8", got.Score, got.Turns)
		}
		slots, err := s.List(ctx, "alice")
		if err != nil {
			t.Fatal(err)
		}
		if len(slots) != 1 {
			t.Errorf("got %v slots, want 1", len(slots))
		}
	})
}

func TestList(t *testing.T) {
	withStorage(t, func(s *Storage) {
		ctx := context.Background()
		snap := snapshot(t)
		for _, save := range []struct {
			owner string
			name  string
		}{
			{"bob", "zeta"},
			{"bob", "alpha"},
			{"alice", "other"},
		} {
			if err := s.Save(ctx, save.owner, save.name, snap); err != nil {
				t.Fatal(err)
			}
		}
		slots, err := s.List(ctx, "bob")
		if err != nil {
			t.Fatal(err)
		}
		want := []Slot{
			{Owner: "bob", Name: "alpha", Turns: 7, Score: 10, Location: snap.Location},
			{Owner: "bob", Name: "zeta", Turns: 7, Score: 10, Location: snap.Location},
		}
		if diff := cmp.Diff(want, slots, cmpopts.IgnoreFields(Slot{}, "SavedAt")); diff != "" {
			t.Errorf("slots mismatch (-want +got):\n%s", diff)
		}
		for _, slot := range slots {
			if slot.Saved().IsZero() || slot.SavedAt == 0 {
				t.Errorf("%+v has no save time", slot)
			}
		}
		none, err := s.List(ctx, "carol")
		if err != nil {
			t.Fatal(err)
		}
		if len(none) != 0 {
			t.Errorf("got %+v, want no slots", none)
		}
	})
}

func TestMissing(t *testing.T) {
	withStorage(t, func(s *Storage) {
		ctx := context.Background()
		if _, err := s.Load(ctx, "alice", "nothing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, "alice", "nothing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestDelete(t *testing.T) {
	withStorage(t, func(s *Storage) {
		ctx := context.Background()
		if err := s.Save(ctx, "alice", "gone", snapshot(t)); err != nil {
			t.Fatal(err)
		}
		if err := s.Delete(ctx, "alice", "gone"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Load(ctx, "alice", "gone"); !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestSaveNil(t *testing.T) {
	withStorage(t, func(s *Storage) {
		if err := s.Save(context.Background(), "alice", "nil", nil); err == nil {
			t.Errorf("saving nil should fail")
		}
	})
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.sqlite")
	s, err := New(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	want := snapshot(t)
	if err := s.Save(ctx, "alice", "kept", want); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if s, err = New(ctx, path); err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.Load(ctx, "alice", "kept")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
