// Package storage keeps saved games in a SQLite database.
//
// Every save is a named slot of an owner, holding a zstd compressed JSON
// snapshot together with a few columns that let the slots be listed without
// decoding them.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/zond/grue"
	"github.com/zond/grue/structs"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound = errors.New("no such save")
)

const (
	busyTimeout = 5 * time.Second
	schema      = `
CREATE TABLE IF NOT EXISTS save (
  owner    TEXT NOT NULL,
  name     TEXT NOT NULL,
  turns    INTEGER NOT NULL,
  score    INTEGER NOT NULL,
  location TEXT NOT NULL,
  saved_at INTEGER NOT NULL,
  data     BLOB NOT NULL,
  PRIMARY KEY (owner, name)
)`
)

// Slot describes a save without its snapshot.
type Slot struct {
	Owner    string `db:"owner"`
	Name     string `db:"name"`
	Turns    int    `db:"turns"`
	Score    int    `db:"score"`
	Location string `db:"location"`
	SavedAt  int64  `db:"saved_at"`
}

func (s Slot) Saved() time.Time {
	return time.Unix(0, s.SavedAt)
}

type save struct {
	Slot
	Data []byte `db:"data"`
}

type Storage struct {
	db  *sqlx.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New opens, and creates if needed, the database at path.
func New(ctx context.Context, path string) (*Storage, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, grue.WithStack(err)
	}
	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds()),
		schema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "executing %q", stmt)
		}
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, grue.WithStack(err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, grue.WithStack(err)
	}
	return &Storage{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

func (s *Storage) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		s.db.Close()
		return grue.WithStack(err)
	}
	return grue.WithStack(s.db.Close())
}

// Save stores the snapshot in the slot, replacing what was there.
func (s *Storage) Save(ctx context.Context, owner string, name string, snap *structs.Snapshot) error {
	if snap == nil {
		return errors.New("no snapshot to save")
	}
	js, err := json.Marshal(snap)
	if err != nil {
		return grue.WithStack(err)
	}
	row := save{
		Slot: Slot{
			Owner:    owner,
			Name:     name,
			Turns:    snap.Turns,
			Score:    snap.Score,
			Location: snap.Location,
			SavedAt:  time.Now().UnixNano(),
		},
		Data: s.enc.EncodeAll(js, nil),
	}
	_, err = s.db.NamedExecContext(ctx, `
INSERT INTO save (owner, name, turns, score, location, saved_at, data)
VALUES (:owner, :name, :turns, :score, :location, :saved_at, :data)
ON CONFLICT (owner, name) DO UPDATE SET
  turns = excluded.turns,
  score = excluded.score,
  location = excluded.location,
  saved_at = excluded.saved_at,
  data = excluded.data`, row)
	return grue.WithStack(err)
}

// Load returns the snapshot in the slot.
func (s *Storage) Load(ctx context.Context, owner string, name string) (*structs.Snapshot, error) {
	row := &save{}
	if err := s.db.GetContext(ctx, row, "SELECT * FROM save WHERE owner = ? AND name = ?", owner, name); errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%s/%s", owner, name)
	} else if err != nil {
		return nil, grue.WithStack(err)
	}
	js, err := s.dec.DecodeAll(row.Data, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "decompressing %s/%s", owner, name)
	}
	snap := &structs.Snapshot{}
	if err := json.Unmarshal(js, snap); err != nil {
		return nil, errors.Wrapf(err, "decoding %s/%s", owner, name)
	}
	return snap, nil
}

// List returns the slots of the owner, ordered by name.
func (s *Storage) List(ctx context.Context, owner string) ([]Slot, error) {
	result := []Slot{}
	if err := s.db.SelectContext(ctx, &result, "SELECT owner, name, turns, score, location, saved_at FROM save WHERE owner = ? ORDER BY name", owner); err != nil {
		return nil, grue.WithStack(err)
	}
	return result, nil
}

func (s *Storage) Delete(ctx context.Context, owner string, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM save WHERE owner = ? AND name = ?", owner, name)
	if err != nil {
		return grue.WithStack(err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return grue.WithStack(err)
	}
	if count == 0 {
		return errors.Wrapf(ErrNotFound, "%s/%s", owner, name)
	}
	return nil
}
