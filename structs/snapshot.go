package structs

import (
	"github.com/pkg/errors"
	"github.com/zond/grue/schedule"
)

type ObjectState struct {
	Room     string `json:"room,omitempty"`
	In       string `json:"in,omitempty"`
	Held     bool   `json:"held,omitempty"`
	Bits     Bits   `json:"bits"`
	Open     bool   `json:"open,omitempty"`
	Lit      bool   `json:"lit,omitempty"`
	Fuel     int    `json:"fuel,omitempty"`
	Strength int    `json:"strength,omitempty"`
	Touched  bool   `json:"touched,omitempty"`
	Trophy   bool   `json:"trophy,omitempty"`
	Order    uint64 `json:"order"`
}

type LocationState struct {
	Seen        bool   `json:"seen,omitempty"`
	Munged      bool   `json:"munged,omitempty"`
	MungMessage string `json:"mung_message,omitempty"`
	// Since holds the first presence turn of each hazard.
	Since []int `json:"since,omitempty"`
}

// Snapshot is everything needed to resume a game on a freshly loaded copy of its content.
type Snapshot struct {
	Location   string   `json:"location"`
	Score      int      `json:"score"`
	Turns      int      `json:"turns"`
	Brief      bool     `json:"brief"`
	SuperBrief bool     `json:"superbrief"`
	Flags      []string `json:"flags"`
	Held       []string `json:"held"`

	Strength  int                      `json:"strength"`
	Staggered bool                     `json:"staggered,omitempty"`
	Glow      int                      `json:"glow,omitempty"`
	Placed    uint64                   `json:"placed"`
	Objects   map[string]ObjectState   `json:"objects"`
	Locations map[string]LocationState `json:"locations"`
	Events    []schedule.Event         `json:"events"`
	Seq       uint64                   `json:"seq"`
	// Random is the marshalled state of the random source.
	Random []byte `json:"random"`
}

// Snapshot captures the world part of a snapshot.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Location:   w.Player.Location,
		Score:      w.Player.Score,
		Turns:      w.Player.Moves,
		Brief:      w.Player.Brief,
		SuperBrief: w.Player.SuperBrief,
		Flags:      w.Flags.Names(),
		Held:       w.HeldIDs(),
		Strength:   w.Player.Strength,
		Staggered:  w.Player.Staggered,
		Glow:       w.Player.Glow,
		Placed:     w.Placed,
		Objects:    map[string]ObjectState{},
		Locations:  map[string]LocationState{},
	}
	for id, obj := range w.Objects {
		s.Objects[id] = ObjectState{
			Room:     obj.Room,
			In:       obj.In,
			Held:     obj.Held,
			Bits:     obj.Bits,
			Open:     obj.Open,
			Lit:      obj.Lit,
			Fuel:     obj.Fuel,
			Strength: obj.Strength,
			Touched:  obj.Touched,
			Trophy:   obj.Trophy,
			Order:    obj.Order,
		}
	}
	for id, loc := range w.Locations {
		state := LocationState{
			Seen:        loc.Seen,
			Munged:      loc.Munged,
			MungMessage: loc.MungMessage,
		}
		for _, hazard := range loc.Hazards {
			state.Since = append(state.Since, hazard.Since)
		}
		s.Locations[id] = state
	}
	return s
}

// Apply restores the world part of a snapshot onto a world loaded from the same content,
// or onto the world the snapshot was taken from.
// Objects missing from the snapshot were destroyed, and are destroyed here too.
// Destroyed objects present in the snapshot come back.
// A snapshot without object or location state only moves the player and their
// possessions. When the snapshot doesn't fit the world, the world is left unchanged.
func (w *World) Apply(s *Snapshot) error {
	if _, found := w.Locations[s.Location]; !found {
		return errors.Errorf("snapshot location %q doesn't exist", s.Location)
	}
	for id := range s.Objects {
		_, present := w.Objects[id]
		_, destroyed := w.gone[id]
		if !present && !destroyed {
			return errors.Errorf("snapshot object %q doesn't exist", id)
		}
	}
	for id := range s.Locations {
		if _, found := w.Locations[id]; !found {
			return errors.Errorf("snapshot location %q doesn't exist", id)
		}
	}
	before := w.Snapshot()
	if err := w.apply(s); err != nil {
		if undoErr := w.apply(before); undoErr != nil {
			return errors.Wrapf(undoErr, "undoing failed restore (%v)", err)
		}
		return err
	}
	return nil
}

func (w *World) apply(s *Snapshot) error {
	if s.Objects != nil {
		for id := range s.Objects {
			w.revive(id)
		}
		for id := range w.Objects {
			if _, found := s.Objects[id]; !found {
				w.forget(id)
			}
		}
		for id, obj := range w.Objects {
			state := s.Objects[id]
			obj.Room = state.Room
			obj.In = state.In
			obj.Held = state.Held
			obj.Bits = state.Bits
			obj.Open = state.Open
			obj.Lit = state.Lit
			obj.Fuel = state.Fuel
			obj.Strength = state.Strength
			obj.Touched = state.Touched
			obj.Trophy = state.Trophy
			obj.Order = state.Order
		}
	}
	for id, loc := range w.Locations {
		if s.Locations == nil {
			break
		}
		state := s.Locations[id]
		loc.Seen = state.Seen
		loc.Munged = state.Munged
		loc.MungMessage = state.MungMessage
		for idx := range loc.Hazards {
			loc.Hazards[idx].Since = 0
			if idx < len(state.Since) {
				loc.Hazards[idx].Since = state.Since[idx]
			}
		}
	}
	w.Player = Player{
		Location:   s.Location,
		Score:      s.Score,
		Moves:      s.Turns,
		Strength:   s.Strength,
		Staggered:  s.Staggered,
		Brief:      s.Brief,
		SuperBrief: s.SuperBrief,
		Glow:       s.Glow,
	}
	if w.Player.Strength == 0 {
		w.Player.Strength = w.Tuning.Strength
	}
	w.Flags = Flags{}
	for _, flag := range s.Flags {
		w.Flags.Set(flag, true)
	}
	if s.Placed > w.Placed {
		w.Placed = s.Placed
	}
	for _, id := range s.Held {
		obj, found := w.Objects[id]
		if !found {
			return errors.Errorf("snapshot holds missing object %q", id)
		}
		if !obj.Held {
			w.Give(obj)
		}
	}
	return w.validatePlacements()
}
