package structs

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/zond/grue"
	"gopkg.in/yaml.v3"
)

type content struct {
	Tuning    Tuning      `yaml:"tuning"`
	Flags     []string    `yaml:"flags"`
	Locations []*Location `yaml:"locations"`
	Objects   []*Object   `yaml:"objects"`
}

// LoadWorld decodes and validates a content file.
// Tuning values absent from the file keep their defaults.
func LoadWorld(r io.Reader) (*World, error) {
	c := content{Tuning: DefaultTuning()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decoding content")
	}
	w := &World{
		Tuning:    c.Tuning,
		Locations: map[string]*Location{},
		Objects:   map[string]*Object{},
		Flags:     Flags{},
		Player: Player{
			Location: c.Tuning.Start,
			Strength: c.Tuning.Strength,
		},
	}
	for _, flag := range c.Flags {
		w.Flags.Set(flag, true)
	}
	for _, loc := range c.Locations {
		if loc.ID == "" {
			return nil, errors.Errorf("location %q has no id", loc.Name)
		}
		if _, found := w.Locations[loc.ID]; found {
			return nil, errors.Errorf("location %q defined twice", loc.ID)
		}
		w.Locations[loc.ID] = loc
		w.LocationOrder = append(w.LocationOrder, loc.ID)
	}
	for _, obj := range c.Objects {
		if obj.ID == "" {
			return nil, errors.Errorf("object %q has no id", obj.Short)
		}
		if _, found := w.Objects[obj.ID]; found {
			return nil, errors.Errorf("object %q defined twice", obj.ID)
		}
		if obj.Is(Villain) && obj.Strength == 0 {
			obj.Strength = c.Tuning.Melee.Hits
		}
		w.Placed++
		obj.Order = w.Placed
		w.Objects[obj.ID] = obj
		w.ObjectOrder = append(w.ObjectOrder, obj.ID)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if lamp, found := w.Objects[c.Tuning.Lamp.Object]; found && lamp.Fuel == 0 {
		lamp.Fuel = c.Tuning.Lamp.Budget
	}
	if start := w.Locations[w.Player.Location]; start != nil {
		start.Seen = true
	}
	return w, nil
}

// LoadWorldFile loads a content file from disk.
func LoadWorldFile(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, grue.WithStack(err)
	}
	defer f.Close()
	w, err := LoadWorld(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return w, nil
}
