// Package structs contains the world model: objects, locations, the player
// and the content file they are loaded from.
package structs

import (
	"sort"
	"strings"

	"github.com/zond/grue/vocab"
)

const (
	DefaultSize = 5
)

// Death describes what happens when a villain is killed.
type Death struct {
	// Flag is set when the villain dies.
	Flag    string `yaml:"flag"`
	Message string `yaml:"message"`
}

type Object struct {
	ID    string   `yaml:"id"`
	Names []string `yaml:"names"`
	Short string   `yaml:"short"`
	// Here is the line describing the object lying in a room.
	Here string `yaml:"here"`
	// Initial replaces Here until the object has been touched.
	Initial  string `yaml:"initial"`
	Text     string `yaml:"text"`
	Bits     Bits   `yaml:"bits"`
	Open     bool   `yaml:"open"`
	Lit      bool   `yaml:"lit"`
	Light    int    `yaml:"light"`
	Fuel     int    `yaml:"fuel"`
	Size     int    `yaml:"size"`
	Capacity int    `yaml:"capacity"`
	// FindScore is awarded the first time the object is taken.
	FindScore int `yaml:"find_score"`
	// TrophyScore is awarded the first time the object is put in the trophy case.
	TrophyScore int    `yaml:"trophy_score"`
	Strength    int    `yaml:"strength"`
	Behavior    string `yaml:"behavior"`
	Death       *Death `yaml:"death"`

	Room string `yaml:"room"`
	In   string `yaml:"in"`
	Held bool   `yaml:"held"`

	Touched bool `yaml:"-"`
	Trophy  bool `yaml:"-"`
	// Order is the placement sequence, used to list objects in the order they arrived.
	Order uint64 `yaml:"-"`
}

func (o *Object) Is(flag Bits) bool {
	return o.Bits.Has(flag)
}

func (o *Object) Set(flag Bits, value bool) {
	if value {
		o.Bits |= flag
	} else {
		o.Bits &^= flag
	}
}

// Name returns the short name used in messages.
func (o *Object) Name() string {
	if o.Short != "" {
		return o.Short
	}
	return strings.ToLower(o.ID)
}

// The returns the name with a definite article.
func (o *Object) The() string {
	return "the " + o.Name()
}

// Matches reports whether the normalized word names the object.
func (o *Object) Matches(word string) bool {
	if vocab.Norm(o.ID) == word {
		return true
	}
	for _, name := range o.Names {
		if vocab.Norm(name) == word {
			return true
		}
	}
	for _, part := range vocab.Fields(o.Short) {
		if vocab.Norm(part) == word {
			return true
		}
	}
	return false
}

// Offstage reports whether the object is nowhere in the world.
func (o *Object) Offstage() bool {
	return o.Room == "" && o.In == "" && !o.Held
}

// Emitting reports whether the object currently gives off light.
func (o *Object) Emitting() bool {
	return o.Lit && o.Light > 0
}

// Accessible reports whether the contents of the object can be seen.
func (o *Object) Accessible() bool {
	return o.Is(Container) && (o.Open || o.Is(Transparent))
}

func (o *Object) SizeOrDefault() int {
	if o.Size == 0 {
		return DefaultSize
	}
	return o.Size
}

type Exit struct {
	Direction string `yaml:"dir"`
	To        string `yaml:"to"`
	// Flag must be set for the exit to be passable.
	Flag    string `yaml:"flag"`
	Message string `yaml:"message"`
	// Before is the behavior run before the flag is checked.
	Before string `yaml:"before"`
	// Blocked is the behavior run instead of printing Message when the flag is unset.
	Blocked string `yaml:"blocked"`
}

type Exits []Exit

// Find returns the exit leading in the given direction.
func (e Exits) Find(dir string) (*Exit, bool) {
	for idx := range e {
		if e[idx].Direction == dir {
			return &e[idx], true
		}
	}
	return nil, false
}

// Hazard kinds.
const (
	Leak     = "leak"
	Gust     = "gust"
	Schedule = "schedule"
)

// Hazard is a timed effect bound to a location, evaluated every turn the player is there.
type Hazard struct {
	Kind    string `yaml:"kind"`
	After   int    `yaml:"after"`
	Chance  int    `yaml:"chance"`
	Flag    string `yaml:"flag"`
	Message string `yaml:"message"`
	Object  string `yaml:"object"`
	Event   string `yaml:"event"`
	Target  string `yaml:"target"`

	// Since is the turn the player was first present, 0 if never.
	Since int `yaml:"-"`
}

// Forced binds words to an object that resolves regardless of light and visibility.
type Forced struct {
	Words  []string `yaml:"words"`
	Object string   `yaml:"object"`
}

type Location struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Lit         bool     `yaml:"lit"`
	VisitScore  int      `yaml:"visit_score"`
	Exits       Exits    `yaml:"exits"`
	Behavior    string   `yaml:"behavior"`
	Hazards     []Hazard `yaml:"hazards"`
	Forced      []Forced `yaml:"forced"`

	Seen        bool   `yaml:"-"`
	Munged      bool   `yaml:"-"`
	MungMessage string `yaml:"-"`
}

// ForcedMatch returns the object id forced for word, if any.
func (l *Location) ForcedMatch(word string) (string, bool) {
	for _, forced := range l.Forced {
		for _, candidate := range forced.Words {
			if vocab.Norm(candidate) == word {
				return forced.Object, true
			}
		}
	}
	return "", false
}

type Player struct {
	Location   string
	Score      int
	Moves      int
	Strength   int
	Staggered  bool
	Brief      bool
	SuperBrief bool
	// Glow is 0 for none, 1 for faint and 2 for bright.
	Glow int
}

// Flags is the named boolean store used by puzzle logic.
type Flags map[string]bool

func (f Flags) Get(name string) bool {
	return f[name]
}

func (f Flags) Set(name string, value bool) {
	if value {
		f[name] = true
	} else {
		delete(f, name)
	}
}

// Names returns the names of the set flags, sorted.
func (f Flags) Names() []string {
	result := make([]string, 0, len(f))
	for name, value := range f {
		if value {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}
