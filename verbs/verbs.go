// Package verbs holds the verb table: which words are verbs, and which
// argument shapes (syntaxes) each verb accepts.
package verbs

import (
	"sort"

	"github.com/zond/grue/vocab"
)

// Scope says where the object for a slot is looked for.
type Scope int

const (
	// None means the slot expects no object.
	None Scope = iota
	// Held means the object should be in the player's hands.
	Held
	// Room means the object may be anywhere reachable from the current location.
	Room
)

func (s Scope) String() string {
	switch s {
	case Held:
		return "held"
	case Room:
		return "room"
	default:
		return "none"
	}
}

type Slot struct {
	// Prep is the preposition class the slot must be introduced by, if any.
	Prep   string
	Scope  Scope
	NoTake bool
}

func (s Slot) Empty() bool {
	return s.Scope == None && s.Prep == ""
}

// Accepts reports whether an object (present or not) introduced by prep fits the slot exactly.
func (s Slot) Accepts(present bool, prep string) bool {
	if s.Empty() {
		return !present && prep == ""
	}
	if !present {
		return false
	}
	return s.Prep == prep
}

type Syntax struct {
	Slot1  Slot
	Slot2  Slot
	Action string
	// Driver marks the syntax usable as a fallback when objects are missing.
	Driver bool
	// Flip swaps the direct and indirect objects before dispatch.
	Flip bool
}

// ImplicitTake reports whether the direct object of this syntax should be picked up before dispatch.
func (s Syntax) ImplicitTake() bool {
	return s.Slot1.Scope == Room && !s.Slot1.NoTake
}

type Spec struct {
	Action   string
	Syntaxes []Syntax
	// Particles are words directly following the verb that select another spec, as in TURN ON.
	Particles map[string]*Spec
}

// Slot2Prep returns the preposition class of word if some syntax of the spec introduces its second slot with it.
func (s *Spec) Slot2Prep(word string) (string, bool) {
	class, found := vocab.Prep(word)
	if !found {
		return "", false
	}
	for _, syn := range s.Syntaxes {
		if syn.Slot2.Prep == class {
			return class, true
		}
	}
	return "", false
}

// Particle returns the spec selected by a particle word following the verb.
func (s *Spec) Particle(word string) (*Spec, bool) {
	if s.Particles == nil {
		return nil, false
	}
	spec, found := s.Particles[word]
	return spec, found
}

// Choose picks the syntax for the given slot contents.
// An exact match wins wherever it appears in the list; otherwise the first
// driver is used, but only while some slot is still unresolved.
func (s *Spec) Choose(has1 bool, prep2 string, has2 bool) (*Syntax, bool) {
	for idx := range s.Syntaxes {
		syn := &s.Syntaxes[idx]
		if syn.Slot1.Accepts(has1, "") && syn.Slot2.Accepts(has2, prep2) {
			return syn, true
		}
	}
	if has1 && has2 {
		return nil, false
	}
	for idx := range s.Syntaxes {
		if syn := &s.Syntaxes[idx]; syn.Driver {
			return syn, true
		}
	}
	return nil, false
}

// Table maps normalized verb words to specs. It is immutable once built.
type Table struct {
	words   map[string]*Spec
	actions map[string]*Spec
}

// Entry binds a set of words to a spec.
type Entry struct {
	Words []string
	Spec  *Spec
}

// New builds a table. Later entries win when they reuse a word.
func New(entries ...Entry) *Table {
	t := &Table{
		words:   map[string]*Spec{},
		actions: map[string]*Spec{},
	}
	for _, entry := range entries {
		for _, word := range entry.Words {
			if norm := vocab.Norm(word); norm != "" {
				t.words[norm] = entry.Spec
			}
		}
		if _, found := t.actions[entry.Spec.Action]; !found {
			t.actions[entry.Spec.Action] = entry.Spec
		}
		for _, particle := range entry.Spec.Particles {
			if _, found := t.actions[particle.Action]; !found {
				t.actions[particle.Action] = particle
			}
		}
	}
	return t
}

func (t *Table) Lookup(word string) (*Spec, bool) {
	spec, found := t.words[word]
	return spec, found
}

// Words returns every verb word, sorted.
func (t *Table) Words() []string {
	result := make([]string, 0, len(t.words))
	for word := range t.words {
		result = append(result, word)
	}
	sort.Strings(result)
	return result
}

// Actions returns every action id, sorted.
func (t *Table) Actions() []string {
	result := make([]string, 0, len(t.actions))
	for action := range t.actions {
		result = append(result, action)
	}
	sort.Strings(result)
	return result
}
