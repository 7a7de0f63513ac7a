package game

import (
	"github.com/zond/grue/lang"
	"github.com/zond/grue/structs"
	"github.com/zond/grue/vocab"
)

// word is an input token, as typed and normalized.
type word struct {
	raw  string
	norm string
}

type phrase []word

func split(line string) phrase {
	fields := vocab.Fields(line)
	norms := vocab.Split(line)
	result := make(phrase, len(fields))
	for idx, field := range fields {
		result[idx] = word{raw: field, norm: norms[idx]}
	}
	return result
}

func (p phrase) norms() []string {
	result := make([]string, len(p))
	for idx, w := range p {
		result[idx] = w.norm
	}
	return result
}

// content drops noise words, and a leading preposition if something follows it.
func (p phrase) content() phrase {
	result := phrase{}
	for _, w := range p {
		if !vocab.Noise(w.norm) {
			result = append(result, w)
		}
	}
	if len(result) > 1 {
		if _, found := vocab.Prep(result[0].norm); found {
			result = result[1:]
		}
	}
	return result
}

// resolve finds the object an object phrase names. The phrase is resolved by
// its first content word, and later words narrow the candidates when they can.
// Failures are reported to the player. Ambiguous results return the candidates.
func (c *Context) resolve(p phrase) (*structs.Object, []*structs.Object, Outcome) {
	words := p.content()
	if len(words) == 0 {
		return nil, nil, OK
	}
	first := words[0]
	here := c.Here()
	if first.norm == vocab.It {
		if obj, found := c.Object(c.Last.Direct); found && c.inScope(obj) {
			return obj, nil, OK
		}
		c.Println("I don't know what \"it\" refers to.")
		return nil, nil, NotFound
	}
	if id, found := here.ForcedMatch(first.norm); found {
		if obj, found := c.Object(id); found && c.World.RoomOf(obj) == here.ID {
			return obj, nil, OK
		}
	}
	lit := c.Lit()
	held := matching(c.World.Reachable(), first.norm)
	candidates := append([]*structs.Object{}, held...)
	if lit {
		for _, obj := range matching(c.World.Visible(here.ID), first.norm) {
			if !contains(candidates, obj) {
				candidates = append(candidates, obj)
			}
		}
	}
	for _, later := range words[1:] {
		if narrowed := matching(candidates, later.norm); len(narrowed) > 0 {
			candidates = narrowed
		}
	}
	switch len(candidates) {
	case 0:
		if !lit && len(held) == 0 {
			c.Println("It is too dark in here to see.")
			return nil, nil, Dark
		}
		c.Printf("I can't see a %s here.\n", first.raw)
		return nil, nil, NotFound
	case 1:
		return candidates[0], nil, OK
	}
	return nil, candidates, Ambiguous
}

func (c *Context) inScope(obj *structs.Object) bool {
	if contains(c.World.Reachable(), obj) {
		return true
	}
	return c.Lit() && contains(c.World.Visible(c.Here().ID), obj)
}

func matching(objs []*structs.Object, norm string) []*structs.Object {
	result := []*structs.Object{}
	for _, obj := range objs {
		if obj.Matches(norm) {
			result = append(result, obj)
		}
	}
	return result
}

func contains(objs []*structs.Object, obj *structs.Object) bool {
	for _, candidate := range objs {
		if candidate == obj {
			return true
		}
	}
	return false
}

// prompt asks which of the pending candidates the player meant.
func (c *Context) prompt() {
	p := c.Pending
	names := make([]string, len(p.Candidates))
	for idx, obj := range p.Candidates {
		names[idx] = obj.Name()
	}
	if len(names) < 2 {
		c.Printf("Which %s?\n", p.Word)
		return
	}
	c.Printf("Which %s (%s)?\n", p.Word, lang.Enumerator{Pattern: "the %s", Operator: "or"}.Do(names...))
}
