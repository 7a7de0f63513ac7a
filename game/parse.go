package game

import (
	"github.com/zond/grue/structs"
	"github.com/zond/grue/verbs"
	"github.com/zond/grue/vocab"
)

// command interprets a fresh command line.
func (c *Context) command(p phrase) {
	first := p[0]
	if dir, found := vocab.Direction(first.norm); found && len(p) == 1 {
		c.Walk(dir)
		return
	}
	spec, found := c.Verbs.Lookup(first.norm)
	if !found {
		c.unknown(first)
		return
	}
	rest := p[1:]
	if len(rest) > 0 {
		if particle, found := spec.Particle(rest[0].norm); found {
			spec = particle
			rest = rest[1:]
		}
	}
	if spec.Action == verbs.Walk && len(rest) > 0 {
		if dir, found := vocab.Direction(rest[0].norm); found {
			c.Walk(dir)
		} else {
			c.unknown(rest[0])
		}
		return
	}

	phrase1, prep2, phrase2 := rest, "", phrase{}
	for idx, w := range rest {
		if class, found := spec.Slot2Prep(w.norm); found {
			phrase1, prep2, phrase2 = rest[:idx], class, rest[idx+1:]
			break
		}
	}

	direct, candidates, outcome := c.resolve(phrase1)
	if outcome == Ambiguous {
		c.suspend(spec.Action, p.norms(), candidates, phrase1.content()[0].raw)
		return
	}
	if outcome != OK {
		c.outcome = outcome
		return
	}
	indirect, candidates, outcome := c.resolve(phrase2)
	if outcome == Ambiguous {
		c.suspend(spec.Action, p.norms(), candidates, phrase2.content()[0].raw)
		return
	}
	if outcome != OK {
		c.outcome = outcome
		return
	}

	syntax, found := spec.Choose(direct != nil, prep2, indirect != nil)
	if !found {
		c.outcome = SyntaxMismatch
		c.Println("I can't make sense out of that.")
		return
	}
	c.dispatch(syntax, direct, indirect)
}

func (c *Context) unknown(w word) {
	c.outcome = UnknownWord
	c.Printf("I don't know the word \"%s\".\n", w.raw)
}

func (c *Context) suspend(verb string, words []string, candidates []*structs.Object, raw string) {
	c.outcome = Ambiguous
	c.Pending = &Pending{
		Verb:       verb,
		Words:      words,
		Candidates: candidates,
		Word:       raw,
	}
	c.prompt()
}

// answer interprets input while a disambiguation is pending, as an object phrase completing it.
func (c *Context) answer(p phrase) {
	pending := c.Pending
	c.Pending = nil
	obj, candidates, outcome := c.resolve(p)
	switch {
	case outcome == Ambiguous:
		c.suspend(pending.Verb, pending.Words, candidates, p.content()[0].raw)
		return
	case outcome != OK:
		c.outcome = outcome
		return
	case obj == nil:
		return
	}
	if !verbs.Orphans[pending.Verb] {
		c.Refuse("I don't know how to do that.")
		return
	}
	c.Last.Verb = pending.Verb
	c.Last.Direct = obj.ID
	c.Last.Indirect = ""
	c.Perform(pending.Verb, obj, nil)
}

// dispatch runs a matched syntax: it flips the objects if asked, picks up the
// direct object if the syntax wants it held, records the references and performs
// the action.
func (c *Context) dispatch(syntax *verbs.Syntax, direct, indirect *structs.Object) {
	if syntax.Flip {
		direct, indirect = indirect, direct
	}
	if syntax.ImplicitTake() && direct != nil && direct.Is(structs.Takeable) && !direct.Held && c.World.RoomOf(direct) == c.Here().ID {
		c.Perform(verbs.Take, direct, nil)
		if !direct.Held {
			if c.outcome == OK {
				c.outcome = Refused
			}
			return
		}
	}
	c.Last.Verb = syntax.Action
	c.Last.Direct = ""
	c.Last.Indirect = ""
	if direct != nil {
		c.Last.Direct = direct.ID
	}
	if indirect != nil {
		c.Last.Indirect = indirect.ID
	}
	c.Perform(syntax.Action, direct, indirect)
}
