package game

import (
	"io"
	"maps"
	"math/rand/v2"

	"github.com/zond/grue/schedule"
	"github.com/zond/grue/structs"
	"github.com/zond/grue/verbs"
	"github.com/zond/grue/vocab"
)

// Engine runs one game. It is not safe for concurrent use.
type Engine struct {
	ctx *Context
}

type Option func(*Context)

// WithSeed seeds the random source, so that a game can be replayed.
func WithSeed(seed uint64) Option {
	return func(c *Context) {
		c.source.Seed(seed, seed^0x9e3779b97f4a7c15)
	}
}

func WithOutput(w io.Writer) Option {
	return func(c *Context) {
		c.Out = w
	}
}

func WithPersister(p Persister) Option {
	return func(c *Context) {
		c.Persister = p
	}
}

func WithScripter(s Scripter) Option {
	return func(c *Context) {
		c.Scripter = s
	}
}

// WithVerbs replaces the builtin verb table.
func WithVerbs(t *verbs.Table) Option {
	return func(c *Context) {
		c.Verbs = t
	}
}

func New(world *structs.World, lib Library, opts ...Option) *Engine {
	source := rand.NewPCG(rand.Uint64(), rand.Uint64())
	c := &Context{
		World:   world,
		Verbs:   verbs.Default(),
		Events:  schedule.New(),
		Rand:    rand.New(source),
		Out:     io.Discard,
		source:  source,
		running: true,
		lib: Library{
			Handlers: maps.Clone(lib.Handlers),
			Objects:  maps.Clone(lib.Objects),
			Rooms:    maps.Clone(lib.Rooms),
			Exits:    maps.Clone(lib.Exits),
			Events:   maps.Clone(lib.Events),
		},
	}
	if c.lib.Events == nil {
		c.lib.Events = map[string]EventFunc{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return &Engine{ctx: c}
}

// Context exposes the game state, for inspection between commands.
func (e *Engine) Context() *Context {
	return e.ctx
}

func (e *Engine) Running() bool {
	return e.ctx.running
}

// Look describes the current location in full without using a turn.
func (e *Engine) Look() {
	e.ctx.Describe(true)
}

func (e *Engine) Snapshot() (*structs.Snapshot, error) {
	return e.ctx.Snapshot()
}

func (e *Engine) Restore(s *structs.Snapshot) error {
	return e.ctx.Restore(s)
}

// Execute runs one command and, unless the line was blank, one turn of the clock.
func (e *Engine) Execute(line string) Outcome {
	c := e.ctx
	if !c.running {
		return Fatal
	}
	p := split(line)
	if len(p) == 0 {
		c.Println("Huh?")
		return OK
	}
	c.outcome = OK
	if again := p[0].norm; c.Pending == nil && len(p) == 1 && (again == vocab.Again || again == "G") {
		if c.Last.Line == "" {
			c.Println("There is nothing to repeat.")
			return Refused
		}
		line = c.Last.Line
		p = split(line)
	}
	c.World.Player.Moves++
	if c.Pending != nil {
		c.answer(p)
	} else {
		c.Last.Line = line
		c.command(p)
	}
	if c.running {
		c.tick()
	}
	if !c.running {
		return Fatal
	}
	return c.outcome
}
