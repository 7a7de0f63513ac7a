package structs

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/zond/grue"
	"gopkg.in/yaml.v3"
)

// Bits are the boolean properties of an object.
type Bits uint32

const (
	Visible Bits = 1 << iota
	Takeable
	Container
	Transparent
	Door
	Weapon
	Villain
	Sacred
	Food
	Drink
	Readable
	NoDescribe
	Fighting
)

var bitNames = map[string]Bits{
	"visible":     Visible,
	"takeable":    Takeable,
	"container":   Container,
	"transparent": Transparent,
	"door":        Door,
	"weapon":      Weapon,
	"villain":     Villain,
	"sacred":      Sacred,
	"food":        Food,
	"drink":       Drink,
	"readable":    Readable,
	"nodescribe":  NoDescribe,
	"fighting":    Fighting,
}

func (b Bits) Has(flag Bits) bool {
	return b&flag == flag
}

// Names returns the names of the set bits, sorted.
func (b Bits) Names() []string {
	result := []string{}
	for name, bit := range bitNames {
		if b.Has(bit) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

func (b Bits) MarshalYAML() (any, error) {
	return b.Names(), nil
}

func (b *Bits) UnmarshalYAML(node *yaml.Node) error {
	names := []string{}
	if err := node.Decode(&names); err != nil {
		return grue.WithStack(err)
	}
	*b = 0
	for _, name := range names {
		bit, found := bitNames[name]
		if !found {
			return errors.Errorf("line %d: unknown object bit %q", node.Line, name)
		}
		*b |= bit
	}
	return nil
}
