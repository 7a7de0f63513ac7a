// Package content embeds the demo world.
package content

import (
	"bytes"
	_ "embed"

	"github.com/zond/grue/structs"
)

//go:embed world.yaml
var world []byte

// Load returns a fresh copy of the demo world.
func Load() (*structs.World, error) {
	return structs.LoadWorld(bytes.NewReader(world))
}

// Source returns the embedded content file.
func Source() []byte {
	return bytes.Clone(world)
}
