// Package actions is the behavior library of the demo world: the default
// handlers of the builtin verbs and the object, room, exit and event
// behaviors its content refers to by name.
package actions

import (
	"github.com/zond/grue/game"
	"github.com/zond/grue/lang"
	"github.com/zond/grue/structs"
)

// Flags set and read by the behaviors.
const (
	KitchenWindow  = "KITCHEN-WINDOW"
	RugMoved       = "RUG-MOVED"
	TrapDoor       = "TRAP-DOOR"
	TrapDoorBarred = "TRAP-DOOR-BARRED"
	GnomeDoor      = "GNOME-DOOR"
	SafeBlown      = "SAFE-BLOWN"
	Chimney        = "CHIMNEY"
)

const (
	gnomeID       = "GNOME"
	brokenLampID  = "BLAMP"
	matchBurns    = 5
	fuseBurns     = 2
	mungDelay     = 5
	gnomeLingers  = 5
	chimneyLimit  = 2
	brickBehavior = "brick"
	boxBehavior   = "box"
)

// Event kinds.
const (
	MatchEvent      = "match"
	FuseEvent       = "fuse"
	MungEvent       = "mung"
	GnomeEvent      = "gnome"
	GnomeLeaveEvent = "gnome-leave"
)

// Library returns the handlers and behaviors of the demo world.
func Library() game.Library {
	return game.Library{
		Handlers: handlers(),
		Objects:  objectBehaviors(),
		Rooms:    roomBehaviors(),
		Exits:    exitBehaviors(),
		Events:   events(),
	}
}

// header prints the name of the location, or its long description unless the player asked for brevity.
func header(c *game.Context, loc *structs.Location, long string) {
	player := c.World.Player
	if player.SuperBrief || (player.Brief && loc.Seen) || long == "" {
		c.Println(loc.Name)
		return
	}
	c.Println(long)
}

// describeObjects lists what lies in the location.
func describeObjects(c *game.Context, loc *structs.Location) {
	for _, obj := range c.World.Contents(loc.ID) {
		if !obj.Is(structs.Visible) {
			continue
		}
		if !obj.Is(structs.NoDescribe) {
			c.Println(hereLine(obj))
		}
		describeContents(c, obj)
	}
}

func hereLine(obj *structs.Object) string {
	switch {
	case !obj.Touched && obj.Initial != "":
		return obj.Initial
	case obj.Here != "":
		return obj.Here
	}
	return "There is " + lang.Indef(obj.Name()) + " here."
}

// describeContents lists the visible contents of an accessible container, and reports whether there were any.
func describeContents(c *game.Context, container *structs.Object) bool {
	if !container.Accessible() {
		return false
	}
	inside := []*structs.Object{}
	for _, obj := range c.World.Inside(container.ID) {
		if obj.Is(structs.Visible) {
			inside = append(inside, obj)
		}
	}
	if len(inside) == 0 {
		return false
	}
	c.Printf("The %s contains:\n", container.Name())
	for _, obj := range inside {
		c.Printf("  %s\n", lang.Capitalize(lang.Indef(obj.Name())))
	}
	return true
}

// describeRoom prints a location whose long description depends on the state of the game.
// It reports false in the dark, leaving the darkness to the default LOOK.
func describeRoom(c *game.Context, loc *structs.Location, long string) bool {
	if !c.Lit() {
		return false
	}
	header(c, loc, long)
	describeObjects(c, loc)
	return true
}

func treasure(obj *structs.Object) bool {
	return obj.FindScore > 0 || obj.TrophyScore > 0
}

// smithereens ends the game by the brick.
func smithereens(c *game.Context) {
	c.Println("Now you've done it.  It seems that the brick has other properties than weight, namely the ability to blow you to smithereens.")
	c.Println("   BOOOOOOOOOOOM      ")
	c.Stop()
}

// withBehavior returns the objects in the location, directly or in containers, that have the behavior.
func withBehavior(c *game.Context, loc string, behavior string) []*structs.Object {
	result := []*structs.Object{}
	for _, id := range c.World.ObjectOrder {
		obj, found := c.World.Object(id)
		if found && obj.Behavior == behavior && c.World.RoomOf(obj) == loc {
			result = append(result, obj)
		}
	}
	return result
}
