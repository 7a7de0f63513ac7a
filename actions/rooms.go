package actions

import (
	"github.com/zond/grue/game"
	"github.com/zond/grue/structs"
	"github.com/zond/grue/verbs"
)

func roomBehaviors() map[string]game.RoomBehavior {
	return map[string]game.RoomBehavior{
		"behind-house": behindHouse,
		"kitchen":      kitchen,
		"living-room":  livingRoom,
		"cellar":       cellar,
		"safe":         safeRoom,
	}
}

func exitBehaviors() map[string]game.ExitBehavior {
	return map[string]game.ExitBehavior{
		"trap-door":  trapDoorExit,
		"gnome-door": gnomeDoorExit,
		"chimney":    chimneyExit,
	}
}

// looking reports whether the call is a plain look around.
func looking(call game.Call) bool {
	return call.Verb == verbs.Look && call.Direct == nil
}

func windowState(c *game.Context) string {
	if c.World.Flags.Get(KitchenWindow) {
		return "open"
	}
	return "slightly ajar"
}

func behindHouse(c *game.Context, loc *structs.Location, call game.Call) bool {
	if !looking(call) {
		return false
	}
	return describeRoom(c, loc, "You are behind the white house.  In one corner of the house there is a small window which is "+windowState(c)+".")
}

func kitchen(c *game.Context, loc *structs.Location, call game.Call) bool {
	if !looking(call) {
		return false
	}
	return describeRoom(c, loc, "You are in the kitchen of the white house.  A table seems to have been used recently for the preparation of food.  A passage leads to the west and a dark staircase can be seen leading upward.  To the east is a small window which is "+windowState(c)+".")
}

func livingRoom(c *game.Context, loc *structs.Location, call game.Call) bool {
	if !looking(call) {
		return false
	}
	long := "You are in the living room.  There is a door to the east, a wooden door with strange gothic lettering to the west, which appears to be nailed shut,"
	switch {
	case !c.World.Flags.Get(RugMoved):
		long += " and a large oriental rug in the center of the room."
	case c.World.Flags.Get(TrapDoor):
		long += " and a rug lying beside an open trap-door."
	default:
		long += " and a closed trap-door at your feet."
	}
	return describeRoom(c, loc, long)
}

// cellar bars the trap door behind the player the first time it is used.
func cellar(c *game.Context, loc *structs.Location, call game.Call) bool {
	if call.Verb != game.Enter {
		return false
	}
	flags := c.World.Flags
	if flags.Get(TrapDoor) && !flags.Get(TrapDoorBarred) {
		flags.Set(TrapDoor, false)
		flags.Set(TrapDoorBarred, true)
		for _, id := range c.World.ObjectOrder {
			if door, found := c.Object(id); found && door.Behavior == "trapdoor" {
				door.Open = false
			}
		}
		c.Println("The trap door crashes shut, and you hear someone barring it.")
	}
	return false
}

func safeRoom(c *game.Context, loc *structs.Location, call game.Call) bool {
	if !looking(call) {
		return false
	}
	long := "You are in a dusty old room which is virtually featureless, except for an exit on the south side."
	if c.World.Flags.Get(SafeBlown) {
		long += "\nOn the far wall is a rusty box, whose door has been blown off."
	} else {
		long += "\nImbedded in the far wall, there is a rusty old box.  It appears that the box is somewhat damaged, since an oblong hole has been chipped out of the front of it."
	}
	return describeRoom(c, loc, long)
}

func trapDoorExit(c *game.Context, exit *structs.Exit) {
	if !c.World.Flags.Get(RugMoved) {
		c.Println("You can't go that way.")
		return
	}
	c.Println("The trap door is closed.")
}

func gnomeDoorExit(c *game.Context, exit *structs.Exit) {
	if gnome, found := c.Object(gnomeID); found && gnome.Room == c.Here().ID {
		c.Println("The gnome blocks your way.")
		return
	}
	c.Println("You can't go that way.")
}

// chimneyExit only lets a lightly loaded player up.
func chimneyExit(c *game.Context, exit *structs.Exit) {
	c.World.Flags.Set(exit.Flag, len(c.World.Held()) <= chimneyLimit)
}
