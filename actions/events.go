package actions

import (
	"github.com/zond/grue/game"
)

func events() map[string]game.EventFunc {
	return map[string]game.EventFunc{
		MatchEvent:      matchOut,
		FuseEvent:       fuseBurnt,
		MungEvent:       mung,
		GnomeEvent:      gnomeArrives,
		GnomeLeaveEvent: gnomeLeaves,
	}
}

func matchOut(c *game.Context, target string) {
	match, found := c.Object(target)
	if !found || !match.Lit {
		return
	}
	match.Lit = false
	if match.Held {
		c.Println("The match has gone out.")
	}
}

// fuseBurnt explodes the brick the fuse is stuck in, if it is.
func fuseBurnt(c *game.Context, target string) {
	wire, found := c.Object(target)
	if !found || !wire.Lit {
		return
	}
	here := c.Here().ID
	brick, inBrick := c.Object(wire.In)
	if !inBrick || brick.Behavior != brickBehavior {
		if c.World.RoomOf(wire) == here {
			c.Println("The wire rapidly burns into nothingness.")
		}
		c.World.Destroy(wire.ID)
		return
	}
	room := c.World.RoomOf(brick)
	if room == here {
		smithereens(c)
		return
	}
	c.Println("There is an explosion nearby.")
	for _, box := range withBehavior(c, room, boxBehavior) {
		box.Open = true
		c.World.Flags.Set(SafeBlown, true)
	}
	c.World.Destroy(brick.ID)
	if room != "" {
		c.Schedule(mungDelay, MungEvent, room)
	}
}

// mung collapses the room an explosion happened in.
func mung(c *game.Context, target string) {
	loc, found := c.World.Location(target)
	if !found {
		return
	}
	if c.Here().ID == target {
		c.Println("The room trembles and 50,000 pounds of rock fall on you, turning you into a pancake.")
		c.Stop()
		return
	}
	c.Println("You may recall your recent explosion.  Well, probably as a result of that, you hear an ominous rumbling, as if one of the rooms in the dungeon had collapsed.")
	loc.Munged = true
	loc.MungMessage = "The way is blocked by debris from an explosion."
}

func gnomeArrives(c *game.Context, target string) {
	if c.Here().ID != target || c.World.Flags.Get(GnomeDoor) {
		return
	}
	gnome, found := c.Object(gnomeID)
	if !found || !gnome.Offstage() {
		return
	}
	c.World.PlaceInRoom(gnome, target)
	c.Schedule(gnomeLingers, GnomeLeaveEvent, target)
	c.Println("A volcano gnome seems to walk straight out of the wall and says 'I have a very busy appointment schedule and little time to waste on tresspassers, but for a small fee, I'll show you the way out.'  You notice the gnome nervously glancing at his watch.")
}

func gnomeLeaves(c *game.Context, target string) {
	gnome, found := c.Object(gnomeID)
	if !found || gnome.Offstage() {
		return
	}
	if gnome.Room == c.Here().ID {
		c.Println("The gnome glances at his watch.  'Oops.  I'm late for an appointment!' He disappears, leaving you alone on the ledge.")
	}
	c.World.Remove(gnome)
}
