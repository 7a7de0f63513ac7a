package game

import (
	"log"

	"github.com/zond/grue/structs"
)

// tick advances the world one turn after a command.
// A step that ends the game stops the remaining steps.
func (c *Context) tick() {
	for _, step := range []func(){
		c.lampCountdown,
		c.fireEvents,
		c.hazards,
		c.glowDemon,
		c.meleeDemon,
		c.thiefDemon,
	} {
		if !c.running {
			return
		}
		step()
	}
}

func (c *Context) lampCountdown() {
	tuning := c.World.Tuning.Lamp
	lamp, found := c.Object(tuning.Object)
	if !found || !lamp.Held || !lamp.Lit || lamp.Fuel <= 0 {
		return
	}
	lamp.Fuel--
	if lamp.Fuel == 0 {
		lamp.Lit = false
		c.Println(tuning.Message)
	}
}

// fireEvents removes every due event before running any of them, so events
// scheduled by the callbacks wait for a later turn.
func (c *Context) fireEvents() {
	for _, ev := range c.Events.Due(c.Turn()) {
		if !c.running {
			return
		}
		f, found := c.lib.Events[ev.Kind]
		if !found {
			log.Printf("no callback for scheduled event %+v", ev)
			continue
		}
		f(c, ev.Target)
	}
}

func (c *Context) hazards() {
	here := c.Here()
	for idx := range here.Hazards {
		hazard := &here.Hazards[idx]
		switch hazard.Kind {
		case structs.Leak:
			if hazard.Since == 0 {
				hazard.Since = c.Turn()
			}
			if c.Turn() >= hazard.Since+hazard.After && !c.World.Flags.Get(hazard.Flag) {
				c.World.Flags.Set(hazard.Flag, true)
				c.Println(hazard.Message)
			}
		case structs.Gust:
			obj, found := c.Object(hazard.Object)
			if found && obj.Held && obj.Lit && c.Chance(hazard.Chance) {
				obj.Lit = false
				c.Println(hazard.Message)
			}
		case structs.Schedule:
			if !c.World.Flags.Get(hazard.Flag) {
				c.World.Flags.Set(hazard.Flag, true)
				c.Schedule(hazard.After, hazard.Event, hazard.Target)
			}
		}
	}
}

// glowDemon makes the held blade glow when villains are here or next door.
func (c *Context) glowDemon() {
	tuning := c.World.Tuning.Glow
	blade, found := c.Object(tuning.Object)
	if !found || !blade.Held {
		return
	}
	here := c.Here()
	glow := 0
	if len(c.World.Villains(here.ID)) > 0 {
		glow = 2
	} else {
		for _, neighbor := range c.World.Neighbors(here) {
			if len(c.World.Villains(neighbor.ID)) > 0 {
				glow = 1
				break
			}
		}
	}
	player := &c.World.Player
	if glow == player.Glow {
		return
	}
	player.Glow = glow
	switch glow {
	case 2:
		c.Println(tuning.Bright)
	case 1:
		c.Println(tuning.Faint)
	default:
		c.Println(tuning.None)
	}
}

// meleeDemon runs one round of a fight with a villain here.
func (c *Context) meleeDemon() {
	var villain *structs.Object
	for _, candidate := range c.World.Villains(c.Here().ID) {
		if candidate.Is(structs.Fighting) {
			villain = candidate
			break
		}
	}
	if villain == nil {
		return
	}
	player := &c.World.Player
	if player.Staggered {
		player.Staggered = false
		return
	}
	if _, armed := c.Armed(); armed {
		villain.Strength--
	}
	if villain.Strength <= 0 {
		c.Kill(villain)
		return
	}
	tuning := c.World.Tuning.Melee
	player.Strength = max(0, player.Strength-tuning.Damage)
	player.Staggered = c.Chance(tuning.Stagger)
	if player.Staggered {
		c.Println(tuning.Staggered)
	} else {
		c.Println(tuning.Glancing)
	}
	if player.Strength <= 0 {
		c.Println(tuning.Killed)
		c.Stop()
	}
}

// thiefDemon lets the thief rob the player, or show up where the player is.
func (c *Context) thiefDemon() {
	tuning := c.World.Tuning.Thief
	thief, found := c.Object(tuning.Object)
	if !found {
		return
	}
	here := c.Here()
	switch {
	case thief.Room == here.ID:
		if !c.Chance(tuning.RobChance) {
			return
		}
		taken := 0
		for _, obj := range c.World.Contents(here.ID) {
			if obj.Is(structs.Visible) && obj.Is(structs.Takeable) && !obj.Is(structs.Sacred) && obj.FindScore > 0 && c.Chance(tuning.ItemChance) {
				c.World.PlaceInRoom(obj, tuning.Home)
				taken++
			}
		}
		valuables := []*structs.Object{}
		for _, obj := range c.World.Held() {
			if obj.Is(structs.Takeable) && obj.FindScore > 0 {
				valuables = append(valuables, obj)
			}
		}
		if len(valuables) > 0 {
			c.World.PlaceInRoom(valuables[c.Rand.IntN(len(valuables))], tuning.Home)
			taken++
		}
		if taken > 0 {
			c.Println(tuning.Robbed)
			c.World.Remove(thief)
		}
	case thief.Offstage() && here.ID != tuning.Home:
		if !c.Chance(tuning.AppearChance) {
			return
		}
		c.World.PlaceInRoom(thief, here.ID)
		if !c.World.Flags.Get(tuning.Flag) {
			c.World.Flags.Set(tuning.Flag, true)
			c.Println(tuning.Appeared)
		}
	}
}
