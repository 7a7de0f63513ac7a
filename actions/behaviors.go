package actions

import (
	"github.com/zond/grue/game"
	"github.com/zond/grue/structs"
	"github.com/zond/grue/verbs"
)

func objectBehaviors() map[string]game.Behavior {
	return map[string]game.Behavior{
		"window":      window,
		"rug":         rug,
		"trapdoor":    trapDoor,
		"barred-door": barredDoor,
		"case":        trophyCase,
		"lamp":        lamp,
		"match":       match,
		"candles":     candles,
		"fuse":        fuse,
		brickBehavior: brick,
		"bottle":      bottle,
		boxBehavior:   box,
		"troll":       troll,
		"thief":       thief,
		"gnome":       gnome,
	}
}

func window(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	open := c.World.Flags.Get(KitchenWindow)
	switch call.Verb {
	case verbs.Open:
		if open {
			c.Refuse("It is already open.")
			return true
		}
		c.World.Flags.Set(KitchenWindow, true)
		c.Println("With great effort, you open the window far enough to allow entry.")
	case verbs.Close:
		if !open {
			c.Refuse("It is already closed.")
			return true
		}
		c.World.Flags.Set(KitchenWindow, false)
		c.Println("The window closes (more easily than it opened).")
	default:
		return false
	}
	return true
}

func rug(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	switch call.Verb {
	case verbs.Take:
		c.Refuse("The rug is extremely heavy and cannot be carried.")
	case verbs.Lift, verbs.Raise:
		c.Println("The rug is too heavy to lift, but in trying to take it you have noticed an irregularity beneath it.")
	case verbs.Move:
		if c.World.Flags.Get(RugMoved) {
			c.Refuse("Having moved the carpet previously, you find it impossible to move it again.")
			return true
		}
		c.World.Flags.Set(RugMoved, true)
		for _, door := range withBehavior(c, c.Here().ID, "trapdoor") {
			door.Set(structs.Visible, true)
		}
		c.Println("With a great effort, the rug is moved to one side of the room.")
		c.Println("With the rug moved, the dusty cover of a closed trap-door appears.")
	default:
		return false
	}
	return true
}

func trapDoor(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	open := c.World.Flags.Get(TrapDoor)
	switch call.Verb {
	case verbs.Open:
		if open {
			c.Refuse("It's open.")
			return true
		}
		c.World.Flags.Set(TrapDoor, true)
		self.Open = true
		c.Println("The door reluctantly opens to reveal a rickety staircase descending into darkness.")
	case verbs.Close:
		if !open {
			c.Refuse("It's closed.")
			return true
		}
		c.World.Flags.Set(TrapDoor, false)
		self.Open = false
		c.Println("The door swings shut and closes.")
	default:
		return false
	}
	return true
}

// barredDoor is the underside of the trap door.
func barredDoor(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	switch call.Verb {
	case verbs.Open:
		c.Refuse("The door is locked from above.")
	case verbs.Close:
		c.Refuse("It's closed.")
	default:
		return false
	}
	return true
}

func trophyCase(c *game.Context, self *structs.Object, call game.Call) bool {
	switch {
	case call.Verb == verbs.Take && call.Direct == self:
		c.Refuse("The trophy case is securely fastened to the wall (perhaps to foil any attempt by robbers to remove it).")
	case call.Verb == verbs.Put && call.Indirect == self:
		if !putIn(c, call.Direct, self) {
			return true
		}
		if !call.Direct.Trophy {
			call.Direct.Trophy = true
			c.AddScore(call.Direct.TrophyScore)
		}
		c.Println("Done.")
	default:
		return false
	}
	return true
}

func lamp(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	switch call.Verb {
	case verbs.TurnOn:
		switch {
		case self.Fuel <= 0:
			c.Refuse("A burned-out lamp won't light.")
		case self.Lit:
			c.Refuse("It is already on.")
		default:
			self.Lit = true
			c.Println("The lamp is now on.")
		}
	case verbs.TurnOff:
		if !self.Lit {
			c.Refuse("It is already off.")
			return true
		}
		self.Lit = false
		c.Println("The lamp is now off.")
	case verbs.Throw:
		if !self.Held {
			return false
		}
		c.World.Destroy(self.ID)
		if broken, found := c.Object(brokenLampID); found {
			c.World.PlaceInRoom(broken, c.Here().ID)
		}
		c.Println("The lamp has smashed into the floor and the light has gone out.")
	default:
		return false
	}
	return true
}

func match(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self || (call.Verb != verbs.Burn && call.Verb != verbs.TurnOn) {
		return false
	}
	if self.Lit {
		c.Refuse("The match is already lit.")
		return true
	}
	self.Lit = true
	// A match put out early still has its burnout waiting.
	c.Events.Cancel(MatchEvent, self.ID)
	c.Schedule(matchBurns, MatchEvent, self.ID)
	c.Println("One of the matches starts to burn.")
	return true
}

// lighting reports whether the object is a flame the player can light things with.
func lighting(obj *structs.Object) bool {
	return obj != nil && obj.Held && obj.Emitting()
}

func candles(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	switch call.Verb {
	case verbs.Burn, verbs.TurnOn:
		switch {
		case self.Lit:
			c.Refuse("The candles are already lit.")
		case call.Indirect == nil && call.Verb == verbs.Burn:
			c.Refuse("What do you want to light the candles with?")
		case call.Indirect != nil && !lighting(call.Indirect):
			c.Refuse("You have to light them with something that's burning, you know.")
		default:
			self.Lit = true
			c.Println("The candles are now lit.")
		}
	case verbs.TurnOff:
		if !self.Lit {
			c.Refuse("The candles are not lighted.")
			return true
		}
		self.Lit = false
		c.Println("The flame is extinguished.")
	default:
		return false
	}
	return true
}

func fuse(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self || call.Verb != verbs.Burn {
		return false
	}
	switch {
	case self.Lit:
		c.Refuse("The fuse is already burning.")
	case call.Indirect == nil:
		c.Refuse("What do you want to light the fuse with?")
	case !lighting(call.Indirect):
		c.Refuse("You have to light it with something that's burning, you know.")
	default:
		self.Lit = true
		c.Schedule(fuseBurns, FuseEvent, self.ID)
		c.Println("The wire starts to burn.")
	}
	return true
}

func brick(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self || call.Verb != verbs.Burn {
		return false
	}
	smithereens(c)
	return true
}

func bottle(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self || call.Verb != verbs.Throw || !self.Held {
		return false
	}
	c.World.Destroy(self.ID)
	c.Println("The bottle hits the far wall and is decimated.")
	return true
}

// box is the safe in the wall, rusted shut until blown open.
func box(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	blown := c.World.Flags.Get(SafeBlown)
	switch {
	case call.Verb == verbs.Take:
		c.Refuse("The box is imbedded in the wall.")
	case call.Verb == verbs.Open && !blown:
		c.Refuse("The box is rusted and will not open.")
	case call.Verb == verbs.Close && blown:
		c.Refuse("The box has no door!")
	default:
		return false
	}
	return true
}

func troll(c *game.Context, self *structs.Object, call game.Call) bool {
	switch {
	case (call.Verb == verbs.Throw || call.Verb == verbs.Give) && call.Indirect == self && call.Direct != nil && call.Direct.Held:
		c.Printf("The troll, who is remarkably coordinated, catches the %s and, not having the most discriminating tastes, gleefully eats it.\n", call.Direct.Name())
		c.World.Destroy(call.Direct.ID)
	case call.Verb == verbs.Take && call.Direct == self:
		c.Refuse("The troll spits in your face, saying \"Better luck next time.\"")
	default:
		return false
	}
	return true
}

func thief(c *game.Context, self *structs.Object, call game.Call) bool {
	if call.Direct != self {
		return false
	}
	switch call.Verb {
	case verbs.Take:
		c.Refuse("Once you got him, what would you do with him?")
	case verbs.Attack:
		if _, armed := c.Armed(); !armed && call.Indirect == nil {
			return false
		}
		c.Println("You missed.  The thief makes no attempt to take the knife, though it would be a fine addition to the collection in his bag.  He does seem angered by your attempt.")
	default:
		return false
	}
	return true
}

func gnome(c *game.Context, self *structs.Object, call game.Call) bool {
	switch {
	case (call.Verb == verbs.Give || call.Verb == verbs.Throw) && call.Indirect == self:
		gift := call.Direct
		if gift == nil || !gift.Held {
			return false
		}
		if treasure(gift) {
			c.World.Remove(gift)
			c.World.Flags.Set(GnomeDoor, true)
			c.Printf("Thank you very much for the %s.  I don't believe I've ever seen one as beautiful. 'Follow me', he says, and a door appears on the west end of the ledge.  Through the door, you can see a narrow chimney sloping steeply downward.\n", gift.Name())
			return true
		}
		c.World.Destroy(gift.ID)
		c.Printf("'That wasn't quite what I had in mind', he says, crunching the %s in his rock-hard hands.\n", gift.Name())
	case call.Direct == self:
		c.Println("The gnome appears increasingly nervous.")
	default:
		return false
	}
	return true
}
