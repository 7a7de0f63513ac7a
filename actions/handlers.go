package actions

import (
	"log"

	"github.com/zond/grue"
	"github.com/zond/grue/game"
	"github.com/zond/grue/lang"
	"github.com/zond/grue/structs"
	"github.com/zond/grue/verbs"
)

func handlers() map[string]game.Handler {
	return map[string]game.Handler{
		verbs.Look:         look,
		verbs.Inventory:    inventory,
		verbs.Take:         take,
		verbs.Drop:         drop,
		verbs.Put:          put,
		verbs.Open:         open,
		verbs.Close:        closeHandler,
		verbs.Read:         read,
		verbs.Eat:          eat,
		verbs.Drink:        drink,
		verbs.Throw:        throw,
		verbs.Wave:         wave,
		verbs.Attack:       attack,
		verbs.Move:         cantDo("move"),
		verbs.Lift:         cantDo("lift"),
		verbs.Raise:        cantDo("raise"),
		verbs.Lower:        cantDo("lower"),
		verbs.Give:         give,
		verbs.Burn:         burn,
		verbs.Turn:         turn,
		verbs.TurnOn:       turnOn,
		verbs.TurnOff:      turnOff,
		verbs.Wait:         wait,
		verbs.Walk:         walk,
		verbs.Brief:        brief(true),
		verbs.Unbrief:      brief(false),
		verbs.Superbrief:   superBrief(true),
		verbs.Unsuperbrief: superBrief(false),
		verbs.Score:        score,
		verbs.Diagnose:     diagnose,
		verbs.Info:         info,
		verbs.Quit:         quit,
		verbs.Save:         save,
		verbs.Restore:      restore,
		verbs.Script:       script,
		verbs.Unscript:     unscript,
	}
}

func look(c *game.Context, direct, _ *structs.Object) {
	if direct != nil {
		examine(c, direct)
		return
	}
	if !c.Lit() {
		c.Println("It is too dark to see.")
		return
	}
	here := c.Here()
	header(c, here, here.Description)
	describeObjects(c, here)
}

func examine(c *game.Context, obj *structs.Object) {
	if describeContents(c, obj) {
		return
	}
	if obj.Accessible() {
		c.Printf("The %s is empty.\n", obj.Name())
		return
	}
	c.Printf("I see nothing special about the %s.\n", obj.Name())
}

func inventory(c *game.Context, _, _ *structs.Object) {
	held := c.World.Held()
	if len(held) == 0 {
		c.Println("You are empty-handed.")
		return
	}
	c.Println("You are carrying:")
	for _, obj := range held {
		c.Printf("  %s\n", lang.Capitalize(lang.Indef(obj.Name())))
		if obj.Accessible() {
			for _, inner := range c.World.Inside(obj.ID) {
				c.Printf("    %s\n", lang.Capitalize(lang.Indef(inner.Name())))
			}
		}
	}
}

func take(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Take)
		return
	case direct.Held:
		c.Refuse("You already have that.")
		return
	case !direct.Is(structs.Takeable):
		c.Refuse("You can't take that.")
		return
	}
	if container, found := c.Object(direct.In); found && !container.Accessible() {
		c.Refuse("You can't reach that.")
		return
	}
	carried := c.World.Load()
	if container, found := c.Object(direct.In); found && container.Held {
		carried -= c.World.Weight(direct)
	}
	if carried+c.World.Weight(direct) > c.World.Tuning.MaxLoad {
		c.Refuse("You're carrying too much.")
		return
	}
	c.World.Give(direct)
	if !direct.Touched {
		direct.Touched = true
		c.AddScore(direct.FindScore)
	}
	c.Println("Taken.")
}

func drop(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Drop)
	case !direct.Held:
		c.Refuse("You're not carrying that.")
	default:
		c.World.PlaceInRoom(direct, c.Here().ID)
		c.Println("Dropped.")
	}
}

func put(c *game.Context, direct, indirect *structs.Object) {
	if putIn(c, direct, indirect) {
		c.Println("Done.")
	}
}

// putIn moves the held object into the container, and reports whether it did.
func putIn(c *game.Context, direct, indirect *structs.Object) bool {
	switch {
	case direct == nil:
		c.Ask(verbs.Put)
		return false
	case !direct.Held:
		c.Refuse("You're not carrying that.")
		return false
	case indirect == nil:
		c.Refuse("What do you want to put the %s in?", direct.Name())
		return false
	case inside(c, indirect, direct):
		c.Refuse("How can you do that?")
		return false
	case !indirect.Is(structs.Container):
		c.Refuse("You can't put things in that.")
		return false
	case !indirect.Open:
		c.Refuse("The %s is closed.", indirect.Name())
		return false
	}
	used := 0
	for _, obj := range c.World.Inside(indirect.ID) {
		used += c.World.Weight(obj)
	}
	if used+c.World.Weight(direct) > indirect.Capacity {
		c.Refuse("That won't fit.")
		return false
	}
	c.World.PlaceIn(direct, indirect.ID)
	return true
}

// inside reports whether obj is container or somewhere within it.
func inside(c *game.Context, obj, container *structs.Object) bool {
	seen := map[string]bool{}
	for obj != nil && !seen[obj.ID] {
		if obj == container {
			return true
		}
		seen[obj.ID] = true
		obj, _ = c.Object(obj.In)
	}
	return false
}

func open(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Open)
		return
	case !direct.Is(structs.Container) && !direct.Is(structs.Door):
		c.Refuse("That's not something you can open.")
		return
	case direct.Open:
		c.Refuse("It is already open.")
		return
	}
	direct.Open = true
	if !direct.Is(structs.Container) || direct.Is(structs.Transparent) {
		c.Println("Opened.")
		return
	}
	names := []string{}
	for _, obj := range c.World.Inside(direct.ID) {
		if obj.Is(structs.Visible) {
			names = append(names, lang.Indef(obj.Name()))
		}
	}
	if len(names) == 0 {
		c.Println("Opened.")
		return
	}
	c.Printf("Opening the %s reveals %s.\n", direct.Name(), lang.Enumerator{}.Do(names...))
}

func closeHandler(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Close)
	case !direct.Is(structs.Container) && !direct.Is(structs.Door):
		c.Refuse("That's not something you can close.")
	case !direct.Open:
		c.Refuse("It is already closed.")
	default:
		direct.Open = false
		c.Println("Closed.")
	}
}

func read(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Read)
	case !direct.Is(structs.Readable):
		c.Refuse("You can't read that.")
	case !c.Lit():
		c.Refuse("It is impossible to read in the dark.")
	case direct.Text == "":
		c.Println("There is nothing written on it.")
	default:
		c.Println(direct.Text)
	}
}

func eat(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Eat)
	case !direct.Is(structs.Food):
		c.Refuse("You can't eat that.")
	default:
		c.World.Destroy(direct.ID)
		c.Println("Thank you, that was delicious.")
	}
}

func drink(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Drink)
	case !direct.Is(structs.Drink):
		c.Refuse("You can't drink that.")
	default:
		c.World.Destroy(direct.ID)
		c.Println("Thank you very much.  I was rather thirsty (from all this talking, probably).")
	}
}

func throw(c *game.Context, direct, indirect *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Throw)
	case !direct.Held:
		c.Refuse("You're not carrying that.")
	case indirect != nil && indirect.Is(structs.Villain):
		c.World.PlaceInRoom(direct, c.Here().ID)
		c.Printf("The %s bounces harmlessly off the %s.\n", direct.Name(), indirect.Name())
	default:
		c.World.PlaceInRoom(direct, c.Here().ID)
		c.Printf("The %s lands on the ground.\n", direct.Name())
	}
}

func wave(c *game.Context, direct, _ *structs.Object) {
	if direct == nil {
		c.Ask(verbs.Wave)
		return
	}
	c.Println("Nothing happens.")
}

func attack(c *game.Context, direct, indirect *structs.Object) {
	if direct == nil {
		c.Ask(verbs.Attack)
		return
	}
	if !direct.Is(structs.Villain) {
		c.Refuse("Violence isn't the answer to this one.")
		return
	}
	weapon := indirect
	if weapon == nil {
		armed, found := c.Armed()
		if !found {
			c.Refuse("You need a weapon to attack the %s.", direct.Name())
			return
		}
		weapon = armed
	}
	switch {
	case !weapon.Held:
		c.Refuse("You're not carrying the %s.", weapon.Name())
		return
	case !weapon.Is(structs.Weapon):
		c.Refuse("You can't attack with that.")
		return
	}
	if !direct.Is(structs.Fighting) {
		direct.Set(structs.Fighting, true)
		c.Printf("The %s blocks your blow, and you are thrown back.\n", direct.Name())
		return
	}
	direct.Strength--
	if direct.Strength <= 0 {
		c.Kill(direct)
		return
	}
	c.Printf("You hit the %s.\n", direct.Name())
}

// cantDo is the default of the verbs that only mean something to particular objects.
func cantDo(verb string) game.Handler {
	return func(c *game.Context, direct, _ *structs.Object) {
		if direct == nil {
			c.Ask(verb)
			return
		}
		c.Refuse("You can't %s that.", verb)
	}
}

func give(c *game.Context, direct, indirect *structs.Object) {
	switch {
	case direct == nil:
		c.Ask(verbs.Give)
	case !direct.Held:
		c.Refuse("You're not carrying that.")
	case indirect == nil:
		c.Refuse("Who do you want to give the %s to?", direct.Name())
	default:
		c.Refuse("The %s doesn't want that.", indirect.Name())
	}
}

func burn(c *game.Context, direct, _ *structs.Object) {
	if direct == nil {
		c.Ask(verbs.Burn)
		return
	}
	c.Refuse("You can't burn that.")
}

func turn(c *game.Context, direct, _ *structs.Object) {
	if direct == nil {
		c.Ask(verbs.Turn)
		return
	}
	c.Println("Nothing happens.")
}

func turnOn(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Refuse("What do you want to turn on?")
	case direct.Light <= 0:
		c.Refuse("You can't turn that on.")
	case direct.Lit:
		c.Refuse("It is already on.")
	default:
		direct.Lit = true
		c.Printf("The %s is now on.\n", direct.Name())
	}
}

func turnOff(c *game.Context, direct, _ *structs.Object) {
	switch {
	case direct == nil:
		c.Refuse("What do you want to turn off?")
	case direct.Light <= 0:
		c.Refuse("You can't turn that off.")
	case !direct.Lit:
		c.Refuse("It is already off.")
	default:
		direct.Lit = false
		c.Printf("The %s is now off.\n", direct.Name())
	}
}

func wait(c *game.Context, _, _ *structs.Object) {
	c.Println("Time passes...")
}

func walk(c *game.Context, _, _ *structs.Object) {
	c.Refuse("Go where?")
}

func brief(on bool) game.Handler {
	return func(c *game.Context, _, _ *structs.Object) {
		c.World.Player.Brief = on
		if on {
			c.Println("Brief mode is now on.")
		} else {
			c.Println("Brief mode is now off.")
		}
	}
}

func superBrief(on bool) game.Handler {
	return func(c *game.Context, _, _ *structs.Object) {
		c.World.Player.SuperBrief = on
		if on {
			c.Println("Super-brief mode is now on.")
		} else {
			c.Println("Super-brief mode is now off.")
		}
	}
}

func score(c *game.Context, _, _ *structs.Object) {
	moves := "move"
	if c.Turn() != 1 {
		moves = lang.Plural(moves)
	}
	c.Printf("Your score is %d (total possible %d), in %d %s.\n", c.World.Player.Score, c.World.Tuning.MaxScore, c.Turn(), moves)
}

func diagnose(c *game.Context, _, _ *structs.Object) {
	player := c.World.Player
	if player.Strength >= c.World.Tuning.Strength {
		c.Printf("You are in perfect health.  Your strength is %d.\n", player.Strength)
		return
	}
	c.Printf("You have been wounded.  Your strength is %d out of %d.\n", player.Strength, c.World.Tuning.Strength)
}

func info(c *game.Context, _, _ *structs.Object) {
	c.Println("You are in a great underground empire.  This is a game of adventure, danger, and low cunning.  Type LOOK to see where you are, and directions such as NORTH or UP to move.")
}

func quit(c *game.Context, _, _ *structs.Object) {
	c.Printf("Your score is %d (total possible %d).\n", c.World.Player.Score, c.World.Tuning.MaxScore)
	c.Stop()
}

func save(c *game.Context, _, _ *structs.Object) {
	if c.Persister == nil {
		c.Refuse("Saving is not available here.")
		return
	}
	s, err := c.Snapshot()
	if err == nil {
		err = c.Persister.Save(s)
	}
	if err != nil {
		log.Println(grue.StackTrace(err))
		c.Refuse("Save failed: %v", err)
		return
	}
	c.Println("Done.")
}

func restore(c *game.Context, _, _ *structs.Object) {
	if c.Persister == nil {
		c.Refuse("Restoring is not available here.")
		return
	}
	s, err := c.Persister.Restore()
	if err == nil {
		err = c.Restore(s)
	}
	if err != nil {
		log.Println(grue.StackTrace(err))
		c.Refuse("Restore failed: %v", err)
		return
	}
	c.Println("Restored.")
	c.Describe(true)
}

func script(c *game.Context, _, _ *structs.Object) {
	if c.Scripter == nil {
		c.Refuse("Scripting is not available here.")
		return
	}
	name, err := c.Scripter.StartScript()
	if err != nil {
		log.Println(grue.StackTrace(err))
		c.Refuse("Script failed: %v", err)
		return
	}
	c.Printf("Scripting to %s.\n", name)
}

func unscript(c *game.Context, _, _ *structs.Object) {
	if c.Scripter == nil {
		c.Refuse("Scripting is not available here.")
		return
	}
	if err := c.Scripter.StopScript(); err != nil {
		log.Println(grue.StackTrace(err))
		c.Refuse("Script failed: %v", err)
		return
	}
	c.Println("Script file closed.")
}

