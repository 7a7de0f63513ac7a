package game

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zond/grue/structs"
)

func (h *harness) wait(turns int) []string {
	result := []string{}
	for i := 0; i < turns; i++ {
		out, _ := h.run("WAIT")
		result = append(result, out)
	}
	return result
}

func TestEventsFireOnce(t *testing.T) {
	h := newHarness(t)
	fired := []string{}
	h.on("mark", func(c *Context, target string) {
		fired = append(fired, fmt.Sprintf("%v:%s", c.Turn(), target))
	})
	c := h.engine.Context()
	c.Schedule(2, "mark", "B")
	c.Schedule(1, "mark", "A")
	c.Schedule(2, "mark", "C")
	h.wait(4)
	if diff := cmp.Diff([]string{"1:A", "2:B", "2:C"}, fired); diff != "" {
		t.Errorf("fired: %s", diff)
	}
	if got := c.Events.Len(); got != 0 {
		t.Errorf("got %v pending events, want 0", got)
	}
}

func TestEventReschedulesItself(t *testing.T) {
	h := newHarness(t)
	fired := []int{}
	h.on("loop", func(c *Context, target string) {
		fired = append(fired, c.Turn())
		c.Schedule(0, "loop", target)
	})
	h.engine.Context().Schedule(1, "loop", "")
	h.wait(3)
	if diff := cmp.Diff([]int{1, 2, 3}, fired); diff != "" {
		t.Errorf("fired: %s", diff)
	}
}

func TestUnknownEventIsSkipped(t *testing.T) {
	h := newHarness(t)
	h.engine.Context().Schedule(1, "nothing", "")
	h.expect("WAIT", "", OK)
	if !h.engine.Running() {
		t.Errorf("game should still run")
	}
}

func TestLampCountdown(t *testing.T) {
	h := newHarness(t)
	lamp := h.obj("LAMP")
	h.world().Give(lamp)
	h.expect("TURN ON LAMP", "", OK)
	for idx, out := range h.wait(98) {
		if out != "" || !lamp.Lit {
			t.Fatalf("wait %v: got %q, lit %v", idx+1, out, lamp.Lit)
		}
	}
	h.expect("WAIT", h.world().Tuning.Lamp.Message+"\n", OK)
	if lamp.Lit || lamp.Fuel != 0 {
		t.Errorf("lamp should be spent, got lit %v fuel %v", lamp.Lit, lamp.Fuel)
	}
	h.expect("WAIT", "", OK)
}

func TestLampOnlyBurnsWhenHeld(t *testing.T) {
	h := newHarness(t)
	lamp := h.obj("LAMP")
	lamp.Lit = true
	lamp.Fuel = 1
	h.wait(3)
	if !lamp.Lit || lamp.Fuel != 1 {
		t.Errorf("lamp on the floor should not burn, got lit %v fuel %v", lamp.Lit, lamp.Fuel)
	}
}

func TestGlow(t *testing.T) {
	h := newHarness(t)
	tuning := h.world().Tuning.Glow
	h.world().Give(h.obj("SWORD"))
	h.expect("WAIT", tuning.Faint+"\n", OK)
	h.expect("WAIT", "", OK)
	h.world().Player.Location = "PIT"
	h.expect("WAIT", tuning.Bright+"\n", OK)
	h.world().Player.Location = "CELL"
	h.expect("WAIT", tuning.None+"\n", OK)
	h.world().PlaceInRoom(h.obj("SWORD"), "CELL")
	h.world().Player.Location = "PIT"
	h.expect("WAIT", "", OK)
}

func TestMeleeArmed(t *testing.T) {
	h := newHarness(t)
	tuning := h.world().Tuning
	h.world().Player.Location = "PIT"
	h.world().Give(h.obj("SWORD"))
	troll := h.obj("TROLL")
	troll.Set(structs.Fighting, true)
	if troll.Strength != tuning.Melee.Hits {
		t.Fatalf("got troll strength %v, want %v", troll.Strength, tuning.Melee.Hits)
	}
	h.expect("WAIT", tuning.Glow.Bright+"\n"+tuning.Melee.Glancing+"\n", OK)
	if got, want := h.world().Player.Strength, tuning.Strength-tuning.Melee.Damage; got != want {
		t.Errorf("got strength %v, want %v", got, want)
	}
	h.expect("WAIT", "The troll dies.\n", OK)
	if _, found := h.world().Object("TROLL"); found {
		t.Errorf("troll should be gone")
	}
	if !h.world().Flags.Get("TROLL-DEAD") {
		t.Errorf("death flag should be set")
	}
}

func TestMeleeUnarmed(t *testing.T) {
	h := newHarness(t)
	tuning := h.world().Tuning.Melee
	h.world().Player.Location = "PIT"
	h.obj("TROLL").Set(structs.Fighting, true)
	for turn := 1; turn < 5; turn++ {
		h.expect("WAIT", tuning.Glancing+"\n", OK)
	}
	h.expect("WAIT", tuning.Glancing+"\n"+tuning.Killed+"\n", Fatal)
	if h.engine.Running() {
		t.Errorf("game should have ended")
	}
	if got := h.world().Player.Strength; got != 0 {
		t.Errorf("got strength %v, want 0", got)
	}
}

func TestMeleeStagger(t *testing.T) {
	h := newHarness(t)
	tuning := &h.world().Tuning.Melee
	tuning.Stagger = 100
	h.world().Player.Location = "PIT"
	h.obj("TROLL").Set(structs.Fighting, true)
	h.expect("WAIT", tuning.Staggered+"\n", OK)
	if !h.world().Player.Staggered {
		t.Fatalf("player should be staggered")
	}
	before := h.world().Player.Strength
	h.expect("WAIT", "", OK)
	if h.world().Player.Staggered || h.world().Player.Strength != before {
		t.Errorf("staggered round should be skipped, got %+v", h.world().Player)
	}
	h.expect("WAIT", tuning.Staggered+"\n", OK)
}

func TestThief(t *testing.T) {
	h := newHarness(t)
	tuning := &h.world().Tuning.Thief
	tuning.RobChance = 100
	tuning.ItemChance = 100
	tuning.AppearChance = 100
	thief := h.obj("THIEF")
	h.world().PlaceInRoom(thief, "HALL")
	h.world().Give(h.obj("COIN"))

	h.expect("WAIT", tuning.Robbed+"\n", OK)
	for _, id := range []string{"LAMP", "COIN"} {
		if got := h.obj(id).Room; got != "LAIR" {
			t.Errorf("%v is in %q, want LAIR", id, got)
		}
	}
	if got := h.obj("LEAFLET").Room; got != "HALL" {
		t.Errorf("worthless leaflet should stay, is in %q", got)
	}
	if !thief.Offstage() {
		t.Errorf("thief should have left")
	}

	h.expect("WAIT", tuning.Appeared+"\n", OK)
	if thief.Room != "HALL" || !h.world().Flags.Get(tuning.Flag) {
		t.Errorf("thief should be here and seen, is in %q", thief.Room)
	}
	h.expect("WAIT", "", OK)
	if thief.Room != "HALL" {
		t.Errorf("thief with nothing to take should stay, is in %q", thief.Room)
	}

	h.world().Remove(thief)
	h.expect("WAIT", "", OK)
	if thief.Room != "HALL" {
		t.Errorf("thief should appear again, is in %q", thief.Room)
	}
}

func TestThiefStaysAwayFromHome(t *testing.T) {
	h := newHarness(t)
	h.world().Tuning.Thief.AppearChance = 100
	thief := h.obj("THIEF")
	h.world().Remove(thief)
	h.world().Player.Location = "LAIR"
	h.wait(3)
	if !thief.Offstage() {
		t.Errorf("thief should not appear at home, is in %q", thief.Room)
	}
}

func TestHazards(t *testing.T) {
	h := newHarness(t)
	h.world().Player.Location = "YARD"
	got := h.wait(4)
	want := []string{"", "Ring YARD!\n", "Water seeps in.\n", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outputs: %s", diff)
	}
	if !h.world().Flags.Get("FLOOD") || !h.world().Flags.Get("RANG") {
		t.Errorf("got flags %v", h.world().Flags.Names())
	}
}

func TestGust(t *testing.T) {
	h := newHarness(t)
	lamp := h.obj("LAMP")
	h.world().Give(lamp)
	lamp.Lit = true
	lamp.Fuel = 50
	h.world().Player.Location = "CELL"
	h.expect("WAIT", "A gust blows out the lamp.\n", OK)
	if lamp.Lit {
		t.Errorf("lamp should be out")
	}
}

func TestDeterminism(t *testing.T) {
	play := func() []string {
		h := newHarness(t, WithSeed(7))
		tuning := &h.world().Tuning.Thief
		tuning.RobChance = 50
		tuning.ItemChance = 50
		tuning.AppearChance = 50
		h.world().Give(h.obj("COIN"))
		h.world().Remove(h.obj("THIEF"))
		result := h.wait(30)
		return append(result, h.world().HeldIDs()...)
	}
	if diff := cmp.Diff(play(), play()); diff != "" {
		t.Errorf("same seed, different games: %s", diff)
	}
}

func TestSnapshotRestore(t *testing.T) {
	h := newHarness(t)
	c := h.engine.Context()
	c.Schedule(5, "ring", "HALL")
	h.expect("TAKE LAMP", "Taken.\n", OK)
	snap, err := h.engine.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	draw := func() []int {
		result := make([]int, 5)
		for idx := range result {
			result[idx] = c.Rand.IntN(1000)
		}
		return result
	}
	before := draw()
	h.expect("DROP LAMP", "Dropped.\n", OK)
	c.Schedule(1, "ring", "CELL")
	if err := h.engine.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, draw()); diff != "" {
		t.Errorf("random draws: %s", diff)
	}
	if diff := cmp.Diff(snap.Events, c.Events.Pending()); diff != "" {
		t.Errorf("events: %s", diff)
	}
	if !h.obj("LAMP").Held {
		t.Errorf("lamp should be held again")
	}
	if got := h.world().Player.Moves; got != 1 {
		t.Errorf("got %v moves, want 1", got)
	}
	h.wait(3)
	h.expect("WAIT", "Ring HALL!\n", OK)
}
