package structs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zond/grue/vocab"
)

const testWorld = `
tuning:
  start: HALL
  lamp:
    object: LAMP
flags: [GATE-OPEN]
locations:
  - id: HALL
    name: Hall
    description: A long hall.
    lit: true
    exits:
      - {dir: NORTH, to: CAVE}
      - {dir: EAST, to: YARD, flag: GATE-OPEN, message: The gate is closed.}
      - {dir: WEST, message: A wall.}
  - id: CAVE
    name: Cave
    description: A dark cave.
    exits:
      - {dir: SOUTH, to: HALL}
    forced:
      - {words: [ROCK, STONE], object: ROCK}
  - id: YARD
    name: Yard
    description: A yard.
    lit: true
    exits:
      - {dir: WEST, to: HALL}
objects:
  - id: LAMP
    names: [LANTERN]
    short: brass lamp
    bits: [visible, takeable]
    light: 1
    room: HALL
  - id: BOX
    short: wooden box
    bits: [visible, takeable, container]
    capacity: 20
    size: 10
    room: HALL
  - id: COIN
    short: gold coin
    bits: [visible, takeable]
    size: 1
    find_score: 5
    in: BOX
  - id: ROCK
    short: rock
    bits: [takeable]
    room: CAVE
  - id: OGRE
    short: ogre
    bits: [visible, villain]
    room: CAVE
`

func loadTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := LoadWorld(strings.NewReader(testWorld))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func ids(objs []*Object) []string {
	result := []string{}
	for _, obj := range objs {
		result = append(result, obj.ID)
	}
	return result
}

func TestLoadWorld(t *testing.T) {
	w := loadTestWorld(t)
	if w.Player.Location != "HALL" {
		t.Errorf("got start %q, want HALL", w.Player.Location)
	}
	if w.Player.Strength != 100 {
		t.Errorf("got strength %v, want 100", w.Player.Strength)
	}
	if w.Tuning.MaxLoad != 100 || w.Tuning.Lamp.Budget != 350 || w.Tuning.Lamp.Object != "LAMP" {
		t.Errorf("tuning defaults not kept: %+v", w.Tuning)
	}
	if !w.Flags.Get("GATE-OPEN") {
		t.Errorf("initial flag not set")
	}
	if ogre := w.Objects["OGRE"]; ogre.Strength != 2 {
		t.Errorf("got villain strength %v, want 2", ogre.Strength)
	}
	if !w.Locations["HALL"].Seen {
		t.Errorf("start location should be seen")
	}
	if diff := cmp.Diff([]string{"LAMP", "BOX"}, ids(w.Contents("HALL"))); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"HALL", "CAVE", "YARD"}, w.LocationOrder); diff != "" {
		t.Error(diff)
	}
}

func TestLoadWorldErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown field",
			content: "tuning: {start: A}\nlocations: [{id: A, colour: red}]",
			want:    "colour",
		},
		{
			name:    "unknown bit",
			content: "tuning: {start: A}\nlocations: [{id: A}]\nobjects: [{id: X, bits: [shiny]}]",
			want:    "shiny",
		},
		{
			name:    "missing start",
			content: "tuning: {start: B}\nlocations: [{id: A}]",
			want:    "start location",
		},
		{
			name:    "bad exit",
			content: "tuning: {start: A}\nlocations: [{id: A, exits: [{dir: NORTH, to: B}]}]",
			want:    "missing location",
		},
		{
			name:    "bad direction",
			content: "tuning: {start: A}\nlocations: [{id: A, exits: [{dir: SIDEWAYS}]}]",
			want:    "unknown direction",
		},
		{
			name:    "duplicate object",
			content: "tuning: {start: A}\nlocations: [{id: A}]\nobjects: [{id: X}, {id: X}]",
			want:    "defined twice",
		},
		{
			name:    "two places",
			content: "tuning: {start: A}\nlocations: [{id: A}]\nobjects: [{id: X, room: A, held: true}]",
			want:    "more than one place",
		},
		{
			name:    "not a container",
			content: "tuning: {start: A}\nlocations: [{id: A}]\nobjects: [{id: X, room: A}, {id: Y, in: X}]",
			want:    "isn't a container",
		},
		{
			name:    "unknown hazard",
			content: "tuning: {start: A}\nlocations: [{id: A, hazards: [{kind: flood}]}]",
			want:    "unknown kind",
		},
		{
			name:    "missing tuning object",
			content: "tuning: {start: A, glow: {object: SWORD}}\nlocations: [{id: A}]",
			want:    "SWORD",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadWorld(strings.NewReader(tc.content))
			if err == nil {
				t.Fatalf("got nil, want error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got %q, want it to contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	w := loadTestWorld(t)
	lamp := w.Objects["LAMP"]
	for _, tc := range []struct {
		word string
		want bool
	}{
		{word: "LAMP", want: true},
		{word: "LANTERN", want: true},
		{word: "BRASS", want: true},
		{word: "lantern", want: true},
		{word: "COIN", want: false},
	} {
		if got := lamp.Matches(vocab.Norm(tc.word)); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestVisibility(t *testing.T) {
	w := loadTestWorld(t)
	if diff := cmp.Diff([]string{"LAMP", "BOX"}, ids(w.Visible("HALL"))); diff != "" {
		t.Error(diff)
	}
	w.Objects["BOX"].Open = true
	if diff := cmp.Diff([]string{"LAMP", "BOX", "COIN"}, ids(w.Visible("HALL"))); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"OGRE"}, ids(w.Visible("CAVE"))); diff != "" {
		t.Error(diff)
	}
}

func TestIsLit(t *testing.T) {
	w := loadTestWorld(t)
	cave := w.Locations["CAVE"]
	if !w.IsLit(w.Locations["HALL"]) {
		t.Errorf("hall should be lit")
	}
	if w.IsLit(cave) {
		t.Errorf("cave should be dark")
	}
	lamp := w.Objects["LAMP"]
	lamp.Lit = true
	w.PlaceInRoom(lamp, "CAVE")
	if !w.IsLit(cave) {
		t.Errorf("cave should be lit by the lamp lying there")
	}
	w.Give(lamp)
	if w.IsLit(cave) {
		t.Errorf("cave should be dark while the lamp is held elsewhere")
	}
	w.Player.Location = "CAVE"
	if !w.IsLit(cave) {
		t.Errorf("cave should be lit by the held lamp")
	}
}

func TestPlacement(t *testing.T) {
	w := loadTestWorld(t)
	box := w.Objects["BOX"]
	lamp := w.Objects["LAMP"]
	w.Give(lamp)
	w.Give(box)
	if diff := cmp.Diff([]string{"LAMP", "BOX"}, w.HeldIDs()); diff != "" {
		t.Error(diff)
	}
	if got := w.Load(); got != 16 {
		t.Errorf("got load %v, want 16", got)
	}
	if got := w.RoomOf(w.Objects["COIN"]); got != "HALL" {
		t.Errorf("got %q, want HALL", got)
	}
	w.Remove(lamp)
	if !lamp.Offstage() || w.Holds("LAMP") {
		t.Errorf("lamp should be offstage")
	}
	w.Destroy("BOX")
	if _, found := w.Objects["COIN"]; found {
		t.Errorf("coin should be destroyed with its box")
	}
	if err := w.Validate(); err != nil {
		t.Error(err)
	}
}

func TestNeighbors(t *testing.T) {
	w := loadTestWorld(t)
	got := []string{}
	for _, loc := range w.Neighbors(w.Locations["HALL"]) {
		got = append(got, loc.ID)
	}
	if diff := cmp.Diff([]string{"CAVE", "YARD"}, got); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"OGRE"}, ids(w.Villains("CAVE"))); diff != "" {
		t.Error(diff)
	}
}

func TestForcedMatch(t *testing.T) {
	w := loadTestWorld(t)
	if id, found := w.Locations["CAVE"].ForcedMatch("STONE"); !found || id != "ROCK" {
		t.Errorf("got %q, %v, want ROCK, true", id, found)
	}
	if _, found := w.Locations["HALL"].ForcedMatch("STONE"); found {
		t.Errorf("hall forces nothing")
	}
}

func TestSnapshotApply(t *testing.T) {
	w := loadTestWorld(t)
	w.Give(w.Objects["LAMP"])
	w.Objects["LAMP"].Lit = true
	w.Objects["LAMP"].Fuel = 42
	w.Objects["BOX"].Open = true
	w.Player.Location = "CAVE"
	w.Player.Score = 12
	w.Player.Moves = 7
	w.Player.Brief = true
	w.Flags.Set("GATE-OPEN", false)
	w.Flags.Set("OGRE-DEAD", true)
	w.Locations["CAVE"].Seen = true
	w.Locations["YARD"].Munged = true
	w.Locations["YARD"].MungMessage = "Rubble."
	w.Destroy("OGRE")
	snap := w.Snapshot()

	fresh := loadTestWorld(t)
	if err := fresh.Apply(snap); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(snap, fresh.Snapshot()); diff != "" {
		t.Error(diff)
	}
	if _, found := fresh.Objects["OGRE"]; found {
		t.Errorf("ogre should stay destroyed")
	}
	if diff := cmp.Diff([]string{"OGRE-DEAD"}, fresh.Flags.Names()); diff != "" {
		t.Error(diff)
	}
}

func TestApplyMinimal(t *testing.T) {
	w := loadTestWorld(t)
	snap := &Snapshot{
		Location: "YARD",
		Score:    3,
		Turns:    9,
		Flags:    []string{"X"},
		Held:     []string{"LAMP"},
	}
	if err := w.Apply(snap); err != nil {
		t.Fatal(err)
	}
	if w.Player.Location != "YARD" || w.Player.Moves != 9 || !w.Holds("LAMP") {
		t.Errorf("got %+v", w.Player)
	}
	if len(w.Objects) != 5 {
		t.Errorf("got %v objects, want all 5 kept", len(w.Objects))
	}
	if err := w.Apply(&Snapshot{Location: "NOWHERE"}); err == nil {
		t.Errorf("got nil, want error")
	}
}

func TestApplyRevives(t *testing.T) {
	w := loadTestWorld(t)
	w.Objects["BOX"].Open = true
	snap := w.Snapshot()
	w.Destroy("BOX")
	w.Destroy("OGRE")
	if err := w.Apply(snap); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"BOX", "COIN", "OGRE"} {
		if _, found := w.Objects[id]; !found {
			t.Errorf("%v should be back", id)
		}
	}
	if got := w.RoomOf(w.Objects["COIN"]); got != "HALL" {
		t.Errorf("got %q, want HALL", got)
	}
	if diff := cmp.Diff(snap, w.Snapshot()); diff != "" {
		t.Error(diff)
	}
}

func TestApplyUndoesFailure(t *testing.T) {
	w := loadTestWorld(t)
	w.Destroy("OGRE")
	before := w.Snapshot()
	err := w.Apply(&Snapshot{
		Location: "YARD",
		Score:    5,
		Flags:    []string{"X"},
		Held:     []string{"NOTHING"},
	})
	if err == nil {
		t.Fatalf("got nil, want error")
	}
	if diff := cmp.Diff(before, w.Snapshot()); diff != "" {
		t.Error(diff)
	}
	if _, found := w.Objects["OGRE"]; found {
		t.Errorf("ogre should stay destroyed")
	}
}

func TestBitsNames(t *testing.T) {
	if diff := cmp.Diff([]string{"container", "visible"}, (Visible | Container).Names()); diff != "" {
		t.Error(diff)
	}
	obj := &Object{}
	obj.Set(Fighting, true)
	if !obj.Is(Fighting) {
		t.Errorf("fighting not set")
	}
	obj.Set(Fighting, false)
	if obj.Is(Fighting) {
		t.Errorf("fighting not cleared")
	}
}
