package structs

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/zond/grue/vocab"
)

// World is the single mutable game state shared by every component of a session.
type World struct {
	Tuning    Tuning
	Locations map[string]*Location
	Objects   map[string]*Object
	// LocationOrder and ObjectOrder keep the content file order.
	LocationOrder []string
	ObjectOrder   []string
	Player        Player
	Flags         Flags
	// Placed is the last placement sequence number handed out.
	Placed uint64

	// gone holds destroyed objects, so that restoring a snapshot can bring them back.
	gone map[string]*Object
}

func (w *World) Location(id string) (*Location, bool) {
	loc, found := w.Locations[id]
	return loc, found
}

func (w *World) Object(id string) (*Object, bool) {
	obj, found := w.Objects[id]
	return obj, found
}

// Here returns the location of the player.
func (w *World) Here() *Location {
	return w.Locations[w.Player.Location]
}

func (w *World) sorted(pred func(*Object) bool) []*Object {
	result := []*Object{}
	for _, obj := range w.Objects {
		if pred(obj) {
			result = append(result, obj)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order == result[j].Order {
			return result[i].ID < result[j].ID
		}
		return result[i].Order < result[j].Order
	})
	return result
}

// Contents returns the objects lying directly in the location, in placement order.
func (w *World) Contents(loc string) []*Object {
	return w.sorted(func(obj *Object) bool {
		return obj.Room == loc
	})
}

// Inside returns the objects directly inside the container, in placement order.
func (w *World) Inside(container string) []*Object {
	return w.sorted(func(obj *Object) bool {
		return obj.In == container
	})
}

// Held returns the objects the player holds, in placement order.
func (w *World) Held() []*Object {
	return w.sorted(func(obj *Object) bool {
		return obj.Held
	})
}

// HeldIDs returns the ids of the objects the player holds, in placement order.
func (w *World) HeldIDs() []string {
	held := w.Held()
	result := make([]string, len(held))
	for idx, obj := range held {
		result[idx] = obj.ID
	}
	return result
}

func (w *World) Holds(id string) bool {
	obj, found := w.Objects[id]
	return found && obj.Held
}

// Load returns the total size of what the player carries, containers included.
func (w *World) Load() int {
	total := 0
	for _, obj := range w.Held() {
		total += w.Weight(obj)
	}
	return total
}

// Weight returns the size of the object and everything inside it.
func (w *World) Weight(obj *Object) int {
	total := obj.SizeOrDefault()
	for _, inner := range w.Inside(obj.ID) {
		total += w.Weight(inner)
	}
	return total
}

// RoomOf returns the location the object is in, following containers outward.
// Held objects are where the player is.
func (w *World) RoomOf(obj *Object) string {
	seen := map[string]bool{}
	for obj != nil && !seen[obj.ID] {
		seen[obj.ID] = true
		switch {
		case obj.Held:
			return w.Player.Location
		case obj.Room != "":
			return obj.Room
		case obj.In != "":
			obj = w.Objects[obj.In]
		default:
			return ""
		}
	}
	return ""
}

func (w *World) place(obj *Object) {
	obj.Room = ""
	obj.In = ""
	obj.Held = false
	w.Placed++
	obj.Order = w.Placed
}

// Remove takes the object out of the world, leaving it offstage.
func (w *World) Remove(obj *Object) {
	obj.Room = ""
	obj.In = ""
	obj.Held = false
}

func (w *World) PlaceInRoom(obj *Object, loc string) {
	w.place(obj)
	obj.Room = loc
}

func (w *World) PlaceIn(obj *Object, container string) {
	w.place(obj)
	obj.In = container
}

// Give puts the object in the player's hands.
func (w *World) Give(obj *Object) {
	w.place(obj)
	obj.Held = true
}

// Destroy deletes the object and everything inside it from the world.
func (w *World) Destroy(id string) {
	for _, inner := range w.Inside(id) {
		w.Destroy(inner.ID)
	}
	w.forget(id)
}

func (w *World) forget(id string) {
	obj, found := w.Objects[id]
	if !found {
		return
	}
	w.Remove(obj)
	if w.gone == nil {
		w.gone = map[string]*Object{}
	}
	w.gone[id] = obj
	delete(w.Objects, id)
}

// revive puts a destroyed object back in the world, offstage.
func (w *World) revive(id string) {
	if obj, found := w.gone[id]; found {
		delete(w.gone, id)
		w.Objects[id] = obj
	}
}

// Visible returns the objects of the location the player can see when it is lit:
// visible objects lying there and the visible contents of accessible containers among them.
func (w *World) Visible(loc string) []*Object {
	result := []*Object{}
	for _, obj := range w.Contents(loc) {
		if obj.Is(Visible) {
			result = append(result, obj)
		}
		result = append(result, w.visibleInside(obj)...)
	}
	return result
}

func (w *World) visibleInside(container *Object) []*Object {
	result := []*Object{}
	if !container.Accessible() {
		return result
	}
	for _, obj := range w.Inside(container.ID) {
		if obj.Is(Visible) {
			result = append(result, obj)
			result = append(result, w.visibleInside(obj)...)
		}
	}
	return result
}

// Reachable returns the held objects and their accessible contents.
func (w *World) Reachable() []*Object {
	result := []*Object{}
	for _, obj := range w.Held() {
		result = append(result, obj)
		result = append(result, w.visibleInside(obj)...)
	}
	return result
}

// IsLit reports whether the location is lit, by itself or by a light source present.
func (w *World) IsLit(loc *Location) bool {
	if loc == nil {
		return false
	}
	if loc.Lit {
		return true
	}
	if loc.ID == w.Player.Location {
		for _, obj := range w.Reachable() {
			if obj.Emitting() {
				return true
			}
		}
	}
	for _, obj := range w.Contents(loc.ID) {
		if obj.Emitting() {
			return true
		}
		for _, inner := range w.visibleInside(obj) {
			if inner.Emitting() {
				return true
			}
		}
	}
	return false
}

// Neighbors returns the distinct locations one exit away, in exit order.
func (w *World) Neighbors(loc *Location) []*Location {
	result := []*Location{}
	seen := map[string]bool{loc.ID: true}
	for _, exit := range loc.Exits {
		if exit.To == "" || seen[exit.To] {
			continue
		}
		seen[exit.To] = true
		if neighbor, found := w.Locations[exit.To]; found {
			result = append(result, neighbor)
		}
	}
	return result
}

// Villains returns the villains lying in the location.
func (w *World) Villains(loc string) []*Object {
	return w.sorted(func(obj *Object) bool {
		return obj.Room == loc && obj.Is(Villain)
	})
}

// Validate checks that every reference in the world points somewhere.
func (w *World) Validate() error {
	if _, found := w.Locations[w.Player.Location]; !found {
		return errors.Errorf("start location %q doesn't exist", w.Player.Location)
	}
	for _, id := range w.LocationOrder {
		loc := w.Locations[id]
		for _, exit := range loc.Exits {
			if dir, found := vocab.Direction(vocab.Norm(exit.Direction)); !found || dir != exit.Direction {
				return errors.Errorf("location %q has an exit in unknown direction %q", id, exit.Direction)
			}
			if exit.To != "" {
				if _, found := w.Locations[exit.To]; !found {
					return errors.Errorf("location %q exit %v leads to missing location %q", id, exit.Direction, exit.To)
				}
			}
		}
		for _, hazard := range loc.Hazards {
			switch hazard.Kind {
			case Leak, Schedule:
			case Gust:
				if _, found := w.Objects[hazard.Object]; !found {
					return errors.Errorf("location %q gust hazard blows out missing object %q", id, hazard.Object)
				}
			default:
				return errors.Errorf("location %q has hazard of unknown kind %q", id, hazard.Kind)
			}
		}
		for _, forced := range loc.Forced {
			if _, found := w.Objects[forced.Object]; !found {
				return errors.Errorf("location %q forces missing object %q", id, forced.Object)
			}
		}
	}
	for _, ref := range []string{w.Tuning.Lamp.Object, w.Tuning.Glow.Object, w.Tuning.Thief.Object} {
		if ref == "" {
			continue
		}
		if _, found := w.Objects[ref]; !found {
			return errors.Errorf("tuning refers to missing object %q", ref)
		}
	}
	if home := w.Tuning.Thief.Home; home != "" {
		if _, found := w.Locations[home]; !found {
			return errors.Errorf("tuning refers to missing thief home %q", home)
		}
	}
	return w.validatePlacements()
}

// validatePlacements checks that every object is in at most one existing place.
// Objects may have been destroyed, so references to them are not checked.
func (w *World) validatePlacements() error {
	if _, found := w.Locations[w.Player.Location]; !found {
		return errors.Errorf("player location %q doesn't exist", w.Player.Location)
	}
	for _, id := range w.ObjectOrder {
		obj, found := w.Objects[id]
		if !found {
			continue
		}
		placements := 0
		if obj.Room != "" {
			placements++
			if _, found := w.Locations[obj.Room]; !found {
				return errors.Errorf("object %q lies in missing location %q", id, obj.Room)
			}
		}
		if obj.In != "" {
			placements++
			container, found := w.Objects[obj.In]
			if !found {
				return errors.Errorf("object %q lies in missing container %q", id, obj.In)
			}
			if !container.Is(Container) {
				return errors.Errorf("object %q lies in %q, which isn't a container", id, obj.In)
			}
		}
		if obj.Held {
			placements++
		}
		if placements > 1 {
			return errors.Errorf("object %q is in more than one place", id)
		}
		seen := map[string]bool{}
		for outer := obj; outer != nil && outer.In != ""; outer = w.Objects[outer.In] {
			if seen[outer.ID] {
				return errors.Errorf("object %q is inside itself", id)
			}
			seen[outer.ID] = true
		}
	}
	return nil
}
