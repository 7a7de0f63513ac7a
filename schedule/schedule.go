// Package schedule keeps the one-shot events of a game, ordered by the turn
// they trigger on and, within a turn, by the order they were added.
package schedule

import (
	"github.com/zond/grue/heap"
)

// Event is a named callback due at a turn. Kind names the callback, Target the
// object or location it acts on.
type Event struct {
	Trigger int    `json:"trigger"`
	Seq     uint64 `json:"seq"`
	Kind    string `json:"kind"`
	Target  string `json:"target,omitempty"`
}

func (e Event) Less(o Event) bool {
	if e.Trigger == o.Trigger {
		return e.Seq < o.Seq
	}
	return e.Trigger < o.Trigger
}

type Queue struct {
	events *heap.Heap[Event]
	seq    uint64
}

func New() *Queue {
	return &Queue{
		events: heap.New(func(a, b Event) bool {
			return a.Less(b)
		}),
	}
}

// Add schedules an event for the trigger turn.
func (q *Queue) Add(trigger int, kind string, target string) Event {
	q.seq++
	ev := Event{
		Trigger: trigger,
		Seq:     q.seq,
		Kind:    kind,
		Target:  target,
	}
	q.events.Push(ev)
	return ev
}

// Due removes and returns every event triggering at or before turn, in firing order.
func (q *Queue) Due(turn int) []Event {
	return q.events.PopWhile(func(ev Event) bool {
		return ev.Trigger <= turn
	})
}

// Pending returns the waiting events in firing order.
func (q *Queue) Pending() []Event {
	return q.events.Sorted()
}

func (q *Queue) Len() int {
	return q.events.Size()
}

// Seq returns the last sequence number handed out.
func (q *Queue) Seq() uint64 {
	return q.seq
}

// Cancel removes the waiting events of the kind for the target, and returns how many there were.
func (q *Queue) Cancel(kind string, target string) int {
	kept := []Event{}
	removed := 0
	for _, ev := range q.events.Sorted() {
		if ev.Kind == kind && ev.Target == target {
			removed++
		} else {
			kept = append(kept, ev)
		}
	}
	if removed > 0 {
		q.events.Clear()
		for _, ev := range kept {
			q.events.Push(ev)
		}
	}
	return removed
}

// Restore replaces the waiting events. Sequence numbers are kept, and new
// events are numbered after both seq and the highest restored one.
func (q *Queue) Restore(events []Event, seq uint64) {
	q.events.Clear()
	q.seq = seq
	for _, ev := range events {
		q.events.Push(ev)
		if ev.Seq > q.seq {
			q.seq = ev.Seq
		}
	}
}
