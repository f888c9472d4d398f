package ecs

import "github.com/milk9111/evescroller/common"

// EventKind names a gameplay signal raised during a frame.
type EventKind string

const (
	EventJumped        EventKind = "jumped"
	EventLanded        EventKind = "landed"
	EventJumpCut       EventKind = "jump_cut"
	EventMaxSpeed      EventKind = "max_speed"
	EventFlipped       EventKind = "flipped"
	EventRespawned     EventKind = "respawned"
	EventCheckpoint    EventKind = "checkpoint"
	EventCollected     EventKind = "collected"
	EventTuningSwapped EventKind = "tuning_swapped"
)

// Event is one signal. Value carries the magnitude where there is one, for
// example the impact speed of a landing.
type Event struct {
	Kind     EventKind
	Entity   Entity
	Value    float64
	Position common.Vec2
}

// EventQueue collects the events of one frame. Every frame-phase reader
// sees all of them; the scheduler clears the queue when the frame ends.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	q.items = append(q.items, evt)
}

// All returns the events raised so far this frame.
func (q *EventQueue) All() []Event {
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	q.items = q.items[:0]
}
