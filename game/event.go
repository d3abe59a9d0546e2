package game

import "github.com/mlange-42/ark/ecs"

// EventType classifies what happened during a frame
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeShotFired
	EventTypeProjectileHit
	EventTypeShipDestroyed
	EventTypeProjectileExpired
)

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeShotFired:
		return "shot_fired"
	case EventTypeProjectileHit:
		return "projectile_hit"
	case EventTypeShipDestroyed:
		return "ship_destroyed"
	case EventTypeProjectileExpired:
		return "projectile_expired"
	default:
		return "unknown"
	}
}

// Event is a single simulation occurrence. Subject is the ship for
// shots, hits and destructions and the projectile for expiry; Other is the
// projectile involved in a hit.
type Event struct {
	Type    EventType
	Frame   uint64
	Subject ecs.Entity
	Other   ecs.Entity
	Faction Faction
	Amount  float64
}

// EventLog collects the events of the current frame
type EventLog struct {
	events []Event
	frame  uint64
}

// NewEventLog creates an empty log
func NewEventLog() *EventLog {
	return &EventLog{events: make([]Event, 0, 32)}
}

// Begin clears the log for a new frame
func (l *EventLog) Begin(frame uint64) {
	l.events = l.events[:0]
	l.frame = frame
}

// Record appends an event stamped with the current frame
func (l *EventLog) Record(e Event) {
	if l == nil {
		return
	}
	e.Frame = l.frame
	l.events = append(l.events, e)
}

// Events returns the events recorded this frame. The slice is reused by the
// next Begin.
func (l *EventLog) Events() []Event {
	return l.events
}

// Count returns how many events of a type were recorded this frame
func (l *EventLog) Count(t EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
