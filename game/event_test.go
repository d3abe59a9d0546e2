package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventLogPerFrame(t *testing.T) {
	log := NewEventLog()
	log.Begin(3)
	log.Record(Event{Type: EventTypeShotFired})
	log.Record(Event{Type: EventTypeShotFired})
	log.Record(Event{Type: EventTypeProjectileHit})

	assert.Len(t, log.Events(), 3)
	assert.Equal(t, uint64(3), log.Events()[0].Frame)
	assert.Equal(t, 2, log.Count(EventTypeShotFired))

	log.Begin(4)
	assert.Empty(t, log.Events())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "ship_destroyed", EventTypeShipDestroyed.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestNilEventLogRecordIsNoop(t *testing.T) {
	var log *EventLog
	assert.NotPanics(t, func() { log.Record(Event{Type: EventTypeShotFired}) })
}
