package ecs

// EventType names a world event.
type EventType string

const (
	EventSpawnEffect   EventType = "spawn_effect"
	EventDownField     EventType = "down_field"
	EventEnemyDied     EventType = "enemy_died"
	EventPlayerDied    EventType = "player_died"
	EventPlayerRespawn EventType = "player_respawn"
)

// Event is a world event payload.
type Event struct {
	Type   EventType
	Source Entity
	Data   any
}

// EventQueue is a simple FIFO queue. Producers push during a frame and a
// single consumer drains.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns the events of type t, keeping the rest in
// order.
func (q *EventQueue) DrainType(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
