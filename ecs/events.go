package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventQueue is a simple FIFO queue. Events pushed during a tick are visible
// to later systems in the same tick and are discarded when the tick ends.
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

// Peek returns the pending events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// OfType returns pending events with the given type.
func (q *EventQueue) OfType(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
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

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
