package utils

import (
	"sync"
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Handler func(event Event)

// EventBus is a fire-and-forget in-process bus. Publish never blocks:
// when the buffer is full the event is dropped, so nothing wired to the
// bus may depend on delivery for correctness.
type EventBus struct {
	subscribers map[string][]Handler
	events      chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]Handler),
		events:      make(chan Event, 100),
	}
}

func (eb *EventBus) Publish(event string, data interface{}) {
	e := Event{Event: event, Data: data}
	select {
	case eb.events <- e:
	default:
	}
}

func (eb *EventBus) Subscribe(event string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[event] = append(eb.subscribers[event], handler)
}

// Run dispatches published events to subscribers until the bus is closed.
// Intended to be started once from bootstrap in its own goroutine.
func (eb *EventBus) Run() {
	for e := range eb.events {
		eb.mu.RLock()
		handlers := append([]Handler(nil), eb.subscribers[e.Event]...)
		eb.mu.RUnlock()
		for _, h := range handlers {
			h(e)
		}
	}
}

func (eb *EventBus) Close() {
	close(eb.events)
}
