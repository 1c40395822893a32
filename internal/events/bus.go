package events

import (
	"fmt"
	"sort"
	"sync"
)

// EventListener represents an object that can handle effect events
type EventListener interface {
	HandleEvent(event *GameEvent) error
	Priority() int
}

// Bus is the interface for event bus implementations
type Bus interface {
	// Subscribe adds a listener for a specific event type
	Subscribe(eventType EventType, listener EventListener)

	// Unsubscribe removes a listener for a specific event type
	Unsubscribe(eventType EventType, listener EventListener)

	// Emit sends an event to all registered listeners
	Emit(event *GameEvent) error
}

// EventBus manages event listeners and dispatches events.
// A single bus may be shared by characters ticked in parallel.
type EventBus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventListener),
	}
}

// Subscribe adds a listener for specific event types
func (eb *EventBus) Subscribe(eventType EventType, listener EventListener) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.listeners[eventType] = append(eb.listeners[eventType], listener)
	sort.SliceStable(eb.listeners[eventType], func(i, j int) bool {
		return eb.listeners[eventType][i].Priority() < eb.listeners[eventType][j].Priority()
	})
}

// Unsubscribe removes a listener for specific event types
func (eb *EventBus) Unsubscribe(eventType EventType, listener EventListener) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	listeners := eb.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			eb.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			break
		}
	}
}

// Emit fires an event to all registered listeners in priority order
func (eb *EventBus) Emit(event *GameEvent) error {
	if event == nil {
		return fmt.Errorf("cannot emit nil event")
	}

	for _, listener := range eb.getListeners(event.Type) {
		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("error handling event %s: %w", event.Type, err)
		}
		if event.Cancelled {
			break
		}
	}

	return nil
}

// getListeners returns a copy of listeners for a specific event type
func (eb *EventBus) getListeners(eventType EventType) []EventListener {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	originalListeners := eb.listeners[eventType]
	if len(originalListeners) == 0 {
		return nil
	}

	listeners := make([]EventListener, len(originalListeners))
	copy(listeners, originalListeners)
	return listeners
}

// ListenerCount returns the number of listeners for a specific event type
func (eb *EventBus) ListenerCount(eventType EventType) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.listeners[eventType])
}
