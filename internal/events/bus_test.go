package events_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gameplay-effects/internal/events"
)

type EventBusSuite struct {
	suite.Suite
	bus *events.EventBus
}

func TestEventBusSuite(t *testing.T) {
	suite.Run(t, new(EventBusSuite))
}

func (s *EventBusSuite) SetupTest() {
	s.bus = events.NewEventBus()
}

// mockListener implements EventListener for testing
type mockListener struct {
	priority int
	handler  func(event *events.GameEvent) error
	called   bool
	mu       sync.Mutex
}

func (m *mockListener) HandleEvent(event *events.GameEvent) error {
	m.mu.Lock()
	m.called = true
	m.mu.Unlock()

	if m.handler != nil {
		return m.handler(event)
	}
	return nil
}

func (m *mockListener) Priority() int {
	return m.priority
}

func (m *mockListener) wasCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

func (s *EventBusSuite) TestSubscribeAndEmit() {
	listener := &mockListener{priority: 10}
	s.bus.Subscribe(events.OnEffectApplied, listener)

	event := events.NewGameEvent(events.OnEffectApplied).
		WithContext(events.ContextEffectName, "Bless")
	err := s.bus.Emit(event)

	s.NoError(err)
	s.True(listener.wasCalled())
	s.Equal(1, s.bus.ListenerCount(events.OnEffectApplied))
	s.Equal(0, s.bus.ListenerCount(events.OnEffectExpired))
}

func (s *EventBusSuite) TestUnsubscribe() {
	listener := &mockListener{priority: 10}
	other := &mockListener{priority: 20}
	s.bus.Subscribe(events.OnEffectExpired, listener)
	s.bus.Subscribe(events.OnEffectExpired, other)
	s.bus.Unsubscribe(events.OnEffectExpired, listener)

	err := s.bus.Emit(events.NewGameEvent(events.OnEffectExpired))

	s.NoError(err)
	s.False(listener.wasCalled())
	s.True(other.wasCalled())
	s.Equal(1, s.bus.ListenerCount(events.OnEffectExpired))
}

func (s *EventBusSuite) TestPriorityOrdering() {
	var executionOrder []int
	record := func(p int) func(*events.GameEvent) error {
		return func(*events.GameEvent) error {
			executionOrder = append(executionOrder, p)
			return nil
		}
	}

	s.bus.Subscribe(events.OnPeriodicExecuted, &mockListener{priority: 30, handler: record(30)})
	s.bus.Subscribe(events.OnPeriodicExecuted, &mockListener{priority: 10, handler: record(10)})
	s.bus.Subscribe(events.OnPeriodicExecuted, &mockListener{priority: 20, handler: record(20)})

	s.NoError(s.bus.Emit(events.NewGameEvent(events.OnPeriodicExecuted)))
	s.Equal([]int{10, 20, 30}, executionOrder)
}

func (s *EventBusSuite) TestCancelStopsPropagation() {
	first := &mockListener{priority: 1, handler: func(e *events.GameEvent) error {
		e.Cancel()
		return nil
	}}
	second := &mockListener{priority: 2}
	s.bus.Subscribe(events.OnEffectRejected, first)
	s.bus.Subscribe(events.OnEffectRejected, second)

	event := events.NewGameEvent(events.OnEffectRejected)
	s.NoError(s.bus.Emit(event))
	s.True(event.IsCancelled())
	s.False(second.wasCalled())
}

func (s *EventBusSuite) TestListenerError() {
	s.bus.Subscribe(events.OnEffectRemoved, &mockListener{handler: func(*events.GameEvent) error {
		return errors.New("listener failed")
	}})

	err := s.bus.Emit(events.NewGameEvent(events.OnEffectRemoved))
	s.Error(err)
	s.Contains(err.Error(), "OnEffectRemoved")
}

func (s *EventBusSuite) TestEmitNil() {
	s.Error(s.bus.Emit(nil))
}

func (s *EventBusSuite) TestContextGetters() {
	event := events.NewGameEvent(events.OnEffectApplied).
		WithContext(events.ContextCharacterID, "hero").
		WithContext(events.ContextEffectLevel, 2.5).
		WithContext(events.ContextTurn, 3)

	id, ok := event.GetStringContext(events.ContextCharacterID)
	s.True(ok)
	s.Equal("hero", id)

	level, ok := event.GetFloatContext(events.ContextEffectLevel)
	s.True(ok)
	s.Equal(2.5, level)

	turn, ok := event.GetIntContext(events.ContextTurn)
	s.True(ok)
	s.Equal(3, turn)

	_, ok = event.GetIntContext(events.ContextCharacterID)
	s.False(ok)
	_, ok = event.GetStringContext(events.ContextEffectID)
	s.False(ok)
	_, ok = event.GetContext(events.ContextSourceID)
	s.False(ok)
}

func (s *EventBusSuite) TestEventTypeString() {
	s.Equal("OnEffectApplied", events.OnEffectApplied.String())
	s.Equal("OnTurnEnd", events.OnTurnEnd.String())
	s.Equal("Unknown", events.EventType(99).String())
}
