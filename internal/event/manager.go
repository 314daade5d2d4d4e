// internal/event/manager.go
package event

import (
	"sync"

	"github.com/hollegjx/mycode-statusline/internal/logger"
)

// Handler receives dispatched events. The return value is reserved for
// stopping propagation and is currently ignored.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.Debugf("Event Manager: Handler subscribed to %v", eventType)
}

// SubscribeAll adds the handler to every listed type.
func (m *Manager) SubscribeAll(handler Handler, types ...Type) {
	for _, t := range types {
		m.Subscribe(t, handler)
	}
}

// Dispatch sends an event to all registered handlers for its type,
// synchronously and in subscription order.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	// Copy so a handler may subscribe during dispatch.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)
	m.mu.RUnlock()

	if len(handlersCopy) == 0 {
		return
	}

	logger.Debugf("Event Manager: Dispatching %v to %d handler(s)", eventType, len(handlersCopy))
	for _, handler := range handlersCopy {
		handler(event)
	}
}
