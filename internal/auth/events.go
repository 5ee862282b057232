package auth

import (
	"sync"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
)

type EventKind string

const (
	SignedIn  EventKind = "signed_in"
	SignedOut EventKind = "signed_out"
)

type Event struct {
	Kind    EventKind
	Method  string
	Session Session
}

// Events fans auth state changes out to subscribers, synchronously and in
// subscription order.
type Events struct {
	mu   sync.RWMutex
	subs []func(Event)
}

func NewEvents() *Events {
	return &Events{}
}

func (e *Events) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

func (e *Events) Publish(ev Event) {
	if e == nil {
		return
	}

	e.mu.RLock()
	subs := make([]func(Event), len(e.subs))
	copy(subs, e.subs)
	e.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// AuditSubscriber records auth events in the audit log.
func AuditSubscriber(d *audit.Dispatcher) func(Event) {
	return func(ev Event) {
		d.Dispatch(audit.Event{
			UserID:   ev.Session.UserID,
			Action:   string(ev.Kind),
			Entity:   "user",
			EntityID: ev.Session.UserID,
			Metadata: map[string]string{"method": ev.Method},
		})
	}
}

func MetricsSubscriber(m *metrics.Metrics) func(Event) {
	return func(ev Event) {
		m.AuthEvent(string(ev.Kind), ev.Method)
	}
}
