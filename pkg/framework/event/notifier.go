// Package event provides change notifications and the shared metering
// tick that drives periodic reduction across meter instances.
package event

import (
	"sync"

	"github.com/justyntemme/metergo/pkg/framework/bus"
)

// Type identifies a notification kind.
type Type int

const (
	// ConfigurationChanged is emitted after a channel layout change has
	// been fully applied.
	ConfigurationChanged Type = iota
	// TypeChanged is emitted after the selected meter type mask changed.
	TypeChanged
)

// String returns the notification kind name.
func (t Type) String() string {
	switch t {
	case ConfigurationChanged:
		return "ConfigurationChanged"
	case TypeChanged:
		return "TypeChanged"
	default:
		return "Unknown"
	}
}

// Event is a notification payload. Layout is set for configuration
// changes, MeterType (the raw type mask) for type changes.
type Event struct {
	Type      Type
	Layout    bus.Count
	MeterType uint32
}

// Notifier broadcasts events to subscribers. Emission only ever happens
// from non-real-time paths (reconfiguration, type selection, reduction).
type Notifier struct {
	mu   sync.RWMutex
	subs map[int]func(Event)
	next int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[int]func(Event)),
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (n *Notifier) Subscribe(fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Emit delivers an event to all current subscribers, synchronously.
func (n *Notifier) Emit(ev Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, fn := range n.subs {
		fn(ev)
	}
}
