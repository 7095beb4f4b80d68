package services

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/logger"
	"github.com/shubhraaj/sitecms/internal/metrics"
)

// Notifier broadcasts a parameterless "content changed" signal.
//
// Listeners run synchronously on the notifying goroutine, in registration
// order. Signals are not queued or replayed: a listener registered after a
// Notify call does not see it. Listeners re-read state themselves.
type Notifier struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []listenerEntry
	log       zerolog.Logger
}

type listenerEntry struct {
	id uint64
	fn func()
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{log: logger.WithComponent("notifier")}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (n *Notifier) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listenerEntry{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, l := range n.listeners {
		if l.id == id {
			n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Notify invokes every registered listener.
// The listener set is captured first, so listeners may subscribe or
// unsubscribe while being notified. A panicking listener is logged and
// does not stop the rest.
func (n *Notifier) Notify() {
	n.mu.RLock()
	snapshot := make([]listenerEntry, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.RUnlock()

	metrics.NotificationsTotal.Inc()
	for _, l := range snapshot {
		n.invoke(l.fn)
	}
}

func (n *Notifier) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Interface("panic", r).Msg("change listener panicked")
		}
	}()
	fn()
}
