package link

import (
	"sync"

	fx "github.com/robotalks/uart.go/pkg/framework"
	"github.com/robotalks/uart.go/pkg/sim"
)

// Hub fans events out to listeners joining and leaving while
// the loop is running, e.g. one Pipe per network connection.
type Hub struct {
	lock      sync.RWMutex
	nextID    int
	listeners map[int]sim.EventListener
}

// Join adds a listener and returns the func to remove it.
func (h *Hub) Join(ln sim.EventListener) (leave func()) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.listeners == nil {
		h.listeners = make(map[int]sim.EventListener)
	}
	id := h.nextID
	h.nextID++
	h.listeners[id] = ln
	return func() {
		h.lock.Lock()
		delete(h.listeners, id)
		h.lock.Unlock()
	}
}

// Len is the number of listeners.
func (h *Hub) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.listeners)
}

// EventsHappened implements sim.EventListener.
func (h *Hub) EventsHappened(cc fx.ControlContext, events ...sim.Event) {
	h.lock.RLock()
	listeners := make([]sim.EventListener, 0, len(h.listeners))
	for _, ln := range h.listeners {
		listeners = append(listeners, ln)
	}
	h.lock.RUnlock()
	for _, ln := range listeners {
		ln.EventsHappened(cc, events...)
	}
}
