package sim

import (
	fx "github.com/robotalks/uart.go/pkg/framework"
)

// EventCaster provides a subscriber and implements
// listener to cast notifcations.
type EventCaster struct {
	listeners []EventListener
}

// SubscribeEvents implements EventSubscriber.
func (c *EventCaster) SubscribeEvents(ln EventListener) {
	c.listeners = append(c.listeners, ln)
}

// EventsHappened implements EventListener.
func (c *EventCaster) EventsHappened(cc fx.ControlContext, events ...Event) {
	for _, ln := range c.listeners {
		ln.EventsHappened(cc, events...)
	}
}
