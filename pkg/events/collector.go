package events

// EventCollector accumulates events recorded during an aggregate's state
// transitions. Aggregates embed it and expose ClearEvents via their own
// DomainEvents accessor.
type EventCollector struct {
	events []DomainEvent
}

// Record appends an event.
func (c *EventCollector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Events returns the recorded events without draining them.
func (c *EventCollector) Events() []DomainEvent {
	return c.events
}

// ClearEvents drains the collector, returning everything recorded so far.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
