package event

// Handler processes routed events
type Handler interface {
	// HandleEvent processes a single event, called synchronously during dispatch
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	// A nil slice registers the handler for every type
	EventTypes() []EventType
}

// HandlerFunc adapts a function into a wildcard Handler
type HandlerFunc func(ev GameEvent)

func (f HandlerFunc) HandleEvent(ev GameEvent) { f(ev) }
func (f HandlerFunc) EventTypes() []EventType  { return nil }

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch from the tick goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order, wildcards after typed handlers
type Router struct {
	handlers map[EventType][]Handler
	wildcard []Handler
	queue    *EventQueue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *EventQueue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	types := handler.EventTypes()
	if types == nil {
		r.wildcard = append(r.wildcard, handler)
		return
	}
	for _, t := range types {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Dispatch routes a single event without going through the queue
func (r *Router) Dispatch(ev GameEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
	for _, h := range r.wildcard {
		h.HandleEvent(ev)
	}
}

// DispatchAll consumes all pending events and routes to handlers in FIFO order
// Returns the number of events dispatched
func (r *Router) DispatchAll() int {
	return r.queue.Drain(r.Dispatch)
}

// HandlerCount returns the number of handlers registered for the given type, wildcards included
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t]) + len(r.wildcard)
}
