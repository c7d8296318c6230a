package events

// Handler receives the events it declares, with the owner passed as ctx
type Handler[T any] interface {
	// HandleEvent runs on the dispatching goroutine; it must not block on the dispatcher
	HandleEvent(ctx T, event Event)

	// EventTypes lists the types routed to this handler
	EventTypes() []EventType
}

// Router fans queued host events out to handlers
//
//   - Handlers are registered while the owner is constructed and never removed
//   - A type may have several handlers; they run in registration order
//   - Events of a type nobody registered for are dropped on dispatch
type Router[T any] struct {
	byType [eventTypeCount][]Handler[T]
	queue  *Queue
}

// NewRouter creates a router draining queue; a nil queue supports Dispatch only
func NewRouter[T any](queue *Queue) *Router[T] {
	return &Router[T]{queue: queue}
}

// Register routes every type the handler declares to it
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		if t < 0 || t >= eventTypeCount {
			continue
		}
		r.byType[t] = append(r.byType[t], handler)
	}
}

// Dispatch routes ev now, without queueing
func (r *Router[T]) Dispatch(ctx T, ev Event) {
	if ev.Type < 0 || ev.Type >= eventTypeCount {
		return
	}
	for _, h := range r.byType[ev.Type] {
		h.HandleEvent(ctx, ev)
	}
}

// DispatchAll drains the queue in arrival order and returns how many events it took
func (r *Router[T]) DispatchAll(ctx T) int {
	if r.queue == nil {
		return 0
	}
	batch := r.queue.Consume()
	for i := range batch {
		r.Dispatch(ctx, batch[i])
	}
	return len(batch)
}

// HasHandlers reports whether any handler listens for t
func (r *Router[T]) HasHandlers(t EventType) bool {
	return r.HandlerCount(t) > 0
}

// HandlerCount returns how many handlers listen for t
func (r *Router[T]) HandlerCount(t EventType) int {
	if t < 0 || t >= eventTypeCount {
		return 0
	}
	return len(r.byType[t])
}
