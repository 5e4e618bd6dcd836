package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// Group is a subscription key: the kitchen-wide group or one table's group.
type Group string

// GroupKitchen receives every order event.
const GroupKitchen Group = "kitchen"

// TableGroup returns the subscription group for one table.
func TableGroup(table string) Group {
	return Group("table:" + table)
}

// Conn is one subscriber connection handle. Send must not block forever;
// transports enforce their own write deadlines.
type Conn interface {
	Send(event model.Event) error
}

// EventSink receives every published event regardless of group routing,
// e.g. an audit stream. Failures are logged, never propagated.
type EventSink interface {
	Record(ctx context.Context, event model.Event) error
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Record(context.Context, model.Event) error { return nil }

// Hub is the subscription registry plus an asynchronous dispatcher.
// Delivery is best-effort and at-most-once: there is no persistence or
// replay, a subscriber that misses an event resynchronizes by polling.
// Publish runs outside the mutation's consistency boundary and never fails
// the command that produced the event.
type Hub struct {
	mu     sync.RWMutex
	groups map[Group]map[string]Conn

	events chan model.Event
	sink   EventSink
	logger *slog.Logger

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHub constructs hub with the given dispatch buffer.
func NewHub(buffer int, sink EventSink, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Hub{
		groups: make(map[Group]map[string]Conn),
		events: make(chan model.Event, buffer),
		sink:   sink,
		logger: logger,
	}
}

// Subscribe adds the connection to a group.
func (h *Hub) Subscribe(connID string, group Group, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[group]
	if !ok {
		members = make(map[string]Conn)
		h.groups[group] = members
	}
	members[connID] = conn
}

// Unsubscribe removes the connection from a group.
func (h *Hub) Unsubscribe(connID string, group Group) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(connID, group)
}

// Drop removes the connection from every group, used on disconnect.
func (h *Hub) Drop(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for group := range h.groups {
		h.removeLocked(connID, group)
	}
}

func (h *Hub) removeLocked(connID string, group Group) {
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

// Publish enqueues the event for dispatch. It never blocks: when the
// buffer is full the event is dropped and the drop is logged.
func (h *Hub) Publish(event model.Event) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn("broadcast buffer full, event dropped",
			slog.String("kind", string(event.Kind)),
			slog.Int64("order", event.Order.ID),
		)
	}
}

// Start launches the dispatch loop.
func (h *Hub) Start(ctx context.Context) {
	h.runMu.Lock()
	defer h.runMu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	h.wg.Add(1)
	go h.dispatch(runCtx)
}

// Stop cancels the dispatcher and waits for it to exit. Events still
// sitting in the buffer are discarded, delivery is at-most-once.
func (h *Hub) Stop() {
	h.runMu.Lock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.runMu.Unlock()

	h.wg.Wait()
}

func (h *Hub) dispatch(ctx context.Context) {
	defer h.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-h.events:
			h.deliver(ctx, event)
		}
	}
}

// routeGroups implements the routing rule: creation events go to the
// kitchen group only, transition events to the kitchen group and the
// order's table group. Payment facts reach the sink but no push group.
func routeGroups(event model.Event) []Group {
	switch event.Kind {
	case model.EventOrderCreated:
		return []Group{GroupKitchen}
	case model.EventOrderTransitioned:
		return []Group{GroupKitchen, TableGroup(event.Order.Table)}
	default:
		return nil
	}
}

func (h *Hub) deliver(ctx context.Context, event model.Event) {
	for _, group := range routeGroups(event) {
		for connID, conn := range h.snapshotGroup(group) {
			if err := conn.Send(event); err != nil {
				h.logger.Warn("broadcast delivery failed, dropping subscriber",
					slog.String("group", string(group)),
					slog.String("conn", connID),
					slog.String("error", err.Error()),
				)
				h.Drop(connID)
			}
		}
	}

	if err := h.sink.Record(ctx, event); err != nil {
		h.logger.Warn("audit sink record failed",
			slog.String("kind", string(event.Kind)),
			slog.String("error", err.Error()),
		)
	}
}

func (h *Hub) snapshotGroup(group Group) map[string]Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.groups[group]
	if len(members) == 0 {
		return nil
	}
	copied := make(map[string]Conn, len(members))
	for id, conn := range members {
		copied[id] = conn
	}
	return copied
}
