package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

const subscriberBuffer = 16

// Hub is an in-process change broker. Services publish an Event after every
// successful insert/update/delete on a watched table; subscribers receive
// the events their identity is allowed to see, under the same visibility
// policy the query scopes enforce.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
}

type Subscription struct {
	ID       uuid.UUID
	Identity *tenant.Identity
	Events   chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]*Subscription)}
}

// Subscribe registers a subscriber scoped to the given identity. The caller
// must Unsubscribe when done (panel teardown / connection close).
func (h *Hub) Subscribe(identity *tenant.Identity) *Subscription {
	sub := &Subscription{
		ID:       uuid.New(),
		Identity: identity,
		Events:   make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()

	return sub
}

func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()

	if ok {
		close(sub.Events)
	}
}

// Publish fans the event out to every subscriber allowed to see it. A
// subscriber whose buffer is full is skipped rather than blocking the
// publisher; the client reconciles on its next re-fetch anyway.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !visible(event, sub.Identity) {
			continue
		}
		select {
		case sub.Events <- event:
		default:
			slog.Warn("dropping realtime event for slow subscriber",
				"subscription_id", sub.ID, "table", event.Table)
		}
	}
}

// SubscriberCount is used by the health endpoint.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// visible mirrors the row-scope policy: messages go to their two parties;
// tasks and reports follow employee/manager/admin scope.
func visible(event Event, identity *tenant.Identity) bool {
	if event.Table == TableMessages {
		for _, id := range event.Recipients {
			if id == identity.UserID {
				return true
			}
		}
		return event.ActorID == identity.UserID
	}

	switch {
	case identity.IsAdmin():
		return identity.CompanyID != nil && event.CompanyID != nil &&
			*identity.CompanyID == *event.CompanyID
	case identity.IsManager():
		return identity.BranchID != nil && event.BranchID != nil &&
			*identity.BranchID == *event.BranchID
	default:
		for _, id := range event.Recipients {
			if id == identity.UserID {
				return true
			}
		}
		return false
	}
}
