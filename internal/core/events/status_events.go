package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const EventTypeStatusChanged = "status.changed"

// Entity types carried by StatusChangedEvent.
const (
	EntityApplication     = "application_form"
	EntityResume          = "resume_deposit"
	EntityContractRenewal = "contract_renewal"
)

type StatusChangedEvent struct {
	BaseEvent
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	ActorID    int64  `json:"actor_id,omitempty"`
}

func NewStatusChangedEvent(entityType string, entityID int64, from, to string, actorID int64) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entity_type": entityType,
				"entity_id":   entityID,
				"from":        from,
				"to":          to,
				"actor_id":    actorID,
			},
		},
		EntityType: entityType,
		EntityID:   entityID,
		From:       from,
		To:         to,
		ActorID:    actorID,
	}
}

// Publisher is what services depend on; *EventBus satisfies it.
type Publisher interface {
	PublishSync(ctx context.Context, event Event) error
}

// SubscribeAudit writes one audit line per status change.
func SubscribeAudit(bus *EventBus, logger *slog.Logger) {
	bus.Subscribe(EventTypeStatusChanged, func(ctx context.Context, event Event) error {
		e, ok := event.(*StatusChangedEvent)
		if !ok {
			return nil
		}
		logger.InfoContext(ctx, "audit: status changed",
			"event_id", e.ID,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
			"from", e.From,
			"to", e.To,
			"actor_id", e.ActorID)
		return nil
	})
}

// Recorder collects published events. Handy in tests and when no bus is wired.
type Recorder struct {
	Events []Event
}

func (r *Recorder) PublishSync(_ context.Context, event Event) error {
	r.Events = append(r.Events, event)
	return nil
}
