package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

type EventPublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

// ChangePublisher turns store changes into change events.
type ChangePublisher struct {
	publisher EventPublisher
	now       func() time.Time
}

func NewChangePublisher(publisher EventPublisher) *ChangePublisher {
	return &ChangePublisher{publisher: publisher, now: time.Now}
}

func (p *ChangePublisher) Observe(ctx context.Context, change store.Change) error {
	event, err := NewChangeEvent(change, p.now())
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, event)
}

func NewChangeEvent(change store.Change, at time.Time) (domain.ChangeEvent, error) {
	event := domain.ChangeEvent{
		EventID:    uuid.NewString(),
		Collection: change.Collection,
		Op:         change.Op,
		EntityID:   change.ID,
		Timestamp:  at.UTC(),
	}
	if change.Entity != nil {
		entity, err := json.Marshal(change.Entity)
		if err != nil {
			return domain.ChangeEvent{}, fmt.Errorf("marshal %s %d: %w", change.Collection, change.ID, err)
		}
		event.Entity = entity
	}
	return event, nil
}
