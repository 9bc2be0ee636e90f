package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

type recordingPublisher struct {
	events []domain.ChangeEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event domain.ChangeEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func TestHeaderCarrier(t *testing.T) {
	msg := kafka.Message{}
	c := headerCarrier{msg: &msg}

	c.Set("traceparent", "a")
	c.Set("tracestate", "b")
	c.Set("traceparent", "c")

	assert.Equal(t, "c", c.Get("traceparent"))
	assert.Equal(t, "", c.Get("baggage"))
	assert.Equal(t, []string{"traceparent", "tracestate"}, c.Keys())
	assert.Len(t, msg.Headers, 2)
}

func TestEventKey(t *testing.T) {
	key := EventKey(domain.ChangeEvent{Collection: domain.CollectionOrders, EntityID: 12})
	assert.Equal(t, "orders:12", key)
}

func TestChangePublisher(t *testing.T) {
	ctx := context.Background()
	rec := &recordingPublisher{}
	at := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	pub := NewChangePublisher(rec)
	pub.now = func() time.Time { return at }

	s := store.New(store.Seed(), store.WithObserver(pub))
	s.AddOrder(ctx, domain.Order{CustomerID: 2, Total: decimal.NewFromInt(100)})
	s.DeleteProduct(ctx, 1)

	require.Len(t, rec.events, 3)

	t.Run("order add then customer credit", func(t *testing.T) {
		assert.Equal(t, domain.CollectionOrders, rec.events[0].Collection)
		assert.Equal(t, domain.OpAdd, rec.events[0].Op)
		assert.Equal(t, 4, rec.events[0].EntityID)
		assert.Equal(t, at, rec.events[0].Timestamp)

		var order domain.Order
		require.NoError(t, json.Unmarshal(rec.events[0].Entity, &order))
		assert.Equal(t, "Maria Sidorova", order.CustomerName)

		assert.Equal(t, domain.CollectionCustomers, rec.events[1].Collection)
		assert.Equal(t, domain.OpUpdate, rec.events[1].Op)
		assert.Equal(t, 2, rec.events[1].EntityID)
	})

	t.Run("delete carries no entity", func(t *testing.T) {
		last := rec.events[2]
		assert.Equal(t, domain.OpDelete, last.Op)
		assert.Empty(t, last.Entity)
	})

	t.Run("event ids are unique uuids", func(t *testing.T) {
		seen := map[string]bool{}
		for _, e := range rec.events {
			_, err := uuid.Parse(e.EventID)
			require.NoError(t, err)
			assert.False(t, seen[e.EventID])
			seen[e.EventID] = true
		}
	})
}

func TestChangePublisher_ErrorDoesNotUndoMutation(t *testing.T) {
	ctx := context.Background()
	rec := &recordingPublisher{err: errors.New("broker down")}
	s := store.New(store.Seed(), store.WithObserver(NewChangePublisher(rec)))

	p := s.AddProduct(ctx, domain.Product{Name: "Pixel 8"})

	got, ok := s.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Pixel 8", got.Name)
	assert.Len(t, rec.events, 1)
}
