//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/storefront-crm/internal/backup"
	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/messaging"
	"github.com/joao-fontenele/storefront-crm/internal/notify"
	"github.com/joao-fontenele/storefront-crm/internal/persistence"
	"github.com/joao-fontenele/storefront-crm/internal/settings"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func openKV(ctx context.Context, t *testing.T, cfg persistence.Config) persistence.KV {
	t.Helper()

	kv, closer, err := persistence.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to open %s storage: %v", cfg.Backend, err)
	}
	t.Cleanup(func() { _ = closer.Close() })
	return kv
}

// exerciseKV runs the same persistence checks against any backend.
func exerciseKV(ctx context.Context, t *testing.T, kv persistence.KV) {
	t.Run("missing key", func(t *testing.T) {
		if _, err := kv.Get(ctx, "products"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("store mutations survive a restart", func(t *testing.T) {
		data, err := persistence.LoadData(ctx, kv, logger)
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		s := store.New(data, store.WithObserver(persistence.NewSnapshotWriter(kv)))

		order := s.AddOrder(ctx, domain.Order{
			CustomerID: 1,
			Products: []domain.LineItem{
				{ProductID: 3, Name: "Xiaomi 14", Price: decimal.NewFromInt(54990), Quantity: 1},
			},
			Total: decimal.NewFromInt(54990),
		})
		s.DeleteProduct(ctx, 2)

		reloaded, err := persistence.LoadData(ctx, kv, logger)
		if err != nil {
			t.Fatalf("failed to reload: %v", err)
		}

		if order.ID != 4 || len(reloaded.Orders) != 4 {
			t.Fatalf("expected order 4 to be persisted, got id %d and %d orders", order.ID, len(reloaded.Orders))
		}
		if len(reloaded.Products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(reloaded.Products))
		}
		c := reloaded.Customers[0]
		if c.TotalOrders != 4 || !c.TotalSpent.Equal(decimal.NewFromInt(300960)) {
			t.Fatalf("expected customer 1 at 4 orders and 300960, got %d and %s", c.TotalOrders, c.TotalSpent)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := kv.Set(ctx, "orders", []byte(`[]`)); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		orders, err := persistence.Load[domain.Order](ctx, kv, "orders", store.SeedOrders(), logger)
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if len(orders) != 0 {
			t.Fatalf("expected the stored empty collection, got %d orders", len(orders))
		}
	})
}

func TestPostgresKV(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	connStr := SetupPostgres(ctx, t)
	kv := openKV(ctx, t, persistence.Config{Backend: persistence.BackendPostgres, PostgresURL: connStr})

	exerciseKV(ctx, t, kv)
}

func TestRedisKV(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	addr := SetupRedis(ctx, t)
	kv := openKV(ctx, t, persistence.Config{Backend: persistence.BackendRedis, RedisAddr: addr, KeyPrefix: "crm-"})

	exerciseKV(ctx, t, kv)
}

func TestBackupBetweenBackends(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg := openKV(ctx, t, persistence.Config{Backend: persistence.BackendPostgres, PostgresURL: SetupPostgres(ctx, t)})
	rd := openKV(ctx, t, persistence.Config{Backend: persistence.BackendRedis, RedisAddr: SetupRedis(ctx, t)})

	s := store.New(store.Seed(), store.WithObserver(persistence.NewSnapshotWriter(pg)))
	s.AddCustomer(ctx, domain.Customer{Name: "Olga Smirnova", Email: "olga@example.com"})
	s.UpdateProduct(ctx, 1, domain.ProductPatch{Stock: ptr(2)})

	doc, err := backup.Export(ctx, pg, logger)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}
	var buf bytes.Buffer
	if err := backup.Write(&buf, doc); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	if _, err := backup.Import(ctx, rd, &buf); err != nil {
		t.Fatalf("failed to import: %v", err)
	}

	want, _ := json.Marshal(s.Snapshot())
	data, err := persistence.LoadData(ctx, rd, logger)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	got, _ := json.Marshal(data)
	if !bytes.Equal(want, got) {
		t.Fatalf("imported data differs:\nwant %s\ngot  %s", want, got)
	}
}

type mailCapture struct {
	mu    sync.Mutex
	mails []notify.Mail
}

func (m *mailCapture) handler(w http.ResponseWriter, r *http.Request) {
	var mail notify.Mail
	if err := json.NewDecoder(r.Body).Decode(&mail); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.mails = append(m.mails, mail)
	m.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (m *mailCapture) get() []notify.Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Mail(nil), m.mails...)
}

func TestChangeEventsReachTheNotifier(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	brokers := SetupKafka(ctx, t)
	const topic = "crm.changes"

	producer := messaging.NewProducer(brokers, topic)
	defer func() { _ = producer.Close() }()

	kv := persistence.NewMemoryKV()
	s := store.New(store.Seed(),
		store.WithObserver(persistence.NewSnapshotWriter(kv)),
		store.WithObserver(messaging.NewChangePublisher(producer)),
	)

	s.UpdateProduct(ctx, 2, domain.ProductPatch{Stock: ptr(1)})
	s.AddOrder(ctx, s.Draft(store.OrderRequest{CustomerID: 2, Products: []store.LineRequest{{ProductID: 1, Quantity: 1}}}))

	capture := &mailCapture{}
	relayMux := http.NewServeMux()
	relayMux.HandleFunc("POST /send", capture.handler)
	relay := httptest.NewServer(relayMux)
	defer relay.Close()

	handler := notify.NewHandler(
		notify.NewRelaySender(relay.URL, relay.Client()),
		func(ctx context.Context) (settings.Settings, error) { return settings.Load(ctx, kv, logger) },
		logger,
	)

	consumer := messaging.NewConsumer(brokers, topic, "crm-notifier-test", logger, messaging.WithStartOffset(kafka.FirstOffset))
	defer func() { _ = consumer.Close() }()

	consumeCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- consumer.Consume(consumeCtx, handler.Handle) }()

	deadline := time.After(90 * time.Second)
	for len(capture.get()) < 2 {
		select {
		case err := <-done:
			t.Fatalf("consumer stopped early: %v", err)
		case <-deadline:
			t.Fatalf("expected 2 mails, got %d", len(capture.get()))
		case <-time.After(200 * time.Millisecond):
		}
	}
	stop()
	<-done

	subjects := map[string]string{}
	for _, m := range capture.get() {
		subjects[m.Subject] = m.To
	}
	for _, want := range []string{"Low stock: Samsung Galaxy S24", "New order #4"} {
		if subjects[want] != "admin@phonestore.com" {
			t.Fatalf("expected mail %q to admin@phonestore.com, got %v", want, subjects)
		}
	}
}

func ptr[T any](v T) *T { return &v }
