package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

// Load returns the collection saved under key. A missing or undecodable
// value yields seed instead; only backend failures are returned as errors.
func Load[T any](ctx context.Context, kv KV, key string, seed []T, logger *slog.Logger) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		logger.Debug("no stored collection, using seed", "key", key)
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		logger.Warn("stored collection unreadable, using seed", "key", key, "error", err)
		return seed, nil
	}
	return items, nil
}

func Save[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadData loads all three collections, each falling back to its own seed.
func LoadData(ctx context.Context, kv KV, logger *slog.Logger) (store.Data, error) {
	var (
		data store.Data
		err  error
	)
	if data.Products, err = Load(ctx, kv, string(domain.CollectionProducts), store.SeedProducts(), logger); err != nil {
		return store.Data{}, err
	}
	if data.Customers, err = Load(ctx, kv, string(domain.CollectionCustomers), store.SeedCustomers(), logger); err != nil {
		return store.Data{}, err
	}
	if data.Orders, err = Load(ctx, kv, string(domain.CollectionOrders), store.SeedOrders(), logger); err != nil {
		return store.Data{}, err
	}
	return data, nil
}

// SaveData overwrites all three collections.
func SaveData(ctx context.Context, kv KV, data store.Data) error {
	if err := Save(ctx, kv, string(domain.CollectionProducts), data.Products); err != nil {
		return err
	}
	if err := Save(ctx, kv, string(domain.CollectionCustomers), data.Customers); err != nil {
		return err
	}
	return Save(ctx, kv, string(domain.CollectionOrders), data.Orders)
}

// SnapshotWriter is a store.Observer that writes the mutated collection
// after every change.
type SnapshotWriter struct {
	kv KV
}

func NewSnapshotWriter(kv KV) *SnapshotWriter {
	return &SnapshotWriter{kv: kv}
}

func (w *SnapshotWriter) Observe(ctx context.Context, change store.Change) error {
	key := string(change.Collection)
	switch snapshot := change.Snapshot.(type) {
	case []domain.Product:
		return Save(ctx, w.kv, key, snapshot)
	case []domain.Customer:
		return Save(ctx, w.kv, key, snapshot)
	case []domain.Order:
		return Save(ctx, w.kv, key, snapshot)
	}
	return fmt.Errorf("unexpected snapshot %T for %s", change.Snapshot, key)
}
