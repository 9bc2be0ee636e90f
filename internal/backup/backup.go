// Package backup exports every collection plus settings as one JSON
// document and imports such a document back into the key-value store.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/persistence"
	"github.com/joao-fontenele/storefront-crm/internal/settings"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

var ErrMalformed = errors.New("malformed backup document")

type Document struct {
	Products  []domain.Product  `json:"products"`
	Customers []domain.Customer `json:"customers"`
	Orders    []domain.Order    `json:"orders"`
	Settings  settings.Settings `json:"settings"`
}

func NewDocument(data store.Data, s settings.Settings) Document {
	doc := Document{
		Products:  data.Products,
		Customers: data.Customers,
		Orders:    data.Orders,
		Settings:  s,
	}
	if doc.Products == nil {
		doc.Products = []domain.Product{}
	}
	if doc.Customers == nil {
		doc.Customers = []domain.Customer{}
	}
	if doc.Orders == nil {
		doc.Orders = []domain.Order{}
	}
	return doc
}

// FileName is the suggested download name for a backup taken at now.
func FileName(now time.Time) string {
	return "phone-store-backup-" + now.Format("2006-01-02") + ".json"
}

func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Export reads the persisted state. Collections that were never saved
// export as the seed data the store would start from.
func Export(ctx context.Context, kv persistence.KV, logger *slog.Logger) (Document, error) {
	data, err := persistence.LoadData(ctx, kv, logger)
	if err != nil {
		return Document{}, fmt.Errorf("export: %w", err)
	}
	s, err := settings.Load(ctx, kv, logger)
	if err != nil {
		return Document{}, fmt.Errorf("export: %w", err)
	}
	return NewDocument(data, s), nil
}

// Import overwrites each collection present in the document. The whole
// document is decoded before anything is written, so a malformed document
// leaves the store untouched. It returns the keys that were written; the
// running store must be reloaded to see them.
func Import(ctx context.Context, kv persistence.KV, r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil || sections == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformed)
	}

	var writes []func() error
	var keys []string

	if v, ok := present(sections, string(domain.CollectionProducts)); ok {
		var products []domain.Product
		if err := json.Unmarshal(v, &products); err != nil {
			return nil, fmt.Errorf("%w: products: %v", ErrMalformed, err)
		}
		writes = append(writes, func() error {
			return persistence.Save(ctx, kv, string(domain.CollectionProducts), products)
		})
		keys = append(keys, string(domain.CollectionProducts))
	}

	if v, ok := present(sections, string(domain.CollectionCustomers)); ok {
		var customers []domain.Customer
		if err := json.Unmarshal(v, &customers); err != nil {
			return nil, fmt.Errorf("%w: customers: %v", ErrMalformed, err)
		}
		writes = append(writes, func() error {
			return persistence.Save(ctx, kv, string(domain.CollectionCustomers), customers)
		})
		keys = append(keys, string(domain.CollectionCustomers))
	}

	if v, ok := present(sections, string(domain.CollectionOrders)); ok {
		var orders []domain.Order
		if err := json.Unmarshal(v, &orders); err != nil {
			return nil, fmt.Errorf("%w: orders: %v", ErrMalformed, err)
		}
		writes = append(writes, func() error {
			return persistence.Save(ctx, kv, string(domain.CollectionOrders), orders)
		})
		keys = append(keys, string(domain.CollectionOrders))
	}

	if v, ok := present(sections, settings.Key); ok {
		s, err := settings.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		writes = append(writes, func() error {
			return settings.Save(ctx, kv, s)
		})
		keys = append(keys, settings.Key)
	}

	for _, write := range writes {
		if err := write(); err != nil {
			return nil, fmt.Errorf("import: %w", err)
		}
	}
	return keys, nil
}

// present treats a missing key and an explicit null the same way.
func present(sections map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := sections[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}
