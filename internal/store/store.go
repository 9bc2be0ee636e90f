// Package store owns the product, customer and order collections, assigns
// their identifiers and keeps customer aggregates in step with order creation.
//
// Every mutation runs to completion, observers included, before the next one
// starts. Observers receive a copy of the whole mutated collection, which is
// what the persistence layer writes.
package store

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

// Data is a point-in-time copy of all three collections.
type Data struct {
	Products  []domain.Product  `json:"products"`
	Customers []domain.Customer `json:"customers"`
	Orders    []domain.Order    `json:"orders"`
}

// Change describes one applied mutation. Entity is nil for deletes; Snapshot
// holds the full collection after the change ([]domain.Product and so on).
type Change struct {
	Collection domain.Collection
	Op         domain.Op
	ID         int
	Entity     any
	Snapshot   any
}

type Observer interface {
	Observe(ctx context.Context, change Change) error
}

type ObserverFunc func(ctx context.Context, change Change) error

func (f ObserverFunc) Observe(ctx context.Context, change Change) error {
	return f(ctx, change)
}

type Option func(*Store)

func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithOrderReconciliation makes order updates and deletes adjust the owning
// customer's totalOrders and totalSpent. Without it only order creation does.
func WithOrderReconciliation() Option {
	return func(s *Store) {
		s.reconcile = true
	}
}

type Store struct {
	mu        sync.Mutex
	products  []domain.Product
	customers []domain.Customer
	orders    []domain.Order

	observers []Observer
	now       func() time.Time
	reconcile bool
	logger    *slog.Logger
}

func New(data Data, opts ...Option) *Store {
	s := &Store{
		products:  cloneProducts(data.Products),
		customers: append([]domain.Customer(nil), data.Customers...),
		orders:    cloneOrders(data.Orders),
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of every collection in insertion order.
func (s *Store) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Data{
		Products:  cloneProducts(s.products),
		Customers: append([]domain.Customer{}, s.customers...),
		Orders:    cloneOrders(s.orders),
	}
}

func (s *Store) notify(ctx context.Context, change Change) {
	for _, o := range s.observers {
		if err := o.Observe(ctx, change); err != nil {
			s.logger.Error("store observer failed",
				"error", err,
				"collection", change.Collection,
				"op", change.Op,
				"id", change.ID,
			)
		}
	}
}

func nextID[T any](items []T, id func(T) int) int {
	highest := 0
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest + 1
}

func indexOf[T any](items []T, id func(T) int, want int) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func productID(p domain.Product) int   { return p.ID }
func customerID(c domain.Customer) int { return c.ID }
func orderID(o domain.Order) int       { return o.ID }

func cloneProducts(in []domain.Product) []domain.Product {
	return append([]domain.Product{}, in...)
}

func cloneOrders(in []domain.Order) []domain.Order {
	out := make([]domain.Order, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}
