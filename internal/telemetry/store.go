package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/storefront-crm/internal/analytics"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

// StoreMetrics reports collection sizes and revenue as gauges read at
// collection time, and counts mutations as a store observer.
type StoreMetrics struct {
	mutations otelmetric.Int64Counter
}

// NewStoreMetrics registers the gauges against snapshot, which is called on
// every collection.
func NewStoreMetrics(meter otelmetric.Meter, snapshot func() store.Data) (*StoreMetrics, error) {
	mutations, err := meter.Int64Counter("crm.store.mutations",
		otelmetric.WithDescription("Applied store mutations"),
	)
	if err != nil {
		return nil, err
	}

	revenue, err := meter.Float64ObservableGauge("crm.revenue.total",
		otelmetric.WithDescription("Sum of all order totals"),
	)
	if err != nil {
		return nil, err
	}
	orders, err := meter.Int64ObservableGauge("crm.orders.count")
	if err != nil {
		return nil, err
	}
	customers, err := meter.Int64ObservableGauge("crm.customers.count")
	if err != nil {
		return nil, err
	}
	products, err := meter.Int64ObservableGauge("crm.products.count")
	if err != nil {
		return nil, err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o otelmetric.Observer) error {
		data := snapshot()
		summary := analytics.Compute(data.Products, data.Customers, data.Orders)
		total, _ := summary.TotalRevenue.Float64()

		o.ObserveFloat64(revenue, total)
		o.ObserveInt64(orders, int64(summary.TotalOrders))
		o.ObserveInt64(customers, int64(summary.TotalCustomers))
		o.ObserveInt64(products, int64(summary.TotalProducts))
		return nil
	}, revenue, orders, customers, products)
	if err != nil {
		return nil, err
	}

	return &StoreMetrics{mutations: mutations}, nil
}

func (m *StoreMetrics) Observe(ctx context.Context, change store.Change) error {
	m.mutations.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("collection", string(change.Collection)),
		attribute.String("op", string(change.Op)),
	))
	return nil
}
