package telemetry

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

func TestStoreMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(ctx) }()

	var s *store.Store
	m, err := NewStoreMetrics(mp.Meter("test"), func() store.Data { return s.Snapshot() })
	require.NoError(t, err)

	s = store.New(store.Seed(), store.WithObserver(m))
	s.AddOrder(ctx, domain.Order{CustomerID: 1, Total: decimal.NewFromInt(54990)})
	s.DeleteProduct(ctx, 3)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	got := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			got[metric.Name] = metric.Data
		}
	}

	t.Run("gauges follow the store", func(t *testing.T) {
		revenue, ok := got["crm.revenue.total"].(metricdata.Gauge[float64])
		require.True(t, ok)
		require.Len(t, revenue.DataPoints, 1)
		assert.Equal(t, 334950.0, revenue.DataPoints[0].Value)

		orders, ok := got["crm.orders.count"].(metricdata.Gauge[int64])
		require.True(t, ok)
		assert.Equal(t, int64(4), orders.DataPoints[0].Value)

		products, ok := got["crm.products.count"].(metricdata.Gauge[int64])
		require.True(t, ok)
		assert.Equal(t, int64(2), products.DataPoints[0].Value)
	})

	t.Run("mutations are counted per collection and op", func(t *testing.T) {
		sum, ok := got["crm.store.mutations"].(metricdata.Sum[int64])
		require.True(t, ok)

		var total int64
		for _, dp := range sum.DataPoints {
			total += dp.Value
		}
		// order add, customer credit, product delete
		assert.Equal(t, int64(3), total)
		assert.Len(t, sum.DataPoints, 3)
	})
}
