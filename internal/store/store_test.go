package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

var fixedNow = time.Date(2025, time.March, 14, 15, 9, 26, 0, time.UTC)

func newSeeded(opts ...Option) *Store {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(Seed(), opts...)
}

func ptr[T any](v T) *T { return &v }

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "expected %d, got %s", want, got)
}

func TestStore_IDAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at one on an empty collection", func(t *testing.T) {
		s := New(Data{})
		p := s.AddProduct(ctx, domain.Product{Name: "first"})
		assert.Equal(t, 1, p.ID)
		c := s.AddCustomer(ctx, domain.Customer{Name: "first"})
		assert.Equal(t, 1, c.ID)
		o := s.AddOrder(ctx, domain.Order{})
		assert.Equal(t, 1, o.ID)
	})

	t.Run("uses highest existing id plus one", func(t *testing.T) {
		s := New(Data{Products: []domain.Product{{ID: 7}, {ID: 3}}})
		p := s.AddProduct(ctx, domain.Product{Name: "next"})
		assert.Equal(t, 8, p.ID)
	})

	t.Run("ignores any supplied id", func(t *testing.T) {
		s := newSeeded()
		p := s.AddProduct(ctx, domain.Product{ID: 42})
		assert.Equal(t, 4, p.ID)
	})

	t.Run("reuses the id of a deleted highest entity", func(t *testing.T) {
		s := newSeeded()
		require.True(t, s.DeleteProduct(ctx, 3))
		p := s.AddProduct(ctx, domain.Product{Name: "Pixel 9"})
		assert.Equal(t, 3, p.ID)
	})

	t.Run("leaves gaps after deleting a middle entity", func(t *testing.T) {
		s := newSeeded()
		require.True(t, s.DeleteCustomer(ctx, 2))
		c := s.AddCustomer(ctx, domain.Customer{Name: "Olga"})
		assert.Equal(t, 4, c.ID)

		ids := []int{}
		for _, c := range s.Customers() {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []int{1, 3, 4}, ids)
	})
}

func TestStore_AddCustomerResetsDerivedFields(t *testing.T) {
	s := newSeeded()

	c := s.AddCustomer(context.Background(), domain.Customer{
		Name:             "Olga Smirnova",
		Email:            "olga@example.com",
		RegistrationDate: domain.MustDate("1999-01-01"),
		TotalOrders:      12,
		TotalSpent:       decimal.NewFromInt(1000),
		Status:           domain.CustomerStatusVIP,
	})

	assert.Equal(t, 4, c.ID)
	assert.Equal(t, "2025-03-14", c.RegistrationDate.String())
	assert.Equal(t, 0, c.TotalOrders)
	assertDecimal(t, 0, c.TotalSpent)
	assert.Equal(t, domain.CustomerStatusNew, c.Status)
	assert.Equal(t, "olga@example.com", c.Email)
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("merges only supplied fields", func(t *testing.T) {
		s := newSeeded()
		before, _ := s.Product(2)

		after, ok := s.UpdateProduct(ctx, 2, domain.ProductPatch{Stock: ptr(4)})
		require.True(t, ok)

		assert.Equal(t, 2, after.ID)
		assert.Equal(t, 4, after.Stock)
		before.Stock = 4
		assert.Equal(t, before, after)
	})

	t.Run("replaces specifications as a whole", func(t *testing.T) {
		s := newSeeded()
		after, ok := s.UpdateProduct(ctx, 1, domain.ProductPatch{
			Specifications: &domain.Specifications{Memory: "256GB"},
		})
		require.True(t, ok)
		assert.Equal(t, domain.Specifications{Memory: "256GB"}, after.Specifications)
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		s := newSeeded()
		var changes int
		s.observers = append(s.observers, ObserverFunc(func(context.Context, Change) error {
			changes++
			return nil
		}))
		before := s.Snapshot()

		_, ok := s.UpdateCustomer(ctx, 99, domain.CustomerPatch{Name: ptr("ghost")})
		assert.False(t, ok)
		_, ok = s.UpdateOrder(ctx, 99, domain.OrderPatch{Notes: ptr("ghost")})
		assert.False(t, ok)
		assert.False(t, s.DeleteProduct(ctx, 99))

		assert.Equal(t, before, s.Snapshot())
		assert.Zero(t, changes)
	})

	t.Run("order update keeps id and date", func(t *testing.T) {
		s := newSeeded()
		after, ok := s.UpdateOrder(ctx, 1, domain.OrderPatch{Status: ptr(domain.OrderStatusCancelled)})
		require.True(t, ok)
		assert.Equal(t, 1, after.ID)
		assert.Equal(t, "2024-01-20", after.Date.String())
		assert.Equal(t, domain.OrderStatusCancelled, after.Status)
	})
}

func TestStore_AddOrderCreditsCustomer(t *testing.T) {
	ctx := context.Background()
	s := newSeeded()

	o := s.AddOrder(ctx, domain.Order{
		CustomerID: 1,
		Products: []domain.LineItem{
			{ProductID: 3, Name: "Xiaomi 14", Price: decimal.NewFromInt(54990), Quantity: 1},
		},
		Total: decimal.NewFromInt(54990),
	})

	assert.Equal(t, 4, o.ID)
	assert.Equal(t, "2025-03-14", o.Date.String())
	assert.Equal(t, "Ivan Petrov", o.CustomerName)
	assert.Equal(t, "Moscow, Tverskaya St. 10", o.DeliveryAddress)

	c, ok := s.Customer(1)
	require.True(t, ok)
	assert.Equal(t, 4, c.TotalOrders)
	assertDecimal(t, 300960, c.TotalSpent)

	t.Run("update and delete do not reverse the credit", func(t *testing.T) {
		_, ok := s.UpdateOrder(ctx, o.ID, domain.OrderPatch{Total: ptr(decimal.NewFromInt(1))})
		require.True(t, ok)
		require.True(t, s.DeleteOrder(ctx, o.ID))

		c, _ := s.Customer(1)
		assert.Equal(t, 4, c.TotalOrders)
		assertDecimal(t, 300960, c.TotalSpent)
	})
}

func TestStore_AddOrderForUnknownCustomer(t *testing.T) {
	s := newSeeded()
	before := s.Customers()

	o := s.AddOrder(context.Background(), domain.Order{CustomerID: 77, Total: decimal.NewFromInt(10)})

	assert.Equal(t, 4, o.ID)
	assert.Equal(t, before, s.Customers())
	_, ok := s.Order(4)
	assert.True(t, ok)
}

func TestStore_OrderReconciliation(t *testing.T) {
	ctx := context.Background()

	t.Run("delete debits the customer", func(t *testing.T) {
		s := newSeeded(WithOrderReconciliation())
		require.True(t, s.DeleteOrder(ctx, 3))

		c, _ := s.Customer(1)
		assert.Equal(t, 2, c.TotalOrders)
		assertDecimal(t, 135990, c.TotalSpent)
	})

	t.Run("total change adjusts spent only", func(t *testing.T) {
		s := newSeeded(WithOrderReconciliation())
		_, ok := s.UpdateOrder(ctx, 2, domain.OrderPatch{Total: ptr(decimal.NewFromInt(70000))})
		require.True(t, ok)

		c, _ := s.Customer(2)
		assert.Equal(t, 1, c.TotalOrders)
		assertDecimal(t, 70000, c.TotalSpent)
	})

	t.Run("customer change moves the order between customers", func(t *testing.T) {
		s := newSeeded(WithOrderReconciliation())
		_, ok := s.UpdateOrder(ctx, 2, domain.OrderPatch{CustomerID: ptr(3)})
		require.True(t, ok)

		from, _ := s.Customer(2)
		assert.Equal(t, 0, from.TotalOrders)
		assertDecimal(t, 0, from.TotalSpent)

		to, _ := s.Customer(3)
		assert.Equal(t, 3, to.TotalOrders)
		assertDecimal(t, 214970, to.TotalSpent)
	})

	t.Run("never goes below zero", func(t *testing.T) {
		s := newSeeded(WithOrderReconciliation())
		_, ok := s.UpdateCustomer(ctx, 2, domain.CustomerPatch{TotalOrders: ptr(0), TotalSpent: ptr(decimal.Zero)})
		require.True(t, ok)
		require.True(t, s.DeleteOrder(ctx, 2))

		c, _ := s.Customer(2)
		assert.Equal(t, 0, c.TotalOrders)
		assertDecimal(t, 0, c.TotalSpent)
	})
}

func TestStore_DeleteProductKeepsOrderSnapshots(t *testing.T) {
	s := newSeeded()
	require.True(t, s.DeleteProduct(context.Background(), 2))

	for _, p := range s.Products() {
		assert.NotEqual(t, 2, p.ID)
	}

	o, ok := s.Order(2)
	require.True(t, ok)
	require.Len(t, o.Products, 1)
	assert.Equal(t, 2, o.Products[0].ProductID)
	assert.Equal(t, "Samsung Galaxy S24", o.Products[0].Name)
	assertDecimal(t, 79990, o.Products[0].Price)
}

func TestStore_LaterProductEditsDoNotTouchOrders(t *testing.T) {
	s := newSeeded()
	_, ok := s.UpdateProduct(context.Background(), 1, domain.ProductPatch{
		Name:  ptr("iPhone 15 Pro (renamed)"),
		Price: ptr(decimal.NewFromInt(1)),
	})
	require.True(t, ok)

	o, _ := s.Order(1)
	assert.Equal(t, "iPhone 15 Pro", o.Products[0].Name)
	assertDecimal(t, 89990, o.Products[0].Price)
}

func TestStore_Observers(t *testing.T) {
	ctx := context.Background()
	var changes []Change
	s := newSeeded(WithObserver(ObserverFunc(func(_ context.Context, c Change) error {
		changes = append(changes, c)
		return nil
	})))

	s.AddOrder(ctx, domain.Order{CustomerID: 2, Total: decimal.NewFromInt(100)})

	require.Len(t, changes, 2)
	assert.Equal(t, domain.CollectionOrders, changes[0].Collection)
	assert.Equal(t, domain.OpAdd, changes[0].Op)
	assert.Len(t, changes[0].Snapshot, 4)
	assert.Equal(t, domain.CollectionCustomers, changes[1].Collection)
	assert.Equal(t, domain.OpUpdate, changes[1].Op)
	assert.Equal(t, 2, changes[1].ID)

	snapshot, ok := changes[1].Snapshot.([]domain.Customer)
	require.True(t, ok)
	assert.Equal(t, 2, snapshot[1].TotalOrders)

	t.Run("snapshots are detached from the store", func(t *testing.T) {
		snapshot[1].Name = "mutated"
		c, _ := s.Customer(2)
		assert.Equal(t, "Maria Sidorova", c.Name)
	})

	t.Run("delete carries no entity", func(t *testing.T) {
		changes = nil
		s.DeleteCustomer(ctx, 3)
		require.Len(t, changes, 1)
		assert.Nil(t, changes[0].Entity)
		assert.Len(t, changes[0].Snapshot, 2)
	})
}

func TestStore_ListsPreserveInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New(Data{Products: []domain.Product{{ID: 5, Name: "e"}, {ID: 2, Name: "b"}}})
	s.AddProduct(ctx, domain.Product{Name: "f"})

	names := []string{}
	for _, p := range s.Products() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"e", "b", "f"}, names)
}

func TestSeed_IsConsistent(t *testing.T) {
	data := Seed()
	require.Len(t, data.Products, 3)
	require.Len(t, data.Customers, 3)
	require.Len(t, data.Orders, 3)

	products := map[int]domain.Product{}
	for _, p := range data.Products {
		products[p.ID] = p
	}
	customers := map[int]domain.Customer{}
	for _, c := range data.Customers {
		customers[c.ID] = c
	}

	for _, o := range data.Orders {
		c, ok := customers[o.CustomerID]
		require.True(t, ok, "order %d references unknown customer", o.ID)
		assert.Equal(t, c.Name, o.CustomerName)
		assert.True(t, domain.LinesTotal(o.Products).Equal(o.Total), "order %d total", o.ID)
		for _, li := range o.Products {
			p, ok := products[li.ProductID]
			require.True(t, ok)
			assert.Equal(t, p.Name, li.Name)
			assert.True(t, p.Price.Equal(li.Price))
		}
	}
}
