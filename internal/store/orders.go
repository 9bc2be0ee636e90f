package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.orders)
}

func (s *Store) Order(id int) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.orders, orderID, id)
	if i < 0 {
		return domain.Order{}, false
	}
	return s.orders[i].Clone(), true
}

// AddOrder stores the order with a fresh id and today's date, then credits
// the referenced customer with one more order and the order total. A missing
// customer skips the credit. The caller is responsible for Total matching
// the line items.
func (s *Store) AddOrder(ctx context.Context, o domain.Order) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o = o.Clone()
	o.ID = nextID(s.orders, orderID)
	o.Date = domain.NewDate(s.now())

	ci := indexOf(s.customers, customerID, o.CustomerID)
	if ci >= 0 {
		if o.CustomerName == "" {
			o.CustomerName = s.customers[ci].Name
		}
		if o.DeliveryAddress == "" {
			o.DeliveryAddress = s.customers[ci].Address
		}
	}

	s.orders = append(s.orders, o)
	s.notify(ctx, s.orderChange(domain.OpAdd, o.ID, o.Clone()))

	if ci < 0 {
		s.logger.Debug("order placed for unknown customer", "order_id", o.ID, "customer_id", o.CustomerID)
		return o.Clone()
	}
	c := s.customers[ci]
	totalOrders := c.TotalOrders + 1
	totalSpent := c.TotalSpent.Add(o.Total)
	s.updateCustomerLocked(ctx, c.ID, domain.CustomerPatch{
		TotalOrders: &totalOrders,
		TotalSpent:  &totalSpent,
	})
	return o.Clone()
}

// UpdateOrder merges patch onto the order. Id and date never change.
// Customer aggregates are only touched when reconciliation is enabled.
func (s *Store) UpdateOrder(ctx context.Context, id int, patch domain.OrderPatch) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.orders, orderID, id)
	if i < 0 {
		s.logger.Debug("order not found for update", "order_id", id)
		return domain.Order{}, false
	}
	before := s.orders[i].Clone()
	patch.Apply(&s.orders[i])
	after := s.orders[i].Clone()
	s.notify(ctx, s.orderChange(domain.OpUpdate, id, after.Clone()))

	if s.reconcile {
		switch {
		case before.CustomerID != after.CustomerID:
			s.adjustCustomerLocked(ctx, before.CustomerID, -1, before.Total.Neg())
			s.adjustCustomerLocked(ctx, after.CustomerID, 1, after.Total)
		case !before.Total.Equal(after.Total):
			s.adjustCustomerLocked(ctx, after.CustomerID, 0, after.Total.Sub(before.Total))
		}
	}
	return after, true
}

func (s *Store) DeleteOrder(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.orders, orderID, id)
	if i < 0 {
		s.logger.Debug("order not found for delete", "order_id", id)
		return false
	}
	removed := s.orders[i]
	s.orders = append(s.orders[:i:i], s.orders[i+1:]...)
	s.notify(ctx, s.orderChange(domain.OpDelete, id, nil))

	if s.reconcile {
		s.adjustCustomerLocked(ctx, removed.CustomerID, -1, removed.Total.Neg())
	}
	return true
}

// adjustCustomerLocked shifts a customer's aggregates, flooring both at zero.
func (s *Store) adjustCustomerLocked(ctx context.Context, id, orders int, spent decimal.Decimal) {
	ci := indexOf(s.customers, customerID, id)
	if ci < 0 {
		return
	}
	c := s.customers[ci]
	totalOrders := max(c.TotalOrders+orders, 0)
	totalSpent := c.TotalSpent.Add(spent)
	if totalSpent.IsNegative() {
		totalSpent = decimal.Zero
	}
	s.updateCustomerLocked(ctx, id, domain.CustomerPatch{
		TotalOrders: &totalOrders,
		TotalSpent:  &totalSpent,
	})
}

func (s *Store) orderChange(op domain.Op, id int, entity any) Change {
	return Change{
		Collection: domain.CollectionOrders,
		Op:         op,
		ID:         id,
		Entity:     entity,
		Snapshot:   cloneOrders(s.orders),
	}
}
