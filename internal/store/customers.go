package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

func (s *Store) Customers() []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Customer{}, s.customers...)
}

func (s *Store) Customer(id int) (domain.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.customers, customerID, id)
	if i < 0 {
		return domain.Customer{}, false
	}
	return s.customers[i], true
}

// AddCustomer assigns the id and resets the registration date, aggregates
// and status regardless of what the caller supplied.
func (s *Store) AddCustomer(ctx context.Context, c domain.Customer) domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = nextID(s.customers, customerID)
	c.RegistrationDate = domain.NewDate(s.now())
	c.TotalOrders = 0
	c.TotalSpent = decimal.Zero
	c.Status = domain.CustomerStatusNew
	s.customers = append(s.customers, c)
	s.notify(ctx, s.customerChange(domain.OpAdd, c.ID, c))
	return c
}

func (s *Store) UpdateCustomer(ctx context.Context, id int, patch domain.CustomerPatch) (domain.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCustomerLocked(ctx, id, patch)
}

func (s *Store) updateCustomerLocked(ctx context.Context, id int, patch domain.CustomerPatch) (domain.Customer, bool) {
	i := indexOf(s.customers, customerID, id)
	if i < 0 {
		s.logger.Debug("customer not found for update", "customer_id", id)
		return domain.Customer{}, false
	}
	patch.Apply(&s.customers[i])
	c := s.customers[i]
	s.notify(ctx, s.customerChange(domain.OpUpdate, id, c))
	return c, true
}

// DeleteCustomer removes the customer; their orders are left in place.
func (s *Store) DeleteCustomer(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.customers, customerID, id)
	if i < 0 {
		s.logger.Debug("customer not found for delete", "customer_id", id)
		return false
	}
	s.customers = append(s.customers[:i:i], s.customers[i+1:]...)
	s.notify(ctx, s.customerChange(domain.OpDelete, id, nil))
	return true
}

func (s *Store) customerChange(op domain.Op, id int, entity any) Change {
	return Change{
		Collection: domain.CollectionCustomers,
		Op:         op,
		ID:         id,
		Entity:     entity,
		Snapshot:   append([]domain.Customer{}, s.customers...),
	}
}
