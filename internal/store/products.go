package store

import (
	"context"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.products)
}

func (s *Store) Product(id int) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.products, productID, id)
	if i < 0 {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// AddProduct assigns the next id (highest existing id + 1) and appends.
func (s *Store) AddProduct(ctx context.Context, p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = nextID(s.products, productID)
	s.products = append(s.products, p)
	s.notify(ctx, s.productChange(domain.OpAdd, p.ID, p))
	return p
}

// UpdateProduct merges patch onto the product. It reports whether the id
// existed; an unknown id is a no-op.
func (s *Store) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.products, productID, id)
	if i < 0 {
		s.logger.Debug("product not found for update", "product_id", id)
		return domain.Product{}, false
	}
	patch.Apply(&s.products[i])
	p := s.products[i]
	s.notify(ctx, s.productChange(domain.OpUpdate, id, p))
	return p, true
}

// DeleteProduct removes the product. Orders keep their line item snapshots.
func (s *Store) DeleteProduct(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.products, productID, id)
	if i < 0 {
		s.logger.Debug("product not found for delete", "product_id", id)
		return false
	}
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	s.notify(ctx, s.productChange(domain.OpDelete, id, nil))
	return true
}

func (s *Store) productChange(op domain.Op, id int, entity any) Change {
	return Change{
		Collection: domain.CollectionProducts,
		Op:         op,
		ID:         id,
		Entity:     entity,
		Snapshot:   cloneProducts(s.products),
	}
}
