package store

import "github.com/joao-fontenele/storefront-crm/internal/domain"

type LineRequest struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantity"`
}

// OrderRequest is what an operator fills in when placing an order; prices
// and names are resolved from the current catalog.
type OrderRequest struct {
	CustomerID      int                  `json:"customerId"`
	Products        []LineRequest        `json:"products"`
	Status          domain.OrderStatus   `json:"status,omitempty"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod,omitempty"`
	DeliveryAddress string               `json:"deliveryAddress,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

// Draft turns a request into an order ready for AddOrder. Lines naming an
// unknown product or a quantity below one are dropped, and the total is
// computed from the snapshotted prices.
func (s *Store) Draft(req OrderRequest) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := domain.Order{
		CustomerID:      req.CustomerID,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		Products:        []domain.LineItem{},
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusNew
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = domain.PaymentCard
	}
	if ci := indexOf(s.customers, customerID, req.CustomerID); ci >= 0 {
		o.CustomerName = s.customers[ci].Name
		if o.DeliveryAddress == "" {
			o.DeliveryAddress = s.customers[ci].Address
		}
	}

	for _, line := range req.Products {
		pi := indexOf(s.products, productID, line.ProductID)
		if pi < 0 || line.Quantity < 1 {
			continue
		}
		p := s.products[pi]
		o.Products = append(o.Products, domain.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})
	}
	o.Total = domain.LinesTotal(o.Products)
	return o
}
