package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOnline   PaymentMethod = "online"
)

// LineItem is a frozen snapshot of a product at order time.
type LineItem struct {
	ProductID int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Order struct {
	ID              int             `json:"id"`
	CustomerID      int             `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	Products        []LineItem      `json:"products"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	Date            Date            `json:"date"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Notes           string          `json:"notes,omitempty"`
}

// LinesTotal sums price × quantity over the line items.
func LinesTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type OrderPatch struct {
	CustomerID      *int             `json:"customerId,omitempty"`
	CustomerName    *string          `json:"customerName,omitempty"`
	Products        *[]LineItem      `json:"products,omitempty"`
	Total           *decimal.Decimal `json:"total,omitempty"`
	Status          *OrderStatus     `json:"status,omitempty"`
	PaymentMethod   *PaymentMethod   `json:"paymentMethod,omitempty"`
	DeliveryAddress *string          `json:"deliveryAddress,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

func (p OrderPatch) Apply(dst *Order) {
	setIf(&dst.CustomerID, p.CustomerID)
	setIf(&dst.CustomerName, p.CustomerName)
	if p.Products != nil {
		dst.Products = append([]LineItem(nil), (*p.Products)...)
	}
	setIf(&dst.Total, p.Total)
	setIf(&dst.Status, p.Status)
	setIf(&dst.PaymentMethod, p.PaymentMethod)
	setIf(&dst.DeliveryAddress, p.DeliveryAddress)
	setIf(&dst.Notes, p.Notes)
}

// Clone copies the order including its line items.
func (o Order) Clone() Order {
	o.Products = append([]LineItem(nil), o.Products...)
	return o
}
