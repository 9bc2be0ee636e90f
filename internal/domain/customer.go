package domain

import "github.com/shopspring/decimal"

type CustomerStatus string

const (
	CustomerStatusNew      CustomerStatus = "new"
	CustomerStatusRegular  CustomerStatus = "regular"
	CustomerStatusVIP      CustomerStatus = "vip"
	CustomerStatusOrdinary CustomerStatus = "ordinary"
)

type Customer struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	RegistrationDate Date            `json:"registrationDate"`
	TotalOrders      int             `json:"totalOrders"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	Status           CustomerStatus  `json:"status"`
}

// CustomerPatch is an administrative edit. TotalOrders and TotalSpent may be
// set here; registration date may not.
type CustomerPatch struct {
	Name        *string          `json:"name,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Address     *string          `json:"address,omitempty"`
	TotalOrders *int             `json:"totalOrders,omitempty"`
	TotalSpent  *decimal.Decimal `json:"totalSpent,omitempty"`
	Status      *CustomerStatus  `json:"status,omitempty"`
}

func (p CustomerPatch) Apply(dst *Customer) {
	setIf(&dst.Name, p.Name)
	setIf(&dst.Email, p.Email)
	setIf(&dst.Phone, p.Phone)
	setIf(&dst.Address, p.Address)
	setIf(&dst.TotalOrders, p.TotalOrders)
	setIf(&dst.TotalSpent, p.TotalSpent)
	setIf(&dst.Status, p.Status)
}
