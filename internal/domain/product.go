package domain

import "github.com/shopspring/decimal"

type Specifications struct {
	Display   string `json:"display,omitempty"`
	Processor string `json:"processor,omitempty"`
	Memory    string `json:"memory,omitempty"`
	Camera    string `json:"camera,omitempty"`
	Battery   string `json:"battery,omitempty"`
}

type Product struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Description    string          `json:"description,omitempty"`
	Specifications Specifications  `json:"specifications"`
}

// ProductPatch carries the fields of a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name           *string          `json:"name,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Model          *string          `json:"model,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Stock          *int             `json:"stock,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Specifications *Specifications  `json:"specifications,omitempty"`
}

func (p ProductPatch) Apply(dst *Product) {
	setIf(&dst.Name, p.Name)
	setIf(&dst.Brand, p.Brand)
	setIf(&dst.Model, p.Model)
	setIf(&dst.Category, p.Category)
	setIf(&dst.Price, p.Price)
	setIf(&dst.Stock, p.Stock)
	setIf(&dst.Description, p.Description)
	setIf(&dst.Specifications, p.Specifications)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
