package store

import (
	"slices"
	"strconv"
	"strings"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

type ProductFilter struct {
	Query    string
	Category string
}

// FilterProducts matches Query case-insensitively against name, brand and
// model, and Category exactly. Empty criteria match everything.
func FilterProducts(products []domain.Product, f ProductFilter) []domain.Product {
	q := strings.ToLower(f.Query)
	out := []domain.Product{}
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) &&
			!strings.Contains(strings.ToLower(p.Model), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists distinct product categories in first-seen order.
func Categories(products []domain.Product) []string {
	return distinct(products, func(p domain.Product) string { return p.Category })
}

type CustomerFilter struct {
	Query  string
	Status domain.CustomerStatus
}

// FilterCustomers matches Query against name and email (case-insensitive)
// and phone (verbatim).
func FilterCustomers(customers []domain.Customer, f CustomerFilter) []domain.Customer {
	q := strings.ToLower(f.Query)
	out := []domain.Customer{}
	for _, c := range customers {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Email), q) &&
			!strings.Contains(c.Phone, f.Query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func CustomerStatuses(customers []domain.Customer) []domain.CustomerStatus {
	return distinct(customers, func(c domain.Customer) domain.CustomerStatus { return c.Status })
}

type OrderFilter struct {
	Query  string
	Status domain.OrderStatus
	// Month is a date prefix such as "2024-01".
	Month string
}

func FilterOrders(orders []domain.Order, f OrderFilter) []domain.Order {
	q := strings.ToLower(f.Query)
	out := []domain.Order{}
	for _, o := range orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Month != "" && !strings.HasPrefix(o.Date.String(), f.Month) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), q) &&
			!strings.Contains(strconv.Itoa(o.ID), q) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func OrderStatuses(orders []domain.Order) []domain.OrderStatus {
	return distinct(orders, func(o domain.Order) domain.OrderStatus { return o.Status })
}

// OrdersOf returns the orders referencing the customer id.
func OrdersOf(orders []domain.Order, customerID int) []domain.Order {
	out := []domain.Order{}
	for _, o := range orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out
}

func distinct[T any, K comparable](items []T, key func(T) K) []K {
	out := []K{}
	for _, item := range items {
		if k := key(item); !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
