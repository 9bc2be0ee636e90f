// Package analytics derives dashboard figures from the raw collections. Every
// call recomputes from scratch; nothing is cached between calls.
package analytics

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

const (
	topProductsLimit  = 5
	recentOrdersLimit = 10
)

type TopProduct struct {
	domain.Product
	SoldQuantity int `json:"soldQuantity"`
}

type Summary struct {
	TotalRevenue      decimal.Decimal            `json:"totalRevenue"`
	TotalOrders       int                        `json:"totalOrders"`
	TotalCustomers    int                        `json:"totalCustomers"`
	TotalProducts     int                        `json:"totalProducts"`
	AverageOrderValue decimal.Decimal            `json:"averageOrderValue"`
	TopProducts       []TopProduct               `json:"topProducts"`
	RecentOrders      []domain.Order             `json:"recentOrders"`
	OrdersByStatus    map[domain.OrderStatus]int `json:"ordersByStatus"`
	MonthlyRevenue    map[string]decimal.Decimal `json:"monthlyRevenue"`
}

func Compute(products []domain.Product, customers []domain.Customer, orders []domain.Order) Summary {
	s := Summary{
		TotalRevenue:      decimal.Zero,
		TotalOrders:       len(orders),
		TotalCustomers:    len(customers),
		TotalProducts:     len(products),
		AverageOrderValue: decimal.Zero,
		OrdersByStatus:    map[domain.OrderStatus]int{},
		MonthlyRevenue:    map[string]decimal.Decimal{},
	}

	sold := map[int]int{}
	for _, o := range orders {
		s.TotalRevenue = s.TotalRevenue.Add(o.Total)
		s.OrdersByStatus[o.Status]++

		month := o.Date.MonthKey()
		s.MonthlyRevenue[month] = s.MonthlyRevenue[month].Add(o.Total)

		for _, li := range o.Products {
			sold[li.ProductID] += li.Quantity
		}
	}

	if len(orders) > 0 {
		s.AverageOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(len(orders))))
	}

	s.TopProducts = topProducts(products, sold)
	s.RecentOrders = recentOrders(orders)
	return s
}

func topProducts(products []domain.Product, sold map[int]int) []TopProduct {
	ranked := make([]TopProduct, len(products))
	for i, p := range products {
		ranked[i] = TopProduct{Product: p, SoldQuantity: sold[p.ID]}
	}
	slices.SortStableFunc(ranked, func(a, b TopProduct) int {
		return cmp.Compare(b.SoldQuantity, a.SoldQuantity)
	})
	return ranked[:min(len(ranked), topProductsLimit)]
}

func recentOrders(orders []domain.Order) []domain.Order {
	sorted := make([]domain.Order, len(orders))
	for i, o := range orders {
		sorted[i] = o.Clone()
	}
	slices.SortStableFunc(sorted, func(a, b domain.Order) int {
		return b.Date.Compare(a.Date.Time)
	})
	return sorted[:min(len(sorted), recentOrdersLimit)]
}
