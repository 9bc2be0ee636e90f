package store

import (
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

// Seed is the built-in dataset used when nothing has been persisted yet.
// Customer aggregates count historical orders, so they may exceed what the
// three seed orders alone add up to.
func Seed() Data {
	return Data{
		Products:  SeedProducts(),
		Customers: SeedCustomers(),
		Orders:    SeedOrders(),
	}
}

func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "iPhone 15 Pro",
			Brand:       "Apple",
			Model:       "iPhone 15 Pro",
			Category:    "Smartphones",
			Price:       decimal.NewFromInt(89990),
			Stock:       25,
			Description: "Latest iPhone with the A17 Pro chip",
			Specifications: domain.Specifications{
				Display:   `6.1" Super Retina XDR`,
				Processor: "A17 Pro",
				Memory:    "128GB",
				Camera:    "48MP + 12MP + 12MP",
				Battery:   "3274 mAh",
			},
		},
		{
			ID:          2,
			Name:        "Samsung Galaxy S24",
			Brand:       "Samsung",
			Model:       "Galaxy S24",
			Category:    "Smartphones",
			Price:       decimal.NewFromInt(79990),
			Stock:       18,
			Description: "Samsung flagship with on-device AI features",
			Specifications: domain.Specifications{
				Display:   `6.2" Dynamic AMOLED 2X`,
				Processor: "Snapdragon 8 Gen 3",
				Memory:    "256GB",
				Camera:    "50MP + 12MP + 10MP",
				Battery:   "4000 mAh",
			},
		},
		{
			ID:          3,
			Name:        "Xiaomi 14",
			Brand:       "Xiaomi",
			Model:       "14",
			Category:    "Smartphones",
			Price:       decimal.NewFromInt(54990),
			Stock:       32,
			Description: "Powerful phone with a strong price/performance ratio",
			Specifications: domain.Specifications{
				Display:   `6.36" AMOLED`,
				Processor: "Snapdragon 8 Gen 3",
				Memory:    "256GB",
				Camera:    "50MP + 50MP + 50MP",
				Battery:   "4610 mAh",
			},
		},
	}
}

func SeedCustomers() []domain.Customer {
	return []domain.Customer{
		{
			ID:               1,
			Name:             "Ivan Petrov",
			Email:            "ivan.petrov@email.com",
			Phone:            "+7 (999) 123-45-67",
			Address:          "Moscow, Tverskaya St. 10",
			RegistrationDate: domain.MustDate("2024-01-15"),
			TotalOrders:      3,
			TotalSpent:       decimal.NewFromInt(245970),
			Status:           domain.CustomerStatusVIP,
		},
		{
			ID:               2,
			Name:             "Maria Sidorova",
			Email:            "maria.sidorova@email.com",
			Phone:            "+7 (999) 234-56-78",
			Address:          "Saint Petersburg, Nevsky Ave. 25",
			RegistrationDate: domain.MustDate("2024-02-20"),
			TotalOrders:      1,
			TotalSpent:       decimal.NewFromInt(79990),
			Status:           domain.CustomerStatusOrdinary,
		},
		{
			ID:               3,
			Name:             "Alexey Kozlov",
			Email:            "alexey.kozlov@email.com",
			Phone:            "+7 (999) 345-67-89",
			Address:          "Yekaterinburg, Lenina St. 50",
			RegistrationDate: domain.MustDate("2024-03-10"),
			TotalOrders:      2,
			TotalSpent:       decimal.NewFromInt(134980),
			Status:           domain.CustomerStatusRegular,
		},
	}
}

func SeedOrders() []domain.Order {
	return []domain.Order{
		{
			ID:           1,
			CustomerID:   1,
			CustomerName: "Ivan Petrov",
			Products: []domain.LineItem{
				{ProductID: 1, Name: "iPhone 15 Pro", Price: decimal.NewFromInt(89990), Quantity: 1},
			},
			Total:           decimal.NewFromInt(89990),
			Status:          domain.OrderStatusCompleted,
			Date:            domain.MustDate("2024-01-20"),
			PaymentMethod:   domain.PaymentCard,
			DeliveryAddress: "Moscow, Tverskaya St. 10",
			Notes:           "Deliver to the door",
		},
		{
			ID:           2,
			CustomerID:   2,
			CustomerName: "Maria Sidorova",
			Products: []domain.LineItem{
				{ProductID: 2, Name: "Samsung Galaxy S24", Price: decimal.NewFromInt(79990), Quantity: 1},
			},
			Total:           decimal.NewFromInt(79990),
			Status:          domain.OrderStatusProcessing,
			Date:            domain.MustDate("2024-01-22"),
			PaymentMethod:   domain.PaymentCash,
			DeliveryAddress: "Saint Petersburg, Nevsky Ave. 25",
			Notes:           "Call an hour before delivery",
		},
		{
			ID:           3,
			CustomerID:   1,
			CustomerName: "Ivan Petrov",
			Products: []domain.LineItem{
				{ProductID: 3, Name: "Xiaomi 14", Price: decimal.NewFromInt(54990), Quantity: 2},
			},
			Total:           decimal.NewFromInt(109980),
			Status:          domain.OrderStatusShipping,
			Date:            domain.MustDate("2024-01-25"),
			PaymentMethod:   domain.PaymentCard,
			DeliveryAddress: "Moscow, Tverskaya St. 10",
			Notes:           "Gift wrapping",
		},
	}
}
