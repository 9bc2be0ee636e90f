package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
)

// DefaultLowStockThreshold matches the default system settings.
const DefaultLowStockThreshold = 5

// Insights are the secondary dashboard figures shown next to the summary.
type Insights struct {
	ProcessingOrders     int             `json:"processingOrders"`
	CompletedOrders      int             `json:"completedOrders"`
	LowStockProducts     int             `json:"lowStockProducts"`
	VIPCustomers         int             `json:"vipCustomers"`
	OrdersPerCustomer    int64           `json:"ordersPerCustomerPercent"`
	CurrentMonth         decimal.Decimal `json:"currentMonthRevenue"`
	PreviousMonth        decimal.Decimal `json:"previousMonthRevenue"`
	MonthlyChangePercent int64           `json:"monthlyChangePercent"`
}

func ComputeInsights(summary Summary, products []domain.Product, customers []domain.Customer, lowStockThreshold int, now time.Time) Insights {
	in := Insights{
		ProcessingOrders: summary.OrdersByStatus[domain.OrderStatusProcessing],
		CompletedOrders:  summary.OrdersByStatus[domain.OrderStatusCompleted],
	}
	for _, p := range products {
		if p.Stock <= lowStockThreshold {
			in.LowStockProducts++
		}
	}
	for _, c := range customers {
		if c.Status == domain.CustomerStatusVIP {
			in.VIPCustomers++
		}
	}
	if summary.TotalCustomers > 0 {
		in.OrdersPerCustomer = decimal.NewFromInt(int64(summary.TotalOrders)).
			Div(decimal.NewFromInt(int64(summary.TotalCustomers))).
			Mul(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	}

	series := MonthlySeries(summary.MonthlyRevenue, now, 2)
	in.PreviousMonth = series[0].Revenue
	in.CurrentMonth = series[1].Revenue
	in.MonthlyChangePercent = MonthlyChange(in.CurrentMonth, in.PreviousMonth)
	return in
}
