package api

import (
	"net/http"

	"github.com/joao-fontenele/storefront-crm/internal/analytics"
	"github.com/joao-fontenele/storefront-crm/internal/settings"
)

func (h *Handler) summary() analytics.Summary {
	data := h.store.Snapshot()
	return analytics.Compute(data.Products, data.Customers, data.Orders)
}

func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.summary())
}

func (h *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	months, err := analytics.ParseWindow(r.URL.Query().Get("range"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "range must be 6months or 12months")
		return
	}

	h.writeJSON(w, http.StatusOK, analytics.MonthlySeries(h.summary().MonthlyRevenue, h.now(), months))
}

func (h *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	cfg, err := settings.Load(r.Context(), h.kv, h.logger)
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	data := h.store.Snapshot()
	summary := analytics.Compute(data.Products, data.Customers, data.Orders)
	insights := analytics.ComputeInsights(summary, data.Products, data.Customers, cfg.System.LowStockThreshold, h.now())

	h.writeJSON(w, http.StatusOK, insights)
}
