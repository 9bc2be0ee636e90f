// Package api is the HTTP boundary over the store, analytics, backup and
// settings.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/joao-fontenele/storefront-crm/internal/persistence"
	"github.com/joao-fontenele/storefront-crm/internal/store"
	"github.com/joao-fontenele/storefront-crm/internal/telemetry"
)

const maxImportBytes = 10 << 20

type Handler struct {
	store  *store.Store
	kv     persistence.KV
	now    func() time.Time
	logger *slog.Logger
}

func NewHandler(s *store.Store, kv persistence.KV, logger *slog.Logger) *Handler {
	return &Handler{
		store:  s,
		kv:     kv,
		now:    time.Now,
		logger: logger,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	routes := map[string]http.HandlerFunc{
		"GET /products":            h.HandleListProducts,
		"POST /products":           h.HandleCreateProduct,
		"GET /products/categories": h.HandleCategories,
		"GET /products/{id}":       h.HandleGetProduct,
		"PATCH /products/{id}":     h.HandleUpdateProduct,
		"DELETE /products/{id}":    h.HandleDeleteProduct,

		"GET /customers":             h.HandleListCustomers,
		"POST /customers":            h.HandleCreateCustomer,
		"GET /customers/{id}":        h.HandleGetCustomer,
		"PATCH /customers/{id}":      h.HandleUpdateCustomer,
		"DELETE /customers/{id}":     h.HandleDeleteCustomer,
		"GET /customers/{id}/orders": h.HandleCustomerOrders,

		"GET /orders":         h.HandleListOrders,
		"POST /orders":        h.HandleCreateOrder,
		"GET /orders/{id}":    h.HandleGetOrder,
		"PATCH /orders/{id}":  h.HandleUpdateOrder,
		"DELETE /orders/{id}": h.HandleDeleteOrder,

		"GET /analytics":          h.HandleAnalytics,
		"GET /analytics/monthly":  h.HandleMonthly,
		"GET /analytics/insights": h.HandleInsights,

		"GET /backup/export":  h.HandleExport,
		"POST /backup/import": h.HandleImport,
		"GET /settings":       h.HandleGetSettings,
		"PUT /settings":       h.HandlePutSettings,
	}
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, telemetry.WithHTTPRoute(handler))
	}
}

// pathID parses the {id} wildcard, writing a 400 when it is not a number.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
