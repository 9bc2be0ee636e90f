package api

import (
	"net/http"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

func (h *Handler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders := store.FilterOrders(h.store.Orders(), store.OrderFilter{
		Query:  q.Get("q"),
		Status: domain.OrderStatus(q.Get("status")),
		Month:  q.Get("month"),
	})

	h.logger.Debug("orders listed", "count", len(orders))
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	o, found := h.store.Order(id)
	if !found {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.writeJSON(w, http.StatusOK, o)
}

// HandleCreateOrder prices the request against the current catalog before
// adding it. An order whose lines all name unknown products is rejected.
func (h *Handler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req store.OrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	draft := h.store.Draft(req)
	if len(draft.Products) == 0 {
		h.writeError(w, http.StatusBadRequest, "order has no products")
		return
	}

	o := h.store.AddOrder(r.Context(), draft)

	h.logger.Info("order created", "order_id", o.ID, "customer_id", o.CustomerID, "total", o.Total)
	h.writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) HandleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var patch domain.OrderPatch
	if !h.decode(w, r, &patch) {
		return
	}

	o, found := h.store.UpdateOrder(r.Context(), id, patch)
	if !found {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.logger.Info("order updated", "order_id", id, "status", o.Status)
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) HandleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if h.store.DeleteOrder(r.Context(), id) {
		h.logger.Info("order deleted", "order_id", id)
	}
	w.WriteHeader(http.StatusNoContent)
}
