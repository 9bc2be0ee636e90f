package api

import (
	"net/http"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

func (h *Handler) HandleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := store.FilterCustomers(h.store.Customers(), store.CustomerFilter{
		Query:  r.URL.Query().Get("q"),
		Status: domain.CustomerStatus(r.URL.Query().Get("status")),
	})

	h.logger.Debug("customers listed", "count", len(customers))
	h.writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) HandleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	c, found := h.store.Customer(id)
	if !found {
		h.writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if _, found := h.store.Customer(id); !found {
		h.writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	h.writeJSON(w, http.StatusOK, store.OrdersOf(h.store.Orders(), id))
}

func (h *Handler) HandleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if !h.decode(w, r, &c) {
		return
	}

	c = h.store.AddCustomer(r.Context(), c)

	h.logger.Info("customer created", "customer_id", c.ID)
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) HandleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var patch domain.CustomerPatch
	if !h.decode(w, r, &patch) {
		return
	}

	c, found := h.store.UpdateCustomer(r.Context(), id, patch)
	if !found {
		h.writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	h.logger.Info("customer updated", "customer_id", id)
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if h.store.DeleteCustomer(r.Context(), id) {
		h.logger.Info("customer deleted", "customer_id", id)
	}
	w.WriteHeader(http.StatusNoContent)
}
