package api

import (
	"net/http"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products := store.FilterProducts(h.store.Products(), store.ProductFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	})

	h.logger.Debug("products listed", "count", len(products))
	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, store.Categories(h.store.Products()))
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, found := h.store.Product(id)
	if !found {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if !h.decode(w, r, &p) {
		return
	}

	p = h.store.AddProduct(r.Context(), p)

	h.logger.Info("product created", "product_id", p.ID, "name", p.Name)
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var patch domain.ProductPatch
	if !h.decode(w, r, &patch) {
		return
	}

	p, found := h.store.UpdateProduct(r.Context(), id, patch)
	if !found {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("product updated", "product_id", id)
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if h.store.DeleteProduct(r.Context(), id) {
		h.logger.Info("product deleted", "product_id", id)
	}
	w.WriteHeader(http.StatusNoContent)
}
