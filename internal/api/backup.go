package api

import (
	"errors"
	"net/http"

	"github.com/joao-fontenele/storefront-crm/internal/backup"
	"github.com/joao-fontenele/storefront-crm/internal/settings"
)

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	cfg, err := settings.Load(r.Context(), h.kv, h.logger)
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	doc := backup.NewDocument(h.store.Snapshot(), cfg)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.FileName(h.now())+`"`)
	if err := backup.Write(w, doc); err != nil {
		h.logger.Error("failed to write backup", "error", err)
		return
	}

	h.logger.Info("backup exported",
		"products", len(doc.Products),
		"customers", len(doc.Customers),
		"orders", len(doc.Orders),
	)
}

type importResponse struct {
	Imported       []string `json:"imported"`
	ReloadRequired bool     `json:"reloadRequired"`
}

// HandleImport writes the document to storage only. The running store keeps
// serving its current data until the process restarts.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	keys, err := backup.Import(r.Context(), h.kv, http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		if errors.Is(err, backup.ErrMalformed) {
			h.logger.Warn("rejected backup import", "error", err)
			h.writeError(w, http.StatusBadRequest, "import failed: invalid backup file")
			return
		}
		h.logger.Error("failed to import backup", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if keys == nil {
		keys = []string{}
	}
	h.logger.Info("backup imported", "keys", keys)
	h.writeJSON(w, http.StatusOK, importResponse{Imported: keys, ReloadRequired: true})
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := settings.Load(r.Context(), h.kv, h.logger)
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	cfg := settings.Default()
	if !h.decode(w, r, &cfg) {
		return
	}

	if err := settings.Save(r.Context(), h.kv, cfg); err != nil {
		h.logger.Error("failed to save settings", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("settings saved")
	h.writeJSON(w, http.StatusOK, cfg)
}
