package handler

import (
	"net/http"

	"hearthside/internal/assets"
)

type AssetHandler struct {
	store *assets.Store
}

func NewAssetHandler(store *assets.Store) *AssetHandler {
	return &AssetHandler{store: store}
}

// Serve resolves an asset reference issued by the encoder.
func (h *AssetHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	a, ok := h.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "asset not found"})
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Write(a.Data)
}
