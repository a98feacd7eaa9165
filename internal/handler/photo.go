package handler

import (
	"io"
	"log/slog"
	"net/http"

	"hearthside/internal/assets"
	"hearthside/internal/auth"
	"hearthside/internal/model"
	"hearthside/internal/store"
	ws "hearthside/internal/websocket"
)

type PhotoHandler struct {
	photos  *store.PhotoStore
	encoder assets.Encoder
	hub     *ws.Hub
	logger  *slog.Logger
}

func NewPhotoHandler(photos *store.PhotoStore, encoder assets.Encoder, hub *ws.Hub, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{photos: photos, encoder: encoder, hub: hub, logger: logger}
}

// Upload accepts a multipart form with an "image" file and optional
// "caption" field. The image goes through the binary asset encoder; the
// stored reference is what the feed serves.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read image"})
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image data is required"})
		return
	}

	ref, err := h.encoder.Encode(data, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("encode photo", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode image"})
		return
	}

	photo, err := h.photos.Create(ac.FamilyCode, ref, r.FormValue("caption"), ac.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("photo", "created", photo.ID, nil))
	writeJSON(w, http.StatusCreated, photo)
}

// List returns photos newest first.
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	photos, err := h.photos.List(ac.FamilyCode)
	if err != nil {
		h.logger.Error("list photos", "error", err)
		respondError(w, err)
		return
	}
	if photos == nil {
		photos = []model.Photo{}
	}
	writeJSON(w, http.StatusOK, photos)
}
