package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/edukit/content-library/pkg/contentlibrary"
)

// AssetsHandler handles direct upload and download of item assets
type AssetsHandler struct {
	service contentlibrary.Service
}

// NewAssetsHandler creates a new assets handler
func NewAssetsHandler(service contentlibrary.Service) *AssetsHandler {
	return &AssetsHandler{service: service}
}

// Routes returns the routes for asset transfer
func (h *AssetsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/contents/{item_id}/asset", h.UploadAsset)
	r.Get("/contents/{item_id}/asset", h.DownloadAsset)
	r.Get("/contents/{item_id}/asset-url", h.GetAssetURL)

	return r
}

// AssetURLResponse is the response body for a download URL lookup
type AssetURLResponse struct {
	ItemID string `json:"item_id"`
	URL    string `json:"url"`
}

// UploadAsset stores the request body as the item's binary asset
func (h *AssetsHandler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	fileName := r.URL.Query().Get("filename")
	mimeType := r.Header.Get("Content-Type")

	item, err := h.service.UploadAsset(r.Context(), r.Body, contentlibrary.UploadAssetRequest{
		ItemID:   itemID,
		MimeType: mimeType,
		FileName: fileName,
	})
	if err != nil {
		slog.Error("Failed to upload asset", "item_id", itemID, "error", err)
		writeServiceError(w, err)
		return
	}

	slog.Info("Asset uploaded", "item_id", itemID, "size", item.Size)
	render.JSON(w, r, item)
}

// DownloadAsset streams the item's binary asset to the client
func (h *AssetsHandler) DownloadAsset(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	rc, err := h.service.DownloadAsset(r.Context(), itemID)
	if err != nil {
		slog.Error("Failed to download asset", "item_id", itemID, "error", err)
		writeServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("Failed to stream asset", "item_id", itemID, "error", err)
	}
}

// GetAssetURL returns a download URL for the item's asset
func (h *AssetsHandler) GetAssetURL(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	url, err := h.service.GetAssetURL(r.Context(), itemID)
	if err != nil {
		slog.Error("Failed to get asset URL", "item_id", itemID, "error", err)
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, AssetURLResponse{ItemID: itemID, URL: url})
}
