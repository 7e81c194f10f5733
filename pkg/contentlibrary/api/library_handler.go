// Package api provides ready-to-mount HTTP handlers for the content library.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/edukit/content-library/pkg/contentlibrary"
)

// LibraryHandler handles HTTP requests for folders and content items
type LibraryHandler struct {
	service contentlibrary.Service
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(service contentlibrary.Service) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// Routes returns the routes for the library
func (h *LibraryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/contents", h.GetContents)
	r.Get("/folders/{folder_id}/contents", h.GetFolderContents)
	r.Get("/tree", h.GetTree)

	r.Post("/folders", h.CreateFolder)
	r.Post("/contents", h.UploadContent)
	r.Get("/contents/{item_id}", h.GetItem)

	r.Patch("/items/{item_id}/rename", h.RenameItem)
	r.Post("/items/{item_id}/move", h.MoveItem)
	r.Delete("/items/{item_id}", h.DeleteItem)

	return r
}

// CreateFolderRequest is the request body for creating a folder
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

// UploadContentRequest is the request body for registering a content item
type UploadContentRequest struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	URL         string   `json:"url"`
	FileURL     string   `json:"file_url"`
	FolderID    string   `json:"folder_id"`
	Size        string   `json:"size"`
	CourseIDs   []string `json:"course_ids"`
	Description string   `json:"description"`
}

// RenameItemRequest is the request body for renaming a folder or file
type RenameItemRequest struct {
	Kind    string `json:"kind"`
	NewName string `json:"new_name"`
}

// MoveItemRequest is the request body for moving a folder or file
type MoveItemRequest struct {
	Kind        string `json:"kind"`
	NewParentID string `json:"new_parent_id"`
}

// GetContents lists a folder given by the folder_id query parameter
// (defaults to root)
func (h *LibraryHandler) GetContents(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folder_id")
	h.listContents(w, r, folderID)
}

// GetFolderContents lists the folder named in the URL path
func (h *LibraryHandler) GetFolderContents(w http.ResponseWriter, r *http.Request) {
	h.listContents(w, r, chi.URLParam(r, "folder_id"))
}

func (h *LibraryHandler) listContents(w http.ResponseWriter, r *http.Request, folderID string) {
	contents, err := h.service.GetContents(r.Context(), folderID)
	if err != nil {
		slog.Error("Failed to list folder contents", "folder_id", folderID, "error", err)
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, contents)
}

// GetTree returns the full nested folder tree
func (h *LibraryHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.GetTree(r.Context())
	if err != nil {
		slog.Error("Failed to build library tree", "error", err)
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, tree)
}

// CreateFolder creates a new folder
func (h *LibraryHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	folder, err := h.service.CreateFolder(r.Context(), contentlibrary.CreateFolderRequest{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		slog.Error("Failed to create folder", "name", req.Name, "parent_id", req.ParentID, "error", err)
		writeServiceError(w, err)
		return
	}

	slog.Info("Folder created", "folder_id", folder.ID, "parent_id", folder.ParentID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, folder)
}

// UploadContent registers a new content item
func (h *LibraryHandler) UploadContent(w http.ResponseWriter, r *http.Request) {
	var req UploadContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.UploadContent(r.Context(), contentlibrary.UploadContentRequest{
		Title:       req.Title,
		Type:        contentlibrary.ContentType(req.Type),
		URL:         req.URL,
		FileURL:     req.FileURL,
		FolderID:    req.FolderID,
		Size:        req.Size,
		CourseIDs:   req.CourseIDs,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("Failed to upload content", "title", req.Title, "folder_id", req.FolderID, "error", err)
		writeServiceError(w, err)
		return
	}

	slog.Info("Content uploaded", "item_id", item.ID, "folder_id", item.FolderID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

// GetItem retrieves a content item by ID
func (h *LibraryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		slog.Error("Failed to get item", "item_id", itemID, "error", err)
		writeServiceError(w, err)
		return
	}

	render.JSON(w, r, item)
}

// RenameItem renames a folder or file
func (h *LibraryHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req RenameItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.service.RenameItem(r.Context(), contentlibrary.RenameItemRequest{
		ID:      itemID,
		Kind:    contentlibrary.ItemKind(req.Kind),
		NewName: req.NewName,
	})
	if err != nil {
		slog.Error("Failed to rename item", "item_id", itemID, "kind", req.Kind, "error", err)
		writeServiceError(w, err)
		return
	}

	slog.Info("Item renamed", "item_id", itemID, "kind", req.Kind)
	w.WriteHeader(http.StatusNoContent)
}

// MoveItem moves a folder or file under a new parent
func (h *LibraryHandler) MoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req MoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.service.MoveItem(r.Context(), contentlibrary.MoveItemRequest{
		ID:          itemID,
		Kind:        contentlibrary.ItemKind(req.Kind),
		NewParentID: req.NewParentID,
	})
	if err != nil {
		slog.Error("Failed to move item", "item_id", itemID, "kind", req.Kind, "error", err)
		writeServiceError(w, err)
		return
	}

	slog.Info("Item moved", "item_id", itemID, "new_parent_id", req.NewParentID)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem deletes a folder (cascading) or a single file.
// The kind is given by the "type" query parameter ("folder" or "file").
func (h *LibraryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	kind := r.URL.Query().Get("type")

	err := h.service.DeleteItem(r.Context(), contentlibrary.DeleteItemRequest{
		ID:   itemID,
		Kind: contentlibrary.ItemKind(kind),
	})
	if err != nil {
		slog.Error("Failed to delete item", "item_id", itemID, "kind", kind, "error", err)
		writeServiceError(w, err)
		return
	}

	slog.Info("Item deleted", "item_id", itemID, "kind", kind)
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps service errors to HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contentlibrary.ErrFolderNotFound),
		errors.Is(err, contentlibrary.ErrItemNotFound),
		errors.Is(err, contentlibrary.ErrNoAsset):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, contentlibrary.ErrInvalidContentType),
		errors.Is(err, contentlibrary.ErrInvalidItemKind),
		errors.Is(err, contentlibrary.ErrCircularReference),
		isValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func isValidationError(err error) bool {
	var fieldErrs validation.Errors
	return errors.As(err, &fieldErrs)
}
