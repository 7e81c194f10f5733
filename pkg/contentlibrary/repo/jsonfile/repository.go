// Package jsonfile persists the content library as a single JSON document:
// one object holding the folders collection and the content collection. Every
// mutation reads the whole document, applies the change in memory, and
// rewrites the whole document. A mutex serializes all operations, so within
// one process the read-modify-write cycle cannot interleave; concurrent
// processes sharing the file still resolve to last-writer-wins.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/edukit/content-library/pkg/contentlibrary"
)

// document is the persisted layout: two ordered sequences.
type document struct {
	Folders []*contentlibrary.Folder      `json:"folders"`
	Content []*contentlibrary.ContentItem `json:"content"`
}

// Repository implements contentlibrary.Repository on a JSON file document
type Repository struct {
	mu   sync.Mutex
	path string
}

// New creates a JSON-file repository backed by the given path. The parent
// directory is created if needed; the file itself is created on first write.
func New(path string) (contentlibrary.Repository, error) {
	if path == "" {
		return nil, errors.New("library file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create library directory: %w", err)
		}
	}
	return &Repository{path: path}, nil
}

// load reads the whole document. A missing file or a document that fails to
// parse degrades to an empty store rather than an error.
func (r *Repository) load() *document {
	doc := &document{}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return &document{}
	}
	return doc
}

// save rewrites the whole document. Write failures propagate to the caller.
func (r *Repository) save(doc *document) error {
	if doc.Folders == nil {
		doc.Folders = []*contentlibrary.Folder{}
	}
	if doc.Content == nil {
		doc.Content = []*contentlibrary.ContentItem{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode library document: %w", err)
	}

	// Write to a sibling temp file and rename so readers never observe a
	// half-written document.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write library document: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace library document: %w", err)
	}
	return nil
}

// Folder operations

func (r *Repository) CreateFolder(ctx context.Context, folder *contentlibrary.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	folderCopy := *folder
	doc.Folders = append(doc.Folders, &folderCopy)
	return r.save(doc)
}

func (r *Repository) GetFolder(ctx context.Context, id string) (*contentlibrary.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, folder := range r.load().Folders {
		if folder.ID == id {
			folderCopy := *folder
			return &folderCopy, nil
		}
	}
	return nil, contentlibrary.ErrFolderNotFound
}

func (r *Repository) UpdateFolder(ctx context.Context, folder *contentlibrary.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	for i, existing := range doc.Folders {
		if existing.ID == folder.ID {
			folderCopy := *folder
			doc.Folders[i] = &folderCopy
			return r.save(doc)
		}
	}
	return contentlibrary.ErrFolderNotFound
}

func (r *Repository) DeleteFolders(ctx context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	doc := r.load()
	kept := doc.Folders[:0]
	for _, folder := range doc.Folders {
		if !drop[folder.ID] {
			kept = append(kept, folder)
		}
	}
	doc.Folders = kept
	return r.save(doc)
}

func (r *Repository) ListChildFolders(ctx context.Context, parentID string) ([]*contentlibrary.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*contentlibrary.Folder
	for _, folder := range r.load().Folders {
		if folder.ParentID == parentID {
			folderCopy := *folder
			result = append(result, &folderCopy)
		}
	}
	sortFolders(result)
	return result, nil
}

func (r *Repository) ListAllFolders(ctx context.Context) ([]*contentlibrary.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	result := make([]*contentlibrary.Folder, 0, len(doc.Folders))
	for _, folder := range doc.Folders {
		folderCopy := *folder
		result = append(result, &folderCopy)
	}
	sortFolders(result)
	return result, nil
}

// Content item operations

func (r *Repository) CreateItem(ctx context.Context, item *contentlibrary.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	itemCopy := *item
	doc.Content = append(doc.Content, &itemCopy)
	return r.save(doc)
}

func (r *Repository) GetItem(ctx context.Context, id string) (*contentlibrary.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.load().Content {
		if item.ID == id {
			itemCopy := *item
			return &itemCopy, nil
		}
	}
	return nil, contentlibrary.ErrItemNotFound
}

func (r *Repository) UpdateItem(ctx context.Context, item *contentlibrary.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	for i, existing := range doc.Content {
		if existing.ID == item.ID {
			itemCopy := *item
			doc.Content[i] = &itemCopy
			return r.save(doc)
		}
	}
	return contentlibrary.ErrItemNotFound
}

func (r *Repository) DeleteItems(ctx context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	doc := r.load()
	kept := doc.Content[:0]
	for _, item := range doc.Content {
		if !drop[item.ID] {
			kept = append(kept, item)
		}
	}
	doc.Content = kept
	return r.save(doc)
}

func (r *Repository) DeleteItemsInFolders(ctx context.Context, folderIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		folders[id] = true
	}

	doc := r.load()
	kept := doc.Content[:0]
	for _, item := range doc.Content {
		if !folders[item.FolderID] {
			kept = append(kept, item)
		}
	}
	doc.Content = kept
	return r.save(doc)
}

func (r *Repository) ListItemsByFolder(ctx context.Context, folderID string) ([]*contentlibrary.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*contentlibrary.ContentItem
	for _, item := range r.load().Content {
		if item.FolderID == folderID {
			itemCopy := *item
			result = append(result, &itemCopy)
		}
	}
	sortItems(result)
	return result, nil
}

func (r *Repository) ListAllItems(ctx context.Context) ([]*contentlibrary.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()
	result := make([]*contentlibrary.ContentItem, 0, len(doc.Content))
	for _, item := range doc.Content {
		itemCopy := *item
		result = append(result, &itemCopy)
	}
	sortItems(result)
	return result, nil
}

func sortFolders(folders []*contentlibrary.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].CreatedAt.Before(folders[j].CreatedAt)
	})
}

func sortItems(items []*contentlibrary.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
