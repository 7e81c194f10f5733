package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/edukit/content-library/pkg/contentlibrary"
)

// Repository implements contentlibrary.Repository using in-memory storage
type Repository struct {
	mu      sync.RWMutex
	folders map[string]*contentlibrary.Folder
	items   map[string]*contentlibrary.ContentItem
}

// New creates a new in-memory repository
func New() contentlibrary.Repository {
	return &Repository{
		folders: make(map[string]*contentlibrary.Folder),
		items:   make(map[string]*contentlibrary.ContentItem),
	}
}

// Folder operations

func (r *Repository) CreateFolder(ctx context.Context, folder *contentlibrary.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	folderCopy := *folder
	r.folders[folder.ID] = &folderCopy

	return nil
}

func (r *Repository) GetFolder(ctx context.Context, id string) (*contentlibrary.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	folder, exists := r.folders[id]
	if !exists {
		return nil, contentlibrary.ErrFolderNotFound
	}

	folderCopy := *folder
	return &folderCopy, nil
}

func (r *Repository) UpdateFolder(ctx context.Context, folder *contentlibrary.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.folders[folder.ID]; !exists {
		return contentlibrary.ErrFolderNotFound
	}

	folderCopy := *folder
	r.folders[folder.ID] = &folderCopy

	return nil
}

func (r *Repository) DeleteFolders(ctx context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.folders, id)
	}
	return nil
}

func (r *Repository) ListChildFolders(ctx context.Context, parentID string) ([]*contentlibrary.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*contentlibrary.Folder
	for _, folder := range r.folders {
		if folder.ParentID == parentID {
			folderCopy := *folder
			result = append(result, &folderCopy)
		}
	}

	// Sort by created_at ascending so listings are stable
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) ListAllFolders(ctx context.Context) ([]*contentlibrary.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*contentlibrary.Folder, 0, len(r.folders))
	for _, folder := range r.folders {
		folderCopy := *folder
		result = append(result, &folderCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Content item operations

func (r *Repository) CreateItem(ctx context.Context, item *contentlibrary.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	itemCopy := *item
	r.items[item.ID] = &itemCopy

	return nil
}

func (r *Repository) GetItem(ctx context.Context, id string) (*contentlibrary.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, contentlibrary.ErrItemNotFound
	}

	itemCopy := *item
	return &itemCopy, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *contentlibrary.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return contentlibrary.ErrItemNotFound
	}

	itemCopy := *item
	r.items[item.ID] = &itemCopy

	return nil
}

func (r *Repository) DeleteItems(ctx context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.items, id)
	}
	return nil
}

func (r *Repository) DeleteItemsInFolders(ctx context.Context, folderIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		folders[id] = true
	}
	for id, item := range r.items {
		if folders[item.FolderID] {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *Repository) ListItemsByFolder(ctx context.Context, folderID string) ([]*contentlibrary.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*contentlibrary.ContentItem
	for _, item := range r.items {
		if item.FolderID == folderID {
			itemCopy := *item
			result = append(result, &itemCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) ListAllItems(ctx context.Context) ([]*contentlibrary.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*contentlibrary.ContentItem, 0, len(r.items))
	for _, item := range r.items {
		itemCopy := *item
		result = append(result, &itemCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
