package contentlibrary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const lastModifiedLayout = "2006-01-02"

// service implements the Service interface
type service struct {
	repository     Repository
	blobStores     map[string]BlobStore
	defaultBackend string
	eventSink      EventSink
	logger         *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore adds an asset storage backend. The first registered backend
// becomes the default unless WithDefaultBackend overrides it.
func WithBlobStore(name string, store BlobStore) Option {
	return func(s *service) {
		if s.blobStores == nil {
			s.blobStores = make(map[string]BlobStore)
		}
		s.blobStores[name] = store
		if s.defaultBackend == "" {
			s.defaultBackend = name
		}
	}
}

// WithDefaultBackend selects the backend used for asset uploads
func WithDefaultBackend(name string) Option {
	return func(s *service) {
		s.defaultBackend = name
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		blobStores: make(map[string]BlobStore),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// normalizeFolderID maps the empty string to the root sentinel.
func normalizeFolderID(id string) string {
	if id == "" {
		return RootFolderID
	}
	return id
}

// requireFolder verifies that id references an existing folder or root.
func (s *service) requireFolder(ctx context.Context, id string) error {
	if id == RootFolderID {
		return nil
	}
	if _, err := s.repository.GetFolder(ctx, id); err != nil {
		return err
	}
	return nil
}

// Directory operations

func (s *service) GetContents(ctx context.Context, folderID string) (*FolderContents, error) {
	folderID = normalizeFolderID(folderID)

	var folder *Folder
	if folderID != RootFolderID {
		f, err := s.repository.GetFolder(ctx, folderID)
		if err != nil && !errors.Is(err, ErrFolderNotFound) {
			return nil, &LibraryError{ID: folderID, Op: "get_contents", Err: err}
		}
		// Unknown folder ids produce an empty listing, not a failure.
		folder = f
	}

	folders, err := s.repository.ListChildFolders(ctx, folderID)
	if err != nil {
		return nil, &LibraryError{ID: folderID, Op: "get_contents", Err: err}
	}
	files, err := s.repository.ListItemsByFolder(ctx, folderID)
	if err != nil {
		return nil, &LibraryError{ID: folderID, Op: "get_contents", Err: err}
	}

	breadcrumbs, err := s.breadcrumbs(ctx, folder)
	if err != nil {
		return nil, &LibraryError{ID: folderID, Op: "get_contents", Err: err}
	}

	if folders == nil {
		folders = []*Folder{}
	}
	if files == nil {
		files = []*ContentItem{}
	}

	return &FolderContents{
		Folder:      folder,
		Folders:     folders,
		Files:       files,
		Breadcrumbs: breadcrumbs,
	}, nil
}

// breadcrumbs walks the parent chain from the given folder up to root and
// returns the path ordered outermost ancestor first, the folder itself last.
// Root (nil folder) yields an empty path.
func (s *service) breadcrumbs(ctx context.Context, folder *Folder) ([]Breadcrumb, error) {
	crumbs := []Breadcrumb{}
	if folder == nil {
		return crumbs, nil
	}

	seen := map[string]bool{}
	current := folder
	for current != nil {
		if seen[current.ID] {
			return nil, fmt.Errorf("folder %s: parent chain contains a cycle", current.ID)
		}
		seen[current.ID] = true
		crumbs = append(crumbs, Breadcrumb{ID: current.ID, Name: current.Name})

		if current.ParentID == RootFolderID || current.ParentID == "" {
			break
		}
		parent, err := s.repository.GetFolder(ctx, current.ParentID)
		if err != nil {
			if errors.Is(err, ErrFolderNotFound) {
				// Orphaned chain from legacy data: stop at the last known folder.
				break
			}
			return nil, err
		}
		current = parent
	}

	// Reverse in place so the outermost ancestor comes first.
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs, nil
}

func (s *service) GetTree(ctx context.Context) (*Tree, error) {
	allFolders, err := s.repository.ListAllFolders(ctx)
	if err != nil {
		return nil, &LibraryError{ID: RootFolderID, Op: "get_tree", Err: err}
	}
	allItems, err := s.repository.ListAllItems(ctx)
	if err != nil {
		return nil, &LibraryError{ID: RootFolderID, Op: "get_tree", Err: err}
	}

	// First pass: one node per folder.
	nodes := make(map[string]*FolderTreeNode, len(allFolders))
	for _, f := range allFolders {
		nodes[f.ID] = &FolderTreeNode{
			ID:        f.ID,
			Name:      f.Name,
			ParentID:  f.ParentID,
			CreatedAt: f.CreatedAt,
			Folders:   []*FolderTreeNode{},
			Files:     []*ContentItem{},
		}
	}

	// Second pass: nest folders under their parents.
	var rootFolders []*FolderTreeNode
	for _, f := range allFolders {
		node := nodes[f.ID]
		parentID := normalizeFolderID(f.ParentID)
		if parentID == RootFolderID {
			rootFolders = append(rootFolders, node)
			continue
		}
		if parent, ok := nodes[parentID]; ok {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: attach items to their folders.
	var rootFiles []*ContentItem
	for _, item := range allItems {
		folderID := normalizeFolderID(item.FolderID)
		if folderID == RootFolderID {
			rootFiles = append(rootFiles, item)
			continue
		}
		if parent, ok := nodes[folderID]; ok {
			parent.Files = append(parent.Files, item)
		}
	}

	if rootFolders == nil {
		rootFolders = []*FolderTreeNode{}
	}
	if rootFiles == nil {
		rootFiles = []*ContentItem{}
	}
	return &Tree{Folders: rootFolders, Files: rootFiles}, nil
}

// Folder operations

func (s *service) CreateFolder(ctx context.Context, req CreateFolderRequest) (*Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parentID := normalizeFolderID(req.ParentID)
	if err := s.requireFolder(ctx, parentID); err != nil {
		return nil, fmt.Errorf("parent folder %s: %w", parentID, err)
	}

	folder := &Folder{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repository.CreateFolder(ctx, folder); err != nil {
		return nil, &LibraryError{ID: folder.ID, Op: "create_folder", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.FolderCreated(ctx, folder); err != nil {
			s.logger.Warn("folder created event failed", "folder_id", folder.ID, "error", err)
		}
	}

	return folder, nil
}

// Content item operations

func (s *service) UploadContent(ctx context.Context, req UploadContentRequest) (*ContentItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	folderID := normalizeFolderID(req.FolderID)
	if err := s.requireFolder(ctx, folderID); err != nil {
		return nil, fmt.Errorf("folder %s: %w", folderID, err)
	}

	now := time.Now().UTC()
	courseIDs := req.CourseIDs
	if courseIDs == nil {
		courseIDs = []string{}
	}
	item := &ContentItem{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Type:         req.Type,
		URL:          req.URL,
		FileURL:      req.FileURL,
		FolderID:     folderID,
		Size:         req.Size,
		LastModified: now.Format(lastModifiedLayout),
		Status:       ItemStatusPublished,
		CourseIDs:    courseIDs,
		Description:  req.Description,
		CreatedAt:    now,
	}

	if err := s.repository.CreateItem(ctx, item); err != nil {
		return nil, &LibraryError{ID: item.ID, Op: "upload_content", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ContentUploaded(ctx, item); err != nil {
			s.logger.Warn("content uploaded event failed", "item_id", item.ID, "error", err)
		}
	}

	return item, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*ContentItem, error) {
	return s.repository.GetItem(ctx, id)
}

// Structural mutations

func (s *service) RenameItem(ctx context.Context, req RenameItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	newName := strings.TrimSpace(req.NewName)

	switch req.Kind {
	case ItemKindFolder:
		folder, err := s.repository.GetFolder(ctx, req.ID)
		if errors.Is(err, ErrFolderNotFound) {
			// Renaming an absent id succeeds without touching anything.
			return nil
		}
		if err != nil {
			return &LibraryError{ID: req.ID, Op: "rename", Err: err}
		}
		folder.Name = newName
		if err := s.repository.UpdateFolder(ctx, folder); err != nil {
			return &LibraryError{ID: req.ID, Op: "rename", Err: err}
		}
	case ItemKindFile:
		item, err := s.repository.GetItem(ctx, req.ID)
		if errors.Is(err, ErrItemNotFound) {
			return nil
		}
		if err != nil {
			return &LibraryError{ID: req.ID, Op: "rename", Err: err}
		}
		item.Title = newName
		item.LastModified = time.Now().UTC().Format(lastModifiedLayout)
		if err := s.repository.UpdateItem(ctx, item); err != nil {
			return &LibraryError{ID: req.ID, Op: "rename", Err: err}
		}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemRenamed(ctx, req.ID, req.Kind, newName); err != nil {
			s.logger.Warn("item renamed event failed", "item_id", req.ID, "error", err)
		}
	}
	return nil
}

func (s *service) MoveItem(ctx context.Context, req MoveItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	newParentID := normalizeFolderID(req.NewParentID)
	if err := s.requireFolder(ctx, newParentID); err != nil {
		return fmt.Errorf("target folder %s: %w", newParentID, err)
	}

	switch req.Kind {
	case ItemKindFolder:
		folder, err := s.repository.GetFolder(ctx, req.ID)
		if err != nil {
			return &LibraryError{ID: req.ID, Op: "move", Err: err}
		}
		if err := s.checkNoCircularReference(ctx, req.ID, newParentID); err != nil {
			return err
		}
		folder.ParentID = newParentID
		if err := s.repository.UpdateFolder(ctx, folder); err != nil {
			return &LibraryError{ID: req.ID, Op: "move", Err: err}
		}
	case ItemKindFile:
		item, err := s.repository.GetItem(ctx, req.ID)
		if err != nil {
			return &LibraryError{ID: req.ID, Op: "move", Err: err}
		}
		item.FolderID = newParentID
		if err := s.repository.UpdateItem(ctx, item); err != nil {
			return &LibraryError{ID: req.ID, Op: "move", Err: err}
		}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemMoved(ctx, req.ID, req.Kind, newParentID); err != nil {
			s.logger.Warn("item moved event failed", "item_id", req.ID, "error", err)
		}
	}
	return nil
}

// checkNoCircularReference rejects moving folderID under newParentID when the
// target is the folder itself or one of its descendants.
func (s *service) checkNoCircularReference(ctx context.Context, folderID, newParentID string) error {
	if folderID == newParentID {
		return ErrCircularReference
	}
	currentID := newParentID
	seen := map[string]bool{}
	for currentID != RootFolderID && currentID != "" {
		if seen[currentID] {
			return ErrCircularReference
		}
		seen[currentID] = true

		parent, err := s.repository.GetFolder(ctx, currentID)
		if err != nil {
			if errors.Is(err, ErrFolderNotFound) {
				return nil
			}
			return err
		}
		if parent.ParentID == folderID {
			return ErrCircularReference
		}
		currentID = parent.ParentID
	}
	return nil
}

func (s *service) DeleteItem(ctx context.Context, req DeleteItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	switch req.Kind {
	case ItemKindFile:
		// Deleting an absent id is a silent no-op.
		if err := s.repository.DeleteItems(ctx, req.ID); err != nil {
			return &LibraryError{ID: req.ID, Op: "delete", Err: err}
		}
	case ItemKindFolder:
		folderIDs, err := s.collectSubtree(ctx, req.ID)
		if err != nil {
			return &LibraryError{ID: req.ID, Op: "delete", Err: err}
		}
		if err := s.repository.DeleteItemsInFolders(ctx, folderIDs...); err != nil {
			return &LibraryError{ID: req.ID, Op: "delete", Err: err}
		}
		if err := s.repository.DeleteFolders(ctx, folderIDs...); err != nil {
			return &LibraryError{ID: req.ID, Op: "delete", Err: err}
		}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemDeleted(ctx, req.ID, req.Kind); err != nil {
			s.logger.Warn("item deleted event failed", "item_id", req.ID, "error", err)
		}
	}
	return nil
}

// collectSubtree gathers the folder id and every descendant folder id with an
// iterative worklist. The seen set keeps the walk terminating even on a
// corrupted parent chain.
func (s *service) collectSubtree(ctx context.Context, folderID string) ([]string, error) {
	ids := []string{folderID}
	seen := map[string]bool{folderID: true}
	queue := []string{folderID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.repository.ListChildFolders(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids, nil
}

// Asset operations

func (s *service) UploadAsset(ctx context.Context, reader io.Reader, req UploadAssetRequest) (*ContentItem, error) {
	item, err := s.repository.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, &LibraryError{ID: req.ItemID, Op: "upload_asset", Err: err}
	}

	backend, err := s.GetBackend(s.defaultBackend)
	if err != nil {
		return nil, err
	}

	objectKey := item.ID
	if err := backend.Upload(ctx, objectKey, reader); err != nil {
		return nil, &StorageError{Backend: s.defaultBackend, Key: objectKey, Op: "upload", Err: err}
	}

	if meta, err := backend.GetObjectMeta(ctx, objectKey); err == nil {
		item.Size = formatSize(meta.Size)
	}
	if url, err := backend.GetDownloadURL(ctx, objectKey, req.FileName); err == nil && url != "" {
		item.FileURL = url
	} else {
		// Backends without addressable URLs serve through the API instead.
		item.FileURL = fmt.Sprintf("/api/v1/library/assets/contents/%s/asset", item.ID)
	}
	item.LastModified = time.Now().UTC().Format(lastModifiedLayout)

	if err := s.repository.UpdateItem(ctx, item); err != nil {
		return nil, &LibraryError{ID: item.ID, Op: "upload_asset", Err: err}
	}

	return item, nil
}

func (s *service) DownloadAsset(ctx context.Context, itemID string) (io.ReadCloser, error) {
	item, err := s.repository.GetItem(ctx, itemID)
	if err != nil {
		return nil, &LibraryError{ID: itemID, Op: "download_asset", Err: err}
	}
	if item.FileURL == "" {
		return nil, ErrNoAsset
	}

	backend, err := s.GetBackend(s.defaultBackend)
	if err != nil {
		return nil, err
	}
	reader, err := backend.Download(ctx, item.ID)
	if err != nil {
		return nil, &StorageError{Backend: s.defaultBackend, Key: item.ID, Op: "download", Err: err}
	}
	return reader, nil
}

func (s *service) GetAssetURL(ctx context.Context, itemID string) (string, error) {
	item, err := s.repository.GetItem(ctx, itemID)
	if err != nil {
		return "", &LibraryError{ID: itemID, Op: "get_asset_url", Err: err}
	}
	if item.FileURL == "" {
		return "", ErrNoAsset
	}

	backend, err := s.GetBackend(s.defaultBackend)
	if err != nil {
		return "", err
	}
	url, err := backend.GetDownloadURL(ctx, item.ID, item.Title)
	if err != nil || url == "" {
		return item.FileURL, nil
	}
	return url, nil
}

// Storage backend operations

func (s *service) RegisterBackend(name string, backend BlobStore) {
	if s.blobStores == nil {
		s.blobStores = make(map[string]BlobStore)
	}
	s.blobStores[name] = backend
	if s.defaultBackend == "" {
		s.defaultBackend = name
	}
}

func (s *service) GetBackend(name string) (BlobStore, error) {
	backend, ok := s.blobStores[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStorageBackendNotFound, name)
	}
	return backend, nil
}

// formatSize renders a byte count the way library listings display it.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
