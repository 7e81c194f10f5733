package contentlibrary

import (
	"context"
	"io"
	"time"
)

// Repository defines the interface for folder and content item persistence.
//
// Implementations must serialize mutations internally: callers issue plain
// read/write calls and rely on the repository for last-writer consistency.
// Get* methods return ErrFolderNotFound/ErrItemNotFound for missing ids.
type Repository interface {
	// Folder operations
	CreateFolder(ctx context.Context, folder *Folder) error
	GetFolder(ctx context.Context, id string) (*Folder, error)
	UpdateFolder(ctx context.Context, folder *Folder) error
	DeleteFolders(ctx context.Context, ids ...string) error
	ListChildFolders(ctx context.Context, parentID string) ([]*Folder, error)
	ListAllFolders(ctx context.Context) ([]*Folder, error)

	// Content item operations
	CreateItem(ctx context.Context, item *ContentItem) error
	GetItem(ctx context.Context, id string) (*ContentItem, error)
	UpdateItem(ctx context.Context, item *ContentItem) error
	DeleteItems(ctx context.Context, ids ...string) error
	DeleteItemsInFolders(ctx context.Context, folderIDs ...string) error
	ListItemsByFolder(ctx context.Context, folderID string) ([]*ContentItem, error)
	ListAllItems(ctx context.Context) ([]*ContentItem, error)
}

// BlobStore defines the interface for asset storage backends
type BlobStore interface {
	// Upload stores asset bytes under the given key
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// Download retrieves asset bytes for the given key
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete removes the asset stored under the given key
	Delete(ctx context.Context, objectKey string) error

	// GetDownloadURL returns a URL for downloading the asset
	GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error)

	// GetObjectMeta retrieves storage metadata for the asset
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// ObjectMeta contains storage metadata about a stored asset
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// EventSink defines the interface for library event handling. Sink failures
// are logged by the service and never fail the triggering operation.
type EventSink interface {
	// FolderCreated is fired when a folder is created
	FolderCreated(ctx context.Context, folder *Folder) error

	// ContentUploaded is fired when a content item is registered
	ContentUploaded(ctx context.Context, item *ContentItem) error

	// ItemRenamed is fired when a folder or file is renamed
	ItemRenamed(ctx context.Context, id string, kind ItemKind, newName string) error

	// ItemMoved is fired when a folder or file is moved
	ItemMoved(ctx context.Context, id string, kind ItemKind, newParentID string) error

	// ItemDeleted is fired when a folder or file is deleted
	ItemDeleted(ctx context.Context, id string, kind ItemKind) error
}
