package contentlibrary

import (
	"context"
	"io"
)

// Service defines the main interface for the content library
type Service interface {
	// Directory operations
	GetContents(ctx context.Context, folderID string) (*FolderContents, error)
	GetTree(ctx context.Context) (*Tree, error)

	// Folder operations
	CreateFolder(ctx context.Context, req CreateFolderRequest) (*Folder, error)

	// Content item operations
	UploadContent(ctx context.Context, req UploadContentRequest) (*ContentItem, error)
	GetItem(ctx context.Context, id string) (*ContentItem, error)

	// Structural mutations
	RenameItem(ctx context.Context, req RenameItemRequest) error
	MoveItem(ctx context.Context, req MoveItemRequest) error
	DeleteItem(ctx context.Context, req DeleteItemRequest) error

	// Asset operations
	UploadAsset(ctx context.Context, reader io.Reader, req UploadAssetRequest) (*ContentItem, error)
	DownloadAsset(ctx context.Context, itemID string) (io.ReadCloser, error)
	GetAssetURL(ctx context.Context, itemID string) (string, error)

	// Storage backend operations
	RegisterBackend(name string, backend BlobStore)
	GetBackend(name string) (BlobStore, error)
}
