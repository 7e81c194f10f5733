package contentlibrary

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrFolderNotFound indicates a folder was not found
	ErrFolderNotFound = errors.New("folder not found")

	// ErrItemNotFound indicates a content item was not found
	ErrItemNotFound = errors.New("content item not found")

	// ErrStorageBackendNotFound indicates a storage backend was not found
	ErrStorageBackendNotFound = errors.New("storage backend not found")

	// ErrInvalidContentType indicates an unknown content type
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidItemKind indicates an unknown item kind discriminator
	ErrInvalidItemKind = errors.New("invalid item kind")

	// ErrCircularReference indicates a move that would make a folder its own
	// ancestor
	ErrCircularReference = errors.New("move would create a circular folder reference")

	// ErrNoAsset indicates a content item has no stored asset
	ErrNoAsset = errors.New("content item has no stored asset")
)

// LibraryError represents an error from a library operation
type LibraryError struct {
	ID  string
	Op  string
	Err error
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("library operation %s failed for %s: %v", e.Op, e.ID, e.Err)
}

func (e *LibraryError) Unwrap() error {
	return e.Err
}

// StorageError represents an error from an asset storage operation
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
