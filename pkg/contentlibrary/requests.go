package contentlibrary

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request DTOs

const maxNameLength = 255

// CreateFolderRequest contains parameters for creating a folder.
// ParentID may be RootFolderID or empty (normalized to root).
type CreateFolderRequest struct {
	Name     string
	ParentID string
}

// Validate checks the request fields.
func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxNameLength)),
	)
}

// UploadContentRequest contains the caller-supplied fields of a content item.
// ID, status and last-modified are assigned by the service.
type UploadContentRequest struct {
	Title       string
	Type        ContentType
	URL         string
	FileURL     string
	FolderID    string
	Size        string
	CourseIDs   []string
	Description string
}

// Validate checks the request fields.
func (r UploadContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.Type, validation.Required, validation.By(func(interface{}) error {
			if !r.Type.IsValid() {
				return ErrInvalidContentType
			}
			return nil
		})),
	)
}

// RenameItemRequest renames a folder (Name) or a file (Title).
type RenameItemRequest struct {
	ID      string
	Kind    ItemKind
	NewName string
}

// Validate checks the request fields.
func (r RenameItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.NewName, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.Kind, validation.Required, validation.By(func(interface{}) error {
			if !r.Kind.IsValid() {
				return ErrInvalidItemKind
			}
			return nil
		})),
	)
}

// DeleteItemRequest deletes a folder (with cascade) or a single file.
type DeleteItemRequest struct {
	ID   string
	Kind ItemKind
}

// Validate checks the request fields.
func (r DeleteItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Kind, validation.Required, validation.By(func(interface{}) error {
			if !r.Kind.IsValid() {
				return ErrInvalidItemKind
			}
			return nil
		})),
	)
}

// MoveItemRequest relocates a folder or file under a new parent folder.
// NewParentID may be RootFolderID or empty (normalized to root).
type MoveItemRequest struct {
	ID          string
	Kind        ItemKind
	NewParentID string
}

// Validate checks the request fields.
func (r MoveItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Kind, validation.Required, validation.By(func(interface{}) error {
			if !r.Kind.IsValid() {
				return ErrInvalidItemKind
			}
			return nil
		})),
	)
}

// UploadAssetRequest carries metadata for a binary asset upload.
type UploadAssetRequest struct {
	ItemID   string
	MimeType string
	FileName string
}
