package contentlibrary

import "time"

// RootFolderID is the reserved identifier for the top level of the library
// tree. Root has no backing Folder record; it is always a valid parent.
const RootFolderID = "root"

// ContentType is the domain type for content item kinds.
type ContentType string

// Content type constants (typed).
const (
	ContentTypeVideo ContentType = "Video"
	ContentTypePDF   ContentType = "PDF"
	ContentTypeImage ContentType = "Image"
	ContentTypeDoc   ContentType = "Doc"
	ContentTypeOther ContentType = "Other"
)

// IsValid reports whether t is one of the known content types.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeVideo, ContentTypePDF, ContentTypeImage, ContentTypeDoc, ContentTypeOther:
		return true
	}
	return false
}

// ItemStatus is the domain type for content item lifecycle states.
type ItemStatus string

// Item status constants (typed).
const (
	ItemStatusPublished ItemStatus = "Published"
	ItemStatusDraft     ItemStatus = "Draft"
	ItemStatusArchived  ItemStatus = "Archived"
)

// IsValid reports whether s is one of the known item statuses.
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPublished, ItemStatusDraft, ItemStatusArchived:
		return true
	}
	return false
}

// ItemKind discriminates folders from files in rename/delete/move requests.
type ItemKind string

// Item kind constants (typed).
const (
	ItemKindFolder ItemKind = "folder"
	ItemKindFile   ItemKind = "file"
)

// IsValid reports whether k is one of the known item kinds.
func (k ItemKind) IsValid() bool {
	return k == ItemKindFolder || k == ItemKindFile
}

// Folder is a named node in the content tree. ParentID references another
// folder or RootFolderID; the relation must stay acyclic.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentItem is a leaf record describing one piece of instructional material
// and its containing folder. URL and FileURL are locations of the underlying
// asset; neither is validated by the library.
//
// LastModified carries date-only granularity: it is set to the upload date
// and bumped again only when the item is renamed.
type ContentItem struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Type         ContentType `json:"type"`
	URL          string      `json:"url,omitempty"`
	FileURL      string      `json:"file_url,omitempty"`
	FolderID     string      `json:"folder_id"`
	Size         string      `json:"size,omitempty"`
	LastModified string      `json:"last_modified"`
	Status       ItemStatus  `json:"status"`
	CourseIDs    []string    `json:"course_ids"`
	Description  string      `json:"description,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Breadcrumb is one entry of the ancestor path from root to a folder.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderContents is a directory listing with ancestry information.
// Folder is nil when the listing target is root or an unknown id.
type FolderContents struct {
	Folder      *Folder        `json:"folder,omitempty"`
	Folders     []*Folder      `json:"folders"`
	Files       []*ContentItem `json:"files"`
	Breadcrumbs []Breadcrumb   `json:"breadcrumbs"`
}

// FolderTreeNode is one folder of the nested library tree with its children.
type FolderTreeNode struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	ParentID  string            `json:"parent_id"`
	CreatedAt time.Time         `json:"created_at"`
	Folders   []*FolderTreeNode `json:"folders"`
	Files     []*ContentItem    `json:"files"`
}

// Tree is the full library forest: top-level folders and root-level items.
type Tree struct {
	Folders []*FolderTreeNode `json:"folders"`
	Files   []*ContentItem    `json:"files"`
}
