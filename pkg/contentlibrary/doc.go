// Package contentlibrary provides a hierarchical content-library service for
// education platforms: a forest of named folders and content items
// (video/PDF/image/doc) with pluggable repository and asset storage backends.
//
// It exposes a single Service interface that orchestrates directory listings
// with breadcrumb ancestry, folder creation, content registration, rename,
// move, cascading delete, and optional binary asset storage. Implementations
// of repositories (memory, JSON file document, Postgres) and blob stores
// (memory, filesystem, S3) are provided under subpackages.
//
// # Consistency model
//
// The folder relation on ParentID is kept acyclic by every mutating
// operation: parents are validated at creation time and folder moves are
// rejected when they would make a folder its own ancestor. Repositories
// serialize mutations internally; the service issues plain read/write calls
// and holds no cross-operation locks, so two callers racing on the same
// record resolve to last-writer-wins. Deleting or renaming an id that no
// longer exists is a silent no-op by contract.
package contentlibrary
