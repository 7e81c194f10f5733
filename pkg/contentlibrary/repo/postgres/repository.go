package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edukit/content-library/pkg/contentlibrary"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements contentlibrary.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) contentlibrary.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) contentlibrary.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry in %s", operation)
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found in %s", operation)
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Folder operations

func (r *Repository) CreateFolder(ctx context.Context, folder *contentlibrary.Folder) error {
	query := `
		INSERT INTO library_folders (id, name, parent_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, folder.ID, folder.Name, folder.ParentID, folder.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create folder", err)
	}
	return nil
}

func (r *Repository) GetFolder(ctx context.Context, id string) (*contentlibrary.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM library_folders WHERE id = $1`

	var folder contentlibrary.Folder
	err := r.db.QueryRow(ctx, query, id).Scan(
		&folder.ID, &folder.Name, &folder.ParentID, &folder.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contentlibrary.ErrFolderNotFound
		}
		return nil, r.handlePostgresError("get folder", err)
	}
	return &folder, nil
}

func (r *Repository) UpdateFolder(ctx context.Context, folder *contentlibrary.Folder) error {
	query := `
		UPDATE library_folders SET name = $2, parent_id = $3
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, folder.ID, folder.Name, folder.ParentID)
	if err != nil {
		return r.handlePostgresError("update folder", err)
	}
	if tag.RowsAffected() == 0 {
		return contentlibrary.ErrFolderNotFound
	}
	return nil
}

func (r *Repository) DeleteFolders(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM library_folders WHERE id = ANY($1)`
	if _, err := r.db.Exec(ctx, query, ids); err != nil {
		return r.handlePostgresError("delete folders", err)
	}
	return nil
}

func (r *Repository) ListChildFolders(ctx context.Context, parentID string) ([]*contentlibrary.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM library_folders WHERE parent_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, r.handlePostgresError("list child folders", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

func (r *Repository) ListAllFolders(ctx context.Context) ([]*contentlibrary.Folder, error) {
	query := `
		SELECT id, name, parent_id, created_at
		FROM library_folders
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list all folders", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

// Content item operations

func (r *Repository) CreateItem(ctx context.Context, item *contentlibrary.ContentItem) error {
	query := `
		INSERT INTO library_content (
			id, title, content_type, url, file_url, folder_id,
			size, last_modified, status, course_ids, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		item.ID, item.Title, item.Type, item.URL, item.FileURL, item.FolderID,
		item.Size, item.LastModified, item.Status, item.CourseIDs,
		item.Description, item.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create item", err)
	}
	return nil
}

func (r *Repository) GetItem(ctx context.Context, id string) (*contentlibrary.ContentItem, error) {
	query := `
		SELECT id, title, content_type, url, file_url, folder_id,
		       size, last_modified, status, course_ids, description, created_at
		FROM library_content WHERE id = $1`

	var item contentlibrary.ContentItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Type, &item.URL, &item.FileURL, &item.FolderID,
		&item.Size, &item.LastModified, &item.Status, &item.CourseIDs,
		&item.Description, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contentlibrary.ErrItemNotFound
		}
		return nil, r.handlePostgresError("get item", err)
	}
	return &item, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *contentlibrary.ContentItem) error {
	query := `
		UPDATE library_content SET
			title = $2, content_type = $3, url = $4, file_url = $5,
			folder_id = $6, size = $7, last_modified = $8, status = $9,
			course_ids = $10, description = $11
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		item.ID, item.Title, item.Type, item.URL, item.FileURL, item.FolderID,
		item.Size, item.LastModified, item.Status, item.CourseIDs, item.Description)
	if err != nil {
		return r.handlePostgresError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return contentlibrary.ErrItemNotFound
	}
	return nil
}

func (r *Repository) DeleteItems(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM library_content WHERE id = ANY($1)`
	if _, err := r.db.Exec(ctx, query, ids); err != nil {
		return r.handlePostgresError("delete items", err)
	}
	return nil
}

func (r *Repository) DeleteItemsInFolders(ctx context.Context, folderIDs ...string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	query := `DELETE FROM library_content WHERE folder_id = ANY($1)`
	if _, err := r.db.Exec(ctx, query, folderIDs); err != nil {
		return r.handlePostgresError("delete items in folders", err)
	}
	return nil
}

func (r *Repository) ListItemsByFolder(ctx context.Context, folderID string) ([]*contentlibrary.ContentItem, error) {
	query := `
		SELECT id, title, content_type, url, file_url, folder_id,
		       size, last_modified, status, course_ids, description, created_at
		FROM library_content WHERE folder_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, folderID)
	if err != nil {
		return nil, r.handlePostgresError("list items by folder", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *Repository) ListAllItems(ctx context.Context) ([]*contentlibrary.ContentItem, error) {
	query := `
		SELECT id, title, content_type, url, file_url, folder_id,
		       size, last_modified, status, course_ids, description, created_at
		FROM library_content
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list all items", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanFolders(rows pgx.Rows) ([]*contentlibrary.Folder, error) {
	var folders []*contentlibrary.Folder
	for rows.Next() {
		var folder contentlibrary.Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.ParentID, &folder.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, &folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

func scanItems(rows pgx.Rows) ([]*contentlibrary.ContentItem, error) {
	var items []*contentlibrary.ContentItem
	for rows.Next() {
		var item contentlibrary.ContentItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Type, &item.URL, &item.FileURL, &item.FolderID,
			&item.Size, &item.LastModified, &item.Status, &item.CourseIDs,
			&item.Description, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
