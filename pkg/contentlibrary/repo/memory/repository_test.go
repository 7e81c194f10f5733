package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/content-library/pkg/contentlibrary"
	"github.com/edukit/content-library/pkg/contentlibrary/repo/memory"
)

func TestFolderLifecycle(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	folder := &contentlibrary.Folder{
		ID:        "f1",
		Name:      "Grade 5",
		ParentID:  contentlibrary.RootFolderID,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateFolder(ctx, folder))

	got, err := repo.GetFolder(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Grade 5", got.Name)

	got.Name = "Renamed"
	require.NoError(t, repo.UpdateFolder(ctx, got))

	updated, err := repo.GetFolder(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, repo.DeleteFolders(ctx, "f1"))
	_, err = repo.GetFolder(ctx, "f1")
	assert.ErrorIs(t, err, contentlibrary.ErrFolderNotFound)
}

func TestStoredCopiesAreIsolated(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	folder := &contentlibrary.Folder{ID: "f1", Name: "Original", ParentID: contentlibrary.RootFolderID}
	require.NoError(t, repo.CreateFolder(ctx, folder))

	// Mutating the caller's struct must not leak into the store.
	folder.Name = "Mutated"

	got, err := repo.GetFolder(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)

	// Mutating a fetched copy must not leak either.
	got.Name = "Mutated again"
	again, err := repo.GetFolder(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	err := repo.UpdateFolder(ctx, &contentlibrary.Folder{ID: "ghost"})
	assert.ErrorIs(t, err, contentlibrary.ErrFolderNotFound)

	err = repo.UpdateItem(ctx, &contentlibrary.ContentItem{ID: "ghost"})
	assert.ErrorIs(t, err, contentlibrary.ErrItemNotFound)
}

func TestListChildFoldersSortedByCreation(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, repo.CreateFolder(ctx, &contentlibrary.Folder{
		ID: "late", Name: "Late", ParentID: contentlibrary.RootFolderID, CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, repo.CreateFolder(ctx, &contentlibrary.Folder{
		ID: "early", Name: "Early", ParentID: contentlibrary.RootFolderID, CreatedAt: base,
	}))

	children, err := repo.ListChildFolders(ctx, contentlibrary.RootFolderID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "early", children[0].ID)
	assert.Equal(t, "late", children[1].ID)
}

func TestDeleteItemsInFolders(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	for _, item := range []*contentlibrary.ContentItem{
		{ID: "i1", FolderID: "f1"},
		{ID: "i2", FolderID: "f1"},
		{ID: "i3", FolderID: "f2"},
	} {
		require.NoError(t, repo.CreateItem(ctx, item))
	}

	require.NoError(t, repo.DeleteItemsInFolders(ctx, "f1"))

	_, err := repo.GetItem(ctx, "i1")
	assert.ErrorIs(t, err, contentlibrary.ErrItemNotFound)
	_, err = repo.GetItem(ctx, "i2")
	assert.ErrorIs(t, err, contentlibrary.ErrItemNotFound)

	kept, err := repo.GetItem(ctx, "i3")
	require.NoError(t, err)
	assert.Equal(t, "i3", kept.ID)
}

func TestDeleteMissingIDsIsNoop(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	assert.NoError(t, repo.DeleteFolders(ctx, "nope"))
	assert.NoError(t, repo.DeleteItems(ctx, "nope"))
	assert.NoError(t, repo.DeleteItemsInFolders(ctx, "nope"))
}
