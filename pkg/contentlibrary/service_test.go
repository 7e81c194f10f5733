package contentlibrary_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/content-library/pkg/contentlibrary"
	"github.com/edukit/content-library/pkg/contentlibrary/repo/memory"
	memorystorage "github.com/edukit/content-library/pkg/contentlibrary/storage/memory"
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []contentlibrary.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []contentlibrary.Option{},
			expectError: true,
		},
		{
			name: "with repository should succeed",
			options: []contentlibrary.Option{
				contentlibrary.WithRepository(memory.New()),
			},
			expectError: false,
		},
		{
			name: "with repository and blob store should succeed",
			options: []contentlibrary.Option{
				contentlibrary.WithRepository(memory.New()),
				contentlibrary.WithBlobStore("memory", memorystorage.New()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := contentlibrary.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func setupTestService(t *testing.T) contentlibrary.Service {
	t.Helper()

	svc, err := contentlibrary.New(
		contentlibrary.WithRepository(memory.New()),
		contentlibrary.WithBlobStore("memory", memorystorage.New()),
		contentlibrary.WithEventSink(contentlibrary.NewNoopEventSink()),
	)
	require.NoError(t, err)
	require.NotNil(t, svc)

	return svc
}

func mustCreateFolder(t *testing.T, svc contentlibrary.Service, name, parentID string) *contentlibrary.Folder {
	t.Helper()
	folder, err := svc.CreateFolder(context.Background(), contentlibrary.CreateFolderRequest{
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err)
	require.NotNil(t, folder)
	return folder
}

func mustUploadContent(t *testing.T, svc contentlibrary.Service, title, folderID string) *contentlibrary.ContentItem {
	t.Helper()
	item, err := svc.UploadContent(context.Background(), contentlibrary.UploadContentRequest{
		Title:    title,
		Type:     contentlibrary.ContentTypePDF,
		FolderID: folderID,
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func TestCreateFolder(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	t.Run("at root", func(t *testing.T) {
		folder := mustCreateFolder(t, svc, "Grade 5", "")

		assert.NotEmpty(t, folder.ID)
		assert.Equal(t, "Grade 5", folder.Name)
		assert.Equal(t, contentlibrary.RootFolderID, folder.ParentID)
		assert.False(t, folder.CreatedAt.IsZero())
	})

	t.Run("nested", func(t *testing.T) {
		parent := mustCreateFolder(t, svc, "Grade 6", contentlibrary.RootFolderID)
		child := mustCreateFolder(t, svc, "Science", parent.ID)

		assert.Equal(t, parent.ID, child.ParentID)
	})

	t.Run("missing parent is rejected", func(t *testing.T) {
		_, err := svc.CreateFolder(ctx, contentlibrary.CreateFolderRequest{
			Name:     "Orphan",
			ParentID: "no-such-folder",
		})
		assert.ErrorIs(t, err, contentlibrary.ErrFolderNotFound)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := svc.CreateFolder(ctx, contentlibrary.CreateFolderRequest{Name: ""})
		assert.Error(t, err)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		folder := mustCreateFolder(t, svc, "  Padded  ", "")
		assert.Equal(t, "Padded", folder.Name)
	})
}

func TestUploadContent(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		item, err := svc.UploadContent(ctx, contentlibrary.UploadContentRequest{
			Title: "Photosynthesis",
			Type:  contentlibrary.ContentTypeVideo,
			URL:   "https://videos.example.com/photosynthesis",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, item.ID)
		assert.Equal(t, contentlibrary.RootFolderID, item.FolderID)
		assert.Equal(t, contentlibrary.ItemStatusPublished, item.Status)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), item.LastModified)
		assert.NotNil(t, item.CourseIDs)
		assert.Empty(t, item.CourseIDs)
	})

	t.Run("into folder", func(t *testing.T) {
		folder := mustCreateFolder(t, svc, "Math", "")
		item := mustUploadContent(t, svc, "Fractions", folder.ID)
		assert.Equal(t, folder.ID, item.FolderID)
	})

	t.Run("missing folder is rejected", func(t *testing.T) {
		_, err := svc.UploadContent(ctx, contentlibrary.UploadContentRequest{
			Title:    "Lost",
			Type:     contentlibrary.ContentTypePDF,
			FolderID: "no-such-folder",
		})
		assert.ErrorIs(t, err, contentlibrary.ErrFolderNotFound)
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := svc.UploadContent(ctx, contentlibrary.UploadContentRequest{
			Title: "Bad",
			Type:  contentlibrary.ContentType("Spreadsheet"),
		})
		assert.Error(t, err)
	})
}

func TestGetContents(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	grade5 := mustCreateFolder(t, svc, "Grade 5", "")
	science := mustCreateFolder(t, svc, "Science", grade5.ID)
	intro := mustUploadContent(t, svc, "Intro.pdf", science.ID)
	rootItem := mustUploadContent(t, svc, "Welcome.pdf", "")

	t.Run("root listing", func(t *testing.T) {
		contents, err := svc.GetContents(ctx, "")
		require.NoError(t, err)

		assert.Nil(t, contents.Folder)
		assert.Empty(t, contents.Breadcrumbs)
		require.Len(t, contents.Folders, 1)
		assert.Equal(t, grade5.ID, contents.Folders[0].ID)
		require.Len(t, contents.Files, 1)
		assert.Equal(t, rootItem.ID, contents.Files[0].ID)
	})

	t.Run("nested listing with breadcrumbs", func(t *testing.T) {
		contents, err := svc.GetContents(ctx, science.ID)
		require.NoError(t, err)

		require.NotNil(t, contents.Folder)
		assert.Equal(t, science.ID, contents.Folder.ID)
		require.Len(t, contents.Files, 1)
		assert.Equal(t, intro.ID, contents.Files[0].ID)

		require.Len(t, contents.Breadcrumbs, 2)
		assert.Equal(t, "Grade 5", contents.Breadcrumbs[0].Name)
		assert.Equal(t, "Science", contents.Breadcrumbs[1].Name)
	})

	t.Run("unknown folder yields empty listing", func(t *testing.T) {
		contents, err := svc.GetContents(ctx, "no-such-folder")
		require.NoError(t, err)

		assert.Nil(t, contents.Folder)
		assert.Empty(t, contents.Folders)
		assert.Empty(t, contents.Files)
		assert.Empty(t, contents.Breadcrumbs)
	})

	t.Run("slices are never nil", func(t *testing.T) {
		contents, err := svc.GetContents(ctx, grade5.ID)
		require.NoError(t, err)
		assert.NotNil(t, contents.Folders)
		assert.NotNil(t, contents.Files)
		assert.NotNil(t, contents.Breadcrumbs)
	})
}

func TestRenameItem(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	t.Run("folder", func(t *testing.T) {
		folder := mustCreateFolder(t, svc, "Old Name", "")

		err := svc.RenameItem(ctx, contentlibrary.RenameItemRequest{
			ID:      folder.ID,
			Kind:    contentlibrary.ItemKindFolder,
			NewName: "New Name",
		})
		require.NoError(t, err)

		contents, err := svc.GetContents(ctx, folder.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Name", contents.Folder.Name)
	})

	t.Run("file bumps last modified", func(t *testing.T) {
		item := mustUploadContent(t, svc, "Draft.pdf", "")

		err := svc.RenameItem(ctx, contentlibrary.RenameItemRequest{
			ID:      item.ID,
			Kind:    contentlibrary.ItemKindFile,
			NewName: "Final.pdf",
		})
		require.NoError(t, err)

		renamed, err := svc.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final.pdf", renamed.Title)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), renamed.LastModified)
	})

	t.Run("rename leaves siblings untouched", func(t *testing.T) {
		folder := mustCreateFolder(t, svc, "Shared", "")
		a := mustUploadContent(t, svc, "A.pdf", folder.ID)
		b := mustUploadContent(t, svc, "B.pdf", folder.ID)

		err := svc.RenameItem(ctx, contentlibrary.RenameItemRequest{
			ID:      a.ID,
			Kind:    contentlibrary.ItemKindFile,
			NewName: "A2.pdf",
		})
		require.NoError(t, err)

		sibling, err := svc.GetItem(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "B.pdf", sibling.Title)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		err := svc.RenameItem(ctx, contentlibrary.RenameItemRequest{
			ID:      "no-such-item",
			Kind:    contentlibrary.ItemKindFile,
			NewName: "Whatever",
		})
		assert.NoError(t, err)

		err = svc.RenameItem(ctx, contentlibrary.RenameItemRequest{
			ID:      "no-such-folder",
			Kind:    contentlibrary.ItemKindFolder,
			NewName: "Whatever",
		})
		assert.NoError(t, err)
	})

	t.Run("invalid kind is rejected", func(t *testing.T) {
		err := svc.RenameItem(ctx, contentlibrary.RenameItemRequest{
			ID:      "something",
			Kind:    contentlibrary.ItemKind("link"),
			NewName: "Whatever",
		})
		assert.Error(t, err)
	})
}

func TestDeleteItem(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	t.Run("single file", func(t *testing.T) {
		folder := mustCreateFolder(t, svc, "Docs", "")
		doomed := mustUploadContent(t, svc, "Doomed.pdf", folder.ID)
		survivor := mustUploadContent(t, svc, "Survivor.pdf", folder.ID)

		err := svc.DeleteItem(ctx, contentlibrary.DeleteItemRequest{
			ID:   doomed.ID,
			Kind: contentlibrary.ItemKindFile,
		})
		require.NoError(t, err)

		contents, err := svc.GetContents(ctx, folder.ID)
		require.NoError(t, err)
		require.Len(t, contents.Files, 1)
		assert.Equal(t, survivor.ID, contents.Files[0].ID)
	})

	t.Run("folder cascade", func(t *testing.T) {
		top := mustCreateFolder(t, svc, "Top", "")
		mid := mustCreateFolder(t, svc, "Mid", top.ID)
		deep := mustCreateFolder(t, svc, "Deep", mid.ID)
		buried := mustUploadContent(t, svc, "Buried.pdf", deep.ID)
		outside := mustUploadContent(t, svc, "Outside.pdf", "")

		err := svc.DeleteItem(ctx, contentlibrary.DeleteItemRequest{
			ID:   top.ID,
			Kind: contentlibrary.ItemKindFolder,
		})
		require.NoError(t, err)

		for _, id := range []string{top.ID, mid.ID, deep.ID} {
			contents, err := svc.GetContents(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, contents.Folder, "folder %s should be gone", id)
		}

		_, err = svc.GetItem(ctx, buried.ID)
		assert.ErrorIs(t, err, contentlibrary.ErrItemNotFound)

		still, err := svc.GetItem(ctx, outside.ID)
		require.NoError(t, err)
		assert.Equal(t, outside.ID, still.ID)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		err := svc.DeleteItem(ctx, contentlibrary.DeleteItemRequest{
			ID:   "no-such-item",
			Kind: contentlibrary.ItemKindFile,
		})
		assert.NoError(t, err)

		err = svc.DeleteItem(ctx, contentlibrary.DeleteItemRequest{
			ID:   "no-such-folder",
			Kind: contentlibrary.ItemKindFolder,
		})
		assert.NoError(t, err)
	})
}

func TestMoveItem(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		from := mustCreateFolder(t, svc, "From", "")
		to := mustCreateFolder(t, svc, "To", "")
		item := mustUploadContent(t, svc, "Moving.pdf", from.ID)

		err := svc.MoveItem(ctx, contentlibrary.MoveItemRequest{
			ID:          item.ID,
			Kind:        contentlibrary.ItemKindFile,
			NewParentID: to.ID,
		})
		require.NoError(t, err)

		moved, err := svc.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, to.ID, moved.FolderID)
	})

	t.Run("folder to root", func(t *testing.T) {
		parent := mustCreateFolder(t, svc, "Parent", "")
		child := mustCreateFolder(t, svc, "Child", parent.ID)

		err := svc.MoveItem(ctx, contentlibrary.MoveItemRequest{
			ID:          child.ID,
			Kind:        contentlibrary.ItemKindFolder,
			NewParentID: "",
		})
		require.NoError(t, err)

		contents, err := svc.GetContents(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, contentlibrary.RootFolderID, contents.Folder.ParentID)
		require.Len(t, contents.Breadcrumbs, 1)
	})

	t.Run("into itself is rejected", func(t *testing.T) {
		folder := mustCreateFolder(t, svc, "Selfish", "")

		err := svc.MoveItem(ctx, contentlibrary.MoveItemRequest{
			ID:          folder.ID,
			Kind:        contentlibrary.ItemKindFolder,
			NewParentID: folder.ID,
		})
		assert.ErrorIs(t, err, contentlibrary.ErrCircularReference)
	})

	t.Run("into descendant is rejected", func(t *testing.T) {
		top := mustCreateFolder(t, svc, "Outer", "")
		inner := mustCreateFolder(t, svc, "Inner", top.ID)
		innermost := mustCreateFolder(t, svc, "Innermost", inner.ID)

		err := svc.MoveItem(ctx, contentlibrary.MoveItemRequest{
			ID:          top.ID,
			Kind:        contentlibrary.ItemKindFolder,
			NewParentID: innermost.ID,
		})
		assert.ErrorIs(t, err, contentlibrary.ErrCircularReference)
	})

	t.Run("absent id errors", func(t *testing.T) {
		err := svc.MoveItem(ctx, contentlibrary.MoveItemRequest{
			ID:          "no-such-folder",
			Kind:        contentlibrary.ItemKindFolder,
			NewParentID: "",
		})
		assert.ErrorIs(t, err, contentlibrary.ErrFolderNotFound)
	})
}

func TestGetTree(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	grade5 := mustCreateFolder(t, svc, "Grade 5", "")
	science := mustCreateFolder(t, svc, "Science", grade5.ID)
	mustUploadContent(t, svc, "Intro.pdf", science.ID)
	mustUploadContent(t, svc, "Welcome.pdf", "")

	tree, err := svc.GetTree(ctx)
	require.NoError(t, err)

	require.Len(t, tree.Folders, 1)
	assert.Equal(t, grade5.ID, tree.Folders[0].ID)
	require.Len(t, tree.Folders[0].Folders, 1)
	assert.Equal(t, science.ID, tree.Folders[0].Folders[0].ID)
	require.Len(t, tree.Folders[0].Folders[0].Files, 1)
	assert.Equal(t, "Intro.pdf", tree.Folders[0].Folders[0].Files[0].Title)
	require.Len(t, tree.Files, 1)
	assert.Equal(t, "Welcome.pdf", tree.Files[0].Title)
}

func TestAssetRoundTrip(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	item := mustUploadContent(t, svc, "Worksheet.pdf", "")

	payload := "hello worksheet"
	updated, err := svc.UploadAsset(ctx, strings.NewReader(payload), contentlibrary.UploadAssetRequest{
		ItemID:   item.ID,
		MimeType: "application/pdf",
		FileName: "Worksheet.pdf",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, updated.FileURL)
	assert.Equal(t, "15B", updated.Size)

	rc, err := svc.DownloadAsset(ctx, item.ID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))

	url, err := svc.GetAssetURL(ctx, item.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestDownloadAssetWithoutUpload(t *testing.T) {
	svc := setupTestService(t)
	item := mustUploadContent(t, svc, "External.pdf", "")

	_, err := svc.DownloadAsset(context.Background(), item.ID)
	assert.ErrorIs(t, err, contentlibrary.ErrNoAsset)
}

func TestGetBackend(t *testing.T) {
	svc := setupTestService(t)

	backend, err := svc.GetBackend("memory")
	require.NoError(t, err)
	assert.NotNil(t, backend)

	_, err = svc.GetBackend("nope")
	assert.ErrorIs(t, err, contentlibrary.ErrStorageBackendNotFound)
}
