package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"salonbook-backend/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gifHTML sniffs as image/gif but carries markup a browser would run as HTML.
var gifHTML = []byte("GIF89a<html><script>alert(1)</script></html>")

func TestDiskImageStore(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media")
	store, err := NewDiskImageStore(root, "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Save(ctx, "Photo.PNG", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"))
	assert.Equal(t, "/media/"+ref, store.URL(ref))

	data, err := os.ReadFile(filepath.Join(root, ref))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(root, ref))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, ref), "deleting twice is fine")
	assert.Error(t, store.Delete(ctx, "../escape.png"))
}

func TestGalleryStage_CleansUpOnFailure(t *testing.T) {
	store := newMemoryImageStore()
	g := gallery{store: store}

	refs, err := g.stage(context.Background(), []ImageUpload{upload("a.png"), upload("b.png")})
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	store.failing = true
	_, err = g.stage(context.Background(), []ImageUpload{upload("c.png")})
	assert.Error(t, err)
	assert.Len(t, store.names(), 2)
}

func TestDiskImageStore_ExtensionFollowsContent(t *testing.T) {
	store, err := NewDiskImageStore(t.TempDir(), "/media")
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Save(ctx, "evil.html", gifHTML)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".gif"), ref)

	ref, err = store.Save(ctx, "photo.html", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"), ref)

	_, err = store.Save(ctx, "page.png", []byte("<html><body>hi</body></html>"))
	assert.Error(t, err)
}

func TestValidateUploads(t *testing.T) {
	assert.NoError(t, validateUploads([]ImageUpload{upload("a.png"), {Name: "b.gif", Data: gifHTML}}, 3))

	err := validateUploads([]ImageUpload{{Name: "page.png", Data: []byte("<html><body>hi</body></html>")}}, 3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = validateUploads([]ImageUpload{{Name: "empty.png"}}, 3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = validateUploads([]ImageUpload{upload("a.png"), upload("b.png")}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
