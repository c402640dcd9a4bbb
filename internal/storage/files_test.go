package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename string, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestStoreSave(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	header := uploadHeader(t, "report.pdf", "fake pdf bytes")

	relative, err := store.Save(header, "attachments")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relative, "attachments"+string(filepath.Separator)))
	assert.Equal(t, ".pdf", filepath.Ext(relative), "original extension is kept")
	assert.NotContains(t, relative, "report", "stored name does not leak the original")

	data, err := os.ReadFile(store.Path(relative))
	require.NoError(t, err)
	assert.Equal(t, "fake pdf bytes", string(data))
}

func TestStoreSaveUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(uploadHeader(t, "a.txt", "one"), "attachments")
	require.NoError(t, err)
	second, err := store.Save(uploadHeader(t, "a.txt", "two"), "attachments")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStoreRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	relative, err := store.Save(uploadHeader(t, "a.txt", "bytes"), "profiles")
	require.NoError(t, err)

	require.NoError(t, store.Remove(relative))

	_, err = os.Stat(store.Path(relative))
	assert.True(t, os.IsNotExist(err))

	// Removing again is not an error.
	assert.NoError(t, store.Remove(relative))
}
