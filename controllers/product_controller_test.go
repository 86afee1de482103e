package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supply-portal/config"
)

func catalogUploadRequest(t *testing.T, filename string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("spreadsheet bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalog", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func recordCatalogUpload(t *testing.T, catalogPath, filename string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	prev := config.AppConfig
	defer func() { config.AppConfig = prev }()
	config.AppConfig = &config.Config{CatalogPath: catalogPath}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = catalogUploadRequest(t, filename)

	NewProductController(nil).UploadCatalog(c)
	return w
}

func TestUploadCatalogSavesFile(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "catalog", "cataleg.xlsx")

	w := recordCatalogUpload(t, destination, "cataleg.xlsx")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "next restart")

	saved, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, "spreadsheet bytes", string(saved))
}

func TestUploadCatalogRejectsWrongExtension(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "cataleg.xlsx")

	w := recordCatalogUpload(t, destination, "cataleg.csv")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid file type")
}

func TestUploadCatalogReportsDirectoryFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The catalog directory path collides with a regular file, so
	// creating it must fail and surface as a server error.
	destination := filepath.Join(blocker, "sub", "cataleg.xlsx")

	w := recordCatalogUpload(t, destination, "cataleg.xlsx")
	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to create catalog directory")
}
