package google

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFileListJSON is a canonical files.list response.
const testFileListJSON = `{
	"kind": "drive#fileList",
	"incompleteSearch": false,
	"files": [
		{"id": "folder-1", "kind": "drive#file", "mimeType": "application/vnd.google-apps.folder", "name": "notes"},
		{"id": "doc-1", "kind": "drive#file", "mimeType": "application/vnd.google-apps.document", "name": "readme"}
	]
}`

func TestListFiles_QueryAndDecode(t *testing.T) {
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/drive/v3/files", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, testFileListJSON)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	list, err := c.ListRoot(context.Background(), testToken)
	require.NoError(t, err)

	assert.Equal(t, "'root' in parents", gotQuery)
	require.Len(t, list.Files, 2)
	assert.Equal(t, "folder-1", list.Files[0].ID)
	assert.False(t, list.IncompleteSearch)
}

func TestListFiles_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "not json")
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	_, err := c.ListRoot(context.Background(), testToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding file list")
}

func TestFindInRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, testFileListJSON)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	folder, err := c.FindInRoot(context.Background(), "notes", TypeFolder, testToken)
	require.NoError(t, err)
	require.NotNil(t, folder)
	assert.Equal(t, "folder-1", folder.ID)

	// Name matches but type does not.
	missing, err := c.FindInRoot(context.Background(), "readme", TypeFolder, testToken)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateDocument_RequestShape(t *testing.T) {
	var gotBody createFileRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/drive/v3/files", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"id": "new-doc", "kind": "drive#file", "mimeType": "application/vnd.google-apps.document", "name": "hello"}`)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	file, err := c.CreateDocument(context.Background(), "hello", "folder-1", testToken)
	require.NoError(t, err)

	assert.Equal(t, "new-doc", file.ID)
	assert.Equal(t, "hello", gotBody.Name)
	assert.Equal(t, []string{"folder-1"}, gotBody.Parents)
	assert.Equal(t, "application/vnd.google-apps.document", gotBody.MimeType)
}

func TestCreateDocument_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"kind": "drive#file"}`)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	_, err := c.CreateDocument(context.Background(), "hello", "folder-1", testToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file ID")
}

func TestCreateFolder_MultipartMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload/drive/v3/files", r.URL.Path)
		require.Equal(t, "multipart", r.URL.Query().Get("uploadType"))

		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/related", mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])
		part, err := mr.NextPart()
		require.NoError(t, err)

		var meta createFileRequest
		require.NoError(t, json.NewDecoder(part).Decode(&meta))
		assert.Equal(t, "app-folder", meta.Name)
		assert.Equal(t, "application/vnd.google-apps.folder", meta.MimeType)

		io.WriteString(w, `{"id": "created-folder", "kind": "drive#file", "mimeType": "application/vnd.google-apps.folder", "name": "app-folder"}`)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	file, err := c.CreateFolder(context.Background(), "app-folder", testToken)
	require.NoError(t, err)
	assert.Equal(t, "created-folder", file.ID)
}

func TestExportText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/drive/v3/files/doc-1/export", r.URL.Path)
		require.Equal(t, "text/plain", r.URL.Query().Get("mimeType"))
		io.WriteString(w, "hello world\n")
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	text, err := c.ExportText(context.Background(), "doc-1", testToken)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", text)
}

func TestFileMetadata_RelaysBody(t *testing.T) {
	const raw = `{"id": "doc-1", "name": "readme", "mimeType": "application/vnd.google-apps.document"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/drive/v3/files/doc-1", r.URL.Path)
		io.WriteString(w, raw)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	body, err := c.FileMetadata(context.Background(), "doc-1", testToken)
	require.NoError(t, err)
	assert.Equal(t, raw, body)
}

func TestFileList_FilterType(t *testing.T) {
	var list FileList
	require.NoError(t, json.Unmarshal([]byte(testFileListJSON), &list))

	folders := list.FilterType(TypeFolder)
	require.Len(t, folders, 1)
	assert.Equal(t, "notes", folders[0].Name)

	assert.Empty(t, list.FilterType(TypeSpreadsheet))
}
