package joplin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResourceFromReader(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/resources", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))

		// file part, with the JSON-quoted filename the endpoint expects
		file, header, err := r.FormFile("data")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, `"image.png"`, header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake png bytes", string(content))

		// props part, title defaulting to the filename
		var props map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("props")), &props))
		assert.Equal(t, "image.png", props["title"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "0123456789abcdef0123456789abcdef"}`)
	}))

	id, err := client.CreateResourceFromReader(context.Background(),
		"image.png", strings.NewReader("fake png bytes"), nil)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", id)
}

func TestCreateResourceFromReader_ExplicitTitle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var props map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("props")), &props))
		assert.Equal(t, "vacation photo", props["title"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "0123456789abcdef0123456789abcdef"}`)
	}))

	_, err := client.CreateResourceFromReader(context.Background(),
		"image.png", strings.NewReader("bytes"),
		&ResourceProperties{Title: Ptr("vacation photo")})
	require.NoError(t, err)
}

func TestResourceFile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resources/0123456789abcdef0123456789abcdef/file", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))

	data, err := client.ResourceFile(context.Background(), "0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestResources_ScopedByNote(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes/fedcba9876543210fedcba9876543210/resources", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": [{"id": "0123456789abcdef0123456789abcdef", "mime": "image/png"}], "has_more": false}`)
	}))

	page, err := client.Resources(context.Background(), "fedcba9876543210fedcba9876543210", nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "image/png", page.Items[0].Mime)
}
