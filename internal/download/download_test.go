package download

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestFetchSniffsType(t *testing.T) {
	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	var c Client
	res, err := c.Fetch(context.Background(), srv.URL+"/images/cat-photo?size=big")
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MIME)
	assert.Equal(t, ".png", res.Ext)
	assert.Equal(t, "cat-photo.png", res.Name)
	assert.Equal(t, body, res.Data)
}

func TestFetchContentDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="notes.txt"`)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	var c Client
	res, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", res.MIME)
	assert.Equal(t, "notes.txt", res.Name)
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	var c Client
	_, err := c.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "HTTP 404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
