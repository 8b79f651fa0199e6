package fileclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/filestore_lite/pkg/fileproto"
)

// stubServer имитирует файловый сервис поверх map в памяти.
func stubServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string][]byte{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(fileproto.ErrorResponse{Detail: err.Error()})
			return
		}
		b, _ := io.ReadAll(f)
		files[hdr.Filename] = b
		_ = json.NewEncoder(w).Encode(fileproto.UploadResponse{Message: fileproto.StoredMessage, Filename: hdr.Filename, Size: int64(len(b))})
	})
	mux.HandleFunc("GET /files", func(w http.ResponseWriter, _ *http.Request) {
		names := make([]string, 0, len(files))
		for n := range files {
			names = append(names, n)
		}
		_ = json.NewEncoder(w).Encode(fileproto.ListResponse{Files: names, Count: len(names)})
	})
	mux.HandleFunc("GET /files/{name}", func(w http.ResponseWriter, r *http.Request) {
		b, ok := files[r.PathValue("name")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", fileproto.ContentTypeBinary)
		_, _ = w.Write(b)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(fileproto.HealthResponse{Status: fileproto.HealthyStatus})
	})
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(fileproto.ErrorResponse{Detail: "storage i/o error"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RoundTrip(t *testing.T) {
	srv := stubServer(t)
	var progress bytes.Buffer
	cli := New(srv.URL+"/", WithHTTPClient(srv.Client()), WithProgress(&progress))
	ctx := context.Background()

	payload := bytes.Repeat([]byte("0123456789abcdef"), 1024)
	res, err := cli.Upload(ctx, "data.bin", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)
	assert.Equal(t, "data.bin", res.Filename)
	assert.Equal(t, int64(len(payload)), res.Size)

	names, err := cli.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"data.bin"}, names)

	rc, err := cli.Download(ctx, "data.bin")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.True(t, bytes.Equal(payload, got))

	out := progress.String()
	assert.Contains(t, out, "Uploading data.bin")
	assert.Contains(t, out, "Downloading data.bin")
	assert.Contains(t, out, "16.0 KB/16.0 KB")
}

func TestClient_Errors(t *testing.T) {
	srv := stubServer(t)
	cli := New(srv.URL, WithHTTPClient(srv.Client()))
	ctx := context.Background()

	_, err := cli.Download(ctx, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = cli.Metrics(ctx)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "storage i/o error", se.Detail)

	h, err := cli.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
}

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := newProgressBar(&out, "Uploading x", 2048)
	bar.add(1024)
	bar.render(true)
	bar.finish(nil)
	bar.finish(nil)

	text := out.String()
	assert.Contains(t, text, " 50% 1.0 KB/2.0 KB")
	assert.True(t, strings.HasSuffix(text, " ok\n"), text)

	disabled := newProgressBar(nil, "x", 1)
	assert.Nil(t, disabled)
	disabled.add(1)
	disabled.finish(nil)
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.5 KB", humanBytes(1536))
	assert.Equal(t, "3.0 MB", humanBytes(3<<20))
}
