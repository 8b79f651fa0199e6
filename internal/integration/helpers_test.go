package integration

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourname/filestore_lite/internal/app/resthttp"
	"github.com/yourname/filestore_lite/internal/config"
	"github.com/yourname/filestore_lite/pkg/fileclient"
)

type env struct {
	url     string
	dataDir string
	client  fileclient.Client
	server  *resthttp.Server
}

// startService поднимает полный HTTP-стек на временном каталоге.
func startService(t *testing.T) env {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "storage")

	h, srv, err := resthttp.NewServer(cfg, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return env{
		url:     ts.URL,
		dataDir: cfg.DataDir,
		client:  fileclient.New(ts.URL, fileclient.WithHTTPClient(ts.Client())),
		server:  srv,
	}
}
