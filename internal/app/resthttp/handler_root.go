package resthttp

import (
	"net/http"

	"github.com/yourname/filestore_lite/pkg/fileproto"
)

var endpoints = []string{
	"POST /files - upload a file (multipart field \"file\")",
	"GET /files - list stored files",
	"GET /files/{filename} - download a file",
	"GET /health - health check",
	"GET /metrics - storage metrics",
	"GET /metrics/prometheus - Prometheus metrics",
	"POST /admin/gc - remove stale staging files",
	"GET /admin/config - effective configuration",
}

// root описывает сервис и доступные маршруты.
func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fileproto.RootResponse{
		Message:   "File storage service",
		Endpoints: endpoints,
	})
}
