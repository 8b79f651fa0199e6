package resthttp

import (
	"net/http"

	"github.com/yourname/filestore_lite/pkg/fileproto"
	"github.com/yourname/filestore_lite/pkg/httperrors"
)

// health отвечает на liveness-пробу и от состояния хранилища не зависит.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fileproto.HealthResponse{Status: fileproto.HealthyStatus})
}

// metrics отдаёт статистику хранилища: счётчик загрузок и один проход по каталогу.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.FilesService.Stats(r.Context())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fileproto.MetricsResponse{
		FilesStoredTotal:  stats.FilesStoredTotal,
		TotalStorageBytes: stats.TotalStorageBytes,
		FilesCurrent:      stats.FilesCurrent,
	})
}
