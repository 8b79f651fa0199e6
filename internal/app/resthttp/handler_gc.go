package resthttp

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/pkg/httperrors"
)

const manualGCTTL = 24 * time.Hour

// gcOnce вручную запускает чистку staging от брошенных записей.
func (s *Server) gcOnce(w http.ResponseWriter, _ *http.Request) {
	ttl := s.Cfg.GCTTL()
	if ttl <= 0 {
		ttl = manualGCTTL
	}

	if _, err := s.FilesService.CollectGarbage(ttl); err != nil {
		httperrors.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartGC запускает фоновую чистку staging по настройкам cfg.GC. Возвращает функцию остановки.
func (s *Server) StartGC() func() {
	ttl, every := s.Cfg.GCTTL(), s.Cfg.GCInterval()
	s.Logger.Info("staging gc started", zap.Duration("ttl", ttl), zap.Duration("every", every))

	return s.store.StartGC(ttl, every, func(removed int, err error) {
		if err != nil {
			s.Logger.Warn("staging sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			s.Logger.Info("staging sweep", zap.Int("removed", removed))
		}
	})
}
