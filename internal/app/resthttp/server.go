package resthttp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/internal/config"
	"github.com/yourname/filestore_lite/internal/filestore"
	"github.com/yourname/filestore_lite/internal/logging"
	"github.com/yourname/filestore_lite/internal/metrics"
	"github.com/yourname/filestore_lite/internal/usecase/filesvc"
	"github.com/yourname/filestore_lite/pkg/fileproto"
)

type Server struct {
	FilesService filesvc.Service
	Cfg          *config.Config
	Metrics      *metrics.Metrics
	Logger       *zap.Logger

	store *filestore.Store
}

// NewServer конструктор: поднимает хранилище в cfg.DataDir и собирает роутер.
func NewServer(cfg *config.Config, logger *zap.Logger) (http.Handler, *Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := filestore.New(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	m := metrics.New(store)
	srv := &Server{
		FilesService: filesvc.New(filesvc.Deps{
			Storage: store,
			Metrics: m,
			Logger:  logger,
		}),
		Cfg:     cfg,
		Metrics: m,
		Logger:  logger,
		store:   store,
	}

	return srv.routes(), srv, nil
}

// routes регистрирует обработчики файлов, здоровья, метрик и админки.
func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID)
	rtr.Use(middleware.Recoverer)
	rtr.Use(logging.Middleware(s.Logger))
	rtr.Use(s.Metrics.Middleware)

	rtr.Get(fileproto.PathRoot, s.root)
	rtr.Post(fileproto.PathFiles, s.postFiles)
	rtr.Get(fileproto.PathFiles, s.listFiles)
	rtr.Get("/files/{name}", s.getFile)
	rtr.Get(fileproto.PathHealth, s.health)
	rtr.Get(fileproto.PathMetrics, s.metrics)
	rtr.Method(http.MethodGet, fileproto.PathPrometheus, s.Metrics.Handler())

	rtr.Post(fileproto.PathAdminGC, s.gcOnce)
	rtr.Get(fileproto.PathAdminConfig, func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, s.Cfg) })

	return rtr
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
