package filesvc

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/internal/metrics"
	"github.com/yourname/filestore_lite/internal/models"
)

type (
	// Storage задаёт ядро хранилища, поверх которого работает сервис.
	Storage interface {
		Put(ctx context.Context, name string, content io.Reader) (models.UploadResult, error)
		List(ctx context.Context) ([]string, error)
		Open(ctx context.Context, name string) (*os.File, models.StoredFile, error)
		Get(ctx context.Context, name string) ([]byte, error)
		Stats(ctx context.Context) (models.Stats, error)
		SweepStaging(ttl time.Duration) (int, error)
	}

	// Service объединяет операции по загрузке и выдаче файлов.
	Service interface {
		Upload(ctx context.Context, name string, r io.Reader) (models.UploadResult, error)
		List(ctx context.Context) ([]string, error)
		Open(ctx context.Context, name string) (io.ReadCloser, models.StoredFile, error)
		Get(ctx context.Context, name string) ([]byte, error)
		Stats(ctx context.Context) (models.Stats, error)
		CollectGarbage(ttl time.Duration) (int, error)
	}
)

type Deps struct {
	Storage Storage
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type Files struct {
	Deps
}

// New конструирует сервис с заданными зависимостями. Без логгера пишет в zap.NewNop.
func New(deps Deps) *Files {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)

// List возвращает имена всех файлов.
func (s *Files) List(ctx context.Context) ([]string, error) {
	names, err := s.Storage.List(ctx)
	if err != nil {
		s.Logger.Error("list files", zap.Error(err))
		return nil, err
	}
	return names, nil
}

// Stats отдаёт снимок статистики хранилища.
func (s *Files) Stats(ctx context.Context) (models.Stats, error) {
	stats, err := s.Storage.Stats(ctx)
	if err != nil {
		s.Logger.Error("collect stats", zap.Error(err))
		return models.Stats{}, err
	}
	return stats, nil
}

// CollectGarbage вычищает staging-файлы старше ttl.
func (s *Files) CollectGarbage(ttl time.Duration) (int, error) {
	removed, err := s.Storage.SweepStaging(ttl)
	if err != nil {
		s.Logger.Warn("staging sweep failed", zap.Error(err))
		return removed, err
	}
	if removed > 0 {
		s.Logger.Info("staging sweep", zap.Int("removed", removed), zap.Duration("ttl", ttl))
	}
	return removed, nil
}
