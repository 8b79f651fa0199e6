package filesvc

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/internal/models"
)

// Upload сохраняет поток под именем name и учитывает результат в метриках.
func (s *Files) Upload(ctx context.Context, name string, r io.Reader) (models.UploadResult, error) {
	res, err := s.Storage.Put(ctx, name, r)
	if err != nil {
		s.Metrics.RecordUpload(0, false)

		// Кривое имя это ошибка клиента, громко её не логируем.
		if errors.Is(err, models.ErrInvalidName) {
			s.Logger.Debug("upload rejected", zap.String("name", name), zap.Error(err))
		} else {
			s.Logger.Warn("upload failed", zap.String("name", name), zap.Error(err))
		}
		return models.UploadResult{}, err
	}

	s.Metrics.RecordUpload(res.Size, true)
	s.Logger.Info("file stored", zap.String("name", res.Name), zap.Int64("size", res.Size))

	return res, nil
}
