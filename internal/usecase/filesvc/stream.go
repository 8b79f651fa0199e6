package filesvc

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/internal/models"
)

// Open открывает файл для потоковой отдачи. Отданные байты учитываются при Close.
func (s *Files) Open(ctx context.Context, name string) (io.ReadCloser, models.StoredFile, error) {
	f, info, err := s.Storage.Open(ctx, name)
	if err != nil {
		s.logReadErr(name, err)
		s.Metrics.RecordDownload(0, false)
		return nil, models.StoredFile{}, err
	}

	return &countingReadCloser{inner: f, svc: s, name: name}, info, nil
}

// Get читает файл целиком.
func (s *Files) Get(ctx context.Context, name string) ([]byte, error) {
	b, err := s.Storage.Get(ctx, name)
	if err != nil {
		s.logReadErr(name, err)
		s.Metrics.RecordDownload(0, false)
		return nil, err
	}

	s.Metrics.RecordDownload(int64(len(b)), true)
	return b, nil
}

func (s *Files) logReadErr(name string, err error) {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidName) {
		s.Logger.Debug("read rejected", zap.String("name", name), zap.Error(err))
		return
	}
	s.Logger.Warn("read failed", zap.String("name", name), zap.Error(err))
}

// countingReadCloser считает прочитанные байты и один раз отчитывается в метрики.
type countingReadCloser struct {
	inner io.ReadCloser
	svc   *Files
	name  string

	n        int64
	readErr  error
	closeErr error
	once     sync.Once
}

func (c *countingReadCloser) Read(p []byte) (int, error) {
	n, err := c.inner.Read(p)
	c.n += int64(n)
	if err != nil && err != io.EOF {
		c.readErr = err
	}
	return n, err
}

// Close закрывает файл ровно один раз; повторные вызовы возвращают результат первого.
func (c *countingReadCloser) Close() error {
	c.once.Do(func() {
		c.closeErr = c.inner.Close()
		ok := c.readErr == nil
		if !ok {
			c.svc.Logger.Warn("stream failed", zap.String("name", c.name), zap.Error(c.readErr))
		}
		c.svc.Metrics.RecordDownload(c.n, ok)
	})
	return c.closeErr
}
