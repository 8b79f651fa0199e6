package resthttp

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/internal/models"
	"github.com/yourname/filestore_lite/pkg/fileproto"
	"github.com/yourname/filestore_lite/pkg/httperrors"
)

// getFile отдаёт содержимое файла целиком как application/octet-stream.
func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	name, err := fileNameParam(r)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	rc, info, err := s.FilesService.Open(r.Context(), name)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("Content-Type", fileproto.ContentTypeBinary)
	w.Header().Set("Last-Modified", info.ModTime.UTC().Format(http.TimeFormat))

	// Заголовки уже ушли, поэтому ошибку копирования можно только залогировать.
	if _, err := io.Copy(w, rc); err != nil {
		s.Logger.Warn("send file", zap.String("name", name), zap.Error(err))
	}
}

// fileNameParam возвращает имя файла из пути. chi матчит по RawPath, если он есть,
// и тогда параметр приходит в percent-encoded виде.
func fileNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}

	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", models.ErrInvalidName
	}
	return decoded, nil
}
