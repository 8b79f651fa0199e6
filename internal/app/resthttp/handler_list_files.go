package resthttp

import (
	"net/http"

	"github.com/yourname/filestore_lite/pkg/fileproto"
	"github.com/yourname/filestore_lite/pkg/httperrors"
)

// listFiles возвращает имена всех сохранённых файлов; порядок не гарантируется.
func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.FilesService.List(r.Context())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fileproto.ListResponse{
		Files: names,
		Count: len(names),
	})
}
