package resthttp

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/yourname/filestore_lite/internal/models"
	"github.com/yourname/filestore_lite/pkg/fileproto"
	"github.com/yourname/filestore_lite/pkg/httperrors"
)

// postFiles читает multipart-поток, находит поле file и отдаёт его сервису без буферизации в памяти.
func (s *Server) postFiles(w http.ResponseWriter, r *http.Request) {
	if s.Cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxUploadBytes)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		httperrors.WriteStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	part, err := nextFilePart(mr)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	defer part.Close()

	res, err := s.FilesService.Upload(r.Context(), rawFileName(part), part)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fileproto.UploadResponse{
		Message:  fileproto.StoredMessage,
		Filename: res.Name,
		Size:     res.Size,
	})
}

// nextFilePart пропускает остальные поля формы до части с именем file.
func nextFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, models.ErrNoFile
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, err
			}
			return nil, errors.Join(models.ErrNoFile, err)
		}
		if part.FormName() == fileproto.FormFieldFile {
			return part, nil
		}
		part.Close()
	}
}

// rawFileName достаёт filename из Content-Disposition как есть.
// Part.FileName() режет путь до base name и тем самым маскирует попытки traversal,
// а нам нужно их отклонять, а не переписывать.
func rawFileName(p *multipart.Part) string {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}
