package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yourname/filestore_lite/internal/models"
	"github.com/yourname/filestore_lite/pkg/fileproto"
)

// Status переводит ошибку доменного слоя в HTTP-статус.
func Status(err error) int {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrInvalidName), errors.Is(err, models.ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write отвечает клиенту JSON-ом {"detail": "..."} с подходящим статусом.
func Write(w http.ResponseWriter, err error) {
	WriteStatus(w, Status(err), err.Error())
}

// WriteStatus пишет ошибку с явно заданным статусом.
func WriteStatus(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(fileproto.ErrorResponse{Detail: detail})
}
