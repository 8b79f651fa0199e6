// Package fileproto описывает HTTP-протокол файлового сервиса: пути и JSON-тела ответов.
package fileproto

// Пути REST-интерфейса.
const (
	PathRoot          = "/"
	PathFiles         = "/files"
	PathFileFormat    = "/files/%s"
	PathHealth        = "/health"
	PathMetrics       = "/metrics"
	PathPrometheus    = "/metrics/prometheus"
	PathAdminGC       = "/admin/gc"
	PathAdminConfig   = "/admin/config"
	FormFieldFile     = "file"
	StoredMessage     = "File stored successfully"
	HealthyStatus     = "healthy"
	ContentTypeBinary = "application/octet-stream"
)

// RootResponse отдаётся на GET /.
type RootResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// UploadResponse отдаётся на POST /files.
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type ListResponse struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// MetricsResponse отдаётся на GET /metrics.
type MetricsResponse struct {
	FilesStoredTotal  int64 `json:"files_stored_total"`
	TotalStorageBytes int64 `json:"total_storage_bytes"`
	FilesCurrent      int   `json:"files_current"`
}

// ErrorResponse это тело любого ответа с ошибкой.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
