package models

import "time"

// StoredFile описывает один файл, лежащий в корне хранилища.
type StoredFile struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Stats хранит снимок агрегированной статистики хранилища.
type Stats struct {
	// FilesStoredTotal растёт на каждый успешный Put, включая перезаписи.
	FilesStoredTotal  int64 `json:"files_stored_total"`
	TotalStorageBytes int64 `json:"total_storage_bytes"`
	FilesCurrent      int   `json:"files_current"`
}
