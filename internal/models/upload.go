package models

// UploadResult возвращается после успешной записи и подтверждает имя и размер.
type UploadResult struct {
	Name string
	Size int64
}
