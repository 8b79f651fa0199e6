package models

import "errors"

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
	ErrIO          = errors.New("storage i/o error")
	ErrNoFile      = errors.New("multipart field \"file\" is required")
)
