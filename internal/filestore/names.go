package filestore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yourname/filestore_lite/internal/models"
)

const (
	// stagingDirName зарезервирован под временные файлы и не может быть именем файла.
	stagingDirName = ".staging"
	maxNameBytes   = 255
)

// ValidateName проверяет, что имя можно использовать как файл прямо в корне хранилища.
// Имена не переписываются: всё подозрительное отклоняется целиком.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", models.ErrInvalidName)
	case len(name) > maxNameBytes:
		return fmt.Errorf("%w: name is longer than %d bytes", models.ErrInvalidName, maxNameBytes)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is not a file name", models.ErrInvalidName, name)
	case name == stagingDirName:
		return fmt.Errorf("%w: %q is reserved", models.ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: null bytes not allowed", models.ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: path separators not allowed", models.ErrInvalidName)
	}

	return nil
}

// resolve валидирует имя и возвращает путь к файлу внутри root.
func (s *Store) resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, name)
	// Повторная проверка уже собранного пути: файл обязан лежать прямо в корне.
	if filepath.Dir(path) != s.root {
		return "", fmt.Errorf("%w: %q escapes storage root", models.ErrInvalidName, name)
	}

	return path, nil
}
