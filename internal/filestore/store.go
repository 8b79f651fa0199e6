package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/yourname/filestore_lite/internal/models"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	stagingPrefix = ".upload-"
	stagingSuffix = ".tmp"

	openAttempts = 5
)

// Store хранит файлы плоским списком в одном каталоге и ведёт счётчик загрузок.
type Store struct {
	root    string
	staging string

	// filesStoredTotal живёт только в памяти процесса и обнуляется при рестарте.
	filesStoredTotal atomic.Int64
}

// New создаёт (при необходимости) корень хранилища и каталог staging.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data dir is empty")
	}

	root, err := filepath.Abs(filepath.Clean(dataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir %s: %w", dataDir, err)
	}

	staging := filepath.Join(root, stagingDirName)
	if err := os.MkdirAll(staging, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", models.ErrIO, staging, err)
	}

	return &Store{
		root:    root,
		staging: staging,
	}, nil
}

// Root возвращает абсолютный путь к корню хранилища.
func (s *Store) Root() string { return s.root }

// Put записывает содержимое под именем name, целиком заменяя прежнюю версию.
func (s *Store) Put(ctx context.Context, name string, content io.Reader) (models.UploadResult, error) {
	path, err := s.resolve(name)
	if err != nil {
		return models.UploadResult{}, err
	}

	tmpName := filepath.Join(s.staging, stagingPrefix+uuid.NewString()+stagingSuffix)
	tmp, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: create staging file: %w", models.ErrIO, err)
	}

	// Пока rename не случился, читатели видят только прежнюю версию.
	n, err := io.Copy(tmp, content)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return models.UploadResult{}, copyErr(name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return models.UploadResult{}, fmt.Errorf("%w: sync %s: %w", models.ErrIO, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return models.UploadResult{}, fmt.Errorf("%w: close staging for %s: %w", models.ErrIO, name, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmpName)
		return models.UploadResult{}, fmt.Errorf("%w: %s: %w", models.ErrIO, name, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return models.UploadResult{}, fmt.Errorf("%w: commit %s: %w", models.ErrIO, name, err)
	}

	s.filesStoredTotal.Add(1)

	return models.UploadResult{Name: name, Size: n}, nil
}

// List возвращает имена всех файлов в корне. Порядок не гарантируется.
func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", models.ErrIO, s.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		// Каталог staging и прочие не-файлы в выдачу не попадают.
		if !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}

	return names, nil
}

// Open открывает файл на чтение. Закрыть его обязан вызывающий.
func (s *Store) Open(_ context.Context, name string) (*os.File, models.StoredFile, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, models.StoredFile{}, err
	}

	// Симлинки и каталоги в List не видны, значит и отдавать их нельзя.
	// Между Lstat и Open запись может подменить файл rename-ом, тогда пробуем ещё раз.
	var (
		f    *os.File
		info fs.FileInfo
	)
	for attempt := 0; ; attempt++ {
		linfo, err := os.Lstat(path)
		if err != nil {
			return nil, models.StoredFile{}, wrapReadErr(name, err)
		}
		if !linfo.Mode().IsRegular() {
			return nil, models.StoredFile{}, fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}

		f, err = os.Open(path)
		if err != nil {
			return nil, models.StoredFile{}, wrapReadErr(name, err)
		}

		info, err = f.Stat()
		if err != nil {
			f.Close()
			return nil, models.StoredFile{}, wrapReadErr(name, err)
		}
		if info.Mode().IsRegular() && os.SameFile(linfo, info) {
			break
		}
		f.Close()
		if attempt >= openAttempts-1 {
			return nil, models.StoredFile{}, fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}
	}

	return f, models.StoredFile{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Get возвращает содержимое файла целиком.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	f, _, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", models.ErrIO, name, err)
	}

	return b, nil
}

// Stats считает текущие файлы и их размер за один проход по каталогу.
func (s *Store) Stats(_ context.Context) (models.Stats, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return models.Stats{}, fmt.Errorf("%w: read %s: %w", models.ErrIO, s.root, err)
	}

	stats := models.Stats{FilesStoredTotal: s.filesStoredTotal.Load()}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		// Наличие и размер берём из одного Info(), чтобы файл не мог попасть только в одну из сумм.
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return models.Stats{}, fmt.Errorf("%w: stat %s: %w", models.ErrIO, e.Name(), err)
		}

		stats.FilesCurrent++
		stats.TotalStorageBytes += info.Size()
	}

	return stats, nil
}

// copyErr не выдаёт превышение лимита тела запроса за сбой хранилища.
func copyErr(name string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: write %s: %w", models.ErrIO, name, err)
}

func wrapReadErr(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}

	return fmt.Errorf("%w: open %s: %w", models.ErrIO, name, err)
}
