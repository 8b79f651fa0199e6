package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// StartGC стартует периодическую очистку staging-каталога.
func (s *Store) StartGC(ttl time.Duration, every time.Duration, onSweep func(removed int, err error)) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				removed, err := s.SweepStaging(ttl)
				if onSweep != nil {
					onSweep(removed, err)
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// SweepStaging удаляет staging-файлы старше ttl, оставшиеся от прерванных записей.
func (s *Store) SweepStaging(ttl time.Duration) (int, error) {
	now := time.Now()
	entries, err := os.ReadDir(s.staging)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		name := e.Name()
		if !strings.HasPrefix(name, stagingPrefix) || !strings.HasSuffix(name, stagingSuffix) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		// Свежие файлы могут принадлежать идущей прямо сейчас загрузке.
		if now.Sub(info.ModTime()) < ttl {
			continue
		}

		if err := os.Remove(filepath.Join(s.staging, name)); err == nil {
			removed++
		}
	}

	return removed, nil
}
