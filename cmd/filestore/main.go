package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/internal/app/resthttp"
	"github.com/yourname/filestore_lite/internal/config"
	"github.com/yourname/filestore_lite/internal/logging"
)

const (
	shutdownTimeout = 15 * time.Second
	readHeaderLimit = 10 * time.Second
)

// main поднимает файловый сервис и гасит его по SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	handler, srv, err := resthttp.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("init storage", zap.String("data_dir", cfg.DataDir), zap.Error(err))
	}

	stopGC := srv.StartGC()
	defer stopGC()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderLimit,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("filestore listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("data_dir", cfg.DataDir),
		zap.Int64("max_upload_bytes", cfg.MaxUploadBytes),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}
	<-done
	logger.Info("filestore stopped")
}
