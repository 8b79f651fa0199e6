package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourname/filestore_lite/internal/config"
	"github.com/yourname/filestore_lite/internal/loadgen"
	"github.com/yourname/filestore_lite/internal/logging"
	"github.com/yourname/filestore_lite/pkg/fileclient"
)

func main() {
	addr := flag.String("addr", "http://localhost:8000", "base URL of the file service")
	workers := flag.Int("workers", 10, "concurrent simulated users")
	duration := flag.Duration("duration", time.Minute, "how long to run")
	waitMin := flag.Duration("wait-min", time.Second, "minimum pause between requests")
	waitMax := flag.Duration("wait-max", 3*time.Second, "maximum pause between requests")
	names := flag.Int("names", 10000, "upload names are drawn from test_1..test_N")
	progress := flag.Bool("progress", false, "draw transfer progress on stderr")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := logging.New(config.LogConfig{Level: *level, Format: "console"})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	opts := []fileclient.Option{}
	if *progress {
		opts = append(opts, fileclient.WithProgress(os.Stderr))
	}
	cli := fileclient.New(*addr, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := cli.Health(ctx); err != nil {
		logger.Fatal("service is not reachable", zap.String("addr", *addr), zap.Error(err))
	}

	runner := loadgen.New(cli, loadgen.Config{
		Workers:   *workers,
		Duration:  *duration,
		WaitMin:   *waitMin,
		WaitMax:   *waitMax,
		NameRange: *names,
	}, logger)

	logger.Info("load started", zap.String("addr", *addr), zap.Int("workers", *workers), zap.Duration("duration", *duration))
	rep, err := runner.Run(ctx)
	if err != nil {
		logger.Error("load run", zap.Error(err))
	}
	fmt.Print(rep.String())

	if m, err := cli.Metrics(context.Background()); err == nil {
		fmt.Printf("server: stored_total=%d files=%d bytes=%d\n", m.FilesStoredTotal, m.FilesCurrent, m.TotalStorageBytes)
	}
}
