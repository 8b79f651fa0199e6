// Package loadgen гоняет взвешенную смесь запросов против файлового сервиса.
package loadgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/filestore_lite/pkg/fileclient"
)

type Config struct {
	Workers   int
	Duration  time.Duration
	WaitMin   time.Duration
	WaitMax   time.Duration
	NameRange int
}

// Task описывает один вид запроса в смеси.
type Task int

const (
	TaskList Task = iota
	TaskUpload
	TaskFetchRandom
	TaskHealth
	TaskMetrics
	taskCount
)

var taskNames = [taskCount]string{"list", "upload", "fetch_random", "health", "metrics"}

func (t Task) String() string {
	if t < 0 || t >= taskCount {
		return fmt.Sprintf("task(%d)", int(t))
	}
	return taskNames[t]
}

var weights = [taskCount]int{
	TaskList:        2,
	TaskUpload:      2,
	TaskFetchRandom: 1,
	TaskHealth:      1,
	TaskMetrics:     1,
}

func totalWeight() int {
	sum := 0
	for _, w := range weights {
		sum += w
	}
	return sum
}

// pickTask отображает n из [0, totalWeight) на задачу по весам.
func pickTask(n int) Task {
	for t, w := range weights {
		if n < w {
			return Task(t)
		}
		n -= w
	}
	return TaskMetrics
}

// TaskStats хранит счётчики по одному виду запросов.
type TaskStats struct {
	OK      int64
	Failed  int64
	Skipped int64
}

type Report struct {
	RunID   string
	Elapsed time.Duration
	Tasks   [taskCount]TaskStats
}

func (r Report) Total() (ok, failed int64) {
	for _, t := range r.Tasks {
		ok += t.OK
		failed += t.Failed
	}
	return ok, failed
}

func (r Report) String() string {
	var b strings.Builder
	ok, failed := r.Total()
	fmt.Fprintf(&b, "run %s: %d ok, %d failed in %s\n", r.RunID, ok, failed, r.Elapsed.Round(time.Millisecond))
	for t, s := range r.Tasks {
		fmt.Fprintf(&b, "  %-13s ok=%d failed=%d skipped=%d\n", Task(t), s.OK, s.Failed, s.Skipped)
	}
	return b.String()
}

type counters struct {
	ok, failed, skipped atomic.Int64
}

type Runner struct {
	client fileclient.Client
	cfg    Config
	logger *zap.Logger
	runID  string
	stats  [taskCount]counters
}

func New(client fileclient.Client, cfg Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.NameRange <= 0 {
		cfg.NameRange = 10000
	}
	if cfg.WaitMax < cfg.WaitMin {
		cfg.WaitMax = cfg.WaitMin
	}
	return &Runner{client: client, cfg: cfg, logger: logger, runID: uuid.NewString()}
}

// Run крутит воркеров до истечения cfg.Duration или отмены ctx.
// Ошибки отдельных запросов попадают в отчёт и не останавливают прогон.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Workers; i++ {
		g.Go(func() error {
			return r.worker(gctx, i)
		})
	}
	err := g.Wait()

	rep := Report{RunID: r.runID, Elapsed: time.Since(start)}
	for t := range r.stats {
		rep.Tasks[t] = TaskStats{
			OK:      r.stats[t].ok.Load(),
			Failed:  r.stats[t].failed.Load(),
			Skipped: r.stats[t].skipped.Load(),
		}
	}
	return rep, err
}

func (r *Runner) worker(ctx context.Context, id int) error {
	log := r.logger.With(zap.Int("worker", id))
	total := totalWeight()
	for ctx.Err() == nil {
		task := pickTask(rand.IntN(total))
		skipped, err := r.do(ctx, task)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			r.stats[task].failed.Add(1)
			log.Debug("request failed", zap.Stringer("task", task), zap.Error(err))
		case skipped:
			r.stats[task].skipped.Add(1)
		default:
			r.stats[task].ok.Add(1)
		}

		if !sleep(ctx, r.wait()) {
			return nil
		}
	}
	return nil
}

func (r *Runner) wait() time.Duration {
	span := r.cfg.WaitMax - r.cfg.WaitMin
	if span <= 0 {
		return r.cfg.WaitMin
	}
	return r.cfg.WaitMin + rand.N(span)
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// do выполняет одну задачу. skipped означает, что делать было нечего.
func (r *Runner) do(ctx context.Context, task Task) (skipped bool, err error) {
	switch task {
	case TaskList:
		_, err = r.client.List(ctx)
	case TaskUpload:
		name := fmt.Sprintf("test_%d.txt", rand.IntN(r.cfg.NameRange)+1)
		content := fmt.Sprintf("Hello from loadgen %s run %s", name, r.runID)
		_, err = r.client.Upload(ctx, name, strings.NewReader(content), int64(len(content)))
	case TaskFetchRandom:
		return r.fetchRandom(ctx)
	case TaskHealth:
		_, err = r.client.Health(ctx)
	case TaskMetrics:
		_, err = r.client.Metrics(ctx)
	default:
		err = fmt.Errorf("unknown task %v", task)
	}
	return false, err
}

func (r *Runner) fetchRandom(ctx context.Context) (bool, error) {
	names, err := r.client.List(ctx)
	if err != nil {
		return false, err
	}
	if len(names) == 0 {
		return true, nil
	}

	rc, err := r.client.Download(ctx, names[rand.IntN(len(names))])
	if errors.Is(err, fileclient.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer rc.Close()
	_, err = io.Copy(io.Discard, rc)
	return false, err
}
