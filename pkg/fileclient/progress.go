package fileclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор передачи файла в out.
type progressBar struct {
	out           io.Writer
	label         string
	total         int64
	current       int64
	lastRender    time.Time
	lastLineWidth int
	finished      bool
	mu            sync.Mutex
}

// newProgressBar возвращает nil, если вывод прогресса выключен: все методы nil-безопасны.
func newProgressBar(out io.Writer, label string, total int64) *progressBar {
	if out == nil {
		return nil
	}
	return &progressBar{
		out:   out,
		label: label,
		total: total,
	}
}

func (p *progressBar) add(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.current += n
	p.mu.Unlock()
	p.render(false)
}

func (p *progressBar) render(force bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		return
	}
	p.lastRender = now
	p.writeLocked(p.lineLocked(), "")
}

func (p *progressBar) lineLocked() string {
	var b strings.Builder
	b.Grow(len(p.label) + 64)
	b.WriteString(p.label)
	b.WriteByte(' ')

	if p.total <= 0 {
		b.WriteString(humanBytes(p.current))
		b.WriteString(" transferred")
		return b.String()
	}

	ratio := min(float64(p.current)/float64(p.total), 1)
	filled := min(int(ratio*float64(progressBarWidth)+0.5), progressBarWidth)
	b.WriteByte('[')
	b.WriteString(strings.Repeat("=", filled))
	b.WriteString(strings.Repeat(" ", progressBarWidth-filled))
	fmt.Fprintf(&b, "] %3d%% %s/%s", int(ratio*100+0.5), humanBytes(p.current), humanBytes(p.total))

	return b.String()
}

// writeLocked перерисовывает строку через \r, затирая хвост предыдущей.
func (p *progressBar) writeLocked(line, tail string) {
	text := line + tail
	padding := ""
	if p.lastLineWidth > len(text) {
		padding = strings.Repeat(" ", p.lastLineWidth-len(text))
	}
	p.lastLineWidth = len(text)
	fmt.Fprintf(p.out, "\r%s%s", text, padding)
}

func (p *progressBar) finish(err error) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true

	tail := " ok"
	if err != nil {
		tail = fmt.Sprintf(" failed: %v", err)
	}
	p.writeLocked(p.lineLocked(), tail)
	fmt.Fprintln(p.out)
}

// progressWriter прокидывает количество записанных байт в индикатор.
type progressWriter struct {
	bar *progressBar
}

func (w progressWriter) Write(b []byte) (int, error) {
	w.bar.add(int64(len(b)))
	return len(b), nil
}

// progressReadCloser закрывает индикатор на EOF, ошибке или Close.
type progressReadCloser struct {
	inner io.ReadCloser
	bar   *progressBar
}

func newProgressReadCloser(inner io.ReadCloser, bar *progressBar) io.ReadCloser {
	if bar == nil {
		return inner
	}
	return &progressReadCloser{inner: inner, bar: bar}
}

func (p *progressReadCloser) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.bar.add(int64(n))
	if err == io.EOF {
		p.bar.finish(nil)
	} else if err != nil {
		p.bar.finish(err)
	}
	return n, err
}

func (p *progressReadCloser) Close() error {
	err := p.inner.Close()
	p.bar.finish(err)
	return err
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
