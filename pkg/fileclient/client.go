// Package fileclient реализует HTTP-клиент файлового сервиса.
package fileclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/yourname/filestore_lite/pkg/fileproto"
)

// ErrNotFound возвращается Download, когда сервер ответил 404.
var ErrNotFound = errors.New("file not found")

// StatusError возвращается на любой ответ сервера вне 2xx.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Detail)
}

type Client interface {
	// Upload Положить файл в хранилище
	Upload(ctx context.Context, name string, r io.Reader, size int64) (fileproto.UploadResponse, error)
	// List Перечислить имена файлов
	List(ctx context.Context) ([]string, error)
	// Download Достать файл из хранилища
	Download(ctx context.Context, name string) (io.ReadCloser, error)
	Health(ctx context.Context) (fileproto.HealthResponse, error)
	Metrics(ctx context.Context) (fileproto.MetricsResponse, error)
}

// Option настраивает клиента.
type Option func(*httpClient)

// WithHTTPClient подменяет транспорт, например на клиент httptest-сервера.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает ASCII-прогресс загрузок и скачиваний в out.
func WithProgress(out io.Writer) Option {
	return func(h *httpClient) { h.progress = out }
}

type httpClient struct {
	base     string
	c        *http.Client
	progress io.Writer
}

// New создаёт клиента для сервиса по адресу baseURL.
func New(baseURL string, opts ...Option) Client {
	h := &httpClient{
		base: strings.TrimRight(baseURL, "/"),
		c:    &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Upload стримит файл multipart-формой через pipe, не собирая тело в памяти.
func (h *httpClient) Upload(ctx context.Context, name string, r io.Reader, size int64) (fileproto.UploadResponse, error) {
	bar := newProgressBar(h.progress, fmt.Sprintf("Uploading %s", name), size)
	if bar != nil {
		r = io.TeeReader(r, progressWriter{bar: bar})
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(fileproto.FormFieldFile, name)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+fileproto.PathFiles, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		bar.finish(err)
		return fileproto.UploadResponse{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	bar.render(true)

	var out fileproto.UploadResponse
	err = h.doJSON(req, &out)
	_ = pr.CloseWithError(err)
	bar.finish(err)
	return out, err
}

// List возвращает имена файлов на сервере.
func (h *httpClient) List(ctx context.Context) ([]string, error) {
	var out fileproto.ListResponse
	if err := h.getJSON(ctx, fileproto.PathFiles, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Download скачивает файл и возвращает поток с телом. Закрыть его обязан вызывающий.
func (h *httpClient) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	u := h.base + fmt.Sprintf(fileproto.PathFileFormat, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, readStatusError(resp)
	}

	bar := newProgressBar(h.progress, fmt.Sprintf("Downloading %s", name), resp.ContentLength)
	bar.render(true)
	return newProgressReadCloser(resp.Body, bar), nil
}

// Health опрашивает /health.
func (h *httpClient) Health(ctx context.Context) (fileproto.HealthResponse, error) {
	var out fileproto.HealthResponse
	err := h.getJSON(ctx, fileproto.PathHealth, &out)
	return out, err
}

// Metrics забирает статистику хранилища.
func (h *httpClient) Metrics(ctx context.Context) (fileproto.MetricsResponse, error) {
	var out fileproto.MetricsResponse
	err := h.getJSON(ctx, fileproto.PathMetrics, &out)
	return out, err
}

func (h *httpClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+path, nil)
	if err != nil {
		return err
	}
	return h.doJSON(req, out)
}

func (h *httpClient) doJSON(req *http.Request, out any) error {
	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return readStatusError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// readStatusError вытаскивает detail из JSON-тела ошибки, если он там есть.
func readStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload fileproto.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &StatusError{Code: resp.StatusCode, Detail: payload.Detail}
	}
	return &StatusError{Code: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
}
