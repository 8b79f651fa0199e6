package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/filestore_lite/internal/models"
)

type fakeStats struct {
	stats models.Stats
	err   error
}

func (f fakeStats) Stats(context.Context) (models.Stats, error) { return f.stats, f.err }

// gathered собирает значения метрик без лейблов (или суммирует по всем лейблам).
func gathered(t *testing.T, m *Metrics) map[string]float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				out[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[mf.GetName()] += metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				out[mf.GetName()] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestStoreCollector(t *testing.T) {
	m := New(fakeStats{stats: models.Stats{FilesStoredTotal: 5, TotalStorageBytes: 1234, FilesCurrent: 3}})

	got := gathered(t, m)
	assert.Equal(t, float64(5), got["filestore_files_stored_total"])
	assert.Equal(t, float64(1234), got["filestore_total_storage_bytes"])
	assert.Equal(t, float64(3), got["filestore_files_current"])
}

func TestStoreCollector_Error(t *testing.T) {
	m := New(fakeStats{err: errors.New("disk gone")})

	_, err := m.Registry().Gather()
	assert.Error(t, err)
}

func TestRecordUploadDownload(t *testing.T) {
	m := New(nil)

	m.RecordUpload(10, true)
	m.RecordUpload(99, false)
	m.RecordDownload(7, true)

	got := gathered(t, m)
	assert.Equal(t, float64(2), got["filestore_uploads_total"])
	assert.Equal(t, float64(10), got["filestore_bytes_uploaded_total"])
	assert.Equal(t, float64(1), got["filestore_downloads_total"])
	assert.Equal(t, float64(7), got["filestore_bytes_downloaded_total"])

	var nilMetrics *Metrics
	nilMetrics.RecordUpload(1, true)
	nilMetrics.RecordDownload(1, true)
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New(fakeStats{stats: models.Stats{FilesCurrent: 1}})

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/files/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics/prometheus", m.Handler())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	for _, name := range []string{"a.txt", "b.txt"} {
		resp, err := http.Get(srv.URL + "/files/" + name)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/metrics/prometheus")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `filestore_http_requests_total{method="GET",route="/files/{name}",status="404"} 2`), text)
	assert.Contains(t, text, "filestore_files_current 1")
}
