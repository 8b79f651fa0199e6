package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const collectTimeout = 5 * time.Second

var (
	filesStoredTotalDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "files_stored_total"),
		"Successful uploads since process start, overwrites included",
		nil, nil,
	)
	totalStorageBytesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "total_storage_bytes"),
		"Sum of sizes of files currently stored",
		nil, nil,
	)
	filesCurrentDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "files_current"),
		"Number of distinct files currently stored",
		nil, nil,
	)
)

// storeCollector снимает Stats на каждый scrape: источник истины один, это каталог.
type storeCollector struct {
	source StatsSource
}

func newStoreCollector(source StatsSource) *storeCollector {
	return &storeCollector{source: source}
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- filesStoredTotalDesc
	ch <- totalStorageBytesDesc
	ch <- filesCurrentDesc
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	stats, err := c.source.Stats(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(filesCurrentDesc, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(filesStoredTotalDesc, prometheus.CounterValue, float64(stats.FilesStoredTotal))
	ch <- prometheus.MustNewConstMetric(totalStorageBytesDesc, prometheus.GaugeValue, float64(stats.TotalStorageBytes))
	ch <- prometheus.MustNewConstMetric(filesCurrentDesc, prometheus.GaugeValue, float64(stats.FilesCurrent))
}
