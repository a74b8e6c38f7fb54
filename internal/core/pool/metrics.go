package pool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// collector 连接池的 Prometheus 采集器
//
// 只读地导出 Stats 计数器，不在热路径上引入额外开销。
type collector struct {
	pool *Pool

	hits            *prometheus.Desc
	misses          *prometheus.Desc
	refreshes       *prometheus.Desc
	discoveryErrors *prometheus.Desc
	entries         *prometheus.Desc
}

// NewCollector 创建连接池的 Prometheus 采集器
//
// 调用方负责注册到 prometheus.Registerer。
func NewCollector(p *Pool) prometheus.Collector {
	return &collector{
		pool: p,
		hits: prometheus.NewDesc(
			"relaybus_pool_cache_hits_total",
			"Number of connection lookups served from cache.",
			nil, nil),
		misses: prometheus.NewDesc(
			"relaybus_pool_cache_misses_total",
			"Number of connection lookups that created a new connection.",
			nil, nil),
		refreshes: prometheus.NewDesc(
			"relaybus_pool_refreshes_total",
			"Number of in-place refreshes of expired cache entries.",
			nil, nil),
		discoveryErrors: prometheus.NewDesc(
			"relaybus_pool_discovery_errors_total",
			"Number of failed matchmaker lookups.",
			nil, nil),
		entries: prometheus.NewDesc(
			"relaybus_pool_entries",
			"Current number of cached connection entries.",
			nil, nil),
	}
}

// Describe 实现 prometheus.Collector 接口
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.refreshes
	ch <- c.discoveryErrors
	ch <- c.entries
}

// Collect 实现 prometheus.Collector 接口
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.pool.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(snapshot.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(snapshot.Misses))
	ch <- prometheus.MustNewConstMetric(c.refreshes, prometheus.CounterValue, float64(snapshot.Refreshes))
	ch <- prometheus.MustNewConstMetric(c.discoveryErrors, prometheus.CounterValue, float64(snapshot.DiscoveryErrors))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.pool.Len()))
}
