package pool

import "sync/atomic"

// Stats 连接池计数器
type Stats struct {
	hits            atomic.Int64
	misses          atomic.Int64
	refreshes       atomic.Int64
	discoveryErrors atomic.Int64
}

// StatsSnapshot 某个时间点的计数器快照
type StatsSnapshot struct {
	// Hits 缓存命中次数（未触发刷新）
	Hits int64

	// Misses 缓存未命中次数（创建了新连接）
	Misses int64

	// Refreshes 原地刷新次数
	Refreshes int64

	// DiscoveryErrors 发现服务查询失败次数
	DiscoveryErrors int64
}

// Stats 返回当前计数器快照
func (p *Pool) Stats() StatsSnapshot {
	return StatsSnapshot{
		Hits:            p.stats.hits.Load(),
		Misses:          p.stats.misses.Load(),
		Refreshes:       p.stats.refreshes.Load(),
		DiscoveryErrors: p.stats.discoveryErrors.Load(),
	}
}
