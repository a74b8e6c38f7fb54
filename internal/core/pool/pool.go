package pool

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/lib/log"
	"github.com/relaybus/go-relaybus/pkg/types"
)

var logger = log.Logger("core/pool")

// cacheEntry 缓存条目
//
// refreshedAt 在条目创建和每次刷新时更新，只会单调前进。
type cacheEntry struct {
	conn        interfaces.Connection
	refreshedAt time.Time
}

// Pool 出站连接池
//
// 每个 Target 至多对应一个缓存条目；条目除显式 Cleanup 外不会被移除，
// 过期通过原地刷新处理而不是淘汰重建。
type Pool struct {
	transport  interfaces.Transport
	matchmaker interfaces.Matchmaker
	config     *Config

	mu       sync.Mutex
	entries  map[string]*cacheEntry
	brokered map[string][]interfaces.Connection

	// 同一 Target 的并发创建/刷新合并为一次
	group singleflight.Group

	stats Stats
}

// New 创建连接池
func New(transport interfaces.Transport, matchmaker interfaces.Matchmaker, opts ...Option) (*Pool, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}
	if matchmaker == nil {
		return nil, ErrNilMatchmaker
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	return &Pool{
		transport:  transport,
		matchmaker: matchmaker,
		config:     config,
		entries:    make(map[string]*cacheEntry),
		brokered:   make(map[string][]interfaces.Connection),
	}, nil
}

// Get 解析 Target 对应的活跃连接
//
// 缓存命中且未过期时直接返回缓存的连接；过期时原地刷新后返回；
// 未命中时创建新连接并缓存。发现服务查询失败返回 *DiscoveryError，
// 传输层连接错误原样传播，两种失败都不会留下半填充的缓存条目。
func (p *Pool) Get(ctx context.Context, target types.Target) (interfaces.Connection, error) {
	key := target.Key()

	if conn, ok := p.lookupFresh(key); ok {
		p.stats.hits.Add(1)
		return conn, nil
	}

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		return p.createOrRefresh(ctx, target, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(interfaces.Connection), nil
}

// lookupFresh 返回未过期的缓存连接
func (p *Pool) lookupFresh(key string) (interfaces.Connection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[key]
	if !ok {
		return nil, false
	}
	if p.config.TargetExpiry < 0 {
		// 永不过期
		return entry.conn, true
	}
	if p.config.Clock.Since(entry.refreshedAt) < p.config.TargetExpiry {
		return entry.conn, true
	}
	return nil, false
}

// createOrRefresh 创建新连接或刷新已过期的条目
//
// 在 singleflight 内执行：同一 Target 的并发未命中共享同一次
// 发现查询与连接建立。
func (p *Pool) createOrRefresh(ctx context.Context, target types.Target, key string) (interfaces.Connection, error) {
	p.mu.Lock()
	entry, ok := p.entries[key]
	p.mu.Unlock()

	if ok {
		// 可能被并发调用刷新过，重新检查有效期
		if p.config.TargetExpiry < 0 || p.config.Clock.Since(entry.refreshedAt) < p.config.TargetExpiry {
			p.stats.hits.Add(1)
			return entry.conn, nil
		}
		return p.refresh(ctx, target, key, entry)
	}
	return p.create(ctx, target, key)
}

// create 建立并缓存新连接
func (p *Pool) create(ctx context.Context, target types.Target, key string) (interfaces.Connection, error) {
	conn, err := p.transport.NewConnection()
	if err != nil {
		return nil, err
	}

	hosts, err := p.matchmaker.GetHosts(ctx, target, p.config.ListenerLabel)
	if err != nil {
		p.stats.discoveryErrors.Add(1)
		_ = conn.Close()
		return nil, &DiscoveryError{Target: target, Err: err}
	}

	// 空主机列表是合法结果：连接以"未链接任何主机"的状态入缓存
	for _, host := range hosts {
		if err := conn.ConnectToHost(host); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	p.mu.Lock()
	p.entries[key] = &cacheEntry{conn: conn, refreshedAt: p.config.Clock.Now()}
	p.mu.Unlock()

	p.stats.misses.Add(1)
	logger.Debug("缓存未命中，已创建新连接",
		"target", target.String(),
		"hosts", len(hosts))
	return conn, nil
}

// refresh 原地刷新过期条目
//
// 把新发现的主机追加到现有连接上，不重置已有链接，
// 避免打断在途发送或影响其他持有同一连接的调用方。
func (p *Pool) refresh(ctx context.Context, target types.Target, key string, entry *cacheEntry) (interfaces.Connection, error) {
	hosts, err := p.matchmaker.GetHosts(ctx, target, p.config.ListenerLabel)
	if err != nil {
		p.stats.discoveryErrors.Add(1)
		return nil, &DiscoveryError{Target: target, Err: err}
	}

	for _, host := range hosts {
		if err := entry.conn.ConnectToHost(host); err != nil {
			return nil, err
		}
	}

	p.mu.Lock()
	entry.refreshedAt = p.config.Clock.Now()
	p.mu.Unlock()

	p.stats.refreshes.Add(1)
	logger.Debug("缓存条目已刷新",
		"target", target.String(),
		"hosts", len(hosts))
	return entry.conn, nil
}

// GetToBroker 创建直连固定 broker 地址的新连接
//
// 总是创建全新连接（不读缓存），连接到配置的 broker 地址
// 而不经过发现服务；连接按 Target 键单独登记，仅用于 Cleanup。
func (p *Pool) GetToBroker(target types.Target) (interfaces.Connection, error) {
	if p.config.BrokerAddress == "" {
		return nil, ErrNoBrokerAddress
	}

	conn, err := p.transport.NewConnection()
	if err != nil {
		return nil, err
	}

	if err := conn.ConnectToAddress(p.config.BrokerAddress); err != nil {
		_ = conn.Close()
		return nil, err
	}

	key := target.Key()
	p.mu.Lock()
	p.brokered[key] = append(p.brokered[key], conn)
	p.mu.Unlock()

	logger.Debug("已创建 broker 直连",
		"target", target.String(),
		"broker", p.config.BrokerAddress)
	return conn, nil
}

// Cleanup 关闭池中登记的所有连接
//
// 包括发现路径缓存的连接和 broker 直连；关闭后清空登记，
// 因此重复调用是安全的空操作。
func (p *Pool) Cleanup() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs error
	for _, entry := range p.entries {
		errs = multierr.Append(errs, entry.conn.Close())
	}
	for _, conns := range p.brokered {
		for _, conn := range conns {
			errs = multierr.Append(errs, conn.Close())
		}
	}

	p.entries = make(map[string]*cacheEntry)
	p.brokered = make(map[string][]interfaces.Connection)
	return errs
}

// Len 返回发现路径缓存的条目数
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
