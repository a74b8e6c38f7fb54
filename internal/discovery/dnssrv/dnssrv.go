package dnssrv

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/miekg/dns"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/lib/log"
	"github.com/relaybus/go-relaybus/pkg/types"
)

var logger = log.Logger("discovery/dnssrv")

// resolvConfPath 系统解析器配置文件
const resolvConfPath = "/etc/resolv.conf"

// Matchmaker 基于 DNS SRV 记录的 Matchmaker
type Matchmaker struct {
	config Config
	server string
	client *dns.Client
	cache  *lru.LRU[string, []types.Host]

	// 测试时可替换的查询函数
	exchange func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, time.Duration, error)
}

// 确保 Matchmaker 实现了 interfaces.Matchmaker 接口
var _ interfaces.Matchmaker = (*Matchmaker)(nil)

// New 创建 DNS SRV Matchmaker
func New(config Config) (*Matchmaker, error) {
	if config.Domain == "" {
		return nil, ErrNoDomain
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultConfig().CacheSize
	}

	server := config.Resolver
	if server == "" {
		cc, err := dns.ClientConfigFromFile(resolvConfPath)
		if err != nil || len(cc.Servers) == 0 {
			return nil, ErrNoResolver
		}
		server = net.JoinHostPort(cc.Servers[0], cc.Port)
	}

	client := &dns.Client{Timeout: config.Timeout}
	m := &Matchmaker{
		config: config,
		server: server,
		client: client,
		cache:  lru.NewLRU[string, []types.Host](config.CacheSize, nil, config.CacheTTL),
	}
	m.exchange = client.ExchangeContext
	return m, nil
}

// queryName 计算 (Target, listenerLabel) 的 SRV 查询名
func (m *Matchmaker) queryName(target types.Target, listenerLabel string) string {
	domain := m.config.Domain
	if target.Server != "" {
		domain = target.Server + "." + domain
	}
	return dns.Fqdn(fmt.Sprintf("_%s-%s._tcp.%s", target.Topic, listenerLabel, domain))
}

// GetHosts 解析 SRV 记录并返回主机列表
//
// NXDOMAIN 按空结果处理（目标暂时没有消费者不是错误）；
// 其他失败状态作为错误返回。
func (m *Matchmaker) GetHosts(ctx context.Context, target types.Target, listenerLabel string) ([]types.Host, error) {
	name := m.queryName(target, listenerLabel)

	if hosts, ok := m.cache.Get(name); ok {
		out := make([]types.Host, len(hosts))
		copy(out, hosts)
		return out, nil
	}

	msg := new(dns.Msg)
	msg.SetQuestion(name, dns.TypeSRV)
	msg.RecursionDesired = true

	resp, _, err := m.exchange(ctx, msg, m.server)
	if err != nil {
		return nil, fmt.Errorf("dnssrv: query %s: %w", name, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		m.cache.Add(name, nil)
		return []types.Host{}, nil
	default:
		return nil, fmt.Errorf("%w: %s returned %s", ErrQueryFailed, name, dns.RcodeToString[resp.Rcode])
	}

	hosts := parseSRV(resp)
	m.cache.Add(name, hosts)

	logger.Debug("SRV 解析完成",
		"name", name,
		"hosts", len(hosts))

	out := make([]types.Host, len(hosts))
	copy(out, hosts)
	return out, nil
}

// parseSRV 从应答中提取主机列表，按优先级排序保证确定性
func parseSRV(resp *dns.Msg) []types.Host {
	records := make([]*dns.SRV, 0, len(resp.Answer))
	for _, answer := range resp.Answer {
		if srv, ok := answer.(*dns.SRV); ok {
			records = append(records, srv)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Priority != records[j].Priority {
			return records[i].Priority < records[j].Priority
		}
		if records[i].Weight != records[j].Weight {
			return records[i].Weight > records[j].Weight
		}
		return records[i].Target < records[j].Target
	})

	hosts := make([]types.Host, 0, len(records))
	for _, srv := range records {
		hosts = append(hosts, types.Host{
			Hostname: strings.TrimSuffix(srv.Target, "."),
			Port:     int(srv.Port),
		})
	}
	return hosts
}
