package dnssrv

import (
	"errors"
	"time"
)

var (
	// ErrNoDomain 未配置 SRV 记录所在域
	ErrNoDomain = errors.New("dnssrv: domain is required")

	// ErrNoResolver 无法确定 DNS 解析器地址
	ErrNoResolver = errors.New("dnssrv: no resolver available")

	// ErrQueryFailed DNS 查询返回非成功状态
	ErrQueryFailed = errors.New("dnssrv: query failed")
)

// Config DNS SRV Matchmaker 配置
type Config struct {
	// Domain SRV 记录所在域（必填）
	Domain string

	// Resolver 自定义 DNS 解析器地址（格式: "ip:port"）
	//
	// 为空则使用 /etc/resolv.conf 中的第一个解析器。
	Resolver string

	// Timeout 单次 DNS 查询超时
	Timeout time.Duration

	// CacheTTL 解析结果缓存时间
	CacheTTL time.Duration

	// CacheSize 缓存最大条目数
	CacheSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Timeout:   5 * time.Second,
		CacheTTL:  30 * time.Second,
		CacheSize: 128,
	}
}
