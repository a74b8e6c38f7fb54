package pool

import (
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultListenerLabel 默认监听类型标签
const DefaultListenerLabel = "direct"

// Config 连接池配置
type Config struct {
	// TargetExpiry 缓存条目过期阈值
	//
	// 负值表示永不过期；零表示每次查找都触发刷新；
	// 正值 N 表示距上次（重新）连接超过 N 后触发刷新。
	TargetExpiry time.Duration

	// ListenerLabel 发现查询使用的监听类型标签
	ListenerLabel string

	// BrokerAddress 固定 broker 地址（GetToBroker 使用）
	BrokerAddress string

	// Clock 时间源，测试时可注入 mock
	Clock clock.Clock
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		TargetExpiry:  2 * time.Minute,
		ListenerLabel: DefaultListenerLabel,
		BrokerAddress: "",
		Clock:         clock.New(),
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithTargetExpiry 设置缓存条目过期阈值
func WithTargetExpiry(expiry time.Duration) Option {
	return func(c *Config) {
		c.TargetExpiry = expiry
	}
}

// WithNoTargetExpiry 设置缓存条目永不过期
func WithNoTargetExpiry() Option {
	return func(c *Config) {
		c.TargetExpiry = -1
	}
}

// WithListenerLabel 设置发现查询的监听类型标签
func WithListenerLabel(label string) Option {
	return func(c *Config) {
		c.ListenerLabel = label
	}
}

// WithBrokerAddress 设置固定 broker 地址
func WithBrokerAddress(address string) Option {
	return func(c *Config) {
		c.BrokerAddress = address
	}
}

// WithClock 设置时间源
func WithClock(clk clock.Clock) Option {
	return func(c *Config) {
		c.Clock = clk
	}
}
