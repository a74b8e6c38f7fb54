package relaybus

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options)

// options 内部选项结构
type options struct {
	matchmaker interfaces.Matchmaker
	transport  interfaces.Transport

	// 连接池配置
	targetExpiry  time.Duration
	targetExpiry0 bool // 是否显式设置了 targetExpiry（区分零值和未设置）
	listenerLabel string
	brokerAddress string
	clock         clock.Clock
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// WithMatchmaker 设置发现服务客户端（必填）
func WithMatchmaker(m interfaces.Matchmaker) Option {
	return func(o *options) {
		o.matchmaker = m
	}
}

// WithTransport 设置传输层
//
// 默认使用 TCP 传输。
func WithTransport(t interfaces.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithTargetExpiry 设置连接缓存条目的过期阈值
//
// 负值表示永不过期；零表示每次查找都刷新。
func WithTargetExpiry(expiry time.Duration) Option {
	return func(o *options) {
		o.targetExpiry = expiry
		o.targetExpiry0 = true
	}
}

// WithListenerLabel 设置发现查询使用的监听类型标签
func WithListenerLabel(label string) Option {
	return func(o *options) {
		o.listenerLabel = label
	}
}

// WithBrokerAddress 设置固定 broker 地址
func WithBrokerAddress(address string) Option {
	return func(o *options) {
		o.brokerAddress = address
	}
}

// WithClock 设置时间源（测试用）
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}
