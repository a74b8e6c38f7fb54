package relaybus

import (
	"context"
	"sync"

	"github.com/relaybus/go-relaybus/internal/core/pool"
	"github.com/relaybus/go-relaybus/internal/sender"
	"github.com/relaybus/go-relaybus/internal/transport/tcp"
	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/lib/log"
	"github.com/relaybus/go-relaybus/pkg/types"
)

var logger = log.Logger("relaybus")

// Bus 消息发送入口
//
// 按消息类型把信封路由到对应的 Sender；所有 Sender 共享
// 同一个连接池。
type Bus struct {
	pool    *pool.Pool
	senders map[types.MessageKind]interfaces.Sender

	mu     sync.Mutex
	closed bool
}

// New 创建 Bus
//
// Matchmaker 必填；传输层默认为 TCP。
func New(opts ...Option) (*Bus, error) {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.matchmaker == nil {
		return nil, ErrNilMatchmaker
	}
	transport := o.transport
	if transport == nil {
		transport = tcp.NewTransport(tcp.DefaultConfig())
	}

	poolOpts := make([]pool.Option, 0, 4)
	if o.targetExpiry0 {
		poolOpts = append(poolOpts, pool.WithTargetExpiry(o.targetExpiry))
	}
	if o.listenerLabel != "" {
		poolOpts = append(poolOpts, pool.WithListenerLabel(o.listenerLabel))
	}
	if o.brokerAddress != "" {
		poolOpts = append(poolOpts, pool.WithBrokerAddress(o.brokerAddress))
	}
	if o.clock != nil {
		poolOpts = append(poolOpts, pool.WithClock(o.clock))
	}

	p, err := pool.New(transport, o.matchmaker, poolOpts...)
	if err != nil {
		return nil, err
	}

	fanout, err := sender.NewFanout(p)
	if err != nil {
		return nil, err
	}
	direct, err := sender.NewDirect(p)
	if err != nil {
		return nil, err
	}
	push, err := sender.NewPush(p)
	if err != nil {
		return nil, err
	}

	return &Bus{
		pool: p,
		senders: map[types.MessageKind]interfaces.Sender{
			types.KindFanout: fanout,
			types.KindCall:   direct,
			types.KindCast:   direct,
			types.KindNotify: push,
		},
	}, nil
}

// Send 把信封路由到其消息类型对应的 Sender 并发送
//
// 未注册的消息类型返回携带模式名称的 ErrUnsupportedPattern。
func (b *Bus) Send(ctx context.Context, env *types.Envelope) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	s, ok := b.senders[env.Kind]
	b.mu.Unlock()

	if !ok {
		return sender.NewUnsupportedPatternError(env.Kind.String())
	}
	return s.SendRequest(ctx, env)
}

// Pool 返回底层连接池
//
// 用于注册指标采集器或直接使用 broker 直连路径。
func (b *Bus) Pool() *pool.Pool {
	return b.pool
}

// Close 关闭 Bus 并清理全部连接
//
// 重复关闭是安全的空操作。
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	logger.Info("正在关闭 Bus")
	return b.pool.Cleanup()
}
