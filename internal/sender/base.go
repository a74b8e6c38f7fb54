package sender

import (
	"github.com/relaybus/go-relaybus/internal/core/pool"
	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/lib/log"
	"github.com/relaybus/go-relaybus/pkg/types"
)

var logger = log.Logger("sender")

// Base 各 Sender 实现共享的发送辅助
//
// 通过内嵌复用；自身无状态，连接缓存全部在 pool 中。
type Base struct {
	pool *pool.Pool
}

// NewBase 创建发送辅助
func NewBase(p *pool.Pool) Base {
	return Base{pool: p}
}

// Pool 返回所属连接池
func (b Base) Pool() *pool.Pool {
	return b.pool
}

// Transmit 在给定连接上执行一次 fire-and-forget 发送
//
// 记录消息类型、消息 ID 和目标后发送；不等待任何确认，
// 确认语义属于具体投递模式的职责。
func (b Base) Transmit(conn interfaces.Connection, env *types.Envelope) error {
	logger.Debug("发送消息",
		"kind", env.Kind.String(),
		"messageID", log.TruncateID(env.MessageID, 8),
		"target", env.Target.String())
	return conn.Send(env)
}

// Cleanup 委托连接池关闭全部已分配的连接
func (b Base) Cleanup() error {
	return b.pool.Cleanup()
}
