package interfaces

import (
	"context"

	"github.com/relaybus/go-relaybus/pkg/types"
)

// Sender 消息投递模式契约
//
// 每种投递模式（fanout、direct、push 等）对应一个 Sender 实现。
// 实现必须通过连接池解析 env.Target 对应的连接并完成发送；
// 收到不支持的消息类型时，必须返回携带模式名称的
// ErrUnsupportedPattern 错误（可恢复，提示调用方换用其他 Sender）。
type Sender interface {
	// SendRequest 投递一条消息
	SendRequest(ctx context.Context, env *types.Envelope) error

	// Cleanup 释放 Sender 持有的连接资源
	Cleanup() error
}
