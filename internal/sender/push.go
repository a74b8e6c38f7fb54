package sender

import (
	"context"

	"github.com/relaybus/go-relaybus/internal/core/pool"
	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/types"
)

// Push 推送投递 Sender
//
// 只处理 KindNotify 消息。
type Push struct {
	Base
}

// 确保 Push 实现了 interfaces.Sender 接口
var _ interfaces.Sender = (*Push)(nil)

// NewPush 创建推送 Sender
func NewPush(p *pool.Pool) (*Push, error) {
	if p == nil {
		return nil, ErrNilPool
	}
	return &Push{Base: NewBase(p)}, nil
}

// SendRequest 投递通知消息
func (s *Push) SendRequest(ctx context.Context, env *types.Envelope) error {
	if env.Kind != types.KindNotify {
		return NewUnsupportedPatternError(env.Kind.String())
	}

	conn, err := s.pool.Get(ctx, env.Target)
	if err != nil {
		return err
	}
	return s.Transmit(conn, env)
}
