package sender

import (
	"context"

	"github.com/relaybus/go-relaybus/internal/core/pool"
	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/types"
)

// Direct 定向投递 Sender
//
// 处理 KindCall 和 KindCast 消息，按 Target 投递到具体服务实例。
type Direct struct {
	Base
}

// 确保 Direct 实现了 interfaces.Sender 接口
var _ interfaces.Sender = (*Direct)(nil)

// NewDirect 创建定向 Sender
func NewDirect(p *pool.Pool) (*Direct, error) {
	if p == nil {
		return nil, ErrNilPool
	}
	return &Direct{Base: NewBase(p)}, nil
}

// SendRequest 投递定向消息
func (s *Direct) SendRequest(ctx context.Context, env *types.Envelope) error {
	if env.Kind != types.KindCall && env.Kind != types.KindCast {
		return NewUnsupportedPatternError(env.Kind.String())
	}

	conn, err := s.pool.Get(ctx, env.Target)
	if err != nil {
		return err
	}
	return s.Transmit(conn, env)
}
