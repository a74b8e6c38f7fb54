package sender

import (
	"context"

	"github.com/relaybus/go-relaybus/internal/core/pool"
	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/types"
)

// Fanout 扇出投递 Sender
//
// 只处理 KindFanout 消息；连接本身链接了主题的全部消费者主机，
// 单次发送即完成扇出。
type Fanout struct {
	Base
}

// 确保 Fanout 实现了 interfaces.Sender 接口
var _ interfaces.Sender = (*Fanout)(nil)

// NewFanout 创建扇出 Sender
func NewFanout(p *pool.Pool) (*Fanout, error) {
	if p == nil {
		return nil, ErrNilPool
	}
	return &Fanout{Base: NewBase(p)}, nil
}

// SendRequest 投递扇出消息
func (s *Fanout) SendRequest(ctx context.Context, env *types.Envelope) error {
	if env.Kind != types.KindFanout {
		return NewUnsupportedPatternError(env.Kind.String())
	}

	conn, err := s.pool.Get(ctx, env.Target)
	if err != nil {
		return err
	}
	return s.Transmit(conn, env)
}
