package relaybus

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
)

// Module 提供 Bus 的 Fx 模块
//
// 容器中必须能解析出 interfaces.Matchmaker；
// interfaces.Transport 可选，缺省使用 TCP 传输。
// Bus 在应用停止时自动清理连接。
var Module = fx.Module("relaybus",
	fx.Provide(NewFromParams),
)

// Params Bus 依赖参数
type Params struct {
	fx.In

	Matchmaker interfaces.Matchmaker
	Transport  interfaces.Transport `optional:"true"`
	Options    []Option             `group:"relaybus_options"`
}

// NewFromParams 从 Fx 参数创建 Bus
func NewFromParams(p Params, lc fx.Lifecycle) (*Bus, error) {
	opts := []Option{WithMatchmaker(p.Matchmaker)}
	if p.Transport != nil {
		opts = append(opts, WithTransport(p.Transport))
	}
	opts = append(opts, p.Options...)

	bus, err := New(opts...)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bus.Close()
		},
	})
	return bus, nil
}

// FxLogger 返回使用 zap 输出 Fx 事件的选项
//
// 传入 nil 时使用 zap.NewNop() 静默事件日志。
func FxLogger(l *zap.Logger) fx.Option {
	return fx.WithLogger(func() fxevent.Logger {
		if l == nil {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}
		return &fxevent.ZapLogger{Logger: l}
	})
}
