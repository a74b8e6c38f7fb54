package pool

import (
	"errors"
	"fmt"

	"github.com/relaybus/go-relaybus/pkg/types"
)

var (
	// ErrNilTransport Transport 为 nil
	ErrNilTransport = errors.New("pool: transport is nil")

	// ErrNilMatchmaker Matchmaker 为 nil
	ErrNilMatchmaker = errors.New("pool: matchmaker is nil")

	// ErrNoBrokerAddress 未配置 broker 地址
	ErrNoBrokerAddress = errors.New("pool: broker address not configured")
)

// DiscoveryError 发现服务查询失败
//
// 包装 Matchmaker 返回的原始错误并附带 Target，
// 连接池不重试也不吞掉，原样向上传播。
type DiscoveryError struct {
	Target types.Target
	Err    error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("pool: discovery failed for target %s: %v", e.Target, e.Err)
}

// Unwrap 返回底层错误
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
