package sender

import (
	"errors"
	"fmt"
)

var (
	// ErrNilPool 连接池为 nil
	ErrNilPool = errors.New("sender: pool is nil")

	// ErrUnsupportedPattern 投递模式不被该 Sender 支持
	//
	// 调用方可据此换用其他 Sender 实现。
	ErrUnsupportedPattern = errors.New("sender: sending pattern is unsupported")
)

// NewUnsupportedPatternError 返回携带模式名称的 ErrUnsupportedPattern
func NewUnsupportedPatternError(pattern string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedPattern, pattern)
}
