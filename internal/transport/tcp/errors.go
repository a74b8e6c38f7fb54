package tcp

import "errors"

var (
	// ErrConnClosed 连接已关闭
	ErrConnClosed = errors.New("tcp: connection closed")

	// ErrFrameTooLarge 帧超出大小上限
	ErrFrameTooLarge = errors.New("tcp: frame too large")
)
