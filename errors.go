package relaybus

import "errors"

var (
	// ErrNilMatchmaker 未提供 Matchmaker
	ErrNilMatchmaker = errors.New("relaybus: matchmaker is required")

	// ErrClosed Bus 已关闭
	ErrClosed = errors.New("relaybus: bus is closed")
)
