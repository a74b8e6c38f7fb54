package types

import (
	"time"

	"github.com/google/uuid"
)

// Envelope 消息信封
//
// 携带消息体与目的地。连接池与 Sender 只读取其字段，
// 不构造也不修改调用方传入的信封。
type Envelope struct {
	// Kind 消息类型，决定投递模式
	Kind MessageKind `json:"kind"`

	// MessageID 全局唯一消息标识
	MessageID string `json:"message_id"`

	// Target 目的地
	Target Target `json:"target"`

	// Payload 消息体（已编码的业务数据，本层不解析）
	Payload []byte `json:"payload,omitempty"`

	// SentAt 发送时间戳
	SentAt time.Time `json:"sent_at"`
}

// NewEnvelope 创建信封并分配唯一消息 ID
func NewEnvelope(kind MessageKind, target Target, payload []byte) *Envelope {
	return &Envelope{
		Kind:      kind,
		MessageID: uuid.NewString(),
		Target:    target,
		Payload:   payload,
		SentAt:    time.Now(),
	}
}
