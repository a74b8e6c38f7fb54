package types

// MessageKind 消息类型
//
// 每种类型对应一种投递模式，由对应的 Sender 实现负责发送。
type MessageKind int

const (
	// KindCall 请求-响应调用（定向投递）
	KindCall MessageKind = iota

	// KindCast 单向调用（定向投递，不等待响应）
	KindCast

	// KindFanout 扇出消息（投递到主题的所有消费者）
	KindFanout

	// KindNotify 通知消息（推送投递）
	KindNotify
)

// String 返回类型的字符串表示，同时作为投递模式名称
func (k MessageKind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindCast:
		return "cast"
	case KindFanout:
		return "fanout"
	case KindNotify:
		return "notify"
	default:
		return "unknown"
	}
}
