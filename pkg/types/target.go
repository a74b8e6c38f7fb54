package types

import (
	"fmt"
	"strings"
)

// Target 消息的逻辑目标地址
//
// Target 与物理主机无关，由发现服务解析为具体主机列表。
// 构造后不可变；两个逻辑相等的 Target 必须产生相同的 Key()。
type Target struct {
	// Topic 主题名称
	Topic string

	// Server 可选的服务器名称，用于定向投递
	Server string

	// Fanout 是否为扇出目标（投递到主题的所有消费者）
	Fanout bool
}

// Key 返回确定性的缓存键
//
// 使用 '|' 分隔各字段，避免 Topic 中出现 '.' 时与
// "topic.server" 形式的键产生歧义。
func (t Target) Key() string {
	return fmt.Sprintf("%s|%s|%t", t.Topic, t.Server, t.Fanout)
}

// String 返回人类可读形式，用于日志
func (t Target) String() string {
	var b strings.Builder
	b.WriteString(t.Topic)
	if t.Server != "" {
		b.WriteByte('.')
		b.WriteString(t.Server)
	}
	if t.Fanout {
		b.WriteString(".fanout")
	}
	return b.String()
}
