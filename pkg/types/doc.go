// Package types 定义 RelayBus 公共值类型
//
// 包含消息寻址与传输所需的基础类型：
// - Target: 逻辑目标地址（连接缓存键）
// - Host: 发现服务返回的主机描述符
// - MessageKind: 消息类型（决定投递模式）
// - Envelope: 消息信封（消息体 + 目的地）
//
// 本包只包含值类型，不依赖任何内部实现包。
package types
