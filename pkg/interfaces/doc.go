// Package interfaces 定义 RelayBus 核心接口契约
//
// 分为两类：
// - 消费侧接口：Matchmaker（发现服务）、Transport/Connection（传输层）
// - 暴露侧接口：Sender（投递模式实现必须满足的契约）
//
// 接口定义与实现分离，便于在测试中注入 mock 实现。
package interfaces
