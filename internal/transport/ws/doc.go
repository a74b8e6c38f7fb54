// Package ws 提供基于 WebSocket 的传输层实现
//
// 适用于出站流量必须走 HTTP 基础设施（反向代理、防火墙白名单）
// 的部署环境。信封以 JSON 文本消息发送，语义与 TCP 传输一致：
// 一个 Connection 维护多条 WebSocket 链接，Send 扇出到全部链接。
package ws
