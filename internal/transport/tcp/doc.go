// Package tcp 提供基于 TCP 的传输层实现
//
// 每个 Connection 维护一组到主机的 TCP 链接（扇出场景下多于一个），
// Send 将信封以 varint 长度前缀 + JSON 的帧格式写到所有链接上。
//
// 对同一地址的重复链接是幂等的，以支持连接池的原地刷新。
package tcp
