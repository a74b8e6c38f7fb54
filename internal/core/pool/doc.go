// Package pool 实现按 Target 缓存的出站连接池
//
// 连接池将逻辑 Target 解析为活跃的传输连接：
// - 缓存未命中时，通过 Matchmaker 发现主机并建立新连接
// - 缓存命中但条目过期时，原地刷新：重新发现并把新主机追加到
//   现有连接上（不重建连接，避免打断在途发送和其他持有者）
// - 另提供绕过发现服务、直连固定 broker 地址的路径
//
// 同一 Target 的并发首次创建通过 singleflight 串行化，
// 缓存映射本身由互斥锁保护。
package pool
