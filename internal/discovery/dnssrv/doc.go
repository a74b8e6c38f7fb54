// Package dnssrv 提供基于 DNS SRV 记录的 Matchmaker
//
// 将 (Target, listenerLabel) 映射为形如
//
//	_<topic>-<label>._tcp.<domain>
//
// 的 SRV 查询名（定向 Target 时在域名前追加服务器名段），
// 查询结果按优先级排序后作为主机列表返回。
//
// 解析结果带 TTL 缓存，避免每次连接刷新都打到 DNS 服务器。
package dnssrv
