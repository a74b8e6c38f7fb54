// Package sender 实现各投递模式的 Sender
//
// 每种消息类型对应一个 Sender 实现：
// - Fanout: KindFanout，扇出投递
// - Direct: KindCall / KindCast，定向投递
// - Push:   KindNotify，推送投递
//
// 公共逻辑（发送日志、单次发送、资源清理）由内嵌的 Base 提供；
// Sender 本身无状态，所有可变状态都在其构造时传入的连接池中。
package sender
