// Package relaybus 实现按目标寻址的发布/订阅消息发送层
//
// 核心由两部分组成：
//   - 连接池：把逻辑 Target 通过可插拔的发现服务（Matchmaker）解析为
//     活跃的出站连接，按 Target 缓存并定期原地刷新以感知拓扑变化
//   - Sender 契约：每种投递模式（fanout、direct、push）一个实现，
//     通过连接池获取连接并完成发送
//
// Bus 是面向调用方的入口，按消息类型把信封路由到对应的 Sender。
//
// 基本用法：
//
//	matchmaker := static.New()
//	bus, err := relaybus.New(relaybus.WithMatchmaker(matchmaker))
//	if err != nil {
//	    ...
//	}
//	defer bus.Close()
//
//	env := types.NewEnvelope(types.KindFanout, types.Target{Topic: "events", Fanout: true}, payload)
//	err = bus.Send(ctx, env)
package relaybus
