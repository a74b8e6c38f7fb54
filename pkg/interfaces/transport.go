package interfaces

import (
	"github.com/relaybus/go-relaybus/pkg/types"
)

// Transport 传输层工厂
//
// 每个连接池实例持有一个共享的 Transport，用它构造所有出站连接。
// Transport 必须支持并发创建连接。
type Transport interface {
	// NewConnection 创建一个未连接任何主机的出站连接
	NewConnection() (Connection, error)
}

// Connection 出站连接
//
// 一个 Connection 可以同时链接多个主机（扇出场景），
// 链接只增不减：刷新时追加新主机，不重置已有链接。
// 对同一主机的重复链接必须是幂等的。
type Connection interface {
	// ConnectToHost 链接到发现服务返回的主机
	ConnectToHost(host types.Host) error

	// ConnectToAddress 链接到静态地址（如固定 broker 地址）
	ConnectToAddress(address string) error

	// Send 发送一条消息（fire-and-forget，不等待确认）
	//
	// 消息的线上编码由具体传输层决定。
	Send(env *types.Envelope) error

	// Hosts 返回当前已链接的主机列表
	Hosts() []types.Host

	// Close 关闭连接及其所有链接
	//
	// 重复关闭不报错。
	Close() error
}
