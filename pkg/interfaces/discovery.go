package interfaces

import (
	"context"

	"github.com/relaybus/go-relaybus/pkg/types"
)

// Matchmaker 发现服务客户端接口
//
// 负责将逻辑 Target 解析为具体主机列表。
type Matchmaker interface {
	// GetHosts 查询匹配 (target, listenerLabel) 的主机列表
	//
	// listenerLabel 标识接收端的监听类型（如 "direct"、"fanout"），
	// 同一 Target 在不同监听类型下可以解析到不同的主机集合。
	//
	// 查询失败返回错误；空列表是合法的非错误结果。
	GetHosts(ctx context.Context, target types.Target, listenerLabel string) ([]types.Host, error)
}
