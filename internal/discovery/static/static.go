// Package static 提供进程内静态注册表形式的 Matchmaker
//
// 主机通过 Register 显式登记，GetHosts 按 (Target, listenerLabel)
// 返回登记的主机列表。适用于固定拓扑部署和测试场景。
package static

import (
	"context"
	"fmt"
	"sync"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/types"
)

// Matchmaker 静态注册表 Matchmaker
type Matchmaker struct {
	mu    sync.RWMutex
	hosts map[string][]types.Host
}

// 确保 Matchmaker 实现了 interfaces.Matchmaker 接口
var _ interfaces.Matchmaker = (*Matchmaker)(nil)

// New 创建静态 Matchmaker
func New() *Matchmaker {
	return &Matchmaker{
		hosts: make(map[string][]types.Host),
	}
}

// registryKey 计算 (Target, listenerLabel) 的登记键
func registryKey(target types.Target, listenerLabel string) string {
	return fmt.Sprintf("%s|%s", target.Key(), listenerLabel)
}

// Register 登记一台主机
//
// 对同一键重复登记同一主机是幂等的。
func (m *Matchmaker) Register(target types.Target, listenerLabel string, host types.Host) {
	key := registryKey(target, listenerLabel)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.hosts[key] {
		if existing == host {
			return
		}
	}
	m.hosts[key] = append(m.hosts[key], host)
}

// Unregister 注销一台主机
func (m *Matchmaker) Unregister(target types.Target, listenerLabel string, host types.Host) {
	key := registryKey(target, listenerLabel)

	m.mu.Lock()
	defer m.mu.Unlock()

	hosts := m.hosts[key]
	for i, existing := range hosts {
		if existing == host {
			m.hosts[key] = append(hosts[:i], hosts[i+1:]...)
			return
		}
	}
}

// GetHosts 返回登记的主机列表
//
// 未登记的键返回空列表，不算错误。
func (m *Matchmaker) GetHosts(_ context.Context, target types.Target, listenerLabel string) ([]types.Host, error) {
	key := registryKey(target, listenerLabel)

	m.mu.RLock()
	defer m.mu.RUnlock()

	hosts := m.hosts[key]
	out := make([]types.Host, len(hosts))
	copy(out, hosts)
	return out, nil
}
