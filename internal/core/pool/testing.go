package pool

import (
	"context"
	"sync"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/types"
)

// mockMatchmaker 是 Matchmaker 的 mock 实现
type mockMatchmaker struct {
	mu    sync.Mutex
	hosts map[string][]types.Host // targetKey -> hosts
	err   error
	calls int
}

func newMockMatchmaker() *mockMatchmaker {
	return &mockMatchmaker{
		hosts: make(map[string][]types.Host),
	}
}

func (m *mockMatchmaker) setHosts(target types.Target, hosts []types.Host) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hosts[target.Key()] = hosts
}

func (m *mockMatchmaker) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockMatchmaker) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockMatchmaker) GetHosts(_ context.Context, target types.Target, _ string) ([]types.Host, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	hosts := m.hosts[target.Key()]
	out := make([]types.Host, len(hosts))
	copy(out, hosts)
	return out, nil
}

// mockTransport 是 Transport 的 mock 实现
type mockTransport struct {
	mu      sync.Mutex
	conns   []*mockConn
	newErr  error
	connErr error // 注入到新建连接的连接错误
}

func newMockTransport() *mockTransport {
	return &mockTransport{}
}

func (t *mockTransport) NewConnection() (interfaces.Connection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.newErr != nil {
		return nil, t.newErr
	}
	conn := &mockConn{connectErr: t.connErr}
	t.conns = append(t.conns, conn)
	return conn, nil
}

func (t *mockTransport) created() []*mockConn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*mockConn, len(t.conns))
	copy(out, t.conns)
	return out
}

// mockConn 是 Connection 的 mock 实现
type mockConn struct {
	mu         sync.Mutex
	hosts      []types.Host
	addresses  []string
	sent       []*types.Envelope
	closes     int
	connectErr error
}

func (c *mockConn) ConnectToHost(host types.Host) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connectErr != nil {
		return c.connectErr
	}
	c.hosts = append(c.hosts, host)
	return nil
}

func (c *mockConn) ConnectToAddress(address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connectErr != nil {
		return c.connectErr
	}
	c.addresses = append(c.addresses, address)
	return nil
}

func (c *mockConn) Send(env *types.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, env)
	return nil
}

func (c *mockConn) Hosts() []types.Host {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Host, len(c.hosts))
	copy(out, c.hosts)
	return out
}

func (c *mockConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func (c *mockConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}
