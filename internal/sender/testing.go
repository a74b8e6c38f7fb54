package sender

import (
	"context"
	"sync"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/types"
)

// mockMatchmaker 是 Matchmaker 的 mock 实现
type mockMatchmaker struct {
	mu    sync.Mutex
	hosts []types.Host
	err   error
}

func (m *mockMatchmaker) GetHosts(_ context.Context, _ types.Target, _ string) ([]types.Host, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.hosts, nil
}

// mockTransport 是 Transport 的 mock 实现
type mockTransport struct {
	mu    sync.Mutex
	conns []*mockConn
}

func (t *mockTransport) NewConnection() (interfaces.Connection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	conn := &mockConn{}
	t.conns = append(t.conns, conn)
	return conn, nil
}

// mockConn 是 Connection 的 mock 实现
type mockConn struct {
	mu     sync.Mutex
	hosts  []types.Host
	sent   []*types.Envelope
	closes int
}

func (c *mockConn) ConnectToHost(host types.Host) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hosts = append(c.hosts, host)
	return nil
}

func (c *mockConn) ConnectToAddress(_ string) error {
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
	return c.hosts
}

func (c *mockConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func (c *mockConn) sentEnvelopes() []*types.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*types.Envelope, len(c.sent))
	copy(out, c.sent)
	return out
}
