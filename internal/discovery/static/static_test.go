package static

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaybus/go-relaybus/pkg/types"
)

func TestMatchmaker_RegisterAndGetHosts(t *testing.T) {
	m := New()
	target := types.Target{Topic: "events"}
	host := types.Host{Hostname: "10.0.0.1", Port: 5555}

	m.Register(target, "direct", host)

	hosts, err := m.GetHosts(context.Background(), target, "direct")
	require.NoError(t, err)
	assert.Equal(t, []types.Host{host}, hosts)

	// 不同 listenerLabel 是独立的命名空间
	hosts, err = m.GetHosts(context.Background(), target, "fanout")
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestMatchmaker_RegisterIdempotent(t *testing.T) {
	m := New()
	target := types.Target{Topic: "events"}
	host := types.Host{Hostname: "10.0.0.1", Port: 5555}

	m.Register(target, "direct", host)
	m.Register(target, "direct", host)

	hosts, err := m.GetHosts(context.Background(), target, "direct")
	require.NoError(t, err)
	assert.Len(t, hosts, 1)
}

func TestMatchmaker_Unregister(t *testing.T) {
	m := New()
	target := types.Target{Topic: "events"}
	hostA := types.Host{Hostname: "10.0.0.1", Port: 5555}
	hostB := types.Host{Hostname: "10.0.0.2", Port: 5555}

	m.Register(target, "direct", hostA)
	m.Register(target, "direct", hostB)
	m.Unregister(target, "direct", hostA)

	hosts, err := m.GetHosts(context.Background(), target, "direct")
	require.NoError(t, err)
	assert.Equal(t, []types.Host{hostB}, hosts)

	// 注销不存在的主机是空操作
	m.Unregister(target, "direct", hostA)
}

func TestMatchmaker_EmptyResult(t *testing.T) {
	m := New()

	hosts, err := m.GetHosts(context.Background(), types.Target{Topic: "unknown"}, "direct")
	require.NoError(t, err)
	assert.NotNil(t, hosts)
	assert.Empty(t, hosts)
}

func TestMatchmaker_Concurrent(t *testing.T) {
	m := New()
	target := types.Target{Topic: "events"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Register(target, "direct", types.Host{Hostname: "10.0.0.1", Port: 5000 + i})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = m.GetHosts(context.Background(), target, "direct")
		}()
	}
	wg.Wait()

	hosts, err := m.GetHosts(context.Background(), target, "direct")
	require.NoError(t, err)
	assert.Len(t, hosts, 16)
}
