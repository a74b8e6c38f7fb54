package pool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaybus/go-relaybus/pkg/types"
)

func newTestPool(t *testing.T, opts ...Option) (*Pool, *mockTransport, *mockMatchmaker, *clock.Mock) {
	t.Helper()

	transport := newMockTransport()
	matchmaker := newMockMatchmaker()
	clk := clock.NewMock()

	opts = append([]Option{WithClock(clk)}, opts...)
	p, err := New(transport, matchmaker, opts...)
	require.NoError(t, err)

	return p, transport, matchmaker, clk
}

func TestNew(t *testing.T) {
	transport := newMockTransport()
	matchmaker := newMockMatchmaker()

	p, err := New(transport, matchmaker)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, 2*time.Minute, p.config.TargetExpiry)
	assert.Equal(t, DefaultListenerLabel, p.config.ListenerLabel)
}

func TestNew_NilTransport(t *testing.T) {
	p, err := New(nil, newMockMatchmaker())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNilTransport)
}

func TestNew_NilMatchmaker(t *testing.T) {
	p, err := New(newMockTransport(), nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNilMatchmaker)
}

func TestPool_Get_Miss(t *testing.T) {
	p, transport, matchmaker, _ := newTestPool(t)
	target := types.Target{Topic: "topic-A"}
	matchmaker.setHosts(target, []types.Host{
		{Hostname: "10.0.0.1", Port: 5555},
		{Hostname: "10.0.0.2", Port: 5555},
	})

	conn, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	require.NotNil(t, conn)

	// 恰好一次发现查询，连接链接到全部返回的主机
	assert.Equal(t, 1, matchmaker.callCount())
	assert.Len(t, conn.Hosts(), 2)
	assert.Equal(t, 1, p.Len())

	snapshot := p.Stats()
	assert.Equal(t, int64(1), snapshot.Misses)
	assert.Equal(t, int64(0), snapshot.Hits)

	require.Len(t, transport.created(), 1)
}

func TestPool_Get_Hit(t *testing.T) {
	p, _, matchmaker, clk := newTestPool(t, WithTargetExpiry(10*time.Second))
	target := types.Target{Topic: "topic-A"}
	matchmaker.setHosts(target, []types.Host{{Hostname: "10.0.0.1", Port: 5555}})

	first, err := p.Get(context.Background(), target)
	require.NoError(t, err)

	// 阈值内的重复查找：零次额外发现查询，返回同一连接对象
	clk.Add(5 * time.Second)
	second, err := p.Get(context.Background(), target)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, matchmaker.callCount())
	assert.Equal(t, int64(1), p.Stats().Hits)
}

func TestPool_Get_RefreshAfterExpiry(t *testing.T) {
	p, _, matchmaker, clk := newTestPool(t, WithTargetExpiry(10*time.Second))
	target := types.Target{Topic: "topic-A"}
	matchmaker.setHosts(target, []types.Host{{Hostname: "10.0.0.1", Port: 5555}})

	// t=0: 未命中，1 次发现查询
	first, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, 1, matchmaker.callCount())

	// t=5: 命中，无额外查询
	clk.Add(5 * time.Second)
	second, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, matchmaker.callCount())

	// t=12: 过期，触发刷新；新主机追加到同一连接对象上
	matchmaker.setHosts(target, []types.Host{{Hostname: "10.0.0.3", Port: 5555}})
	clk.Add(7 * time.Second)
	third, err := p.Get(context.Background(), target)
	require.NoError(t, err)

	assert.Same(t, first, third)
	assert.Equal(t, 2, matchmaker.callCount())
	assert.Len(t, third.Hosts(), 2, "主机应累加而不是替换")
	assert.Equal(t, int64(1), p.Stats().Refreshes)

	// 刷新后的时间戳已更新：再过 5 秒仍在阈值内
	clk.Add(5 * time.Second)
	_, err = p.Get(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, 2, matchmaker.callCount())
}

func TestPool_Get_NeverExpire(t *testing.T) {
	p, _, matchmaker, clk := newTestPool(t, WithNoTargetExpiry())
	target := types.Target{Topic: "topic-A"}

	first, err := p.Get(context.Background(), target)
	require.NoError(t, err)

	// 负阈值：无论过去多久都不刷新
	clk.Add(1000 * time.Hour)
	second, err := p.Get(context.Background(), target)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, matchmaker.callCount())
}

func TestPool_Get_ZeroExpiry(t *testing.T) {
	p, _, matchmaker, _ := newTestPool(t, WithTargetExpiry(0))
	target := types.Target{Topic: "topic-A"}

	first, err := p.Get(context.Background(), target)
	require.NoError(t, err)

	// 零阈值：每次查找都触发一次新的发现查询
	second, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	third, err := p.Get(context.Background(), target)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, third)
	assert.Equal(t, 3, matchmaker.callCount())
}

func TestPool_Get_DiscoveryError(t *testing.T) {
	p, transport, matchmaker, _ := newTestPool(t)
	target := types.Target{Topic: "topic-A"}
	cause := errors.New("matchmaker unavailable")
	matchmaker.setErr(cause)

	conn, err := p.Get(context.Background(), target)
	assert.Nil(t, conn)
	require.Error(t, err)

	var discErr *DiscoveryError
	require.ErrorAs(t, err, &discErr)
	assert.Equal(t, target, discErr.Target)
	assert.ErrorIs(t, err, cause)

	// 失败不留下半填充的条目，临时连接被关闭
	assert.Equal(t, 0, p.Len())
	created := transport.created()
	require.Len(t, created, 1)
	assert.Equal(t, 1, created[0].closeCount())
	assert.Equal(t, int64(1), p.Stats().DiscoveryErrors)
}

func TestPool_Get_EmptyHosts(t *testing.T) {
	p, _, matchmaker, _ := newTestPool(t)
	target := types.Target{Topic: "topic-A"}

	// 未配置主机：空列表是合法结果，连接以未链接状态入缓存
	conn, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	require.NotNil(t, conn)

	assert.Empty(t, conn.Hosts())
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 1, matchmaker.callCount())
}

func TestPool_Get_ConnectError(t *testing.T) {
	p, transport, matchmaker, _ := newTestPool(t)
	target := types.Target{Topic: "topic-A"}
	matchmaker.setHosts(target, []types.Host{{Hostname: "10.0.0.1", Port: 5555}})

	cause := errors.New("connection refused")
	transport.connErr = cause

	conn, err := p.Get(context.Background(), target)
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, p.Len())
}

func TestPool_GetToBroker(t *testing.T) {
	p, transport, matchmaker, _ := newTestPool(t, WithBrokerAddress("broker.local:5563"))
	target := types.Target{Topic: "topic-A"}

	brokerConn, err := p.GetToBroker(target)
	require.NoError(t, err)
	require.NotNil(t, brokerConn)

	// broker 路径不经过发现服务
	assert.Equal(t, 0, matchmaker.callCount())
	created := transport.created()
	require.Len(t, created, 1)
	assert.Equal(t, []string{"broker.local:5563"}, created[0].addresses)

	// broker 路径绕过缓存读：随后的 Get 创建独立的连接
	poolConn, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	assert.NotSame(t, brokerConn, poolConn)
	assert.Len(t, transport.created(), 2)

	// 每次 GetToBroker 都是全新连接
	again, err := p.GetToBroker(target)
	require.NoError(t, err)
	assert.NotSame(t, brokerConn, again)
}

func TestPool_GetToBroker_NoAddress(t *testing.T) {
	p, _, _, _ := newTestPool(t)

	conn, err := p.GetToBroker(types.Target{Topic: "topic-A"})
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, ErrNoBrokerAddress)
}

func TestPool_Cleanup(t *testing.T) {
	p, transport, matchmaker, _ := newTestPool(t, WithBrokerAddress("broker.local:5563"))
	targetA := types.Target{Topic: "topic-A"}
	targetB := types.Target{Topic: "topic-B"}
	matchmaker.setHosts(targetA, []types.Host{{Hostname: "10.0.0.1", Port: 5555}})

	_, err := p.Get(context.Background(), targetA)
	require.NoError(t, err)
	_, err = p.Get(context.Background(), targetB)
	require.NoError(t, err)
	_, err = p.GetToBroker(targetA)
	require.NoError(t, err)

	require.NoError(t, p.Cleanup())

	// 所有创建过的连接都被关闭，包括 broker 直连
	for _, conn := range transport.created() {
		assert.Equal(t, 1, conn.closeCount())
	}
	assert.Equal(t, 0, p.Len())

	// 重复清理是安全的空操作
	require.NoError(t, p.Cleanup())
	for _, conn := range transport.created() {
		assert.Equal(t, 1, conn.closeCount())
	}
}

func TestPool_Cleanup_ThenReuse(t *testing.T) {
	p, _, matchmaker, _ := newTestPool(t)
	target := types.Target{Topic: "topic-A"}

	first, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	require.NoError(t, p.Cleanup())

	// 清理后池仍可用：下一次查找重新走未命中路径
	second, err := p.Get(context.Background(), target)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, matchmaker.callCount())
}

func TestPool_ConcurrentGet_SameTarget(t *testing.T) {
	p, transport, matchmaker, _ := newTestPool(t)
	target := types.Target{Topic: "topic-A"}
	matchmaker.setHosts(target, []types.Host{{Hostname: "10.0.0.1", Port: 5555}})

	const workers = 32
	conns := make([]interface{}, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			conn, err := p.Get(context.Background(), target)
			assert.NoError(t, err)
			conns[i] = conn
		}(i)
	}
	close(start)
	wg.Wait()

	// singleflight 合并并发创建：只建立一个连接，所有调用方共享
	assert.Len(t, transport.created(), 1)
	assert.Equal(t, 1, matchmaker.callCount())
	for i := 1; i < workers; i++ {
		assert.Same(t, conns[0], conns[i])
	}
}

func TestPool_ConcurrentGet_DistinctTargets(t *testing.T) {
	p, _, _, _ := newTestPool(t)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := types.Target{Topic: "topic", Server: string(rune('a' + i))}
			_, err := p.Get(context.Background(), target)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, p.Len())
}

func TestPool_ConcurrentCleanup(t *testing.T) {
	p, _, _, _ := newTestPool(t)

	// Cleanup 与插入并发执行不应崩溃
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			target := types.Target{Topic: "topic", Server: string(rune('a' + i))}
			_, _ = p.Get(context.Background(), target)
		}(i)
		go func() {
			defer wg.Done()
			_ = p.Cleanup()
		}()
	}
	wg.Wait()
}
