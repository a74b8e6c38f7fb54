package tcp

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaybus/go-relaybus/pkg/types"
)

// testListener 收集收到的信封
type testListener struct {
	listener net.Listener
	received chan *types.Envelope
}

func newTestListener(t *testing.T) *testListener {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	l := &testListener{
		listener: listener,
		received: make(chan *types.Envelope, 16),
	}
	go l.acceptLoop()
	return l
}

func (l *testListener) acceptLoop() {
	for {
		conn, err := l.listener.Accept()
		if err != nil {
			return
		}
		go func() {
			defer conn.Close()
			for {
				env, err := ReadEnvelope(conn)
				if err != nil {
					return
				}
				l.received <- env
			}
		}()
	}
}

func (l *testListener) host(t *testing.T) types.Host {
	t.Helper()
	host, err := types.ParseHost(l.listener.Addr().String())
	require.NoError(t, err)
	return host
}

func (l *testListener) waitEnvelope(t *testing.T) *types.Envelope {
	t.Helper()
	select {
	case env := <-l.received:
		return env
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for envelope")
		return nil
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	env := types.NewEnvelope(types.KindFanout, types.Target{Topic: "events", Fanout: true}, []byte("hello"))

	var buf bytes.Buffer
	require.NoError(t, WriteEnvelope(&buf, env))

	decoded, err := ReadEnvelope(&buf)
	require.NoError(t, err)
	assert.Equal(t, env.MessageID, decoded.MessageID)
	assert.Equal(t, env.Kind, decoded.Kind)
	assert.Equal(t, env.Target, decoded.Target)
	assert.Equal(t, env.Payload, decoded.Payload)
}

func TestConn_SendToMultipleHosts(t *testing.T) {
	listenerA := newTestListener(t)
	listenerB := newTestListener(t)

	transport := NewTransport(DefaultConfig())
	conn, err := transport.NewConnection()
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.ConnectToHost(listenerA.host(t)))
	require.NoError(t, conn.ConnectToHost(listenerB.host(t)))
	assert.Len(t, conn.Hosts(), 2)

	env := types.NewEnvelope(types.KindFanout, types.Target{Topic: "events", Fanout: true}, []byte("x"))
	require.NoError(t, conn.Send(env))

	// 同一帧写到所有链接
	assert.Equal(t, env.MessageID, listenerA.waitEnvelope(t).MessageID)
	assert.Equal(t, env.MessageID, listenerB.waitEnvelope(t).MessageID)
}

func TestConn_ConnectIdempotent(t *testing.T) {
	listener := newTestListener(t)

	transport := NewTransport(DefaultConfig())
	conn, err := transport.NewConnection()
	require.NoError(t, err)
	defer conn.Close()

	host := listener.host(t)
	require.NoError(t, conn.ConnectToHost(host))
	require.NoError(t, conn.ConnectToHost(host))

	// 重复链接同一主机不产生新链接
	assert.Len(t, conn.Hosts(), 1)

	env := types.NewEnvelope(types.KindCast, types.Target{Topic: "events"}, nil)
	require.NoError(t, conn.Send(env))
	listener.waitEnvelope(t)

	select {
	case env := <-listener.received:
		t.Fatalf("received duplicate envelope %s", env.MessageID)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConn_DialError(t *testing.T) {
	transport := NewTransport(Config{DialTimeout: 200 * time.Millisecond})
	conn, err := transport.NewConnection()
	require.NoError(t, err)
	defer conn.Close()

	// 显式关闭的端口应立刻拒绝链接
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	assert.Error(t, conn.ConnectToAddress(address))
	assert.Empty(t, conn.Hosts())
}

func TestConn_Close(t *testing.T) {
	listener := newTestListener(t)

	transport := NewTransport(DefaultConfig())
	conn, err := transport.NewConnection()
	require.NoError(t, err)
	require.NoError(t, conn.ConnectToHost(listener.host(t)))

	require.NoError(t, conn.Close())
	// 重复关闭不报错
	require.NoError(t, conn.Close())

	// 关闭后拒绝发送和链接
	env := types.NewEnvelope(types.KindCast, types.Target{Topic: "events"}, nil)
	assert.ErrorIs(t, conn.Send(env), ErrConnClosed)
	assert.ErrorIs(t, conn.ConnectToAddress("127.0.0.1:1"), ErrConnClosed)
}
