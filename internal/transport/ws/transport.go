package ws

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/multierr"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/lib/log"
	"github.com/relaybus/go-relaybus/pkg/types"
)

var logger = log.Logger("transport/ws")

// ErrConnClosed 连接已关闭
var ErrConnClosed = errors.New("ws: connection closed")

// Config WebSocket 传输层配置
type Config struct {
	// DialTimeout 单次握手超时
	DialTimeout time.Duration

	// Path 服务端 WebSocket 端点路径
	Path string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DialTimeout: 10 * time.Second,
		Path:        "/relaybus",
	}
}

// Transport WebSocket 传输层工厂
type Transport struct {
	config Config
	dialer *websocket.Dialer
}

// 确保 Transport 实现了 interfaces.Transport 接口
var _ interfaces.Transport = (*Transport)(nil)

// NewTransport 创建 WebSocket 传输层
func NewTransport(config Config) *Transport {
	return &Transport{
		config: config,
		dialer: &websocket.Dialer{
			HandshakeTimeout: config.DialTimeout,
		},
	}
}

// NewConnection 创建未链接任何主机的出站连接
func (t *Transport) NewConnection() (interfaces.Connection, error) {
	return &Conn{
		transport: t,
		links:     make(map[string]*websocket.Conn),
	}, nil
}

// Conn WebSocket 出站连接
type Conn struct {
	transport *Transport

	mu     sync.Mutex
	links  map[string]*websocket.Conn
	hosts  []types.Host
	closed bool
}

// 确保 Conn 实现了 interfaces.Connection 接口
var _ interfaces.Connection = (*Conn)(nil)

// ConnectToHost 链接到发现服务返回的主机
func (c *Conn) ConnectToHost(host types.Host) error {
	if err := c.ConnectToAddress(host.Address()); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.hosts {
		if existing == host {
			return nil
		}
	}
	c.hosts = append(c.hosts, host)
	return nil
}

// ConnectToAddress 链接到静态地址
//
// 地址可以是 "host:port" 或完整的 ws:// / wss:// URL；
// 对已链接的地址是幂等的空操作。
func (c *Conn) ConnectToAddress(address string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnClosed
	}
	if _, ok := c.links[address]; ok {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	link, _, err := c.transport.dialer.Dial(c.endpointURL(address), nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		_ = link.Close()
		return ErrConnClosed
	}
	if _, ok := c.links[address]; ok {
		_ = link.Close()
		return nil
	}
	c.links[address] = link

	logger.Debug("已链接主机", "address", address, "links", len(c.links))
	return nil
}

// endpointURL 把地址规范化为 WebSocket URL
func (c *Conn) endpointURL(address string) string {
	if strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://") {
		return address
	}
	return "ws://" + address + c.transport.config.Path
}

// Send 将信封以 JSON 文本消息写到所有链接上
func (c *Conn) Send(env *types.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}

	var errs error
	for address, link := range c.links {
		if err := link.WriteJSON(env); err != nil {
			errs = multierr.Append(errs, err)
			logger.Warn("写入链接失败",
				"address", address,
				"messageID", log.TruncateID(env.MessageID, 8),
				"error", err)
		}
	}
	return errs
}

// Hosts 返回已链接的主机列表
func (c *Conn) Hosts() []types.Host {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Host, len(c.hosts))
	copy(out, c.hosts)
	return out
}

// Close 关闭所有链接
//
// 重复关闭不报错。
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs error
	for _, link := range c.links {
		errs = multierr.Append(errs, link.Close())
	}
	c.links = nil
	return errs
}
