package tcp

import (
	"net"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/relaybus/go-relaybus/pkg/interfaces"
	"github.com/relaybus/go-relaybus/pkg/lib/log"
	"github.com/relaybus/go-relaybus/pkg/types"
)

var logger = log.Logger("transport/tcp")

// Config TCP 传输层配置
type Config struct {
	// DialTimeout 单次拨号超时
	DialTimeout time.Duration

	// WriteTimeout 单次写超时（零值表示不限制）
	WriteTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DialTimeout:  10 * time.Second,
		WriteTimeout: 0,
	}
}

// Transport TCP 传输层工厂
type Transport struct {
	config Config
}

// 确保 Transport 实现了 interfaces.Transport 接口
var _ interfaces.Transport = (*Transport)(nil)

// NewTransport 创建 TCP 传输层
func NewTransport(config Config) *Transport {
	return &Transport{config: config}
}

// NewConnection 创建未链接任何主机的出站连接
func (t *Transport) NewConnection() (interfaces.Connection, error) {
	return &Conn{
		config: t.config,
		links:  make(map[string]net.Conn),
	}, nil
}

// Conn TCP 出站连接
//
// 维护地址到 TCP 链接的映射；Send 将同一帧写到所有链接上。
type Conn struct {
	config Config

	mu     sync.Mutex
	links  map[string]net.Conn
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

	// 拨号在锁外进行，避免阻塞其他链接上的发送
	link, err := net.DialTimeout("tcp", address, c.config.DialTimeout)
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
		// 并发链接同一地址：保留先到者
		_ = link.Close()
		return nil
	}
	c.links[address] = link

	logger.Debug("已链接主机", "address", address, "links", len(c.links))
	return nil
}

// Send 将信封写到所有链接上（fire-and-forget）
func (c *Conn) Send(env *types.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}

	var errs error
	for address, link := range c.links {
		if c.config.WriteTimeout > 0 {
			_ = link.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
		}
		if err := WriteEnvelope(link, env); err != nil {
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
