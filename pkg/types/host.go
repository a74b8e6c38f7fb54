package types

import (
	"fmt"
	"net"
	"strconv"
)

// Host 发现服务返回的主机描述符
type Host struct {
	// Hostname 主机名或 IP 地址
	Hostname string `json:"hostname"`

	// Port 监听端口
	Port int `json:"port"`
}

// Address 返回 "host:port" 形式的拨号地址
//
// IPv6 地址会自动加方括号。
func (h Host) Address() string {
	return net.JoinHostPort(h.Hostname, strconv.Itoa(h.Port))
}

// String 返回人类可读形式
func (h Host) String() string {
	return h.Address()
}

// ParseHost 从 "host:port" 形式的地址解析 Host
func ParseHost(address string) (Host, error) {
	hostname, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return Host{}, fmt.Errorf("invalid host address %q: %w", address, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Host{}, fmt.Errorf("invalid port in address %q: %w", address, err)
	}
	return Host{Hostname: hostname, Port: port}, nil
}
