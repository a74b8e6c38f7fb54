// Package main 提供 relaybus 命令行发送工具
//
// 把一条消息发送到指定目标，主机列表通过 --hosts 静态登记，
// 适合联调和冒烟测试。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/relaybus/go-relaybus"
	"github.com/relaybus/go-relaybus/internal/discovery/static"
	"github.com/relaybus/go-relaybus/internal/transport/ws"
	"github.com/relaybus/go-relaybus/pkg/lib/log"
	"github.com/relaybus/go-relaybus/pkg/types"
)

var (
	// ─────────────────────────────────────────────────────────────────────
	// 目标参数
	// ─────────────────────────────────────────────────────────────────────
	topic  = flag.String("topic", "", "目标主题（必填）")
	server = flag.String("server", "", "目标服务器名称（定向投递用）")
	fanout = flag.Bool("fanout", false, "扇出投递")
	kind   = flag.String("kind", "cast", "消息类型 (call/cast/fanout/notify)")

	// ─────────────────────────────────────────────────────────────────────
	// 连接参数
	// ─────────────────────────────────────────────────────────────────────
	hosts     = flag.String("hosts", "", "逗号分隔的 host:port 列表")
	broker    = flag.String("broker", "", "broker 地址（设置后走 broker 直连路径）")
	transport = flag.String("transport", "tcp", "传输层 (tcp/ws)")
	timeout   = flag.Duration("timeout", 10*time.Second, "发送超时")

	// ─────────────────────────────────────────────────────────────────────
	// 消息体与日志
	// ─────────────────────────────────────────────────────────────────────
	payload  = flag.String("payload", "", "消息体（默认从 stdin 读取）")
	logLevel = flag.String("log-level", "info", "日志级别 (debug/info/warn/error)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "relaybus-send: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *topic == "" {
		return fmt.Errorf("--topic is required")
	}
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	messageKind, err := parseKind(*kind)
	if err != nil {
		return err
	}
	target := types.Target{Topic: *topic, Server: *server, Fanout: *fanout}

	matchmaker := static.New()
	for _, address := range splitHosts(*hosts) {
		host, err := types.ParseHost(address)
		if err != nil {
			return err
		}
		matchmaker.Register(target, "direct", host)
	}

	opts := []relaybus.Option{
		relaybus.WithMatchmaker(matchmaker),
	}
	if *transport == "ws" {
		opts = append(opts, relaybus.WithTransport(ws.NewTransport(ws.DefaultConfig())))
	}
	if *broker != "" {
		opts = append(opts, relaybus.WithBrokerAddress(*broker))
	}

	bus, err := relaybus.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	body := []byte(*payload)
	if *payload == "" {
		body, err = readStdin()
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	env := types.NewEnvelope(messageKind, target, body)
	if err := bus.Send(ctx, env); err != nil {
		return err
	}

	fmt.Printf("已发送 %s 消息 %s 到 %s\n", messageKind, env.MessageID, target)
	return nil
}

// parseKind 解析消息类型参数
func parseKind(name string) (types.MessageKind, error) {
	switch name {
	case "call":
		return types.KindCall, nil
	case "cast":
		return types.KindCast, nil
	case "fanout":
		return types.KindFanout, nil
	case "notify":
		return types.KindNotify, nil
	default:
		return 0, fmt.Errorf("unknown message kind %q", name)
	}
}

// splitHosts 拆分逗号分隔的地址列表，忽略空项
func splitHosts(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readStdin 读取 stdin 全部内容作为消息体
//
// 交互式终端下不阻塞等待，直接返回空消息体。
func readStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, nil
	}
	return io.ReadAll(os.Stdin)
}
