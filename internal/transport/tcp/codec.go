package tcp

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/relaybus/go-relaybus/pkg/types"
)

// maxFrameSize 单帧大小上限（16 MiB）
const maxFrameSize = 16 << 20

// WriteEnvelope 将信封以 varint 长度前缀 + JSON 的帧格式写入流
func WriteEnvelope(w io.Writer, env *types.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("tcp: failed to marshal envelope: %w", err)
	}
	if len(data) > maxFrameSize {
		return ErrFrameTooLarge
	}

	var prefix [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(prefix[:], uint64(len(data)))
	if _, err := w.Write(prefix[:n]); err != nil {
		return fmt.Errorf("tcp: failed to write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("tcp: failed to write data: %w", err)
	}
	return nil
}

// ReadEnvelope 从流中读取一帧并解码为信封
func ReadEnvelope(r io.Reader) (*types.Envelope, error) {
	length, err := readUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("tcp: failed to read length: %w", err)
	}
	if length > maxFrameSize {
		return nil, ErrFrameTooLarge
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("tcp: failed to read data: %w", err)
	}

	env := &types.Envelope{}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("tcp: failed to unmarshal envelope: %w", err)
	}
	return env, nil
}

// readUvarint 逐字节读取 varint，不依赖 bufio 以免读过帧边界
func readUvarint(r io.Reader) (uint64, error) {
	var value uint64
	var shift uint
	b := make([]byte, 1)
	for i := 0; i < binary.MaxVarintLen64; i++ {
		if _, err := io.ReadFull(r, b); err != nil {
			return 0, err
		}
		if b[0] < 0x80 {
			if i == binary.MaxVarintLen64-1 && b[0] > 1 {
				return 0, fmt.Errorf("varint overflow")
			}
			return value | uint64(b[0])<<shift, nil
		}
		value |= uint64(b[0]&0x7f) << shift
		shift += 7
	}
	return 0, fmt.Errorf("varint too long")
}
