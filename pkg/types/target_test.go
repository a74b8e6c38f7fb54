package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget_Key(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		key    string
	}{
		{
			name:   "topic only",
			target: Target{Topic: "compute"},
			key:    "compute||false",
		},
		{
			name:   "topic and server",
			target: Target{Topic: "compute", Server: "node-1"},
			key:    "compute|node-1|false",
		},
		{
			name:   "fanout",
			target: Target{Topic: "compute", Fanout: true},
			key:    "compute||true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.target.Key())
		})
	}
}

// 主题中出现分隔符时，不同 Target 的键不能冲突
func TestTarget_Key_NoAmbiguity(t *testing.T) {
	a := Target{Topic: "compute.node-1"}
	b := Target{Topic: "compute", Server: "node-1"}

	assert.NotEqual(t, a.Key(), b.Key())
}

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "compute", Target{Topic: "compute"}.String())
	assert.Equal(t, "compute.node-1", Target{Topic: "compute", Server: "node-1"}.String())
	assert.Equal(t, "compute.fanout", Target{Topic: "compute", Fanout: true}.String())
}
