package process_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/keysweep/internal/process"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"ascii", []byte("ok1\n"), "ok1\n"},
		{"multibyte passes through", []byte("größe = 3µs\n"), "größe = 3µs\n"},
		{"invalid byte replaced", []byte{'a', 0xff, 'b'}, "a�b"},
		{"truncated sequence at end replaced", []byte{'o', 'k', 0xc3}, "ok\uFFFD"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, process.DecodeText(tc.in))
		})
	}
}
