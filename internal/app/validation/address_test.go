package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"evm lowercase", "0x" + strings.Repeat("a", 40), true},
		{"evm mixed case", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", true},
		{"evm too short", "0x" + strings.Repeat("a", 39), false},
		{"evm too long", "0x" + strings.Repeat("a", 41), false},
		{"evm uppercase prefix", "0X" + strings.Repeat("a", 40), false},
		{"evm non hex", "0x" + strings.Repeat("g", 40), false},
		{"evm without prefix is not base58", strings.Repeat("0", 40), false},
		{"solana", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", true},
		{"solana min length", strings.Repeat("1", 32), true},
		{"solana max length", strings.Repeat("z", 44), true},
		{"solana too short", strings.Repeat("1", 31), false},
		{"solana too long", strings.Repeat("z", 45), false},
		{"solana with zero", "0" + strings.Repeat("1", 33), false},
		{"solana with capital O", "O" + strings.Repeat("1", 33), false},
		{"solana with capital I", "I" + strings.Repeat("1", 33), false},
		{"solana with lowercase l", "l" + strings.Repeat("1", 33), false},
		{"empty", "", false},
		{"whitespace padded", " 0x" + strings.Repeat("a", 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAddress(tt.address))
		})
	}
}

func TestIsValidAddressNearMisses(t *testing.T) {
	valid := "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
	for i := 2; i < len(valid); i++ {
		mutated := valid[:i] + "z" + valid[i+1:]
		assert.False(t, IsValidAddress(mutated), "mutated at %d: %s", i, mutated)
	}
	assert.False(t, IsValidAddress(valid[:len(valid)-1]))
	assert.False(t, IsValidAddress(valid+"0"))
}

func FuzzIsValidAddress(f *testing.F) {
	f.Add("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
	f.Add("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		if !IsValidAddress(s) {
			return
		}
		if strings.HasPrefix(s, "0x") {
			assert.Len(t, s, 42)
			return
		}
		assert.GreaterOrEqual(t, len(s), 32)
		assert.LessOrEqual(t, len(s), 44)
		assert.True(t, solanaAddressPattern.MatchString(s))
	})
}
