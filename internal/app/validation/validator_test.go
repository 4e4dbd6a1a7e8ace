package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evmAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

func transactionsSchema() map[string]any {
	maxLimit := 250
	return Object(map[string]any{
		"addresses": AddressList("Wallet addresses"),
		"chain":     String("Chain filter"),
		"startDate": Date("Start date"),
		"offset":    Integer("Offset", 0, nil, 0),
		"limit":     Integer("Page size", 1, &maxLimit, 50),
	}, "addresses")
}

func addressList(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = "0x" + strings.Repeat("1", 39) + string(rune('a'+i%6))
	}
	return out
}

func TestValidate_AppliesDefaults(t *testing.T) {
	v := NewValidator()

	args, err := v.Validate("tx", transactionsSchema(), map[string]any{"addresses": []any{evmAddress}})
	require.NoError(t, err)

	assert.EqualValues(t, 0, args["offset"])
	assert.EqualValues(t, 50, args["limit"])
	assert.Equal(t, []any{evmAddress}, args["addresses"])
}

func TestValidate_DropsUnknownKeys(t *testing.T) {
	v := NewValidator()
	raw := map[string]any{"addresses": []any{evmAddress}, "bogus": true}

	args, err := v.Validate("tx", transactionsSchema(), raw)
	require.NoError(t, err)

	assert.NotContains(t, args, "bogus")
	assert.Contains(t, raw, "bogus", "input must not be modified")
	assert.NotContains(t, raw, "limit", "input must not be modified")
}

func TestValidate_AddressListBounds(t *testing.T) {
	v := NewValidator()
	schema := Object(map[string]any{"addresses": AddressList("")}, "addresses")

	tests := []struct {
		name    string
		count   int
		wantErr string
	}{
		{"empty", 0, "addresses: " + MinAddressesMessage},
		{"one", 1, ""},
		{"ten", 10, ""},
		{"eleven", 11, "addresses: " + MaxAddressesMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := v.Validate("bounds", schema, map[string]any{"addresses": addressList(tt.count)})
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, addressList(tt.count), args["addresses"], "order preserved")
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, vErr.Error(), tt.wantErr)
		})
	}
}

func TestValidate_InvalidAddressPath(t *testing.T) {
	v := NewValidator()
	schema := Object(map[string]any{"addresses": AddressList("")}, "addresses")

	_, err := v.Validate("", schema, map[string]any{"addresses": []any{evmAddress, "not-an-address"}})

	require.Error(t, err)
	assert.Equal(t, "Validation failed: addresses.1: "+InvalidAddressMessage, err.Error())
}

func TestValidate_MissingRequired(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate("tx", transactionsSchema(), map[string]any{})

	require.Error(t, err)
	assert.Equal(t, "Validation failed: addresses: Required", err.Error())
}

func TestValidate_DateAndLimit(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate("tx", transactionsSchema(), map[string]any{
		"addresses": []any{evmAddress},
		"startDate": "2024/01/01",
		"limit":     251,
	})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Issues, 2)
	assert.Contains(t, err.Error(), "startDate: "+DateMessage)
	assert.Contains(t, err.Error(), "limit: ")
	assert.True(t, strings.HasPrefix(err.Error(), "Validation failed: "))
}

func TestValidate_RejectsWrongType(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate("tx", transactionsSchema(), map[string]any{
		"addresses": evmAddress,
	})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "addresses", vErr.Issues[0].Path)
}

func TestValidate_EnumDefault(t *testing.T) {
	v := NewValidator()
	schema := Object(map[string]any{
		"addresses": AddressList(""),
		"currency":  Enum("Currency", "USD", "USD", "EUR"),
	}, "addresses")

	args, err := v.Validate("nav", schema, map[string]any{"addresses": []any{evmAddress}})
	require.NoError(t, err)
	assert.Equal(t, "USD", args["currency"])

	_, err = v.Validate("nav", schema, map[string]any{"addresses": []any{evmAddress}, "currency": "XYZ"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currency: ")
}

func TestDecode(t *testing.T) {
	v := NewValidator()
	var out struct {
		Addresses []string `json:"addresses"`
		Offset    int      `json:"offset"`
		Limit     int      `json:"limit"`
	}

	err := v.Decode("tx", transactionsSchema(), map[string]any{"addresses": []any{evmAddress}, "offset": 100}, &out)

	require.NoError(t, err)
	assert.Equal(t, []string{evmAddress}, out.Addresses)
	assert.Equal(t, 100, out.Offset)
	assert.Equal(t, 50, out.Limit)
}

func TestValidate_MemoizesCompiledSchema(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate("memo", transactionsSchema(), map[string]any{"addresses": []any{evmAddress}})
	require.NoError(t, err)

	_, found := v.compiled.Get("memo")
	assert.True(t, found)
	assert.Equal(t, 1, v.compiled.ItemCount())
}
