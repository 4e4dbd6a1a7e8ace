package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArguments(t *testing.T) {
	args, err := ParseArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = ParseArguments([]byte(" null "))
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = ParseArguments([]byte(`{"addresses":["0xabc"],"limit":5}`))
	require.NoError(t, err)
	assert.Equal(t, []any{"0xabc"}, args["addresses"])
	assert.EqualValues(t, 5, args["limit"])

	_, err = ParseArguments([]byte(`["0xabc"]`))
	assert.EqualError(t, err, "arguments must be a JSON object")

	_, err = ParseArguments([]byte(`{"addresses":`))
	assert.Error(t, err)
}

func TestErrorResult(t *testing.T) {
	res := ErrorResult(&UnknownToolError{Name: "nope"})
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	assert.Equal(t, "Error: Unknown tool 'nope'", res.Text())
}
