package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	evmAddress    = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
	solanaAddress = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
)

func TestLoadAddresses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	content := "# treasury\n" +
		evmAddress + "\n" +
		"\n" +
		"  " + solanaAddress + "  \n" +
		"0x123\n" +
		evmAddress + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	addresses, err := NewAddressFileLoader(path, nil).LoadAddresses()

	require.NoError(t, err)
	assert.Equal(t, []string{evmAddress, solanaAddress}, addresses)
}

func TestLoadAddresses_MissingFile(t *testing.T) {
	_, err := NewAddressFileLoader(filepath.Join(t.TempDir(), "nope.txt"), nil).LoadAddresses()
	assert.ErrorContains(t, err, "failed to open address file")
}
