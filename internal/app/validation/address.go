package validation

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressFormat is the JSON schema "format" value checked by IsValidAddress.
const AddressFormat = "wallet-address"

const (
	// MaxAddresses bounds every address list argument.
	MaxAddresses = 10

	InvalidAddressMessage = "Invalid address format. Must be EVM (0x...) or Solana (base58) address."
	MinAddressesMessage   = "At least one address is required"
	MaxAddressesMessage   = "Maximum 10 addresses allowed"
)

var solanaAddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsValidAddress reports whether s is an EVM address (0x + 40 hex digits)
// or a base58 Solana address of 32..44 characters.
func IsValidAddress(s string) bool {
	if strings.HasPrefix(s, "0x") {
		return len(s) == 42 && common.IsHexAddress(s)
	}
	return solanaAddressPattern.MatchString(s)
}

type addressFormatChecker struct{}

// IsFormat lets non-strings through; the "type" keyword reports those.
func (addressFormatChecker) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	return IsValidAddress(s)
}
