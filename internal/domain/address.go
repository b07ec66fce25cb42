package domain

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var txHashRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// NormalizeAddress returns the lowercase hex form of an EVM address.
// The input must pass IsValidAddress.
func NormalizeAddress(address string) string {
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// IsValidAddress checks if a string is a valid EVM address
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// IsZeroAddress reports whether the address is the mint/burn sentinel
func IsZeroAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	return common.HexToAddress(address) == (common.Address{})
}

// IsValidTxHash checks if a string is a 32-byte hex transaction hash
func IsValidTxHash(hash string) bool {
	return txHashRegex.MatchString(hash)
}
