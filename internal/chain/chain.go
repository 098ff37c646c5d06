// Package chain defines the closed set of supported derivation path types
// and the BIP44 path layout used for key derivation.
package chain

import (
	"fmt"
	"strings"
)

// PathType identifies a chain family by its BIP44 coin type. The value is
// the coin-type path component as a string, exactly as it appears in the
// derivation path.
type PathType string

// Supported path types.
const (
	// SOL is the Solana family (ed25519 keys, Base58 encoding).
	SOL PathType = "501"

	// ETH is the Ethereum family (secp256k1 keys, hex encoding).
	ETH PathType = "60"
)

// String returns the coin-type path component.
func (p PathType) String() string {
	return string(p)
}

// Name returns the human-readable chain name.
func (p PathType) Name() string {
	switch p {
	case SOL:
		return "solana"
	case ETH:
		return "ethereum"
	default:
		return string(p)
	}
}

// IsValid returns true if the path type is a supported chain family.
func (p PathType) IsValid() bool {
	switch p {
	case SOL, ETH:
		return true
	default:
		return false
	}
}

// DerivationPath returns the full BIP44 path for an account index. All four
// components are hardened.
func (p PathType) DerivationPath(accountIndex uint32) string {
	return fmt.Sprintf("m/44'/%s'/0'/%d'", string(p), accountIndex)
}

// Parse resolves a user-supplied chain identifier (name or coin type) to a
// PathType. Returns false for anything outside the supported set.
func Parse(s string) (PathType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sol", "solana", "501":
		return SOL, true
	case "eth", "ethereum", "60":
		return ETH, true
	default:
		return PathType(s), false
	}
}

// Supported returns the supported path types in display order.
func Supported() []PathType {
	return []PathType{SOL, ETH}
}
