package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SLIP-0010 ed25519 hierarchical derivation. Only hardened child keys exist
// on the ed25519 curve, so every path component must carry the ' marker.

const (
	// ed25519KeyModifier is the SLIP-0010 HMAC key for master key generation.
	ed25519KeyModifier = "ed25519 seed"

	// hardenedOffset marks a path component as hardened.
	hardenedOffset uint32 = 0x80000000
)

var (
	// ErrInvalidPath indicates a malformed derivation path string.
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrNotHardened indicates a path component without the hardened marker.
	ErrNotHardened = errors.New("ed25519 derivation requires hardened path components")
)

// slipKey is a node in the SLIP-0010 tree: a 32-byte private key and its
// 32-byte chain code.
type slipKey struct {
	key       []byte
	chainCode []byte
}

// newMasterKey computes the SLIP-0010 ed25519 master node from a BIP39 seed.
func newMasterKey(seed []byte) slipKey {
	mac := hmac.New(sha512.New, []byte(ed25519KeyModifier))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return slipKey{key: sum[:32], chainCode: sum[32:]}
}

// child derives the hardened child node at index. The index must already
// include the hardened offset.
func (k slipKey) child(index uint32) slipKey {
	// data = 0x00 || key || ser32(index)
	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, k.key...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, k.chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	return slipKey{key: sum[:32], chainCode: sum[32:]}
}

// deriveSlip10 walks the given all-hardened path over the seed and returns
// the derived 32-byte key.
func deriveSlip10(seed []byte, path string) ([]byte, error) {
	indices, err := parseHardenedPath(path)
	if err != nil {
		return nil, err
	}

	node := newMasterKey(seed)
	for _, index := range indices {
		node = node.child(index)
	}

	return node.key, nil
}

// parseHardenedPath parses a path like "m/44'/501'/0'/0'" into hardened
// child indices. Every component must be hardened.
func parseHardenedPath(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m/", ErrInvalidPath, path)
	}

	indices := make([]uint32, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		if !strings.HasSuffix(seg, "'") {
			return nil, fmt.Errorf("%w: component %q", ErrNotHardened, seg)
		}

		n, err := strconv.ParseUint(strings.TrimSuffix(seg, "'"), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: component %q: %v", ErrInvalidPath, seg, err)
		}
		if uint32(n) >= hardenedOffset {
			return nil, fmt.Errorf("%w: component %q exceeds index range", ErrInvalidPath, seg)
		}

		indices = append(indices, uint32(n)+hardenedOffset)
	}

	return indices, nil
}
