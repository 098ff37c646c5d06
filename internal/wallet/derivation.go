package wallet

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"

	"github.com/keyfold/keyfold/internal/chain"
	kferr "github.com/keyfold/keyfold/pkg/errors"
)

// KeyPair is a derived key pair. Encodings are chain-dependent: the Solana
// family uses Base58 for both keys, the Ethereum family uses a hex private
// key and an EIP-55 checksummed address as the public identifier. A KeyPair
// is immutable once derived.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Path       string `json:"path"`
}

// deriver encodes a SLIP-0010 derived 32-byte key as a chain-family key
// pair. One implementation exists per supported chain family; adding a
// chain means adding a variant, not editing a shared branch.
type deriver interface {
	keyPair(derived []byte, path string) (*KeyPair, error)
}

//nolint:gochecknoglobals // Closed registry of supported chain families
var derivers = map[chain.PathType]deriver{
	chain.SOL: solanaDeriver{},
	chain.ETH: ethereumDeriver{},
}

// Derive deterministically computes the key pair for (pathType, mnemonic,
// accountIndex). It performs no I/O and never logs its inputs or outputs.
//
// An unknown path type fails with UNSUPPORTED_PATH_TYPE; any failure in the
// seed/path/keypair computation chain fails with DERIVATION_FAILED.
func Derive(pathType chain.PathType, mnemonic string, accountIndex uint32) (*KeyPair, error) {
	d, ok := derivers[pathType]
	if !ok {
		return nil, kferr.WithDetails(kferr.ErrUnsupportedPathType,
			map[string]string{"path_type": pathType.String()})
	}

	seed, err := MnemonicToSeed(mnemonic)
	if err != nil {
		return nil, derivationFailed(err)
	}

	path := pathType.DerivationPath(accountIndex)
	derived, err := deriveSlip10(seed, path)
	if err != nil {
		return nil, derivationFailed(err)
	}

	kp, err := d.keyPair(derived, path)
	if err != nil {
		return nil, derivationFailed(err)
	}

	return kp, nil
}

// derivationFailed wraps an underlying computation failure as
// DERIVATION_FAILED, keeping the cause chain intact.
func derivationFailed(cause error) error {
	return &kferr.Error{
		Code:     kferr.ErrDerivationFailed.Code,
		Message:  kferr.ErrDerivationFailed.Message,
		Cause:    cause,
		ExitCode: kferr.ErrDerivationFailed.ExitCode,
	}
}

// solanaDeriver treats the derived key as an ed25519 seed and encodes the
// resulting signing key pair in Base58.
type solanaDeriver struct{}

func (solanaDeriver) keyPair(derived []byte, path string) (*KeyPair, error) {
	if len(derived) != ed25519.SeedSize {
		return nil, fmt.Errorf("derived key must be %d bytes, got %d",
			ed25519.SeedSize, len(derived))
	}

	priv := solana.PrivateKey(ed25519.NewKeyFromSeed(derived))

	return &KeyPair{
		PublicKey:  priv.PublicKey().String(),
		PrivateKey: priv.String(),
		Path:       path,
	}, nil
}

// ethereumDeriver treats the derived key directly as a secp256k1 private
// key and uses the checksummed account address as the public identifier.
type ethereumDeriver struct{}

func (ethereumDeriver) keyPair(derived []byte, path string) (*KeyPair, error) {
	key, err := ethcrypto.ToECDSA(derived)
	if err != nil {
		return nil, fmt.Errorf("interpreting derived key as secp256k1: %w", err)
	}

	return &KeyPair{
		PublicKey:  ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: hex.EncodeToString(derived),
		Path:       path,
	}, nil
}
