// Package store persists the session snapshot to a durable key-value
// medium. The snapshot is three independently-keyed JSON records; a read
// only succeeds when all three records are present and parseable.
package store

import (
	"github.com/keyfold/keyfold/internal/chain"
	"github.com/keyfold/keyfold/internal/wallet"
)

// Record keys in the durable medium.
const (
	// KeyWallets holds the JSON array of derived key pairs.
	KeyWallets = "wallets"

	// KeyMnemonics holds the JSON array of mnemonic words.
	KeyMnemonics = "mnemonics"

	// KeyChain holds the JSON-encoded selected path type.
	KeyChain = "chain"
)

// Snapshot is the three-field persisted session state.
type Snapshot struct {
	Wallets  []wallet.KeyPair
	Mnemonic []string
	Chain    chain.PathType
}

// Store defines the persistence contract for session snapshots.
//
// Load is all-or-nothing: a snapshot with any record missing or unparseable
// is indistinguishable from no data. Writers follow the per-intent write
// contract: SaveWallets rewrites only the wallet record, SaveSnapshot
// rewrites all three, and DeleteWalletData removes the wallet and mnemonic
// records while deliberately leaving the chain record in place.
type Store interface {
	// Load reads the persisted snapshot. ok is false when the snapshot is
	// absent or partial; err reports only medium failures.
	Load() (snap *Snapshot, ok bool, err error)

	// SaveSnapshot atomically writes all three records.
	SaveSnapshot(snap *Snapshot) error

	// SaveWallets rewrites the wallet record, leaving mnemonic and chain
	// records untouched.
	SaveWallets(wallets []wallet.KeyPair) error

	// DeleteWalletData removes the wallet and mnemonic records. The chain
	// record is not touched.
	DeleteWalletData() error

	// Close releases the underlying medium.
	Close() error
}
