package store

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/keyfold/keyfold/internal/wallet"
	kferr "github.com/keyfold/keyfold/pkg/errors"
)

// BadgerStore implements Store on a Badger key-value database. Values are
// stored as plaintext JSON; encrypting them is an explicit non-goal.
type BadgerStore struct {
	db *badger.DB
}

// Open opens (or creates) the snapshot database in dir.
func Open(dir string, logger badger.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, storeFailure("opening database at "+dir, err)
	}

	return &BadgerStore{db: db}, nil
}

// OpenInMemory opens an ephemeral store backed by memory only. Used by
// tests; behaves identically to a disk-backed store within a process.
func OpenInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, kferr.Wrap(kferr.ErrStoreFailure, "opening in-memory store: %v", err)
	}

	return &BadgerStore{db: db}, nil
}

// Load reads the snapshot. Partial or corrupt snapshots are reported as
// absent, never as an error and never partially hydrated.
func (s *BadgerStore) Load() (*Snapshot, bool, error) {
	var raw [3][]byte
	keys := []string{KeyWallets, KeyMnemonics, KeyChain}

	err := s.db.View(func(txn *badger.Txn) error {
		for i, key := range keys {
			item, err := txn.Get([]byte(key))
			if err != nil {
				return err
			}
			raw[i], err = item.ValueCopy(nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeFailure("reading snapshot", err)
	}

	var snap Snapshot
	if json.Unmarshal(raw[0], &snap.Wallets) != nil ||
		json.Unmarshal(raw[1], &snap.Mnemonic) != nil ||
		json.Unmarshal(raw[2], &snap.Chain) != nil {
		// Unparseable records are treated the same as missing ones.
		return nil, false, nil
	}

	return &snap, true, nil
}

// SaveSnapshot writes all three records in a single transaction.
func (s *BadgerStore) SaveSnapshot(snap *Snapshot) error {
	wallets, err := json.Marshal(snap.Wallets)
	if err != nil {
		return storeFailure("encoding wallets", err)
	}
	mnemonic, err := json.Marshal(snap.Mnemonic)
	if err != nil {
		return storeFailure("encoding mnemonic", err)
	}
	chainID, err := json.Marshal(snap.Chain)
	if err != nil {
		return storeFailure("encoding chain", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(KeyWallets), wallets); err != nil {
			return err
		}
		if err := txn.Set([]byte(KeyMnemonics), mnemonic); err != nil {
			return err
		}
		return txn.Set([]byte(KeyChain), chainID)
	})
	if err != nil {
		return storeFailure("writing snapshot", err)
	}
	return nil
}

// SaveWallets rewrites only the wallet record.
func (s *BadgerStore) SaveWallets(wallets []wallet.KeyPair) error {
	data, err := json.Marshal(wallets)
	if err != nil {
		return storeFailure("encoding wallets", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(KeyWallets), data)
	})
	if err != nil {
		return storeFailure("writing wallets", err)
	}
	return nil
}

// DeleteWalletData removes the wallet and mnemonic records, leaving the
// chain record in place.
func (s *BadgerStore) DeleteWalletData() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(KeyWallets)); err != nil {
			return err
		}
		return txn.Delete([]byte(KeyMnemonics))
	})
	if err != nil {
		return storeFailure("deleting wallet data", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// put writes a raw record. Exposed within the package for tests that need
// to construct partial or corrupt snapshots.
func (s *BadgerStore) put(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// storeFailure wraps a medium failure as STORE_FAILURE.
func storeFailure(action string, cause error) error {
	return &kferr.Error{
		Code:     kferr.ErrStoreFailure.Code,
		Message:  kferr.ErrStoreFailure.Message + ": " + action,
		Cause:    cause,
		ExitCode: kferr.ErrStoreFailure.ExitCode,
	}
}

// compile-time interface check
var _ Store = (*BadgerStore)(nil)
