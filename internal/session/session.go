// Package session owns the authoritative in-memory wallet state and applies
// user intents against it, keeping the snapshot store synchronized.
//
// A Session is not safe for concurrent use: callers must serialize intents.
// Every intent is atomic - it either completes and persists, or fails and
// leaves both memory and store unchanged.
package session

import (
	"strconv"

	"github.com/keyfold/keyfold/internal/chain"
	"github.com/keyfold/keyfold/internal/store"
	"github.com/keyfold/keyfold/internal/wallet"
	kferr "github.com/keyfold/keyfold/pkg/errors"
)

// Session holds the state for one wallet session: the selected chain, the
// active mnemonic, the ordered wallet collection, and the per-wallet
// visibility flags. There is no package-level state; independent sessions
// can coexist in one process.
type Session struct {
	store store.Store

	chainID  chain.PathType
	mnemonic []string
	wallets  []wallet.KeyPair
	revealed []bool
}

// New creates an empty session backed by the given store.
func New(st store.Store) *Session {
	return &Session{store: st}
}

// Hydrate loads the persisted snapshot into the session. Run once at
// session start. An absent or partial snapshot leaves the session in its
// initial empty state. Visibility flags always reset to hidden.
func (s *Session) Hydrate() error {
	snap, ok, err := s.store.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s.chainID = snap.Chain
	s.mnemonic = snap.Mnemonic
	s.wallets = snap.Wallets
	s.revealed = make([]bool, len(snap.Wallets))
	return nil
}

// SelectChain sets the session's chain. Only valid before a chain has been
// selected; re-selection is rejected rather than silently restarted.
// No persistence side effect by itself.
func (s *Session) SelectChain(pt chain.PathType) error {
	if !pt.IsValid() {
		return kferr.WithDetails(kferr.ErrUnsupportedPathType,
			map[string]string{"path_type": pt.String()})
	}
	if s.chainID != "" {
		return kferr.WithSuggestion(kferr.ErrChainAlreadySelected,
			"run 'keyfold clear' to start over with a different chain")
	}

	s.chainID = pt
	return nil
}

// GenerateInitial establishes the active mnemonic and derives the first
// wallet. rawInput, when non-empty, must be a valid 12-word mnemonic;
// when empty a fresh mnemonic is generated. Persists the full snapshot.
func (s *Session) GenerateInitial(rawInput string) (*wallet.KeyPair, error) {
	if s.chainID == "" {
		return nil, kferr.WithSuggestion(kferr.ErrNoChainSelected,
			"select a chain first: keyfold chain use <sol|eth>")
	}
	if len(s.wallets) > 0 {
		return nil, kferr.WithSuggestion(kferr.ErrInvalidInput,
			"session already has wallets; use 'keyfold wallet add' for more")
	}

	var mnemonic string
	if rawInput != "" {
		if err := wallet.ValidateMnemonic(rawInput); err != nil {
			return nil, err
		}
		mnemonic = wallet.NormalizeMnemonicInput(rawInput)
	} else {
		generated, err := wallet.GenerateMnemonic()
		if err != nil {
			return nil, err
		}
		mnemonic = generated
	}

	// Account index 0: the current (empty) collection length.
	kp, err := wallet.Derive(s.chainID, mnemonic, 0)
	if err != nil {
		return nil, err
	}

	words := wallet.MnemonicWords(mnemonic)
	snap := &store.Snapshot{
		Wallets:  []wallet.KeyPair{*kp},
		Mnemonic: words,
		Chain:    s.chainID,
	}
	if err := s.store.SaveSnapshot(snap); err != nil {
		return nil, err
	}

	s.mnemonic = words
	s.wallets = []wallet.KeyPair{*kp}
	s.revealed = []bool{false}
	return kp, nil
}

// AddWallet derives the next wallet from the active mnemonic, using the
// current collection length as the account index, and persists only the
// wallet record.
//
// Note the indexing hazard: after a deletion, the next account index can
// collide with one already used, reproducing an existing key pair.
func (s *Session) AddWallet() (*wallet.KeyPair, error) {
	if len(s.mnemonic) == 0 {
		return nil, kferr.WithSuggestion(kferr.ErrNoMnemonicAvailable,
			"run 'keyfold generate' first")
	}

	index := uint32(len(s.wallets)) //nolint:gosec // G115: collection length is bounded far below uint32
	kp, err := wallet.Derive(s.chainID, wallet.JoinWords(s.mnemonic), index)
	if err != nil {
		return nil, err
	}

	updated := append(append([]wallet.KeyPair(nil), s.wallets...), *kp)
	if err := s.store.SaveWallets(updated); err != nil {
		return nil, err
	}

	s.wallets = updated
	s.revealed = append(s.revealed, false)
	return kp, nil
}

// DeleteWallet removes the wallet at index, preserving the relative order
// of the remainder, and persists the wallet record. Stored derivation
// paths of surviving wallets are not renumbered. Confirmation is the
// caller's responsibility.
func (s *Session) DeleteWallet(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	updated := make([]wallet.KeyPair, 0, len(s.wallets)-1)
	updated = append(updated, s.wallets[:index]...)
	updated = append(updated, s.wallets[index+1:]...)

	if err := s.store.SaveWallets(updated); err != nil {
		return err
	}

	s.wallets = updated
	s.revealed = append(s.revealed[:index], s.revealed[index+1:]...)
	return nil
}

// ClearAll empties the wallet collection, mnemonic, and visibility flags,
// and removes the persisted wallet and mnemonic records. The persisted
// chain record is deliberately left in place, and the in-memory chain
// selection survives so a new mnemonic can be generated immediately.
// Confirmation is the caller's responsibility.
func (s *Session) ClearAll() error {
	if err := s.store.DeleteWalletData(); err != nil {
		return err
	}

	s.mnemonic = nil
	s.wallets = nil
	s.revealed = nil
	return nil
}

// ToggleVisibility flips the private-key-revealed flag at index.
// Visibility is never persisted.
func (s *Session) ToggleVisibility(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.revealed[index] = !s.revealed[index]
	return nil
}

// Chain returns the selected path type, or "" when none is selected.
func (s *Session) Chain() chain.PathType {
	return s.chainID
}

// MnemonicWords returns a copy of the active mnemonic word list.
func (s *Session) MnemonicWords() []string {
	return append([]string(nil), s.mnemonic...)
}

// Wallets returns a copy of the ordered wallet collection.
func (s *Session) Wallets() []wallet.KeyPair {
	return append([]wallet.KeyPair(nil), s.wallets...)
}

// Revealed returns a copy of the per-wallet visibility flags, index-aligned
// with Wallets.
func (s *Session) Revealed() []bool {
	return append([]bool(nil), s.revealed...)
}

// CopyText returns the string to place on the clipboard for the wallet at
// index: the public key, or the private key when private is true. The
// clipboard itself belongs to the presentation layer.
func (s *Session) CopyText(index int, private bool) (string, error) {
	if err := s.checkIndex(index); err != nil {
		return "", err
	}
	if private {
		return s.wallets[index].PrivateKey, nil
	}
	return s.wallets[index].PublicKey, nil
}

// checkIndex validates a wallet collection index.
func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.wallets) {
		return kferr.WithDetails(kferr.ErrWalletIndexOutOfRange, map[string]string{
			"index": strconv.Itoa(index),
			"count": strconv.Itoa(len(s.wallets)),
		})
	}
	return nil
}
