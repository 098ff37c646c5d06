package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyfold/keyfold/internal/chain"
	"github.com/keyfold/keyfold/internal/store"
	kferr "github.com/keyfold/keyfold/pkg/errors"
)

//nolint:gochecknoglobals // BIP39 standard test vector constant
var testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestSession(t *testing.T) (*Session, *store.BadgerStore) {
	t.Helper()
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st), st
}

func seededSession(t *testing.T, pt chain.PathType, wallets int) (*Session, *store.BadgerStore) {
	t.Helper()
	s, st := newTestSession(t)
	require.NoError(t, s.SelectChain(pt))
	_, err := s.GenerateInitial(testMnemonic)
	require.NoError(t, err)
	for i := 1; i < wallets; i++ {
		_, err := s.AddWallet()
		require.NoError(t, err)
	}
	return s, st
}

func TestSelectChain(t *testing.T) {
	s, _ := newTestSession(t)

	require.NoError(t, s.SelectChain(chain.SOL))
	assert.Equal(t, chain.SOL, s.Chain())
}

func TestSelectChainRejectsUnsupported(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.SelectChain(chain.PathType("0"))
	assert.True(t, kferr.Is(err, kferr.ErrUnsupportedPathType))
	assert.Equal(t, chain.PathType(""), s.Chain())
}

func TestSelectChainRejectsReselection(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SelectChain(chain.SOL))

	err := s.SelectChain(chain.ETH)
	assert.True(t, kferr.Is(err, kferr.ErrChainAlreadySelected))
	assert.Equal(t, chain.SOL, s.Chain())
}

func TestGenerateInitialRequiresChain(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.GenerateInitial("")
	assert.True(t, kferr.Is(err, kferr.ErrNoChainSelected))
	assert.Empty(t, s.Wallets())
}

func TestGenerateInitialWithSuppliedMnemonic(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SelectChain(chain.ETH))

	kp, err := s.GenerateInitial(testMnemonic)
	require.NoError(t, err)

	assert.Equal(t, "m/44'/60'/0'/0'", kp.Path)
	assert.Len(t, s.Wallets(), 1)
	assert.Equal(t, []bool{false}, s.Revealed())
	assert.Equal(t, strings.Fields(testMnemonic), s.MnemonicWords())
}

func TestGenerateInitialGeneratesFreshMnemonic(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SelectChain(chain.SOL))

	kp, err := s.GenerateInitial("")
	require.NoError(t, err)

	assert.NotNil(t, kp)
	assert.Len(t, s.MnemonicWords(), 12)
}

func TestGenerateInitialValidationGate(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SelectChain(chain.SOL))

	_, err := s.GenerateInitial("invalid phrase")
	assert.True(t, kferr.Is(err, kferr.ErrInvalidMnemonic))

	// No state changes on failure
	assert.Empty(t, s.Wallets())
	assert.Empty(t, s.MnemonicWords())
}

func TestGenerateInitialRejectsSecondCall(t *testing.T) {
	s, _ := seededSession(t, chain.SOL, 1)

	_, err := s.GenerateInitial(testMnemonic)
	assert.True(t, kferr.Is(err, kferr.ErrInvalidInput))
	assert.Len(t, s.Wallets(), 1)
}

func TestAddWalletAppendInvariant(t *testing.T) {
	s, _ := seededSession(t, chain.SOL, 3)

	kp, err := s.AddWallet()
	require.NoError(t, err)

	wallets := s.Wallets()
	revealed := s.Revealed()
	assert.Len(t, wallets, 4)
	assert.Len(t, revealed, 4)
	assert.False(t, revealed[3])
	assert.Equal(t, *kp, wallets[3])
	assert.True(t, strings.HasSuffix(kp.Path, "/3'"))
}

func TestAddWalletRequiresMnemonic(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SelectChain(chain.ETH))

	_, err := s.AddWallet()
	assert.True(t, kferr.Is(err, kferr.ErrNoMnemonicAvailable))
	assert.Empty(t, s.Wallets())
}

func TestDeleteWalletPreservesOrder(t *testing.T) {
	s, _ := seededSession(t, chain.ETH, 3)
	wallets := s.Wallets()
	require.NoError(t, s.ToggleVisibility(0))
	require.NoError(t, s.ToggleVisibility(2))

	require.NoError(t, s.DeleteWallet(1))

	remaining := s.Wallets()
	require.Len(t, remaining, 2)
	assert.Equal(t, wallets[0], remaining[0])
	assert.Equal(t, wallets[2], remaining[1])

	// Visibility flags stay aligned with their wallets
	assert.Equal(t, []bool{true, true}, s.Revealed())
}

func TestDeleteWalletKeepsStoredPaths(t *testing.T) {
	s, _ := seededSession(t, chain.ETH, 3)

	require.NoError(t, s.DeleteWallet(0))

	// Survivors keep the paths recorded at creation time
	wallets := s.Wallets()
	assert.True(t, strings.HasSuffix(wallets[0].Path, "/1'"))
	assert.True(t, strings.HasSuffix(wallets[1].Path, "/2'"))
}

func TestDeleteWalletIndexOutOfRange(t *testing.T) {
	s, _ := seededSession(t, chain.ETH, 2)

	assert.True(t, kferr.Is(s.DeleteWallet(-1), kferr.ErrWalletIndexOutOfRange))
	assert.True(t, kferr.Is(s.DeleteWallet(2), kferr.ErrWalletIndexOutOfRange))
	assert.Len(t, s.Wallets(), 2)
}

func TestIndexCollisionAfterDelete(t *testing.T) {
	// Documents the indexing hazard: generate wallets 0,1,2; delete 2;
	// the next add reuses index 2 and reproduces the deleted key pair.
	s, _ := seededSession(t, chain.SOL, 3)
	deleted := s.Wallets()[2]

	require.NoError(t, s.DeleteWallet(2))
	kp, err := s.AddWallet()
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(kp.Path, "/2'"))
	assert.Equal(t, deleted, *kp)
}

func TestToggleVisibility(t *testing.T) {
	s, _ := seededSession(t, chain.SOL, 2)

	require.NoError(t, s.ToggleVisibility(1))
	assert.Equal(t, []bool{false, true}, s.Revealed())

	require.NoError(t, s.ToggleVisibility(1))
	assert.Equal(t, []bool{false, false}, s.Revealed())

	assert.True(t, kferr.Is(s.ToggleVisibility(5), kferr.ErrWalletIndexOutOfRange))
}

func TestClearAll(t *testing.T) {
	s, st := seededSession(t, chain.ETH, 2)

	require.NoError(t, s.ClearAll())

	assert.Empty(t, s.Wallets())
	assert.Empty(t, s.MnemonicWords())
	assert.Empty(t, s.Revealed())

	// Chain selection survives in memory so generate works immediately.
	assert.Equal(t, chain.ETH, s.Chain())
	_, err := s.GenerateInitial("")
	require.NoError(t, err)

	// Store no longer holds the old wallet data
	snap, ok, err := st.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, snap.Wallets, 1)
}

func TestHydrateRoundTrip(t *testing.T) {
	s, st := seededSession(t, chain.ETH, 3)
	require.NoError(t, s.ToggleVisibility(1))
	want := s.Wallets()

	fresh := New(st)
	require.NoError(t, fresh.Hydrate())

	assert.Equal(t, want, fresh.Wallets())
	assert.Equal(t, strings.Fields(testMnemonic), fresh.MnemonicWords())
	assert.Equal(t, chain.ETH, fresh.Chain())

	// Visibility flags reset to hidden regardless of the prior session
	assert.Equal(t, []bool{false, false, false}, fresh.Revealed())
}

func TestHydrateEmptyStore(t *testing.T) {
	s, _ := newTestSession(t)

	require.NoError(t, s.Hydrate())
	assert.Empty(t, s.Wallets())
	assert.Empty(t, s.MnemonicWords())
	assert.Equal(t, chain.PathType(""), s.Chain())
}

func TestHydratePartialSnapshot(t *testing.T) {
	s, st := seededSession(t, chain.SOL, 2)

	// clearAll leaves only the chain record behind - a partial snapshot
	require.NoError(t, s.ClearAll())

	fresh := New(st)
	require.NoError(t, fresh.Hydrate())
	assert.Empty(t, fresh.Wallets())
	assert.Empty(t, fresh.MnemonicWords())
	assert.Equal(t, chain.PathType(""), fresh.Chain())
}

func TestAddWalletPersistsOnlyWallets(t *testing.T) {
	s, st := seededSession(t, chain.ETH, 1)

	_, err := s.AddWallet()
	require.NoError(t, err)

	snap, ok, err := st.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, snap.Wallets, 2)
	assert.Equal(t, strings.Fields(testMnemonic), snap.Mnemonic)
	assert.Equal(t, chain.ETH, snap.Chain)
}

func TestCopyText(t *testing.T) {
	s, _ := seededSession(t, chain.SOL, 1)
	wallets := s.Wallets()

	pub, err := s.CopyText(0, false)
	require.NoError(t, err)
	assert.Equal(t, wallets[0].PublicKey, pub)

	priv, err := s.CopyText(0, true)
	require.NoError(t, err)
	assert.Equal(t, wallets[0].PrivateKey, priv)

	_, err = s.CopyText(3, false)
	assert.True(t, kferr.Is(err, kferr.ErrWalletIndexOutOfRange))
}
