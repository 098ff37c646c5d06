package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := &Error{Code: "TEST", Message: "something broke"}
	assert.Equal(t, "something broke", err.Error())
}

func TestErrorMessageWithDetails(t *testing.T) {
	err := &Error{
		Code:    "TEST",
		Message: "something broke",
		Details: map[string]string{"index": "3", "chain": "60"},
	}
	// Details are sorted by key for deterministic output
	assert.Equal(t, "something broke (chain: 60) (index: 3)", err.Error())
}

func TestErrorMessageWithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := &Error{Code: "TEST", Message: "write failed", Cause: cause}
	assert.Equal(t, "write failed: disk full", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestIsMatchesOnCode(t *testing.T) {
	wrapped := Wrap(ErrInvalidMnemonic, "validating user input")
	assert.True(t, Is(wrapped, ErrInvalidMnemonic))
	assert.False(t, Is(wrapped, ErrDerivationFailed))
}

func TestWrapPreservesCodeAndExit(t *testing.T) {
	wrapped := Wrap(ErrUnsupportedPathType, "deriving wallet 0")

	var ke *Error
	require.True(t, As(wrapped, &ke))
	assert.Equal(t, "UNSUPPORTED_PATH_TYPE", ke.Code)
	assert.Equal(t, ExitInput, ke.ExitCode)
	assert.Contains(t, ke.Message, "deriving wallet 0")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithDetails(nil, nil))
	assert.NoError(t, WithSuggestion(nil, "ignored"))
}

func TestWrapGenericError(t *testing.T) {
	err := Wrap(stderrors.New("boom"), "doing work")
	assert.Equal(t, "GENERAL_ERROR", Code(err))
	assert.Equal(t, ExitGeneral, ExitCode(err))
}

func TestWithSuggestion(t *testing.T) {
	err := WithSuggestion(ErrInvalidMnemonic, "word 3: 'abandn' - did you mean 'abandon'?")

	var ke *Error
	require.True(t, As(err, &ke))
	assert.Equal(t, "INVALID_MNEMONIC", ke.Code)
	assert.Contains(t, ke.Suggestion, "abandon")
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(ErrWalletIndexOutOfRange, map[string]string{"index": "5", "count": "2"})

	var ke *Error
	require.True(t, As(err, &ke))
	assert.Equal(t, "WALLET_INDEX_OUT_OF_RANGE", ke.Code)
	assert.Equal(t, "5", ke.Details["index"])
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitInput, ExitCode(ErrInvalidMnemonic))
	assert.Equal(t, ExitGeneral, ExitCode(ErrDerivationFailed))
	assert.Equal(t, ExitGeneral, ExitCode(stderrors.New("plain")))
}

func TestNewDefaultsToGeneralExit(t *testing.T) {
	err := New("CUSTOM", "custom failure")
	assert.Equal(t, "CUSTOM", err.Code)
	assert.Equal(t, ExitGeneral, err.ExitCode)
}
