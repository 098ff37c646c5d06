package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kferr "github.com/keyfold/keyfold/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" text ", FormatText},
		{"auto", FormatAuto},
		{"", FormatAuto},
		{"yaml", FormatAuto},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFormat(tt.input), "input %q", tt.input)
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, FormatJSON, DetectFormat(&buf, FormatJSON))
	assert.Equal(t, FormatText, DetectFormat(&buf, FormatText))
}

func TestDetectFormatNonTTY(t *testing.T) {
	// A plain buffer is not a terminal
	var buf bytes.Buffer
	assert.Equal(t, FormatJSON, DetectFormat(&buf, FormatAuto))
}

func TestFormatterPrintText(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)

	require.NoError(t, f.Print("hello"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestFormatterPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)
	require.True(t, f.IsJSON())

	require.NoError(t, f.Print(map[string]string{"key": "value"}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "value", decoded["key"])
}

func TestMask(t *testing.T) {
	masked := Mask("supersecretprivatekey")
	assert.Equal(t, strings.Repeat("*", 12), masked)

	// The mask width never depends on the secret length
	assert.Equal(t, masked, Mask("x"))
	assert.Empty(t, Mask(""))
}

func TestFormatErrorText(t *testing.T) {
	var buf bytes.Buffer
	err := kferr.WithSuggestion(kferr.ErrInvalidMnemonic, "check word 3")

	require.NoError(t, FormatError(&buf, err, FormatText))

	out := buf.String()
	assert.Contains(t, out, "Error: invalid mnemonic phrase")
	assert.Contains(t, out, "Suggestion: check word 3")
}

func TestFormatErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	err := kferr.WithDetails(kferr.ErrWalletIndexOutOfRange, map[string]string{"index": "5"})

	require.NoError(t, FormatError(&buf, err, FormatJSON))

	var decoded ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "WALLET_INDEX_OUT_OF_RANGE", decoded.Error.Code)
	assert.Equal(t, "5", decoded.Error.Details["index"])
	assert.Equal(t, 2, decoded.Error.ExitCode)
}

func TestFormatErrorGeneric(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, assert.AnError, FormatJSON))

	var decoded ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "GENERAL_ERROR", decoded.Error.Code)
}

func TestFormatSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatSuccess(&buf, "done", FormatText))
	assert.Equal(t, "done\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatSuccess(&buf, "done", FormatJSON))
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
}
