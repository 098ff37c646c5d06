// Package wallet provides the deterministic derivation engine: BIP39
// mnemonic handling, SLIP-0010 ed25519 path derivation, and per-chain
// key pair encoding.
package wallet

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	kferr "github.com/keyfold/keyfold/pkg/errors"
)

// MnemonicWordCount is the only supported phrase length (128 bits entropy).
const MnemonicWordCount = 12

var (
	// whitespaceRegex matches one or more whitespace characters.
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numberedListRegex matches numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bulletListRegex matches bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// GenerateMnemonic creates a new 12-word BIP39 mnemonic phrase.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", kferr.Wrap(err, "generating entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", kferr.Wrap(err, "building mnemonic")
	}

	return mnemonic, nil
}

// ValidateMnemonic checks that a phrase is a valid 12-word BIP39 mnemonic.
// It verifies word count, word validity, and checksum. The returned error
// carries typo suggestions when close BIP39 words exist.
func ValidateMnemonic(mnemonic string) error {
	if strings.TrimSpace(mnemonic) == "" {
		return kferr.ErrInvalidMnemonic
	}

	normalized := NormalizeMnemonicInput(mnemonic)

	words := strings.Fields(normalized)
	if len(words) != MnemonicWordCount {
		return kferr.WithSuggestion(kferr.ErrInvalidMnemonic,
			"mnemonic must be exactly 12 words")
	}

	// MnemonicToByteArray validates word validity AND checksum
	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		if hint := FormatTypoSuggestions(DetectTypos(normalized)); hint != "" {
			return kferr.WithSuggestion(kferr.ErrInvalidMnemonic, hint)
		}
		return kferr.ErrInvalidMnemonic
	}

	return nil
}

// NormalizeMnemonicInput cleans and normalizes mnemonic input by lowercasing,
// stripping list prefixes and bullets, replacing commas with spaces, and
// collapsing whitespace.
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// MnemonicToSeed converts a validated mnemonic phrase to a 64-byte BIP39
// seed. No passphrase is applied.
func MnemonicToSeed(mnemonic string) ([]byte, error) {
	normalized := NormalizeMnemonicInput(mnemonic)

	if err := ValidateMnemonic(normalized); err != nil {
		return nil, err
	}

	return bip39.NewSeed(normalized, ""), nil
}

// MnemonicWords splits a phrase into its normalized word sequence.
func MnemonicWords(mnemonic string) []string {
	return strings.Fields(NormalizeMnemonicInput(mnemonic))
}

// JoinWords reassembles a word sequence into a phrase.
func JoinWords(words []string) string {
	return strings.Join(words, " ")
}

// IsValidWord checks if a word is in the BIP39 English word list.
func IsValidWord(word string) bool {
	word = strings.ToLower(word)
	for _, w := range bip39.GetWordList() {
		if w == word {
			return true
		}
	}
	return false
}

// MaxTypoDistance is the maximum Levenshtein distance to consider a
// suggestion. Words with distance > 2 are too different to suggest.
const MaxTypoDistance = 2

// TypoInfo describes a detected typo and its closest BIP39 word.
type TypoInfo struct {
	// Index is the word position in the mnemonic (0-based).
	Index int
	// Word is the original (possibly misspelled) word.
	Word string
	// Suggestion is the closest BIP39 word, or empty if none found.
	Suggestion string
	// Distance is the Levenshtein distance to the suggestion.
	Distance int
}

// SuggestWord finds the closest BIP39 word to the input using Levenshtein
// distance. Returns empty string if no word is close enough.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string

	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
		if dist == 0 {
			return word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos scans a mnemonic phrase and returns information about words
// that are not in the BIP39 word list, with suggested corrections.
func DetectTypos(mnemonic string) []TypoInfo {
	if mnemonic == "" {
		return nil
	}

	words := strings.Fields(NormalizeMnemonicInput(mnemonic))
	var typos []TypoInfo

	for i, word := range words {
		if !IsValidWord(word) {
			suggestion := SuggestWord(word)
			distance := 0
			if suggestion != "" {
				distance = levenshtein.ComputeDistance(word, suggestion)
			}
			typos = append(typos, TypoInfo{
				Index:      i,
				Word:       word,
				Suggestion: suggestion,
				Distance:   distance,
			})
		}
	}

	return typos
}

// FormatTypoSuggestions formats typo information into a human-readable hint.
func FormatTypoSuggestions(typos []TypoInfo) string {
	if len(typos) == 0 {
		return ""
	}

	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		// Word position is 1-indexed for human readability
		b.WriteString("word ")
		b.WriteString(itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not a valid BIP39 word")
		}
	}
	return b.String()
}

// itoa converts an int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
