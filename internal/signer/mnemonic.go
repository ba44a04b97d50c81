// Package signer manages the claim signing key: BIP39 mnemonic import
// with typo detection, BIP44 derivation, age-encrypted storage, and
// EIP-155 transaction signing.
package signer

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

var (
	// whitespacePattern matches one or more whitespace characters.
	whitespacePattern = regexp.MustCompile(`\s+`)

	// numberedPrefixPattern matches list prefixes like "1." "2)" "3:" at
	// the start of the input or after whitespace, so both one-per-line and
	// single-line pastes are cleaned.
	numberedPrefixPattern = regexp.MustCompile(`(^|\s)\d+[.):]\s*`)
)

// NormalizeMnemonic cleans pasted mnemonic input: lowercases it, strips
// numbered list prefixes, replaces commas with spaces, and collapses
// whitespace.
func NormalizeMnemonic(input string) string {
	input = strings.ToLower(input)
	input = numberedPrefixPattern.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespacePattern.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// ValidateMnemonic checks word count, word validity, and checksum. The
// returned error carries typo suggestions when misspelled words are
// close to BIP39 words.
func ValidateMnemonic(mnemonic string) error {
	normalized := NormalizeMnemonic(mnemonic)
	if normalized == "" {
		return mferr.ErrInvalidMnemonic
	}

	words := strings.Fields(normalized)
	if len(words) != 12 && len(words) != 24 {
		return mferr.WithDetails(mferr.ErrInvalidMnemonic, map[string]string{
			"word_count": itoa(len(words)),
			"expected":   "12 or 24",
		})
	}

	if bip39.IsMnemonicValid(normalized) {
		return nil
	}

	if typos := DetectTypos(normalized); len(typos) > 0 {
		return mferr.WithSuggestion(mferr.ErrInvalidMnemonic, FormatTypoSuggestions(typos))
	}

	return mferr.ErrInvalidMnemonic
}

// MaxTypoDistance is the largest Levenshtein distance considered a typo
// rather than a different word.
const MaxTypoDistance = 2

// TypoInfo describes one word that is not in the BIP39 word list.
type TypoInfo struct {
	// Index is the word position in the mnemonic (0-based).
	Index int
	// Word is the misspelled word.
	Word string
	// Suggestion is the closest BIP39 word, empty when nothing is close.
	Suggestion string
}

// SuggestWord returns the closest BIP39 word within MaxTypoDistance,
// or an empty string.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string

	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos finds words that are not in the BIP39 word list and pairs
// each with its closest valid word.
func DetectTypos(mnemonic string) []TypoInfo {
	normalized := NormalizeMnemonic(mnemonic)
	if normalized == "" {
		return nil
	}

	valid := make(map[string]struct{}, 2048)
	for _, w := range bip39.GetWordList() {
		valid[w] = struct{}{}
	}

	var typos []TypoInfo
	for i, word := range strings.Fields(normalized) {
		if _, ok := valid[word]; ok {
			continue
		}
		typos = append(typos, TypoInfo{
			Index:      i,
			Word:       word,
			Suggestion: SuggestWord(word),
		})
	}
	return typos
}

// FormatTypoSuggestions renders typos for display, one per line.
func FormatTypoSuggestions(typos []TypoInfo) string {
	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		// 1-indexed for humans
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

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
