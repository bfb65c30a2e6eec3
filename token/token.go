// Package token implements the two tokenization modes used to turn
// reference/hypothesis text into the token sequences the FST kernel
// operates on, and the vocabulary derivation of spec.md §4.2.
package token

import (
	"strings"
)

// Mode selects a tokenization strategy.
type Mode string

const (
	// Whitespace splits on any run of whitespace after trimming.
	Whitespace Mode = "whitespace"
	// Char strips spaces and yields one Unicode codepoint per token.
	Char Mode = "char"
)

// Tokenize splits text into an ordered, non-empty token sequence.
func Tokenize(text string, mode Mode) []string {
	switch mode {
	case Char:
		return tokenizeChar(text)
	default:
		return tokenizeWhitespace(text)
	}
}

func tokenizeWhitespace(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return []string{}
	}
	return fields
}

func tokenizeChar(text string) []string {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, text)
	if stripped == "" {
		return []string{}
	}
	runes := []rune(stripped)
	out := make([]string, 0, len(runes))
	for _, r := range runes {
		out = append(out, string(r))
	}
	return out
}

// HyphenVariants returns the additional surface forms a hyphenated token
// contributes to the vocabulary, per spec.md §4.2: the hyphen-split parts
// and the hyphen-removed concatenation. Returns nil for tokens without a
// hyphen.
func HyphenVariants(tok string) []string {
	if !strings.Contains(tok, "-") {
		return nil
	}
	parts := strings.Split(tok, "-")
	out := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	out = append(out, strings.ReplaceAll(tok, "-", ""))
	return out
}

// DeriveVocabulary unions the tokens of ref, raw hyp and every GLM phrase
// (already tokenized by the caller), plus their hyphen variants, into the
// base vocabulary V of spec.md §4.2. The result is de-duplicated but
// order is otherwise insertion order, for determinism when the caller
// feeds sorted-uid input.
func DeriveVocabulary(tokenSets ...[]string) []string {
	seen := make(map[string]bool)
	var vocab []string

	add := func(tok string) {
		if !seen[tok] {
			seen[tok] = true
			vocab = append(vocab, tok)
		}
	}

	for _, toks := range tokenSets {
		for _, tok := range toks {
			add(tok)
			for _, variant := range HyphenVariants(tok) {
				add(variant)
			}
		}
	}
	return vocab
}
