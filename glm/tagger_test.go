package glm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KorAP/asr-score/symtab"
	"github.com/KorAP/asr-score/token"
)

func buildSymbols(table *Table, utterances ...string) *symtab.Table {
	symbols := symtab.New()
	vocabSets := [][]string{}
	for _, u := range utterances {
		vocabSets = append(vocabSets, token.Tokenize(u, token.Whitespace))
	}
	vocabSets = append(vocabSets, table.Vocabulary(token.Whitespace)...)
	for _, toks := range token.DeriveVocabulary(vocabSets...) {
		symbols.AddSymbol(toks)
	}
	table.Range(func(rule *Rule) bool {
		symbols.AddSymbol(rule.ID)
		return true
	})
	return symbols
}

func idsOf(symbols *symtab.Table, toks []string) []int {
	ids := make([]int, len(toks))
	for i, t := range toks {
		ids[i] = symbols.MustID(t)
	}
	return ids
}

func TestCompileTaggerWrapsMatchedPhrase(t *testing.T) {
	assert := assert.New(t)
	table, _ := LoadCSV(strings.NewReader("I'M, I AM\n"))
	symbols := buildSymbols(table, "HEY I'M HERE")

	vocab := []string{"HEY", "I'M", "HERE"}
	tagger := CompileTagger(symbols, vocab, table)

	hyp := token.Tokenize("HEY I'M HERE", token.Whitespace)
	out, ok := Tag(tagger, idsOf(symbols, hyp))
	assert.True(ok)

	tagID := symbols.MustID("<RULE_000000>")
	expected := []int{symbols.MustID("HEY"), tagID, symbols.MustID("I'M"), tagID, symbols.MustID("HERE")}
	assert.Equal(expected, out)
}

func TestCompileTaggerPassesThroughUnmatchedTokens(t *testing.T) {
	assert := assert.New(t)
	table := NewTable()
	symbols := buildSymbols(table, "HEY THERE")
	vocab := []string{"HEY", "THERE"}
	tagger := CompileTagger(symbols, vocab, table)

	hyp := token.Tokenize("HEY THERE", token.Whitespace)
	out, ok := Tag(tagger, idsOf(symbols, hyp))
	assert.True(ok)
	assert.Equal(idsOf(symbols, hyp), out)
}

func TestCompileTaggerPrefersLowestRuleIndexOnTie(t *testing.T) {
	assert := assert.New(t)
	table, _ := LoadCSV(strings.NewReader("A B, X\nA B, Y\n"))
	symbols := buildSymbols(table, "A B")
	vocab := []string{"A", "B"}
	tagger := CompileTagger(symbols, vocab, table)

	hyp := token.Tokenize("A B", token.Whitespace)
	out, ok := Tag(tagger, idsOf(symbols, hyp))
	assert.True(ok)

	firstTag := symbols.MustID("<RULE_000000>")
	assert.Equal(firstTag, out[0])
	assert.Equal(firstTag, out[len(out)-1])
}
