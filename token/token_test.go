package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeWhitespace(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"HEY", "I", "AM", "HERE"}, Tokenize("  HEY  I AM\tHERE\n", Whitespace))
	assert.Equal([]string{}, Tokenize("   ", Whitespace))
}

func TestTokenizeChar(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"我", "是", "谁"}, Tokenize(" 我 是谁 ", Char))
	assert.Equal([]string{}, Tokenize("   ", Char))
}

func TestHyphenVariants(t *testing.T) {
	assert := assert.New(t)
	assert.Nil(HyphenVariants("SHIRT"))
	assert.Equal([]string{"T", "SHIRT", "TSHIRT"}, HyphenVariants("T-SHIRT"))
}

func TestDeriveVocabularyDedupesAndExpandsHyphens(t *testing.T) {
	assert := assert.New(t)
	ref := Tokenize("BUY A T SHIRT", Whitespace)
	hyp := Tokenize("BUY A T-SHIRT", Whitespace)
	vocab := DeriveVocabulary(ref, hyp)

	assertContains := func(tok string) {
		assert.Contains(vocab, tok)
	}
	assertContains("BUY")
	assertContains("A")
	assertContains("T")
	assertContains("SHIRT")
	assertContains("T-SHIRT")
	assertContains("TSHIRT")

	count := 0
	for _, v := range vocab {
		if v == "A" {
			count++
		}
	}
	assert.Equal(1, count)
}
