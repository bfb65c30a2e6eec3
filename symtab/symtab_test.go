package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpsilonReservedAtZero(t *testing.T) {
	assert := assert.New(t)
	tab := New()
	assert.Equal(1, tab.Size())
	id, ok := tab.ID(epsilonSymbol)
	assert.True(ok)
	assert.Equal(Epsilon, id)
}

func TestAddSymbolIdempotent(t *testing.T) {
	assert := assert.New(t)
	tab := New()
	a := tab.AddSymbol("HEY")
	b := tab.AddSymbol("HEY")
	assert.Equal(a, b)
	assert.Equal(1, a)

	c := tab.AddSymbol("THERE")
	assert.NotEqual(a, c)
	assert.Equal(3, tab.Size())
}

func TestLookupBothDirections(t *testing.T) {
	assert := assert.New(t)
	tab := New()
	id := tab.AddSymbol("FOO")

	got, ok := tab.Symbol(id)
	assert.True(ok)
	assert.Equal("FOO", got)

	_, ok = tab.Symbol(9999)
	assert.False(ok)
}

func TestMustIDPanicsOnUnknown(t *testing.T) {
	tab := New()
	assert.Panics(t, func() {
		tab.MustID("NOPE")
	})
}

func TestAuxSymbolAndRuleTag(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("FOO#", AuxSymbol("FOO"))
	assert.Equal("<RULE_000001>", RuleTag(1))
	assert.Equal("<RULE_000042>", RuleTag(42))
}
