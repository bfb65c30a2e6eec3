package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KorAP/asr-score/fst"
	"github.com/KorAP/asr-score/symtab"
)

// runAlign composes ref against hyp through the built edit factors and
// returns the shortest-path weight, mirroring the pipeline of spec.md
// §4.6 step 3 without the tagging/expansion stages.
func runAlign(t *testing.T, ref, hyp []int, factors Factors) (float64, bool) {
	t.Helper()
	refFst := fst.LinearAcceptor(ref)
	hypFst := fst.LinearAcceptor(hyp)
	lattice := fst.Compose(fst.Compose(refFst, factors.Ei), fst.Compose(factors.Eo, hypFst))
	path, ok := fst.ShortestPath(lattice)
	if !ok {
		return 0, false
	}
	return path.Weight, true
}

func setup(t *testing.T, tokens []string) (*symtab.Table, []int, map[int]int) {
	t.Helper()
	symbols := symtab.New()
	ids := make([]int, len(tokens))
	auxOf := make(map[int]int)
	for i, tok := range tokens {
		id := symbols.AddSymbol(tok)
		ids[i] = id
		auxOf[id] = symbols.AddSymbol(symtab.AuxSymbol(tok))
	}
	return symbols, ids, auxOf
}

func TestIdenticalStringsCostZero(t *testing.T) {
	assert := assert.New(t)
	symbols, ids, aux := setup(t, []string{"HEY", "I", "AM", "HERE"})
	factors := Build(symbols, ids, aux, DefaultCosts(), 0)

	weight, ok := runAlign(t, ids, ids, factors)
	assert.True(ok)
	assert.Equal(0.0, weight)
}

func TestSingleSubstitutionCostsUnit(t *testing.T) {
	assert := assert.New(t)
	symbols, ids, aux := setup(t, []string{"FOO", "BAR"})
	factors := Build(symbols, ids, aux, DefaultCosts(), 0)

	weight, ok := runAlign(t, []int{ids[0]}, []int{ids[1]}, factors)
	assert.True(ok)
	assert.Equal(1.0, weight)
}

func TestDeletionAndInsertionCostUnit(t *testing.T) {
	assert := assert.New(t)
	symbols, ids, aux := setup(t, []string{"A", "B"})
	factors := Build(symbols, ids, aux, DefaultCosts(), 0)

	weight, ok := runAlign(t, []int{ids[0], ids[1]}, []int{ids[0]}, factors)
	assert.True(ok)
	assert.Equal(1.0, weight)

	weight, ok = runAlign(t, []int{ids[0]}, []int{ids[0], ids[1]}, factors)
	assert.True(ok)
	assert.Equal(1.0, weight)
}

func TestAuxiliaryFormMatchesAtZeroCost(t *testing.T) {
	assert := assert.New(t)
	symbols, ids, aux := setup(t, []string{"I", "AM"})
	factors := Build(symbols, ids, aux, DefaultCosts(), 0)

	hyp := []int{aux[ids[0]], aux[ids[1]]}
	weight, ok := runAlign(t, ids, hyp, factors)
	assert.True(ok)
	assert.Equal(0.0, weight)
}

func TestBoundLimitsEditCount(t *testing.T) {
	assert := assert.New(t)
	symbols, ids, aux := setup(t, []string{"A", "B", "C"})
	factors := Build(symbols, ids, aux, DefaultCosts(), 1)

	// two substitutions needed but bound=1: no path can spend a second edit.
	_, ok := runAlign(t, []int{ids[0], ids[1]}, []int{ids[2], ids[2]}, factors)
	assert.False(ok)
}

func TestBoundAllowsExactlyPermittedEdits(t *testing.T) {
	assert := assert.New(t)
	symbols, ids, aux := setup(t, []string{"A", "B"})
	factors := Build(symbols, ids, aux, DefaultCosts(), 1)

	weight, ok := runAlign(t, []int{ids[0]}, []int{ids[1]}, factors)
	assert.True(ok)
	assert.Equal(1.0, weight)
}

func TestAsymmetricCostsUseIndependentHalves(t *testing.T) {
	assert := assert.New(t)
	symbols, ids, aux := setup(t, []string{"A", "B"})
	costs := Costs{Insert: 3.0, Delete: 5.0, Substitute: 1.0}
	factors := Build(symbols, ids, aux, costs, 0)

	weight, ok := runAlign(t, []int{ids[0], ids[1]}, []int{ids[0]}, factors)
	assert.True(ok)
	assert.Equal(5.0, weight)

	weight, ok = runAlign(t, []int{ids[0]}, []int{ids[0], ids[1]}, factors)
	assert.True(ok)
	assert.Equal(3.0, weight)
}
