package glm

import (
	"github.com/KorAP/asr-score/fst"
	"github.com/KorAP/asr-score/symtab"
	"github.com/KorAP/asr-score/token"
)

// Tagging tie-break constants (spec.md §4.3, §9 "non-determinism risk"):
// a rule match must always beat leaving the span untouched, and among
// overlapping matches the lowest rule index must win. Both are enforced
// by construction rather than by a custom comparator threaded through
// fst.ShortestPath: baking the tie-break into arc weights lets the
// generic Dijkstra in the fst package do the right thing unmodified.
const passThroughCost = 1e-3

// CompileTagger builds the transducer T_glm of spec.md §4.3: applied (via
// composition) to a linear token acceptor, its shortest path tags every
// matched rule phrase with a pair of `<RULE_######>` markers.
//
// Every vocabulary token gets a pass-through arc; every rule phrase gets
// a `eps:tag · phrase · eps:tag` fragment whose total weight is
// vanishingly smaller than any pass-through alternative of the same
// span, so tagging always wins, and smaller among lower rule indices, so
// the lowest-index rule wins overlapping matches. Wrapping the union in
// Closure lets the tagger scan an arbitrary-length token stream.
func CompileTagger(symbols *symtab.Table, vocab []string, table *Table) *fst.FST {
	numRules := table.Len()
	ruleIndexEpsilon := passThroughCost / float64(numRules+1)

	var frags []*fst.FST
	for _, tok := range vocab {
		id := symbols.MustID(tok)
		frags = append(frags, fst.Symbol(id, id, passThroughCost))
	}

	i := 0
	table.Range(func(rule *Rule) bool {
		tagID := symbols.MustID(rule.ID)
		openCost := ruleIndexEpsilon * float64(i)
		for _, phrase := range rule.Phrases {
			frags = append(frags, phraseFragment(symbols, tagID, phrase, openCost))
		}
		i++
		return true
	})

	if len(frags) == 0 {
		return fst.Closure(fst.EmptyString())
	}
	return fst.Closure(fst.UnionAll(frags))
}

// phraseFragment builds `eps:tag · phrase · eps:tag`, where phrase is
// tokenized with whitespace mode per spec.md §3's phrase definition.
func phraseFragment(symbols *symtab.Table, tagID int, phrase string, openCost float64) *fst.FST {
	frag := fst.Symbol(symtab.Epsilon, tagID, openCost)
	for _, tok := range token.Tokenize(phrase, token.Whitespace) {
		id := symbols.MustID(tok)
		frag = fst.Concat(frag, fst.Symbol(id, id, 0))
	}
	frag = fst.Concat(frag, fst.Symbol(symtab.Epsilon, tagID, 0))
	return frag
}

// Tag applies the compiled tagger to a raw hypothesis token sequence,
// returning the tagged output symbol ids (rule tags interspersed with
// the original tokens) that its shortest path selects.
func Tag(tagger *fst.FST, hypIDs []int) ([]int, bool) {
	hyp := fst.LinearAcceptor(hypIDs)
	composed := fst.Compose(hyp, tagger)
	path, ok := fst.ShortestPath(composed)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(path.Arcs))
	for _, arc := range path.Arcs {
		if arc.OLabel != symtab.Epsilon {
			out = append(out, arc.OLabel)
		}
	}
	return out, true
}
