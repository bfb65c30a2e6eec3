package align

import (
	"strings"

	"github.com/KorAP/asr-score/fst"
	"github.com/KorAP/asr-score/glm"
	"github.com/KorAP/asr-score/symtab"
	"github.com/KorAP/asr-score/token"
)

// segment is one unit of the tagged hypothesis stream, per spec.md §4.4:
// either a matched rule span (bracketed by the same rule tag on both
// sides) or a single plain token.
type segment struct {
	rule   *glm.Rule
	tokens []int // matched phrase tokens (rule segment) or the one token (plain segment)
}

// splitSegments scans a tagged token-id stream (as produced by
// glm.Tag) into the segment sequence spec.md §4.4 expands.
func splitSegments(symbols *symtab.Table, table *glm.Table, tagged []int) []segment {
	tagRule := make(map[int]*glm.Rule)
	table.Range(func(rule *glm.Rule) bool {
		tagRule[symbols.MustID(rule.ID)] = rule
		return true
	})

	var segments []segment
	var openRule *glm.Rule
	var openTag int
	var span []int

	for _, id := range tagged {
		if rule, isTag := tagRule[id]; isTag {
			if openRule == nil {
				openRule, openTag = rule, id
				span = nil
				continue
			}
			if id == openTag {
				segments = append(segments, segment{rule: openRule, tokens: span})
				openRule, span = nil, nil
				continue
			}
		}
		if openRule != nil {
			span = append(span, id)
			continue
		}
		segments = append(segments, segment{tokens: []int{id}})
	}
	return segments
}

// buildHypFst expands the tagged hypothesis stream into the "sausage"
// acceptor of spec.md §4.4, the concatenation of one alternation
// fragment per segment.
func buildHypFst(symbols *symtab.Table, table *glm.Table, tagged []int) *fst.FST {
	segments := splitSegments(symbols, table, tagged)
	frags := make([]*fst.FST, 0, len(segments))
	for _, seg := range segments {
		if seg.rule != nil {
			frags = append(frags, ruleSegmentFragment(symbols, seg.rule, seg.tokens))
		} else {
			frags = append(frags, plainSegmentFragment(symbols, seg.tokens[0]))
		}
	}
	return fst.ConcatAll(frags)
}

// ruleSegmentFragment builds the alternation of spec.md §4.4's rule
// segment: the literal matched phrase, plus the auxiliary `t#` form of
// every other phrase registered under the same rule.
func ruleSegmentFragment(symbols *symtab.Table, rule *glm.Rule, matched []int) *fst.FST {
	branches := []*fst.FST{fst.LinearAcceptor(matched)}

	matchedSurface := surfaceOf(symbols, matched)
	for _, phrase := range rule.Phrases {
		if phrase == matchedSurface {
			continue
		}
		toks := token.Tokenize(phrase, token.Whitespace)
		auxIDs := make([]int, len(toks))
		for i, t := range toks {
			auxIDs[i] = symbols.MustID(symtab.AuxSymbol(t))
		}
		branches = append(branches, fst.LinearAcceptor(auxIDs))
	}
	return fst.UnionAll(branches)
}

// plainSegmentFragment builds spec.md §4.4's plain segment alternation:
// the literal token, plus (for a hyphenated token) its hyphen-split and
// hyphen-removed auxiliary forms.
func plainSegmentFragment(symbols *symtab.Table, tokenID int) *fst.FST {
	branches := []*fst.FST{fst.Symbol(tokenID, tokenID, 0)}

	surface, _ := symbols.Symbol(tokenID)
	variants := token.HyphenVariants(surface)
	if len(variants) == 0 {
		return branches[0]
	}

	parts, concat := variants[:len(variants)-1], variants[len(variants)-1]
	partFrags := make([]*fst.FST, len(parts))
	for i, p := range parts {
		auxID := symbols.MustID(symtab.AuxSymbol(p))
		partFrags[i] = fst.Symbol(auxID, auxID, 0)
	}
	branches = append(branches, fst.ConcatAll(partFrags))

	concatAuxID := symbols.MustID(symtab.AuxSymbol(concat))
	branches = append(branches, fst.Symbol(concatAuxID, concatAuxID, 0))

	return fst.UnionAll(branches)
}

func surfaceOf(symbols *symtab.Table, ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i], _ = symbols.Symbol(id)
	}
	return strings.Join(parts, " ")
}
