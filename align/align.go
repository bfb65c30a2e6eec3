// Package align runs the per-utterance pipeline of spec.md §4.6: tag the
// raw hypothesis, expand it into a sausage acceptor, compose it against
// the reference through the edit transducer, and classify the shortest
// path's arcs into correct/substitute/insert/delete edits.
package align

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/KorAP/asr-score/edit"
	"github.com/KorAP/asr-score/fst"
	"github.com/KorAP/asr-score/glm"
	"github.com/KorAP/asr-score/symtab"
)

// Tag classifies one aligned arc.
type Tag byte

const (
	Correct Tag = iota
	Substitute
	Insert
	Delete
)

func (t Tag) String() string {
	switch t {
	case Correct:
		return "C"
	case Substitute:
		return "S"
	case Insert:
		return "I"
	case Delete:
		return "D"
	default:
		return "?"
	}
}

// Edit is one triple of the Alignment sequence in spec.md §3.
type Edit struct {
	Tag        Tag
	RefSurface string // "*" for an insertion
	HypSurface string // "*" for a deletion
}

// Result is the outcome of aligning one utterance.
type Result struct {
	Edits []Edit
	Cost  float64
	C, S, I, D int
}

// HasError reports whether the alignment contains any non-Correct edit,
// spec.md §4.6 step 6's num_utts_with_error trigger.
func (r Result) HasError() bool {
	return r.S+r.I+r.D > 0
}

// EmptyLatticeError is spec.md §4.6 step 3's fatal condition: the
// composed lattice for uid has no accepting path, which indicates a
// vocabulary or tagger bug rather than a scoring outcome.
type EmptyLatticeError struct {
	UID string
}

func (e *EmptyLatticeError) Error() string {
	return fmt.Sprintf("align: empty composition lattice for uid %q", e.UID)
}

// Aligner holds the immutable, run-wide artifacts spec.md §5 requires to
// be shared read-only across utterances: the symbol table, GLM table,
// compiled tagger and edit factors.
type Aligner struct {
	Symbols *symtab.Table
	Table   *glm.Table
	Tagger  *fst.FST
	Factors edit.Factors

	// Debug, when set, dumps the composed lattice and winning path of
	// every utterance through the global logger at debug level.
	Debug bool
}

// Align runs spec.md §4.6 for one utterance. refTokens/hypTokens are
// already-tokenized surfaces; uid labels a fatal EmptyLatticeError and
// the Debug dumps.
func (a *Aligner) Align(uid string, refTokens, hypTokens []string) (Result, error) {
	refIDs := make([]int, len(refTokens))
	for i, t := range refTokens {
		refIDs[i] = a.Symbols.MustID(t)
	}
	hypIDs := make([]int, len(hypTokens))
	for i, t := range hypTokens {
		hypIDs[i] = a.Symbols.MustID(t)
	}

	tagged, ok := glm.Tag(a.Tagger, hypIDs)
	if !ok {
		return Result{}, &EmptyLatticeError{UID: uid}
	}

	refFst := fst.LinearAcceptor(refIDs)
	hypFst := buildHypFst(a.Symbols, a.Table, tagged)

	lattice := fst.Compose(fst.Compose(refFst, a.Factors.Ei), fst.Compose(a.Factors.Eo, hypFst))
	if a.Debug {
		log.Debug().Msg(DumpLattice(uid, lattice))
	}
	path, ok := fst.ShortestPath(lattice)
	if !ok {
		return Result{}, &EmptyLatticeError{UID: uid}
	}
	if a.Debug {
		log.Debug().Msg(DumpPath(uid, path))
	}

	return a.classify(path), nil
}

// classify implements spec.md §4.6 step 5: an arc's edit tag and cost
// follow purely from which side of (ilabel, olabel) is zero, and whether
// the two symbols agree once a single trailing "#" is stripped from
// each.
func (a *Aligner) classify(path fst.Path) Result {
	var res Result
	res.Cost = path.Weight
	res.Edits = make([]Edit, 0, len(path.Arcs))

	for _, arc := range path.Arcs {
		switch {
		case arc.ILabel != 0 && arc.OLabel != 0:
			refSym, _ := a.Symbols.Symbol(arc.ILabel)
			hypSym, _ := a.Symbols.Symbol(arc.OLabel)
			if stripHash(refSym) == stripHash(hypSym) {
				res.Edits = append(res.Edits, Edit{Tag: Correct, RefSurface: refSym, HypSurface: hypSym})
				res.C++
			} else {
				res.Edits = append(res.Edits, Edit{Tag: Substitute, RefSurface: refSym, HypSurface: hypSym})
				res.S++
			}
		case arc.ILabel == 0 && arc.OLabel != 0:
			hypSym, _ := a.Symbols.Symbol(arc.OLabel)
			res.Edits = append(res.Edits, Edit{Tag: Insert, RefSurface: "*", HypSurface: hypSym})
			res.I++
		case arc.ILabel != 0 && arc.OLabel == 0:
			refSym, _ := a.Symbols.Symbol(arc.ILabel)
			res.Edits = append(res.Edits, Edit{Tag: Delete, RefSurface: refSym, HypSurface: "*"})
			res.D++
		}
	}
	return res
}

func stripHash(s string) string {
	return strings.TrimSuffix(s, "#")
}
