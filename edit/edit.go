// Package edit builds the two-factor edit-distance transducer of
// spec.md §4.5: a left factor E_i that turns a reference token into an
// edit-tag symbol, and a right factor E_o that turns an edit-tag symbol
// into a hypothesis token, composed in series so that a substitution
// never needs a dedicated arc per (ref, hyp) token pair.
package edit

import (
	"github.com/KorAP/asr-score/fst"
	"github.com/KorAP/asr-score/symtab"
)

// Edit-tag alphabet shared between the two factors. These are ordinary
// symbol-table entries, registered once per run alongside the token
// vocabulary.
const (
	DeleteTag      = "<DELETE>"
	SubstituteTag  = "<SUBSTITUTE>"
	InsertTag      = "<INSERT>"
)

// Costs holds the three configurable edit weights of spec.md §4.5.
type Costs struct {
	Insert      float64
	Delete      float64
	Substitute  float64
}

// DefaultCosts returns the spec.md §4.5 defaults: unit cost for every
// edit type.
func DefaultCosts() Costs {
	return Costs{Insert: 1.0, Delete: 1.0, Substitute: 1.0}
}

// RegisterTags adds the edit-tag symbols to the table and returns their
// ids. Idempotent, since symtab.AddSymbol is.
func RegisterTags(symbols *symtab.Table) (delID, subID, insID int) {
	return symbols.AddSymbol(DeleteTag), symbols.AddSymbol(SubstituteTag), symbols.AddSymbol(InsertTag)
}

// Factors is the pair of edit transducers spec.md §4.5 composes in
// series around a hypothesis/reference pair.
type Factors struct {
	Ei *fst.FST
	Eo *fst.FST
}

// Build constructs E_i and E_o for the given base vocabulary (token ids,
// not including the edit tags or `t#` auxiliary forms). auxOf maps a
// base token id to its registered `t#` id.
//
// bound caps the number of non-match edits an alignment may spend, via a
// counter-state product on E_i (spec.md §4.5); 0 means unbounded. The
// counter only needs to live in E_i: every edit event corresponds to
// exactly one non-zero-cost E_i arc, so bounding those transitions alone
// bounds the composed alignment's total edit count, and E_o can stay a
// single self-looping state.
//
// E_o is not built by inverting and relabeling E_i (the literal reading
// of spec.md §4.5): with asymmetric costs a mechanical invert+relabel
// puts the wrong half-cost on the arc that becomes <DELETE> in E_o (it
// still carries E_i's insert-cost half). Building E_o directly, with its
// own explicit half-costs per edit type, is correct for every cost
// configuration, not only the symmetric default.
func Build(symbols *symtab.Table, vocab []int, auxOf map[int]int, costs Costs, bound int) Factors {
	delID, subID, insID := RegisterTags(symbols)
	halfDel := costs.Delete / 2
	halfSub := costs.Substitute / 2
	halfIns := costs.Insert / 2

	return Factors{
		Ei: buildEi(vocab, delID, subID, insID, halfDel, halfSub, halfIns, bound),
		Eo: buildEo(vocab, auxOf, delID, subID, insID, halfDel, halfSub, halfIns),
	}
}

func buildEi(vocab []int, delID, subID, insID int, halfDel, halfSub, halfIns float64, bound int) *fst.FST {
	f := fst.New()
	if bound <= 0 {
		s := f.Start
		f.SetFinal(s, 0)
		for _, t := range vocab {
			f.AddArc(s, t, t, 0, s)
			f.AddArc(s, t, delID, halfDel, s)
			f.AddArc(s, t, subID, halfSub, s)
		}
		f.AddArc(s, symtab.Epsilon, insID, halfIns, s)
		return f
	}

	states := make([]int, bound+1)
	states[0] = f.Start
	for i := 1; i <= bound; i++ {
		states[i] = f.AddState()
	}
	for i := 0; i <= bound; i++ {
		f.SetFinal(states[i], 0)
		for _, t := range vocab {
			f.AddArc(states[i], t, t, 0, states[i])
			if i < bound {
				f.AddArc(states[i], t, delID, halfDel, states[i+1])
				f.AddArc(states[i], t, subID, halfSub, states[i+1])
			}
		}
		if i < bound {
			f.AddArc(states[i], symtab.Epsilon, insID, halfIns, states[i+1])
		}
	}
	return f
}

func buildEo(vocab []int, auxOf map[int]int, delID, subID, insID int, halfDel, halfSub, halfIns float64) *fst.FST {
	f := fst.New()
	s := f.Start
	f.SetFinal(s, 0)
	for _, t := range vocab {
		f.AddArc(s, t, t, 0, s)
		f.AddArc(s, subID, t, halfSub, s)
		f.AddArc(s, insID, t, halfIns, s)
		if aux, ok := auxOf[t]; ok {
			f.AddArc(s, t, aux, 0, s)
		}
	}
	f.AddArc(s, delID, symtab.Epsilon, halfDel, s)
	return f
}
