// Package symtab implements the bijective string<->integer symbol table
// shared by every compiled artifact in the aligner: the tokenizer's
// vocabulary, the GLM rule tags and the edit transducer's alphabet all
// live in one table so that composed FSTs agree on label ids.
package symtab

import "fmt"

// Epsilon is always symbol id 0.
const Epsilon = 0

const epsilonSymbol = "<epsilon>"

// Table is a bijective mapping between token strings and dense
// non-negative integer ids. Id 0 is always <epsilon>. AddSymbol is
// idempotent: adding an existing string returns its existing id.
type Table struct {
	toID  map[string]int
	toStr []string
}

// New creates a table with only <epsilon> registered at id 0.
func New() *Table {
	t := &Table{
		toID:  make(map[string]int),
		toStr: make([]string, 0, 64),
	}
	t.toStr = append(t.toStr, epsilonSymbol)
	t.toID[epsilonSymbol] = Epsilon
	return t
}

// AddSymbol inserts sym if not already present and returns its id.
func (t *Table) AddSymbol(sym string) int {
	if id, ok := t.toID[sym]; ok {
		return id
	}
	id := len(t.toStr)
	t.toStr = append(t.toStr, sym)
	t.toID[sym] = id
	return id
}

// ID returns the id of sym and whether it is registered.
func (t *Table) ID(sym string) (int, bool) {
	id, ok := t.toID[sym]
	return id, ok
}

// MustID returns the id of sym, panicking if it is unregistered.
// Used at FST-construction time, where an unknown symbol indicates a
// vocabulary bug that must fail loudly (spec.md §7).
func (t *Table) MustID(sym string) int {
	id, ok := t.toID[sym]
	if !ok {
		panic(fmt.Sprintf("symtab: unknown symbol %q", sym))
	}
	return id
}

// Symbol returns the string for id, or "" and false if out of range.
func (t *Table) Symbol(id int) (string, bool) {
	if id < 0 || id >= len(t.toStr) {
		return "", false
	}
	return t.toStr[id], true
}

// Size is the number of registered symbols, including <epsilon>.
func (t *Table) Size() int {
	return len(t.toStr)
}

// AuxSymbol is the auxiliary form t# of a base symbol string. It does not
// register anything; callers add it via AddSymbol when needed.
func AuxSymbol(base string) string {
	return base + "#"
}

// RuleTag formats a GLM rule id as <RULE_######> per spec.md §3.
func RuleTag(index int) string {
	return fmt.Sprintf("<RULE_%06d>", index)
}
