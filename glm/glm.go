// Package glm loads the Global Mapping rule table (spec.md §3, §6) and
// compiles it into a tagging transducer (spec.md §4.3).
package glm

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/KorAP/asr-score/symtab"
	"github.com/KorAP/asr-score/token"
)

// Rule is one GLM row: a set of interchangeable surface phrases.
type Rule struct {
	ID      string
	Phrases []string
}

// Table is the GLMTable of spec.md §3: rule_id -> Rule, ordered by
// insertion (file order), since the spec requires rule ids to be
// assigned and iterated in the order they were declared and a bare Go
// map cannot provide that guarantee.
type Table struct {
	rules *orderedmap.OrderedMap
}

// NewTable returns an empty, insertion-ordered GLM table.
func NewTable() *Table {
	return &Table{rules: orderedmap.New()}
}

// Add registers a new rule for the given phrases, assigning it the next
// rule id in file order (spec.md §3: "<RULE_######>", zero-padded,
// assigned in file order).
func (t *Table) Add(phrases []string) *Rule {
	id := symtab.RuleTag(len(t.rules.Keys()))
	rule := &Rule{ID: id, Phrases: phrases}
	t.rules.Set(id, rule)
	return rule
}

// Get looks up a rule by id.
func (t *Table) Get(id string) (*Rule, bool) {
	v, ok := t.rules.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Rule), true
}

// Len is the number of rules.
func (t *Table) Len() int {
	return len(t.rules.Keys())
}

// Range iterates rules in insertion (file) order, stopping early if fn
// returns false.
func (t *Table) Range(fn func(rule *Rule) bool) {
	for _, id := range t.rules.Keys() {
		v, _ := t.rules.Get(id)
		if !fn(v.(*Rule)) {
			return
		}
	}
}

// Clone deep-copies the table so callers may reorder or mutate it (e.g.
// to test spec.md §8 property 3, that row order only changes rule ids,
// not the computed distance) without aliasing the original.
func (t *Table) Clone() *Table {
	out := NewTable()
	t.Range(func(rule *Rule) bool {
		phrases := make([]string, len(rule.Phrases))
		copy(phrases, rule.Phrases)
		out.Add(phrases)
		return true
	})
	return out
}

// LoadCSVFile reads a GLM rule file from disk.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glm: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadCSV parses a GLM CSV: one rule per line, a comma-separated list of
// phrases, each phrase a whitespace-joined token sequence, phrases
// trimmed of surrounding whitespace. No header; rule id assigned by line
// index (spec.md §6).
func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	table := NewTable()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("glm: malformed rule line: %w", err)
		}

		phrases := make([]string, 0, len(record))
		for _, phrase := range record {
			p := strings.TrimSpace(phrase)
			if p != "" {
				phrases = append(phrases, p)
			}
		}
		if len(phrases) == 0 {
			continue
		}
		table.Add(phrases)
	}
	return table, nil
}

// Vocabulary returns every token appearing in any rule phrase, tokenized
// with the given mode, for spec.md §4.2's vocabulary derivation.
func (t *Table) Vocabulary(mode token.Mode) [][]string {
	var out [][]string
	t.Range(func(rule *Rule) bool {
		for _, phrase := range rule.Phrases {
			out = append(out, token.Tokenize(phrase, mode))
		}
		return true
	})
	return out
}
