// Package cache persists the compiled, run-wide artifacts (symbol table
// and GLM rule table) so a repeated run over unchanged inputs skips
// re-tokenizing and re-deriving the vocabulary. It generalizes the
// gzip-then-binary-encode pattern of the teacher's double-array
// Save/LoadDatokFile to this domain's own artifact shape.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/KorAP/asr-score/edit"
	"github.com/KorAP/asr-score/glm"
	"github.com/KorAP/asr-score/symtab"
	"github.com/KorAP/asr-score/token"
)

// Artifact is the serializable shape of a run's immutable, shared state:
// enough to rebuild the symbol table and GLM table without re-reading
// the original ref/hyp/glm files.
type Artifact struct {
	Symbols []string
	Vocab   []string
	Rules   [][]string
	Mode    string
}

// Build snapshots the current symbol table, base vocabulary and GLM
// table into an Artifact.
func Build(symbols *symtab.Table, vocab []string, table *glm.Table, mode token.Mode) Artifact {
	syms := make([]string, symbols.Size())
	for i := 0; i < symbols.Size(); i++ {
		s, _ := symbols.Symbol(i)
		syms[i] = s
	}

	var rules [][]string
	table.Range(func(rule *glm.Rule) bool {
		rules = append(rules, rule.Phrases)
		return true
	})

	vocabCopy := make([]string, len(vocab))
	copy(vocabCopy, vocab)

	return Artifact{Symbols: syms, Vocab: vocabCopy, Rules: rules, Mode: string(mode)}
}

// Restore rebuilds a symbol table, base vocabulary ids, auxiliary-id map
// and GLM table from a, plus the tokenizer mode it was compiled for.
func (a Artifact) Restore() (symbols *symtab.Table, baseIDs []int, auxOf map[int]int, table *glm.Table, mode token.Mode) {
	symbols = symtab.New()
	for _, s := range a.Symbols[1:] { // [0] is <epsilon>, already registered
		symbols.AddSymbol(s)
	}

	baseIDs = make([]int, len(a.Vocab))
	auxOf = make(map[int]int, len(a.Vocab))
	for i, tok := range a.Vocab {
		id := symbols.MustID(tok)
		baseIDs[i] = id
		auxOf[id] = symbols.MustID(symtab.AuxSymbol(tok))
	}

	table = glm.NewTable()
	for _, phrases := range a.Rules {
		table.Add(phrases)
	}

	return symbols, baseIDs, auxOf, table, token.Mode(a.Mode)
}

// Save gzip-compresses and msgpack-encodes a to path, mirroring the
// teacher's Save: create, wrap in a gzip writer, flush, close.
func Save(path string, a Artifact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cache: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	gz := gzip.NewWriter(f)
	defer func() {
		if cerr := gz.Close(); err == nil {
			err = cerr
		}
	}()

	if err = msgpack.NewEncoder(gz).Encode(a); err != nil {
		return fmt.Errorf("cache: encoding %s: %w", path, err)
	}
	return gz.Flush()
}

// Load reverses Save.
func Load(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("cache: open %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return Artifact{}, fmt.Errorf("cache: %s: %w", path, err)
	}
	defer gz.Close()

	var a Artifact
	if err := msgpack.NewDecoder(gz).Decode(&a); err != nil {
		return Artifact{}, fmt.Errorf("cache: decoding %s: %w", path, err)
	}
	return a, nil
}

// Key derives the cache filename for a given input configuration:
// content hashes of the ref/hyp/glm files plus the tokenizer mode and
// edit costs, so any change to inputs or config invalidates the cache
// automatically.
func Key(cacheDir, refPath, hypPath, glmPath string, mode token.Mode, costs edit.Costs, bound int) (string, error) {
	h := sha256.New()
	for _, p := range []string{refPath, hypPath, glmPath} {
		if err := hashFile(h, p); err != nil {
			return "", err
		}
	}
	fmt.Fprintf(h, "|%s|%g|%g|%g|%d", mode, costs.Insert, costs.Delete, costs.Substitute, bound)
	return filepath.Join(cacheDir, hex.EncodeToString(h.Sum(nil))+".cache"), nil
}

func hashFile(h io.Writer, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cache: hashing %s: %w", path, err)
	}
	defer f.Close()
	_, err = io.Copy(h, f)
	return err
}
