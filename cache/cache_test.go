package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KorAP/asr-score/edit"
	"github.com/KorAP/asr-score/glm"
	"github.com/KorAP/asr-score/symtab"
	"github.com/KorAP/asr-score/token"
)

func TestSaveLoadRoundTripsArtifact(t *testing.T) {
	assert := assert.New(t)
	symbols := symtab.New()
	vocab := []string{"HEY", "THERE"}
	for _, tok := range vocab {
		symbols.AddSymbol(tok)
		symbols.AddSymbol(symtab.AuxSymbol(tok))
	}

	table, err := glm.LoadCSV(strings.NewReader("I'M, I AM\n"))
	assert.NoError(err)

	artifact := Build(symbols, vocab, table, token.Whitespace)

	dir := t.TempDir()
	path := filepath.Join(dir, "run.cache")
	assert.NoError(Save(path, artifact))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.Equal(artifact.Symbols, loaded.Symbols)
	assert.Equal(artifact.Vocab, loaded.Vocab)
	assert.Equal(artifact.Rules, loaded.Rules)
	assert.Equal(artifact.Mode, loaded.Mode)

	restoredSymbols, baseIDs, auxOf, restoredTable, mode := loaded.Restore()
	assert.Equal(token.Whitespace, mode)
	id, ok := restoredSymbols.ID("HEY")
	assert.True(ok)
	assert.NotZero(id)
	assert.Len(baseIDs, 2)
	assert.Contains(auxOf, baseIDs[0])
	assert.Equal(1, restoredTable.Len())
}

func TestKeyChangesWithInputContent(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.txt")
	assert.NoError(os.WriteFile(refPath, []byte("u1 HEY\n"), 0o644))

	k1, err := Key(dir, refPath, "", "", token.Whitespace, edit.DefaultCosts(), 0)
	assert.NoError(err)

	assert.NoError(os.WriteFile(refPath, []byte("u1 HEY THERE\n"), 0o644))
	k2, err := Key(dir, refPath, "", "", token.Whitespace, edit.DefaultCosts(), 0)
	assert.NoError(err)

	assert.NotEqual(k1, k2)
}
