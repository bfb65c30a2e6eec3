package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAppliesDefaults(t *testing.T) {
	assert := assert.New(t)
	cli, err := Parse([]string{"--ref", "ref.txt", "--hyp", "hyp.txt", "out.jsonl"})
	assert.NoError(err)
	assert.Equal("ref.txt", cli.Ref)
	assert.Equal("whitespace", cli.Tokenizer)
	assert.Equal(500, cli.LogK)
	assert.Equal(1.0, cli.InsertCost)
	assert.Equal("out.jsonl", cli.ResultFile)
}

func TestParseRejectsMissingRequiredFlag(t *testing.T) {
	_, err := Parse([]string{"--hyp", "hyp.txt", "out.jsonl"})
	assert.Error(t, err)
}

func TestParseAppliesYAMLConfigAsFallback(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	assert.NoError(os.WriteFile(cfgPath, []byte("bound: 3\nworkers: 8\n"), 0o644))

	cli, err := Parse([]string{"--ref", "ref.txt", "--hyp", "hyp.txt", "--config", cfgPath, "out.jsonl"})
	assert.NoError(err)
	assert.Equal(3, cli.Bound)
	assert.Equal(8, cli.Workers)
}

func TestParseFlagOverridesYAMLConfig(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	assert.NoError(os.WriteFile(cfgPath, []byte("bound: 3\n"), 0o644))

	cli, err := Parse([]string{"--ref", "ref.txt", "--hyp", "hyp.txt", "--config", cfgPath, "--bound", "7", "out.jsonl"})
	assert.NoError(err)
	assert.Equal(7, cli.Bound)
}
