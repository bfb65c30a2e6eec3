// Package config wires the command-line surface of spec.md §6 (kong),
// an optional YAML fallback file (gopkg.in/yaml.v3, via a kong
// resolver) and an optional .env file (joho/godotenv), the way the
// teacher wires its own single required flag through kong.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KorAP/asr-score/edit"
	"github.com/KorAP/asr-score/token"
)

// CLI is the full flag surface of spec.md §6's command line, plus the
// ambient flags (cache, logging, config file) spec.md §6 leaves to the
// external harness but a standalone binary still needs.
type CLI struct {
	Ref            string  `kong:"required,help='Reference Kaldi text file.'"`
	Hyp            string  `kong:"required,help='Hypothesis Kaldi text file.'"`
	GLM            string  `kong:"help='GLM rule CSV file.'"`
	Tokenizer      string  `kong:"default='whitespace',enum='whitespace,char',help='Tokenization mode.'"`
	LogK           int     `kong:"default='500',help='Log progress every N utterances.'"`
	InsertCost     float64 `kong:"default='1.0',help='Per-token insertion cost.'"`
	DeleteCost     float64 `kong:"default='1.0',help='Per-token deletion cost.'"`
	SubstituteCost float64 `kong:"default='1.0',help='Per-token substitution cost.'"`
	Bound          int     `kong:"default='0',help='Cap on non-match edits per utterance; 0 is unbounded.'"`
	Workers        int     `kong:"default='1',help='Concurrent utterance workers.'"`
	CacheDir       string  `kong:"help='Directory for the compiled-artifact cache.'"`
	Config         string  `kong:"help='YAML file supplying fallback values for any of these flags.'"`
	LogFile        string  `kong:"help='Log file path (rotated); default is standard error.'"`
	Debug          bool    `kong:"help='Enable debug-level logging.'"`

	ResultFile string `kong:"arg,help='Path to write the scored result file.'"`
}

// Costs maps the three cost flags onto edit.Costs.
func (c *CLI) Costs() edit.Costs {
	return edit.Costs{Insert: c.InsertCost, Delete: c.DeleteCost, Substitute: c.SubstituteCost}
}

// TokenMode maps the --tokenizer flag onto token.Mode.
func (c *CLI) TokenMode() token.Mode {
	return token.Mode(c.Tokenizer)
}

// Parse loads a .env file (if present) into the process environment,
// parses args against CLI, and applies a --config YAML file's values as
// fallback defaults for any flag not given on the command line. No flag
// takes its value from the environment, so .env entries do not change
// any flag.
func Parse(args []string) (*CLI, error) {
	_ = godotenv.Load() // optional; a missing .env is not an error

	var cli CLI
	opts := []kong.Option{
		kong.Name("asr-score"),
		kong.Description("GLM-aware edit-distance ASR scorer."),
		kong.UsageOnError(),
	}

	if cfgPath := peekConfigFlag(args); cfgPath != "" {
		resolver, err := yamlResolver(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, kong.Resolvers(resolver))
	}

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return nil, fmt.Errorf("config: building parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return &cli, nil
}

// peekConfigFlag extracts --config's value before the real kong.Parse,
// since a resolver must be registered at kong.New time.
func peekConfigFlag(args []string) string {
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
	}
	return ""
}

// yamlResolver builds a kong.Resolver backed by a flat YAML map, so any
// flag absent from the command line falls back to the file's value.
func yamlResolver(path string) (kong.Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := raw[flag.Name]
		if !ok {
			return nil, nil
		}
		return v, nil
	}), nil
}
