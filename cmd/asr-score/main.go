// Command asr-score scores an ASR hypothesis file against a reference
// file, per spec.md §6's command-line surface. This is the only package
// allowed to call os.Exit; every other package returns errors.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/KorAP/asr-score/align"
	"github.com/KorAP/asr-score/cache"
	"github.com/KorAP/asr-score/config"
	"github.com/KorAP/asr-score/corpus"
	"github.com/KorAP/asr-score/edit"
	"github.com/KorAP/asr-score/glm"
	"github.com/KorAP/asr-score/report"
	"github.com/KorAP/asr-score/symtab"
	"github.com/KorAP/asr-score/token"
)

func main() {
	cli, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.InitLogger(cli)

	if err := run(cli); err != nil {
		log.Error().Err(err).Msg("asr-score: fatal")
		os.Exit(1)
	}
}

// runArtifacts is the run-wide, read-only state shared across every
// utterance (spec.md §5).
type runArtifacts struct {
	symbols *symtab.Table
	table   *glm.Table
	mode    token.Mode
	aligner *align.Aligner
}

func run(cli *config.CLI) error {
	refSet, err := corpus.LoadKaldiFile(cli.Ref)
	if err != nil {
		return err
	}
	hypSet, err := corpus.LoadKaldiFile(cli.Hyp)
	if err != nil {
		return err
	}

	artifacts, err := prepare(cli, refSet, hypSet)
	if err != nil {
		return err
	}

	jobs, stats := selectJobs(refSet, hypSet, artifacts.mode)

	results, err := align.AlignAll(context.Background(), artifacts.aligner, jobs, cli.Workers)
	if err != nil {
		return err
	}

	if err := writeResults(cli, jobs, results, hypSet, &stats); err != nil {
		return err
	}

	return printSummary(stats)
}

// prepare builds (or loads from cache) the symbol table, GLM table and
// compiled tagger/edit-transducer factors, per spec.md §4.1-4.5.
func prepare(cli *config.CLI, refSet, hypSet *corpus.Set) (*runArtifacts, error) {
	mode := cli.TokenMode()

	if cli.CacheDir != "" {
		key, err := cache.Key(cli.CacheDir, cli.Ref, cli.Hyp, cli.GLM, mode, cli.Costs(), cli.Bound)
		if err == nil {
			if artifact, err := cache.Load(key); err == nil {
				log.Debug().Str("key", key).Msg("loaded compiled artifact from cache")
				symbols, baseIDs, auxOf, table, mode := artifact.Restore()
				vocab := artifact.Vocab
				tagger := glm.CompileTagger(symbols, vocab, table)
				factors := edit.Build(symbols, baseIDs, auxOf, cli.Costs(), cli.Bound)
				return &runArtifacts{
					symbols: symbols,
					table:   table,
					mode:    mode,
					aligner: &align.Aligner{Symbols: symbols, Table: table, Tagger: tagger, Factors: factors, Debug: cli.Debug},
				}, nil
			}
		}
	}

	var table *glm.Table
	var err error
	if cli.GLM != "" {
		table, err = glm.LoadCSVFile(cli.GLM)
		if err != nil {
			return nil, err
		}
	} else {
		table = glm.NewTable()
	}

	vocabSets := collectTokenSets(refSet, mode)
	vocabSets = append(vocabSets, collectTokenSets(hypSet, mode)...)
	vocabSets = append(vocabSets, table.Vocabulary(mode)...)
	vocab := token.DeriveVocabulary(vocabSets...)

	symbols := symtab.New()
	baseIDs := make([]int, len(vocab))
	auxOf := make(map[int]int, len(vocab))
	for i, tok := range vocab {
		id := symbols.AddSymbol(tok)
		baseIDs[i] = id
		auxOf[id] = symbols.AddSymbol(symtab.AuxSymbol(tok))
	}
	table.Range(func(rule *glm.Rule) bool {
		symbols.AddSymbol(rule.ID)
		return true
	})

	tagger := glm.CompileTagger(symbols, vocab, table)
	factors := edit.Build(symbols, baseIDs, auxOf, cli.Costs(), cli.Bound)

	if cli.CacheDir != "" {
		if err := os.MkdirAll(cli.CacheDir, 0o755); err == nil {
			if key, err := cache.Key(cli.CacheDir, cli.Ref, cli.Hyp, cli.GLM, mode, cli.Costs(), cli.Bound); err == nil {
				artifact := cache.Build(symbols, vocab, table, mode)
				if err := cache.Save(key, artifact); err != nil {
					log.Warn().Err(err).Msg("failed to persist compiled-artifact cache")
				}
			}
		}
	}

	return &runArtifacts{
		symbols: symbols,
		table:   table,
		mode:    mode,
		aligner: &align.Aligner{Symbols: symbols, Table: table, Tagger: tagger, Factors: factors, Debug: cli.Debug},
	}, nil
}

func collectTokenSets(set *corpus.Set, mode token.Mode) [][]string {
	uids := set.SortedUIDs()
	out := make([][]string, 0, len(uids))
	for _, uid := range uids {
		u, _ := set.Get(uid)
		out = append(out, token.Tokenize(u.Text, mode))
	}
	return out
}

// selectJobs builds the evaluation set in sorted-uid order, applying
// spec.md §7's skip rules: a hyp uid with no reference is counted and
// skipped; an empty reference text is skipped with a warning.
func selectJobs(refSet, hypSet *corpus.Set, mode token.Mode) ([]align.Job, report.Stats) {
	var stats report.Stats
	stats.NumRefUtts = refSet.Len()
	stats.NumHypUtts = hypSet.Len()

	var jobs []align.Job
	for _, uid := range hypSet.SortedUIDs() {
		hypU, _ := hypSet.Get(uid)
		refU, ok := refSet.Get(uid)
		if !ok {
			stats.NumHypWithoutRef++
			log.Warn().Str("uid", uid).Msg("no reference for hypothesis utterance")
			continue
		}
		if refU.Text == "" {
			log.Warn().Str("uid", uid).Msg("empty reference text, skipping")
			continue
		}
		jobs = append(jobs, align.Job{
			UID:       uid,
			RefTokens: token.Tokenize(refU.Text, mode),
			HypTokens: token.Tokenize(hypU.Text, mode),
		})
	}
	return jobs, stats
}

func writeResults(cli *config.CLI, jobs []align.Job, results []align.Result, hypSet *corpus.Set, stats *report.Stats) error {
	out, err := os.Create(cli.ResultFile)
	if err != nil {
		return fmt.Errorf("creating result file %s: %w", cli.ResultFile, err)
	}
	defer out.Close()

	writer := corpus.NewResultWriter(out)
	for i, job := range jobs {
		res := results[i]
		stats.Add(res)

		rec, err := report.NewUtteranceRecord(job.UID, res)
		if err != nil {
			return err
		}
		hypU, _ := hypSet.Get(job.UID)
		pretty := report.FormatAlignment(hypU.Text, res.Edits)
		if err := writer.WriteUtterance(rec, pretty); err != nil {
			return err
		}

		if cli.LogK > 0 && (i+1)%cli.LogK == 0 {
			log.Info().Int("processed", i+1).Int("total", len(jobs)).Msg("progress")
		}
	}
	return writer.WriteSummary(*stats)
}

func printSummary(stats report.Stats) error {
	line, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	fmt.Println(string(line))

	kaldi, err := stats.KaldiSummary()
	if err != nil {
		return err
	}
	fmt.Println(kaldi)
	return nil
}
