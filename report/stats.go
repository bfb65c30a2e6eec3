// Package report accumulates edit statistics across utterances and
// renders the pretty-printed alignment and Kaldi-style summary of
// spec.md §4.7-4.8.
package report

import (
	"errors"

	"github.com/KorAP/asr-score/align"
)

// ErrZeroRefLength is spec.md §4.8's fatal condition: TER's denominator
// is the reference length, which must not be zero at corpus level.
var ErrZeroRefLength = errors.New("report: token error rate undefined for zero reference length")

// ErrNoEvaluatedUtterances is spec.md §4.8's fatal condition for SER.
var ErrNoEvaluatedUtterances = errors.New("report: sentence error rate undefined with no evaluated utterances")

// Stats is the corpus-level ErrorStats of spec.md §3.
type Stats struct {
	NumRefUtts       int
	NumHypUtts       int
	NumEvalUtts      int
	NumHypWithoutRef int
	C, S, I, D       int
	NumUttsWithError int
}

// Add folds one utterance's alignment result into the running totals.
func (s *Stats) Add(res align.Result) {
	s.NumEvalUtts++
	s.C += res.C
	s.S += res.S
	s.I += res.I
	s.D += res.D
	if res.HasError() {
		s.NumUttsWithError++
	}
}

// TER is spec.md §4.8's token error rate, as a percentage.
func (s Stats) TER() (float64, error) {
	refLen := s.C + s.S + s.D
	if refLen == 0 {
		return 0, ErrZeroRefLength
	}
	return 100 * float64(s.S+s.D+s.I) / float64(refLen), nil
}

// ModifiedTER is spec.md §4.8's length-normalized mTER, as a percentage.
func (s Stats) ModifiedTER() (float64, error) {
	refLen := s.C + s.S + s.D
	hypLen := s.C + s.S + s.I
	denom := refLen
	if hypLen > denom {
		denom = hypLen
	}
	if denom == 0 {
		return 0, ErrZeroRefLength
	}
	return 100 * float64(s.S+s.D+s.I) / float64(denom), nil
}

// SER is spec.md §4.8's sentence error rate, as a percentage.
func (s Stats) SER() (float64, error) {
	if s.NumEvalUtts == 0 {
		return 0, ErrNoEvaluatedUtterances
	}
	return 100 * float64(s.NumUttsWithError) / float64(s.NumEvalUtts), nil
}
