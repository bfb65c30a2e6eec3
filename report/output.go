package report

import (
	"fmt"
	"math"

	"github.com/KorAP/asr-score/align"
)

// UtteranceRecord is the per-uid record of spec.md §6's result file. Use
// JSON to render it with the exact field order/names the format
// requires.
type UtteranceRecord struct {
	UID         string
	Score       float64
	TER         float64
	ModifiedTER float64
	Correct     int
	Substitute  int
	Insert      int
	Delete      int
}

// utteranceJSON is UtteranceRecord's wire shape.
type utteranceJSON struct {
	UID         string  `json:"uid"`
	Score       float64 `json:"score"`
	TER         float64 `json:"TER"`
	ModifiedTER float64 `json:"mTER"`
	Correct     int     `json:"cor"`
	Substitute  int     `json:"sub"`
	Insert      int     `json:"ins"`
	Delete      int     `json:"del"`
}

// NewUtteranceRecord builds one utterance's record, applying spec.md
// §4.8's TER/mTER formulas at utterance scope.
func NewUtteranceRecord(uid string, res align.Result) (UtteranceRecord, error) {
	scoped := Stats{C: res.C, S: res.S, I: res.I, D: res.D}
	ter, err := scoped.TER()
	if err != nil {
		return UtteranceRecord{}, err
	}
	mter, err := scoped.ModifiedTER()
	if err != nil {
		return UtteranceRecord{}, err
	}
	return UtteranceRecord{
		UID:         uid,
		Score:       -res.Cost,
		TER:         round2(ter),
		ModifiedTER: round2(mter),
		Correct:     res.C,
		Substitute:  res.S,
		Insert:      res.I,
		Delete:      res.D,
	}, nil
}

// JSON returns the record in the exact field order/names spec.md §6
// requires for the result file's per-uid line.
func (r UtteranceRecord) JSON() any {
	return utteranceJSON{
		UID:         r.UID,
		Score:       r.Score,
		TER:         r.TER,
		ModifiedTER: r.ModifiedTER,
		Correct:     r.Correct,
		Substitute:  r.Substitute,
		Insert:      r.Insert,
		Delete:      r.Delete,
	}
}

// KaldiSummary renders the two-line `%WER … / %SER …` summary spec.md §6
// requires on standard output.
func (s Stats) KaldiSummary() (string, error) {
	ter, err := s.TER()
	if err != nil {
		return "", err
	}
	ser, err := s.SER()
	if err != nil {
		return "", err
	}
	refLen := s.C + s.S + s.D
	line1 := fmt.Sprintf("%%WER %.2f [ %d / %d, %d ins, %d del, %d sub ]", ter, s.S+s.I+s.D, refLen, s.I, s.D, s.S)
	line2 := fmt.Sprintf("%%SER %.2f [ %d / %d ]", ser, s.NumUttsWithError, s.NumEvalUtts)
	return line1 + "\n" + line2, nil
}

// OverallStatisticsBlock renders the human-readable footer spec.md §6
// appends to the result file.
func (s Stats) OverallStatisticsBlock() (string, error) {
	ter, err := s.TER()
	if err != nil {
		return "", err
	}
	mter, err := s.ModifiedTER()
	if err != nil {
		return "", err
	}
	ser, err := s.SER()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Overall Statistics\n"+
			"  utterances: ref=%d hyp=%d evaluated=%d hyp_without_ref=%d with_error=%d\n"+
			"  edits: C=%d S=%d I=%d D=%d\n"+
			"  TER=%.2f mTER=%.2f SER=%.2f\n",
		s.NumRefUtts, s.NumHypUtts, s.NumEvalUtts, s.NumHypWithoutRef, s.NumUttsWithError,
		s.C, s.S, s.I, s.D, ter, mter, ser,
	), nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
