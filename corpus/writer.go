package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/KorAP/asr-score/report"
)

// ResultWriter renders spec.md §6's result file: one JSON line per uid,
// followed by its four pretty-print lines, and a trailing human-readable
// statistics block.
type ResultWriter struct {
	w *bufio.Writer
}

// NewResultWriter wraps w.
func NewResultWriter(w io.Writer) *ResultWriter {
	return &ResultWriter{w: bufio.NewWriter(w)}
}

// WriteUtterance appends one uid's record and pretty-print block.
func (rw *ResultWriter) WriteUtterance(rec report.UtteranceRecord, prettyLines []string) error {
	line, err := json.Marshal(rec.JSON())
	if err != nil {
		return fmt.Errorf("corpus: marshaling result for uid %q: %w", rec.UID, err)
	}
	if _, err := rw.w.Write(line); err != nil {
		return err
	}
	if err := rw.w.WriteByte('\n'); err != nil {
		return err
	}
	for _, l := range prettyLines {
		if _, err := fmt.Fprintln(rw.w, l); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary appends the trailing "Overall Statistics" block and
// flushes the writer.
func (rw *ResultWriter) WriteSummary(stats report.Stats) error {
	block, err := stats.OverallStatisticsBlock()
	if err != nil {
		return err
	}
	if _, err := rw.w.WriteString(block); err != nil {
		return err
	}
	return rw.w.Flush()
}
