package corpus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KorAP/asr-score/align"
	"github.com/KorAP/asr-score/report"
)

func TestResultWriterEmitsJSONLineThenPrettyLines(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	w := NewResultWriter(&buf)

	rec, err := report.NewUtteranceRecord("u1", align.Result{C: 1})
	assert.NoError(err)
	pretty := []string{"A", "HYP# A ", "REF  A ", "EDIT   "}

	assert.NoError(w.WriteUtterance(rec, pretty))

	var stats report.Stats
	stats.Add(align.Result{C: 1})
	assert.NoError(w.WriteSummary(stats))

	out := buf.String()
	assert.True(strings.HasPrefix(out, `{"uid":"u1"`))
	assert.Contains(out, "Overall Statistics")
}
