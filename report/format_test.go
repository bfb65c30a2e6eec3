package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KorAP/asr-score/align"
)

func TestFormatAlignmentColumnsFitWidths(t *testing.T) {
	assert := assert.New(t)
	edits := []align.Edit{
		{Tag: align.Correct, RefSurface: "HEY", HypSurface: "HEY"},
		{Tag: align.Substitute, RefSurface: "AM", HypSurface: "IS"},
		{Tag: align.Insert, RefSurface: "*", HypSurface: "REALLY"},
		{Tag: align.Delete, RefSurface: "HERE", HypSurface: "*"},
	}
	lines := FormatAlignment("HEY IS REALLY", edits)
	assert.Len(lines, 4)
	assert.Equal("HEY IS REALLY", lines[0])

	for _, line := range lines[1:] {
		assert.NotEmpty(line)
	}
}

func TestDisplayWidthCountsCJKAsTwo(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1, displayWidth("*"))
	assert.Equal(1, displayWidth("A"))
	assert.Equal(4, displayWidth("你好"))
}

func TestFormatAlignmentEmptyLabelForCorrect(t *testing.T) {
	edits := []align.Edit{{Tag: align.Correct, RefSurface: "A", HypSurface: "A"}}
	lines := FormatAlignment("A", edits)
	assert.NotContains(t, lines[3], "C")
}
