package report

import (
	"strings"

	"github.com/KorAP/asr-score/align"
)

// displayWidth returns the terminal column width of s, per spec.md
// §4.7: a CJK codepoint (U+4E00-U+9FA5) counts as 2, everything else as
// 1.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FA5 {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func editLabel(tag align.Tag) string {
	switch tag {
	case align.Substitute:
		return "S"
	case align.Insert:
		return "I"
	case align.Delete:
		return "D"
	default:
		return ""
	}
}

// FormatAlignment renders the four-line block of spec.md §4.7: the raw
// hypothesis string, then the column-aligned HYP#/REF/EDIT tracks.
func FormatAlignment(rawHyp string, edits []align.Edit) []string {
	hyp := make([]string, len(edits))
	ref := make([]string, len(edits))
	lbl := make([]string, len(edits))
	widths := make([]int, len(edits))

	for i, e := range edits {
		hyp[i] = e.HypSurface
		ref[i] = e.RefSurface
		lbl[i] = editLabel(e.Tag)

		w := displayWidth(hyp[i])
		if rw := displayWidth(ref[i]); rw > w {
			w = rw
		}
		if lw := displayWidth(lbl[i]); lw > w {
			w = lw
		}
		widths[i] = w + 1
	}

	var hypLine, refLine, editLine strings.Builder
	for i := range edits {
		writeCell(&hypLine, hyp[i], widths[i])
		writeCell(&refLine, ref[i], widths[i])
		writeCell(&editLine, lbl[i], widths[i])
	}

	return []string{
		rawHyp,
		"HYP# " + hypLine.String(),
		"REF  " + refLine.String(),
		"EDIT " + editLine.String(),
	}
}

func writeCell(b *strings.Builder, s string, width int) {
	b.WriteString(s)
	for pad := width - displayWidth(s); pad > 0; pad-- {
		b.WriteByte(' ')
	}
}
