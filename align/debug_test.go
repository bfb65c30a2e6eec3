package align

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KorAP/asr-score/fst"
)

func TestDumpLatticeIncludesUID(t *testing.T) {
	l := fst.LinearAcceptor([]int{1, 2})
	out := DumpLattice("utt-1", l)
	assert.True(t, strings.Contains(out, "utt-1"))
	assert.True(t, strings.Contains(out, "States"))
}

func TestDumpPathIncludesUID(t *testing.T) {
	p := fst.Path{Weight: 2}
	out := DumpPath("utt-2", p)
	assert.True(t, strings.Contains(out, "utt-2"))
	assert.True(t, strings.Contains(out, "Weight"))
}
