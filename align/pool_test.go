package align

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignAllPreservesJobOrderAcrossWorkers(t *testing.T) {
	assert := assert.New(t)
	aligner, _, _ := buildAligner(t, "A B", "A B", "")

	jobs := []Job{
		{UID: "u1", RefTokens: []string{"A"}, HypTokens: []string{"A"}},
		{UID: "u2", RefTokens: []string{"A"}, HypTokens: []string{"B"}},
		{UID: "u3", RefTokens: []string{"B"}, HypTokens: []string{"A"}},
	}

	results, err := AlignAll(context.Background(), aligner, jobs, 4)
	assert.NoError(err)
	assert.Len(results, 3)
	assert.Equal(0, results[0].S)
	assert.Equal(1, results[1].S)
	assert.Equal(1, results[2].S)
}

func TestAlignAllDefaultsToSingleWorker(t *testing.T) {
	aligner, ref, hyp := buildAligner(t, "A B", "A B", "")
	jobs := []Job{{UID: "u1", RefTokens: ref, HypTokens: hyp}}

	results, err := AlignAll(context.Background(), aligner, jobs, 0)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 2, results[0].C)
}
