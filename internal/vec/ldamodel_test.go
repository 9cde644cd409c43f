//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func toyCorpus() []string {
	var docs []string
	for i := 0; i < 8; i++ {
		docs = append(docs,
			"rocket launch orbit rocket satellite orbit",
			"election ballot senate vote ballot election",
			"rocket orbit satellite launch crew",
			"senate vote election campaign ballot",
		)
	}
	return docs
}

func TestBuildTopicModelShapes(t *testing.T) {
	o := ModelOptions{Topics: 2, MinDF: 3, MaxFeatures: 5000, Seed: 20, Iterations: 5, Processes: 1, Stops: StopSet(STOPSVECTORISER)}
	tm, err := BuildTopicModel(toyCorpus(), o)
	require.NoError(t, err)

	docs, terms := tm.Dims()
	assert.Equal(t, 32, docs)
	assert.Equal(t, len(tm.Terms), terms)
	assert.Contains(t, tm.Terms, "rocket")

	k, d := tm.DocsOverTopics.Dims()
	assert.Equal(t, 2, k)
	assert.Equal(t, 32, d)
	k, w := tm.TopicsOverWords.Dims()
	assert.Equal(t, 2, k)
	assert.Equal(t, terms, w)

	var b bytes.Buffer
	require.NoError(t, DisplayTopics(&b, tm, tm.Terms, 3))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Topic 0:", lines[0])
	assert.Len(t, strings.Fields(lines[1]), 3)
	assert.Equal(t, "Topic 1:", lines[2])

	vd, err := PrepareVis(tm, DefaultVisOptions())
	require.NoError(t, err)
	assert.Len(t, vd.MDS, 2)
}

func TestBuildTopicModelRepeatsWithSeed(t *testing.T) {
	o := ModelOptions{Topics: 3, MinDF: 3, MaxFeatures: 5000, Seed: 20, Iterations: 5, Processes: 1, Stops: StopSet(STOPSVECTORISER)}

	first, err := BuildTopicModel(toyCorpus(), o)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := BuildTopicModel(toyCorpus(), o)
		require.NoError(t, err)
		assert.Equal(t, first.Terms, again.Terms)
		assert.True(t, mat.EqualApprox(first.TopicsOverWords, again.TopicsOverWords, 1e-12), "run %d", i)
	}
}
