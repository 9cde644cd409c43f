//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/e-gun/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// syntheticModel - 3 topics over 4 terms and 4 documents; topic 2 (0-based) owns most of the text
func syntheticModel() *TopicModel {
	terms := []string{"alpha", "beta", "gamma", "delta"}
	counts := [][]float64{ // terms x docs
		{5, 0, 1, 0},
		{1, 4, 0, 0},
		{0, 1, 6, 8},
		{0, 0, 2, 3},
	}
	dok := sparse.NewDOK(4, 4)
	for i := range counts {
		for j, v := range counts[i] {
			if v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	topicsOverWords := mat.NewDense(3, 4, []float64{
		0.70, 0.20, 0.05, 0.05,
		0.10, 0.80, 0.05, 0.05,
		0.02, 0.03, 0.65, 0.30,
	})
	docsOverTopics := mat.NewDense(3, 4, []float64{
		0.8, 0.1, 0.1, 0.0,
		0.1, 0.8, 0.1, 0.1,
		0.1, 0.1, 0.8, 0.9,
	})
	return &TopicModel{K: 3, Terms: terms, DocTerm: dok.ToCSR(), DocsOverTopics: docsOverTopics, TopicsOverWords: topicsOverWords}
}

func TestPrepareVisOrdersTopicsBySize(t *testing.T) {
	o := DefaultVisOptions()
	o.MDS = MDSPCOA
	vd, err := PrepareVis(syntheticModel(), o)
	require.NoError(t, err)

	require.Len(t, vd.MDS, 3)
	assert.Equal(t, 3, vd.TopicOrder[0], "the third topic is the biggest")
	assert.ElementsMatch(t, []int{1, 2, 3}, vd.TopicOrder)

	sum := 0.0
	for i, c := range vd.MDS {
		assert.Equal(t, i+1, c.Topic)
		sum += c.Freq
		if i > 0 {
			assert.GreaterOrEqual(t, vd.MDS[i-1].Freq, c.Freq)
		}
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.Equal(t, 4, vd.R, "R is capped at the vocabulary size")
}

func TestPrepareVisTables(t *testing.T) {
	o := DefaultVisOptions()
	o.MDS = MDSPCOA
	vd, err := PrepareVis(syntheticModel(), o)
	require.NoError(t, err)

	cats := map[string]int{}
	for _, ti := range vd.TopicInfo {
		cats[ti.Category]++
		assert.False(t, math.IsInf(ti.LogProb, 0) || math.IsNaN(ti.LogProb))
		assert.False(t, math.IsInf(ti.LogLift, 0) || math.IsNaN(ti.LogLift))
	}
	assert.Equal(t, 4, cats[CATDEFAULT])
	assert.Equal(t, 4, cats["Topic1"])

	// every term's shares across topics add up to one
	share := map[string]float64{}
	for _, te := range vd.TokenTable {
		share[te.Term] += te.Freq
	}
	for term, s := range share {
		assert.InDelta(t, 1, s, 1e-9, term)
	}

	// at lambda = 1 relevance is just p(w|t): the biggest topic's best term is gamma
	top := vd.TopTerms(1, 1, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "gamma", top[0].Term)
	assert.Equal(t, "delta", top[1].Term)
	assert.Len(t, vd.TopTerms(0, 0.6, 10), 4)

	js, err := json.Marshal(vd)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"mdsDat"`)
	assert.Contains(t, string(js), `"token.table"`)
}

func TestPrepareVisUnknownLayout(t *testing.T) {
	_, err := PrepareVis(syntheticModel(), VisOptions{MDS: "umap", R: 30, LambdaStep: 0.01})
	assert.Error(t, err)
}

func TestJensenShannon(t *testing.T) {
	p := []float64{0.5, 0.5, 0}
	q := []float64{0, 0, 1}
	assert.InDelta(t, 0, JensenShannon(p, p), 1e-12)
	assert.InDelta(t, math.Ln2, JensenShannon(p, q), 1e-12)
	assert.InDelta(t, JensenShannon(p, []float64{1, 2, 3}), JensenShannon([]float64{1, 2, 3}, p), 1e-12)
	// unnormalized input is normalized first
	assert.InDelta(t, 0, JensenShannon([]float64{1, 1}, []float64{3, 3}), 1e-12)
}

func TestPCoARecoversLineDistances(t *testing.T) {
	xs := []float64{0, 1, 3, 7}
	n := len(xs)
	dm := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dm.SetSym(i, j, math.Abs(xs[i]-xs[j]))
		}
	}
	coords, err := PCoA(dm)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := math.Hypot(coords[i][0]-coords[j][0], coords[i][1]-coords[j][1])
			assert.InDelta(t, dm.At(i, j), d, 1e-6)
		}
	}
}

func TestTSNELayoutIsFinite(t *testing.T) {
	rows := [][]float64{
		{0.7, 0.1, 0.1, 0.1},
		{0.1, 0.7, 0.1, 0.1},
		{0.1, 0.1, 0.7, 0.1},
		{0.1, 0.1, 0.1, 0.7},
		{0.25, 0.25, 0.25, 0.25},
	}
	coords, err := topicCoordinates(rows, MDSTSNE, vv.LDASEED)
	require.NoError(t, err)
	require.Len(t, coords, 5)
	for _, c := range coords {
		assert.False(t, math.IsNaN(c[0]) || math.IsNaN(c[1]))
	}

	again, err := topicCoordinates(rows, MDSTSNE, vv.LDASEED)
	require.NoError(t, err)
	assert.Equal(t, coords, again, "same seed, same layout")

	pc, err := topicCoordinates(rows, MDSPCOA, 0)
	require.NoError(t, err)
	pcagain, err := topicCoordinates(rows, MDSPCOA, 1)
	require.NoError(t, err)
	assert.Equal(t, pc, pcagain, "pcoa has no randomness in it")
}

func TestRelevance(t *testing.T) {
	assert.Equal(t, -1.0, Relevance(-1, 5, 1))
	assert.Equal(t, 5.0, Relevance(-1, 5, 0))
	assert.InDelta(t, 2.0, Relevance(-1, 5, 0.5), 1e-12)
}
