//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/metrics"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/e-gun/nlp"
	"github.com/e-gun/sparse"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// ModelOptions - the knobs of the vectoriser and of the LDA
type ModelOptions struct {
	Topics      int
	MinDF       int
	MaxFeatures int
	Seed        int
	Iterations  int
	Processes   int
	Stops       map[string]struct{}
}

func ModelOptionsFromConfig(cfg *str.CurrentConfiguration, stops map[string]struct{}) ModelOptions {
	return ModelOptions{
		Topics:      cfg.LdaTopics,
		MinDF:       cfg.VecMinDF,
		MaxFeatures: cfg.VecMaxFeat,
		Seed:        cfg.LdaSeed,
		Iterations:  cfg.LdaIter,
		Processes:   cfg.LdaProcs,
		Stops:       stops,
	}
}

// TopicModel - everything one run learns about a corpus
type TopicModel struct {
	K               int
	Terms           []string
	DocTerm         *sparse.CSR // terms x docs counts
	DocsOverTopics  mat.Matrix  // topics x docs
	TopicsOverWords mat.Matrix  // topics x terms
}

// Dims - (documents, terms): the shape of the document-term matrix
func (tm *TopicModel) Dims() (int, int) {
	r, c := tm.DocTerm.Dims()
	return c, r
}

// BuildTopicModel - clean, vectorise and fit
func BuildTopicModel(texts []string, o ModelOptions) (*TopicModel, error) {
	const (
		MSG1 = "(%d, %d)"
		MSG2 = "LDA: %d topics over %d documents and %d terms"
		FAIL = "%w: failed to model topics for documents: %w"
	)

	start := time.Now()
	previous := time.Now()

	if len(texts) == 0 {
		return nil, ErrEmptyCorpus
	}

	vectoriser := NewCountVectoriser(o.MinDF, o.MaxFeatures, o.Stops)
	dtm, err := vectoriser.FitTransform(CleanAll(texts))
	if err != nil {
		return nil, err
	}

	tm := &TopicModel{K: o.Topics, Terms: vectoriser.Terms, DocTerm: dtm}
	docs, terms := tm.Dims()

	// the shape of the document-term matrix, as sklearn would print it
	Msg.MAND(fmt.Sprintf(MSG1, docs, terms))
	metrics.CorpusDocs.Set(float64(docs))
	metrics.VocabSize.Set(float64(terms))
	Msg.Timer("L1", "vectorised the corpus", start, previous)

	previous = time.Now()
	lda := nlp.NewLatentDirichletAllocation(o.Topics)
	lda.Processes = max(1, o.Processes)
	lda.Iterations = o.Iterations
	lda.TransformationPasses = min(vv.LDAXFORMPASSES, max(1, o.Iterations/2))
	lda.BatchSize = vv.LDABATCHSIZE
	lda.BurnInPasses = vv.LDABURNINPASSES
	lda.Rnd = rand.New(rand.NewSource(uint64(o.Seed)))

	docsOverTopics, err := lda.FitTransform(dtm)
	if err != nil {
		return nil, fmt.Errorf(FAIL, vv.ErrData, err)
	}
	metrics.ObserveSince(metrics.LDAFitSeconds, previous)

	tm.DocsOverTopics = docsOverTopics
	tm.TopicsOverWords = lda.Components()

	Msg.PEEK(fmt.Sprintf(MSG2, o.Topics, docs, terms))
	Msg.Timer("L2", "fitted the LDA model", start, previous)
	return tm, nil
}

// DisplayTopics - "Topic N:" and then its topK heaviest terms
func DisplayTopics(w io.Writer, tm *TopicModel, terms []string, topK int) error {
	k, nt := tm.TopicsOverWords.Dims()
	for t := 0; t < k; t++ {
		row := make([]float64, nt)
		mat.Row(row, t, tm.TopicsOverWords)
		idx := gen.ArgSortDesc(row)
		if topK < len(idx) {
			idx = idx[:topK]
		}
		words := make([]string, len(idx))
		for i, j := range idx {
			words[i] = terms[j]
		}
		if _, err := fmt.Fprintf(w, "Topic %d:\n%s\n", t, strings.Join(words, " ")); err != nil {
			return err
		}
	}
	return nil
}
