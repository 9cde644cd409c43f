//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/e-gun/nlp"
	"github.com/e-gun/sparse"
)

var (
	ErrEmptyCorpus     = fmt.Errorf("%w: empty corpus: there are no documents to model", vv.ErrData)
	ErrEmptyVocabulary = fmt.Errorf("%w: empty vocabulary: no term survived pruning; perhaps the documents are too few", vv.ErrData)
)

// CountVectoriser - bag of words counts with a document frequency floor and a vocabulary ceiling
type CountVectoriser struct {
	MinDF       int
	MaxFeatures int
	Tokeniser   nlp.Tokeniser
	Vocabulary  map[string]int
	Terms       []string // Terms[Vocabulary[t]] == t; in alphabetical order
}

func NewCountVectoriser(mindf int, maxfeatures int, stops map[string]struct{}) *CountVectoriser {
	sw := make(map[string]bool, len(stops))
	for s := range stops {
		sw[s] = true
	}
	return &CountVectoriser{
		MinDF:       mindf,
		MaxFeatures: maxfeatures,
		Tokeniser: &nlp.RegExpTokeniser{
			RegExp:    regexp.MustCompile(vv.VECTOKENPATTRN),
			StopWords: sw,
		},
	}
}

// Tokenise - lowercase, find every match of the token pattern, drop the stopwords
func (v *CountVectoriser) Tokenise(doc string) []string {
	return v.Tokeniser.Tokenise(doc)
}

// FitTransform - learn the vocabulary from docs and return the terms x documents count matrix
func (v *CountVectoriser) FitTransform(docs []string) (*sparse.CSR, error) {
	const (
		FAIL = "%w: the vectoriser returned a %T"
	)

	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	df := make(map[string]int)
	tf := make(map[string]int)

	for _, d := range docs {
		seen := make(map[string]struct{})
		v.Tokeniser.ForEachIn(d, func(t string) {
			tf[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		})
	}

	// the floor goes first and only then the ceiling, which keeps the most frequent survivors
	for t, n := range df {
		if n < v.MinDF {
			delete(tf, t)
		}
	}

	if len(tf) == 0 {
		return nil, ErrEmptyVocabulary
	}

	kept := gen.TopNByValue(tf, v.MaxFeatures)
	slices.Sort(kept)

	v.Terms = kept
	v.Vocabulary = make(map[string]int, len(kept))
	for i, t := range kept {
		v.Vocabulary[t] = i
	}

	cv := nlp.CountVectoriser{Vocabulary: v.Vocabulary, Tokeniser: v.Tokeniser}
	counts, err := cv.Transform(docs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vv.ErrData, err)
	}

	nz, ok := counts.(interface {
		DoNonZero(fn func(i, j int, v float64))
	})
	if !ok {
		return nil, fmt.Errorf(FAIL, vv.ErrData, counts)
	}

	// the counts arrive in map order; the online LDA visits them in storage order and a seed only
	// repeats itself if that order is fixed: document by document and then term by term
	var cells []cell
	nz.DoNonZero(func(i, j int, n float64) {
		cells = append(cells, cell{term: i, doc: j, n: n})
	})
	slices.SortFunc(cells, func(a, b cell) int {
		if c := cmp.Compare(a.doc, b.doc); c != 0 {
			return c
		}
		return cmp.Compare(a.term, b.term)
	})

	rows := make([]int, len(cells))
	cols := make([]int, len(cells))
	vals := make([]float64, len(cells))
	for k, c := range cells {
		rows[k], cols[k], vals[k] = c.term, c.doc, c.n
	}
	return sparse.NewCOO(len(v.Terms), len(docs), rows, cols, vals).ToCSR(), nil
}

type cell struct {
	term int
	doc  int
	n    float64
}
