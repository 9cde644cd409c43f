//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//
// INTERTOPIC DISTANCE MAP + TERM RELEVANCE (a la LDAvis)
//

const (
	CATDEFAULT = "Default"
	CATTOPIC   = "Topic%d"
	MDSTSNE    = "tsne"
	MDSPCOA    = "pcoa"
	RNDDIGITS  = 4
)

type VisOptions struct {
	MDS        string
	R          int
	LambdaStep float64
	Seed       int64 // for the t-SNE layout
}

func DefaultVisOptions() VisOptions {
	return VisOptions{MDS: vv.LDAVISMDS, R: vv.LDAVISRELTERMS, LambdaStep: vv.LDAVISLAMBDASTP, Seed: vv.LDASEED}
}

// TopicCoord - one circle on the distance map
type TopicCoord struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Topic   int     `json:"topics"`
	Cluster int     `json:"cluster"`
	Freq    float64 `json:"Freq"`
}

// TermInfo - one bar in a topic's bar chart
type TermInfo struct {
	Term     string  `json:"Term"`
	Category string  `json:"Category"`
	Freq     float64 `json:"Freq"`
	Total    float64 `json:"Total"`
	LogProb  float64 `json:"logprob"`
	LogLift  float64 `json:"loglift"`
}

// TokenEntry - the share of a term's occurrences that belong to a topic
type TokenEntry struct {
	Term  string  `json:"Term"`
	Topic int     `json:"Topic"`
	Freq  float64 `json:"Freq"`
}

// VisData - the whole payload; topics are numbered from 1 in order of decreasing size
type VisData struct {
	MDS        []TopicCoord `json:"mdsDat"`
	TopicInfo  []TermInfo   `json:"tinfo"`
	TokenTable []TokenEntry `json:"token.table"`
	R          int          `json:"R"`
	LambdaStep float64      `json:"lambda.step"`
	TopicOrder []int        `json:"topic.order"`
	MDSMethod  string       `json:"mds.method"`
}

// PrepareVis - turn a fitted model into the inter-topic map and the relevance tables
func PrepareVis(tm *TopicModel, o VisOptions) (*VisData, error) {
	start := time.Now()

	k, w := tm.TopicsOverWords.Dims()
	kd, d := tm.DocsOverTopics.Dims()
	if k == 0 || w == 0 || d == 0 || kd != k {
		return nil, fmt.Errorf("%w: degenerate model (%d topics, %d terms, %d documents)", vv.ErrData, k, w, d)
	}

	r := min(o.R, w)

	// phi[t][w]: p(w|t)
	phi := make([][]float64, k)
	for t := 0; t < k; t++ {
		phi[t] = make([]float64, w)
		mat.Row(phi[t], t, tm.TopicsOverWords)
		normalize(phi[t])
	}

	// doclen[d] and theta[d][t]: p(t|d)
	doclen := make([]float64, d)
	termsxdocs := tm.DocTerm
	for j := 0; j < d; j++ {
		for i := 0; i < w; i++ {
			doclen[j] += termsxdocs.At(i, j)
		}
	}

	topicfreq := make([]float64, k)
	theta := make([]float64, k)
	for j := 0; j < d; j++ {
		mat.Col(theta, j, tm.DocsOverTopics)
		normalize(theta)
		for t := 0; t < k; t++ {
			topicfreq[t] += theta[t] * doclen[j]
		}
	}

	// biggest topic first
	order := gen.ArgSortDesc(topicfreq)
	sphi := make([][]float64, k)
	sfreq := make([]float64, k)
	for nt, ot := range order {
		sphi[nt] = phi[ot]
		sfreq[nt] = topicfreq[ot]
	}
	totalfreq := floats.Sum(sfreq)
	proportion := make([]float64, k)
	for t := range sfreq {
		if totalfreq > 0 {
			proportion[t] = sfreq[t] / totalfreq
		} else {
			proportion[t] = 1 / float64(k)
		}
	}

	// term_topic_freq[t][w] and the term frequencies implied by the model
	ttf := make([][]float64, k)
	termfreq := make([]float64, w)
	for t := 0; t < k; t++ {
		ttf[t] = make([]float64, w)
		for i := 0; i < w; i++ {
			ttf[t][i] = sphi[t][i] * sfreq[t]
			termfreq[i] += ttf[t][i]
		}
	}

	vd := &VisData{
		R:          r,
		LambdaStep: o.LambdaStep,
		MDSMethod:  o.MDS,
	}
	for _, ot := range order {
		vd.TopicOrder = append(vd.TopicOrder, ot+1)
	}

	coords, err := topicCoordinates(sphi, o.MDS, o.Seed)
	if err != nil {
		return nil, err
	}
	for t := 0; t < k; t++ {
		vd.MDS = append(vd.MDS, TopicCoord{
			X:       coords[t][0],
			Y:       coords[t][1],
			Topic:   t + 1,
			Cluster: 1,
			Freq:    proportion[t] * 100,
		})
	}

	vd.TopicInfo = topicInfo(tm.Terms, sphi, ttf, termfreq, proportion, r, o.LambdaStep)
	vd.TokenTable = tokenTable(tm.Terms, ttf, termfreq, vd.TopicInfo)

	Msg.Timer("V1", "prepared the topic visualization", start, start)
	return vd, nil
}

// topicInfo - the Default bars (most salient terms) plus, for every topic, every term that is in its top R at any lambda
func topicInfo(terms []string, phi [][]float64, ttf [][]float64, termfreq []float64, proportion []float64, r int, step float64) []TermInfo {
	k, w := len(phi), len(terms)

	termtotal := floats.Sum(termfreq)
	termprop := make([]float64, w)
	for i := range termfreq {
		termprop[i] = safediv(termfreq[i], termtotal)
	}

	// saliency = p(w) * sum_t p(t|w) log(p(t|w)/p(t))
	saliency := make([]float64, w)
	for i := 0; i < w; i++ {
		colsum := 0.0
		for t := 0; t < k; t++ {
			colsum += phi[t][i]
		}
		dist := 0.0
		for t := 0; t < k; t++ {
			pt := safediv(phi[t][i], colsum)
			if pt > 0 && proportion[t] > 0 {
				dist += pt * math.Log(pt/proportion[t])
			}
		}
		saliency[i] = termprop[i] * dist
	}

	var info []TermInfo
	for rank, i := range gen.ArgSortDesc(saliency)[:r] {
		info = append(info, TermInfo{
			Term:     terms[i],
			Category: CATDEFAULT,
			Freq:     termfreq[i],
			Total:    termfreq[i],
			LogProb:  float64(r - rank),
			LogLift:  float64(r - rank),
		})
	}

	logphi := make([][]float64, k)
	loglift := make([][]float64, k)
	for t := 0; t < k; t++ {
		logphi[t] = make([]float64, w)
		loglift[t] = make([]float64, w)
		for i := 0; i < w; i++ {
			logphi[t][i] = safelog(phi[t][i])
			loglift[t][i] = safelog(safediv(phi[t][i], termprop[i]))
		}
	}

	steps := int(math.Round(1/step)) + 1
	for t := 0; t < k; t++ {
		seen := make(map[int]struct{})
		var keep []int
		for s := 0; s < steps; s++ {
			lambda := math.Min(1, float64(s)*step)
			rel := make([]float64, w)
			for i := 0; i < w; i++ {
				rel[i] = Relevance(logphi[t][i], loglift[t][i], lambda)
			}
			for _, i := range gen.ArgSortDesc(rel)[:r] {
				if _, ok := seen[i]; !ok {
					seen[i] = struct{}{}
					keep = append(keep, i)
				}
			}
		}
		for _, i := range keep {
			info = append(info, TermInfo{
				Term:     terms[i],
				Category: fmt.Sprintf(CATTOPIC, t+1),
				Freq:     ttf[t][i],
				Total:    termfreq[i],
				LogProb:  round(logphi[t][i], RNDDIGITS),
				LogLift:  round(loglift[t][i], RNDDIGITS),
			})
		}
	}
	return info
}

// tokenTable - for each term on display, the share of it that every topic claims
func tokenTable(terms []string, ttf [][]float64, termfreq []float64, info []TermInfo) []TokenEntry {
	idx := make(map[string]int, len(terms))
	for i, t := range terms {
		idx[t] = i
	}

	seen := make(map[string]struct{})
	var shown []string
	for _, ti := range info {
		if _, ok := seen[ti.Term]; !ok {
			seen[ti.Term] = struct{}{}
			shown = append(shown, ti.Term)
		}
	}
	slices.Sort(shown)

	var tt []TokenEntry
	for _, term := range shown {
		i := idx[term]
		for t := range ttf {
			if ttf[t][i] <= 0 || termfreq[i] <= 0 {
				continue
			}
			tt = append(tt, TokenEntry{Term: term, Topic: t + 1, Freq: ttf[t][i] / termfreq[i]})
		}
	}
	return tt
}

// Relevance - lambda*log p(w|t) + (1-lambda)*log lift
func Relevance(logprob float64, loglift float64, lambda float64) float64 {
	return lambda*logprob + (1-lambda)*loglift
}

// TopTerms - the n most relevant terms of a topic (1-based) at lambda; topic 0 means the Default view
func (vd *VisData) TopTerms(topic int, lambda float64, n int) []TermInfo {
	var sel []TermInfo
	cat := CATDEFAULT
	if topic > 0 {
		cat = fmt.Sprintf(CATTOPIC, topic)
	}
	for _, ti := range vd.TopicInfo {
		if ti.Category == cat {
			sel = append(sel, ti)
		}
	}

	// the Default rows are already in order of saliency
	if topic > 0 {
		slices.SortStableFunc(sel, func(a, b TermInfo) int {
			return cmp.Compare(Relevance(b.LogProb, b.LogLift, lambda), Relevance(a.LogProb, a.LogLift, lambda))
		})
	}
	if n < len(sel) {
		sel = sel[:n]
	}
	return sel
}

//
// DISTANCES AND LAYOUT
//

// JensenShannon - the divergence between two distributions (each normalized first)
func JensenShannon(p []float64, q []float64) float64 {
	pp := append([]float64{}, p...)
	qq := append([]float64{}, q...)
	normalize(pp)
	normalize(qq)
	m := make([]float64, len(pp))
	for i := range pp {
		m[i] = 0.5 * (pp[i] + qq[i])
	}
	return 0.5 * (kl(pp, m) + kl(qq, m))
}

func kl(p []float64, q []float64) float64 {
	s := 0.0
	for i := range p {
		if p[i] > 0 && q[i] > 0 {
			s += p[i] * math.Log(p[i]/q[i])
		}
	}
	return s
}

// DistanceMatrix - pairwise Jensen-Shannon divergence between the rows
func DistanceMatrix(rows [][]float64) *mat.SymDense {
	n := len(rows)
	dm := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dm.SetSym(i, j, JensenShannon(rows[i], rows[j]))
		}
	}
	return dm
}

// topicCoordinates - lay the topics out in 2d
func topicCoordinates(phi [][]float64, method string, seed int64) ([][2]float64, error) {
	dm := DistanceMatrix(phi)
	switch method {
	case MDSPCOA:
		return PCoA(dm)
	case MDSTSNE, "":
		// t-SNE needs a few points before it means anything
		if len(phi) < 4 {
			return PCoA(dm)
		}
		return TSNE(dm, seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown layout '%s'", vv.ErrUsage, method)
	}
}

// go-tsne draws its starting layout from the global math/rand source
var tsnelock sync.Mutex

// TSNE - embed a precomputed distance matrix; the same seed gives the same layout
func TSNE(dm *mat.SymDense, seed int64) [][2]float64 {
	const (
		VERBOSE = false
	)
	n, _ := dm.Dims()
	// perplexity has to stay well under the number of points
	perplex := math.Min(vv.TSNEPERPLEX, math.Max(1, float64(n-1)/3))
	t := tsne.NewTSNE(2, perplex, vv.TSNELEARNRT, vv.TSNEMAXITER, VERBOSE)

	tsnelock.Lock()
	rand.Seed(seed)
	y := t.EmbedDistances(dm, nil)
	tsnelock.Unlock()

	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		out[i] = [2]float64{y.At(i, 0), y.At(i, 1)}
	}
	return out
}

// PCoA - classical multidimensional scaling of a distance matrix onto its two leading axes
func PCoA(dm *mat.SymDense) ([][2]float64, error) {
	n, _ := dm.Dims()
	out := make([][2]float64, n)
	if n < 2 {
		return out, nil
	}

	// B = -1/2 H D^2 H with H the centering matrix
	sq := mat.NewDense(n, n, nil)
	sq.Apply(func(i, j int, v float64) float64 { return v * v }, dm)
	h := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -1 / float64(n)
			if i == j {
				v += 1
			}
			h.Set(i, j, v)
		}
	}
	var hd, b mat.Dense
	hd.Mul(h, sq)
	b.Mul(&hd, h)
	b.Scale(-0.5, &b)

	bs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			bs.SetSym(i, j, 0.5*(b.At(i, j)+b.At(j, i)))
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(bs, true); !ok {
		return nil, fmt.Errorf("%w: eigendecomposition failed", vv.ErrData)
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// EigenSym returns ascending values: the two leading axes are at the end
	for axis := 0; axis < 2 && axis < n; axis++ {
		c := n - 1 - axis
		ev := vals[c]
		if ev < 1e-12 {
			ev = 0
		}
		for i := 0; i < n; i++ {
			out[i][axis] = math.Sqrt(ev) * vecs.At(i, c)
		}
	}
	return out, nil
}

//
// SMALL HELPERS
//

func normalize(fl []float64) {
	s := floats.Sum(fl)
	if s <= 0 {
		return
	}
	floats.Scale(1/s, fl)
}

func safediv(a float64, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// safelog - json cannot carry -Inf: a zero probability gets a very small one instead
func safelog(f float64) float64 {
	const (
		FLOOR = 1e-12
	)
	return math.Log(math.Max(f, FLOOR))
}

func round(f float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(f*p) / p
}
