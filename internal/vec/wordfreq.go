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
	"strings"
	"unicode"

	"github.com/e-gun/TweetTopicModeler/internal/vv"
)

var ErrNoWords = fmt.Errorf("%w: need at least 1 word to draw a word cloud", vv.ErrData)

var cloudtokens = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']+`)

// WordWeight - a word, how often it appeared, and its size relative to the most frequent word
type WordWeight struct {
	Word   string
	Count  int
	Weight float64
}

// CloudText - the raw texts glued together with single spaces and then cleaned once
func CloudText(texts []string) string {
	return CleanText(strings.Join(texts, " "))
}

// WordFrequencies - weigh the words of a text the way a word cloud sizes them
func WordFrequencies(text string, stops map[string]struct{}, maxwords int) ([]WordWeight, error) {
	var words []string
	for _, w := range cloudtokens.FindAllString(text, -1) {
		if strings.HasSuffix(strings.ToLower(w), "'s") {
			w = w[:len(w)-2]
		}
		if alldigits(w) {
			continue
		}
		if _, stop := stops[strings.ToLower(w)]; stop {
			continue
		}
		words = append(words, w)
	}

	// lowercase form -> each spelling -> count; firstseen keeps the output order stable
	cases := make(map[string]map[string]int)
	var firstseen []string
	for _, w := range words {
		l := strings.ToLower(w)
		if _, ok := cases[l]; !ok {
			cases[l] = make(map[string]int)
			firstseen = append(firstseen, l)
		}
		cases[l][w]++
	}

	// fold "cats" into "cat" when both occur; but "class" is not a plural
	for _, l := range firstseen {
		if !strings.HasSuffix(l, "s") || strings.HasSuffix(l, "ss") {
			continue
		}
		sing := l[:len(l)-1]
		if _, ok := cases[sing]; !ok {
			continue
		}
		for spelling, n := range cases[l] {
			cases[sing][spelling[:len(spelling)-1]] += n
		}
		delete(cases, l)
	}

	var ww []WordWeight
	for _, l := range firstseen {
		variants, ok := cases[l]
		if !ok {
			continue
		}
		ww = append(ww, WordWeight{Word: commonest(variants), Count: total(variants)})
	}

	if len(ww) == 0 {
		return nil, ErrNoWords
	}

	slices.SortStableFunc(ww, func(a, b WordWeight) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if maxwords > 0 && maxwords < len(ww) {
		ww = ww[:maxwords]
	}

	top := float64(ww[0].Count)
	for i := range ww {
		ww[i].Weight = float64(ww[i].Count) / top
	}
	return ww, nil
}

func alldigits(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return w != ""
}

// commonest - the most frequent spelling; ties go to the alphabetically first
func commonest(variants map[string]int) string {
	best, bn := "", -1
	for s, n := range variants {
		if n > bn || (n == bn && s < best) {
			best, bn = s, n
		}
	}
	return best
}

func total(variants map[string]int) int {
	t := 0
	for _, n := range variants {
		t += n
	}
	return t
}
