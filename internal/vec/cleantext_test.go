//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

var awkward = []string{
	"",
	"!!!???...",
	"[redacted] Visit https://x.co NOW!! item123",
	"RT @user: Check [this] out https://t.co/abc123 &amp; more",
	"It’s great â€™s Trumpâ€™s",
	"aampmp â€™amps example champion",
	"Ünïcödé ΣΊΣΥΦΟΣ 東京 ٣٤abc x²",
	"[unclosed bracket and ]stray] brackets [[nested]]",
	"tabs\tand\nnewlines [across\nlines]",
	"under_score_9 _9_ 9_ 2020",
}

func randomStrings(n int) []string {
	const (
		ALPHABET = "abcAMP[]()9 1_'!.#@&â€™s\tÜΣ東٣"
	)
	rr := []rune(ALPHABET)
	rng := rand.New(rand.NewSource(20))
	out := make([]string, n)
	for i := range out {
		var sb strings.Builder
		for j := 0; j < rng.Intn(60); j++ {
			sb.WriteRune(rr[rng.Intn(len(rr))])
		}
		out[i] = sb.String()
	}
	return out
}

func TestCleanTextIdempotent(t *testing.T) {
	for _, s := range append(awkward, randomStrings(2000)...) {
		once := CleanText(s)
		assert.Equal(t, once, CleanText(once), "input %q", s)
	}
}

func TestCleanTextNoDigitsOrPunctuation(t *testing.T) {
	for _, s := range append(awkward, randomStrings(2000)...) {
		out := CleanText(s)
		for _, r := range out {
			assert.False(t, unicode.IsDigit(r), "digit %q in %q from %q", r, out, s)
			assert.False(t, strings.ContainsRune(ASCIIPUNCT, r), "punctuation %q in %q from %q", r, out, s)
		}
	}
}

func TestCleanTextExample(t *testing.T) {
	out := CleanText("[redacted] Visit https://x.co NOW!! item123")
	assert.NotContains(t, out, "[")
	assert.NotContains(t, out, "redacted")
	assert.NotContains(t, out, "item123")
	assert.NotContains(t, out, "item")
	assert.NotContains(t, out, "!")
	assert.Equal(t, strings.ToLower(out), out)
	assert.Equal(t, []string{"visit", "httpsxco", "now"}, strings.Fields(out))
}

func TestCleanTextSteps(t *testing.T) {
	assert.Equal(t, "rt user check  out   more", CleanText("RT @user: Check [this] out https://t.co/abc123 &amp; more"))
	// the mojibake apostrophe goes with its s
	assert.Equal(t, "trump great", CleanText("Trumpâ€™s great"))
	// blunt: "amp" goes even inside words
	assert.Equal(t, "exle chion", CleanText("example champion"))
	assert.Equal(t, "", CleanText("aampmp"))
	// the bracket match is lazy and single line
	assert.Equal(t, "a  b  c", CleanText("a [x] b [y] c"))
	assert.Equal(t, "a\nb", CleanText("a[\n]b"))
}

func TestCleanAll(t *testing.T) {
	assert.Equal(t, []string{"a", " b"}, CleanAll([]string{"A!", "b1 B"}))
	assert.Len(t, CleanAll(nil), 0)
}
