//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"regexp"
	"strings"

	"github.com/e-gun/TweetTopicModeler/internal/lnch"
)

var Msg = lnch.NewMessageMakerWithDefaults()

const (
	ASCIIPUNCT = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	MOJIBAKES  = "â€™s" // a utf8 right single quote read as cp1252, plus the s that followed it
	AMPERSAND  = "amp"  // what is left of "&amp;" once the punctuation is gone
)

var (
	bracketed = regexp.MustCompile(`\[.*?\]`)
	// a "word" in the unicode sense (letters, numbers, underscore) with at least one decimal digit somewhere in it
	hasdigits = regexp.MustCompile(`[\p{L}\p{N}_]*\p{Nd}[\p{L}\p{N}_]*`)
)

// CleanText - lowercase; drop [bracketed] spans, punctuation, words with digits in them, "â€™s" and "amp"
func CleanText(text string) string {
	// "RT @user: Check [this] out https://t.co/abc123 &amp; more" ==> "rt user check  out   more"

	text = strings.ToLower(text)
	text = bracketed.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(ASCIIPUNCT, r) {
			return -1
		}
		return r
	}, text)
	text = hasdigits.ReplaceAllString(text, "")

	// NB: "amp" goes wherever it appears: "example" becomes "exle"
	// keep going until nothing changes: deleting one "amp" can assemble another ("aampmp")
	for {
		next := strings.ReplaceAll(text, MOJIBAKES, "")
		next = strings.ReplaceAll(next, AMPERSAND, "")
		if next == text {
			break
		}
		text = next
	}
	return text
}

// CleanAll - CleanText every member of a slice
func CleanAll(texts []string) []string {
	cc := make([]string, len(texts))
	for i := range texts {
		cc[i] = CleanText(texts[i])
	}
	return cc
}
