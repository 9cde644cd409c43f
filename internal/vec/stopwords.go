//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
)

//
// STOPWORDS
//

const (
	STOPSVECTORISER = "vectoriser"
	STOPSWORDCLOUD  = "wordcloud"
	STOPFILETPL     = "ttm-stops-%s.json"
)

var (
	// EnglishStops - the list scikit-learn uses for stop_words='english'
	EnglishStops = []string{"a", "about", "above", "across", "after", "afterwards", "again", "against", "all",
		"almost", "alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "amoungst",
		"amount", "an", "and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are",
		"around", "as", "at", "back", "be", "became", "because", "become", "becomes", "becoming", "been", "before",
		"beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "bill", "both",
		"bottom", "but", "by", "call", "can", "cannot", "cant", "co", "con", "could", "couldnt", "cry", "de",
		"describe", "detail", "do", "done", "down", "due", "during", "each", "eg", "eight", "either", "eleven",
		"else", "elsewhere", "empty", "enough", "etc", "even", "ever", "every", "everyone", "everything",
		"everywhere", "except", "few", "fifteen", "fifty", "fill", "find", "fire", "first", "five", "for",
		"former", "formerly", "forty", "found", "four", "from", "front", "full", "further", "get", "give", "go",
		"had", "has", "hasnt", "have", "he", "hence", "her", "here", "hereafter", "hereby", "herein", "hereupon",
		"hers", "herself", "him", "himself", "his", "how", "however", "hundred", "i", "ie", "if", "in", "inc",
		"indeed", "interest", "into", "is", "it", "its", "itself", "keep", "last", "latter", "latterly", "least",
		"less", "ltd", "made", "many", "may", "me", "meanwhile", "might", "mill", "mine", "more", "moreover",
		"most", "mostly", "move", "much", "must", "my", "myself", "name", "namely", "neither", "never",
		"nevertheless", "next", "nine", "no", "nobody", "none", "noone", "nor", "not", "nothing", "now",
		"nowhere", "of", "off", "often", "on", "once", "one", "only", "onto", "or", "other", "others",
		"otherwise", "our", "ours", "ourselves", "out", "over", "own", "part", "per", "perhaps", "please", "put",
		"rather", "re", "same", "see", "seem", "seemed", "seeming", "seems", "serious", "several", "she",
		"should", "show", "side", "since", "sincere", "six", "sixty", "so", "some", "somehow", "someone",
		"something", "sometime", "sometimes", "somewhere", "still", "such", "system", "take", "ten", "than",
		"that", "the", "their", "them", "themselves", "then", "thence", "there", "thereafter", "thereby",
		"therefore", "therein", "thereupon", "these", "they", "thick", "thin", "third", "this", "those",
		"though", "three", "through", "throughout", "thru", "thus", "to", "together", "too", "top", "toward",
		"towards", "twelve", "twenty", "two", "un", "under", "until", "up", "upon", "us", "very", "via", "was",
		"we", "well", "were", "what", "whatever", "when", "whence", "whenever", "where", "whereafter", "whereas",
		"whereby", "wherein", "whereupon", "wherever", "whether", "which", "while", "whither", "who", "whoever",
		"whole", "whom", "whose", "why", "will", "with", "within", "without", "would", "yet", "you", "your",
		"yours", "yourself", "yourselves"}

	// CloudStops - the list the python wordcloud package ships as STOPWORDS
	CloudStops = []string{"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
		"any", "are", "aren't", "as", "at", "be", "because", "been", "before", "being", "below", "between",
		"both", "but", "by", "can", "can't", "cannot", "com", "could", "couldn't", "did", "didn't", "do", "does",
		"doesn't", "doing", "don't", "down", "during", "each", "else", "ever", "few", "for", "from", "further",
		"get", "had", "hadn't", "has", "hasn't", "have", "haven't", "having", "he", "he'd", "he'll", "he's",
		"hence", "her", "here", "here's", "hers", "herself", "him", "himself", "his", "how", "how's", "however",
		"http", "i", "i'd", "i'll", "i'm", "i've", "if", "in", "into", "is", "isn't", "it", "it's", "its",
		"itself", "just", "k", "let's", "like", "me", "more", "most", "mustn't", "my", "myself", "no", "nor",
		"not", "of", "off", "on", "once", "only", "or", "other", "otherwise", "ought", "our", "ours",
		"ourselves", "out", "over", "own", "r", "same", "shall", "shan't", "she", "she'd", "she'll", "she's",
		"should", "shouldn't", "since", "so", "some", "such", "than", "that", "that's", "the", "their",
		"theirs", "them", "themselves", "then", "there", "there's", "therefore", "these", "they", "they'd",
		"they'll", "they're", "they've", "this", "those", "through", "to", "too", "under", "until", "up",
		"very", "was", "wasn't", "we", "we'd", "we'll", "we're", "we've", "were", "weren't", "what", "what's",
		"when", "when's", "where", "where's", "which", "while", "who", "who's", "whom", "why", "why's", "with",
		"won't", "would", "wouldn't", "www", "you", "you'd", "you'll", "you're", "you've", "your", "yours",
		"yourself", "yourselves"}
)

func builtinstops(kind string) []string {
	switch kind {
	case STOPSWORDCLOUD:
		return CloudStops
	default:
		return EnglishStops
	}
}

// StopSet - the built-in stop list for kind as a set
func StopSet(kind string) map[string]struct{} {
	return gen.ToSet(builtinstops(kind))
}

// ReadStopConfig - read "dir/ttm-stops-<kind>.json" and return it as a set; if it does not exist, generate it
func ReadStopConfig(dir string, kind string) map[string]struct{} {
	const (
		ERR1 = "ReadStopConfig() failed to parse '%s'; using the built-in list"
		ERR2 = "ReadStopConfig() could not write '%s'"
		MSG1 = "ReadStopConfig() wrote stop configuration file: '%s'"
	)

	stops := builtinstops(kind)
	if dir == "" {
		return gen.ToSet(stops)
	}

	fn := filepath.Join(dir, fmt.Sprintf(STOPFILETPL, kind))

	content, err := os.ReadFile(fn)
	if err != nil {
		s := append([]string{}, stops...)
		sort.Strings(s)
		js, _ := json.MarshalIndent(s, vv.JSONINDENT, vv.JSONINDENT)
		if e := os.WriteFile(fn, js, vv.WRITEPERMS); e != nil {
			Msg.PEEK(fmt.Sprintf(ERR2, fn))
		} else {
			Msg.PEEK(fmt.Sprintf(MSG1, fn))
		}
		return gen.ToSet(stops)
	}

	var stp []string
	if err = json.Unmarshal(content, &stp); err != nil {
		Msg.CRIT(fmt.Sprintf(ERR1, fn))
		return gen.ToSet(stops)
	}
	return gen.ToSet(stp)
}
