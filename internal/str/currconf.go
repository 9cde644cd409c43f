//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	Archive       string // "" for none; "postgres://..." or a sqlite file path
	BlackAndWhite bool
	Browser       bool
	DataDir       string
	EchoLog       int // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	ExtendedText  bool
	HostIP        string
	HostPort      int
	HTMLDir       string
	LdaIter       int
	LdaMDS        string // "tsne" or "pcoa"
	LdaProcs      int    // goroutines for the LDA fit; 1 for repeatable runs
	LdaSeed       int
	LdaTopics     int
	LdaTopWords   int
	Load          bool
	LogLevel      int
	Profile       string // "", "cpu" or "mem"
	Serve         bool
	Tweets        int
	User          string
	VecMaxFeat    int
	VecMinDF      int
	WordCloud     bool
}
