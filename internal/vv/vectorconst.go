//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	// vectoriser: cf. sklearn CountVectorizer(min_df=3, stop_words='english', token_pattern='[a-zA-Z0-9]{3,}', max_features=5000)
	VECMINDF       = 3
	VECMAXFEATURES = 5000
	VECTOKENPATTRN = `[a-zA-Z0-9]{3,}`

	// lda: cf. LatentDirichletAllocation(n_components=10, learning_method='online', random_state=20, n_jobs=-1)
	LDATOPICS       = 10
	LDAMAXTOPICS    = 50
	LDASEED         = 20
	LDAITER         = 50
	LDAXFORMPASSES  = 25
	LDABATCHSIZE    = 128
	LDABURNINPASSES = 1
	LDATOPWORDS     = 10

	// visualization: cf. pyLDAvis.prepare(R=30, lambda_step=0.01, mds='tsne')
	LDAVISRELTERMS  = 30
	LDAVISLAMBDASTP = 0.01
	LDAVISLAMBDA    = 0.6
	LDAVISMDS       = "tsne"
	TSNEPERPLEX     = 30
	TSNELEARNRT     = 100
	TSNEMAXITER     = 300

	// wordcloud: cf. WordCloud().generate(); max_words=200
	WCMAXWORDS   = 200
	WCMAXFONTPX  = 80
	WCMINFONTPX  = 12
	CHRTWIDTH    = "1200px"
	CHRTHEIGHT   = "800px"
	BARCHRTWIDTH = "560px"
	BARCHRTHIGHT = "620px"
)
