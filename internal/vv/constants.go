//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Tweet Topic Modeler"
	SHORTNAME = "TTM"
	VERSION   = "1.0.3"

	BLACKANDWHITE   = false
	CONFIGALTAPTH   = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC     = "ttm-conf.json"
	CSVFILETEMPLATE = "new_%s_tweets.csv" // %s = the handle
	DEFAULTDATADIR  = "."
	DEFAULTGOLOGLVL = 0
	DEFAULTECHOLOG  = 0
	DEFAULTHANDLE   = "realDonaldTrump"
	DEFAULTTWEETS   = 1000
	DOTENVFILE      = ".env"
	JSONINDENT      = "  "
	SERVEDFROMHOST  = "localhost"
	SERVEDFROMPORT  = 8888
	WRITEPERMS      = 0644

	// the API will not hand over more than 200 per request and only the most recent 3240 in total
	BATCHSIZE       = 200
	APIBASEURL      = "https://api.twitter.com"
	APITIMELINE     = "/1.1/statuses/user_timeline.json"
	APITIMEOUT      = 30 * time.Second
	RATELIMITSLACK  = 2 * time.Second
	WAITONRATELIMIT = true

	// CSV timestamps look like what pandas writes for a tz-aware datetime
	CSVTIMEFORMAT = "2006-01-02 15:04:05-07:00"
)

// ENV VARS

const (
	ENVAPIKEY       = "api_key"
	ENVAPISECRET    = "api_secret"
	ENVACCESSTOKEN  = "access_token"
	ENVACCESSSECRET = "access_secret"
)

var CredentialEnvVars = []string{ENVAPIKEY, ENVAPISECRET, ENVACCESSTOKEN, ENVACCESSSECRET}

// EXIT CODES

const (
	EXITOK = iota
	EXITCONFIG
	EXITUSAGE
	EXITREMOTE
	EXITDATA
	EXITRENDER
	EXITARCHIVE
)
