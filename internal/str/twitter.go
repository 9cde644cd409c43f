//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "time"

// Credentials - the four OAuth 1.0a values; built once at launch and never written anywhere
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessKey      string
	AccessSecret   string
}

type Post struct {
	ID        string
	CreatedAt time.Time
	Text      string
}
