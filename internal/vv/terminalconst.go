//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2024"
	PROJAUTH = "E. Gunderson"
	PROJURL  = "https://github.com/e-gun/TweetTopicModeler"

	NOCREDENTIALS = "Failed to load data.  Do you have your twitter C3api_keyC0, C3api_secretC0, C3access_tokenC0 and C3access_secretC0 set as environment variables?"

	SHORTHELP = "Fetch a Twitter timeline, then draw a word cloud and build an LDA topic model of it"

	LONGHELP = `S1TweetTopicModelerS0 fetches the most recent posts of a Twitter account,
writes them to "C3new_<user>_tweets.csvC0", and then analyzes that file:
   [C1aC0] a word cloud of the cleaned text
   [C1bC0] a Latent Dirichlet Allocation topic model with an inter-topic distance map

C1--load YC0 requires the four OAuth values as environment variables (or in "C3.envC0"):
   C3api_keyC0, C3api_secretC0, C3access_tokenC0, C3access_secretC0

Settings can also be stored in "C3~/.config/ttm-conf.jsonC0"; command line flags win.`
)
