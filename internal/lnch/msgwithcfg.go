//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/TweetTopicModeler/internal/mm"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
)

func NewMessageMakerWithDefaults() *mm.MessageMaker {
	m := mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
	m.BW = vv.BLACKANDWHITE
	m.LLvl = vv.DEFAULTGOLOGLVL
	return m
}

// UpdateMessageMakerWithConfig - every package keeps its own Msg; main hands them all in here once the config is known
func UpdateMessageMakerWithConfig(cfg *str.CurrentConfiguration, mms ...*mm.MessageMaker) {
	for _, m := range mms {
		m.BW = cfg.BlackAndWhite
		m.LLvl = cfg.LogLevel
	}
}
