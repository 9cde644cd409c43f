//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "errors"

// failure classes; package errors wrap one of these and main.go turns the class into an exit code
var (
	ErrConfig  = errors.New("configuration error")
	ErrUsage   = errors.New("usage error")
	ErrRemote  = errors.New("remote API error")
	ErrData    = errors.New("data error")
	ErrRender  = errors.New("rendering error")
	ErrArchive = errors.New("archive error")
)

// ExitCode - map an error onto the exit status for its failure class
func ExitCode(err error) int {
	switch {
	case err == nil:
		return EXITOK
	case errors.Is(err, ErrConfig):
		return EXITCONFIG
	case errors.Is(err, ErrUsage):
		return EXITUSAGE
	case errors.Is(err, ErrRemote):
		return EXITREMOTE
	case errors.Is(err, ErrData):
		return EXITDATA
	case errors.Is(err, ErrRender):
		return EXITRENDER
	case errors.Is(err, ErrArchive):
		return EXITARCHIVE
	default:
		// unclassified failures land with the data errors: they are almost always a bad file or a bad corpus
		return EXITDATA
	}
}
