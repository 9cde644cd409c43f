//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package twt

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/metrics"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/tab"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TimelineSource - one page of posts, newest first, none newer than maxID (when maxID > 0)
type TimelineSource interface {
	UserTimeline(ctx context.Context, handle string, count int, maxID int64) ([]str.Post, error)
}

type Fetcher struct {
	src TimelineSource
	pr  *message.Printer
}

func NewFetcher(src TimelineSource) *Fetcher {
	return &Fetcher{src: src, pr: message.NewPrinter(language.English)}
}

// Fetch - page backwards through a timeline until n posts have arrived or the source runs dry
func (f *Fetcher) Fetch(ctx context.Context, handle string, n int) ([]str.Post, error) {
	const (
		MSG1 = "getting tweets before %d"
		MSG2 = "...%d tweets downloaded so far"
		MSG3 = "the timeline of '%s' stopped yielding new posts after %d"
	)

	start := time.Now()

	// the first page is always a full one: the API is asked for BATCHSIZE even when n is smaller
	all, err := f.page(ctx, handle, 0)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return all, nil
	}

	cursor, err := oldestLessOne(all)
	if err != nil {
		return nil, err
	}

	if n > vv.BATCHSIZE {
		for len(all) < n {
			// nothing can be older than id 1; and a max_id of 0 would mean "start over from the newest"
			if cursor <= 0 {
				break
			}
			Msg.MAND(fmt.Sprintf(MSG1, cursor))

			batch, e := f.page(ctx, handle, cursor)
			if e != nil {
				return nil, e
			}

			// no more data
			if len(batch) == 0 {
				Msg.FYI(fmt.Sprintf(MSG3, handle, len(all)))
				break
			}

			next, e := oldestLessOne(batch)
			if e != nil {
				return nil, e
			}

			// a source that does not move the cursor backwards is repeating itself: drop the batch and stop
			if next >= cursor {
				Msg.WARN(fmt.Sprintf(MSG3, handle, len(all)))
				break
			}

			all = append(all, batch...)
			Msg.MAND(fmt.Sprintf(MSG2, len(all)))
			cursor = next
		}
	}

	Msg.Timer("F1", f.pr.Sprintf("fetched %d posts from '%s'", len(all), handle), start, start)
	return all, nil
}

// FetchToFile - Fetch and then write everything to the tab file in dir
func (f *Fetcher) FetchToFile(ctx context.Context, handle string, n int, dir string) ([]str.Post, string, error) {
	pp, err := f.Fetch(ctx, handle, n)
	if err != nil {
		return nil, "", err
	}
	fn := tab.FileName(dir, handle)
	if err = tab.WritePosts(fn, pp); err != nil {
		return nil, "", err
	}
	Msg.FYI(fmt.Sprintf("wrote '%s'", fn))
	return pp, fn, nil
}

func (f *Fetcher) page(ctx context.Context, handle string, maxID int64) ([]str.Post, error) {
	metrics.Batches.Inc()
	pp, err := f.src.UserTimeline(ctx, handle, vv.BATCHSIZE, maxID)
	if err != nil {
		return nil, err
	}
	metrics.PostsFetched.Add(float64(len(pp)))
	return pp, nil
}

// oldestLessOne - the id of the last (oldest) post minus one; pp must not be empty
func oldestLessOne(pp []str.Post) (int64, error) {
	last := pp[len(pp)-1].ID
	id, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: post id %q is not numeric", vv.ErrRemote, last)
	}
	return id - 1, nil
}
