//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package twt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/e-gun/TweetTopicModeler/internal/lnch"
	"github.com/e-gun/TweetTopicModeler/internal/metrics"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
)

var Msg = lnch.NewMessageMakerWithDefaults()

const (
	HDRRESET       = "x-rate-limit-reset"
	MAXLIMITWAITS  = 3
	MAXERRBODYREAD = 4096
)

// apiTweet - the subset of a v1.1 status object that we keep
type apiTweet struct {
	ID        int64  `json:"id"`
	IDStr     string `json:"id_str"`
	CreatedAt string `json:"created_at"`
	Text      string `json:"text"`
	FullText  string `json:"full_text"`
}

type apiErrors struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Client - OAuth 1.0a user-context access to the v1.1 timeline endpoint
type Client struct {
	baseURL  string
	http     *http.Client
	extended bool
	waitRL   bool
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient - replace the signing client; tests use this to talk to httptest servers
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithExtendedText - ask for "tweet_mode=extended" so that text is not truncated at 140 chars
func WithExtendedText(b bool) Option {
	return func(c *Client) { c.extended = b }
}

func WithWaitOnRateLimit(b bool) Option {
	return func(c *Client) { c.waitRL = b }
}

func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.now = now
		c.sleep = sleep
	}
}

// NewClient - sign every request with the four credentials
func NewClient(creds str.Credentials, opts ...Option) *Client {
	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	tok := oauth1.NewToken(creds.AccessKey, creds.AccessSecret)
	hc := cfg.Client(oauth1.NoContext, tok)
	hc.Timeout = vv.APITIMEOUT

	c := &Client{
		baseURL: vv.APIBASEURL,
		http:    hc,
		waitRL:  vv.WAITONRATELIMIT,
		now:     time.Now,
		sleep:   sleepCtx,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// UserTimeline - one page of a user's posts, newest first; maxID <= 0 means "start from the newest"
func (c *Client) UserTimeline(ctx context.Context, handle string, count int, maxID int64) ([]str.Post, error) {
	q := url.Values{}
	q.Set("screen_name", handle)
	q.Set("count", strconv.Itoa(count))
	if maxID > 0 {
		q.Set("max_id", strconv.FormatInt(maxID, 10))
	}
	if c.extended {
		q.Set("tweet_mode", "extended")
	}
	u := c.baseURL + vv.APITIMELINE + "?" + q.Encode()

	for waits := 0; ; waits++ {
		body, status, hdr, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}

		if status == http.StatusTooManyRequests && c.waitRL && waits < MAXLIMITWAITS {
			d := c.untilReset(hdr)
			Msg.WARN(fmt.Sprintf("rate limit reached; sleeping for %s", d.Round(time.Second)))
			metrics.RateLimitWaits.Inc()
			if err = c.sleep(ctx, d); err != nil {
				return nil, fmt.Errorf("%w: %w", vv.ErrRemote, err)
			}
			continue
		}

		if status != http.StatusOK {
			return nil, fmt.Errorf("%w: %s", vv.ErrRemote, describeFailure(status, body))
		}

		var tt []apiTweet
		if err = json.Unmarshal(body, &tt); err != nil {
			return nil, fmt.Errorf("%w: failed to parse timeline: %w", vv.ErrRemote, err)
		}
		return c.toPosts(tt)
	}
}

func (c *Client) get(ctx context.Context, u string) ([]byte, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("%w: %w", vv.ErrRemote, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("%w: failed to fetch timeline: %w", vv.ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("%w: failed to read response body: %w", vv.ErrRemote, err)
	}
	return body, resp.StatusCode, resp.Header, nil
}

// untilReset - how long until the window named in the reset header opens again
func (c *Client) untilReset(h http.Header) time.Duration {
	const (
		FALLBACK = 15 * time.Minute
	)
	epoch, err := strconv.ParseInt(h.Get(HDRRESET), 10, 64)
	if err != nil {
		return FALLBACK
	}
	d := time.Unix(epoch, 0).Sub(c.now())
	if d < 0 {
		d = 0
	}
	return d + vv.RATELIMITSLACK
}

func (c *Client) toPosts(tt []apiTweet) ([]str.Post, error) {
	pp := make([]str.Post, 0, len(tt))
	for _, t := range tt {
		when, err := time.Parse(time.RubyDate, t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bad created_at %q: %w", vv.ErrRemote, t.CreatedAt, err)
		}
		id := t.IDStr
		if id == "" {
			id = strconv.FormatInt(t.ID, 10)
		}
		txt := t.Text
		if c.extended && t.FullText != "" {
			txt = t.FullText
		}
		pp = append(pp, str.Post{ID: id, CreatedAt: when.UTC(), Text: txt})
	}
	return pp, nil
}

// describeFailure - prefer the API's own error messages to a bare status code
func describeFailure(status int, body []byte) string {
	var ae apiErrors
	if json.Unmarshal(body, &ae) == nil && len(ae.Errors) > 0 {
		var mm []string
		for _, e := range ae.Errors {
			mm = append(mm, fmt.Sprintf("%d %s", e.Code, e.Message))
		}
		return fmt.Sprintf("status %d: %s", status, strings.Join(mm, "; "))
	}
	if len(body) > MAXERRBODYREAD {
		body = body[:MAXERRBODYREAD]
	}
	return fmt.Sprintf("unexpected status %d: %s", status, strings.TrimSpace(string(body)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
