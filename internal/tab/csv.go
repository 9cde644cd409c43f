//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
)

var Header = []string{"id", "created_at", "text"}

// encoding/csv reads a quoted "\r\n" back as "\n"; write it that way so that a file reads back as written
var lineEndings = strings.NewReplacer("\r\n", "\n")

// the writer only ever emits CSVTIMEFORMAT; the rest are for files that came from elsewhere
var readLayouts = []string{
	vv.CSVTIMEFORMAT,
	time.RFC3339,
	"2006-01-02 15:04:05",
	time.RubyDate,
}

// FileName - "dir/new_<handle>_tweets.csv"
func FileName(dir string, handle string) string {
	return filepath.Join(dir, fmt.Sprintf(vv.CSVFILETEMPLATE, handle))
}

// WritePosts - header plus one row per post, in the order given
func WritePosts(fn string, pp []str.Post) error {
	const (
		FAIL = "%w: could not write '%s': %w"
	)

	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf(FAIL, vv.ErrData, fn, err)
	}

	w := csv.NewWriter(f)
	if err = w.Write(Header); err != nil {
		_ = f.Close()
		return fmt.Errorf(FAIL, vv.ErrData, fn, err)
	}

	for _, p := range pp {
		row := []string{p.ID, p.CreatedAt.UTC().Format(vv.CSVTIMEFORMAT), lineEndings.Replace(p.Text)}
		if err = w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf(FAIL, vv.ErrData, fn, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf(FAIL, vv.ErrData, fn, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf(FAIL, vv.ErrData, fn, err)
	}
	return nil
}

// ReadPosts - every row of a tab file; any row without exactly three fields is an error
func ReadPosts(fn string) ([]str.Post, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open '%s': %w", vv.ErrData, fn, err)
	}
	defer f.Close()

	pp, err := DecodePosts(f)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", fn, err)
	}
	return pp, nil
}

// DecodePosts - ReadPosts for anything that is not a file
func DecodePosts(r io.Reader) ([]str.Post, error) {
	cr := csv.NewReader(r)
	// field counts are checked below so that the error can say which line was short
	cr.FieldsPerRecord = -1

	var pp []str.Post
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", vv.ErrData, err)
		}

		line, _ := cr.FieldPos(0)

		if len(rec) != len(Header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, expected %d", vv.ErrData, line, len(rec), len(Header))
		}

		if first {
			first = false
			if rec[0] == Header[0] && rec[1] == Header[1] && rec[2] == Header[2] {
				continue
			}
			return nil, fmt.Errorf("%w: missing header row %v", vv.ErrData, Header)
		}

		when, err := parseTime(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", vv.ErrData, line, err)
		}
		pp = append(pp, str.Post{ID: rec[0], CreatedAt: when, Text: rec[2]})
	}

	if first {
		return nil, fmt.Errorf("%w: empty file", vv.ErrData)
	}
	return pp, nil
}

// Texts - just the text column
func Texts(pp []str.Post) []string {
	tt := make([]string, len(pp))
	for i := range pp {
		tt[i] = pp[i].Text
	}
	return tt
}

func parseTime(s string) (time.Time, error) {
	for _, l := range readLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
