//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/labstack/echo/v4"
)

// RtFrontpage - send the html for "/"
func (s *Site) RtFrontpage(c echo.Context) error {
	return gen.HTMLresponse(c, s.pages[PAGEINDEX])
}

type topicrow struct {
	Topic int
	Share string
	Terms string
}

// RenderIndex - a summary of the run with links to whatever got built
func RenderIndex(a *Analysis, when time.Time) ([]byte, error) {
	const (
		NTERMS = 10
		SHARE  = "%.1f%%"
	)

	subs := struct {
		Name     string
		Version  string
		Handle   string
		When     string
		Posts    int
		HasLDA   bool
		HasCloud bool
		Topics   []topicrow
		CSS      template.CSS
	}{
		Name:     vv.MYNAME,
		Version:  vv.VERSION,
		Handle:   a.Handle,
		When:     when.Format(time.DateTime),
		Posts:    a.Posts,
		HasLDA:   a.Vis != nil,
		HasCloud: len(a.Cloud) > 0,
		CSS:      template.CSS(ttmcss),
	}

	if a.Vis != nil {
		for _, tc := range a.Vis.MDS {
			var tt []string
			for _, ti := range a.Vis.TopTerms(tc.Topic, vv.LDAVISLAMBDA, NTERMS) {
				tt = append(tt, ti.Term)
			}
			subs.Topics = append(subs.Topics, topicrow{Topic: tc.Topic, Share: fmt.Sprintf(SHARE, tc.Freq), Terms: strings.Join(tt, " ")})
		}
	}

	tmpl, err := template.New("fp").Parse(FRONTPAGE)
	if err != nil {
		return nil, fmt.Errorf("%w: front page template: %w", vv.ErrRender, err)
	}

	var b bytes.Buffer
	if err = tmpl.Execute(&b, subs); err != nil {
		return nil, fmt.Errorf("%w: front page: %w", vv.ErrRender, err)
	}
	return b.Bytes(), nil
}

const FRONTPAGE = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{ .Name }}: @{{ .Handle }}</title>
    <style>{{ .CSS }}</style>
</head>
<body>
<h2>@{{ .Handle }}</h2>
<p>{{ .Posts }} tweets; analysis built {{ .When }} by {{ .Name }} v.{{ .Version }}</p>
<ul>
{{- if .HasLDA }}
    <li><a href="lda.html">topic model</a> (<a href="lda.json">json</a>)</li>
{{- end }}
{{- if .HasCloud }}
    <li><a href="wordcloud.html">word cloud</a></li>
{{- end }}
</ul>
{{- if .Topics }}
<table class="topics">
{{- range .Topics }}
    <tr><td class="num">{{ .Topic }}</td><td class="num">{{ .Share }}</td><td>{{ .Terms }}</td></tr>
{{- end }}
</table>
{{- end }}
</body>
</html>
`
