//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"regexp"

	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//go:embed emb/ttm.css
var ttmcss string

//
// GRAPHING
//

// renderpage - put the charts on a page of their own and return the html+js
func renderpage(title string, layout components.Layout, cc ...components.Charter) ([]byte, error) {
	// go-echarts is "too clever" and opaque about how to not do things its way
	// we override their page.Render() (see the ModX and CustomX code below)

	p := components.NewPage()
	p.PageTitle = title
	p.Layout = layout
	p.Renderer = NewCustomPageRender(p, p.Validate)

	// AddCharts() collects each chart's assets and validates it
	p.AddCharts(cc...)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", vv.ErrRender, title, err)
	}
	return buf.Bytes(), nil
}

// chrome - title, toolbox and size settings shared by every chart
func chrome(title string, subtitle string, width string, height string) []charts.GlobalOpts {
	const (
		FONTSTYLE = "normal"
		LEFTALIGN = "20"
		SAVETYPE  = "png"
		SAVESTR   = "Save to file..."
	)

	tst := opts.TextStyle{
		FontStyle: FONTSTYLE,
		FontSize:  16,
		Padding:   "15",
	}

	sst := opts.TextStyle{
		FontStyle: FONTSTYLE,
		FontSize:  10,
	}

	tit := opts.Title{
		Title:         title,
		TitleStyle:    &tst,
		Subtitle:      subtitle,
		SubtitleStyle: &sst,
		Left:          LEFTALIGN,
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  title,
		Title: SAVESTR, // get chinese if ""
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Right:   LEFTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: width, Height: height}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	}
}

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

// ModRenderer etc modified from https://github.com/go-echarts/go-echarts/render/engine.go
type ModRenderer interface {
	Render(w io.Writer) error
}

type CustomPageRender struct {
	c      interface{}
	before []func()
}

// NewCustomPageRender returns a render implementation for Page.
func NewCustomPageRender(c interface{}, before ...func()) ModRenderer {
	return &CustomPageRender{c: c, before: before}
}

// Render renders the page into the given io.Writer.
func (r *CustomPageRender) Render(w io.Writer) error {
	const (
		TEMPLNAME = "page"
		PATTERN   = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	contents := []string{CustomHeaderTpl, CustomBaseTpl, CustomChartsTpl, CustomPageTpl}
	tpl := ModMustTemplate(TEMPLNAME, contents)

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, TEMPLNAME, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

// ModMustTemplate creates a new template with the given name and parsed contents.
func ModMustTemplate(name string, contents []string) *template.Template {
	const (
		JSNAME  = "safeJS"
		CSSNAME = "css"
	)

	tpl := template.Must(template.New(name).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
		CSSNAME: func() template.CSS {
			return template.CSS(ttmcss)
		},
	}).Parse(contents[0]))

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

// CustomHeaderTpl etc. adapted from https://github.com/go-echarts/go-echarts/templates/
var CustomHeaderTpl = `
{{ define "header" }}
<head>
    <meta charset="utf-8">
    <title>{{ .PageTitle }}</title>
{{- range .JSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CustomizedJSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
{{- range .CustomizedCSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
    <style>{{ css }}</style>
</head>
{{ end }}
`

var CustomBaseTpl = `
{{- define "base" }}
<div class="container">
    <div class="item" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});

    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var CustomChartsTpl = `
{{- define "charts" }}
	{{ if eq .Layout "flex" }}
		<div class="box"> {{- range .Charts }} {{ template "base" . }} {{- end }} </div>
	{{ else }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}
{{ end }}
`

var CustomPageTpl = `
{{- define "page" }}
<!DOCTYPE html>
<html>
	{{- template "header" . }}
<body>
	<p class="nav"><a href="index.html">index</a></p>
	{{- template "charts" . }}
</body>
</html>
{{ end }}
`
