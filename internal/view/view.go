// Package view renders the pages and fragments of the front end. Every
// fragment backed by an API call has a loading, a success and an error
// branch. The error branch carries a Try Again link to the full page; the
// embedded script reloads just the fragment when it is available.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"seo-web/internal/api"
	"seo-web/internal/form"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Assets returns the files served under /static/.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"title":    capitalize,
		"number":   FormatNumber,
		"progress": ProgressClass,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func capitalize(v fmt.Stringer) string {
	s := v.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	// Buffer so a failing template never leaves half a page on the wire.
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// AnalysisPage is the data of the analysis form page before the form
// controller's view is applied to it.
type AnalysisPage struct {
	Title        string
	URL          string
	AnalysisType string
	Types        []form.AnalysisType
}

func NewAnalysisPage(url, analysisType string) AnalysisPage {
	return AnalysisPage{
		Title:        "Analyze",
		URL:          url,
		AnalysisType: analysisType,
		Types:        form.AnalysisTypes,
	}
}

func (r *Renderer) Analysis(w io.Writer, data AnalysisPage) error {
	return r.execute(w, "analyze", data)
}

// Dashboard is the data of the dashboard page.
type Dashboard struct {
	Title   string
	History History
	Chart   Chart
}

func (r *Renderer) Dashboard(w io.Writer, data Dashboard) error {
	if data.Title == "" {
		data.Title = "Dashboard"
	}
	return r.execute(w, "dashboard", data)
}

func (r *Renderer) History(w io.Writer, data History) error {
	return r.execute(w, "history", data)
}

// Report is the data of an analysis report page. Found is false when the
// analysis is not in the backend's list; the recommendations are still
// requested by id.
type Report struct {
	Title           string
	AnalysisID      int
	Found           bool
	URL             string
	Domain          string
	Type            string
	Score           int
	Recommendations RecommendationsView
	Messages        []ChatMessage
	ChatPrefill     string
}

func NewReport(analysisID int, summary *api.AnalysisSummary, recs RecommendationsView) Report {
	r := Report{
		Title:           "Report",
		AnalysisID:      analysisID,
		Recommendations: recs,
		Messages:        []ChatMessage{Welcome()},
	}
	if summary != nil {
		r.Found = true
		r.URL = summary.URL
		r.Domain = Domain(summary.URL)
		r.Type = summary.Type
		r.Score = summary.OverallScore
		r.Title = "Report for " + r.Domain
		r.ChatPrefill = ChatPrefill(summary.URL)
	}
	return r
}

func (r *Renderer) Report(w io.Writer, data Report) error {
	return r.execute(w, "report", data)
}

func (r *Renderer) Recommendations(w io.Writer, data RecommendationsView) error {
	return r.execute(w, "recommendations", data)
}

func (r *Renderer) ChatMessages(w io.Writer, msgs []ChatMessage) error {
	return r.execute(w, "chat_messages", msgs)
}
