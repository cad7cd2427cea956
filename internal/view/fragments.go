package view

import (
	"encoding/json"
	"regexp"
	"strings"

	"seo-web/internal/api"
)

const (
	chartLimit       = 10
	MsgNoChartData   = "No analysis data to display"
	chartErrorPrefix = "Error loading chart data: "
)

// HistoryRow is one analysis in the dashboard history table.
type HistoryRow struct {
	ID          int
	URL         string
	Type        string
	Date        string
	Score       int
	StatusClass string
	StatusText  string
}

// History is the dashboard history table body.
type History struct {
	Total   int
	Loading bool
	Reason  string
	Rows    []HistoryRow
}

func LoadingHistory() History { return History{Loading: true} }

func NewHistory(res api.Result[[]api.AnalysisSummary]) History {
	if !res.IsOk() {
		return History{Reason: res.Reason()}
	}

	rows := make([]HistoryRow, 0, len(res.Value))
	for _, a := range res.Value {
		rows = append(rows, HistoryRow{
			ID:          a.ID,
			URL:         a.URL,
			Type:        a.Type,
			Date:        FormatDate(a.Date),
			Score:       a.OverallScore,
			StatusClass: StatusClass(a.OverallScore),
			StatusText:  StatusText(a.OverallScore),
		})
	}
	return History{Total: len(rows), Rows: rows}
}

// Chart is the score chart dataset. When Message is set the chart is
// replaced by that text.
type Chart struct {
	Labels  []string `json:"labels"`
	Scores  []int    `json:"scores"`
	Titles  []string `json:"titles"`
	Message string   `json:"-"`
	Failed  bool     `json:"-"`
}

var schemePrefix = regexp.MustCompile(`^https?://(www\.)?`)

// ChartLabel shortens an analysed URL to its host for the x axis.
func ChartLabel(url string) string {
	s := schemePrefix.ReplaceAllString(url, "")
	host, _, _ := strings.Cut(s, "/")
	return host
}

// NewChart plots the ten most recent analyses, oldest first. The list
// from the API is newest first.
func NewChart(res api.Result[[]api.AnalysisSummary]) Chart {
	if !res.IsOk() {
		return Chart{Message: chartErrorPrefix + res.Reason(), Failed: true}
	}
	if len(res.Value) == 0 {
		return Chart{Message: MsgNoChartData}
	}

	recent := res.Value
	if len(recent) > chartLimit {
		recent = recent[:chartLimit]
	}

	n := len(recent)
	c := Chart{
		Labels: make([]string, n),
		Scores: make([]int, n),
		Titles: make([]string, n),
	}
	for i, a := range recent {
		j := n - 1 - i
		c.Labels[j] = ChartLabel(a.URL)
		c.Scores[j] = a.OverallScore
		c.Titles[j] = a.URL
	}
	return c
}

// JSON is the dataset handed to the chart script.
func (c Chart) JSON() string {
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// RecommendationsView is the AI recommendations section of a report.
type RecommendationsView struct {
	AnalysisID int
	Loading    bool
	Reason     string
	Data       *api.Recommendations
}

func LoadingRecommendations(analysisID int) RecommendationsView {
	return RecommendationsView{AnalysisID: analysisID, Loading: true}
}

func NewRecommendations(analysisID int, res api.Result[api.Recommendations]) RecommendationsView {
	if !res.IsOk() {
		return RecommendationsView{AnalysisID: analysisID, Reason: res.Reason()}
	}
	data := res.Value
	return RecommendationsView{AnalysisID: analysisID, Data: &data}
}
