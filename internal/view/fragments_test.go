package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo-web/internal/api"
)

func TestStatusThresholds(t *testing.T) {
	testCases := []struct {
		score     int
		wantClass string
		wantText  string
		wantBar   string
	}{
		{score: 100, wantClass: "bg-success", wantText: "Good", wantBar: "bg-success"},
		{score: 80, wantClass: "bg-success", wantText: "Good", wantBar: "bg-success"},
		{score: 79, wantClass: "bg-warning", wantText: "Fair", wantBar: "bg-warning"},
		{score: 60, wantClass: "bg-warning", wantText: "Fair", wantBar: "bg-warning"},
		{score: 59, wantClass: "bg-danger", wantText: "Poor", wantBar: "bg-info"},
		{score: 40, wantClass: "bg-danger", wantText: "Poor", wantBar: "bg-info"},
		{score: 39, wantClass: "bg-danger", wantText: "Poor", wantBar: "bg-danger"},
		{score: 0, wantClass: "bg-danger", wantText: "Poor", wantBar: "bg-danger"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.score), func(t *testing.T) {
			assert.Equal(t, tc.wantClass, StatusClass(tc.score))
			assert.Equal(t, tc.wantText, StatusText(tc.score))
			assert.Equal(t, tc.wantBar, ProgressClass(tc.score))
		})
	}
}

func TestChartLabel(t *testing.T) {
	testCases := map[string]string{
		"https://www.example.com/path/x": "example.com",
		"http://example.org":             "example.org",
		"https://sub.example.co.uk?q=1":  "sub.example.co.uk?q=1",
		"example.com/a":                  "example.com",
	}
	for in, want := range testCases {
		assert.Equal(t, want, ChartLabel(in), in)
	}
}

func TestNewChart(t *testing.T) {
	t.Run("last ten reversed", func(t *testing.T) {
		analyses := make([]api.AnalysisSummary, 12)
		for i := range analyses {
			analyses[i] = api.AnalysisSummary{ID: i, URL: fmt.Sprintf("https://site%d.com/p", i), OverallScore: i * 5}
		}

		c := NewChart(api.Ok(analyses))

		require.Len(t, c.Labels, 10)
		assert.Equal(t, "site9.com", c.Labels[0])
		assert.Equal(t, "site0.com", c.Labels[9])
		assert.Equal(t, 45, c.Scores[0])
		assert.Equal(t, 0, c.Scores[9])
		assert.Equal(t, "https://site9.com/p", c.Titles[0])
		assert.Empty(t, c.Message)
	})

	t.Run("empty", func(t *testing.T) {
		c := NewChart(api.Ok([]api.AnalysisSummary{}))
		assert.Equal(t, MsgNoChartData, c.Message)
		assert.False(t, c.Failed)
	})

	t.Run("error", func(t *testing.T) {
		c := NewChart(api.Err[[]api.AnalysisSummary](errors.New("boom")))
		assert.Equal(t, "Error loading chart data: boom", c.Message)
		assert.True(t, c.Failed)
	})
}

func TestFormatNumber(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-9876543: "-9,876,543",
	}
	for in, want := range testCases {
		assert.Equal(t, want, FormatNumber(in))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 5, 2024", FormatDate("2024-03-05"))
	assert.Equal(t, "Dec 31, 2023", FormatDate("2023-12-31T23:10:00Z"))
	assert.Equal(t, "Jan 2, 2024", FormatDate("2024-01-02 10:00:00"))
	assert.Equal(t, "yesterday", FormatDate("yesterday"))
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "www.example.com", Domain("https://www.example.com/a?b=c"))
	assert.Equal(t, "example.com", Domain("http://example.com:8080"))
	assert.Equal(t, "not a url", Domain("not a url"))
	assert.Equal(t, "", Domain(""))
}

func TestChat(t *testing.T) {
	msg, ok := NormalizeChatMessage("  hello  ")
	assert.True(t, ok)
	assert.Equal(t, "hello", msg)

	_, ok = NormalizeChatMessage(" \n\t ")
	assert.False(t, ok)

	msgs := ChatExchange("hi", api.Ok(api.ChatReply{Response: "hello there"}))
	require.Len(t, msgs, 2)
	assert.Equal(t, ChatMessage{From: FromUser, Text: "hi"}, msgs[0])
	assert.Equal(t, ChatMessage{From: FromBot, Text: "hello there"}, msgs[1])

	assert.Empty(t, ChatPrefill(""))
	assert.Contains(t, ChatPrefill("https://a.co"), "SEO report for https://a.co.")
	assert.Equal(t, FromBot, Welcome().From)
}
