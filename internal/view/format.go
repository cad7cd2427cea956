package view

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusClass is the badge colour of an overall score.
func StatusClass(score int) string {
	switch {
	case score >= 80:
		return "bg-success"
	case score >= 60:
		return "bg-warning"
	default:
		return "bg-danger"
	}
}

func StatusText(score int) string {
	switch {
	case score >= 80:
		return "Good"
	case score >= 60:
		return "Fair"
	default:
		return "Poor"
	}
}

// ProgressClass is the four-step colour scale used for category scores.
func ProgressClass(score int) string {
	switch {
	case score >= 80:
		return "bg-success"
	case score >= 60:
		return "bg-warning"
	case score >= 40:
		return "bg-info"
	default:
		return "bg-danger"
	}
}

// FormatNumber inserts thousands separators.
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// FormatDate renders an API date as "Jan 2, 2006". Unparseable input is
// returned unchanged.
func FormatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// Domain returns the host name of rawURL, or rawURL itself when it does
// not parse as an absolute URL.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
