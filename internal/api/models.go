package api

// AnalysisSummary is one entry of GET /api/analyses.
type AnalysisSummary struct {
	ID           int    `json:"id"`
	URL          string `json:"url"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	OverallScore int    `json:"overall_score"`
}

type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// Recommendations is the AI report for one analysis.
type Recommendations struct {
	Summary         string           `json:"summary"`
	Priorities      []string         `json:"priorities"`
	Recommendations []Recommendation `json:"recommendations"`
	Insights        string           `json:"insights"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatReply struct {
	Response string `json:"response"`
}

type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

func (h Health) Healthy() bool {
	return h.Status == "healthy"
}
