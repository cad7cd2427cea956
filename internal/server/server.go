// Package server serves the analysis form, dashboard, report and chat
// pages and the validation endpoint.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"seo-web/internal/api"
	"seo-web/internal/form"
	"seo-web/internal/view"
)

// fragmentHeader marks requests from the page script that want a fragment
// instead of a full page.
const fragmentHeader = "X-Fragment"

// Backend is the part of the JSON API the pages consume.
type Backend interface {
	Analyses(ctx context.Context) api.Result[[]api.AnalysisSummary]
	Recommendations(ctx context.Context, analysisID int) api.Result[api.Recommendations]
	Chat(ctx context.Context, analysisID, message string) api.Result[api.ChatReply]
}

type Options struct {
	// AnalyzeURL receives valid form submissions via a 307 redirect.
	AnalyzeURL string
	// DefaultAnalysisType is preselected on a fresh form.
	DefaultAnalysisType string
}

type Server struct {
	logger   *slog.Logger
	backend  Backend
	renderer *view.Renderer
	metrics  *Metrics
	opts     Options
}

func New(logger *slog.Logger, backend Backend, renderer *view.Renderer, metrics *Metrics, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if opts.DefaultAnalysisType == "" {
		opts.DefaultAnalysisType = string(form.TypeMeta)
	}
	return &Server{
		logger:   logger,
		backend:  backend,
		renderer: renderer,
		metrics:  metrics,
		opts:     opts,
	}
}

// Router returns the HTTP handler with every route mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleAnalysisPage)
	r.Get("/analyze", s.handleAnalysisPage)
	r.Post("/analyze", s.handleSubmit)
	r.Get("/validate", s.handleValidate)

	r.Get("/dashboard", s.handleDashboard)
	r.Get("/dashboard/history", s.handleHistory)
	r.Get("/dashboard/chart", s.handleChart)

	r.Get("/report/{id}", s.handleReport)
	r.Get("/report/{id}/recommendations", s.handleRecommendations)

	r.Post("/chat", s.handleChat)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(view.Assets()))))

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func clientError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	trace := string(debug.Stack())
	loggerFrom(r.Context(), s.logger).ErrorContext(r.Context(), "Internal Server Error",
		slog.Any("error", err),
		slog.String("trace", trace),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// writeHTML sends a fully rendered body so template failures still yield a clean 500.
func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderPage renders the analysis page as a DOM the form view can be
// applied to.
func (s *Server) renderPage(url, analysisType string) (*form.Page, error) {
	var buf bytes.Buffer
	if err := s.renderer.Analysis(&buf, view.NewAnalysisPage(url, analysisType)); err != nil {
		return nil, err
	}
	return form.NewPage(&buf)
}

// handleAnalysisPage serves the form. The type buttons submit the form back
// here by GET with type set; clicking one also moves focus off the URL
// field, so a non-empty URL gets the strict check.
func (s *Server) handleAnalysisPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	analysisType := q.Get("analysis_type")
	if analysisType == "" {
		analysisType = s.opts.DefaultAnalysisType
	}
	url := q.Get("url")

	page, err := s.renderPage(url, analysisType)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	ctrl := page.Controller(loggerFrom(r.Context(), s.logger))
	if url != "" {
		ctrl.Input(r.Context(), url)
	}
	if clicked := q.Get("type"); clicked != "" {
		ctrl.SelectType(form.ParseAnalysisType(clicked))
		if url != "" {
			ctrl.Blur(r.Context())
		}
	}
	page.Apply(ctrl.View())

	s.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return page.Render(buf)
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		clientError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	url := r.PostForm.Get("url")
	analysisType := r.PostForm.Get("analysis_type")
	logger := loggerFrom(r.Context(), s.logger)

	ctrl := form.NewController(logger, url, analysisType)
	decision := ctrl.Submit(r.Context())
	chosen := ctrl.View().AnalysisType
	s.metrics.ObserveSubmission(decision, chosen)

	if decision == form.Proceed {
		logger.InfoContext(r.Context(), "Forwarding analysis to backend",
			slog.String("url", url),
			slog.String("analysis_type", chosen.String()),
		)
		http.Redirect(w, r, s.opts.AnalyzeURL, http.StatusTemporaryRedirect)
		return
	}

	page, err := s.renderPage(url, analysisType)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	page.Apply(ctrl.View())
	s.writeHTML(w, r, http.StatusUnprocessableEntity, func(buf *bytes.Buffer) error {
		return page.Render(buf)
	})
}

type validation struct {
	URL     string `json:"url"`
	Mode    string `json:"mode"`
	Status  string `json:"status"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	url := q.Get("url")
	mode := q.Get("mode")

	var res form.Result
	switch mode {
	case "", "realtime":
		mode = "realtime"
		res = form.ValidateRealtime(url)
	case "strict":
		res = form.ValidateStrict(url)
	default:
		clientError(w, http.StatusBadRequest, "mode must be realtime or strict")
		return
	}

	writeJSON(w, http.StatusOK, validation{
		URL:     url,
		Mode:    mode,
		Status:  res.Status.String(),
		Valid:   res.OK(),
		Message: res.Reason,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		wg      sync.WaitGroup
		history view.History
		chart   view.Chart
	)

	// History and chart load independently, as two separate requests.
	wg.Add(2)
	go func() {
		defer wg.Done()
		history = view.NewHistory(s.backend.Analyses(r.Context()))
	}()
	go func() {
		defer wg.Done()
		chart = view.NewChart(s.backend.Analyses(r.Context()))
	}()
	wg.Wait()

	s.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Dashboard(buf, view.Dashboard{History: history, Chart: chart})
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := view.NewHistory(s.backend.Analyses(r.Context()))
	s.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.History(buf, history)
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	chart := view.NewChart(s.backend.Analyses(r.Context()))
	if chart.Message != "" {
		writeJSON(w, http.StatusOK, map[string]any{"message": chart.Message, "failed": chart.Failed})
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func analysisID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r)
	if !ok {
		clientError(w, http.StatusNotFound, "Not Found")
		return
	}

	report := s.loadReport(r.Context(), id)
	s.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Report(buf, report)
	})
}

// loadReport fetches the analysis list and the recommendations concurrently.
func (s *Server) loadReport(ctx context.Context, id int) view.Report {
	var (
		wg       sync.WaitGroup
		analyses api.Result[[]api.AnalysisSummary]
		recs     api.Result[api.Recommendations]
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analyses = s.backend.Analyses(ctx)
	}()
	go func() {
		defer wg.Done()
		recs = s.backend.Recommendations(ctx, id)
	}()
	wg.Wait()

	var summary *api.AnalysisSummary
	for i := range analyses.Value {
		if analyses.Value[i].ID == id {
			summary = &analyses.Value[i]
			break
		}
	}
	return view.NewReport(id, summary, view.NewRecommendations(id, recs))
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(r)
	if !ok {
		clientError(w, http.StatusNotFound, "Not Found")
		return
	}

	recs := view.NewRecommendations(id, s.backend.Recommendations(r.Context(), id))
	s.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Recommendations(buf, recs)
	})
}

// handleChat answers the report page's chat form. Requests carrying
// X-Fragment get only the new messages; plain form posts get the report
// page again with the exchange below the welcome message.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		clientError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	message, ok := view.NormalizeChatMessage(r.PostForm.Get("message"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rawID := r.PostForm.Get("analysis_id")
	fragment := r.Header.Get(fragmentHeader) != ""
	id, err := strconv.Atoi(rawID)
	if !fragment && (err != nil || id <= 0) {
		clientError(w, http.StatusBadRequest, "analysis_id must be a positive integer")
		return
	}

	msgs := view.ChatExchange(message, s.backend.Chat(r.Context(), rawID, message))
	if fragment {
		s.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
			return s.renderer.ChatMessages(buf, msgs)
		})
		return
	}

	report := s.loadReport(r.Context(), id)
	report.Messages = append(report.Messages, msgs...)
	report.ChatPrefill = ""
	s.writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Report(buf, report)
	})
}
