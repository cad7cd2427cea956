package form

import (
	"context"
	"log/slog"
)

// State of the submission pipeline.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Decision tells the caller what to do with a submit event.
type Decision int

const (
	// Cancel suppresses the submission; no request may be made.
	Cancel Decision = iota
	// Proceed lets the native form submission continue.
	Proceed
)

const (
	SubmitLabel = "Analyze"
	BusyLabel   = "Analyzing..."
)

// View is everything the controller renders onto the page.
type View struct {
	URL            string
	Field          Result
	AnalysisType   AnalysisType
	Description    string
	ButtonDisabled bool
	ButtonLabel    string
	ButtonBusy     bool
	OverlayVisible bool
}

// Controller holds the analysis form model and moves it through
// Idle -> Validating -> Submitting. Submitting is terminal.
type Controller struct {
	logger *slog.Logger
	state  State
	view   View
}

// NewController starts a controller in the Idle state. An unknown initial
// type falls back to meta.
func NewController(logger *slog.Logger, url, initialType string) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	t := ParseAnalysisType(initialType)

	return &Controller{
		logger: logger,
		state:  StateIdle,
		view: View{
			URL:          url,
			AnalysisType: t,
			Description:  t.Description(),
			ButtonLabel:  SubmitLabel,
		},
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) View() View { return c.view }

// Input records a keystroke and runs the realtime check.
func (c *Controller) Input(ctx context.Context, value string) View {
	if c.state == StateSubmitting {
		return c.view
	}

	c.view.URL = value
	c.view.Field = ValidateRealtime(value)

	if c.view.Field.Status == StatusUnchecked {
		c.state = StateIdle
	} else {
		c.state = StateValidating
	}

	c.logger.DebugContext(ctx, "Realtime validation",
		slog.String("state", c.state.String()),
		slog.String("status", c.view.Field.Status.String()),
	)
	return c.view
}

// Blur runs the strict check and reports whether the URL is valid.
func (c *Controller) Blur(ctx context.Context) bool {
	if c.state == StateSubmitting {
		return true
	}
	return c.validate(ctx)
}

func (c *Controller) validate(ctx context.Context) bool {
	c.state = StateValidating
	c.view.Field = ValidateStrict(c.view.URL)

	c.logger.DebugContext(ctx, "Strict validation",
		slog.String("status", c.view.Field.Status.String()),
		slog.String("reason", c.view.Field.Reason),
	)
	return c.view.Field.OK()
}

// SelectType handles a click on one of the analysis type buttons.
func (c *Controller) SelectType(t AnalysisType) View {
	if c.state == StateSubmitting {
		return c.view
	}
	c.view.AnalysisType = ParseAnalysisType(string(t))
	c.view.Description = c.view.AnalysisType.Description()
	return c.view
}

// Submit gates the form. On Cancel the error stays on the field and the
// button stays enabled. On Proceed the button goes busy and the loading
// overlay is shown; repeated submits are no-ops.
func (c *Controller) Submit(ctx context.Context) Decision {
	if c.state == StateSubmitting {
		return Proceed
	}

	if !c.validate(ctx) {
		c.logger.InfoContext(ctx, "Submission blocked by validation",
			slog.String("url", c.view.URL),
			slog.String("reason", c.view.Field.Reason),
		)
		return Cancel
	}

	c.state = StateSubmitting
	c.view.ButtonDisabled = true
	c.view.ButtonBusy = true
	c.view.ButtonLabel = BusyLabel
	c.view.OverlayVisible = true

	c.logger.InfoContext(ctx, "Submitting analysis",
		slog.String("url", c.view.URL),
		slog.String("analysis_type", c.view.AnalysisType.String()),
	)
	return Proceed
}
