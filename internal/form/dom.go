package form

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element selectors of the analysis page.
const (
	SelURLInput     = "#url-input"
	SelURLError     = "#url-input-error"
	SelTypeInput    = "#analysis_type"
	SelTypeButtons  = ".analysis-type-btn"
	SelDescription  = "#analysis-description"
	SelSubmitButton = "#analyze-button"
	SelOverlay      = "#loader-overlay"
)

const spinnerHTML = `<span class="spinner-border spinner-border-sm" role="status" aria-hidden="true"></span>`

// Page is the analysis page's DOM. A Controller is hydrated from it and
// its View is written back with Apply.
type Page struct {
	doc *goquery.Document
}

func NewPage(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Page{doc: goquery.NewDocumentFromNode(root)}, nil
}

func (p *Page) Document() *goquery.Document { return p.doc }

// URLValue is the current content of the URL input.
func (p *Page) URLValue() string {
	return p.doc.Find(SelURLInput).AttrOr("value", "")
}

// AnalysisTypeValue is the raw value of the hidden type field.
func (p *Page) AnalysisTypeValue() string {
	return p.doc.Find(SelTypeInput).AttrOr("value", "")
}

// Controller returns a controller hydrated from the page's field values.
func (p *Page) Controller(logger *slog.Logger) *Controller {
	return NewController(logger, p.URLValue(), p.AnalysisTypeValue())
}

// Apply writes v onto the page. Applying the same view twice leaves the
// document unchanged.
func (p *Page) Apply(v View) {
	input := p.doc.Find(SelURLInput)
	input.SetAttr("value", v.URL)

	switch v.Field.Status {
	case StatusValid:
		input.RemoveClass("is-invalid").AddClass("is-valid")
	case StatusInvalid:
		input.RemoveClass("is-valid").AddClass("is-invalid")
	default:
		input.RemoveClass("is-valid", "is-invalid")
	}
	tidyClass(input)
	p.doc.Find(SelURLError).SetText(v.Field.Reason)

	p.doc.Find(SelTypeInput).SetAttr("value", v.AnalysisType.String())
	p.doc.Find(SelTypeButtons).Each(func(i int, s *goquery.Selection) {
		if s.AttrOr("data-type", "") == v.AnalysisType.String() {
			s.AddClass("active", "btn-primary").RemoveClass("btn-outline-primary")
			return
		}
		s.RemoveClass("active", "btn-primary").AddClass("btn-outline-primary")
	})
	tidyClass(p.doc.Find(SelTypeButtons))
	p.doc.Find(SelDescription).SetText(v.Description)

	button := p.doc.Find(SelSubmitButton)
	if v.ButtonDisabled {
		button.SetAttr("disabled", "disabled")
	} else {
		button.RemoveAttr("disabled")
	}
	if v.ButtonBusy {
		button.SetHtml(spinnerHTML + " " + html.EscapeString(v.ButtonLabel))
	} else {
		button.SetText(v.ButtonLabel)
	}

	overlay := p.doc.Find(SelOverlay)
	if v.OverlayVisible {
		overlay.RemoveClass("d-none")
	} else {
		overlay.AddClass("d-none")
	}
	tidyClass(overlay)
}

// tidyClass collapses the gaps RemoveClass leaves in class attributes.
func tidyClass(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		if class, ok := s.Attr("class"); ok {
			s.SetAttr("class", strings.Join(strings.Fields(class), " "))
		}
	})
}

// Render writes the whole document.
func (p *Page) Render(w io.Writer) error {
	for _, n := range p.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("failed to render page: %w", err)
		}
	}
	return nil
}
