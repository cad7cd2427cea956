package form

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html><body>
<form id="analysis-form" method="post" action="/analyze">
  <input type="url" id="url-input" name="url" class="form-control" value="%URL%">
  <button type="submit" id="analyze-button" class="btn btn-primary">Analyze</button>
  <div id="url-input-error" class="invalid-feedback"></div>
  <input type="hidden" id="analysis_type" name="analysis_type" value="%TYPE%">
  <button type="submit" formmethod="get" formaction="/analyze" formnovalidate name="type" value="meta" class="btn analysis-type-btn btn-outline-primary" data-type="meta">Meta</button>
  <button type="submit" formmethod="get" formaction="/analyze" formnovalidate name="type" value="partial" class="btn analysis-type-btn btn-outline-primary" data-type="partial">Partial</button>
  <button type="submit" formmethod="get" formaction="/analyze" formnovalidate name="type" value="complete" class="btn analysis-type-btn btn-outline-primary" data-type="complete">Complete</button>
  <button type="submit" formmethod="get" formaction="/analyze" formnovalidate name="type" value="deep" class="btn analysis-type-btn btn-outline-primary" data-type="deep">Deep</button>
  <p id="analysis-description"></p>
</form>
<div id="loader-overlay" class="d-none"></div>
</body></html>`

func newTestPage(t *testing.T, url, typ string) *Page {
	t.Helper()
	src := strings.NewReplacer("%URL%", url, "%TYPE%", typ).Replace(testPage)
	p, err := NewPage(strings.NewReader(src))
	require.NoError(t, err)
	return p
}

func TestPageHydration(t *testing.T) {
	p := newTestPage(t, "https://example.com", "")

	assert.Equal(t, "https://example.com", p.URLValue())
	assert.Equal(t, "", p.AnalysisTypeValue())

	c := p.Controller(newTestLogger())
	assert.Equal(t, TypeMeta, c.View().AnalysisType)
	assert.Equal(t, "https://example.com", c.View().URL)
}

func TestPageApplySelector(t *testing.T) {
	for _, typ := range AnalysisTypes {
		t.Run(string(typ), func(t *testing.T) {
			p := newTestPage(t, "", "meta")
			c := p.Controller(newTestLogger())

			p.Apply(c.SelectType(typ))
			doc := p.Document()

			active := doc.Find(SelTypeButtons + ".active")
			require.Equal(t, 1, active.Length(), "exactly one active button")
			assert.Equal(t, string(typ), active.AttrOr("data-type", ""))
			assert.True(t, active.HasClass("btn-primary"))
			assert.False(t, active.HasClass("btn-outline-primary"))
			assert.Equal(t, 3, doc.Find(SelTypeButtons+".btn-outline-primary").Length())

			assert.Equal(t, string(typ), doc.Find(SelTypeInput).AttrOr("value", ""))
			assert.Equal(t, descriptions[typ], doc.Find(SelDescription).Text())
		})
	}
}

func TestPageApplyRealtime(t *testing.T) {
	ctx := context.Background()
	p := newTestPage(t, "", "meta")
	c := p.Controller(newTestLogger())
	input := p.Document().Find(SelURLInput)

	p.Apply(c.Input(ctx, "ftp://x"))
	assert.True(t, input.HasClass("is-invalid"))
	assert.False(t, input.HasClass("is-valid"))
	assert.Equal(t, MsgMissingScheme, p.Document().Find(SelURLError).Text())

	p.Apply(c.Input(ctx, "https://example.com"))
	assert.True(t, input.HasClass("is-valid"))
	assert.False(t, input.HasClass("is-invalid"))
	assert.Equal(t, "", p.Document().Find(SelURLError).Text())

	p.Apply(c.Input(ctx, ""))
	assert.False(t, input.HasClass("is-valid"))
	assert.False(t, input.HasClass("is-invalid"))
	assert.True(t, input.HasClass("form-control"))
}

func TestPageApplySubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid", func(t *testing.T) {
		p := newTestPage(t, "https://a", "meta")
		c := p.Controller(newTestLogger())

		require.Equal(t, Cancel, c.Submit(ctx))
		p.Apply(c.View())

		doc := p.Document()
		button := doc.Find(SelSubmitButton)
		_, disabled := button.Attr("disabled")
		assert.False(t, disabled)
		assert.Equal(t, SubmitLabel, button.Text())
		assert.True(t, doc.Find(SelOverlay).HasClass("d-none"))
		assert.Equal(t, MsgInvalid, doc.Find(SelURLError).Text())
	})

	t.Run("valid", func(t *testing.T) {
		p := newTestPage(t, "https://example.com", "deep")
		c := p.Controller(newTestLogger())

		require.Equal(t, Proceed, c.Submit(ctx))
		p.Apply(c.View())

		doc := p.Document()
		button := doc.Find(SelSubmitButton)
		_, disabled := button.Attr("disabled")
		assert.True(t, disabled)
		assert.Equal(t, 1, button.Find(".spinner-border").Length())
		assert.Contains(t, button.Text(), BusyLabel)
		assert.False(t, doc.Find(SelOverlay).HasClass("d-none"))
	})
}

func TestPageApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := newTestPage(t, "", "partial")
	c := p.Controller(newTestLogger())
	c.Input(ctx, "https://example.com")
	c.Submit(ctx)

	var first, second bytes.Buffer
	p.Apply(c.View())
	require.NoError(t, p.Render(&first))
	p.Apply(c.View())
	require.NoError(t, p.Render(&second))

	assert.Equal(t, first.String(), second.String())

	doc := p.Document()
	assert.Equal(t, 1, doc.Find(SelSubmitButton+" .spinner-border").Length())
	assert.Equal(t, "form-control is-valid", doc.Find(SelURLInput).AttrOr("class", ""))
	assert.Equal(t, "btn analysis-type-btn active btn-primary", doc.Find(SelTypeButtons+".active").AttrOr("class", ""))
}

func TestPageApplyKeepsClassListTidy(t *testing.T) {
	ctx := context.Background()
	p := newTestPage(t, "", "meta")
	c := p.Controller(newTestLogger())

	// Flip the field between states so classes are added and removed.
	for _, in := range []string{"example.com", "https://example.com", "", "example.com"} {
		p.Apply(c.Input(ctx, in))
	}
	p.Apply(c.SelectType(TypeDeep))
	p.Apply(c.SelectType(TypeMeta))

	doc := p.Document()
	assert.Equal(t, "form-control is-invalid", doc.Find(SelURLInput).AttrOr("class", ""))
	doc.Find(SelTypeButtons).Each(func(_ int, s *goquery.Selection) {
		class := s.AttrOr("class", "")
		assert.NotContains(t, class, "  ")
		assert.Equal(t, class, strings.TrimSpace(class))
	})
	assert.Equal(t, "d-none", doc.Find(SelOverlay).AttrOr("class", ""))
}
