package form

// AnalysisType is the depth of SEO scan requested by the form.
type AnalysisType string

const (
	TypeMeta     AnalysisType = "meta"
	TypePartial  AnalysisType = "partial"
	TypeComplete AnalysisType = "complete"
	TypeDeep     AnalysisType = "deep"
)

// AnalysisTypes lists the known types in button order.
var AnalysisTypes = []AnalysisType{TypeMeta, TypePartial, TypeComplete, TypeDeep}

const defaultDescription = "Select an analysis type to begin."

var descriptions = map[AnalysisType]string{
	TypeMeta:     "Meta Tags Analysis checks your title, description, and meta tags for SEO best practices.",
	TypePartial:  "Partial Analysis includes meta tags plus basic content analysis including headings and content structure.",
	TypeComplete: "Complete Analysis provides a comprehensive review of meta tags, content, and technical SEO aspects.",
	TypeDeep:     "Deep Analysis includes everything in Complete Analysis plus AI-powered semantic analysis of your content.",
}

// ParseAnalysisType returns the matching type, or TypeMeta when s is empty
// or unknown.
func ParseAnalysisType(s string) AnalysisType {
	t := AnalysisType(s)
	if t.Known() {
		return t
	}
	return TypeMeta
}

func (t AnalysisType) Known() bool {
	_, ok := descriptions[t]
	return ok
}

// Description returns the help text shown under the type buttons.
func (t AnalysisType) Description() string {
	if d, ok := descriptions[t]; ok {
		return d
	}
	return defaultDescription
}

func (t AnalysisType) String() string { return string(t) }
