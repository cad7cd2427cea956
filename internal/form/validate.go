package form

import (
	"regexp"
	"strings"
)

const (
	MsgEmpty         = "Please enter a URL"
	MsgMissingScheme = "URL must start with http:// or https://"
	MsgInvalid       = "Please enter a valid URL"
)

// whitespace is the full set browsers treat as \s, which is wider than
// Go's ASCII-only \s.
const whitespace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	// Loose pattern used while the user is still typing.
	realtimePattern = regexp.MustCompile(`^https?://[^` + whitespace + `]+\.[^` + whitespace + `]+`)

	strictPattern = regexp.MustCompile(`^(https?://)(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)$`)
)

// Status is the visual state a validation leaves on the URL input.
type Status int

const (
	// StatusUnchecked means neither is-valid nor is-invalid is set.
	StatusUnchecked Status = iota
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "unchecked"
	}
}

// Result is the outcome of validating a URL candidate. Reason is empty
// unless Status is StatusInvalid.
type Result struct {
	Status Status
	Reason string
}

// OK reports whether the candidate may be submitted.
func (r Result) OK() bool {
	return r.Status == StatusValid
}

func valid() Result { return Result{Status: StatusValid} }

func invalid(reason string) Result { return Result{Status: StatusInvalid, Reason: reason} }

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// trim strips leading and trailing whitespace the way the form input does.
func trim(raw string) string {
	return strings.TrimFunc(raw, isSpace)
}

func hasScheme(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// ValidateRealtime is the permissive check run on every keystroke. An empty
// candidate is not yet validated rather than invalid.
func ValidateRealtime(raw string) Result {
	url := trim(raw)

	if url == "" {
		return Result{Status: StatusUnchecked}
	}
	if !hasScheme(url) {
		return invalid(MsgMissingScheme)
	}
	if !realtimePattern.MatchString(url) {
		return invalid(MsgInvalid)
	}
	return valid()
}

// ValidateStrict is the check run on blur and submit. Its result gates
// submission.
func ValidateStrict(raw string) Result {
	url := trim(raw)

	if url == "" {
		return invalid(MsgEmpty)
	}
	if !hasScheme(url) {
		return invalid(MsgMissingScheme)
	}
	if !strictPattern.MatchString(url) {
		return invalid(MsgInvalid)
	}
	return valid()
}
