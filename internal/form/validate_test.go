package form

import (
	"testing"
)

func TestValidateStrict(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantOK     bool
		wantReason string
	}{
		{name: "Valid HTTPS URL", input: "https://example.com", wantOK: true},
		{name: "Valid HTTP URL", input: "http://example.org", wantOK: true},
		{name: "Short TLD", input: "https://a.co", wantOK: true},
		{name: "With www", input: "https://www.google.com", wantOK: true},
		{name: "Path and query", input: "https://subdomain.example.co.uk/path?query=123", wantOK: true},
		{name: "Surrounding whitespace", input: "  https://example.com/a  ", wantOK: true},

		{name: "Empty string", input: "", wantReason: MsgEmpty},
		{name: "Whitespace only", input: "   ", wantReason: MsgEmpty},
		{name: "Invalid Scheme (ftp)", input: "ftp://example.com", wantReason: MsgMissingScheme},
		{name: "Missing Scheme", input: "www.google.com", wantReason: MsgMissingScheme},
		{name: "Just a host", input: "google.com", wantReason: MsgMissingScheme},
		{name: "Uppercase scheme", input: "HTTPS://example.com", wantReason: MsgMissingScheme},
		{name: "Host without a dot", input: "https://a", wantReason: MsgInvalid},
		{name: "Scheme only", input: "https://", wantReason: MsgInvalid},
		{name: "TLD too long", input: "https://example.abcdefg", wantReason: MsgInvalid},
		{name: "Space in host", input: "https://exa mple.com", wantReason: MsgInvalid},
		{name: "Byte order mark trimmed", input: "\ufeffhttps://a.co", wantOK: true},
		{name: "Only no-break spaces", input: "\u00a0\u00a0", wantReason: MsgEmpty},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateStrict(tc.input)
			if got.OK() != tc.wantOK {
				t.Errorf("ValidateStrict(%q).OK() = %v, want %v", tc.input, got.OK(), tc.wantOK)
			}
			if !tc.wantOK && got.Status != StatusInvalid {
				t.Errorf("ValidateStrict(%q) status = %v, want invalid", tc.input, got.Status)
			}
			if got.Reason != tc.wantReason {
				t.Errorf("ValidateStrict(%q) reason = %q, want %q", tc.input, got.Reason, tc.wantReason)
			}
		})
	}
}

func TestValidateRealtime(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantStatus Status
		wantReason string
	}{
		{name: "Empty clears", input: "", wantStatus: StatusUnchecked},
		{name: "Whitespace clears", input: " \t", wantStatus: StatusUnchecked},
		{name: "Valid HTTPS URL", input: "https://example.com", wantStatus: StatusValid},
		{name: "Partial scheme", input: "htt", wantStatus: StatusInvalid, wantReason: MsgMissingScheme},
		{name: "Invalid Scheme (ftp)", input: "ftp://example.com", wantStatus: StatusInvalid, wantReason: MsgMissingScheme},
		{name: "No dot yet", input: "https://exam", wantStatus: StatusInvalid, wantReason: MsgInvalid},
		{name: "Trailing dot only", input: "https://example.", wantStatus: StatusInvalid, wantReason: MsgInvalid},
		// Looser than the strict tier.
		{name: "Long TLD", input: "https://example.abcdefg", wantStatus: StatusValid},
		{name: "No-break space in host", input: "https://a\u00a0b.c", wantStatus: StatusInvalid, wantReason: MsgInvalid},
		{name: "Vertical tab in host", input: "https://a\vb.c", wantStatus: StatusInvalid, wantReason: MsgInvalid},
		{name: "Ideographic space in host", input: "https://a\u3000b.c", wantStatus: StatusInvalid, wantReason: MsgInvalid},
		{name: "Unicode padding trimmed", input: "\u00a0https://a.co\ufeff", wantStatus: StatusValid},
		{name: "Em space only clears", input: "\u2003", wantStatus: StatusUnchecked},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateRealtime(tc.input)
			if got.Status != tc.wantStatus {
				t.Errorf("ValidateRealtime(%q) status = %v, want %v", tc.input, got.Status, tc.wantStatus)
			}
			if got.Reason != tc.wantReason {
				t.Errorf("ValidateRealtime(%q) reason = %q, want %q", tc.input, got.Reason, tc.wantReason)
			}
		})
	}
}

func TestValidateWithoutSchemeAlwaysFails(t *testing.T) {
	inputs := []string{"example.com", "mailto:user@example.com", "//example.com", "file:///etc/hosts", "this is not a url", "httpx://example.com"}

	for _, in := range inputs {
		if got := ValidateStrict(in); got.OK() || got.Status != StatusInvalid {
			t.Errorf("ValidateStrict(%q) = %+v, want invalid", in, got)
		}
		if got := ValidateRealtime(in); got.OK() {
			t.Errorf("ValidateRealtime(%q) = %+v, want not ok", in, got)
		}
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	for _, in := range []string{"", "https://a", "https://a.co", "ftp://x.y"} {
		if ValidateStrict(in) != ValidateStrict(in) {
			t.Errorf("ValidateStrict(%q) is not stable", in)
		}
		if ValidateRealtime(in) != ValidateRealtime(in) {
			t.Errorf("ValidateRealtime(%q) is not stable", in)
		}
	}
}
