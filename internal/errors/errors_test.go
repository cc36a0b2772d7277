package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("P001")

	if err.Code != "P001" {
		t.Errorf("Code = %q, want %q", err.Code, "P001")
	}
	if err.Category != CategoryCatalog {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCatalog)
	}
	if err.Message != "Pattern not found" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Detail == "" {
		t.Error("Detail should come from the registry")
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("P999")
	if err.Code != "P999" || err.Message != "Unknown error" {
		t.Errorf("unexpected %+v", err)
	}
}

func TestRegistryCodes(t *testing.T) {
	for _, code := range Codes() {
		tmpl, ok := Lookup(code)
		if !ok {
			t.Fatalf("Lookup(%s) failed", code)
		}
		if !strings.HasPrefix(code, "P") || len(code) != 4 {
			t.Errorf("malformed code %q", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template", code)
		}
	}
}

func TestErrorString(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := New("P002").Wrap(cause)

	if got := err.Error(); got != "P002: Invalid catalog file: disk on fire" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "P041") != nil {
		t.Error("nil in, nil out")
	}

	coded := New("P020")
	if FromError(coded, "P041") != coded {
		t.Error("an *Error should pass through unchanged")
	}

	plain := stderrors.New("boom")
	wrapped := FromError(plain, "P041")
	if wrapped.Code != "P041" || !stderrors.Is(wrapped, plain) {
		t.Errorf("unexpected %+v", wrapped)
	}
	if !HasCode(wrapped, "P041") || HasCode(plain, "P041") {
		t.Error("HasCode mismatch")
	}
}

func TestFormat(t *testing.T) {
	err := New("P001").
		WithDetail(`No pattern matches "singelton"`).
		WithSuggestion(`Did you mean "singleton"?`)

	out := err.Format()
	for _, want := range []string{"ERROR P001:", "Pattern not found", `No pattern matches "singelton"`, "Hint:", `"singleton"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("P001").WithDetail("id x")
	if got := err.FormatCompact(); got != "P001: Pattern not found (id x)" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("P020").WithSuggestion("fix it").Wrap(stderrors.New("port 0"))

	var got map[string]string
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("invalid JSON: %v", jerr)
	}
	if got["code"] != "P020" || got["category"] != "config" || got["cause"] != "port 0" || got["suggestion"] != "fix it" {
		t.Errorf("unexpected JSON %v", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should give no lines")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, New("P060").WithDetail("show takes one id"))
	if !strings.Contains(buf.String(), "show takes one id") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "plain failure") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
