package render

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
		attr  string
	}{
		{"empty", "", "", ""},
		{"plain", "Observer", "Observer", "Observer"},
		{"entities", `a<b & "c" 'd'>`, "a&lt;b &amp; &quot;c&quot; &#39;d&#39;&gt;", "a&lt;b &amp; &quot;c&quot; &#39;d&#39;&gt;"},
		{"whitespace", "one\ntwo\tthree\r", "one\ntwo\tthree\r", "one&#10;two&#9;three&#13;"},
		{"unicode", "café → <é>", "café → &lt;é&gt;", "café → &lt;é&gt;"},
		{"leading special", "&x", "&amp;x", "&amp;x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeHTML(tt.input); got != tt.text {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.text)
			}
			if got := escapeAttr(tt.input); got != tt.attr {
				t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.attr)
			}
		})
	}
}

func TestEscapeAttrPlainAllocatesNothing(t *testing.T) {
	s := "pattern-card selected"
	allocs := testing.AllocsPerRun(100, func() {
		_ = escapeAttr(s)
	})
	if allocs != 0 {
		t.Errorf("expected no allocations for plain values, got %v", allocs)
	}
}
