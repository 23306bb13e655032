package markup_test

import (
	"strings"
	"testing"

	"mstodo/internal/markup"
)

func TestClean_RemovesMarkerLines(t *testing.T) {
	in := "Header\n**\ntext\n__\nmore\n_\nend"
	got := markup.Clean(in)

	for _, line := range strings.Split(got, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "**" || trimmed == "__" || trimmed == "_" {
			t.Errorf("marker line survived cleaning: %q", line)
		}
	}
	if !strings.Contains(got, "Header") || !strings.Contains(got, "end") {
		t.Errorf("content lines lost: %q", got)
	}
}

func TestClean_RemovesUnderscoreLines(t *testing.T) {
	in := "above\n____\nbelow"
	got := markup.Clean(in)
	if strings.Contains(got, "____") {
		t.Errorf("underscore line survived: %q", got)
	}
	if got != "above\n\nbelow" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestClean_CollapsesBlankLines(t *testing.T) {
	cases := []string{
		"a\n\n\n\nb",
		"a\n\n\nb",
		"a\n**\n\n**\nb",
		"a\n\n   \n\nb",
	}
	for _, in := range cases {
		got := markup.Clean(in)
		if strings.Contains(got, "\n\n\n") {
			t.Errorf("Clean(%q) left 3+ newlines: %q", in, got)
		}
	}
}

func TestClean_StripsTrailingWhitespace(t *testing.T) {
	got := markup.Clean("line one   \nline two\t\nline three")
	for _, line := range strings.Split(got, "\n") {
		if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
			t.Errorf("line has trailing whitespace: %q", line)
		}
	}
}

func TestClean_TrimsWholeText(t *testing.T) {
	got := markup.Clean("\n\n  hello  \n\n")
	if got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	cases := []string{
		"",
		"plain text",
		"a\n**\n__\n____\nb",
		"a\n\n   \n\nb",
		"  padded  \n\n\n\nmore   \n**\n",
		"**bold** stays\n_\n",
	}
	for _, in := range cases {
		once := markup.Clean(in)
		twice := markup.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestClean_KeepsInlineEmphasis(t *testing.T) {
	got := markup.Clean("**2%**")
	if got != "**2%**" {
		t.Errorf("inline emphasis mangled: %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	in := `a<b>c:d"e/f\g|h?i*j`
	got := markup.SanitizeFilename(in)

	if strings.ContainsAny(got, `<>:"/\|?*`) {
		t.Errorf("invalid characters remain: %q", got)
	}
	if got != "a_b_c_d_e_f_g_h_i_j" {
		t.Errorf("expected %q, got %q", "a_b_c_d_e_f_g_h_i_j", got)
	}
}

func TestSanitizeFilename_Pure(t *testing.T) {
	in := "Plans: 2024/Q1"
	if markup.SanitizeFilename(in) != markup.SanitizeFilename(in) {
		t.Error("SanitizeFilename is not deterministic")
	}
	if markup.SanitizeFilename("Groceries") != "Groceries" {
		t.Error("clean names must pass through unchanged")
	}
}
