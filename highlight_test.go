package draftex

import (
	"strings"
	"testing"
)

func TestFreezeRaw(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "html specials",
			input:    "a < b && c > d",
			expected: "a &lt; b &amp;&amp; c &gt; d",
		},
		{
			name:     "backslash frozen",
			input:    `\textbf{x}`,
			expected: "&#92;textbf{x}",
		},
		{
			name:     "percent frozen",
			input:    "100% sure",
			expected: "100&#37; sure",
		},
		{
			name:     "dollar frozen",
			input:    "$PATH",
			expected: "&#36;PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := freezeRaw(tt.input)
			if got != tt.expected {
				t.Errorf("freezeRaw() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFreezeCodeBlocksVerbatim(t *testing.T) {
	input := "\\begin{verbatim}\n\\textbf{raw} % not a comment\n\\end{verbatim}"
	expected := `<pre class="code-block"><code>&#92;textbf{raw} &#37; not a comment</code></pre>`

	got := freezeCodeBlocks(input)
	if got != expected {
		t.Errorf("freezeCodeBlocks() = %q, want %q", got, expected)
	}
}

func TestFreezeCodeBlocksLstlistingPlain(t *testing.T) {
	input := "\\begin{lstlisting}\nx := 1\n\\end{lstlisting}"
	expected := `<pre class="code-block"><code>x := 1</code></pre>`

	got := freezeCodeBlocks(input)
	if got != expected {
		t.Errorf("freezeCodeBlocks() = %q, want %q", got, expected)
	}
}

func TestFreezeCodeBlocksLstlistingHighlighted(t *testing.T) {
	input := "\\begin{lstlisting}[language=go]\nfmt.Println(\"hi\")\n\\end{lstlisting}"
	got := freezeCodeBlocks(input)

	if !strings.Contains(got, "<pre") {
		t.Fatalf("expected pre block, got %q", got)
	}
	if !strings.Contains(got, "style=") {
		t.Errorf("expected inline highlight styles, got %q", got)
	}
	for _, forbidden := range []string{`\`, "$"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("unfrozen %q leaked into highlighted output: %q", forbidden, got)
		}
	}
}

func TestFreezeCodeBlocksUnknownLanguageFallsBack(t *testing.T) {
	input := "\\begin{lstlisting}[language=nosuchlang]\ncode here\n\\end{lstlisting}"
	got := freezeCodeBlocks(input)

	if !strings.Contains(got, `class="code-block"`) {
		t.Errorf("unknown language should fall back to a plain block, got %q", got)
	}
	if !strings.Contains(got, "code here") {
		t.Errorf("code content lost: %q", got)
	}
}

func TestRenderPreviewCodeSurvivesCascade(t *testing.T) {
	// Commands inside a code block must come through escaped, never
	// rewritten by later stages.
	input := "\\begin{verbatim}\n\\section{not a heading} $x$ \\textbf{raw}\n\\end{verbatim}"
	got := RenderPreview(input)

	if strings.Contains(got, "<h1>") || strings.Contains(got, "<strong>") {
		t.Errorf("frozen content was rewritten: %q", got)
	}
	if !strings.Contains(got, "&#92;section{not a heading}") {
		t.Errorf("escaped command missing from %q", got)
	}
	if !strings.Contains(got, "&#36;x&#36;") {
		t.Errorf("escaped math delimiters missing from %q", got)
	}
}
