package draftex

import (
	"strings"
	"testing"
)

func TestRewriteNamedEnvironments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "abstract block",
			input:    "\\begin{abstract}\nThis paper studies drafts.\n\\end{abstract}",
			expected: "<div class=\"abstract\"><h3>Abstract</h3>\n<p>This paper studies drafts.</p></div>",
		},
		{
			name:     "keywords environment",
			input:    "\\begin{keywords}\nediting, preview\n\\end{keywords}",
			expected: `<div class="keywords"><strong>Keywords:</strong> editing, preview</div>`,
		},
		{
			name:     "keywords command",
			input:    `\keywords{editing, preview}`,
			expected: `<div class="keywords"><strong>Keywords:</strong> editing, preview</div>`,
		},
		{
			name:     "unclosed abstract passes through",
			input:    `\begin{abstract} dangling`,
			expected: `\begin{abstract} dangling`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteNamedEnvironments(tt.input)
			if got != tt.expected {
				t.Errorf("rewriteNamedEnvironments() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRewriteMath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "inline math",
			input:    "Let $x+y$ hold",
			expected: `Let <code class="math-inline">x+y</code> hold`,
		},
		{
			name:     "display delimiters",
			input:    `\[E = mc^2\]`,
			expected: `<div class="math-block"><code>E = mc^2</code></div>`,
		},
		{
			name:     "equation environment freezes backslashes",
			input:    "\\begin{equation}\n\\frac{a}{b}\n\\end{equation}",
			expected: `<div class="math-block"><code>&#92;frac{a}{b}</code></div>`,
		},
		{
			name:     "starred align",
			input:    `\begin{align*}x &= y\end{align*}`,
			expected: `<div class="math-block"><code>x &amp;= y</code></div>`,
		},
		{
			name:     "inline math does not span lines",
			input:    "a $x\ny$ b",
			expected: "a $x\ny$ b",
		},
		{
			name:     "percent in math frozen against comment stripping",
			input:    `$50\% error$`,
			expected: `<code class="math-inline">50&#92;&#37; error</code>`,
		},
		{
			name:     "escaped dollars never pair as delimiters",
			input:    `Prices are \$5 and \$10 today.`,
			expected: `Prices are &#36;5 and &#36;10 today.`,
		},
		{
			name:     "escaped dollar beside real inline math",
			input:    `Pay \$3 for $x$.`,
			expected: `Pay &#36;3 for <code class="math-inline">x</code>.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteMath(tt.input)
			if got != tt.expected {
				t.Errorf("rewriteMath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRewriteBibliography(t *testing.T) {
	input := "\\begin{thebibliography}{9}\n" +
		"\\bibitem{knuth} Knuth, The Art of Computer Programming.\n" +
		"\\bibitem{lamport} Lamport, LaTeX: A Document Preparation System.\n" +
		"\\end{thebibliography}"

	got := rewriteBibliography(input)

	if !strings.Contains(got, "<h3>References</h3>") {
		t.Errorf("missing references heading in %q", got)
	}
	if !strings.Contains(got, `<ol class="references">`) {
		t.Errorf("missing ordered list in %q", got)
	}
	for _, want := range []string{
		"<li>Knuth, The Art of Computer Programming.</li>",
		"<li>Lamport, LaTeX: A Document Preparation System.</li>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestRewriteBibliographyEmpty(t *testing.T) {
	got := rewriteBibliography("\\begin{thebibliography}{9}\n\\end{thebibliography}")
	if got != "" {
		t.Errorf("empty bibliography should render nothing, got %q", got)
	}
}

func TestRewriteLists(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "itemize to unordered list",
			input:    "\\begin{itemize}\n\\item first\n\\item second\n\\end{itemize}",
			expected: "<ul>\n<li>first</li>\n<li>second</li>\n</ul>",
		},
		{
			name:     "enumerate to ordered list",
			input:    "\\begin{enumerate}\n\\item one\n\\item two\n\\end{enumerate}",
			expected: "<ol>\n<li>one</li>\n<li>two</li>\n</ol>",
		},
		{
			name:     "non-item line kept outside entries",
			input:    "\\begin{itemize}\n\\item first\nstray line\n\\end{itemize}",
			expected: "<ul>\n<li>first</li>\nstray line\n</ul>",
		},
		{
			name:     "blank lines inside list skipped",
			input:    "\\begin{itemize}\n\\item a\n\n\\item b\n\\end{itemize}",
			expected: "<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteLists(tt.input)
			if got != tt.expected {
				t.Errorf("rewriteLists() = %q, want %q", got, tt.expected)
			}
		})
	}
}
