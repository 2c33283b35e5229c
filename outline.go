package draftex

import (
	"regexp"
	"strings"
)

// sectioningPattern matches the fixed sectioning command set, starred or
// not, anywhere on a line. The star only suppresses numbering in real
// LaTeX; here it changes nothing about label or level.
var sectioningPattern = regexp.MustCompile(`\\(chapter|section|subsection|subsubsection)\*?\{([^}]*)\}`)

// sectioningLevels is the fixed level scheme shared with the preview
// renderer.
var sectioningLevels = map[string]int{
	"chapter":       LevelChapter,
	"section":       LevelSection,
	"subsection":    LevelSubsection,
	"subsubsection": LevelSubsubsection,
}

// ExtractOutline scans source text line by line for sectioning commands and
// returns heading descriptors in document order. At most one entry is
// produced per physical line (first match wins; a second command on the
// same line is ignored, a known limitation). Non-matching lines are
// skipped. Never errors.
func ExtractOutline(src string) []OutlineEntry {
	var entries []OutlineEntry

	for i, line := range strings.Split(src, "\n") {
		m := sectioningPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, OutlineEntry{
			Label: strings.TrimSpace(m[2]),
			Level: sectioningLevels[m[1]],
			Line:  i + 1,
		})
	}

	return entries
}
