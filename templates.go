package draftex

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates/*.tex
var templateFS embed.FS

// Template returns the source scaffold for a new file by name
// (e.g. "article"). The set is small and fixed; unknown names return
// ErrTemplateNotFound.
func Template(name string) (string, error) {
	data, err := templateFS.ReadFile("templates/" + name + ".tex")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(data), nil
}

// TemplateNames lists the available scaffolds in sorted order.
func TemplateNames() []string {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tex"))
	}
	sort.Strings(names)
	return names
}
