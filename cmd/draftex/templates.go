package main

import (
	"fmt"

	"github.com/ebisse/draftex"
)

// runTemplates lists the bundled document scaffolds.
func runTemplates() error {
	for _, name := range draftex.TemplateNames() {
		fmt.Println(name)
	}
	return nil
}
