package tui

import (
	"embed"
	"strings"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// embeddedTemplate returns an embedded layout template by name.
// The name should not include the .tmpl extension.
func embeddedTemplate(name string) ([]byte, bool) {
	data, err := embeddedTemplates.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return nil, false
	}
	return data, true
}

// ListEmbeddedTemplates returns the names of all embedded layout templates.
func ListEmbeddedTemplates() []string {
	entries, err := embeddedTemplates.ReadDir("templates")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".tmpl") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".tmpl"))
		}
	}
	return names
}
