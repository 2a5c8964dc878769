package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/scrim/tui"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List view layout templates",
	Long: `List the layout templates used to render view content.

Each view kind (toast, sheet, modal) is rendered through a Go template.
User templates are .tmpl files in ~/.config/scrim/templates/ and take
precedence over the bundled template of the same name. Unknown kinds
fall back to the toast template.`,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	user := userTemplates()

	for _, name := range tui.ListEmbeddedTemplates() {
		origin := "bundled"
		if user[name] {
			origin = "user override"
			delete(user, name)
		}
		fmt.Printf("%s (%s)\n", name, origin)
	}

	// User templates with no bundled counterpart
	extra := make([]string, 0, len(user))
	for name := range user {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		fmt.Printf("%s (user)\n", name)
	}

	return nil
}

// userTemplates returns the names of .tmpl files in the user templates
// directory, without the extension.
func userTemplates() map[string]bool {
	names := make(map[string]bool)

	dir, err := tui.TemplatesDir()
	if err != nil {
		return names
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tmpl" {
			continue
		}
		names[strings.TrimSuffix(entry.Name(), ".tmpl")] = true
	}

	return names
}
