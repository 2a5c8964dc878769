package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/scrim/style"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled and user themes.

User themes are TOML files in ~/.config/scrim/themes/ and take
precedence over bundled themes with the same name. The active theme is
selected by the theme.name config key and marked with an asterisk.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	loader := style.NewLoader(logger)

	for _, name := range loader.ListThemes() {
		marker := " "
		if name == cfg.Theme.Name {
			marker = "*"
		}

		origin := "user"
		if style.IsEmbeddedTheme(name) {
			origin = "bundled"
		}

		fmt.Printf("%s %s (%s)\n", marker, name, origin)
	}

	return nil
}
