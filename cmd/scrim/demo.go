package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/scrim/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive overlay demo",
	Long: `Launch the interactive demo of the overlay container.

The demo presents toast, sheet, and modal views over a base screen and
lets you drive their dismiss gestures with the mouse. A view dragged
past its dismiss threshold (or flicked fast enough to carry it across)
is thrown off screen; released short of the threshold, it snaps back
into place.

Key bindings:
  t           Present a toast (flick right or up to dismiss)
  s           Present a sheet (drag down to dismiss)
  m           Present a modal (tap to dismiss)
  d, esc      Dismiss the front view
  D           Dismiss all views
  a           Toggle sound cues
  ?           Toggle help
  q           Quit

The demo reloads its configuration and theme live when the files
change, so display mode, gestures, and colors can be tuned while it
runs.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.RunOptions{
		ConfigPath: globalOpts.configPath,
		Logger:     logger,
	})
}
