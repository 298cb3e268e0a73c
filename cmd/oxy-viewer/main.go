// Command oxy-viewer drives a camera manipulator from a GLFW window and manages bookmark tours.
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	version = "dev"

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The root command opens the viewer window.
func newRootCmd() *cobra.Command {
	var settingsPath string

	rootCmd := &cobra.Command{
		Use:   "oxy-viewer",
		Short: "Orbit and map camera viewer",
		Long: titleStyle.Render("oxy-viewer") + `

Drag to rotate (orbit) or pan (map), Shift-drag or right-drag to strafe, scroll to zoom.
H flies home, B adds a tour waypoint, 1-9 fly to waypoints, P plays the tour,
C clears it, S/L save and load it, M switches mode, Esc quits.

` + dimStyle.Render("Use 'oxy-viewer [command] --help' for more information."),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(settingsPath)
		},
	}
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "viewer.yaml", "settings file")

	rootCmd.AddCommand(newTourCmd())
	return rootCmd
}
