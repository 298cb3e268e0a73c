package main

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/Carmen-Shannon/oxy-manip/engine/tour"
	"github.com/spf13/cobra"
)

// newTourCmd builds the "tour" command group for inspecting and converting tour files.
func newTourCmd() *cobra.Command {
	tourCmd := &cobra.Command{
		Use:   "tour",
		Short: "Inspect and convert bookmark tour files",
	}

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Print a tour's waypoints and segment durations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tour.Load(args[0])
			if err != nil {
				return err
			}
			printTour(cmd.OutOrStdout(), t)
			return nil
		},
	}

	convertCmd := &cobra.Command{
		Use:   "convert [in] [out]",
		Short: "Convert a tour between YAML and TOML (format chosen by extension)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tour.Load(args[0])
			if err != nil {
				return err
			}
			if err := tour.Save(args[1], t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d waypoints)\n", args[1], len(t.Waypoints))
			return nil
		},
	}

	tourCmd.AddCommand(infoCmd, convertCmd)
	return tourCmd
}

// printTour writes a human-readable summary of t.
func printTour(w io.Writer, t *tour.Tour) {
	fmt.Fprintln(w, titleStyle.Render(t.Name))
	mode, ok := t.Mode()
	if !ok {
		fmt.Fprintln(w, dimStyle.Render("no waypoints"))
		return
	}
	fmt.Fprintf(w, "mode: %s\nwaypoints: %d\n", mode, len(t.Waypoints))

	durations := t.Durations()
	for i, b := range t.Waypoints {
		fmt.Fprintf(w, "  %d. %s\n", i+1, describeBookmark(b))
		if i < len(durations) {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("     -> %.3f", durations[i])))
		}
	}
	fmt.Fprintf(w, "total: %.3f\n", t.TotalDuration())
}

func describeBookmark(b manipulator.Bookmark) string {
	if b.Mode == manipulator.ModeMap {
		return fmt.Sprintf("extent %.2f center (%.2f, %.2f)", b.Map.Extent, b.Map.Center.X(), b.Map.Center.Y())
	}
	o := b.Orbit
	return fmt.Sprintf("phi %.3f theta %.3f distance %.2f pivot (%.2f, %.2f, %.2f)",
		o.Phi, o.Theta, o.Distance, o.Pivot.X(), o.Pivot.Y(), o.Pivot.Z())
}
