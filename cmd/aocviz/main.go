package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/san-kum/aocviz/internal/logging"
	"github.com/spf13/cobra"
)

var (
	visualize   bool
	interactive bool
	fps         float64
	gifPath     string
	gifWidth    int
	historySize int
	jitter      float64
	aspect      float64
	dither      bool
	configFile  string
	preset      string
	stats       bool
	svgPath     string
	saveRun     bool
	verbosity   int
)

// main registers the commands and runs the launcher when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "aocviz",
		Short:         "puzzle solvers with terminal and GIF visualization",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
		},
		RunE: runLauncher,
	}
	rootCmd.PersistentFlags().CountVar(&verbosity, "verbose", "log verbosity (repeat for more)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "solve a demo puzzle",
		Args:  cobra.ExactArgs(1),
		RunE:  runDemo,
	}
	runCmd.Flags().BoolVarP(&visualize, "visualize", "v", false, "print frames to the terminal")
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse frames with the keyboard")
	runCmd.Flags().Float64Var(&fps, "fps", 30, "frames per second")
	runCmd.Flags().StringVar(&gifPath, "gif", "", "write an animation instead (.gif file or PNG directory)")
	runCmd.Flags().IntVar(&gifWidth, "gif-width", 800, "animation width in pixels")
	runCmd.Flags().IntVar(&historySize, "history", 1000, "frames kept for browsing")
	runCmd.Flags().Float64Var(&jitter, "jitter", 0, "random glyph offset range in pixels")
	runCmd.Flags().Float64Var(&aspect, "aspect", 1, "character cell width / height")
	runCmd.Flags().BoolVar(&dither, "dither", false, "dither GIF colors")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a preset configuration")
	runCmd.Flags().BoolVar(&stats, "stats", false, "chart frame timings when done")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the last frame as SVG")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "record the run in the run log")

	demosCmd := &cobra.Command{
		Use:   "demos",
		Short: "list demos",
		RunE:  listDemos,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(runCmd, demosCmd, presetsCmd, runsCmd)

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
