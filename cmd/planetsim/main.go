package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/san-kum/planetsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	logLevel    string
	steps       int
	recordEvery int
	dt          float64
	integrator  string
	sequential  bool
	minDistance float64
	trailLimit  int
	outFile     string
	bodyFilter  string

	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepPoints  int
	trials       int
	perturbation float64
	seed         int64

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "planetsim",
	})
)

// main registers the commands and opens the window when no subcommand is
// given. It exits with status 1 when the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "planetsim",
		Short:         "newtonian planet simulation",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
		RunE: runGUI,
	}
	addSimFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".planetsim", "run store directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "open the simulation window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run headless and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance to the primary for each body",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyFilter, "body", "", "plot only this body")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital periods",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the recorded orbits as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same preset",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file and save the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one parameter and report the metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&integrator, "integrator", "", "integrator")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dt", "parameter to sweep (dt, min_distance, g)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value (default depends on --param)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0, "last value (default depends on --param)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 6, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "perturb initial velocities and count stable trials",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().StringVar(&integrator, "integrator", "", "integrator")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturb", 0.1, "maximum relative velocity change")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the preset's bodies spelled out",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(guiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd, compareCmd, scenarioCmd, sweepCmd, monteCarloCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep in seconds (default one day)")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator (semi-implicit, semi-implicit-sequential, euler, verlet, rk4)")
	cmd.Flags().BoolVar(&sequential, "sequential", false, "update bodies one at a time in order")
	cmd.Flags().Float64Var(&minDistance, "min-distance", 0, "force softening floor in meters (0 disables)")
	cmd.Flags().IntVar(&trailLimit, "trail-limit", 0, "keep only the newest N trail points (0 keeps all)")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&steps, "steps", 0, "number of ticks")
	cmd.Flags().IntVar(&recordEvery, "record-every", 0, "record one snapshot every N ticks")
}

// loadConfig resolves the effective config: the named preset (or the
// config file when --config is set), then any flag the user changed.
func loadConfig(cmd *cobra.Command, presetName string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debug("loaded config", "path", configFile)
	} else {
		if presetName == "" {
			presetName = config.DefaultPreset
		}
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("dt") {
		cfg.Dt = dt
	}
	if changed("integrator") {
		cfg.Integrator = integrator
	}
	if changed("sequential") && sequential {
		cfg.Integrator = "semi-implicit-sequential"
	}
	if changed("min-distance") {
		cfg.MinDistance = minDistance
	}
	if changed("trail-limit") {
		cfg.TrailLimit = trailLimit
	}
	if changed("steps") {
		cfg.Steps = steps
	}
	if changed("record-every") {
		cfg.RecordEvery = recordEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func presetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
