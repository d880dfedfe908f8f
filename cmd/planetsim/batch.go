package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/san-kum/planetsim/internal/automation"
	"github.com/san-kum/planetsim/internal/config"
	"github.com/san-kum/planetsim/internal/experiment"
	"github.com/san-kum/planetsim/internal/physics"
	"github.com/san-kum/planetsim/internal/storage"
	"github.com/spf13/cobra"
)

func progressLogger(kind string) automation.Progress {
	return func(done, total int, label string) {
		logger.Info(kind, "done", done, "total", total, "run", label)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logger.Info("scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	results, runErr := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), progressLogger("scenario"))

	for _, r := range results {
		bodies, err := r.Config.BuildBodies()
		if err != nil {
			return err
		}
		meta := storage.RunMetadata{
			Preset:      r.Step.Label(),
			Integrator:  r.Config.Integrator,
			Dt:          r.Config.Dt,
			RecordEvery: r.Config.RecordEvery,
			G:           r.Config.G,
			MinDistance: r.Config.MinDistance,
			Colors:      make(map[string]string),
			Radii:       make(map[string]float64),
		}
		for _, b := range bodies {
			if b.IsPrimary() {
				meta.Primary = b.Name
			}
			meta.Colors[b.Name] = config.FormatColor(b.Color)
			meta.Radii[b.Name] = b.Radius
		}

		runID, err := st.Save(meta, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", r.Step.Label(), runID)
	}

	return runErr
}

// sweepDefaults holds the --min and --max defaults for each parameter.
var sweepDefaults = map[string][2]float64{
	"dt":           {physics.Day / 8, physics.Day * 4},
	"g":            {physics.G / 2, physics.G * 2},
	"min_distance": {0, physics.AU / 10},
}

// sweepRange returns the sweep bounds, filling in the parameter's defaults
// for flags the user left unset.
func sweepRange(cmd *cobra.Command, param string) (float64, float64) {
	lo, hi := sweepMin, sweepMax
	def, ok := sweepDefaults[param]
	if !ok {
		return lo, hi
	}
	if !cmd.Flags().Changed("min") {
		lo = def[0]
	}
	if !cmd.Flags().Changed("max") {
		hi = def[1]
	}
	return lo, hi
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, presetArg(args))
	if err != nil {
		return err
	}

	lo, hi := sweepRange(cmd, sweepParam)
	sweep := &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      lo,
		Max:      hi,
		NumSteps: sweepPoints,
	}

	results, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry(), progressLogger("sweep"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tENERGY DRIFT\tMOMENTUM DRIFT\tSTABILITY\tERROR\n", sweepParam)
	for _, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%.3e\t%.2f\t%s\n",
			r.ParamValue,
			r.StepsTaken,
			r.Metrics["energy_drift"],
			r.Metrics["momentum_drift"],
			r.Metrics["stability"],
			errText,
		)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, presetArg(args))
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), mc, experiment.NewRegistry(), nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSTABLE\tENERGY DRIFT\tVELOCITY FACTORS")
	for _, r := range results {
		names := make([]string, 0, len(r.Factors))
		for name := range r.Factors {
			names = append(names, name)
		}
		sort.Strings(names)

		factors := ""
		for _, name := range names {
			factors += fmt.Sprintf("%s=%.3f ", name, r.Factors[name])
		}
		fmt.Fprintf(w, "%d\t%v\t%.3e\t%s\n", r.TrialID, r.Stable, r.EnergyDrift, factors)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}
