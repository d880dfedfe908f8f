package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/planetsim/internal/config"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/experiment"
	"github.com/san-kum/planetsim/internal/storage"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, presetArg(args))
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.Build(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	logger.Info("running", "preset", cfg.Label(), "steps", cfg.Steps, "integrator", cfg.Integrator)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		if result == nil || result.StepsTaken == 0 {
			return err
		}
		logger.Warn("run stopped early, saving partial result", "steps", result.StepsTaken, "err", err)
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Preset:      cfg.Label(),
		Integrator:  cfg.Integrator,
		Dt:          cfg.Dt,
		RecordEvery: cfg.RecordEvery,
		G:           cfg.G,
		MinDistance: cfg.MinDistance,
		Primary:     exp.System().Primary().Name,
		Colors:      make(map[string]string),
		Radii:       make(map[string]float64),
	}
	for _, b := range exp.System().Bodies() {
		meta.Colors[b.Name] = config.FormatColor(b.Color)
		meta.Radii[b.Name] = b.Radius
	}
	runID, saveErr := st.Save(meta, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return err
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, metrics[name])
	}
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	presetName, names := args[0], args[1:]
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tENERGY DRIFT\tMOMENTUM DRIFT\tMAX ORBIT DRIFT\tSTABILITY\tTIME")

	for _, name := range names {
		cfg, err := loadConfig(cmd, presetName)
		if err != nil {
			return err
		}
		cfg.Integrator = name

		exp, err := experiment.Build(cfg, registry)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(cmd.Context())
		elapsed := time.Since(start)
		if err != nil {
			logger.Warn("integrator failed", "integrator", name, "err", err)
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%v\n", name, elapsed)
			continue
		}

		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.3e\t%.2f\t%v\n",
			name,
			result.Metrics["energy_drift"],
			result.Metrics["momentum_drift"],
			maxOrbitDrift(result),
			result.Metrics["stability"],
			elapsed.Round(time.Microsecond),
		)
	}

	return w.Flush()
}

func maxOrbitDrift(result *dynamo.Result) float64 {
	drift := 0.0
	for _, name := range result.Names {
		if v, ok := result.Metrics["orbit_radius_"+name]; ok && v > drift {
			drift = v
		}
	}
	return drift
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBODIES\tINTEGRATOR\tSTEPS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", name, p.Preset, p.Integrator, p.Steps, config.Describe(name))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, config.DefaultPreset)
	if err != nil {
		return err
	}
	bodies, err := cfg.BuildBodies()
	if err != nil {
		return err
	}
	cfg.Bodies = config.FromBodies(bodies)

	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	logger.Info("wrote config", "path", args[0], "bodies", len(bodies))
	return nil
}
