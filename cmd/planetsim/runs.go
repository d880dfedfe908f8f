package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planetsim/internal/analysis"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/export"
	"github.com/san-kum/planetsim/internal/physics"
	"github.com/san-kum/planetsim/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tDT\tINTEG\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0fs\t%s\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
			len(run.Bodies),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *dynamo.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Snapshots) == 0 {
		return nil, nil, fmt.Errorf("run %s has no snapshots", runID)
	}
	return meta, result, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(result.Snapshots))

	primary := meta.PrimaryIndex()
	plotted := 0
	for i, name := range result.Names {
		if i == primary || (bodyFilter != "" && name != bodyFilter) {
			continue
		}

		data := make([]float64, len(result.Snapshots))
		for j, snap := range result.Snapshots {
			data[j] = snap.Distance[i] / physics.AU
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Precision(4),
			asciigraph.Caption(fmt.Sprintf("%s distance to %s (AU)", name, meta.Primary)),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}

	if plotted == 0 {
		return fmt.Errorf("no body to plot")
	}
	return nil
}

// regularSnapshots drops a trailing snapshot recorded off the sampling
// grid, which happens when the step count is not a multiple of the
// recording interval.
func regularSnapshots(result *dynamo.Result, spacing float64) *dynamo.Result {
	n := len(result.Snapshots)
	if n < 3 {
		return result
	}
	last := result.Snapshots[n-1].Time - result.Snapshots[n-2].Time
	if last >= spacing*0.999 {
		return result
	}
	trimmed := *result
	trimmed.Snapshots = result.Snapshots[:n-1]
	return &trimmed
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	primary := meta.PrimaryIndex()
	if primary < 0 {
		return fmt.Errorf("run %s does not record its primary body", meta.ID)
	}
	spacing := meta.SampleSpacing()
	result = regularSnapshots(result, spacing)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d every %.2f days\n\n", len(result.Snapshots), spacing/physics.Day)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tREVOLUTION\tFFT PERIOD\tMIN DIST\tMAX DIST")

	for i, name := range result.Names {
		if i == primary {
			continue
		}
		series, err := analysis.RelativeSeries(result, i, primary)
		if err != nil {
			return err
		}
		dists := analysis.Distances(series)
		lo, hi := minMax(dists)

		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f AU\t%.4f AU\n",
			name,
			days(analysis.RevolutionPeriod(series, spacing)),
			days(analysis.DominantPeriod(dists, spacing)),
			lo/physics.AU,
			hi/physics.AU,
		)
	}

	return w.Flush()
}

func days(period float64, err error) string {
	switch {
	case errors.Is(err, analysis.ErrNoRevolution):
		return "> run length"
	case errors.Is(err, analysis.ErrNoSignal), errors.Is(err, analysis.ErrTooShort):
		return "n/a"
	case err != nil:
		return "error"
	}
	return fmt.Sprintf("%.2f d", period/physics.Day)
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, result); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outFile != "" {
		logger.Info("exported", "run", meta.ID, "path", outFile)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, result); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outFile != "" {
		logger.Info("exported", "run", meta.ID, "rows", len(result.Snapshots), "path", outFile)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	opts := export.DefaultSVGOptions()
	opts.Colors = meta.Colors
	opts.Radii = meta.Radii

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, export.OrbitsToSVG(result, opts)); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
