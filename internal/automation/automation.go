// Package automation runs batches of simulations: scripted scenarios,
// parameter sweeps and randomized stability trials.
package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/planetsim/internal/config"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/experiment"
	"gopkg.in/yaml.v3"
)

// Progress is called after each completed run.
type Progress func(done, total int, label string)

func noProgress(int, int, string) {}

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Zero fields keep the preset's value.
type ScenarioStep struct {
	Preset      string   `yaml:"preset"`
	Integrator  string   `yaml:"integrator"`
	Dt          float64  `yaml:"dt"`
	Steps       int      `yaml:"steps"`
	RecordEvery int      `yaml:"record_every"`
	MinDistance *float64 `yaml:"min_distance"`
	TrailLimit  int      `yaml:"trail_limit"`
	SaveAs      string   `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", dynamo.ErrInvalidConfig, scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the step against its preset.
func (s ScenarioStep) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = config.DefaultPreset
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: unknown preset %q", dynamo.ErrInvalidConfig, name)
	}

	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.RecordEvery != 0 {
		cfg.RecordEvery = s.RecordEvery
	}
	if s.MinDistance != nil {
		cfg.MinDistance = *s.MinDistance
	}
	if s.TrailLimit != 0 {
		cfg.TrailLimit = s.TrailLimit
	}
	return cfg, nil
}

// Label names the step for progress output and storage.
func (s ScenarioStep) Label() string {
	if s.SaveAs != "" {
		return s.SaveAs
	}
	if s.Preset != "" {
		return s.Preset
	}
	return config.DefaultPreset
}

type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *dynamo.Result
}

// RunScenario executes all steps in a scenario. It stops at the first
// failing step and returns the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, progress Progress) ([]StepResult, error) {
	if progress == nil {
		progress = noProgress
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.Build(cfg, registry)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
		progress(i+1, len(scenario.Steps), step.Label())
	}

	return results, nil
}

// ParameterSweep runs copies of Base across evenly spaced values of one
// numeric config field.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

// SweepResult holds the metrics of one sweep point. Err is set when the
// run failed, which is itself a result worth reporting.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	StepsTaken int
	Err        error
}

var sweepParams = map[string]func(*config.Config, float64){
	"dt":           func(c *config.Config, v float64) { c.Dt = v },
	"min_distance": func(c *config.Config, v float64) { c.MinDistance = v },
	"g":            func(c *config.Config, v float64) { c.G = v },
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, progress Progress) ([]SweepResult, error) {
	if progress == nil {
		progress = noProgress
	}
	set, ok := sweepParams[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("%w: cannot sweep %q", dynamo.ErrInvalidConfig, sweep.Param)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one point", dynamo.ErrInvalidConfig)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		set(cfg, paramVal)

		point := runSweepPoint(ctx, cfg, registry, paramVal)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		results = append(results, point)
		progress(i+1, sweep.NumSteps, fmt.Sprintf("%s=%g", sweep.Param, paramVal))
	}

	return results, nil
}

// runSweepPoint runs one sweep value. A config the value makes invalid is
// reported like a failed run.
func runSweepPoint(ctx context.Context, cfg *config.Config, registry *experiment.Registry, value float64) SweepResult {
	exp, err := experiment.Build(cfg, registry)
	if err != nil {
		return SweepResult{ParamValue: value, Err: err}
	}

	result, err := exp.Run(ctx)
	point := SweepResult{ParamValue: value, Err: err}
	if result != nil {
		point.Metrics = result.Metrics
		point.StepsTaken = result.StepsTaken
	}
	return point
}

// MonteCarloConfig perturbs every satellite's initial velocity in Base by
// a uniform factor in [1-Perturbation, 1+Perturbation].
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one trial.
type MonteCarloResult struct {
	TrialID     int
	Factors     map[string]float64
	Stable      bool
	EnergyDrift float64
}

// RunMonteCarlo executes multiple trials with random perturbations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry, progress Progress) ([]MonteCarloResult, error) {
	if progress == nil {
		progress = noProgress
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		base := cfg.Base.Clone()
		bodies, err := base.BuildBodies()
		if err != nil {
			return nil, err
		}

		factors := make(map[string]float64)
		for _, b := range bodies {
			if b.IsPrimary() {
				continue
			}
			f := 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
			b.Vel = b.Vel.Scale(f)
			factors[b.Name] = f
		}
		base.Bodies = config.FromBodies(bodies)

		exp, err := experiment.Build(base, registry)
		if err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		results = append(results, MonteCarloResult{
			TrialID:     trial,
			Factors:     factors,
			Stable:      err == nil && result.Metrics["stability"] == 1,
			EnergyDrift: result.Metrics["energy_drift"],
		})
		progress(trial+1, cfg.NumTrials, fmt.Sprintf("trial %d", trial))
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
