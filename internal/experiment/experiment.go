// Package experiment turns a config into a ready-to-run simulator.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/planetsim/internal/config"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
)

type Experiment struct {
	cfg       *config.Config
	system    *physics.System
	simulator *dynamo.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the bodies, the system and the simulator with the default
// metrics attached.
func (e *Experiment) Setup(r *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	integ, err := r.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidConfig, err)
	}

	bodies, err := e.cfg.BuildBodies()
	if err != nil {
		return err
	}

	sys, err := physics.NewSystem(bodies, physics.Options{
		G:           e.cfg.G,
		Dt:          e.cfg.Dt,
		MinDistance: e.cfg.MinDistance,
		TrailLimit:  e.cfg.TrailLimit,
		Integrator:  integ,
	})
	if err != nil {
		return err
	}

	e.system = sys
	e.simulator = dynamo.New(sys)
	for _, m := range r.DefaultMetrics(sys) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, dynamo.Config{
		Steps:       e.cfg.Steps,
		RecordEvery: e.cfg.RecordEvery,
	})
}

// Build is New followed by Setup.
func Build(cfg *config.Config, r *Registry) (*Experiment, error) {
	e := New(cfg)
	if err := e.Setup(r); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Experiment) Config() *config.Config       { return e.cfg }
func (e *Experiment) System() *physics.System      { return e.system }
func (e *Experiment) Simulator() *dynamo.Simulator { return e.simulator }
