package dynamo

import (
	"context"
	"fmt"
)

type Simulator struct {
	model     Model
	metrics   []Metric
	observers []Observer
	steps     int
}

func New(model Model) *Simulator {
	return &Simulator{
		model:     model,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Model() Model { return s.model }

// Steps returns the number of ticks taken since construction.
func (s *Simulator) Steps() int { return s.steps }

// Tick advances the model by one timestep, validates every body and
// notifies observers. An invalid body aborts the tick with a
// *SimulationError wrapping ErrInvalidState.
func (s *Simulator) Tick() error {
	s.model.Step()
	s.steps++

	bodies := s.model.Bodies()
	t := s.model.Time()
	for _, b := range bodies {
		if !b.IsValid() {
			return &SimulationError{Step: s.steps, Time: t, Body: b.Name, Wrapped: ErrInvalidState}
		}
	}

	for _, m := range s.metrics {
		m.Observe(bodies, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(bodies, t)
	}
	return nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.RecordEvery
	if every <= 0 {
		every = 1
	}

	bodies := s.model.Bodies()
	result := &Result{
		Names:     make([]string, len(bodies)),
		Snapshots: make([]Snapshot, 0, cfg.Steps/every+1),
		Metrics:   make(map[string]float64),
	}
	for i, b := range bodies {
		result.Names[i] = b.Name
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(bodies, s.model.Time())
	}

	result.Snapshots = append(result.Snapshots, TakeSnapshot(bodies, s.model.Time()))

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		if err := s.Tick(); err != nil {
			s.collect(result)
			return result, err
		}
		result.StepsTaken++

		if result.StepsTaken%every == 0 || i == cfg.Steps-1 {
			result.Snapshots = append(result.Snapshots, TakeSnapshot(s.model.Bodies(), s.model.Time()))
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("%w: record interval must not be negative, got %d", ErrInvalidConfig, cfg.RecordEvery)
	}
	return nil
}
