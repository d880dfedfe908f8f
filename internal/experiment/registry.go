package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/integrators"
	"github.com/san-kum/planetsim/internal/metrics"
	"github.com/san-kum/planetsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["semi-implicit"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["semi-implicit-sequential"] = func() dynamo.Integrator { return integrators.NewSequentialEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stabilityFactor bounds how far a body may wander, relative to the widest
// initial orbit, before the run counts as unstable.
const stabilityFactor = 10

func (r *Registry) DefaultMetrics(sys *physics.System) []dynamo.Metric {
	extent := 0.0
	for _, b := range sys.Bodies() {
		extent = math.Max(extent, r2.Norm(b.Pos))
	}
	if extent == 0 {
		extent = physics.AU
	}

	ms := []dynamo.Metric{
		metrics.NewEnergyDrift(sys),
		metrics.NewMomentumDrift(),
		metrics.NewStability(stabilityFactor * extent),
	}
	for _, b := range sys.Bodies() {
		if !b.IsPrimary() {
			ms = append(ms, metrics.NewOrbitRadius(b.Name))
		}
	}
	return ms
}
