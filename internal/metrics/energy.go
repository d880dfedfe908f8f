package metrics

import (
	"math"

	"github.com/san-kum/planetsim/internal/dynamo"
)

// Hamiltonian is implemented by models that can report their total energy.
type Hamiltonian interface {
	Energy() float64
}

type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	sys           Hamiltonian
}

func NewEnergyDrift(sys Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(_ []*dynamo.Body, _ float64) {
	energy := e.sys.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

// Value is the largest relative deviation from the first observed energy.
func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
