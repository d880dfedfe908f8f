// Package dynamo provides the core primitives of the planet simulation.
//
// The package defines the types shared by the physics, integration and
// presentation layers:
//
//   - [Body]: a mutable point mass with position, velocity and orbit trail
//   - [Trail]: chronological history of past positions, optionally capped
//   - [ForceModel]: pairwise force evaluation over an ordered body set
//   - [Integrator]: advances velocities and positions by one timestep
//   - [Simulator]: drives a [Model] tick by tick and collects results
//
// # Example
//
//	sys, _ := physics.NewSystem(physics.InnerPlanets(), physics.DefaultOptions())
//	s := dynamo.New(sys)
//	result, _ := s.Run(ctx, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A simulation is owned
// by a single goroutine, usually the frame loop.
package dynamo
