// Package physics models Newtonian gravity among a small ordered set of bodies.
//
//   - [Gravity]: pairwise inverse-square force with a minimum-distance policy
//   - [System]: the body collection, stepped by a [dynamo.Integrator]
//   - [InnerPlanets], [EarthSun]: built-in initial conditions
//
// Every pair interacts. The primary body is special only as the reference
// for each body's cached distance, which the renderers display.
//
// # Conservation
//
// With simultaneous updates, internal forces come in action-reaction pairs,
// so total momentum is invariant up to rounding:
//
//	p0 := sys.Momentum()
//	sys.Step()
//	drift := r2.Norm(r2.Sub(sys.Momentum(), p0))
package physics
