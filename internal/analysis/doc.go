// Package analysis extracts orbital characteristics from recorded runs.
//
//   - [RelativeSeries]: a body's positions relative to another body
//   - [PowerSpectrum]: magnitude spectrum of a real series (FFT)
//   - [DominantPeriod]: period of the strongest spectral peak
//   - [RevolutionPeriod]: time for the polar angle to sweep a full turn
//
// # Example
//
//	rel := analysis.RelativeSeries(result, earth, sun)
//	period, err := analysis.RevolutionPeriod(rel, dt)
package analysis
