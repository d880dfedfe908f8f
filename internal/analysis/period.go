package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/planetsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrTooShort     = errors.New("analysis: series too short")
	ErrNoSignal     = errors.New("analysis: no periodic component")
	ErrNoRevolution = errors.New("analysis: no full revolution in series")
	ErrBodyIndex    = errors.New("analysis: body index out of range")
)

// RelativeSeries returns the position of body relative to center in every
// snapshot of result.
func RelativeSeries(result *dynamo.Result, body, center int) ([]dynamo.Vec, error) {
	if body < 0 || center < 0 || body >= len(result.Names) || center >= len(result.Names) {
		return nil, ErrBodyIndex
	}

	out := make([]dynamo.Vec, len(result.Snapshots))
	for i, s := range result.Snapshots {
		out[i] = s.Pos[body].Sub(s.Pos[center])
	}
	return out, nil
}

// Components splits a vector series into its x and y series.
func Components(series []dynamo.Vec) (xs, ys []float64) {
	xs = make([]float64, len(series))
	ys = make([]float64, len(series))
	for i, v := range series {
		xs[i], ys[i] = v.X, v.Y
	}
	return xs, ys
}

// Distances returns the norm of every vector in series.
func Distances(series []dynamo.Vec) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = r2.Norm(v)
	}
	return out
}

// RevolutionPeriod returns the time, in units of dt, for the polar angle of
// a relative position series to sweep 2π in either direction. The crossing
// is linearly interpolated between samples.
func RevolutionPeriod(series []dynamo.Vec, dt float64) (float64, error) {
	if len(series) < 3 {
		return 0, ErrTooShort
	}

	prev := math.Atan2(series[0].Y, series[0].X)
	swept := 0.0
	for i := 1; i < len(series); i++ {
		a := math.Atan2(series[i].Y, series[i].X)
		d := a - prev
		if d > math.Pi {
			d -= 2 * math.Pi
		} else if d <= -math.Pi {
			d += 2 * math.Pi
		}

		if math.Abs(swept+d) >= 2*math.Pi {
			frac := (2*math.Pi - math.Abs(swept)) / math.Abs(d)
			return (float64(i-1) + frac) * dt, nil
		}
		swept += d
		prev = a
	}
	return 0, ErrNoRevolution
}
