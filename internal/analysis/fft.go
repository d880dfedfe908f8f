package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X(k)| for k in [0, n/2) where n is len(data)
// rounded up to a power of two. The mean is removed and the tail is
// zero-padded before transforming.
func PowerSpectrum(data []float64) []float64 {
	n := nextPow2(len(data))
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in the units of dt, of the largest
// non-DC spectral peak of series.
func DominantPeriod(series []float64, dt float64) (float64, error) {
	if len(series) < 4 {
		return 0, ErrTooShort
	}

	ps := PowerSpectrum(series)
	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, ErrNoSignal
	}

	n := nextPow2(len(series))
	return float64(n) * dt / float64(maxIdx), nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return n
	}
	return 1 << uint(math.Ceil(math.Log2(float64(n))))
}
