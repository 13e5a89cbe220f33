package dsp

import (
	"math"
	"math/cmplx"
)

// FFT performs an in-place radix-2 Cooley-Tukey FFT. len(data) must be a
// power of two. Callers are responsible for windowing; no window is applied
// here.
func FFT(data []complex128) {
	n := len(data)
	if n <= 1 {
		return
	}
	if n&(n-1) != 0 {
		panic("dsp: FFT length must be a power of two")
	}

	bitReverse(data)

	for size := 2; size <= n; size *= 2 {
		half := size / 2
		twiddle := -2 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := cmplx.Exp(complex(0, twiddle*float64(k)))
				even := data[start+k]
				odd := data[start+k+half] * w
				data[start+k] = even + odd
				data[start+k+half] = even - odd
			}
		}
	}
}

func bitReverse(data []complex128) {
	n := len(data)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			data[i], data[j] = data[j], data[i]
		}
	}
}

// HannWindow returns a Hann window of the given length.
func HannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
