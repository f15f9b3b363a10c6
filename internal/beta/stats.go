package beta

// mean returns the arithmetic mean of xs. Callers guarantee len(xs) > 0.
func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleCovariance computes the Bessel-corrected sample covariance
// Σ((x_i − mean_x)(y_i − mean_y)) / (n − 1). The slices must be the same
// length with at least two elements.
func sampleCovariance(xs, ys []float64) float64 {
	mx, my := mean(xs), mean(ys)
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1)
}

// sampleVariance computes the Bessel-corrected sample variance of xs.
// A constant series yields exactly 0.
func sampleVariance(xs []float64) float64 {
	return sampleCovariance(xs, xs)
}
