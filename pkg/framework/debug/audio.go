package debug

import (
	"fmt"
	"math"
)

// Analysis thresholds.
const (
	ClipThreshold    float32 = 0.99
	DCThreshold      float32 = 0.01
	SilenceThreshold float32 = 0.0001
)

// AnalysisResult describes one or more audio buffers.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	NaNCount       int
}

// Analyze measures a single buffer.
func Analyze(buffer []float32) AnalysisResult {
	var a Analyzer
	a.Add(buffer)
	return a.Result()
}

// Analyzer accumulates statistics across consecutive buffers, for example
// every block of a render. The zero value is ready to use.
type Analyzer struct {
	samples    int
	nans       int
	clipped    int
	peak       float32
	sum        float64
	sumSquares float64
}

// Add folds buffer into the running statistics. NaN samples are counted
// and otherwise ignored.
func (a *Analyzer) Add(buffer []float32) {
	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) {
			a.nans++
			continue
		}
		a.samples++

		abs := sample
		if abs < 0 {
			abs = -abs
		}
		a.peak = max(a.peak, abs)
		if abs >= ClipThreshold {
			a.clipped++
		}
		a.sum += float64(sample)
		a.sumSquares += float64(sample) * float64(sample)
	}
}

// Result returns the statistics gathered so far.
func (a *Analyzer) Result() AnalysisResult {
	r := AnalysisResult{
		Samples:        a.samples,
		Peak:           a.peak,
		ClippedSamples: a.clipped,
		Clipping:       a.clipped > 0,
		NaNCount:       a.nans,
	}
	if a.samples > 0 {
		r.RMS = float32(math.Sqrt(a.sumSquares / float64(a.samples)))
		r.DC = float32(a.sum / float64(a.samples))
	}
	r.Silent = r.RMS < SilenceThreshold
	return r
}

// Reset clears the running statistics.
func (a *Analyzer) Reset() {
	*a = Analyzer{}
}

// PeakDB returns the peak in dBFS, or -Inf for silence.
func (r AnalysisResult) PeakDB() float64 {
	if r.Peak <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(r.Peak))
}

// Issues lists the problems found in r, each prefixed with name.
func (r AnalysisResult) Issues(name string) []string {
	var issues []string
	if r.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d NaN samples", name, r.NaNCount))
	}
	if r.Clipping {
		issues = append(issues, fmt.Sprintf("%s: clipping (%d samples)", name, r.ClippedSamples))
	}
	if math.Abs(float64(r.DC)) > float64(DCThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset %.3f", name, r.DC))
	}
	return issues
}

// String formats r for a report line.
func (r AnalysisResult) String() string {
	return fmt.Sprintf("samples=%d peak=%.3f (%.1f dBFS) rms=%.3f dc=%.4f clipped=%d",
		r.Samples, r.Peak, r.PeakDB(), r.RMS, r.DC, r.ClippedSamples)
}
