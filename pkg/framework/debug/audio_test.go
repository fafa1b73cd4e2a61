package debug

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyze(t *testing.T) {
	t.Run("BasicAnalysis", func(t *testing.T) {
		buffer := make([]float32, 1000)
		for i := range buffer {
			// 440Hz at 48kHz
			buffer[i] = 0.5 * float32(math.Sin(2*math.Pi*440*float64(i)/48000))
		}

		result := Analyze(buffer)

		if result.Peak < 0.49 || result.Peak > 0.51 {
			t.Errorf("Peak incorrect: %f", result.Peak)
		}
		expectedRMS := 0.5 / math.Sqrt(2)
		if math.Abs(float64(result.RMS)-expectedRMS) > 0.01 {
			t.Errorf("RMS incorrect: %f, expected ~%f", result.RMS, expectedRMS)
		}
		if result.Silent {
			t.Error("Should not be silent")
		}
		if result.Samples != 1000 {
			t.Errorf("Samples = %d", result.Samples)
		}
	})

	t.Run("Clipping", func(t *testing.T) {
		result := Analyze([]float32{0.5, 0.99, 1.0, -0.99, -1.0, 0.5})

		if !result.Clipping {
			t.Error("Should detect clipping")
		}
		if result.ClippedSamples != 4 {
			t.Errorf("Wrong clipped sample count: %d", result.ClippedSamples)
		}
	})

	t.Run("DCOffset", func(t *testing.T) {
		buffer := make([]float32, 100)
		for i := range buffer {
			buffer[i] = 0.3
		}

		result := Analyze(buffer)
		if math.Abs(float64(result.DC)-0.3) > 0.001 {
			t.Errorf("DC offset incorrect: %f", result.DC)
		}
	})

	t.Run("Silence", func(t *testing.T) {
		result := Analyze(make([]float32, 100))
		if !result.Silent {
			t.Error("Should be silent")
		}
		if !math.IsInf(result.PeakDB(), -1) {
			t.Errorf("PeakDB() = %v, want -Inf", result.PeakDB())
		}
	})

	t.Run("NaN", func(t *testing.T) {
		nan := float32(math.NaN())
		result := Analyze([]float32{0.1, nan, 0.2, nan})
		if result.NaNCount != 2 {
			t.Errorf("NaNCount = %d, want 2", result.NaNCount)
		}
		if result.Samples != 2 {
			t.Errorf("Samples = %d, want 2", result.Samples)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		result := Analyze(nil)
		if result.Samples != 0 || result.Peak != 0 || !result.Silent {
			t.Errorf("Analyze(nil) = %+v", result)
		}
	})
}

func TestAnalyzerAccumulates(t *testing.T) {
	var a Analyzer
	a.Add([]float32{0.25, -0.25})
	a.Add([]float32{0.5, -1.0})

	r := a.Result()
	if r.Samples != 4 {
		t.Errorf("Samples = %d, want 4", r.Samples)
	}
	if r.Peak != 1.0 {
		t.Errorf("Peak = %v, want 1", r.Peak)
	}
	if r.ClippedSamples != 1 {
		t.Errorf("ClippedSamples = %d, want 1", r.ClippedSamples)
	}
	if db := r.PeakDB(); math.Abs(db) > 1e-9 {
		t.Errorf("PeakDB() = %v, want 0", db)
	}

	a.Reset()
	if r := a.Result(); r.Samples != 0 || r.Peak != 0 {
		t.Errorf("Result after Reset = %+v", r)
	}
}

func TestIssues(t *testing.T) {
	r := AnalysisResult{NaNCount: 1, Clipping: true, ClippedSamples: 3, DC: 0.2}
	issues := r.Issues("left")
	if len(issues) != 3 {
		t.Fatalf("Issues() = %v, want 3 entries", issues)
	}
	for _, issue := range issues {
		if !strings.HasPrefix(issue, "left: ") {
			t.Errorf("issue %q missing channel name", issue)
		}
	}

	if issues := (AnalysisResult{Peak: 0.5, RMS: 0.3}).Issues("right"); len(issues) != 0 {
		t.Errorf("clean buffer reported %v", issues)
	}
}
