// Package param holds host-automatable plugin parameters. Values are stored
// normalized to [0, 1] and are safe to read from the audio goroutine.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Kind classifies a parameter for display and for snapping plain values.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parameter represents a plugin parameter
type Parameter struct {
	ID uint32
	// Key is the stable name used in saved state and change notifications.
	Key          string
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32
	Flags        uint32

	value atomic.Uint64 // float64 bits

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsHidden    uint32 = 1 << 4
)

// Kind derives the parameter kind from its step count. A single step over
// [0, 1] is a switch.
func (p *Parameter) Kind() Kind {
	switch {
	case p.StepCount == 0:
		return KindFloat
	case p.StepCount == 1 && p.Min == 0 && p.Max == 1:
		return KindBool
	default:
		return KindInt
	}
}

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue sets the normalized value without notifying anyone. Registry
// setters are the notifying path.
func (p *Parameter) SetValue(value float64) {
	p.value.Store(math.Float64bits(clamp01(value)))
}

// GetPlainValue converts normalized to plain value
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue converts plain to normalized value
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// Bool reports whether a switch parameter is on.
func (p *Parameter) Bool() bool {
	return p.GetValue() >= 0.5
}

// Int returns the plain value rounded to the nearest integer.
func (p *Parameter) Int() int {
	return int(math.Round(p.GetPlainValue()))
}

// Reset restores the default value silently.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses string to normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	parse := p.parseFunc
	if parse == nil {
		parse = func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
	}
	plain, err := parse(str)
	if err != nil {
		return 0, err
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	return p.snap(clamp01((plain - p.Min) / (p.Max - p.Min)))
}

// Denormalize converts normalized (0-1) to plain value. Stepped parameters
// land on a step.
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + p.snap(clamp01(normalized))*(p.Max-p.Min)
}

func (p *Parameter) snap(normalized float64) float64 {
	if p.StepCount <= 0 {
		return normalized
	}
	steps := float64(p.StepCount)
	return math.Round(normalized*steps) / steps
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
