package debug

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultWarnInterval limits overrun warnings to one per interval.
const DefaultWarnInterval = time.Second

// BlockStats summarises the blocks timed by a BlockProfiler.
type BlockStats struct {
	Blocks   uint64
	Overruns uint64
	Total    time.Duration
	Max      time.Duration
	Last     time.Duration
	// CPULoad is the last block's processing time as a percentage of its
	// real-time budget.
	CPULoad float64
}

// Average returns the mean block time.
func (s BlockStats) Average() time.Duration {
	if s.Blocks == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Blocks)
}

// BlockProfiler times audio blocks against their real-time deadline. A block
// of n frames at sample rate r must finish within n/r seconds; blocks that
// take longer count as overruns and produce a rate limited WARN.
type BlockProfiler struct {
	log *Logger

	mu           sync.Mutex
	sampleRate   float64
	warnInterval time.Duration
	lastWarn     time.Time
	pending      uint64 // overruns since the last warning
	stats        BlockStats

	now func() time.Time
}

// NewBlockProfiler creates a profiler for the given sample rate. A nil log
// disables overrun warnings.
func NewBlockProfiler(log *Logger, sampleRate float64) *BlockProfiler {
	return &BlockProfiler{
		log:          log,
		sampleRate:   sampleRate,
		warnInterval: DefaultWarnInterval,
		now:          time.Now,
	}
}

// SetSampleRate changes the rate used for block budgets.
func (p *BlockProfiler) SetSampleRate(rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sampleRate = rate
}

// SetWarnInterval changes the minimum spacing between overrun warnings.
func (p *BlockProfiler) SetWarnInterval(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.warnInterval = d
}

// Budget returns the real-time deadline for a block of frames.
func (p *BlockProfiler) Budget(frames int) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.budget(frames)
}

func (p *BlockProfiler) budget(frames int) time.Duration {
	if p.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / p.sampleRate * float64(time.Second))
}

// Start begins timing a block. Call the returned function once the block
// is rendered.
func (p *BlockProfiler) Start(frames int) func() {
	start := p.now()
	return func() {
		p.Record(p.now().Sub(start), frames)
	}
}

// Record adds one block measurement.
func (p *BlockProfiler) Record(elapsed time.Duration, frames int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Blocks++
	p.stats.Total += elapsed
	p.stats.Last = elapsed
	p.stats.Max = max(p.stats.Max, elapsed)

	budget := p.budget(frames)
	if budget <= 0 {
		p.stats.CPULoad = 0
		return
	}
	p.stats.CPULoad = float64(elapsed) / float64(budget) * 100

	if elapsed <= budget {
		return
	}
	p.stats.Overruns++
	p.pending++

	now := p.now()
	if p.log == nil || (!p.lastWarn.IsZero() && now.Sub(p.lastWarn) < p.warnInterval) {
		return
	}
	p.log.Warn("block overrun: %v for %d frames, budget %v (%d since last warning)",
		elapsed, frames, budget, p.pending)
	p.lastWarn = now
	p.pending = 0
}

// Stats returns a snapshot of the measurements.
func (p *BlockProfiler) Stats() BlockStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Reset clears the measurements and the warning rate limit.
func (p *BlockProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = BlockStats{}
	p.pending = 0
	p.lastWarn = time.Time{}
}

// Report formats the measurements for a log line or the CLI.
func (p *BlockProfiler) Report() string {
	s := p.Stats()
	if s.Blocks == 0 {
		return "no blocks recorded"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "blocks:   %d\n", s.Blocks)
	fmt.Fprintf(&sb, "overruns: %d\n", s.Overruns)
	fmt.Fprintf(&sb, "average:  %v\n", s.Average())
	fmt.Fprintf(&sb, "max:      %v\n", s.Max)
	fmt.Fprintf(&sb, "cpu load: %.2f%%\n", s.CPULoad)
	return sb.String()
}
