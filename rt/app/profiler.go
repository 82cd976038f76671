package app

import (
	"fmt"
	"strings"
	"time"
)

// Profiler tracks frame rate and per-frame CPU time of the named stages.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Order      []string

	FPS         float64
	FrameCount  int
	FPSTime     float64
	TotalFrames int
	TotalTime   float64
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Order:      make([]string, 0),
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = time.Now()
	for _, n := range p.Order {
		if n == name {
			return
		}
	}
	p.Order = append(p.Order, name)
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = time.Since(start)
	}
}

// Tick accounts one frame of dt seconds. It reports true once per elapsed
// second, after FPS has been refreshed.
func (p *Profiler) Tick(dt float64) bool {
	p.FrameCount++
	p.TotalFrames++
	p.FPSTime += dt
	p.TotalTime += dt
	if p.FPSTime < 1.0 {
		return false
	}
	p.FPS = float64(p.FrameCount) / p.FPSTime
	p.FrameCount = 0
	p.FPSTime = 0
	return true
}

// AverageFPS over the whole run.
func (p *Profiler) AverageFPS() float64 {
	if p.TotalTime <= 0 {
		return 0
	}
	return float64(p.TotalFrames) / p.TotalTime
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("fps=%.1f", p.FPS))
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf(" %s=%.2fms", name, ms))
	}
	return sb.String()
}
