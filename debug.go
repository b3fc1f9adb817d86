package graphview

import (
	"log/slog"
	"time"
)

// drawStats holds draw loop counters.
type drawStats struct {
	frames     uint64
	renders    uint64
	failures   uint64
	lastRender time.Duration
}

// DrawStats is a snapshot of draw loop counters.
type DrawStats struct {
	Frames     uint64        // refresh ticks seen
	Renders    uint64        // successful renders
	Failures   uint64        // renders that returned an error
	LastRender time.Duration // duration of the most recent render
}

// Stats returns the draw loop counters.
func (d *DrawLoop) Stats() DrawStats {
	return DrawStats{
		Frames:     d.stats.frames,
		Renders:    d.stats.renders,
		Failures:   d.stats.failures,
		LastRender: d.stats.lastRender,
	}
}

// debugLog writes timing and instance counts at debug level.
func (d *DrawLoop) debugLog() {
	attrs := []any{
		slog.Duration("render", d.stats.lastRender),
		slog.Uint64("frames", d.stats.frames),
		slog.Uint64("renders", d.stats.renders),
	}
	if sr, ok := d.renderer.(StatsReporter); ok {
		rs := sr.LastStats()
		attrs = append(attrs,
			slog.Int("nodes", rs.Nodes),
			slog.Int("edges", rs.Edges),
			slog.Int("drawCalls", rs.DrawCalls))
	}
	Logger().Debug("frame", attrs...)
}
