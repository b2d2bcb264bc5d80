package output

import (
	"fmt"
	"io"
	"time"

	"github.com/bmcalindin/wlog/internal/engine"
)

// Summary prints the final report for a replay run.
type Summary struct {
	w      io.Writer
	scheme *ColorScheme
}

// NewSummary creates a Summary writing to w with the given scheme. A nil
// scheme disables color.
func NewSummary(w io.Writer, scheme *ColorScheme) *Summary {
	if scheme == nil {
		scheme = NoColorScheme()
	}
	return &Summary{w: w, scheme: scheme}
}

// Print renders the run results.
func (s *Summary) Print(r *engine.Results) {
	fmt.Fprintf(s.w, "\nRun %s finished in %s\n\n", r.RunID, formatDuration(r.Duration()))

	s.line("Requests", fmt.Sprintf("%d (%.1f/s)", r.Total(), r.RPS()))

	okColor := s.scheme.Success
	if r.Failed() > 0 {
		okColor = s.scheme.Error
	}
	fmt.Fprintf(s.w, "  %s %s / %s\n",
		s.scheme.Label.Sprint("Succeeded/Failed:"),
		s.scheme.Success.Sprintf("%d", r.Succeeded()),
		okColor.Sprintf("%d", r.Failed()))

	s.line("Bytes received", fmt.Sprintf("%d", r.BytesReceived()))
	s.line("Latency mean", formatDuration(r.LatencyMean()))
	s.line("Latency p50", formatDuration(r.LatencyPercentile(50)))
	s.line("Latency p90", formatDuration(r.LatencyPercentile(90)))
	s.line("Latency p99", formatDuration(r.LatencyPercentile(99)))
	s.line("Latency max", formatDuration(r.LatencyMax()))
}

func (s *Summary) line(label, value string) {
	fmt.Fprintf(s.w, "  %s %s\n",
		s.scheme.Label.Sprint(label+":"),
		s.scheme.Value.Sprint(value))
}

// formatDuration rounds d to a human-scaled precision.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.String()
	}
}
