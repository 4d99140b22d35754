package ui

import (
	"fmt"

	"github.com/bamsammich/sparkline/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  samples 4,917  frames 31  avg 12.0/s  time 3m 17s  rejected 0
func CompletionSummary(snap stats.Snapshot) string {
	avgRate := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgRate = float64(snap.Accepted) / snap.Elapsed.Seconds()
	}

	icon := "✓"
	if snap.Rejected > 0 {
		icon = "✗"
	}

	return fmt.Sprintf("done %s  samples %s  frames %s  avg %s  time %s  rejected %d",
		icon,
		FormatCount(snap.Accepted),
		FormatCount(snap.Frames),
		FormatRate(avgRate),
		FormatDuration(snap.Elapsed),
		snap.Rejected,
	)
}
