package format

import (
	"fmt"
	"strings"
	"time"
)

// Duration renders a millisecond latency as "N д. N ч. N м.", dropping
// zero parts. Sub-minute latencies come out empty, same as the original
// chat habit of not bragging about seconds.
func Duration(ms float64) string {
	d := time.Duration(ms) * time.Millisecond

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d д.", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d ч.", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d м.", minutes))
	}

	return strings.Join(parts, " ")
}
