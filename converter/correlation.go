// Package converter runs PNG files through the de-crushing engine: it scans
// directories, processes files concurrently, records history, and can watch
// a directory for new arrivals.
package converter

import "github.com/google/uuid"

// newCorrelationID generates a short ID for tying one file's log lines and
// history record together.
func newCorrelationID() string {
	return uuid.New().String()[:8]
}
