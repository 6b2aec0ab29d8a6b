// Package submit delivers finalized records to the grievance backend and
// mints the tracking identifiers handed back to the citizen.
package submit

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// Tracking id prefixes per flow.
const (
	PrefixReport = "JC"
	PrefixLetter = "GL"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var trackingIDPattern = regexp.MustCompile(`^[A-Z]{2}\d{6}[0-9A-Z]{4}$`)

// NewTrackingID mints an identifier of the form
// <prefix><last 6 digits of unix-ms><4 random base36 chars>. The random
// suffix keeps ids distinct even when two submissions land in the same
// millisecond.
func NewTrackingID(prefix string) string {
	ts := time.Now().UnixMilli() % 1_000_000
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return fmt.Sprintf("%s%06d%s", prefix, ts, suffix)
}

// ValidTrackingID reports whether id has the minted shape.
func ValidTrackingID(id string) bool {
	return trackingIDPattern.MatchString(id)
}
