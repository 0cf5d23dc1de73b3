package form

import (
	"fmt"
	"strings"
)

// Ordering decides what happens when overlapping submissions resolve out of
// submission order.
type Ordering int

const (
	// LastResolvedWins renders every successful response as it arrives; the
	// element ends up showing whichever response resolved last.
	LastResolvedWins Ordering = iota
	// LatestSubmissionWins drops a response when a newer submission has
	// already been rendered.
	LatestSubmissionWins
)

func (o Ordering) String() string {
	switch o {
	case LatestSubmissionWins:
		return "latest-submission"
	default:
		return "last-resolved"
	}
}

// ParseOrdering maps a config value onto an Ordering. Empty means LastResolvedWins.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-resolved":
		return LastResolvedWins, nil
	case "latest-submission":
		return LatestSubmissionWins, nil
	default:
		return LastResolvedWins, fmt.Errorf("unknown result ordering %q", s)
	}
}
