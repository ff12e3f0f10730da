// Package algo holds the pure numeric parts of udsnap: zone classification,
// harmony sub-scores and the optimization objective.
package algo

import (
	"fmt"

	"github.com/cudkit/udsnap/schema"
)

// Classify maps a distance onto the three zones. Lower boundaries are inclusive:
// a distance equal to SafeMax is safe and one equal to WarningMax is warning.
func Classify(distance float64, t schema.ZoneThresholds) schema.Zone {
	switch {
	case distance <= t.SafeMax:
		return schema.SafeZone
	case distance <= t.WarningMax:
		return schema.WarningZone
	default:
		return schema.OffZone
	}
}

// ValidateThresholds reports whether both ceilings are positive and strictly ordered.
func ValidateThresholds(t schema.ZoneThresholds) bool {
	return t.SafeMax > 0 && t.WarningMax > 0 && t.SafeMax < t.WarningMax
}

// CheckThresholds is ValidateThresholds as an error for callers that must reject.
// Invalid thresholds are never clamped.
func CheckThresholds(t schema.ZoneThresholds) error {
	if !ValidateThresholds(t) {
		return fmt.Errorf("%w: zone thresholds must satisfy 0 < safe (%g) < warning (%g)",
			schema.ErrInvalidParameter, t.SafeMax, t.WarningMax)
	}
	return nil
}

// ClassifyWithDetail returns the zone together with the input distance and the thresholds used.
func ClassifyWithDetail(distance float64, t schema.ZoneThresholds) schema.ZoneDetail {
	return schema.ZoneDetail{
		Zone:       Classify(distance, t),
		Distance:   distance,
		Thresholds: t,
	}
}
