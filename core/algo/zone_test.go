package algo

import (
	"errors"
	"math"
	"testing"

	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
)

// TestClassify tests the zone boundaries with default thresholds.
func TestClassify(t *testing.T) {
	th := schema.DefaultZoneThresholds()
	tests := []struct {
		name     string
		distance float64
		expected schema.Zone
	}{
		{"zero", 0, schema.SafeZone},
		{"inside safe", 0.03, schema.SafeZone},
		{"safe boundary inclusive", 0.05, schema.SafeZone},
		{"just above safe", 0.0500001, schema.WarningZone},
		{"inside warning", 0.08, schema.WarningZone},
		{"warning boundary inclusive", 0.12, schema.WarningZone},
		{"just above warning", 0.1200001, schema.OffZone},
		{"far off", 0.9, schema.OffZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.distance, th))
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	th := schema.ZoneThresholds{SafeMax: 0.02, WarningMax: 0.2}
	assert.Equal(t, schema.WarningZone, Classify(0.05, th))
	assert.Equal(t, schema.WarningZone, Classify(0.2, th))
	assert.Equal(t, schema.OffZone, Classify(0.21, th))
}

func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name     string
		th       schema.ZoneThresholds
		expected bool
	}{
		{"defaults", schema.DefaultZoneThresholds(), true},
		{"equal", schema.ZoneThresholds{SafeMax: 0.1, WarningMax: 0.1}, false},
		{"inverted", schema.ZoneThresholds{SafeMax: 0.2, WarningMax: 0.1}, false},
		{"zero safe", schema.ZoneThresholds{SafeMax: 0, WarningMax: 0.1}, false},
		{"negative safe", schema.ZoneThresholds{SafeMax: -0.1, WarningMax: 0.1}, false},
		{"zero warning", schema.ZoneThresholds{SafeMax: 0.05, WarningMax: 0}, false},
		{"tiny but ordered", schema.ZoneThresholds{SafeMax: 0.001, WarningMax: 0.002}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateThresholds(tt.th))
			err := CheckThresholds(tt.th)
			if tt.expected {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, schema.ErrInvalidParameter))
			}
		})
	}
}

func TestClassifyWithDetail(t *testing.T) {
	th := schema.DefaultZoneThresholds()
	d := ClassifyWithDetail(0.1, th)
	assert.Equal(t, schema.WarningZone, d.Zone)
	assert.Equal(t, 0.1, d.Distance)
	assert.Equal(t, th, d.Thresholds)
}

// FuzzClassify checks that every distance lands in exactly the zone the thresholds describe.
func FuzzClassify(f *testing.F) {
	for _, seed := range []float64{0, 0.05, 0.12, 0.3, 1} {
		f.Add(seed)
	}
	th := schema.DefaultZoneThresholds()
	f.Fuzz(func(t *testing.T, d float64) {
		if math.IsNaN(d) {
			return
		}
		z := Classify(d, th)
		switch {
		case d <= th.SafeMax && z != schema.SafeZone:
			t.Fatalf("%v should be safe, got %s", d, z)
		case d > th.WarningMax && z != schema.OffZone:
			t.Fatalf("%v should be off, got %s", d, z)
		case d > th.SafeMax && d <= th.WarningMax && z != schema.WarningZone:
			t.Fatalf("%v should be warning, got %s", d, z)
		}
	})
}
