package schema

import "time"

// RunRecord represents a row from the udsnap_runs table.
type RunRecord struct {
	RunID          int64
	RunUUID        string
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	Mode           string
	Lambda         float64
	TotalColors    int32
	ComplianceRate float64
	HarmonyTotal   float64
	Objective      float64
	ConfigParams   *string
}

// RunSummary carries the completion data of a run.
type RunSummary struct {
	EndTime        time.Time
	TotalColors    int
	ComplianceRate float64
	HarmonyTotal   float64
	Objective      float64
}

// RunColorRecord represents a row from the udsnap_run_colors table.
type RunColorRecord struct {
	RunID          int64
	Position       int32
	SuggestedID    string
	OriginalColor  string
	ResultColor    string
	Zone           string
	Distance       float64
	Snapped        bool
	ReferenceID    string
	DerivationType string
}
