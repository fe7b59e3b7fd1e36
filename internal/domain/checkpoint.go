package domain

import (
	"encoding/json"
	"time"
)

// Stage - one committed unit of the pipeline
type Stage string

const (
	StageNormalize        Stage = "normalize"
	StageLoad             Stage = "load"
	StageDeduplicate      Stage = "deduplicate"
	StageDeriveStations   Stage = "derive_stations"
	StageEnforceIntegrity Stage = "enforce_integrity"
	StageCreateIndexes    Stage = "create_indexes"
)

// Stages lists every stage in execution order
var Stages = []Stage{
	StageNormalize,
	StageLoad,
	StageDeduplicate,
	StageDeriveStations,
	StageEnforceIntegrity,
	StageCreateIndexes,
}

// ParseStage validates a stage name
func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Checkpoint records a completed stage
type Checkpoint struct {
	Stage       Stage           `json:"stage" db:"stage"`
	CompletedAt time.Time       `json:"completed_at" db:"completed_at"`
	Details     json.RawMessage `json:"details,omitempty" db:"details"`
}

// LoadedFile records a normalized file committed into the ride store
type LoadedFile struct {
	FileName string    `json:"file_name" db:"file_name"`
	Rows     int64     `json:"rows" db:"row_count"`
	LoadedAt time.Time `json:"loaded_at" db:"loaded_at"`
}

// FileResult - outcome of normalizing one raw file
type FileResult struct {
	Source   string        `json:"source"`
	Output   string        `json:"output"`
	Variant  string        `json:"variant"`
	City     string        `json:"city"`
	Rows     int64         `json:"rows"`
	Skipped  bool          `json:"skipped,omitempty"`
	Duration time.Duration `json:"duration"`
}

// DedupResult - outcome of the deduplicate stage
type DedupResult struct {
	Removed int64 `json:"removed"`
}

// DeriveResult - outcome of the derive_stations stage
type DeriveResult struct {
	Inserted int64 `json:"inserted"`
}

// IntegrityResult - outcome of the enforce_integrity stage
type IntegrityResult struct {
	StartNulled int64 `json:"start_nulled"`
	EndNulled   int64 `json:"end_nulled"`
}

// NormalizeResult - outcome of the normalize stage
type NormalizeResult struct {
	Files   int   `json:"files"`
	Skipped int   `json:"skipped"`
	Rows    int64 `json:"rows"`
}

// LoadResult - outcome of the load stage
type LoadResult struct {
	Files   int   `json:"files"`
	Skipped int   `json:"skipped"`
	Rows    int64 `json:"rows"`
}
