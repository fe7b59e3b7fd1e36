package domain

import (
	"path/filepath"
	"strings"
)

// Variant - positional layout of a raw trip file
type Variant int

const (
	VariantCurrent Variant = iota
	VariantLegacy
)

// legacyMarker marks files published in the pre-2021 layout
const legacyMarker = "old"

func (v Variant) String() string {
	switch v {
	case VariantLegacy:
		return "legacy"
	case VariantCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// DetectVariant classifies a raw file by name. Any file without the legacy
// marker is treated as current; the column count check in the normalizer is
// what catches files that do not fit the layout their name implies.
func DetectVariant(filename string) Variant {
	base := strings.ToLower(filepath.Base(filename))
	if strings.Contains(base, legacyMarker) {
		return VariantLegacy
	}
	return VariantCurrent
}

// FieldMapping - declared positional layout of one variant
type FieldMapping struct {
	Variant Variant
	Version int
	Columns []string
}

// Width returns the number of positional columns the layout expects
func (m FieldMapping) Width() int {
	return len(m.Columns)
}

// Index returns the position of a named source column, or -1
func (m FieldMapping) Index(column string) int {
	for i, c := range m.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Source column names. user_type exists only in the legacy layout and is
// folded into member_casual during normalization.
const (
	SourceUserType = "user_type"
)

var legacyMappingV1 = FieldMapping{
	Variant: VariantLegacy,
	Version: 1,
	Columns: []string{
		ColTripDurationSeconds,
		ColStartedAt,
		ColEndedAt,
		ColStartStationID,
		ColStartStationName,
		ColStartLat,
		ColStartLng,
		ColEndStationID,
		ColEndStationName,
		ColEndLat,
		ColEndLng,
		ColBikeID,
		SourceUserType,
		ColBirthYear,
		ColGender,
	},
}

var currentMappingV1 = FieldMapping{
	Variant: VariantCurrent,
	Version: 1,
	Columns: []string{
		ColRideID,
		ColRideableType,
		ColStartedAt,
		ColEndedAt,
		ColStartStationName,
		ColStartStationID,
		ColEndStationName,
		ColEndStationID,
		ColStartLat,
		ColStartLng,
		ColEndLat,
		ColEndLng,
		ColMemberCasual,
	},
}

// MappingFor returns the active field mapping of a variant
func MappingFor(v Variant) FieldMapping {
	if v == VariantLegacy {
		return legacyMappingV1
	}
	return currentMappingV1
}
