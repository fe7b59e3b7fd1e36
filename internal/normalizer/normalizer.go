package normalizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bikeshare-loader/internal/domain"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
	"go.uber.org/zap"
)

// legacyUserTypes maps the legacy user_type column onto member_casual.
// The pairing is kept exactly as the historical loads wrote it.
var legacyUserTypes = map[string]string{
	"Subscriber": "casual",
	"Customer":   "member",
}

// escapedNullTokens appear in legacy birth_year columns in place of an empty cell
var escapedNullTokens = map[string]struct{}{
	`\N`:  {},
	`\\N`: {},
}

// Normalizer maps raw rows of either layout onto the canonical ride shape.
// One Normalizer serves one source region.
type Normalizer struct {
	city   string
	logger *zap.Logger
}

// New creates a Normalizer stamping every ride with city
func New(city string, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		city:   city,
		logger: logger,
	}
}

// City returns the data_source_city label
func (n *Normalizer) City() string {
	return n.city
}

// Normalize maps one raw row. The row width must match the variant's layout.
func (n *Normalizer) Normalize(variant domain.Variant, row []string) (*domain.Ride, error) {
	m := domain.MappingFor(variant)
	if len(row) != m.Width() {
		return nil, apperrors.Wrap(apperrors.ErrFormat,
			fmt.Errorf("%s layout v%d expects %d columns, got %d", variant, m.Version, m.Width(), len(row)),
			map[string]interface{}{"variant": variant.String(), "columns": len(row)})
	}

	r := rawRow{row: row, mapping: m}

	var (
		ride *domain.Ride
		err  error
	)
	switch variant {
	case domain.VariantLegacy:
		ride, err = n.normalizeLegacy(r)
	default:
		ride, err = n.normalizeCurrent(r)
	}
	if err != nil {
		return nil, err
	}

	ride.DataSourceCity = n.city
	return ride, nil
}

func (n *Normalizer) normalizeLegacy(r rawRow) (*domain.Ride, error) {
	ride, err := n.normalizeCommon(r)
	if err != nil {
		return nil, err
	}

	if ride.TripDurationSeconds, err = parseOptInt(domain.ColTripDurationSeconds, r.get(domain.ColTripDurationSeconds)); err != nil {
		return nil, err
	}
	if ride.Gender, err = parseOptInt(domain.ColGender, r.get(domain.ColGender)); err != nil {
		return nil, err
	}

	birthYear := r.get(domain.ColBirthYear)
	if _, ok := escapedNullTokens[birthYear]; ok {
		birthYear = ""
	}
	if ride.BirthYear, err = parseOptInt(domain.ColBirthYear, birthYear); err != nil {
		return nil, err
	}

	ride.BikeID = optString(r.get(domain.ColBikeID))
	if mc, ok := legacyUserTypes[r.get(domain.SourceUserType)]; ok {
		ride.MemberCasual = &mc
	}

	ride.RideID = rideIDFor(ride.StartedAt, ride.StartStationID, ride.BikeID)
	return ride, nil
}

func (n *Normalizer) normalizeCurrent(r rawRow) (*domain.Ride, error) {
	ride, err := n.normalizeCommon(r)
	if err != nil {
		return nil, err
	}

	ride.RideID = r.get(domain.ColRideID)
	if ride.RideID == "" {
		return nil, parseError(domain.ColRideID, "", fmt.Errorf("missing ride_id"))
	}
	ride.RideableType = optString(r.get(domain.ColRideableType))
	ride.MemberCasual = optString(r.get(domain.ColMemberCasual))
	return ride, nil
}

// normalizeCommon fills the fields both layouts carry
func (n *Normalizer) normalizeCommon(r rawRow) (*domain.Ride, error) {
	startedRaw := r.get(domain.ColStartedAt)
	startedAt, err := ParseTimestamp(startedRaw)
	if err != nil {
		return nil, parseError(domain.ColStartedAt, startedRaw, err)
	}

	ride := &domain.Ride{StartedAt: startedAt}

	if endedAt, err := ParseTimestamp(r.get(domain.ColEndedAt)); err == nil {
		ride.EndedAt = &endedAt
	}

	ride.StartStationID = optStationID(r.get(domain.ColStartStationID))
	ride.StartStationName = optString(r.get(domain.ColStartStationName))
	ride.EndStationID = optStationID(r.get(domain.ColEndStationID))
	ride.EndStationName = optString(r.get(domain.ColEndStationName))

	coords := []struct {
		col string
		dst **float64
	}{
		{domain.ColStartLat, &ride.StartLat},
		{domain.ColStartLng, &ride.StartLng},
		{domain.ColEndLat, &ride.EndLat},
		{domain.ColEndLng, &ride.EndLng},
	}
	for _, c := range coords {
		v, err := parseOptFloat(c.col, r.get(c.col))
		if err != nil {
			return nil, err
		}
		*c.dst = v
	}

	return ride, nil
}

type rawRow struct {
	row     []string
	mapping domain.FieldMapping
}

func (r rawRow) get(col string) string {
	i := r.mapping.Index(col)
	if i < 0 || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func parseError(field, value string, cause error) error {
	return apperrors.Wrap(apperrors.ErrParse, cause, map[string]interface{}{
		"field": field,
		"value": value,
	})
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optStationID folds every spelling of the sentinel to its canonical form so
// derivation and integrity enforcement recognize it
func optStationID(s string) *string {
	if isNaN(s) {
		s = domain.StationIDSentinel
	}
	return optString(NormalizeStationID(s))
}

func isNaN(s string) bool {
	return strings.EqualFold(s, "nan")
}

func parseOptFloat(field, s string) (*float64, error) {
	if s == "" || isNaN(s) {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, parseError(field, s, err)
	}
	return &f, nil
}

// parseOptInt accepts integral values written either as "1990" or "1990.0"
func parseOptInt(field, s string) (*int64, error) {
	if s == "" || isNaN(s) {
		return nil, nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, parseError(field, s, err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, parseError(field, s, fmt.Errorf("not an integer"))
	}
	i := int64(f)
	return &i, nil
}
