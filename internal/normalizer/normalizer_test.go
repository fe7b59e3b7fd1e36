package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

func legacyRow(startedAt, startStation, bikeID, userType, birthYear string) []string {
	return []string{
		"634",                 // tripduration
		startedAt,             // starttime
		"2020-01-05 10:10:34", // stoptime
		startStation,          // start station id
		"Grove St PATH",       // start station name
		"40.71958611",         // start lat
		"-74.04311746",        // start lng
		"3186.0",              // end station id
		"Grove St PATH",       // end station name
		"40.71958611",         // end lat
		"-74.04311746",        // end lng
		bikeID,                // bikeid
		userType,              // usertype
		birthYear,             // birth year
		"1",                   // gender
	}
}

func currentRow(rideID, startedAt, endedAt string) []string {
	return []string{
		rideID,
		"classic_bike",
		startedAt,
		endedAt,
		"W 21 St & 6 Ave",
		"6140.05",
		"nan",
		"nan",
		"40.74173969",
		"-73.99415556",
		"",
		"",
		"member",
	}
}

func TestNormalize_Legacy(t *testing.T) {
	n := New(domain.CityJerseyCity, zap.NewNop())

	ride, err := n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00.0000", "72.0", "1234", "Subscriber", "1990"))
	require.NoError(t, err)

	assert.Equal(t, "b678aae524f65be89f97a8b19cdb1e80", ride.RideID)
	assert.Nil(t, ride.RideableType)
	assert.Equal(t, time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC), ride.StartedAt)
	require.NotNil(t, ride.EndedAt)
	assert.Equal(t, time.Date(2020, 1, 5, 10, 10, 34, 0, time.UTC), *ride.EndedAt)
	require.NotNil(t, ride.StartStationID)
	assert.Equal(t, "72", *ride.StartStationID)
	require.NotNil(t, ride.EndStationID)
	assert.Equal(t, "3186", *ride.EndStationID)
	require.NotNil(t, ride.MemberCasual)
	assert.Equal(t, "casual", *ride.MemberCasual)
	require.NotNil(t, ride.TripDurationSeconds)
	assert.Equal(t, int64(634), *ride.TripDurationSeconds)
	require.NotNil(t, ride.BirthYear)
	assert.Equal(t, int64(1990), *ride.BirthYear)
	require.NotNil(t, ride.Gender)
	assert.Equal(t, int64(1), *ride.Gender)
	require.NotNil(t, ride.StartLat)
	assert.InDelta(t, 40.71958611, *ride.StartLat, 1e-9)
	assert.Equal(t, domain.CityJerseyCity, ride.DataSourceCity)
}

func TestNormalize_LegacyUserTypes(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	tests := []struct {
		userType string
		expected *string
	}{
		{"Subscriber", strPtr("casual")},
		{"Customer", strPtr("member")},
		{"Dependent", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.userType, func(t *testing.T) {
			ride, err := n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00", "72", "1234", tt.userType, "1990"))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ride.MemberCasual)
		})
	}
}

func TestNormalize_LegacyBirthYearSentinels(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	for _, token := range []string{`\N`, `\\N`, "", "nan"} {
		ride, err := n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00", "72", "1234", "Customer", token))
		require.NoError(t, err, token)
		assert.Nil(t, ride.BirthYear, token)
	}

	ride, err := n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00", "72", "1234", "Customer", "1969.0"))
	require.NoError(t, err)
	require.NotNil(t, ride.BirthYear)
	assert.Equal(t, int64(1969), *ride.BirthYear)

	_, err = n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00", "72", "1234", "Customer", "unknown"))
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))
}

func TestNormalize_LegacyMissingStationHashesNaN(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	ride, err := n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00", "", "1234", "Customer", "1990"))
	require.NoError(t, err)
	assert.Nil(t, ride.StartStationID)
	assert.Equal(t, RideID("2020-01-05 10:00:00", "nan", "1234"), ride.RideID)
	assert.Equal(t, "69ed4f4036b9537cb2b0d491fe836d6c", ride.RideID)
}

func TestNormalize_LegacyFractionalStartHashesSixDigits(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	ride, err := n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00.5", "72.0", "1234", "Customer", "1990"))
	require.NoError(t, err)
	assert.Equal(t, "c30a17b464ec5e68bba2321237ffe9cb", ride.RideID)
	assert.Equal(t, RideID("2020-01-05 10:00:00.500000", "72", "1234"), ride.RideID)
}

func TestNormalize_StationSentinelSpellings(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	for _, raw := range []string{"nan", "NaN", "NAN"} {
		ride, err := n.Normalize(domain.VariantLegacy, legacyRow("2020-01-05 10:00:00", raw, "1234", "Customer", "1990"))
		require.NoError(t, err, raw)
		require.NotNil(t, ride.StartStationID, raw)
		assert.Equal(t, domain.StationIDSentinel, *ride.StartStationID, raw)
	}
}

func TestNormalize_Current(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	ride, err := n.Normalize(domain.VariantCurrent, currentRow("A1B2C3D4E5F6", "2023-06-01 08:15:00.123", "2023-06-01 08:30:00"))
	require.NoError(t, err)

	assert.Equal(t, "A1B2C3D4E5F6", ride.RideID)
	require.NotNil(t, ride.RideableType)
	assert.Equal(t, "classic_bike", *ride.RideableType)
	assert.Equal(t, 123000000, ride.StartedAt.Nanosecond())
	require.NotNil(t, ride.StartStationID)
	assert.Equal(t, "6140", *ride.StartStationID)
	require.NotNil(t, ride.EndStationID)
	assert.Equal(t, domain.StationIDSentinel, *ride.EndStationID)
	assert.Nil(t, ride.EndLat)
	assert.Nil(t, ride.EndLng)
	require.NotNil(t, ride.MemberCasual)
	assert.Equal(t, "member", *ride.MemberCasual)

	assert.Nil(t, ride.TripDurationSeconds)
	assert.Nil(t, ride.BikeID)
	assert.Nil(t, ride.Gender)
	assert.Nil(t, ride.BirthYear)
	assert.Equal(t, domain.CityNYC, ride.DataSourceCity)
}

func TestNormalize_EndedAtIsLenient(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	ride, err := n.Normalize(domain.VariantCurrent, currentRow("R1", "2023-06-01 08:15:00", "not a time"))
	require.NoError(t, err)
	assert.Nil(t, ride.EndedAt)
}

func TestNormalize_StartedAtIsStrict(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	_, err := n.Normalize(domain.VariantCurrent, currentRow("R1", "yesterday", "2023-06-01 08:30:00"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, domain.ColStartedAt, appErr.Details["field"])
}

func TestNormalize_CurrentRequiresRideID(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	_, err := n.Normalize(domain.VariantCurrent, currentRow(" ", "2023-06-01 08:15:00", ""))
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))
}

func TestNormalize_WidthMismatch(t *testing.T) {
	n := New(domain.CityNYC, zap.NewNop())

	_, err := n.Normalize(domain.VariantLegacy, currentRow("R1", "2023-06-01 08:15:00", ""))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrFormat))
	assert.False(t, apperrors.Is(err, apperrors.ErrParse))
}

func TestNormalizeStationID(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"72.0", "72"},
		{"72.000", "72"},
		{"72", "72"},
		{"5905.14", "5905"},
		{"6140.05", "6140"},
		{"72.5", "72"},
		{"HB101.0", "HB101"},
		{"JC115.0", "JC115"},
		{"JC019", "JC019"},
		{"nan", "nan"},
		{"", ""},
		{"-1.0", "-1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeStationID(tt.in), tt.in)
	}
}

func TestRideID(t *testing.T) {
	assert.Equal(t, "b678aae524f65be89f97a8b19cdb1e80", RideID("2020-01-05 10:00:00", "72", "1234"))
	assert.Equal(t, "752e66b9315c56a3964fd21352aa42a4", RideID("2020-01-05 10:00:00.5", "3183", ""))

	id := RideID("2020-01-05 10:00:00", "72", "1234")
	assert.Len(t, id, 32)
	assert.Equal(t, id, RideID("2020-01-05 10:00:00", "72", "1234"))
	assert.NotEqual(t, id, RideID("2020-01-05 10:00:00", "72", "1235"))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in       string
		expected time.Time
	}{
		{"2020-01-05 10:00:00", time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2020-01-05 10:00:00.0000", time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2020-01-05 10:00:00.250", time.Date(2020, 1, 5, 10, 0, 0, 250000000, time.UTC)},
		{"2020-01-05T10:00:00", time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2020-01-05 10:00", time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"1/5/2020 10:00:07", time.Date(2020, 1, 5, 10, 0, 7, 0, time.UTC)},
		{"01/05/2020 10:00", time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.expected.Equal(got), "%s: got %s", tt.in, got)
	}

	for _, bad := range []string{"", "nan", "2020-13-45 10:00:00", "05.01.2020"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2020-01-05 10:00:00", FormatTimestamp(time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2020-01-05 10:00:00.5", FormatTimestamp(time.Date(2020, 1, 5, 10, 0, 0, 500000000, time.UTC)))
	assert.Equal(t, "2023-06-01 08:15:00.123456", FormatTimestamp(time.Date(2023, 6, 1, 8, 15, 0, 123456789, time.UTC)))
}

func strPtr(s string) *string {
	return &s
}
