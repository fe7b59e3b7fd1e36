package normalizer

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// nullHashToken stands in for a null field in the identity input, matching
// the ids already issued by the historical loads
const nullHashToken = "nan"

// hashTimeLayout renders a non-zero fraction with six digits, as the historical loads did
const hashTimeLayout = "2006-01-02 15:04:05.000000"

// RideID derives a stable identifier for rows that do not carry one.
// It is a name-based UUID (v5, DNS namespace) over "{started_at}-{start_station_id}-{bike_id}",
// rendered as 32 lowercase hex characters. Inputs must already be normalized.
func RideID(startedAt, startStationID, bikeID string) string {
	id := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(startedAt+"-"+startStationID+"-"+bikeID))
	return hex.EncodeToString(id[:])
}

// rideIDFor builds the identity input from normalized ride fields
func rideIDFor(startedAt time.Time, startStationID, bikeID *string) string {
	ts := startedAt.Format("2006-01-02 15:04:05")
	if startedAt.Nanosecond() != 0 {
		ts = startedAt.Format(hashTimeLayout)
	}
	return RideID(ts, hashField(startStationID), hashField(bikeID))
}

func hashField(s *string) string {
	if s == nil {
		return nullHashToken
	}
	return *s
}
