package normalizer

import "regexp"

// trailingFraction matches the decimal tail ids pick up when a source column was read as float
var trailingFraction = regexp.MustCompile(`\.\d+$`)

// NormalizeStationID strips a trailing decimal fraction: "72.0" -> "72",
// "5905.14" -> "5905", "HB101.0" -> "HB101". Ids without one are returned unchanged.
func NormalizeStationID(id string) string {
	return trailingFraction.ReplaceAllString(id, "")
}
