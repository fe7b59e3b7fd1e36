package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bikeshare-loader/internal/domain"
)

// LoadFixtures executes SQL statements through the admin connection
func LoadFixtures(ctx context.Context, tdb *TestDB, statements ...string) error {
	for i, stmt := range statements {
		if _, err := tdb.Admin.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("load fixture %d: %w", i, err)
		}
	}
	return nil
}

// WriteNormalizedFile writes rows in the normalized bulk-load format under
// dir and returns the path. Each row is the comma-joined 18 canonical cells.
func WriteNormalizedFile(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(domain.RideColumns, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// RideRow renders a canonical row with only the fields the store tests vary.
// Empty station arguments become NULL.
func RideRow(rideID, startedAt, startID, startName, endID, endName, city string) string {
	cell := func(s string) string {
		if s == "" {
			return domain.NullToken
		}
		return s
	}
	return strings.Join([]string{
		rideID,
		"NULL",
		startedAt,
		"NULL",
		cell(startName),
		cell(startID),
		cell(endName),
		cell(endID),
		"40.7", "-74.0", "40.8", "-74.1",
		"member",
		"NULL", "NULL", "NULL", "NULL",
		city,
	}, ",")
}

// CountRows returns the row count of table
func CountRows(ctx context.Context, tdb *TestDB, table string) (int64, error) {
	var n int64
	err := tdb.Admin.GetContext(ctx, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	return n, err
}
