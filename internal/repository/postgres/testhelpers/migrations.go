package testhelpers

import (
	"context"
	"fmt"

	"github.com/bikeshare-loader/internal/repository/postgres"
)

// ResetSchema rolls the embedded migrations all the way down and back up,
// giving each test a pristine rides table with its surrogate key.
func ResetSchema(ctx context.Context, tdb *TestDB) error {
	schema, err := postgres.NewSchemaRepository(NewDBForTest(tdb.DB, tdb.Logger))
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := schema.Reset(ctx); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}
	return nil
}
