package postgres

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain/repository"
	"github.com/bikeshare-loader/migrations"
)

type schemaRepository struct {
	db       *DB
	provider *goose.Provider
}

// NewSchemaRepository binds the embedded migrations to db
func NewSchemaRepository(db *DB) (repository.SchemaRepository, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db.DB.DB, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	return &schemaRepository{db: db, provider: provider}, nil
}

func (r *schemaRepository) Up(ctx context.Context) error {
	results, err := r.provider.Up(ctx)
	r.logResults(results)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back every migration, dropping all pipeline tables
func (r *schemaRepository) Down(ctx context.Context) error {
	results, err := r.provider.DownTo(ctx, 0)
	r.logResults(results)
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func (r *schemaRepository) Reset(ctx context.Context) error {
	if err := r.Down(ctx); err != nil {
		return err
	}
	return r.Up(ctx)
}

func (r *schemaRepository) Version(ctx context.Context) (int64, error) {
	v, err := r.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return v, nil
}

func (r *schemaRepository) logResults(results []*goose.MigrationResult) {
	for _, res := range results {
		if res == nil || res.Source == nil {
			continue
		}
		r.db.logger.Info("Migration applied",
			zap.String("direction", res.Direction),
			zap.Int64("version", res.Source.Version),
			zap.String("file", res.Source.Path),
			zap.Duration("duration", res.Duration))
	}
}
