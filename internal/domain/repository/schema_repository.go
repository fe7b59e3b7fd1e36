package repository

import "context"

// SchemaRepository applies the embedded migrations
type SchemaRepository interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Reset(ctx context.Context) error
	Version(ctx context.Context) (int64, error)
}
