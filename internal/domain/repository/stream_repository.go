package repository

import "context"

// StreamRepository publishes pipeline events
type StreamRepository interface {
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
