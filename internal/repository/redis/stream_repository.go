package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain/repository"
)

// streamMaxLen caps retained events; trimming is approximate
const streamMaxLen = 10000

// payloadField carries the JSON encoded event
const payloadField = "data"

// fielder is implemented by events that expose flat routing fields
type fielder interface {
	StreamFields() map[string]interface{}
}

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// PublishToStream appends data as JSON under "data", plus any flat fields the event exposes
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event for %s: %w", stream, err)
	}

	values := map[string]interface{}{payloadField: string(payload)}
	if f, ok := data.(fielder); ok {
		for k, v := range f.StreamFields() {
			if k != payloadField {
				values[k] = v
			}
		}
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish event",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("publish to %s: %w", stream, err)
	}

	r.logger.Debug("Event published",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
