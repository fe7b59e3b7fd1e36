package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bikeshare-loader/internal/domain"
)

// MockRideRepository is a mock of RideRepository
type MockRideRepository struct {
	mock.Mock
}

func (m *MockRideRepository) CopyFile(ctx context.Context, path string) (int64, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRideRepository) LoadedFiles(ctx context.Context) ([]domain.LoadedFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadedFile), args.Error(1)
}

func (m *MockRideRepository) Deduplicate(ctx context.Context) (*domain.DedupResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DedupResult), args.Error(1)
}

// MockStationRepository is a mock of StationRepository
type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) DeriveStations(ctx context.Context) (*domain.DeriveResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeriveResult), args.Error(1)
}

func (m *MockStationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) List(ctx context.Context, offset, limit int) ([]*domain.Station, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Station), args.Int(1), args.Error(2)
}

func (m *MockStationRepository) GetInBoundingBox(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.Station, error) {
	args := m.Called(ctx, box, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Station), args.Error(1)
}

// MockIntegrityRepository is a mock of IntegrityRepository
type MockIntegrityRepository struct {
	mock.Mock
}

func (m *MockIntegrityRepository) Enforce(ctx context.Context) (*domain.IntegrityResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityResult), args.Error(1)
}

func (m *MockIntegrityRepository) CreateIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCheckpointRepository is a mock of CheckpointRepository
type MockCheckpointRepository struct {
	mock.Mock
}

func (m *MockCheckpointRepository) List(ctx context.Context) ([]domain.Checkpoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Checkpoint), args.Error(1)
}

func (m *MockCheckpointRepository) IsDone(ctx context.Context, stage domain.Stage) (bool, error) {
	args := m.Called(ctx, stage)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckpointRepository) Mark(ctx context.Context, stage domain.Stage, details interface{}) error {
	args := m.Called(ctx, stage, details)
	return args.Error(0)
}

func (m *MockCheckpointRepository) Reset(ctx context.Context, stages ...domain.Stage) error {
	args := m.Called(ctx, stages)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockFileNormalizer is a mock of FileNormalizer
type MockFileNormalizer struct {
	mock.Mock
}

func (m *MockFileNormalizer) Run(ctx context.Context, overwrite bool) (*domain.NormalizeResult, error) {
	args := m.Called(ctx, overwrite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NormalizeResult), args.Error(1)
}

// MockFileLoader is a mock of FileLoader
type MockFileLoader struct {
	mock.Mock
}

func (m *MockFileLoader) Run(ctx context.Context) (*domain.LoadResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadResult), args.Error(1)
}
