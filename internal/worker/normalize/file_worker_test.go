package normalize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/normalizer"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
	"github.com/bikeshare-loader/internal/worker"
)

const currentHeader = "ride_id,rideable_type,started_at,ended_at,start_station_name,start_station_id,end_station_name,end_station_id,start_lat,start_lng,end_lat,end_lng,member_casual\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileWorker_Run(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	src := writeFile(t, srcDir, "202306-citibike-tripdata.csv",
		currentHeader+"R1,classic_bike,2023-06-01 08:15:00,,A,1,B,2,,,,,member\n")

	w := NewFileWorker(normalizer.New(domain.CityNYC, zap.NewNop()), src, dstDir, false, zap.NewNop())
	assert.Equal(t, "202306-citibike-tripdata.csv", w.Name())
	assert.Nil(t, w.Result())

	require.NoError(t, w.Run(context.Background()))
	require.NotNil(t, w.Result())
	assert.Equal(t, int64(1), w.Result().Rows)
	assert.FileExists(t, filepath.Join(dstDir, "preprocessed_202306-citibike-tripdata.csv"))
}

func TestFileWorker_FailuresAreIsolated(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	n := normalizer.New(domain.CityNYC, zap.NewNop())

	good := writeFile(t, srcDir, "202306-citibike-tripdata.csv",
		currentHeader+"R1,classic_bike,2023-06-01 08:15:00,,A,1,B,2,,,,,member\n")
	bad := writeFile(t, srcDir, "202307-citibike-tripdata.csv",
		currentHeader+"R2,classic_bike,not-a-time,,A,1,B,2,,,,,member\n")

	goodWorker := NewFileWorker(n, good, dstDir, false, zap.NewNop())
	badWorker := NewFileWorker(n, bad, dstDir, false, zap.NewNop())

	m := worker.NewWorkerManager(2, zap.NewNop())
	m.Register(badWorker)
	m.Register(goodWorker)

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))
	assert.Contains(t, err.Error(), "202307-citibike-tripdata.csv")

	assert.Nil(t, badWorker.Result())
	require.NotNil(t, goodWorker.Result())
	assert.FileExists(t, goodWorker.Result().Output)
}
