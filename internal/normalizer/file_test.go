package normalizer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

const legacyHeader = `"tripduration","starttime","stoptime","start station id","start station name","start station latitude","start station longitude","end station id","end station name","end station latitude","end station longitude","bikeid","usertype","birth year","gender"`

const currentHeader = "ride_id,rideable_type,started_at,ended_at,start_station_name,start_station_id,end_station_name,end_station_id,start_lat,start_lng,end_lat,end_lng,member_casual"

func writeRaw(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestNormalizeFile_Legacy(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "out")
	n := New(domain.CityJerseyCity, zap.NewNop())

	src := writeRaw(t, srcDir, "JC-202001-citibike-tripdata_old.csv",
		legacyHeader,
		`634,2020-01-05 10:00:00.0000,2020-01-05 10:10:34.5,72.0,"Grove St PATH",40.7195,-74.0431,3186.0,"Exchange Pl",40.7162,-74.0334,1234,Subscriber,\N,1`,
		`120,2020-01-05 11:00:00,2020-01-05 11:02:00,3186,"Exchange Pl",40.7162,-74.0334,nan,,,,1235,Customer,1987,2`,
	)

	result, err := n.NormalizeFile(context.Background(), src, dstDir, false)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, int64(2), result.Rows)
	assert.Equal(t, "legacy", result.Variant)
	assert.Equal(t, domain.CityJerseyCity, result.City)
	assert.Equal(t, filepath.Join(dstDir, "preprocessed_JC-202001-citibike-tripdata_old.csv"), result.Output)

	data, err := os.ReadFile(result.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, strings.Join(domain.RideColumns, ","), lines[0])
	assert.Equal(t,
		`b678aae524f65be89f97a8b19cdb1e80,NULL,2020-01-05 10:00:00,2020-01-05 10:10:34.5,Grove St PATH,72,Exchange Pl,3186,40.7195,-74.0431,40.7162,-74.0334,casual,634,1234,1,NULL,Jersey City`,
		lines[1])
	assert.Equal(t,
		`02fbd478cab5526f92f187a2cb4e3dc6,NULL,2020-01-05 11:00:00,2020-01-05 11:02:00,Exchange Pl,3186,NULL,nan,40.7162,-74.0334,NULL,NULL,member,120,1235,2,1987,Jersey City`,
		lines[2])

	entries, err := os.ReadDir(dstDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestNormalizeFile_Current(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	n := New(domain.CityNYC, zap.NewNop())

	src := writeRaw(t, srcDir, "202306-citibike-tripdata.csv",
		currentHeader,
		`A1B2C3,electric_bike,2023-06-01 08:15:00,2023-06-01 08:30:00,"W 21 St, 6 Ave",6140.05,NULL,5905.14,40.74,-73.99,40.75,-73.98,member`,
	)

	result, err := n.NormalizeFile(context.Background(), src, dstDir, false)
	require.NoError(t, err)
	assert.Equal(t, "current", result.Variant)
	assert.Equal(t, int64(1), result.Rows)

	data, err := os.ReadFile(result.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data),
		`A1B2C3,electric_bike,2023-06-01 08:15:00,2023-06-01 08:30:00,"W 21 St, 6 Ave",6140,"NULL",5905,40.74,-73.99,40.75,-73.98,member,NULL,NULL,NULL,NULL,NYC`)
}

func TestNormalizeFile_SkipsExistingOutput(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	n := New(domain.CityNYC, zap.NewNop())

	src := writeRaw(t, srcDir, "202306-citibike-tripdata.csv",
		currentHeader,
		`R1,classic_bike,2023-06-01 08:15:00,2023-06-01 08:30:00,A,1,B,2,40.74,-73.99,40.75,-73.98,casual`,
	)
	dst := OutputPath(src, dstDir)
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0o644))

	result, err := n.NormalizeFile(context.Background(), src, dstDir, false)
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))

	result, err = n.NormalizeFile(context.Background(), src, dstDir, true)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, int64(1), result.Rows)
}

func TestNormalizeFile_HeaderWidthMismatch(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	n := New(domain.CityNYC, zap.NewNop())

	// current layout under a legacy name
	src := writeRaw(t, srcDir, "201901-citibike-tripdata_old.csv",
		currentHeader,
		`R1,classic_bike,2023-06-01 08:15:00,2023-06-01 08:30:00,A,1,B,2,40.74,-73.99,40.75,-73.98,casual`,
	)

	_, err := n.NormalizeFile(context.Background(), src, dstDir, false)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrFormat))

	_, statErr := os.Stat(OutputPath(src, dstDir))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNormalizeFile_BadStartedAtFailsFile(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	n := New(domain.CityNYC, zap.NewNop())

	src := writeRaw(t, srcDir, "202306-citibike-tripdata.csv",
		currentHeader,
		`R1,classic_bike,2023-06-01 08:15:00,,A,1,B,2,,,,,casual`,
		`R2,classic_bike,garbage,,A,1,B,2,,,,,casual`,
	)

	_, err := n.NormalizeFile(context.Background(), src, dstDir, false)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 3, appErr.Details["line"])
	assert.Equal(t, domain.ColStartedAt, appErr.Details["field"])

	entries, err := os.ReadDir(dstDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNormalizeFile_RowWidthMismatch(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	n := New(domain.CityNYC, zap.NewNop())

	src := writeRaw(t, srcDir, "202306-citibike-tripdata.csv",
		currentHeader,
		`R1,classic_bike,2023-06-01 08:15:00`,
	)

	_, err := n.NormalizeFile(context.Background(), src, dstDir, false)
	assert.True(t, apperrors.Is(err, apperrors.ErrFormat))
}

func TestNormalizeFile_StripsBOM(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	n := New(domain.CityNYC, zap.NewNop())

	src := filepath.Join(srcDir, "202306-citibike-tripdata.csv")
	raw := "\xEF\xBB\xBF" + currentHeader + "\n" +
		"R1,classic_bike,2023-06-01 08:15:00,,A,1,B,2,,,,,casual\n"
	require.NoError(t, os.WriteFile(src, []byte(raw), 0o644))

	result, err := n.NormalizeFile(context.Background(), src, dstDir, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Rows)
}

func TestWriter_Quoting(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	empty := ""
	null := "NULL"
	comma := "a,b"
	quote := `say "hi"`
	plain := "plain"

	require.NoError(t, w.Write([]*string{nil, &empty, &null, &comma, &quote, &plain}))
	require.NoError(t, w.Flush())

	assert.Equal(t, `NULL,"","NULL","a,b","say ""hi""",plain`+"\n", buf.String())
}
