package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, DefaultOutputDir, cfg.Pipeline.OutputDir)
	assert.Equal(t, DefaultEventsStream, cfg.Pipeline.EventsStream)
	assert.GreaterOrEqual(t, cfg.Pipeline.Workers, 1)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StatsCacheTTL)
	assert.Equal(t, []Source{
		{Dir: "./nyc_data", City: "NYC"},
		{Dir: "./jersey_city_data", City: "Jersey City"},
	}, cfg.Pipeline.Sources)
}

func TestLoadFile_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "DB_HOST=db.internal\n" +
		"DB_PORT=6432\n" +
		"DB_NAME=rides\n" +
		"PIPELINE_SOURCES=\"/data/a=NYC;/data/b=Jersey City\"\n" +
		"PIPELINE_WORKERS=3\n" +
		"STATS_CACHE_TTL=30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("DB_NAME", "rides_override")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "rides_override", cfg.Database.DBName)
	assert.Equal(t, 3, cfg.Pipeline.Workers)
	assert.Equal(t, 30*time.Second, cfg.Cache.StatsCacheTTL)
	require.Len(t, cfg.Pipeline.Sources, 2)
	assert.Equal(t, Source{Dir: "/data/b", City: "Jersey City"}, cfg.Pipeline.Sources[1])
	assert.Equal(t, "host=db.internal port=6432 user=postgres password= dbname=rides_override sslmode=disable", cfg.GetDatabaseDSN())
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Setenv("DB_SSLMODE", "sometimes")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestParseSources(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Source
		wantErr  bool
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "./nyc=NYC", expected: []Source{{Dir: "./nyc", City: "NYC"}}},
		{
			name:  "trailing separator and spaces",
			input: " ./nyc = NYC ; ./jc=Jersey City; ",
			expected: []Source{
				{Dir: "./nyc", City: "NYC"},
				{Dir: "./jc", City: "Jersey City"},
			},
		},
		{name: "missing city", input: "./nyc=", wantErr: true},
		{name: "missing separator", input: "./nyc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSources(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
