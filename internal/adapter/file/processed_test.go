package file

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
)

func testTable() domain.ProcessedTable {
	return domain.ProcessedTable{Rows: []domain.WeatherRow{
		{Timestamp: "2024-01-01T00:00", Temperature: domain.Some(5), Precipitation: domain.Some(0)},
		{Timestamp: "2024-01-01T01:00", Temperature: domain.Some(-0.4), Precipitation: domain.Measurement{}},
	}}
}

func TestProcessedRepository_Save(t *testing.T) {
	fsys := afero.NewMemMapFs()
	repo := NewProcessedRepository(fsys, DefaultProcessedPath)

	require.NoError(t, repo.Save(testTable()))

	data, err := afero.ReadFile(fsys, DefaultProcessedPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Timestamp,Temperature (°C),Precipitation (mm)", lines[0])
	assert.Equal(t, "2024-01-01T00:00,5.0,0.0", lines[1])
	assert.Equal(t, "2024-01-01T01:00,-0.4,", lines[2])
}

func TestProcessedRepository_Save_EmptyTableWritesHeader(t *testing.T) {
	fsys := afero.NewMemMapFs()
	repo := NewProcessedRepository(fsys, DefaultProcessedPath)

	require.NoError(t, repo.Save(domain.ProcessedTable{}))

	data, err := afero.ReadFile(fsys, DefaultProcessedPath)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Temperature (°C),Precipitation (mm)\n", string(data))
}

func TestProcessedRepository_Save_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "processed_weather.csv")
	repo := NewProcessedRepository(afero.NewOsFs(), path)

	require.NoError(t, repo.Save(testTable()))
	second := domain.ProcessedTable{Rows: []domain.WeatherRow{
		{Timestamp: "2024-02-01T00:00", Temperature: domain.Some(1.5), Precipitation: domain.Some(0.2)},
	}}
	require.NoError(t, repo.Save(second))

	loaded, err := repo.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(second, loaded); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessedRepository_Load_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	repo := NewProcessedRepository(fsys, DefaultProcessedPath)

	require.NoError(t, repo.Save(testTable()))
	loaded, err := repo.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(testTable(), loaded); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessedRepository_Load_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewProcessedRepository(afero.NewMemMapFs(), DefaultProcessedPath).Load()
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("wrong header", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, DefaultProcessedPath, []byte("a,b,c\n1,2,3\n"), 0o644))
		_, err := NewProcessedRepository(fsys, DefaultProcessedPath).Load()
		assert.ErrorIs(t, err, domain.ErrParse)
	})

	t.Run("bad number", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		content := "Timestamp,Temperature (°C),Precipitation (mm)\n2024-01-01T00:00,warm,0.0\n"
		require.NoError(t, afero.WriteFile(fsys, DefaultProcessedPath, []byte(content), 0o644))
		_, err := NewProcessedRepository(fsys, DefaultProcessedPath).Load()
		assert.ErrorIs(t, err, domain.ErrParse)
	})
}
