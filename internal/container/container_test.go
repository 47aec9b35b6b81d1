package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"listingdash/internal/config"
	"listingdash/internal/errors"
	"listingdash/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "id,name,host_id,host_name,neighbourhood_group,neighbourhood,latitude,longitude,room_type,price,minimum_nights,number_of_reviews,last_review,reviews_per_month,calculated_host_listings_count,availability_365\n"

func testConfig(paths ...string) *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: "8080"},
		Data:     config.DataConfig{CandidatePaths: paths},
		Map:      config.MapConfig{SampleSize: 2000, SampleSeed: 42},
		LogLevel: "ERROR",
	}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigInvalid))
}

func TestContainerWiresDashboard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "AB_NYC_2019.csv")
	rows := csvHeader +
		"1,a,10,Ann,Manhattan,Harlem,40.81,-73.94,Entire home/apt,150,2,10,2019-05-21,0.2,1,100\n" +
		"2,b,11,Bob,Brooklyn,Bushwick,40.69,-73.92,Private room,80,1,3,,,1,0\n" +
		"3,c,12,Cy,Queens,Astoria,40.76,-73.92,Private room,150,1,0,,,1,0\n"
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))

	c, err := New(testConfig(filepath.Join(dir, "missing.csv"), path))
	require.NoError(t, err)

	ds, err := c.Dashboard.Dataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, ds.SourcePath)

	page, err := c.Dashboard.Render(context.Background(), filter.DefaultState(ds))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Metrics.Count)
	assert.Equal(t, ".xlsx", c.Exporter.FileExtension())
	assert.Equal(t, c.Config.Map.SampleSize, c.Panels.MapSampleSize)
}

func TestContainerMissingDataset(t *testing.T) {
	c, err := New(testConfig(filepath.Join(t.TempDir(), "nope.csv")))
	require.NoError(t, err)

	_, err = c.Dashboard.Dataset(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeDatasetNotFound))
}
