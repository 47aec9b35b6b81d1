package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"listingdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "id,name,host_id,host_name,neighbourhood_group,neighbourhood,latitude,longitude,room_type,price,minimum_nights,number_of_reviews,last_review,reviews_per_month,calculated_host_listings_count,availability_365\n"

func writeCSV(t *testing.T, path string, rows ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := header
	for _, r := range rows {
		content += r + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoaderMemoizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "AB_NYC_2019.csv")
	writeCSV(t, path,
		"1,a,1,Ann,Brooklyn,Kensington,40.6,-73.9,Private room,80,1,3,2019-01-02,,1,100",
		"2,b,2,Bob,Manhattan,Harlem,40.8,-73.9,Entire home/apt,0,1,3,2019-01-02,,1,100",
	)

	loader := NewLoader([]string{path}, nil)
	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())
	assert.Equal(t, path, first.SourcePath)

	require.NoError(t, os.Remove(path))

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoaderCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.csv")
	fallback := filepath.Join(dir, "fallback.csv")
	writeCSV(t, fallback, "1,a,1,Ann,Queens,Astoria,40.7,-73.9,Shared room,40,1,0,,,1,10")

	ds, err := NewLoader([]string{primary, fallback}, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fallback, ds.SourcePath)

	writeCSV(t, primary, "1,a,1,Ann,Bronx,Fordham,40.8,-73.8,Shared room,40,1,0,,,1,10")
	ds, err = NewLoader([]string{primary, fallback}, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, primary, ds.SourcePath)
	assert.Equal(t, []string{"Bronx"}, ds.Boroughs())
}

func TestLoaderMissingFileNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AB_NYC_2019.csv")
	loader := NewLoader([]string{path}, nil)

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetNotFound, errors.GetCode(err))

	writeCSV(t, path, "1,a,1,Ann,Queens,Astoria,40.7,-73.9,Shared room,40,1,0,,,1,10")
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestLoaderDirectoryIsNotACandidate(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader([]string{dir}, nil).Load(context.Background())
	assert.True(t, errors.Is(err, errors.CodeDatasetNotFound))
}

func TestLoaderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader([]string{"unused.csv"}, nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderConcurrentCallersShareDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AB_NYC_2019.csv")
	writeCSV(t, path, "1,a,1,Ann,Queens,Astoria,40.7,-73.9,Shared room,40,1,0,,,1,10")
	loader := NewLoader([]string{path}, nil)

	var wg sync.WaitGroup
	results := make([]interface{}, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := loader.Load(context.Background())
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}
