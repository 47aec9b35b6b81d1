package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const fixtureCSV = `id,name,host_id,host_name,neighbourhood_group,neighbourhood,latitude,longitude,room_type,price,minimum_nights,number_of_reviews,last_review,reviews_per_month,calculated_host_listings_count,availability_365
1,a,10,Ann,Manhattan,Harlem,40.81,-73.94,Entire home/apt,150,2,10,2019-05-21,0.2,2,100
2,b,11,Bob,Brooklyn,Bushwick,40.69,-73.92,Private room,80,1,3,,,1,0
3,c,10,Ann,Manhattan,Harlem,40.80,-73.95,Private room,60,3,0,,,2,30
4,d,12,Cy,Queens,Astoria,40.76,-73.92,Shared room,150,1,1,2019-01-02,0.1,1,365
`

func setupDataset(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "AB_NYC_2019.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	t.Setenv("DATASET_PATHS", path)
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("GIN_MODE", "")
	t.Setenv("MAP_SAMPLE_SIZE", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	setupDataset(t)

	out, err := run(t, "summary", "--price-lo", "50", "--price-hi", "200", "--borough", "Manhattan,Brooklyn")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 4 listings")
	assert.Contains(t, out, "Price: $50 - $200")
	assert.Contains(t, out, "Listings: 3")
	assert.Contains(t, out, "Avg Price: $97")
	assert.Contains(t, out, "Median: $80")
}

func TestSummaryEmptySelection(t *testing.T) {
	setupDataset(t)

	out, err := run(t, "summary", "--room-type", "Hotel room")
	require.NoError(t, err)
	assert.Contains(t, out, "Listings: 0")
	assert.Contains(t, out, "Avg Price: —")
}

func TestTopCommand(t *testing.T) {
	setupDataset(t)

	out, err := run(t, "top", "hosts", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. Ann")
	assert.Contains(t, out, " 2. Bob")
	assert.NotContains(t, out, "Cy")

	_, err = run(t, "top", "prices")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	setupDataset(t)
	target := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := run(t, "export", target, "--room-type", "Private room")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 listings")

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Listings")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestMissingDataset(t *testing.T) {
	t.Setenv("DATASET_PATHS", filepath.Join(t.TempDir(), "nope.csv"))
	t.Setenv("LOG_LEVEL", "ERROR")

	_, err := run(t, "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset not found")
}
