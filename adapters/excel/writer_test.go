package excel

import (
	"bytes"
	"testing"
	"time"

	"listingdash/domain/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportView(t *testing.T) {
	reviewed := time.Date(2019, 5, 21, 0, 0, 0, 0, time.UTC)
	view := listing.NewView([]listing.Listing{
		{ID: 2539, Name: "Clean & quiet", HostName: "John", Borough: "Brooklyn", Neighbourhood: "Kensington",
			Latitude: 40.64749, Longitude: -73.97237, RoomType: listing.RoomPrivateRoom, Price: 149,
			MinimumNights: 1, NumberOfReviews: 9, LastReview: &reviewed, Availability365: 365, PricePerReview: 14.9},
		{ID: 2595, Name: "Skylit Midtown", HostName: "Jennifer", Borough: "Manhattan", Neighbourhood: "Midtown",
			RoomType: listing.RoomEntireHome, Price: 225, MinimumNights: 1, NumberOfReviews: 45, PricePerReview: 225.0 / 46},
	})

	var buf bytes.Buffer
	require.NoError(t, NewViewWriter().Export(&buf, view))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ListingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "2539", rows[1][0])
	assert.Equal(t, "Brooklyn", rows[1][3])
	assert.Equal(t, "149", rows[1][8])
	assert.Equal(t, "2019-05-21", rows[1][11])
	assert.Equal(t, "Skylit Midtown", rows[2][1])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"listings", "2"}, summary[1])
	assert.Equal(t, []string{"avg_price", "187"}, summary[2])
}

func TestExportEmptyView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewViewWriter().Export(&buf, listing.NewView(nil)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ListingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"listings", "0"}, summary[1])
	require.NotEmpty(t, summary[2])
	assert.Equal(t, "avg_price", summary[2][0])
	if len(summary[2]) > 1 {
		assert.Empty(t, summary[2][1])
	}
}

func TestWriterMetadata(t *testing.T) {
	w := NewViewWriter()
	assert.Equal(t, ContentType, w.ContentType())
	assert.Equal(t, ".xlsx", w.FileExtension())
}
