package csvframe

import (
	"encoding/csv"
	"io"
	"strconv"

	"listingdash/domain/listing"
	"listingdash/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// WriteColumns is the header written by Write, a subset of the source CSV schema
var WriteColumns = []string{
	"id", "name", "host_name", "neighbourhood_group", "neighbourhood",
	"latitude", "longitude", "room_type", "price", "minimum_nights",
	"number_of_reviews", "last_review", "availability_365",
}

// Writer serialises listings in the source CSV layout so Reader can load them back
type Writer struct{}

// NewWriter creates a new CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write emits a header row followed by one row per listing
func (w *Writer) Write(out io.Writer, rows []listing.Listing) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, WriteColumns)
	if len(rows) == 0 {
		// a frame cannot hold zero rows, so the bare header goes out directly
		return errors.Wrap(csv.NewWriter(out).WriteAll(records), "failed to write CSV")
	}
	for _, l := range rows {
		records = append(records, csvRow(l))
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return errors.Wrap(df.Err, "failed to build frame")
	}
	if err := df.WriteCSV(out); err != nil {
		return errors.Wrap(err, "failed to write CSV")
	}
	return nil
}

func csvRow(l listing.Listing) []string {
	lastReview := ""
	if l.LastReview != nil {
		lastReview = l.LastReview.Format("2006-01-02")
	}
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.Name,
		l.HostName,
		l.Borough,
		l.Neighbourhood,
		strconv.FormatFloat(l.Latitude, 'f', -1, 64),
		strconv.FormatFloat(l.Longitude, 'f', -1, 64),
		l.RoomType,
		strconv.FormatFloat(l.Price, 'f', -1, 64),
		strconv.Itoa(l.MinimumNights),
		strconv.Itoa(l.NumberOfReviews),
		lastReview,
		strconv.Itoa(l.Availability365),
	}
}
