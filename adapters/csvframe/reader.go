// Package csvframe reads the listings CSV through a gota dataframe and converts
// it into typed listing records.
package csvframe

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"listingdash/domain/listing"
	"listingdash/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// RequiredColumns must be present in the header row
var RequiredColumns = []string{
	"price", "room_type", "neighbourhood_group", "neighbourhood",
	"minimum_nights", "number_of_reviews", "availability_365",
	"host_name", "latitude", "longitude", "last_review",
}

// numeric columns are typed as floats so empty cells become NaN instead of a parse error
var columnTypes = map[string]series.Type{
	"id":                series.Float,
	"price":             series.Float,
	"minimum_nights":    series.Float,
	"number_of_reviews": series.Float,
	"availability_365":  series.Float,
	"latitude":          series.Float,
	"longitude":         series.Float,
}

// Record is a listing as read from disk, before cleaning. LastReview is the raw cell text.
type Record struct {
	listing.Listing
	LastReview string
}

// Reader converts CSV input into raw records
type Reader struct{}

// NewReader creates a new CSV reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile opens path and reads every row
func (r *Reader) ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", path)
	}
	defer file.Close()

	readStart := time.Now()
	records, err := r.Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CSV file %s", path)
	}
	log.Printf("[CSVReader] %s read in %.2fms (%d rows)", path, float64(time.Since(readStart).Nanoseconds())/1e6, len(records))
	return records, nil
}

// Read parses CSV content with a header row. A header without data rows is
// an empty result, not an error.
func (r *Reader) Read(in io.Reader) ([]Record, error) {
	rows, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "malformed CSV")
	}
	if len(rows) == 0 {
		return nil, errors.InvalidInput("CSV has no header row")
	}
	if missing := missingColumns(rows[0]); len(missing) > 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	if len(rows) == 1 {
		return []Record{}, nil
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(columnTypes),
	)
	if df.Err != nil {
		return nil, errors.Wrap(errors.InvalidInput(df.Err.Error()), "malformed CSV")
	}

	n := df.Nrow()
	prices := df.Col("price").Float()
	minNights := df.Col("minimum_nights").Float()
	reviews := df.Col("number_of_reviews").Float()
	availability := df.Col("availability_365").Float()
	lats := df.Col("latitude").Float()
	lons := df.Col("longitude").Float()
	roomTypes := textColumn(df.Col("room_type"))
	boroughs := textColumn(df.Col("neighbourhood_group"))
	neighbourhoods := textColumn(df.Col("neighbourhood"))
	hosts := textColumn(df.Col("host_name"))
	lastReviews := textColumn(df.Col("last_review"))

	ids := optionalFloats(df, "id", n)
	names := optionalStrings(df, "name", n)

	records := make([]Record, n)
	for i := 0; i < n; i++ {
		records[i] = Record{
			Listing: listing.Listing{
				ID:              int64(orZero(ids[i])),
				Name:            names[i],
				HostName:        hosts[i],
				Borough:         boroughs[i],
				Neighbourhood:   neighbourhoods[i],
				Latitude:        lats[i],
				Longitude:       lons[i],
				RoomType:        roomTypes[i],
				Price:           prices[i],
				MinimumNights:   int(orZero(minNights[i])),
				NumberOfReviews: int(orZero(reviews[i])),
				Availability365: int(orZero(availability[i])),
			},
			LastReview: lastReviews[i],
		}
	}
	return records, nil
}

func missingColumns(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func optionalFloats(df dataframe.DataFrame, name string, n int) []float64 {
	if hasColumn(df, name) {
		return df.Col(name).Float()
	}
	return make([]float64, n)
}

func optionalStrings(df dataframe.DataFrame, name string, n int) []string {
	if hasColumn(df, name) {
		return textColumn(df.Col(name))
	}
	return make([]string, n)
}

// textColumn returns the cell strings with missing cells (NA, NaN, <nil>) as ""
func textColumn(s series.Series) []string {
	out := make([]string, s.Len())
	for i := range out {
		if e := s.Elem(i); !e.IsNA() {
			out[i] = e.String()
		}
	}
	return out
}

func orZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
