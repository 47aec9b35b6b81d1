package excel

import (
	"fmt"
	"io"

	"listingdash/domain/listing"
	"listingdash/internal/errors"
	"listingdash/internal/profiling"

	"github.com/xuri/excelize/v2"
)

const (
	ListingsSheet = "Listings"
	SummarySheet  = "Summary"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout    = "2006-01-02"
)

// Columns is the header row of the listings sheet, in CSV column naming
var Columns = []string{
	"id", "name", "host_name", "neighbourhood_group", "neighbourhood",
	"latitude", "longitude", "room_type", "price", "minimum_nights",
	"number_of_reviews", "last_review", "availability_365", "price_per_review",
}

// ViewWriter exports a filtered view to an XLSX workbook
type ViewWriter struct{}

// NewViewWriter creates an XLSX exporter
func NewViewWriter() *ViewWriter {
	return &ViewWriter{}
}

func (w *ViewWriter) ContentType() string   { return ContentType }
func (w *ViewWriter) FileExtension() string { return ".xlsx" }

// Export streams the view rows into a listings sheet and writes a summary sheet
// with the same metrics the dashboard shows.
func (w *ViewWriter) Export(out io.Writer, view *listing.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ListingsSheet); err != nil {
		return errors.Wrap(err, "failed to name listings sheet")
	}
	if err := writeListings(f, view); err != nil {
		return err
	}
	if err := writeSummary(f, view); err != nil {
		return err
	}

	if _, err := f.WriteTo(out); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func writeListings(f *excelize.File, view *listing.View) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	sw, err := f.NewStreamWriter(ListingsSheet)
	if err != nil {
		return errors.Wrap(err, "failed to open stream writer")
	}
	if err := sw.SetColWidth(1, len(Columns), 16); err != nil {
		return errors.Wrap(err, "failed to set column width")
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = excelize.Cell{StyleID: bold, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	if view != nil {
		for i, l := range view.Listings {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return errors.Wrap(err, "failed to address row")
			}
			if err := sw.SetRow(cell, listingRow(l)); err != nil {
				return errors.Wrapf(err, "failed to write row %d", i+2)
			}
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush listings sheet")
	}
	return nil
}

func listingRow(l listing.Listing) []interface{} {
	lastReview := ""
	if l.LastReview != nil {
		lastReview = l.LastReview.Format(dateLayout)
	}
	return []interface{}{
		l.ID, l.Name, l.HostName, l.Borough, l.Neighbourhood,
		l.Latitude, l.Longitude, l.RoomType, l.Price, l.MinimumNights,
		l.NumberOfReviews, lastReview, l.Availability365, l.PricePerReview,
	}
}

func writeSummary(f *excelize.File, view *listing.View) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return errors.Wrap(err, "failed to create summary sheet")
	}

	m := profiling.Summarize(view)
	rows := [][]interface{}{
		{"metric", "value"},
		{"listings", m.Count},
		{"avg_price", metricValue(m.Defined, m.MeanPrice)},
		{"median_price", metricValue(m.Defined, m.MedianPrice)},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return errors.Wrap(err, "failed to write summary")
		}
	}
	return nil
}

// metricValue leaves the cell blank when the metric is undefined for an empty view
func metricValue(defined bool, v float64) interface{} {
	if !defined {
		return ""
	}
	return v
}
