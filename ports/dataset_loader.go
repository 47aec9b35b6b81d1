package ports

import (
	"context"
	"io"

	"listingdash/domain/listing"
)

// DatasetLoader provides the cleaned, process-wide dataset
type DatasetLoader interface {
	// Load returns the same *listing.Dataset on every successful call
	Load(ctx context.Context) (*listing.Dataset, error)
}

// ViewExporter writes a filtered view in a downloadable format
type ViewExporter interface {
	ContentType() string
	FileExtension() string
	Export(w io.Writer, view *listing.View) error
}
