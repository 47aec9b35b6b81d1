// Package dataset locates, reads and cleans the listings CSV. The cleaned
// dataset is loaded once and shared read-only for the life of the process.
package dataset

import (
	"context"
	"os"
	"sync"
	"time"

	"listingdash/adapters/csvframe"
	"listingdash/domain/listing"
	"listingdash/internal"
	"listingdash/internal/errors"
)

// Loader memoizes the cleaned dataset found at the first existing candidate path
type Loader struct {
	paths  []string
	reader *csvframe.Reader
	logger *internal.Logger

	mu     sync.Mutex
	cached *listing.Dataset
}

// NewLoader creates a loader over the candidate paths, checked in order
func NewLoader(paths []string, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{
		paths:  append([]string(nil), paths...),
		reader: csvframe.NewReader(),
		logger: logger.With("DatasetLoader"),
	}
}

// Load returns the cleaned dataset, reading the file only on the first successful call.
// Failures are not cached.
func (l *Loader) Load(ctx context.Context) (*listing.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := l.locate()
	if err != nil {
		l.logger.Error("%v", err)
		return nil, err
	}

	start := time.Now()
	records, err := l.reader.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dataset")
	}

	ds := Clean(records, path)
	l.logger.Info("Loaded %d of %d rows from %s in %s (price cap %.2f)",
		ds.Len(), ds.RawCount, path, time.Since(start).Round(time.Millisecond), ds.Threshold)

	l.cached = ds
	return ds, nil
}

func (l *Loader) locate() (string, error) {
	for _, p := range l.paths {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		l.logger.Debug("candidate %s not usable: %v", p, err)
	}
	return "", errors.DatasetNotFound(l.paths)
}
