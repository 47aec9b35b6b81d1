package app

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"listingdash/domain/listing"
	"listingdash/internal/errors"
	"listingdash/internal/filter"
	"listingdash/internal/panels"
	"listingdash/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	ds    *listing.Dataset
	err   error
	mu    sync.Mutex
	calls int
}

func (f *fakeLoader) Load(ctx context.Context) (*listing.Dataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.ds, f.err
}

func sampleDataset() *listing.Dataset {
	rows := []listing.Listing{
		{ID: 1, Name: "a", HostName: "Ann", Borough: "Manhattan", Neighbourhood: "Harlem", Latitude: 40.81, Longitude: -73.94, RoomType: listing.RoomEntireHome, Price: 150, MinimumNights: 2, NumberOfReviews: 10},
		{ID: 2, Name: "b", HostName: "Bob", Borough: "Brooklyn", Neighbourhood: "Bushwick", Latitude: 40.69, Longitude: -73.92, RoomType: listing.RoomPrivateRoom, Price: 80, MinimumNights: 1, NumberOfReviews: 3},
		{ID: 3, Name: "c", HostName: "Ann", Borough: "Manhattan", Neighbourhood: "Harlem", Latitude: 40.80, Longitude: -73.95, RoomType: listing.RoomPrivateRoom, Price: 60, MinimumNights: 3, NumberOfReviews: 0},
		{ID: 4, Name: "d", HostName: "Cy", Borough: "Queens", Neighbourhood: "Astoria", Latitude: 40.76, Longitude: -73.92, RoomType: listing.RoomSharedRoom, Price: 500, MinimumNights: 40, NumberOfReviews: 1},
	}
	return listing.NewDataset(rows, "mem.csv", len(rows), 500)
}

func newService(loader *fakeLoader) *DashboardService {
	return NewDashboardService(loader, panels.DefaultOptions(), nil)
}

func TestRenderDefaultState(t *testing.T) {
	ds := sampleDataset()
	svc := newService(&fakeLoader{ds: ds})

	page, err := svc.Render(context.Background(), filter.DefaultState(ds))
	require.NoError(t, err)

	assert.Equal(t, 3, page.Metrics.Count)
	assert.InDelta(t, 96.67, page.Metrics.MeanPrice, 0.01)
	assert.Equal(t, 80.0, page.Metrics.MedianPrice)
	assert.Equal(t, "Loaded 4 listings", page.LoadedBanner)
	assert.Equal(t, 4, page.DatasetSize)
	assert.Equal(t, []string{"Manhattan", "Brooklyn", "Queens"}, page.BoroughOptions)
	assert.Equal(t, filter.PriceMin, page.PriceMin)
	assert.Equal(t, filter.PriceMax, page.PriceMax)

	require.Len(t, page.Tabs, 3)
	total := 0
	for _, tab := range page.Tabs {
		for _, p := range tab.Panels {
			assert.NotEmpty(t, p.Image)
			assert.NotContains(t, string(p.Image), render.EmptyMessage)
			total++
		}
	}
	assert.Equal(t, 10, total)
	require.Len(t, page.Interactive, 2)
	for _, p := range page.Interactive {
		assert.NotEmpty(t, string(p.FigureJS))
	}
}

func TestRenderEmptySelectionShowsPlaceholders(t *testing.T) {
	ds := sampleDataset()
	svc := newService(&fakeLoader{ds: ds})

	state := filter.DefaultState(ds)
	state.RoomTypes = []string{}

	page, err := svc.Render(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, 0, page.Metrics.Count)
	assert.False(t, page.Metrics.Defined)
	for _, tab := range page.Tabs {
		for _, p := range tab.Panels {
			assert.True(t, p.Empty, p.ID)
		}
	}
	for _, p := range page.Interactive {
		assert.True(t, p.Empty, p.ID)
	}
}

func TestRenderMissingDataset(t *testing.T) {
	loader := &fakeLoader{err: errors.DatasetNotFound([]string{"data/AB_NYC_2019.csv"})}
	svc := newService(loader)

	page, err := svc.Render(context.Background(), filter.State{PriceLo: 10, PriceHi: 300})
	assert.Nil(t, page)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeDatasetNotFound))
}

func TestStateFromQuery(t *testing.T) {
	ds := sampleDataset()
	svc := newService(&fakeLoader{ds: ds})

	q := url.Values{}
	q.Set("price_lo", "50")
	q.Set("price_hi", "100")
	q.Add("borough", "Brooklyn")
	q.Set("submitted", "1")

	state, err := svc.StateFromQuery(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 50, state.PriceLo)
	assert.Equal(t, 100, state.PriceHi)
	assert.Equal(t, []string{"Brooklyn"}, state.Boroughs)
	assert.Empty(t, state.RoomTypes)

	view, err := svc.View(context.Background(), filter.DefaultState(ds))
	require.NoError(t, err)
	assert.Equal(t, 3, view.Len())
}

func TestRenderConcurrentRedraws(t *testing.T) {
	ds := sampleDataset()
	svc := newService(&fakeLoader{ds: ds})
	state := filter.DefaultState(ds)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := svc.Render(context.Background(), state)
			assert.NoError(t, err)
			assert.Equal(t, 3, page.Metrics.Count)
		}()
	}
	wg.Wait()
}

func TestRenderCanceledContext(t *testing.T) {
	ds := sampleDataset()
	svc := newService(&fakeLoader{ds: ds})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Render(ctx, filter.DefaultState(ds))
	assert.Error(t, err)
}
