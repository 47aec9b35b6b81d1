package app

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"listingdash/domain/listing"
	"listingdash/internal"
	"listingdash/internal/errors"
	"listingdash/internal/filter"
	"listingdash/internal/panels"
	"listingdash/internal/profiling"
	"listingdash/internal/render"
	"listingdash/ports"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/semaphore"
)

// RenderedPanel is a static panel with its chart data and rendered markup
type RenderedPanel struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Empty bool          `json:"empty"`
	Chart panels.Chart  `json:"chart"`
	Image template.HTML `json:"-"`
}

// InteractivePanel is drawn in the browser from its Plotly figure
type InteractivePanel struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Empty    bool          `json:"empty"`
	Figure   render.Figure `json:"figure"`
	FigureJS template.JS   `json:"-"`
}

// TabView is one tab of static panels
type TabView struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Panels []RenderedPanel `json:"panels"`
}

// Page is everything one redraw shows
type Page struct {
	State           filter.State       `json:"state"`
	PriceMin        int                `json:"price_min"`
	PriceMax        int                `json:"price_max"`
	RoomTypeOptions []string           `json:"room_type_options"`
	BoroughOptions  []string           `json:"borough_options"`
	Metrics         profiling.Metrics  `json:"metrics"`
	DatasetSize     int                `json:"dataset_size"`
	LoadedBanner    string             `json:"loaded_banner"`
	Tabs            []TabView          `json:"tabs"`
	Interactive     []InteractivePanel `json:"interactive"`
	ExportQuery     string             `json:"export_query"`
}

// DashboardService runs the filter -> metrics -> panels pass of a redraw
type DashboardService struct {
	loader  ports.DatasetLoader
	catalog *panels.Catalog
	charts  *render.ChartRenderer
	redraw  *semaphore.Weighted
	logger  *internal.Logger
}

// NewDashboardService creates the dashboard shell over a dataset loader
func NewDashboardService(loader ports.DatasetLoader, opts panels.Options, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		loader:  loader,
		catalog: panels.NewCatalog(opts),
		charts:  render.NewChartRenderer(logger),
		redraw:  semaphore.NewWeighted(1),
		logger:  logger.With("Dashboard"),
	}
}

// Dataset returns the memoized cleaned dataset
func (s *DashboardService) Dataset(ctx context.Context) (*listing.Dataset, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dataset")
	}
	return ds, nil
}

// StateFromQuery loads the dataset and reads the widget state from query parameters
func (s *DashboardService) StateFromQuery(ctx context.Context, q url.Values) (filter.State, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return filter.State{}, err
	}
	return filter.ParseState(q, ds), nil
}

// View returns the filtered view for a widget state
func (s *DashboardService) View(ctx context.Context, state filter.State) (*listing.View, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(ds, state.Criteria()), nil
}

// Render filters once and computes the metrics and every panel from that single view.
// Redraws run one at a time.
func (s *DashboardService) Render(ctx context.Context, state filter.State) (*Page, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.redraw.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.redraw.Release(1)

	start := time.Now()
	view := filter.Apply(ds, state.Criteria())

	page := &Page{
		State:           state,
		PriceMin:        filter.PriceMin,
		PriceMax:        filter.PriceMax,
		RoomTypeOptions: ds.RoomTypes(),
		BoroughOptions:  ds.Boroughs(),
		Metrics:         profiling.Summarize(view),
		DatasetSize:     ds.Len(),
		LoadedBanner:    fmt.Sprintf("Loaded %s listings", humanize.Comma(int64(ds.Len()))),
		ExportQuery:     state.Query().Encode(),
	}

	for _, tab := range s.catalog.Tabs {
		tv := TabView{ID: tab.ID, Title: tab.Title}
		for _, p := range tab.Panels {
			c := p.Render(view)
			tv.Panels = append(tv.Panels, RenderedPanel{
				ID:    c.ID,
				Title: c.Title,
				Empty: c.Empty(),
				Chart: c,
				Image: s.charts.Render(c),
			})
		}
		page.Tabs = append(page.Tabs, tv)
	}

	for _, p := range s.catalog.Interactive {
		c := p.Render(view)
		fig := render.PlotlyFigure(c)
		js, err := fig.JSON()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %s", c.ID)
		}
		page.Interactive = append(page.Interactive, InteractivePanel{
			ID:       c.ID,
			Title:    c.Title,
			Empty:    c.Empty(),
			Figure:   fig,
			FigureJS: js,
		})
	}

	s.logger.Debug("redraw of %d/%d listings took %s", view.Len(), ds.Len(), time.Since(start))
	return page, nil
}
