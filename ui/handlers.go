package ui

import (
	"bytes"
	"context"
	stderrors "errors"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"listingdash/app"
	"listingdash/domain/listing"
	"listingdash/internal"
	"listingdash/internal/errors"
	"listingdash/ports"
)

const (
	indexPath   = "/"
	pagePath    = "/api/page"
	exportPath  = "/api/export.xlsx"
	healthPath  = "/healthz"
	exportName  = "listings_filtered"
	pageTitle   = "NYC Airbnb - 11 Visualizations"
	pageHeading = "NYC Airbnb Analysis - 11 Visualizations"

	// MissingDatasetMessage replaces the whole page when no candidate CSV exists
	MissingDatasetMessage = "Put AB_NYC_2019.csv in data/ folder"
)

type pageView struct {
	*app.Page
	Title   string
	Heading string
	Footer  template.HTML
}

type errorView struct {
	Title   string
	Status  int
	Message string
}

// ErrorResponse is the JSON body of a failed API call
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// dashboard holds what the gin server and the chi app share
type dashboard struct {
	service   *app.DashboardService
	exporter  ports.ViewExporter
	templates *template.Template
	footer    template.HTML
	logger    *internal.Logger
}

func newDashboard(service *app.DashboardService, exporter ports.ViewExporter, logger *internal.Logger) (*dashboard, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	return &dashboard{
		service:   service,
		exporter:  exporter,
		templates: templates,
		footer:    renderMarkdown(FooterNote),
		logger:    logger.With("HTTP"),
	}, nil
}

func (d *dashboard) page(ctx context.Context, q url.Values) (*app.Page, error) {
	state, err := d.service.StateFromQuery(ctx, q)
	if err != nil {
		return nil, err
	}
	return d.service.Render(ctx, state)
}

func (d *dashboard) writePage(w io.Writer, page *app.Page) error {
	return executeTemplate(d.templates, w, "page.html", pageView{
		Page:    page,
		Title:   pageTitle,
		Heading: pageHeading,
		Footer:  d.footer,
	})
}

func (d *dashboard) writeErrorPage(w io.Writer, status int, message string) error {
	return executeTemplate(d.templates, w, "error.html", errorView{
		Title:   pageTitle,
		Status:  status,
		Message: message,
	})
}

// view resolves the filtered view for the widget state in the query
func (d *dashboard) view(ctx context.Context, q url.Values) (*listing.View, error) {
	state, err := d.service.StateFromQuery(ctx, q)
	if err != nil {
		return nil, err
	}
	return d.service.View(ctx, state)
}

// export renders the whole workbook into memory before a byte is sent
func (d *dashboard) export(view *listing.View) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := d.exporter.Export(&buf, view); err != nil {
		return nil, errors.Wrap(err, "failed to export view")
	}
	return &buf, nil
}

func (d *dashboard) attachmentName() string {
	return exportName + d.exporter.FileExtension()
}

// failure maps an error to its HTTP status and the message shown to the user
func (d *dashboard) failure(err error) (int, ErrorResponse) {
	code := errors.GetCode(err)
	switch {
	case errors.Is(err, errors.CodeDatasetNotFound):
		d.logger.Warn("dataset unavailable: %v", err)
		return http.StatusServiceUnavailable, ErrorResponse{Error: MissingDatasetMessage, Code: code}
	case stderrors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, ErrorResponse{Error: "request canceled", Code: code}
	default:
		d.logger.Error("request failed: %v", err)
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: code}
	}
}
