package ui

import (
	"net/http"

	"listingdash/app"
	"listingdash/internal"
	"listingdash/ports"

	"github.com/gin-gonic/gin"
)

// Server is the gin web server for the dashboard
type Server struct {
	router *gin.Engine
	*dashboard
}

// NewServer creates the web server and registers its routes
func NewServer(service *app.DashboardService, exporter ports.ViewExporter, logger *internal.Logger) (*Server, error) {
	d, err := newDashboard(service, exporter, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{router: gin.New(), dashboard: d}
	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware and the embedded static files
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.logger))

	staticFS, err := staticFileSystem()
	if err != nil {
		return err
	}
	s.router.StaticFS("/static", staticFS)
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET(indexPath, s.handleIndex)
	s.router.GET(pagePath, s.handlePage)
	s.router.GET(exportPath, s.handleExport)
	s.router.GET(healthPath, s.handleHealth)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// handleIndex renders the full dashboard for the widget state in the query
func (s *Server) handleIndex(c *gin.Context) {
	page, err := s.page(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		status, resp := s.failure(err)
		s.renderError(c, status, resp.Error)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.writePage(c.Writer, page); err != nil {
		s.logger.Error("template error: %v", err)
		s.renderError(c, http.StatusInternalServerError, "internal error")
	}
}

// handlePage returns the same redraw as JSON
func (s *Server) handlePage(c *gin.Context) {
	page, err := s.page(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		status, resp := s.failure(err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, page)
}

// handleExport sends the filtered view as a workbook download
func (s *Server) handleExport(c *gin.Context) {
	view, err := s.view(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		status, resp := s.failure(err)
		c.JSON(status, resp)
		return
	}

	workbook, err := s.export(view)
	if err != nil {
		status, resp := s.failure(err)
		c.JSON(status, resp)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+s.attachmentName()+`"`)
	c.Data(http.StatusOK, s.exporter.ContentType(), workbook.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := s.writeErrorPage(c.Writer, status, message); err != nil {
		s.logger.Error("template error: %v", err)
		c.String(status, message)
	}
}
