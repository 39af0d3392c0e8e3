// Package http exposes the application services over the original REST surface.
// Handlers translate requests into service calls and map AppError kinds to status codes.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/service"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/metrics"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// HealthChecker reports whether the backing stores are usable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services groups the application services behind the routes
type Services struct {
	Forms   service.FormService
	Queries service.QueryService
	Lookups service.LookupService
	Admin   service.AdminService
	Auth    service.AuthService
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host               string
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	MaxMultipartMemory int64
	Mode               string

	// StaticDirs maps a URL prefix such as /pdf to a directory
	StaticDirs map[string]string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:               "0.0.0.0",
		Port:               1111,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       120 * time.Second,
		ShutdownTimeout:    15 * time.Second,
		MaxMultipartMemory: 32 << 20,
		Mode:               gin.ReleaseMode,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	health     HealthChecker
	metrics    *metrics.Metrics
	logger     Logger
}

// NewServer creates a new HTTP server. health and metrics may be nil.
func NewServer(config ServerConfig, services Services, health HealthChecker, m *metrics.Metrics, logger Logger) *Server {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	router := gin.New()
	if config.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = config.MaxMultipartMemory
	}

	server := &Server{
		config:   config,
		router:   router,
		services: services,
		health:   health,
		metrics:  m,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(recoveryMiddleware(s.logger))
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(corsMiddleware())
	s.router.Use(s.metrics.Middleware())
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := NewHandlers(s.services, s.health, s.logger)
	r := s.router

	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	r.POST("/signin", h.Signin)

	// Forms
	r.POST("/postform", h.PostForm)
	r.PUT("/modify", h.ModifyForm)
	r.DELETE("/erase/:id", h.EraseForm)
	r.GET("/getforms", h.GetForms)
	r.GET("/getforms/:id", h.GetForm)

	// Filters
	r.GET("/fy_year_month/:fy_year/:month", h.FormsByFiscalYearMonth)
	r.GET("/date_filter/:from/:to", h.FormsByDateRange)
	r.GET("/getFormsByBillNos", h.FormsByBillNos)
	r.GET("/getFormsByEmployeeIDs", h.FormsByEmployeeIDs)
	r.GET("/amount/:given", h.FormsByAmount)
	r.GET("/particulars/:given", h.FormsByParticulars)
	r.GET("/fy_year/:given", h.FormsByFiscalYear)
	r.GET("/month/:given", h.FormsByMonth)
	r.GET("/date/:given", h.FormsByDate)
	r.GET("/getFormByHeadCatName/:head_cat_name", h.FormsByHeadCategory)
	r.GET("/getFormByType/:type", h.FormsByType)
	r.GET("/getFormBySubCatName/:sub_cat_name", h.FormsBySubCategory)
	r.GET("/getFormByVehicleID/:vehicle_id", h.FormsByVehicleID)
	r.GET("/export/fy_year_month/:fy_year/:month", h.ExportFiscalYearMonth)

	// Lookups
	r.GET("/gethead_cat", h.HeadCategories)
	r.GET("/getsub_cat", h.SubCategories)
	r.GET("/getmonth", h.Months)
	r.GET("/getdepartment", h.Departments)
	r.GET("/getemployee", h.Employees)
	r.GET("/getvehicle", h.Vehicles)
	r.GET("/getfy_year", h.FiscalYears)
	r.GET("/getfyyearoption", h.FiscalYearOptions)
	r.GET("/getmonthoption", h.MonthOptions)
	r.GET("/getMonthsFromFyYear/:fy_name", h.MonthsFromFiscalYear)
	r.GET("/forms_fy_year", h.FormFiscalYears)

	// Admin toggles
	r.POST("/settruefyyear", h.SetFiscalYear(true))
	r.POST("/setfalsefyyear", h.SetFiscalYear(false))
	r.POST("/setmonthtrue", h.SetMonth(true))
	r.POST("/setmonthfalse", h.SetMonth(false))
	r.POST("/activateMonth", h.SetFiscalYearMonth(true))
	r.POST("/lockMonth", h.SetFiscalYearMonth(false))

	prefixes := make([]string, 0, len(s.config.StaticDirs))
	for prefix := range s.config.StaticDirs {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		r.Static(prefix, s.config.StaticDirs[prefix])
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
