package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"fn-peaks/src/analysis"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultRunsLimit = 20

// -----------------------------------------------------------------------------
// FastAPIServer
// -----------------------------------------------------------------------------

type FastAPIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Runner   interfaces.IPeakRunner
	DB       interfaces.IDatabase // optional
	Location *time.Location
	engine   *gin.Engine
	http     *http.Server

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MPeakReport
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	// Local cache
	latestState *models.MPeakReport
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

// NewFastAPIServer wires the REST, WebSocket and metrics routes. gatherer may be nil.
func NewFastAPIServer(cfg *models.MConfig, runner interfaces.IPeakRunner, db interfaces.IDatabase,
	gatherer prometheus.Gatherer, loc *time.Location, logger *logger.Logger) *FastAPIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}
	if loc == nil {
		loc = time.UTC
	}

	s := &FastAPIServer{
		Config:   cfg,
		Logger:   logger,
		Runner:   runner,
		DB:       db,
		Location: loc,
		engine:   gin.New(),
		clients:  make(map[*Client]struct{}),
		// Queue size of 256 absorbs bursts of refreshes
		broadcast:  make(chan *models.MPeakReport, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		latestState: &models.MPeakReport{
			Type:    "INITIAL",
			Columns: analysis.Columns(cfg),
			Devices: make(map[string]models.MMergedDeviceRow),
			Rows:    []models.MTableRow{},
		},
	}
	s.engine.Use(gin.Recovery())

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.setupRoutes(gatherer)
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *FastAPIServer) setupRoutes(gatherer prometheus.Gatherer) {
	api := s.engine.Group("/api")
	api.GET("/peaks", s.getPeaks)
	api.GET("/peaks/response", s.getPeaksResponse)
	api.GET("/columns", s.getColumns)
	api.GET("/runs", s.getRuns)
	api.GET("/config", s.getConfig)
	api.GET("/health", s.getHealth)

	if gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for tests.
func (s *FastAPIServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub and blocks serving HTTP until Stop is called.
func (s *FastAPIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	s.http = &http.Server{Addr: addr, Handler: s.engine}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) Stop() error {
	s.stopOnce.Do(func() { close(s.done) })
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *FastAPIServer) getPeaks(c *gin.Context) {
	report, ok := s.runQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getPeaksResponse(c *gin.Context) {
	report, ok := s.runQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analysis.Response(report))
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) runQuery(c *gin.Context) (*models.MPeakReport, bool) {
	r, err := s.parseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(statusFor(err), errorBody(err))
		return nil, false
	}

	report, err := s.Runner.Run(c.Request.Context(), r)
	if err != nil {
		s.Logger.Warning("Query %s -> %s rejected: %v", c.Query("start"), c.Query("end"), err)
		c.JSON(statusFor(err), errorBody(err))
		return nil, false
	}
	return report, true
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"columns": analysis.Columns(s.Config)})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getRuns(c *gin.Context) {
	if s.DB == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []models.MRunRecord{}})
		return
	}

	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := s.DB.RecentRuns(limit)
	if err != nil {
		s.Logger.Error("Failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []models.MRunRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"channels":      s.Config.Channels,
		"max_span_days": s.Config.Aggregation.MaxSpanDays,
		"time_layout":   s.Config.Aggregation.TimeLayout,
		"timezone":      s.Config.Aggregation.Timezone,
		"unit":          s.Config.Aggregation.Unit,
	})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	latest := s.latestState.GeneratedAt
	s.stateMutex.RUnlock()

	var latestUpdate int64
	if !latest.IsZero() {
		latestUpdate = latest.Unix()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": latestUpdate,
	})
}
