// Package web serves the agent over HTTP: a JSON API and a small chat page.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/golang-commonmark/markdown"
	"go.uber.org/atomic"

	"github.com/bububa/vexa/agents"
	"github.com/bububa/vexa/logging"
	"github.com/bububa/vexa/schema"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 10 * time.Second

// Server serves one agent. Queries are answered one at a time.
type Server struct {
	agent    *agents.Agent
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	debug    bool

	router *gin.Engine
	md     *markdown.Markdown

	mtx      sync.Mutex
	ready    *atomic.Bool
	inFlight *atomic.Int32
	startAt  time.Time
}

func New(agent *agents.Agent, opts ...Option) *Server {
	s := &Server{
		agent:    agent,
		ready:    atomic.NewBool(true),
		inFlight: atomic.NewInt32(0),
		startAt:  time.Now(),
		md:       markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.XHTMLOutput(true)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if !s.debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = gin.New()
	s.router.Use(gin.Recovery(), requestLogger(s.logger))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/", s.index)
	s.router.GET("/healthz", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	api := s.router.Group("/api")
	api.POST("/query", s.query)
	api.GET("/tools", s.tools)
	api.GET("/info", s.info)
}

// Handler returns the http handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Ready reports whether the server accepts queries
func (s *Server) Ready() bool {
	return s.ready.Load()
}

// Run listens on addr until ctx is done, then drains in-flight requests
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.ready.Store(true)
	s.logger.Info("web server listening", slog.String("addr", ln.Addr().String()))
	select {
	case err := <-errCh:
		s.ready.Store(false)
		return err
	case <-ctx.Done():
	}
	s.ready.Store(false)
	s.logger.Info("web server shutting down", slog.Int("in_flight", int(s.inFlight.Load())))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) index(c *gin.Context) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

type queryRequest struct {
	Query string `json:"query"`
}

// queryResponse is a QueryResult with the response rendered as HTML
type queryResponse struct {
	schema.QueryResult
	HTML string
}

func (r queryResponse) MarshalJSON() ([]byte, error) {
	buf, err := r.QueryResult.MarshalJSON()
	if err != nil {
		return nil, err
	}
	html, err := json.Marshal(r.HTML)
	if err != nil {
		return nil, err
	}
	buf = append(buf[:len(buf)-1], `,"html":`...)
	buf = append(buf, html...)
	return append(buf, '}'), nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) query(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "server is shutting down"})
		return
	}
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	res := s.ask(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, queryResponse{
		QueryResult: res,
		HTML:        s.md.RenderToString([]byte(res.Response)),
	})
}

// ask serializes access to the agent
func (s *Server) ask(ctx context.Context, text string) schema.QueryResult {
	s.inFlight.Inc()
	defer s.inFlight.Dec()
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.agent.Query(ctx, text)
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) tools(c *gin.Context) {
	specs := s.agent.Registry().List()
	list := make([]toolInfo, 0, len(specs))
	for _, spec := range specs {
		list = append(list, toolInfo{Name: spec.Name, Description: spec.Description})
	}
	c.JSON(http.StatusOK, gin.H{"tools": list})
}

func (s *Server) info(c *gin.Context) {
	c.JSON(http.StatusOK, s.agent.Info(c.Request.Context()))
}

// health answers liveness cheaply; ?deep=true runs a probe query
func (s *Server) health(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
		return
	}
	if c.Query("deep") != "true" {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"in_flight": s.inFlight.Load(),
			"uptime_s":  int64(time.Since(s.startAt).Seconds()),
		})
		return
	}
	s.inFlight.Inc()
	s.mtx.Lock()
	h := s.agent.HealthCheck(c.Request.Context())
	s.mtx.Unlock()
	s.inFlight.Dec()
	status := http.StatusOK
	if !h.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, h)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startAt := time.Now()
		c.Next()
		logger.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(startAt)))
	}
}
