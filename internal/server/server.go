// Package server exposes the decoder over HTTP.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/bitsdec/internal/config"
	"github.com/danmuck/bitsdec/internal/observability"
	"github.com/danmuck/bitsdec/internal/protocol"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

type Server struct {
	ID       string
	Addr     string
	Limits   protocol.Limits
	MaxBody  int64
	Appeared time.Time

	router *gin.Engine
}

type DecodeRequest struct {
	Hex  string `json:"hex"`
	Tree bool   `json:"tree"`
}

type DecodeResponse struct {
	VersionSum string         `json:"version_sum"`
	Value      string         `json:"value"`
	Stats      protocol.Stats `json:"stats"`
	Tree       *protocol.Node `json:"tree,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func New(cfg config.ServerConfig) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.ID))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		ID:       cfg.ID,
		Addr:     cfg.Addr,
		Limits:   cfg.Limits(),
		MaxBody:  cfg.MaxBodyBytes,
		Appeared: time.Now(),
		router:   r,
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"service": s.ID,
			"limits":  s.Limits,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/decode", s.handleDecode)
}

func (s *Server) handleDecode(c *gin.Context) {
	if s.MaxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.MaxBody)
	}
	var req DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error(), Kind: "input_too_large"})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "bad_request"})
		return
	}

	resp, err := s.Decode(req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: protocol.Kind(err)})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Decode runs one request through the decoder and both evaluators.
func (s *Server) Decode(req DecodeRequest) (DecodeResponse, error) {
	start := time.Now()
	p, err := protocol.Decode(strings.TrimSpace(req.Hex), s.Limits)
	if err != nil {
		observability.RecordDecode(protocol.Kind(err), 0, time.Since(start))
		return DecodeResponse{}, err
	}
	value, err := protocol.Value(p)
	if err != nil {
		observability.RecordDecode(protocol.Kind(err), 0, time.Since(start))
		return DecodeResponse{}, err
	}

	resp := DecodeResponse{
		VersionSum: strconv.FormatUint(protocol.VersionSum(p), 10),
		Value:      value.String(),
		Stats:      protocol.Inspect(p),
	}
	if req.Tree {
		node := protocol.Describe(p)
		resp.Tree = &node
	}
	observability.RecordDecode("ok", resp.Stats.Packets, time.Since(start))
	log.Debug().
		Str("service", s.ID).
		Int("packets", resp.Stats.Packets).
		Int("depth", resp.Stats.MaxDepth).
		Msg("decoded")
	return resp, nil
}

func (s *Server) Serve() error {
	log.Info().Str("service", s.ID).Str("addr", s.Addr).Msg("bitsd listening")
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
