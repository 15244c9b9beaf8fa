package web

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithGatherer sets the registry served on /metrics
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithDebug keeps gin in debug mode
func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.debug = debug
	}
}
