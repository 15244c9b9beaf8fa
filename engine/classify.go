package engine

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"syscall"
)

// StatusError carries the HTTP status of a failed engine call
type StatusError interface {
	error
	StatusCode() int
}

// IsUnavailable decides whether err means the engine is unreachable rather
// than misbehaving: connection failures, timeouts, 5xx and 404 (model not
// pulled) statuses.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return UnavailableStatus(statusErr.StatusCode())
	}
	return false
}

// UnavailableStatus reports whether an HTTP status means the engine is down
func UnavailableStatus(code int) bool {
	return code == http.StatusNotFound || code >= http.StatusInternalServerError
}

// Classify wraps err with ErrUnavailable when IsUnavailable holds
func Classify(err error) error {
	if IsUnavailable(err) {
		return Unavailable(err)
	}
	return err
}
