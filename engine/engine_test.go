package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

func TestIsUnavailable(t *testing.T) {
	unavailable := []error{
		ErrUnavailable,
		context.DeadlineExceeded,
		&url.Error{Op: "Post", URL: "http://localhost:11434/v1/chat/completions", Err: errors.New("connection refused")},
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")},
		fmt.Errorf("wrapped: %w", &net.DNSError{Err: "no such host", Name: "ollama"}),
		statusErr(500),
		statusErr(503),
		statusErr(404),
	}
	for _, err := range unavailable {
		assert.True(t, IsUnavailable(err), err.Error())
		assert.ErrorIs(t, Classify(err), ErrUnavailable, err.Error())
	}

	available := []error{
		nil,
		errors.New("bad json"),
		statusErr(400),
		statusErr(429),
		ErrEmptyResponse,
	}
	for _, err := range available {
		assert.False(t, IsUnavailable(err))
	}
	assert.Nil(t, Classify(nil))
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Unavailable(cause)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Same(t, err, Unavailable(err))
	assert.Nil(t, Unavailable(nil))
}

func TestDecision(t *testing.T) {
	d := ToolCall("calculator", "1+1")
	assert.True(t, d.IsToolCall())
	assert.False(t, Answer("hi").IsToolCall())
	assert.False(t, Prompt{}.Final())
	assert.True(t, Prompt{Observation: &Observation{}}.Final())
}
