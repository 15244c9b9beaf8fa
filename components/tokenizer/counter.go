package tokenizer

import (
	"fmt"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"
	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultEncoding is the BPE used when counting for local models
	DefaultEncoding = "cl100k_base"
	// DefaultLoadTimeout bounds the first load of the BPE ranks, which may
	// be downloaded
	DefaultLoadTimeout = 5 * time.Second
)

// Counter counts and cuts text in tokens
type Counter interface {
	// Count returns the number of tokens in text
	Count(text string) int
	// Truncate keeps the first max tokens of text and reports whether anything was cut
	Truncate(text string, max int) (string, bool)
}

// TikTokenCounter provides accurate token counting using the tiktoken library,
// which implements the tokenization schemes used by OpenAI models.
type TikTokenCounter struct {
	tke *tiktoken.Tiktoken
}

var _ Counter = (*TikTokenCounter)(nil)

// NewTikTokenCounter creates a new TikTokenCounter using the specified encoding.
// Common encodings include:
// - "cl100k_base" (GPT-4, ChatGPT)
// - "p50k_base" (GPT-3)
// - "r50k_base" (Codex)
func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding: %w", err)
	}
	return &TikTokenCounter{tke: tke}, nil
}

func (c *TikTokenCounter) Count(text string) int {
	return len(c.tke.Encode(text, nil, nil))
}

func (c *TikTokenCounter) Truncate(text string, max int) (string, bool) {
	tokens := c.tke.Encode(text, nil, nil)
	if max < 0 || len(tokens) <= max {
		return text, false
	}
	cut := c.tke.Decode(tokens[:max])
	// a multi-byte rune may be split across tokens
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut, true
}

// WordsCounter counts Unicode words and punctuation (UAX #29 segments that
// are not whitespace). It needs no BPE ranks and so works offline.
type WordsCounter struct{}

var _ Counter = WordsCounter{}

func (WordsCounter) Count(text string) int {
	var n int
	for _, seg := range words.SegmentAll([]byte(text)) {
		if !isSpace(seg) {
			n++
		}
	}
	return n
}

func (WordsCounter) Truncate(text string, max int) (string, bool) {
	if max < 0 {
		return text, false
	}
	var (
		n      int
		offset int
	)
	for _, seg := range words.SegmentAll([]byte(text)) {
		if !isSpace(seg) {
			if n == max {
				return text[:offset], true
			}
			n++
		}
		offset += len(seg)
	}
	return text, false
}

func isSpace(seg []byte) bool {
	for _, r := range string(seg) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// LazyCounter loads its Counter on first use. A load that fails or takes
// longer than the timeout leaves it counting with WordsCounter.
type LazyCounter struct {
	once    sync.Once
	load    func() (Counter, error)
	timeout time.Duration
	counter Counter
}

var _ Counter = (*LazyCounter)(nil)

// NewLazyCounter wraps load, giving up on it after timeout
func NewLazyCounter(load func() (Counter, error), timeout time.Duration) *LazyCounter {
	return &LazyCounter{load: load, timeout: timeout}
}

func (c *LazyCounter) Count(text string) int {
	return c.get().Count(text)
}

func (c *LazyCounter) Truncate(text string, max int) (string, bool) {
	return c.get().Truncate(text, max)
}

func (c *LazyCounter) get() Counter {
	c.once.Do(func() {
		// buffered so an abandoned load can still finish
		done := make(chan Counter, 1)
		go func() {
			loaded, err := c.load()
			if err != nil {
				loaded = nil
			}
			done <- loaded
		}()
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		select {
		case loaded := <-done:
			c.counter = loaded
		case <-timer.C:
		}
		if c.counter == nil {
			c.counter = WordsCounter{}
		}
	})
	return c.counter
}

func loadTikToken() (Counter, error) {
	c, err := NewTikTokenCounter(DefaultEncoding)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var defaultCounter = NewLazyCounter(loadTikToken, DefaultLoadTimeout)

// Default returns a tiktoken counter that loads the BPE ranks on first use,
// and falls back to WordsCounter when they cannot be loaded in time.
func Default() Counter {
	return defaultCounter
}

// Budget caps text at max tokens, appending a marker when it cuts
func Budget(c Counter, text string, max int) string {
	if max <= 0 {
		return text
	}
	cut, truncated := c.Truncate(text, max)
	if !truncated {
		return text
	}
	return fmt.Sprintf("%s\n... (truncated to %d tokens)", cut, max)
}
