package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCutSentences(t *testing.T) {
	text := "Gophers dig. They live in burrows. Some are pocket gophers."

	out, cut := CutSentences(text, 100)
	assert.False(t, cut)
	assert.Equal(t, text, out)

	out, cut = CutSentences(text, 36)
	assert.True(t, cut)
	assert.Equal(t, "Gophers dig. They live in burrows. ", out)

	out, cut = CutSentences(text, 5)
	assert.True(t, cut)
	assert.Equal(t, "Gophe", out)

	out, cut = CutSentences("日本語の文です。次の文。", 9)
	assert.True(t, cut)
	assert.Equal(t, "日本語の文です。", out)
}
