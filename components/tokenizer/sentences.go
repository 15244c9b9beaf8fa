package tokenizer

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/sentences"
)

// CutSentences keeps whole sentences (UAX #29) while they fit in max runes.
// When even the first sentence is too long it falls back to a rune cut.
func CutSentences(text string, max int) (string, bool) {
	if max < 0 || utf8.RuneCountInString(text) <= max {
		return text, false
	}
	var (
		offset int
		runes  int
	)
	for _, seg := range sentences.SegmentAll([]byte(text)) {
		n := utf8.RuneCount(seg)
		if runes+n > max {
			break
		}
		runes += n
		offset += len(seg)
	}
	if offset > 0 {
		return text[:offset], true
	}
	cut := []rune(text)[:max]
	return string(cut), true
}
