package outline

import (
	"regexp"
	"strings"

	"github.com/local/outliner/internal/document"
)

// numberedPattern matches a leading list marker such as "1. ", "2.1. ", "1.2.3. " or "A. ".
var numberedPattern = regexp.MustCompile(`^\s*(\d+(\.\d+)*|[A-Z])\.\s+`)

// IsBold reports whether a font name denotes a bold face.
func IsBold(font string) bool {
	return strings.Contains(strings.ToLower(font), "bold")
}

// IsNumbered reports whether text starts with a list marker.
func IsNumbered(text string) bool { return numberedPattern.MatchString(text) }

// Score rates how much a line looks like a heading. The line's style is that of its first
// span; ok is false for a line without spans, which cannot be scored.
func Score(line document.Line, bodySize int, h Heuristics) (score int, ok bool) {
	first, ok := line.First()
	if !ok {
		return 0, false
	}
	score = first.RoundedSize() - bodySize
	if IsBold(first.Font) {
		score += h.BoldBonus
	}
	if IsNumbered(line.Text()) {
		score += h.NumberedBonus
	}
	return score, true
}
