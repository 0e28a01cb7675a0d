package highlight

import (
	"strings"
	"testing"

	"github.com/ChristopherHardiman/lonelog/internal/config"
)

// containsInOrder checks each piece appears in s after the previous one;
// rendered output may interleave escape sequences between pieces.
func containsInOrder(s string, pieces ...string) bool {
	pos := 0
	for _, piece := range pieces {
		idx := strings.Index(s[pos:], piece)
		if idx == -1 {
			return false
		}
		pos += idx + len(piece)
	}
	return true
}

func TestRenderer_LineKeepsTextInOrder(t *testing.T) {
	r := NewRenderer(config.DefaultPalette)

	line := "@ talk to [N:Jonah|friendly] -> he waves"
	got := r.Line(line)
	if !containsInOrder(got, "@ talk to ", "[N:Jonah|friendly]", " ", "->", " he waves") {
		t.Fatalf("rendered line lost or reordered text: %q", got)
	}
}

func TestRenderer_PlainLineUnstyled(t *testing.T) {
	r := NewRenderer(config.DefaultPalette)

	line := "just narration, nothing to color"
	if got := r.Line(line); got != line {
		t.Fatalf("plain line was altered: %q", got)
	}
}

func TestRenderer_DocumentPreservesLineCount(t *testing.T) {
	r := NewRenderer(config.DefaultPalette)

	text := "@ act\n\n? ask\nplain"
	got := r.Document(text)
	if strings.Count(got, "\n") != strings.Count(text, "\n") {
		t.Fatalf("line structure changed:\n%q\n%q", text, got)
	}
}
