// Package highlight renders notation-aware terminal coloring for journal
// text using the tokenizer's line spans.
package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChristopherHardiman/lonelog/internal/config"
	"github.com/ChristopherHardiman/lonelog/internal/notation"
)

type Renderer struct {
	styles map[notation.TokenType]lipgloss.Style
}

func NewRenderer(palette config.Palette) *Renderer {
	styleFor := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return &Renderer{
		styles: map[notation.TokenType]lipgloss.Style{
			notation.TokenAction:      styleFor(palette.Action),
			notation.TokenQuestion:    styleFor(palette.Question),
			notation.TokenDice:        styleFor(palette.Dice),
			notation.TokenConsequence: styleFor(palette.Consequence),
			notation.TokenResult:      styleFor(palette.Result).Bold(true),
			notation.TokenTag:         styleFor(palette.Tag),
		},
	}
}

// Line colors a single line. Plain spans pass through unstyled.
func (r *Renderer) Line(line string) string {
	tokens := notation.TokenizeLine(line)
	if len(tokens) == 0 {
		return line
	}

	var sb strings.Builder
	for _, tok := range tokens {
		style, ok := r.styles[tok.Type]
		if !ok {
			sb.WriteString(tok.Text)
			continue
		}
		sb.WriteString(style.Render(tok.Text))
	}
	return sb.String()
}

// Document colors every line of text, preserving line structure.
func (r *Renderer) Document(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = r.Line(line)
	}
	return strings.Join(lines, "\n")
}
