package notation

import "strings"

// TokenizeLine splits one line of journal text into an ordered token
// sequence. It never fails: malformed notation simply tokenizes as plain
// text, and the whole line is always covered.
func TokenizeLine(line string) []Token {
	if line == "" {
		return nil
	}

	base := lineType(line)
	inline := scanInline(line, base)

	tokens := make([]Token, 0, 2*len(inline)+1)
	pos := 0
	for _, tok := range inline {
		if tok.Start > pos {
			tokens = append(tokens, Token{Type: base, Start: pos, End: tok.Start, Text: line[pos:tok.Start]})
		}
		tokens = append(tokens, tok)
		pos = tok.End
	}
	if pos < len(line) {
		tokens = append(tokens, Token{Type: base, Start: pos, End: len(line), Text: line[pos:]})
	}
	return tokens
}

// lineType returns the line-level token type from the line's first
// non-whitespace characters. The four prefixes are mutually exclusive, so
// the check order only matters if the grammar ever grows overlapping ones.
func lineType(line string) TokenType {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "@"):
		return TokenAction
	case strings.HasPrefix(trimmed, "?"):
		return TokenQuestion
	case strings.HasPrefix(trimmed, "d:"):
		return TokenDice
	case strings.HasPrefix(trimmed, "=>"):
		return TokenConsequence
	}
	return TokenPlain
}

// scanInline walks the untrimmed line once, left to right, collecting
// bracket tags and result arrows. A single forward scan makes overlap
// resolution leftmost-match-wins and yields tokens already sorted by start.
func scanInline(line string, base TokenType) []Token {
	var tokens []Token
	for i := 0; i < len(line); {
		if line[i] == '[' {
			if end, ok := matchBracketTag(line, i); ok {
				tokens = append(tokens, Token{Type: TokenTag, Start: i, End: end, Text: line[i:end]})
				i = end
				continue
			}
		}
		// A result arrow, unless it is the tail of the "=>" consequence
		// marker. Consequence lines cannot carry a free arrow at all.
		if base != TokenConsequence && strings.HasPrefix(line[i:], "->") {
			if i == 0 || line[i-1] != '=' {
				tokens = append(tokens, Token{Type: TokenResult, Start: i, End: i + 2, Text: line[i : i+2]})
				i += 2
				continue
			}
		}
		i++
	}
	return tokens
}

// matchBracketTag reports whether a known bracket tag opens at position
// start (which must hold '['), returning the offset just past its closing
// ']'. Unterminated or unknown-prefix brackets do not match.
func matchBracketTag(line string, start int) (end int, ok bool) {
	rest := line[start+1:]
	for _, prefix := range TagPrefixes {
		if strings.HasPrefix(rest, prefix) {
			close := strings.IndexByte(rest[len(prefix):], ']')
			if close == -1 {
				return 0, false
			}
			return start + 1 + len(prefix) + close + 1, true
		}
	}
	return 0, false
}
