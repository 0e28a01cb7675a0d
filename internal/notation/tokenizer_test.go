package notation

import (
	"strings"
	"testing"
)

func checkTiling(t *testing.T, line string, tokens []Token) {
	t.Helper()
	var sb strings.Builder
	pos := 0
	for i, tok := range tokens {
		if tok.Start != pos {
			t.Fatalf("token %d starts at %d, want %d", i, tok.Start, pos)
		}
		if tok.End <= tok.Start {
			t.Fatalf("token %d has empty or inverted span [%d,%d)", i, tok.Start, tok.End)
		}
		if tok.Text != line[tok.Start:tok.End] {
			t.Fatalf("token %d text %q does not match span %q", i, tok.Text, line[tok.Start:tok.End])
		}
		sb.WriteString(tok.Text)
		pos = tok.End
	}
	if sb.String() != line {
		t.Fatalf("tokens rebuild %q, want %q", sb.String(), line)
	}
}

func TestTokenizeLine_Tiling(t *testing.T) {
	lines := []string{
		"",
		"plain narration with no notation",
		"@ attack the guard",
		"? does the door hold",
		"d: 2d6 -> 9",
		"=> the alarm sounds [E:Alarm 2/6]",
		"[N:Jonah|friendly] greets [PC:Arden]",
		"   @ indented action",
		"broken [N:Jonah without closing",
		"[X:unknown prefix]",
		"-> bare result",
		"a=->b",
		"[Thread:Find Sister|Open] -> progress [Timer:Dawn 3]",
	}
	for _, line := range lines {
		checkTiling(t, line, TokenizeLine(line))
	}
}

func TestTokenizeLine_LineTypes(t *testing.T) {
	cases := []struct {
		line string
		want TokenType
	}{
		{"@ strike first", TokenAction},
		{"? is anyone home", TokenQuestion},
		{"d: 1d20+3", TokenDice},
		{"=> the bridge collapses", TokenConsequence},
		{"  \t@ indented still counts", TokenAction},
		{"just prose", TokenPlain},
	}
	for _, tc := range cases {
		tokens := TokenizeLine(tc.line)
		if len(tokens) != 1 {
			t.Fatalf("%q: expected a single token, got %d", tc.line, len(tokens))
		}
		if tokens[0].Type != tc.want {
			t.Fatalf("%q: got type %s, want %s", tc.line, tokens[0].Type, tc.want)
		}
	}
}

func TestTokenizeLine_EmptyLine(t *testing.T) {
	if tokens := TokenizeLine(""); len(tokens) != 0 {
		t.Fatalf("expected no tokens for empty line, got %d", len(tokens))
	}
}

func TestTokenizeLine_InlineTagPrecedence(t *testing.T) {
	tokens := TokenizeLine("@ talk to [N:Jonah|friendly] by the gate")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Type != TokenAction || tokens[2].Type != TokenAction {
		t.Fatalf("gap tokens should carry the line-level type, got %s and %s", tokens[0].Type, tokens[2].Type)
	}
	if tokens[1].Type != TokenTag || tokens[1].Text != "[N:Jonah|friendly]" {
		t.Fatalf("expected tag token for the bracket span, got %s %q", tokens[1].Type, tokens[1].Text)
	}
}

func TestTokenizeLine_ResultArrow(t *testing.T) {
	tokens := TokenizeLine("d: 2d6 -> 9, again -> 4")
	var arrows int
	for _, tok := range tokens {
		if tok.Type == TokenResult {
			arrows++
			if tok.Text != "->" {
				t.Fatalf("result token text %q", tok.Text)
			}
		}
	}
	if arrows != 2 {
		t.Fatalf("expected 2 result tokens, got %d", arrows)
	}
}

func TestTokenizeLine_ArrowAfterEqualsSkipped(t *testing.T) {
	for _, tok := range TokenizeLine("weird a=->b text") {
		if tok.Type == TokenResult {
			t.Fatalf("arrow preceded by '=' must not produce a result token")
		}
	}
}

func TestTokenizeLine_ConsequenceLineHasNoResultTokens(t *testing.T) {
	for _, tok := range TokenizeLine("=> it breaks -> badly") {
		if tok.Type == TokenResult {
			t.Fatalf("consequence lines must not carry result tokens")
		}
	}
}

func TestTokenizeLine_MalformedBracketsStayPlain(t *testing.T) {
	cases := []string{
		"[N:Jonah no closing bracket",
		"[X:unknown kind]",
		"stray ] bracket [",
	}
	for _, line := range cases {
		for _, tok := range TokenizeLine(line) {
			if tok.Type == TokenTag {
				t.Fatalf("%q: malformed bracket produced a tag token %q", line, tok.Text)
			}
		}
	}
}

func TestTokenizeLine_ReferenceTag(t *testing.T) {
	tokens := TokenizeLine("met [#N:Jonah] again")
	if len(tokens) != 3 || tokens[1].Type != TokenTag || tokens[1].Text != "[#N:Jonah]" {
		t.Fatalf("reference tag not tokenized: %v", tokens)
	}
}

func TestTokenizeLine_AllKnownPrefixes(t *testing.T) {
	for _, prefix := range TagPrefixes {
		line := "x [" + prefix + "Name] y"
		var found bool
		for _, tok := range TokenizeLine(line) {
			if tok.Type == TokenTag {
				found = true
			}
		}
		if !found {
			t.Fatalf("prefix %q: no tag token found", prefix)
		}
		checkTiling(t, line, TokenizeLine(line))
	}
}
