package notation

// TokenType classifies a span of a journal line for display coloring.
type TokenType int

const (
	TokenPlain TokenType = iota
	TokenAction
	TokenQuestion
	TokenDice
	TokenConsequence
	TokenResult
	TokenTag
)

func (t TokenType) String() string {
	switch t {
	case TokenAction:
		return "action"
	case TokenQuestion:
		return "question"
	case TokenDice:
		return "dice"
	case TokenConsequence:
		return "consequence"
	case TokenResult:
		return "result"
	case TokenTag:
		return "tag"
	default:
		return "plain"
	}
}

// Token is a typed span of a single line. Start and End are byte offsets
// within the line, half-open [Start, End). For any input line the returned
// tokens tile the line exactly: contiguous, non-overlapping, last End equal
// to the line length.
type Token struct {
	Type  TokenType
	Start int
	End   int
	Text  string
}

// TagPrefixes lists the bracket-tag kind prefixes recognised inside "[...]".
// "#N:" must sort before "N:" so reference tags are not matched as a plain
// NPC prefix with a stray "#".
var TagPrefixes = []string{"#N:", "N:", "L:", "PC:", "Thread:", "E:", "Track:", "Timer:"}
