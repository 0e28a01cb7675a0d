package parser

// NamedEntity is an NPC, Location, or PC aggregated across every mention in
// a document. Tags accumulate in first-seen order and are never removed;
// Mentions is non-empty and strictly ascending.
type NamedEntity struct {
	Name         string
	Tags         []string
	Mentions     []int
	FirstMention int
	LastMention  int
}

// Thread is a narrative status tracker. Unlike entity tags, State is not a
// union: the most recent mention's declared state wins, defaulting to
// "Open" when a mention declares none.
type Thread struct {
	Name         string
	State        string
	Mentions     []int
	FirstMention int
	LastMention  int
}

// DefaultThreadState is assumed for thread mentions that declare no state.
const DefaultThreadState = "Open"

type ProgressKind int

const (
	ProgressClock ProgressKind = iota
	ProgressTrack
	ProgressTimer
)

func (k ProgressKind) String() string {
	switch k {
	case ProgressClock:
		return "clock"
	case ProgressTrack:
		return "track"
	case ProgressTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// ProgressElement is one textual occurrence of a clock, track, or timer.
// Occurrences are never merged by name: the same clock written twice yields
// two records. Max is meaningful for clocks and tracks only; timers have no
// upper bound.
type ProgressElement struct {
	Kind    ProgressKind
	Name    string
	Current int
	Max     int
	Line    int
}

// ParsedDocument is the structured snapshot of one full document scan. Maps
// are keyed by the exact trimmed name, case-sensitive. The snapshot is
// value data: a new scan always builds a fresh one, and callers must not
// mutate it (the parser hands the same snapshot out again on a cache hit).
type ParsedDocument struct {
	NPCs      map[string]*NamedEntity
	Locations map[string]*NamedEntity
	PCs       map[string]*NamedEntity
	Threads   map[string]*Thread
	Progress  []ProgressElement
}

func newParsedDocument() *ParsedDocument {
	return &ParsedDocument{
		NPCs:      make(map[string]*NamedEntity),
		Locations: make(map[string]*NamedEntity),
		PCs:       make(map[string]*NamedEntity),
		Threads:   make(map[string]*Thread),
	}
}
