package store

// Entity kind names used as the kind column.
const (
	KindNPC      = "npc"
	KindLocation = "location"
	KindPC       = "pc"
)

// FileSnapshot is the full parse result of one journal file, handed to
// ReplaceFile as a unit.
type FileSnapshot struct {
	Journal  string
	Path     string
	Hash     string
	Entities []EntityRecord
	Threads  []ThreadRecord
	Progress []ProgressRecord
}

type EntityRecord struct {
	Kind     string
	Name     string
	Tags     []string
	Mentions []int
}

type ThreadRecord struct {
	Name     string
	State    string
	Mentions []int
}

type ProgressRecord struct {
	Kind    string
	Name    string
	Current int
	Max     int
	Line    int
}

type Entity struct {
	Kind         string
	Name         string
	Journal      string
	SourceFile   string
	Tags         []string
	Mentions     []int
	FirstMention int
	LastMention  int
}

type Thread struct {
	Name         string
	State        string
	Journal      string
	SourceFile   string
	Mentions     []int
	FirstMention int
	LastMention  int
}

type Progress struct {
	Kind       string
	Name       string
	Journal    string
	SourceFile string
	Current    int
	Max        int
	Line       int
}

type SearchResult struct {
	Kind       string
	Name       string
	Journal    string
	SourceFile string
	Tags       []string
	Score      float64
}
