// Package suggest offers auto-completions for partially typed notation
// tags. It decides whether a cursor position is inside a completable tag,
// filters and ranks the known entity names of that kind, and composes the
// replacement text for a chosen candidate.
package suggest

import (
	"sort"
	"strings"

	"github.com/ChristopherHardiman/lonelog/internal/parser"
)

// Kind identifies which entity namespace a trigger completes against.
type Kind int

const (
	KindNPC Kind = iota
	KindLocation
	KindPC
	KindThread
)

func (k Kind) String() string {
	switch k {
	case KindNPC:
		return "npc"
	case KindLocation:
		return "location"
	case KindPC:
		return "pc"
	case KindThread:
		return "thread"
	default:
		return "unknown"
	}
}

// triggerPrefixes maps completable tag openers to their kind. "[#N:" is
// checked before "[N:" and marks a reference context.
var triggerPrefixes = []struct {
	prefix    string
	kind      Kind
	reference bool
}{
	{"[#N:", KindNPC, true},
	{"[N:", KindNPC, false},
	{"[L:", KindLocation, false},
	{"[PC:", KindPC, false},
	{"[Thread:", KindThread, false},
}

// TriggerInfo describes an active completion context: the tag kind, the
// partial query the user has typed, and the byte range [Start, End) of that
// query within the line (the region a chosen candidate replaces).
type TriggerInfo struct {
	Kind      Kind
	Reference bool
	Query     string
	Start     int
	End       int
}

// Trigger inspects the text before cursor (a byte offset into line) and
// reports whether the user is typing inside an unclosed tag of a known
// kind. Once a ']', '|', or another '[' follows the opener the tag is no
// longer completable.
func Trigger(line string, cursor int) (TriggerInfo, bool) {
	if cursor < 0 || cursor > len(line) {
		return TriggerInfo{}, false
	}
	before := line[:cursor]

	open := strings.LastIndexByte(before, '[')
	if open == -1 {
		return TriggerInfo{}, false
	}
	tail := before[open:]
	for _, tp := range triggerPrefixes {
		if !strings.HasPrefix(tail, tp.prefix) {
			continue
		}
		query := tail[len(tp.prefix):]
		if strings.ContainsAny(query, "]|[") {
			return TriggerInfo{}, false
		}
		return TriggerInfo{
			Kind:      tp.kind,
			Reference: tp.reference,
			Query:     query,
			Start:     open + len(tp.prefix),
			End:       cursor,
		}, true
	}
	return TriggerInfo{}, false
}

// Candidate is one completable entity name. Tags carries the entity's
// accumulated tags so composition can re-emit them; it is empty for
// threads.
type Candidate struct {
	Kind Kind
	Name string
	Tags []string
}

// Candidates filters the known names of the trigger's kind to those whose
// lowercase form contains the lowercase query (an empty query matches
// everything) and ranks them: exact case-insensitive matches first, then
// prefix matches, then the rest, alphabetically within each tier.
func Candidates(doc *parser.ParsedDocument, kind Kind, query string) []Candidate {
	if doc == nil {
		return nil
	}

	var out []Candidate
	switch kind {
	case KindNPC:
		out = namedCandidates(doc.NPCs, kind, query)
	case KindLocation:
		out = namedCandidates(doc.Locations, kind, query)
	case KindPC:
		out = namedCandidates(doc.PCs, kind, query)
	case KindThread:
		lower := strings.ToLower(query)
		for name := range doc.Threads {
			if strings.Contains(strings.ToLower(name), lower) {
				out = append(out, Candidate{Kind: kind, Name: name})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := rankTier(out[i].Name, query), rankTier(out[j].Name, query)
		if ti != tj {
			return ti < tj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func namedCandidates(entities map[string]*parser.NamedEntity, kind Kind, query string) []Candidate {
	lower := strings.ToLower(query)
	var out []Candidate
	for name, entity := range entities {
		if strings.Contains(strings.ToLower(name), lower) {
			out = append(out, Candidate{Kind: kind, Name: name, Tags: entity.Tags})
		}
	}
	return out
}

func rankTier(name, query string) int {
	switch {
	case strings.EqualFold(name, query):
		return 0
	case strings.HasPrefix(strings.ToLower(name), strings.ToLower(query)):
		return 1
	default:
		return 2
	}
}

// Compose builds the replacement text for a chosen candidate and the byte
// offset within it where the cursor belongs, immediately before the final
// ']' so the user can keep editing the tag payload. A reference context
// composes the bare name: references point at an entity and carry no tags.
func Compose(c Candidate, reference bool) (text string, cursor int) {
	switch {
	case reference:
		text = c.Name + "]"
	case c.Kind == KindThread:
		// Threads always complete with a fresh Open state, never the
		// current one.
		text = c.Name + "|" + parser.DefaultThreadState + "]"
	case len(c.Tags) > 0:
		text = c.Name + "|" + strings.Join(c.Tags, "|") + "]"
	default:
		text = c.Name + "|]"
	}
	return text, len(text) - 1
}

// Apply splices a chosen candidate into line, replacing the trigger's query
// region. It returns the rewritten line and the new cursor offset. This is
// the only document mutation the engine performs.
func Apply(line string, trig TriggerInfo, c Candidate) (string, int) {
	replacement, rel := Compose(c, trig.Reference)
	return line[:trig.Start] + replacement + line[trig.End:], trig.Start + rel
}
