package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_TagAggregation(t *testing.T) {
	p := New()
	doc := p.Parse("[N:Jonah|friendly]\nx\n[N:Jonah|wounded]")

	jonah, ok := doc.NPCs["Jonah"]
	if !ok {
		t.Fatalf("expected NPC Jonah, got keys %v", keys(doc.NPCs))
	}
	if !reflect.DeepEqual(jonah.Tags, []string{"friendly", "wounded"}) {
		t.Fatalf("tags = %v, want [friendly wounded]", jonah.Tags)
	}
	if !reflect.DeepEqual(jonah.Mentions, []int{0, 2}) {
		t.Fatalf("mentions = %v, want [0 2]", jonah.Mentions)
	}
	if jonah.FirstMention != 0 || jonah.LastMention != 2 {
		t.Fatalf("first/last = %d/%d, want 0/2", jonah.FirstMention, jonah.LastMention)
	}
}

func TestParse_TagsNeverRemovedOrReordered(t *testing.T) {
	p := New()
	doc := p.Parse("[N:Jonah|friendly|armed]\n[N:Jonah|armed|friendly|wounded]")

	jonah := doc.NPCs["Jonah"]
	if jonah == nil {
		t.Fatal("missing NPC Jonah")
	}
	if !reflect.DeepEqual(jonah.Tags, []string{"friendly", "armed", "wounded"}) {
		t.Fatalf("tags = %v, want first-seen order with no duplicates", jonah.Tags)
	}
}

func TestParse_ThreadLastWriteWins(t *testing.T) {
	p := New()
	doc := p.Parse("[Thread:Find Sister|Open]\nsome travel\n[Thread:Find Sister|Closed]")

	thread := doc.Threads["Find Sister"]
	if thread == nil {
		t.Fatal("missing thread Find Sister")
	}
	if thread.State != "Closed" {
		t.Fatalf("state = %q, want Closed", thread.State)
	}
	if len(thread.Mentions) != 2 {
		t.Fatalf("mentions = %v, want 2 entries", thread.Mentions)
	}
}

func TestParse_ThreadStateDefaultsToOpen(t *testing.T) {
	p := New()

	doc := p.Parse("[Thread:Escape]")
	if got := doc.Threads["Escape"].State; got != "Open" {
		t.Fatalf("state = %q, want Open", got)
	}

	// A later stateless mention resets the state back to Open.
	doc = p.Parse("[Thread:Escape|Closed]\n[Thread:Escape]")
	if got := doc.Threads["Escape"].State; got != "Open" {
		t.Fatalf("state after stateless mention = %q, want Open", got)
	}
}

func TestParse_ProgressNotAggregated(t *testing.T) {
	p := New()
	doc := p.Parse("[E:Alarm 1/6]\nnothing\n[E:Alarm 1/6]")

	if len(doc.Progress) != 2 {
		t.Fatalf("progress = %v, want 2 independent records", doc.Progress)
	}
	if doc.Progress[0].Line != 0 || doc.Progress[1].Line != 2 {
		t.Fatalf("lines = %d,%d, want 0,2", doc.Progress[0].Line, doc.Progress[1].Line)
	}
	for _, el := range doc.Progress {
		if el.Kind != ProgressClock || el.Name != "Alarm" || el.Current != 1 || el.Max != 6 {
			t.Fatalf("unexpected element %+v", el)
		}
	}
}

func TestParse_ProgressKinds(t *testing.T) {
	p := New()
	doc := p.Parse("[E:Alarm 2/6]\n[Track:Journey 3/10]\n[Timer:Dawn 4]")

	if len(doc.Progress) != 3 {
		t.Fatalf("expected 3 progress elements, got %v", doc.Progress)
	}
	byKind := map[ProgressKind]ProgressElement{}
	for _, el := range doc.Progress {
		byKind[el.Kind] = el
	}
	if el := byKind[ProgressClock]; el.Name != "Alarm" || el.Current != 2 || el.Max != 6 {
		t.Fatalf("clock = %+v", el)
	}
	if el := byKind[ProgressTrack]; el.Name != "Journey" || el.Current != 3 || el.Max != 10 {
		t.Fatalf("track = %+v", el)
	}
	if el := byKind[ProgressTimer]; el.Name != "Dawn" || el.Current != 4 || el.Line != 2 {
		t.Fatalf("timer = %+v", el)
	}
}

func TestParse_ReferenceCountsAsMention(t *testing.T) {
	p := New()
	doc := p.Parse("[N:Jonah|friendly]\n[#N:Jonah]")

	jonah := doc.NPCs["Jonah"]
	if jonah == nil {
		t.Fatal("missing NPC Jonah")
	}
	if !reflect.DeepEqual(jonah.Mentions, []int{0, 1}) {
		t.Fatalf("mentions = %v, want [0 1]", jonah.Mentions)
	}
	if !reflect.DeepEqual(jonah.Tags, []string{"friendly"}) {
		t.Fatalf("reference must not contribute tags, got %v", jonah.Tags)
	}
}

func TestParse_KindsAreSeparate(t *testing.T) {
	p := New()
	doc := p.Parse("[N:Haven]\n[L:Haven|port]\n[PC:Haven]")

	if len(doc.NPCs) != 1 || len(doc.Locations) != 1 || len(doc.PCs) != 1 {
		t.Fatalf("same name must track per kind: npcs=%d locations=%d pcs=%d",
			len(doc.NPCs), len(doc.Locations), len(doc.PCs))
	}
	if !reflect.DeepEqual(doc.Locations["Haven"].Tags, []string{"port"}) {
		t.Fatalf("location tags = %v", doc.Locations["Haven"].Tags)
	}
}

func TestParse_NamesAreTrimmedAndCaseSensitive(t *testing.T) {
	p := New()
	doc := p.Parse("[N: Jonah ]\n[N:Jonah]\n[N:jonah]")

	if len(doc.NPCs) != 2 {
		t.Fatalf("expected Jonah and jonah as distinct keys, got %v", keys(doc.NPCs))
	}
	if !reflect.DeepEqual(doc.NPCs["Jonah"].Mentions, []int{0, 1}) {
		t.Fatalf("trimmed name must merge, mentions = %v", doc.NPCs["Jonah"].Mentions)
	}
}

func TestParse_MalformedNotationSilentlySkipped(t *testing.T) {
	p := New()
	doc := p.Parse(strings.Join([]string{
		"[N:Unterminated",
		"[E:Alarm one/6]",
		"[E:Alarm 1/]",
		"[Timer:Dawn]",
		"[X:Unknown]",
		"[N:Valid]",
	}, "\n"))

	if len(doc.NPCs) != 1 || doc.NPCs["Valid"] == nil {
		t.Fatalf("npcs = %v, want only Valid", keys(doc.NPCs))
	}
	if len(doc.Progress) != 0 {
		t.Fatalf("malformed progress must be skipped, got %v", doc.Progress)
	}
}

func TestParse_Idempotent(t *testing.T) {
	text := "[N:Jonah|friendly]\n[Thread:Find Sister|Open]\n[E:Alarm 1/6]\n[#N:Jonah]"
	a := New().Parse(text)
	b := New().Parse(text)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two parses of the same text differ:\n%+v\n%+v", a, b)
	}
}

func TestParse_CacheShortCircuit(t *testing.T) {
	p := New()
	text := "[N:Jonah]\n[L:Haven]"

	first := p.Parse(text)
	passes := p.scanPasses
	if passes == 0 {
		t.Fatal("expected scan passes on first parse")
	}

	second := p.Parse(text)
	if p.scanPasses != passes {
		t.Fatalf("identical input re-ran scans: %d -> %d", passes, p.scanPasses)
	}
	if first != second {
		t.Fatal("cache hit must return the same snapshot")
	}

	p.Parse(text + "\n[N:Anna]")
	if p.scanPasses == passes {
		t.Fatal("changed input must rescan")
	}
}

func TestParse_LineNumbersCountNewlines(t *testing.T) {
	p := New()
	doc := p.Parse("\n\n[N:Jonah] and [L:Haven]\n[Timer:Dawn 1]")

	if got := doc.NPCs["Jonah"].FirstMention; got != 2 {
		t.Fatalf("Jonah line = %d, want 2", got)
	}
	if got := doc.Locations["Haven"].FirstMention; got != 2 {
		t.Fatalf("Haven line = %d, want 2", got)
	}
	if got := doc.Progress[0].Line; got != 3 {
		t.Fatalf("timer line = %d, want 3", got)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	doc := New().Parse("")
	if len(doc.NPCs)+len(doc.Locations)+len(doc.PCs)+len(doc.Threads)+len(doc.Progress) != 0 {
		t.Fatalf("empty input produced entities: %+v", doc)
	}
}

func keys(m map[string]*NamedEntity) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
