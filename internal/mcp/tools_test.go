package mcp

import (
	"context"
	"testing"
)

const sampleJournal = "[N:Jonah|friendly]\n[N:Joseph]\n[L:Haven|port]\n[Thread:Find Sister|Open]\n[E:Alarm 1/6]"

func TestHandleParseJournal(t *testing.T) {
	s := NewServer(nil, "test")

	_, output, err := s.handleParseJournal(context.Background(), nil, ParseJournalInput{Text: sampleJournal})
	if err != nil {
		t.Fatalf("parse_journal: %v", err)
	}

	if len(output.NPCs) != 2 || output.NPCs[0].Name != "Jonah" || output.NPCs[1].Name != "Joseph" {
		t.Fatalf("npcs = %+v", output.NPCs)
	}
	if len(output.Locations) != 1 || output.Locations[0].Tags[0] != "port" {
		t.Fatalf("locations = %+v", output.Locations)
	}
	if len(output.Threads) != 1 || output.Threads[0].State != "Open" {
		t.Fatalf("threads = %+v", output.Threads)
	}
	if len(output.Progress) != 1 || output.Progress[0].Kind != "clock" {
		t.Fatalf("progress = %+v", output.Progress)
	}
}

func TestHandleSuggestTags(t *testing.T) {
	s := NewServer(nil, "test")

	_, output, err := s.handleSuggestTags(context.Background(), nil, SuggestTagsInput{
		Text:   sampleJournal,
		Line:   "met [N:Jo",
		Cursor: 9,
	})
	if err != nil {
		t.Fatalf("suggest_tags: %v", err)
	}

	if output.Kind != "npc" || output.Query != "Jo" {
		t.Fatalf("trigger = %+v", output)
	}
	if len(output.Suggestions) != 2 {
		t.Fatalf("suggestions = %+v", output.Suggestions)
	}
	if output.Suggestions[0].InsertText != "Jonah|friendly]" {
		t.Fatalf("insert text = %q", output.Suggestions[0].InsertText)
	}
}

func TestHandleSuggestTags_NoTrigger(t *testing.T) {
	s := NewServer(nil, "test")

	_, output, err := s.handleSuggestTags(context.Background(), nil, SuggestTagsInput{
		Text:   sampleJournal,
		Line:   "no tag here",
		Cursor: 5,
	})
	if err != nil {
		t.Fatalf("suggest_tags: %v", err)
	}
	if len(output.Suggestions) != 0 || output.Kind != "" {
		t.Fatalf("expected empty result, got %+v", output)
	}
}

func TestHandleSuggestTags_ReferenceContext(t *testing.T) {
	s := NewServer(nil, "test")

	_, output, err := s.handleSuggestTags(context.Background(), nil, SuggestTagsInput{
		Text:   sampleJournal,
		Line:   "[#N:Jonah",
		Cursor: 9,
	})
	if err != nil {
		t.Fatalf("suggest_tags: %v", err)
	}
	if !output.Reference {
		t.Fatal("expected reference context")
	}
	if output.Suggestions[0].InsertText != "Jonah]" {
		t.Fatalf("reference insert text = %q", output.Suggestions[0].InsertText)
	}
}
