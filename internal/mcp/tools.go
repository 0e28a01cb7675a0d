package mcp

import (
	"context"
	"fmt"
	"sort"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ChristopherHardiman/lonelog/internal/parser"
	"github.com/ChristopherHardiman/lonelog/internal/store"
	"github.com/ChristopherHardiman/lonelog/internal/suggest"
)

type ParseJournalInput struct {
	Text string `json:"text" jsonschema:"journal text to parse"`
}

type SuggestTagsInput struct {
	Text   string `json:"text" jsonschema:"full journal text the completion draws names from"`
	Line   string `json:"line" jsonschema:"the line being edited"`
	Cursor int    `json:"cursor" jsonschema:"byte offset of the cursor within the line"`
}

type SearchJournalInput struct {
	Query   string `json:"query" jsonschema:"search terms"`
	Journal string `json:"journal,omitempty" jsonschema:"restrict to a specific journal"`
	Kind    string `json:"kind,omitempty" jsonschema:"restrict to npc, location, or pc"`
}

type GetEntityInput struct {
	Name string `json:"name" jsonschema:"entity name"`
	Kind string `json:"kind,omitempty" jsonschema:"optional kind filter"`
}

type ListEntitiesInput struct {
	Kind    string `json:"kind,omitempty" jsonschema:"npc, location, or pc"`
	Journal string `json:"journal,omitempty" jsonschema:"journal filter"`
	Tag     string `json:"tag,omitempty" jsonschema:"tag filter"`
}

type ListThreadsInput struct {
	Journal string `json:"journal,omitempty" jsonschema:"journal filter"`
	State   string `json:"state,omitempty" jsonschema:"state filter, e.g. Open or Closed"`
}

type ListProgressInput struct {
	Journal string `json:"journal,omitempty" jsonschema:"journal filter"`
	Kind    string `json:"kind,omitempty" jsonschema:"clock, track, or timer"`
}

type ParsedEntityOutput struct {
	Name         string   `json:"name"`
	Tags         []string `json:"tags"`
	Mentions     []int    `json:"mentions"`
	FirstMention int      `json:"first_mention"`
	LastMention  int      `json:"last_mention"`
}

type ParsedThreadOutput struct {
	Name         string `json:"name"`
	State        string `json:"state"`
	Mentions     []int  `json:"mentions"`
	FirstMention int    `json:"first_mention"`
	LastMention  int    `json:"last_mention"`
}

type ParsedProgressOutput struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Current int    `json:"current"`
	Max     int    `json:"max,omitempty"`
	Line    int    `json:"line"`
}

type ParseJournalOutput struct {
	NPCs      []ParsedEntityOutput   `json:"npcs"`
	Locations []ParsedEntityOutput   `json:"locations"`
	PCs       []ParsedEntityOutput   `json:"pcs"`
	Threads   []ParsedThreadOutput   `json:"threads"`
	Progress  []ParsedProgressOutput `json:"progress"`
}

type SuggestionOutput struct {
	Name       string   `json:"name"`
	Tags       []string `json:"tags,omitempty"`
	InsertText string   `json:"insert_text"`
}

type SuggestTagsOutput struct {
	Kind        string             `json:"kind,omitempty"`
	Reference   bool               `json:"reference,omitempty"`
	Query       string             `json:"query,omitempty"`
	Suggestions []SuggestionOutput `json:"suggestions"`
}

type EntityOutput struct {
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Journal      string   `json:"journal"`
	SourceFile   string   `json:"source_file"`
	Tags         []string `json:"tags"`
	Mentions     []int    `json:"mentions"`
	FirstMention int      `json:"first_mention"`
	LastMention  int      `json:"last_mention"`
}

type ThreadOutput struct {
	Name         string `json:"name"`
	State        string `json:"state"`
	Journal      string `json:"journal"`
	SourceFile   string `json:"source_file"`
	FirstMention int    `json:"first_mention"`
	LastMention  int    `json:"last_mention"`
}

type ProgressOutput struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Journal    string `json:"journal"`
	SourceFile string `json:"source_file"`
	Current    int    `json:"current"`
	Max        int    `json:"max,omitempty"`
	Line       int    `json:"line"`
}

type SearchResultOutput struct {
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	Journal    string   `json:"journal"`
	SourceFile string   `json:"source_file"`
	Tags       []string `json:"tags"`
	Score      float64  `json:"score"`
}

type SearchJournalOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type GetEntityOutput struct {
	Occurrences []EntityOutput `json:"occurrences"`
}

type ListEntitiesOutput struct {
	Entities []EntityOutput `json:"entities"`
}

type ListThreadsOutput struct {
	Threads []ThreadOutput `json:"threads"`
}

type ListProgressOutput struct {
	Progress []ProgressOutput `json:"progress"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "parse_journal",
		Description: "Extract NPCs, locations, PCs, threads, and progress trackers from journal text",
	}, s.handleParseJournal)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "suggest_tags",
		Description: "Offer completions for a partially typed notation tag",
	}, s.handleSuggestTags)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_journal",
		Description: "Search indexed entities by name and tags",
	}, s.handleSearchJournal)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity",
		Description: "Retrieve an indexed entity's per-file records",
	}, s.handleGetEntity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_entities",
		Description: "List indexed entities with optional filters",
	}, s.handleListEntities)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_threads",
		Description: "List indexed narrative threads",
	}, s.handleListThreads)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_progress",
		Description: "List indexed clocks, tracks, and timers",
	}, s.handleListProgress)
}

func (s *Server) handleParseJournal(ctx context.Context, req *sdk.CallToolRequest, input ParseJournalInput) (*sdk.CallToolResult, ParseJournalOutput, error) {
	doc := parser.New().Parse(input.Text)
	return nil, parseOutputFromDocument(doc), nil
}

func (s *Server) handleSuggestTags(ctx context.Context, req *sdk.CallToolRequest, input SuggestTagsInput) (*sdk.CallToolResult, SuggestTagsOutput, error) {
	trig, ok := suggest.Trigger(input.Line, input.Cursor)
	if !ok {
		return nil, SuggestTagsOutput{Suggestions: []SuggestionOutput{}}, nil
	}

	doc := parser.New().Parse(input.Text)
	candidates := suggest.Candidates(doc, trig.Kind, trig.Query)

	output := SuggestTagsOutput{
		Kind:        trig.Kind.String(),
		Reference:   trig.Reference,
		Query:       trig.Query,
		Suggestions: make([]SuggestionOutput, 0, len(candidates)),
	}
	for _, c := range candidates {
		text, _ := suggest.Compose(c, trig.Reference)
		output.Suggestions = append(output.Suggestions, SuggestionOutput{
			Name:       c.Name,
			Tags:       c.Tags,
			InsertText: text,
		})
	}
	return nil, output, nil
}

func (s *Server) handleSearchJournal(ctx context.Context, req *sdk.CallToolRequest, input SearchJournalInput) (*sdk.CallToolResult, SearchJournalOutput, error) {
	if input.Query == "" {
		return nil, SearchJournalOutput{}, fmt.Errorf("query is required")
	}
	results, err := s.db.Search(ctx, input.Query, input.Journal, input.Kind)
	if err != nil {
		return nil, SearchJournalOutput{}, err
	}

	output := SearchJournalOutput{Results: make([]SearchResultOutput, 0, len(results))}
	for _, r := range results {
		output.Results = append(output.Results, SearchResultOutput{
			Kind:       r.Kind,
			Name:       r.Name,
			Journal:    r.Journal,
			SourceFile: r.SourceFile,
			Tags:       emptyIfNil(r.Tags),
			Score:      r.Score,
		})
	}
	return nil, output, nil
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input GetEntityInput) (*sdk.CallToolResult, GetEntityOutput, error) {
	if input.Name == "" {
		return nil, GetEntityOutput{}, fmt.Errorf("name is required")
	}
	occurrences, err := s.db.GetEntity(ctx, input.Name, input.Kind)
	if err != nil {
		return nil, GetEntityOutput{}, err
	}
	if len(occurrences) == 0 {
		return nil, GetEntityOutput{}, fmt.Errorf("entity not found")
	}

	output := GetEntityOutput{Occurrences: make([]EntityOutput, 0, len(occurrences))}
	for _, e := range occurrences {
		output.Occurrences = append(output.Occurrences, entityOutputFromStore(e))
	}
	return nil, output, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, ListEntitiesOutput, error) {
	entities, err := s.db.ListEntities(ctx, input.Kind, input.Journal, input.Tag)
	if err != nil {
		return nil, ListEntitiesOutput{}, err
	}

	output := ListEntitiesOutput{Entities: make([]EntityOutput, 0, len(entities))}
	for _, e := range entities {
		output.Entities = append(output.Entities, entityOutputFromStore(e))
	}
	return nil, output, nil
}

func (s *Server) handleListThreads(ctx context.Context, req *sdk.CallToolRequest, input ListThreadsInput) (*sdk.CallToolResult, ListThreadsOutput, error) {
	threads, err := s.db.ListThreads(ctx, input.Journal, input.State)
	if err != nil {
		return nil, ListThreadsOutput{}, err
	}

	output := ListThreadsOutput{Threads: make([]ThreadOutput, 0, len(threads))}
	for _, th := range threads {
		output.Threads = append(output.Threads, ThreadOutput{
			Name:         th.Name,
			State:        th.State,
			Journal:      th.Journal,
			SourceFile:   th.SourceFile,
			FirstMention: th.FirstMention,
			LastMention:  th.LastMention,
		})
	}
	return nil, output, nil
}

func (s *Server) handleListProgress(ctx context.Context, req *sdk.CallToolRequest, input ListProgressInput) (*sdk.CallToolResult, ListProgressOutput, error) {
	elements, err := s.db.ListProgress(ctx, input.Journal, input.Kind)
	if err != nil {
		return nil, ListProgressOutput{}, err
	}

	output := ListProgressOutput{Progress: make([]ProgressOutput, 0, len(elements))}
	for _, pr := range elements {
		output.Progress = append(output.Progress, ProgressOutput{
			Kind:       pr.Kind,
			Name:       pr.Name,
			Journal:    pr.Journal,
			SourceFile: pr.SourceFile,
			Current:    pr.Current,
			Max:        pr.Max,
			Line:       pr.Line,
		})
	}
	return nil, output, nil
}

func parseOutputFromDocument(doc *parser.ParsedDocument) ParseJournalOutput {
	output := ParseJournalOutput{
		NPCs:      parsedEntities(doc.NPCs),
		Locations: parsedEntities(doc.Locations),
		PCs:       parsedEntities(doc.PCs),
		Threads:   make([]ParsedThreadOutput, 0, len(doc.Threads)),
		Progress:  make([]ParsedProgressOutput, 0, len(doc.Progress)),
	}

	for _, th := range doc.Threads {
		output.Threads = append(output.Threads, ParsedThreadOutput{
			Name:         th.Name,
			State:        th.State,
			Mentions:     th.Mentions,
			FirstMention: th.FirstMention,
			LastMention:  th.LastMention,
		})
	}
	sort.Slice(output.Threads, func(i, j int) bool {
		return output.Threads[i].Name < output.Threads[j].Name
	})

	for _, pr := range doc.Progress {
		output.Progress = append(output.Progress, ParsedProgressOutput{
			Kind:    pr.Kind.String(),
			Name:    pr.Name,
			Current: pr.Current,
			Max:     pr.Max,
			Line:    pr.Line,
		})
	}

	return output
}

func parsedEntities(entities map[string]*parser.NamedEntity) []ParsedEntityOutput {
	out := make([]ParsedEntityOutput, 0, len(entities))
	for _, e := range entities {
		out = append(out, ParsedEntityOutput{
			Name:         e.Name,
			Tags:         emptyIfNil(e.Tags),
			Mentions:     e.Mentions,
			FirstMention: e.FirstMention,
			LastMention:  e.LastMention,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func entityOutputFromStore(e store.Entity) EntityOutput {
	return EntityOutput{
		Kind:         e.Kind,
		Name:         e.Name,
		Journal:      e.Journal,
		SourceFile:   e.SourceFile,
		Tags:         emptyIfNil(e.Tags),
		Mentions:     e.Mentions,
		FirstMention: e.FirstMention,
		LastMention:  e.LastMention,
	}
}

func emptyIfNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
