package render

import (
	"testing"

	"github.com/solacehq/solace/internal/domain"
)

func TestFormat_MarkdownSubset(t *testing.T) {
	answer := "## Sleep Hygiene\nKeep a **regular** schedule.\n### Evening\nAvoid *bright* screens.\n\nGood night."
	blocks := Format(answer)

	if len(blocks) != 6 {
		t.Fatalf("blocks = %d, want 6", len(blocks))
	}
	if blocks[0].Type != BlockHeading || blocks[0].Spans[0].Text != "Sleep Hygiene" {
		t.Errorf("block 0 = %+v, want heading 'Sleep Hygiene'", blocks[0])
	}
	if blocks[1].Type != BlockParagraph {
		t.Errorf("block 1 type = %q, want paragraph", blocks[1].Type)
	}
	if blocks[1].Spans[1].Style != SpanBold || blocks[1].Spans[1].Text != "regular" {
		t.Errorf("block 1 bold span = %+v", blocks[1].Spans[1])
	}
	if blocks[2].Type != BlockSubheading || blocks[2].Spans[0].Text != "Evening" {
		t.Errorf("block 2 = %+v, want subheading 'Evening'", blocks[2])
	}
	if blocks[3].Spans[1].Style != SpanItalic || blocks[3].Spans[1].Text != "bright" {
		t.Errorf("block 3 italic span = %+v", blocks[3].Spans[1])
	}
	if blocks[4].Type != BlockBlank {
		t.Errorf("block 4 type = %q, want blank", blocks[4].Type)
	}
}

func TestFormat_UnbalancedMarkersStayLiteral(t *testing.T) {
	blocks := Format("a **dangling marker")
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	if len(blocks[0].Spans) != 1 || blocks[0].Spans[0].Style != SpanPlain {
		t.Fatalf("spans = %+v, want single plain span", blocks[0].Spans)
	}
	if blocks[0].Spans[0].Text != "a **dangling marker" {
		t.Errorf("text = %q", blocks[0].Spans[0].Text)
	}
}

func TestFormat_Empty(t *testing.T) {
	if blocks := Format(""); blocks != nil {
		t.Errorf("Format(\"\") = %v, want nil", blocks)
	}
}

func TestFormat_Deterministic(t *testing.T) {
	answer := "**a** and *b*"
	first := Format(answer)
	second := Format(answer)
	if len(first) != len(second) || len(first[0].Spans) != len(second[0].Spans) {
		t.Error("Format must be deterministic")
	}
}

func TestCompactSources_CapsAtThree(t *testing.T) {
	sources := make([]domain.Source, 5)
	for i := range sources {
		sources[i] = domain.Source{Title: "s"}
	}
	if got := CompactSources(sources); len(got) != 3 {
		t.Errorf("compact sources = %d, want 3", len(got))
	}
	if got := CompactSources(sources[:2]); len(got) != 2 {
		t.Errorf("compact sources = %d, want 2", len(got))
	}
}

func TestSourceLabel_UnknownDegradesToGeneric(t *testing.T) {
	cases := map[string]string{
		domain.SourceRAGLocal:     "Knowledge base",
		domain.SourceWebAugmented: "Web augmented",
		domain.SourceWebSearch:    "Web search",
		"welcome_message":         "Source",
		"":                        "Source",
	}
	for in, want := range cases {
		if got := SourceLabel(in); got != want {
			t.Errorf("SourceLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
