// Package render turns oracle answer payloads into structured display
// blocks for the client.
package render

import (
	"strings"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/domain"
)

type BlockType string

const (
	BlockHeading    BlockType = "heading"
	BlockSubheading BlockType = "subheading"
	BlockParagraph  BlockType = "paragraph"
	BlockBlank      BlockType = "blank"
)

type SpanStyle string

const (
	SpanPlain  SpanStyle = "plain"
	SpanBold   SpanStyle = "bold"
	SpanItalic SpanStyle = "italic"
)

type Span struct {
	Style SpanStyle `json:"style"`
	Text  string    `json:"text"`
}

type Block struct {
	Type  BlockType `json:"type"`
	Spans []Span    `json:"spans,omitempty"`
}

// Format splits the answer on newlines and recognizes the small markdown
// subset the oracle emits: **bold**, *italic*, "## " and "### " headers.
// Pure and deterministic; no external state.
func Format(answer string) []Block {
	if answer == "" {
		return nil
	}
	lines := strings.Split(answer, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		switch {
		case line == "":
			blocks = append(blocks, Block{Type: BlockBlank})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{
				Type:  BlockSubheading,
				Spans: spans(strings.TrimPrefix(line, "### ")),
			})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{
				Type:  BlockHeading,
				Spans: spans(strings.TrimPrefix(line, "## ")),
			})
		default:
			blocks = append(blocks, Block{Type: BlockParagraph, Spans: spans(line)})
		}
	}
	return blocks
}

// spans tokenizes one line into styled runs. Unbalanced markers are left
// as literal text.
func spans(line string) []Span {
	var out []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			out = append(out, Span{Style: SpanPlain, Text: plain.String()})
			plain.Reset()
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); {
		if i+1 < len(runes) && runes[i] == '*' && runes[i+1] == '*' {
			if end := indexDouble(runes, i+2); end >= 0 {
				flush()
				out = append(out, Span{Style: SpanBold, Text: string(runes[i+2 : end])})
				i = end + 2
				continue
			}
		}
		if runes[i] == '*' {
			if end := indexSingle(runes, i+1); end >= 0 {
				flush()
				out = append(out, Span{Style: SpanItalic, Text: string(runes[i+1 : end])})
				i = end + 1
				continue
			}
		}
		plain.WriteRune(runes[i])
		i++
	}
	flush()
	return out
}

func indexDouble(runes []rune, start int) int {
	for i := start; i+1 < len(runes); i++ {
		if runes[i] == '*' && runes[i+1] == '*' {
			return i
		}
	}
	return -1
}

func indexSingle(runes []rune, start int) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == '*' {
			return i
		}
	}
	return -1
}

// CompactSources caps the source list for compact rendering contexts.
// Expanded contexts render all of them.
func CompactSources(sources []domain.Source) []domain.Source {
	if len(sources) <= config.MaxCompactSources {
		return sources
	}
	return sources[:config.MaxCompactSources]
}

// SourceLabel differentiates source provenance for display. Unknown types
// degrade to a generic label rather than failing.
func SourceLabel(sourceType string) string {
	switch sourceType {
	case domain.SourceRAGLocal:
		return "Knowledge base"
	case domain.SourceWebAugmented:
		return "Web augmented"
	case domain.SourceWebSearch:
		return "Web search"
	case domain.SourceCrisis:
		return "Crisis resource"
	default:
		return "Source"
	}
}
