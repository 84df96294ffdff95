package parser

import (
	"regexp"

	"gopkg.in/yaml.v3"
)

// CodeBlock represents a fenced code block.
type CodeBlock struct {
	// Language is the language specifier after the opening fence (e.g., "json", "yaml").
	Language string

	// Content is the text inside the block, excluding fences.
	Content string

	// Raw is the complete block including the fences.
	Raw string
}

// Parser holds the compiled patterns used to pull structured content out of
// model output. A Parser is immutable and safe for concurrent use.
type Parser struct {
	// codeBlockRegex matches any fenced code block.
	codeBlockRegex *regexp.Regexp

	// jsonFenceRegex matches the first ```json fence, non-greedy.
	jsonFenceRegex *regexp.Regexp
}

// NewParser creates a parser with compiled regexes.
func NewParser() *Parser {
	return &Parser{
		codeBlockRegex: regexp.MustCompile("(?s)```(\\w*)[ \\t]*\\n(.*?)```"),
		jsonFenceRegex: regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```"),
	}
}

var defaultParser = NewParser()

// ExtractCode extracts the first code block with the given language.
// If language is empty, returns the first code block found.
func (p *Parser) ExtractCode(text, language string) string {
	for _, block := range p.ExtractAllCode(text) {
		if language == "" || block.Language == language {
			return block.Content
		}
	}
	return ""
}

// ExtractAllCode extracts all fenced code blocks in order of appearance.
func (p *Parser) ExtractAllCode(text string) []CodeBlock {
	matches := p.codeBlockRegex.FindAllStringSubmatch(text, -1)
	blocks := make([]CodeBlock, 0, len(matches))

	for _, match := range matches {
		if len(match) >= 3 {
			blocks = append(blocks, CodeBlock{
				Language: match[1],
				Content:  match[2],
				Raw:      match[0],
			})
		}
	}

	return blocks
}

// ExtractYAML parses every ```yaml or ```yml block that decodes to a mapping.
// Blocks that fail to parse are skipped.
func (p *Parser) ExtractYAML(text string) []map[string]any {
	var docs []map[string]any

	for _, block := range p.ExtractAllCode(text) {
		if block.Language != "yaml" && block.Language != "yml" {
			continue
		}
		var data map[string]any
		if err := yaml.Unmarshal([]byte(block.Content), &data); err == nil && data != nil {
			docs = append(docs, data)
		}
	}

	return docs
}

// HasCodeBlock reports whether text contains any fenced code block.
func (p *Parser) HasCodeBlock(text string) bool {
	return p.codeBlockRegex.MatchString(text)
}
