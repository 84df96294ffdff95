// Package parser extracts structured content from finished LLM output.
//
// Core types:
//   - Structured: the result of probing output for JSON data, present or absent
//   - CodeBlock: a fenced code block with language and content
//   - Parser: compiled fence patterns shared by the extraction helpers
//   - Schema: an optional JSON Schema that parsed data must satisfy
//
// Example usage:
//
//	result := parser.ParseStructured(output)
//	if data, ok := result.Value(); ok {
//	    fmt.Printf("parsed %v from %s\n", data, result.Source)
//	}
//
// Parse failures are never errors. A response that holds no JSON simply
// yields an absent result.
package parser
