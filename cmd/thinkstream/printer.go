package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/randalmurphal/thinkstream/parser"
	"github.com/randalmurphal/thinkstream/stream"
)

// record is one callback rendered as a JSON line.
type record struct {
	Event     string `json:"event"`
	Language  string `json:"language,omitempty"`
	Text      string `json:"text,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
	Output    string `json:"output,omitempty"`
	Data      any    `json:"data,omitempty"`
	Source    string `json:"source,omitempty"`
	Error     string `json:"error,omitempty"`
}

// printer renders callbacks. Answer text goes to out; reasoning and
// diagnostics go to info. In JSON mode every callback is a line on out.
type printer struct {
	out    io.Writer
	info   io.Writer
	asJSON bool
	enc    *json.Encoder
	faults int

	// code selects fenced blocks to print after the answer: a language
	// name for the first matching block, "all" for every block.
	code   string
	// yaml prints YAML blocks from the answer as JSON.
	yaml   bool
	parser *parser.Parser
}

func newPrinter(out, info io.Writer, asJSON bool) *printer {
	return &printer{
		out:    out,
		info:   info,
		asJSON: asJSON,
		enc:    json.NewEncoder(out),
		parser: parser.NewParser(),
	}
}

func (pr *printer) emit(r record) {
	_ = pr.enc.Encode(r)
}

func (pr *printer) callbacks() stream.Callbacks {
	if pr.asJSON {
		return pr.jsonCallbacks()
	}
	return pr.textCallbacks()
}

func (pr *printer) jsonCallbacks() stream.Callbacks {
	return stream.Callbacks{
		OnStart:          func() { pr.emit(record{Event: "start"}) },
		OnReasoningStart: func() { pr.emit(record{Event: "reasoning_start"}) },
		OnReasoningChunk: func(text string) { pr.emit(record{Event: "reasoning_chunk", Text: text}) },
		OnReasoningFinish: func(reasoning string) {
			pr.emit(record{Event: "reasoning_finish", Reasoning: reasoning})
		},
		OnOutputStart: func() { pr.emit(record{Event: "output_start"}) },
		OnOutputChunk: func(text string) { pr.emit(record{Event: "output_chunk", Text: text}) },
		OnOutputFinish: func(output string, data parser.Structured) {
			pr.emit(record{Event: "output_finish", Output: output, Data: data.Data, Source: sourceName(data)})
		},
		OnFinish: func(reasoning, output string, data parser.Structured) {
			pr.emit(record{Event: "finish", Reasoning: reasoning, Output: output, Data: data.Data, Source: sourceName(data)})
			pr.printExtracted(output)
		},
		OnError: func(err error) {
			pr.faults++
			pr.emit(record{Event: "error", Error: err.Error()})
		},
	}
}

func (pr *printer) textCallbacks() stream.Callbacks {
	var lastOutput string
	return stream.Callbacks{
		OnReasoningStart:  func() { fmt.Fprint(pr.info, "[reasoning] ") },
		OnReasoningChunk:  func(text string) { fmt.Fprint(pr.info, text) },
		OnReasoningFinish: func(string) { fmt.Fprintln(pr.info) },
		OnOutputChunk: func(text string) {
			lastOutput = text
			fmt.Fprint(pr.out, text)
		},
		OnOutputFinish: func(string, parser.Structured) {
			if lastOutput != "" && !strings.HasSuffix(lastOutput, "\n") {
				fmt.Fprintln(pr.out)
			}
		},
		OnFinish: func(_, output string, data parser.Structured) {
			if data.Present() {
				pr.printJSON(fmt.Sprintf("structured: %s", data.Source), data.Data)
			}
			pr.printExtracted(output)
		},
		OnError: func(err error) {
			pr.faults++
			fmt.Fprintf(pr.info, "[error] %v\n", err)
		},
	}
}

// printJSON writes v as indented JSON to out under a label on info.
func (pr *printer) printJSON(label string, v any) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(pr.info, "[%s]\n", label)
	fmt.Fprintln(pr.out, string(encoded))
}

// printExtracted prints the code and YAML blocks requested by --code and --yaml.
func (pr *printer) printExtracted(output string) {
	if pr.code == "" && !pr.yaml {
		return
	}
	if !pr.parser.HasCodeBlock(output) {
		if !pr.asJSON {
			fmt.Fprintln(pr.info, "[code] no fenced blocks in answer")
		}
		return
	}

	if pr.code != "" {
		for _, block := range pr.codeBlocks(output) {
			if pr.asJSON {
				pr.emit(record{Event: "code", Language: block.Language, Text: block.Content})
				continue
			}
			fmt.Fprintf(pr.info, "[code: %s]\n", block.Language)
			fmt.Fprint(pr.out, block.Content)
		}
	}

	if pr.yaml {
		for _, doc := range pr.parser.ExtractYAML(output) {
			if pr.asJSON {
				pr.emit(record{Event: "yaml", Data: doc})
				continue
			}
			pr.printJSON("yaml", doc)
		}
	}
}

func (pr *printer) codeBlocks(output string) []parser.CodeBlock {
	if pr.code == "all" {
		return pr.parser.ExtractAllCode(output)
	}
	content := pr.parser.ExtractCode(output, pr.code)
	if content == "" {
		return nil
	}
	return []parser.CodeBlock{{Language: pr.code, Content: content}}
}

func sourceName(data parser.Structured) string {
	if !data.Present() {
		return ""
	}
	return data.Source.String()
}
