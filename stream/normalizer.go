package stream

import "strings"

// Normalizer cleans raw transport chunks before they reach the scanner.
// The zero value passes chunks through unchanged.
type Normalizer struct {
	// Prefix is stripped once from the start of a chunk, e.g. "data: ".
	Prefix string

	// EndMarker signals end of stream, e.g. "[DONE]". Every occurrence is
	// removed. A chunk that is blank once the marker is gone ends the stream.
	EndMarker string
}

// Normalize returns the text to scan, or end=true when the chunk is an
// end-of-stream signal and nothing should be scanned.
func (n Normalizer) Normalize(chunk string) (text string, end bool) {
	if n.EndMarker != "" && strings.Contains(chunk, n.EndMarker) {
		chunk = strings.ReplaceAll(chunk, n.EndMarker, "")
		if strings.TrimSpace(chunk) == "" {
			return "", true
		}
	}

	if n.Prefix != "" {
		chunk = strings.TrimPrefix(chunk, n.Prefix)
	}

	return chunk, false
}
