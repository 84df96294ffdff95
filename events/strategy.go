package events

// Strategy pulls text out of one decoded event record. It returns "" when
// the record does not have the shape it understands.
type Strategy func(record map[string]any) string

// MessageContent handles chat-style records: {"message":{"content":"..."}}.
func MessageContent(record map[string]any) string {
	msg, ok := record["message"].(map[string]any)
	if !ok {
		return ""
	}
	return stringField(msg, "content")
}

// ChoicesDeltaContent handles OpenAI-style chunks:
// {"choices":[{"delta":{"content":"..."}}]}. Only the first choice is read.
func ChoicesDeltaContent(record map[string]any) string {
	choices, ok := record["choices"].([]any)
	if !ok || len(choices) == 0 {
		return ""
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return ""
	}
	delta, ok := choice["delta"].(map[string]any)
	if !ok {
		return ""
	}
	return stringField(delta, "content")
}

// Response handles generate-style records: {"response":"..."}.
func Response(record map[string]any) string {
	return stringField(record, "response")
}

// DeltaText handles Anthropic content_block_delta records:
// {"delta":{"type":"text_delta","text":"..."}}.
func DeltaText(record map[string]any) string {
	delta, ok := record["delta"].(map[string]any)
	if !ok {
		return ""
	}
	return stringField(delta, "text")
}

// DefaultStrategies returns the built-in strategies in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		MessageContent,
		ChoicesDeltaContent,
		Response,
		DeltaText,
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
