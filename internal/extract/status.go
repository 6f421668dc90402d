package extract

import "strings"

// Status classifies the outcome of one outbound extraction stage call, so
// the orchestrator's continue-on-failure policy is a data-driven branch
// rather than an exception handler.
type Status int

const (
	// StatusOK means the stage produced a well-formed result (possibly empty).
	StatusOK Status = iota
	// StatusParseFailure means the model response was not valid JSON of the
	// expected shape. The stage result is empty; the pipeline continues.
	StatusParseFailure
	// StatusTransportFailure means the outbound call itself failed (timeout,
	// network, exhausted retries). Treated like a parse failure downstream.
	StatusTransportFailure
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusParseFailure:
		return "parse_failure"
	case StatusTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// stripCodeFence cleans a model response that wraps JSON in a markdown
// code block.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
