package recordscout

import "context"

// Message actions and types exchanged between execution contexts.
const (
	ActionExtractContent = "extractContent"
	ActionProcessContent = "processContent"

	TypeReadabilityExtract = "readability-extract"
	TypeProgress           = "progress"
)

// ExtractionRequest asks a page's content script for the page text.
type ExtractionRequest struct {
	Action string `json:"action"`
}

// ExtractionResponse is the content script's answer to an ExtractionRequest.
type ExtractionResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProcessRequest asks the background to run the lookup pipeline on page content.
type ProcessRequest struct {
	Action  string `json:"action"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// ProcessResponse is the final pipeline outcome. Exactly one of Result or
// Message is meaningful, selected by Success. Result holds the raw text of
// the second model response and is never blank on success; see
// ParseReleaseRecord.
type ProcessResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
}

// ReadabilityRequest asks the parsing context to clean raw HTML.
type ReadabilityRequest struct {
	Type string `json:"type"`
	HTML string `json:"html"`
}

// ReadabilityResponse carries the cleaned text, or nil when nothing usable
// was extracted.
type ReadabilityResponse struct {
	Content *string `json:"content"`
}

// ProgressEvent announces the pipeline stage about to run.
type ProgressEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewProgressEvent returns a progress event carrying message.
func NewProgressEvent(message string) ProgressEvent {
	return ProgressEvent{Type: TypeProgress, Message: message}
}

// Processor runs the lookup pipeline.
type Processor interface {
	// Process always returns a response, never nil, whatever happens
	// during the run.
	Process(ctx context.Context, req *ProcessRequest) *ProcessResponse
}

// ProgressBroadcaster notifies every listening UI surface of pipeline
// progress. Delivery is best-effort and never blocks the caller.
type ProgressBroadcaster interface {
	Broadcast(event ProgressEvent)
}
