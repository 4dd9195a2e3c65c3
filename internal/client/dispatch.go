package client

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Event type discriminants carried in the "type" field of each payload.
const (
	EventText       = "text"
	EventReasoning  = "reasoning"
	EventToolUse    = "tool_use"
	EventToolResult = "tool_result"
	EventHandoff    = "handoff"
	EventError      = "error"
	EventComplete   = "complete"
)

// Handlers receives dispatched protocol events. Each field is optional:
// a nil handler means that event kind is silently dropped for this
// consumer. Handlers are invoked one at a time, in arrival order, from a
// single goroutine per stream.
type Handlers struct {
	OnText       func(content string)
	OnReasoning  func(content string)
	OnToolUse    func(tool string, input map[string]any)
	OnToolResult func(tool, output string)
	OnHandoff    func(fromAgent, toAgent, reason string)
	OnError      func(message string)
	OnComplete   func(usage map[string]any)
}

// dispatch parses one protocol payload and routes it to at most one
// handler. Unrecognized "type" values are ignored so newer servers can add
// event kinds without breaking older clients. A parse failure is returned
// to the caller, which drops the line and keeps the stream alive.
func (h Handlers) dispatch(payload []byte) error {
	if !gjson.ValidBytes(payload) {
		return fmt.Errorf("invalid JSON payload")
	}

	switch gjson.GetBytes(payload, "type").String() {
	case EventText:
		var evt TextEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("decode text event: %w", err)
		}
		if h.OnText != nil {
			h.OnText(evt.Content)
		}

	case EventReasoning:
		var evt ReasoningEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("decode reasoning event: %w", err)
		}
		if h.OnReasoning != nil {
			h.OnReasoning(evt.Content)
		}

	case EventToolUse:
		var evt ToolUseEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("decode tool_use event: %w", err)
		}
		if h.OnToolUse != nil {
			h.OnToolUse(evt.Tool, evt.Input)
		}

	case EventToolResult:
		var evt ToolResultEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("decode tool_result event: %w", err)
		}
		if h.OnToolResult != nil {
			h.OnToolResult(evt.Tool, evt.Output)
		}

	case EventHandoff:
		var evt HandoffEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("decode handoff event: %w", err)
		}
		if h.OnHandoff != nil {
			h.OnHandoff(evt.FromAgent, evt.ToAgent, evt.Reason)
		}

	case EventError:
		var evt ErrorEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("decode error event: %w", err)
		}
		if h.OnError != nil {
			h.OnError(evt.Message)
		}

	case EventComplete:
		var evt CompleteEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			return fmt.Errorf("decode complete event: %w", err)
		}
		if h.OnComplete != nil {
			h.OnComplete(evt.Usage)
		}
	}

	return nil
}

// emitError funnels transport-level failures through the same handler used
// for server-declared error events, so callers implement one failure path.
func (h Handlers) emitError(message string) {
	if h.OnError != nil {
		h.OnError(message)
	}
}
