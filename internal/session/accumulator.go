package session

import (
	"errors"
	"fmt"
	"strings"

	"eagle/internal/client"
	"eagle/internal/workspace"
)

// EmptyResponsePlaceholder is shown when a stream completes without a
// single text event, so the reply bubble is never blank.
const EmptyResponsePlaceholder = "The agent returned no response. Please try rephrasing your request."

var (
	// ErrEmptyMessage is returned when the outgoing message is blank.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoSession is returned when no session is active.
	ErrNoSession = errors.New("no active session")
)

// Phase is the accumulator's lifecycle state.
type Phase int

const (
	PhaseStreaming Phase = iota
	PhaseCompleted
	PhaseFailed
	PhaseAborted
)

// Accumulator builds one agent reply from the event stream of a single
// exchange. It assumes in-order, single-consumer delivery from the
// transport and forwards reasoning/tool/handoff telemetry to the
// workspace. Exactly one accumulator may be live per outstanding
// exchange; preventing overlapping sends is the caller's job.
type Accumulator struct {
	session *Session
	ws      *workspace.Workspace

	reply    *ChatMessage
	agent    string
	textSeen bool
	phase    Phase
}

// Begin validates and records the outgoing user message, creates the
// placeholder agent reply tagged with the active agent label, and returns
// the accumulator for the exchange. The user message is recorded locally
// and immediately; no network round-trip is involved in the echo.
func Begin(sess *Session, ws *workspace.Workspace, input, agentLabel string) (*Accumulator, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyMessage
	}

	sess.append(RoleUser, "", input)

	reply := sess.append(RoleAgent, agentLabel, "")
	reply.Streaming = true

	return &Accumulator{
		session: sess,
		ws:      ws,
		reply:   reply,
		agent:   agentLabel,
	}, nil
}

// Phase returns the current lifecycle state.
func (a *Accumulator) Phase() Phase {
	return a.phase
}

// Reply returns the agent message this exchange is building.
func (a *Accumulator) Reply() *ChatMessage {
	return a.reply
}

// ActiveAgent returns the agent label currently attributed to the reply.
func (a *Accumulator) ActiveAgent() string {
	return a.agent
}

// Text appends streamed content to the placeholder in arrival order.
func (a *Accumulator) Text(content string) {
	if a.phase != PhaseStreaming {
		return
	}
	a.reply.Content += content
	a.textSeen = true
}

// Reasoning records reasoning text on the reply and forwards it to the
// workspace log.
func (a *Accumulator) Reasoning(content string) {
	if a.phase != PhaseStreaming {
		return
	}
	a.reply.Reasoning += content
	a.ws.Log.Append(workspace.LogEntry{
		Agent:   a.agent,
		Kind:    workspace.LogReasoning,
		Content: content,
	})
}

// ToolUse forwards a tool invocation to the workspace log.
func (a *Accumulator) ToolUse(tool string, input map[string]any) {
	if a.phase != PhaseStreaming {
		return
	}
	a.ws.Log.Append(workspace.LogEntry{
		Agent:   a.agent,
		Kind:    workspace.LogToolUse,
		Content: fmt.Sprintf("%s %v", tool, input),
	})
}

// ToolResult forwards a tool result to the workspace log.
func (a *Accumulator) ToolResult(tool, output string) {
	if a.phase != PhaseStreaming {
		return
	}
	a.ws.Log.Append(workspace.LogEntry{
		Agent:   a.agent,
		Kind:    workspace.LogToolResult,
		Content: fmt.Sprintf("%s → %s", tool, output),
	})
}

// Handoff switches the active agent label for text appended from here on.
// Text already accumulated keeps whatever label the reply displays; it is
// not retroactively relabeled.
func (a *Accumulator) Handoff(fromAgent, toAgent, reason string) {
	if a.phase != PhaseStreaming {
		return
	}
	a.agent = toAgent
	a.reply.AgentLabel = toAgent
	a.ws.Log.Append(workspace.LogEntry{
		Agent:   fromAgent,
		Kind:    workspace.LogHandoff,
		Content: fmt.Sprintf("%s → %s: %s", fromAgent, toAgent, reason),
	})
}

// Fail records a terminal failure. With no accumulated text the
// placeholder becomes the system notice itself; partial text stays intact
// and a separate notice is appended instead.
func (a *Accumulator) Fail(message string) {
	if a.phase != PhaseStreaming {
		return
	}
	a.phase = PhaseFailed

	if !a.textSeen {
		a.reply.Role = RoleSystem
		a.reply.Content = message
	} else {
		a.session.append(RoleSystem, "", message)
	}
	a.reply.Streaming = false

	a.ws.Log.Append(workspace.LogEntry{
		Agent:   a.agent,
		Kind:    workspace.LogError,
		Content: message,
	})
}

// Complete finalizes the reply. A stream that produced zero text events
// yields the defined placeholder rather than an empty bubble.
func (a *Accumulator) Complete(usage map[string]any) {
	if a.phase != PhaseStreaming {
		return
	}
	a.phase = PhaseCompleted

	if !a.textSeen {
		a.reply.Content = EmptyResponsePlaceholder
	}
	a.reply.Streaming = false
}

// Abort ends the exchange after a user cancellation. Whatever text was
// already streamed stays; no error notice is produced.
func (a *Accumulator) Abort() {
	if a.phase != PhaseStreaming {
		return
	}
	a.phase = PhaseAborted
	a.reply.Streaming = false
}

// Handlers adapts the accumulator to the transport's handler slots, for
// headless consumers that drive it directly from the stream goroutine.
// The TUI instead routes events through its update loop.
func (a *Accumulator) Handlers() client.Handlers {
	return client.Handlers{
		OnText:       a.Text,
		OnReasoning:  a.Reasoning,
		OnToolUse:    a.ToolUse,
		OnToolResult: a.ToolResult,
		OnHandoff:    a.Handoff,
		OnError:      a.Fail,
		OnComplete:   a.Complete,
	}
}
