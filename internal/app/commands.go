package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eagle/internal/client"
	"eagle/internal/messages"
)

const restTimeout = 15 * time.Second

// createSessionCmd registers a new session with the backend.
func (m Model) createSessionCmd() tea.Cmd {
	c, tc := m.client, *m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()

		info, err := c.CreateSession(ctx, tc.TenantID, tc.UserID)
		if err != nil {
			return messages.ErrMsg{Err: err}
		}
		return messages.SessionCreatedMsg{Info: info}
	}
}

// fetchChecklistCmd refreshes the checklist projection from the status
// endpoint. Runs after session creation and after every complete event.
func (m Model) fetchChecklistCmd() tea.Cmd {
	if m.sess == nil {
		return nil
	}
	c, tc := m.client, m.sess.TenantContext()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()

		items, err := c.FetchChecklist(ctx, tc)
		if err != nil {
			return messages.ErrMsg{Err: err}
		}
		return messages.ChecklistMsg{Items: items}
	}
}

// fetchToolsCmd refreshes the tool catalog for the configured tier.
func (m Model) fetchToolsCmd() tea.Cmd {
	c, tier := m.client, m.tier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()

		tools, err := c.FetchTools(ctx, tier)
		if err != nil {
			return messages.ErrMsg{Err: err}
		}
		return messages.ToolCatalogMsg{Tools: tools}
	}
}

// waitForEnd resolves once the stream has fully shut down.
func waitForEnd(handle *client.StreamHandle) tea.Cmd {
	return func() tea.Msg {
		<-handle.Done()
		return messages.StreamEndMsg{}
	}
}

// streamHandlers bridges protocol events into the update loop. Events are
// injected in arrival order; bubbletea serializes delivery, so handler
// work stays single-consumer.
func (m Model) streamHandlers() client.Handlers {
	shared := m.shared
	send := func(msg tea.Msg) {
		if p := shared.GetProgram(); p != nil {
			p.Send(msg)
		}
	}

	return client.Handlers{
		OnText: func(content string) {
			send(messages.TextMsg{Content: content})
		},
		OnReasoning: func(content string) {
			send(messages.ReasoningMsg{Content: content})
		},
		OnToolUse: func(tool string, input map[string]any) {
			send(messages.ToolUseMsg{Tool: tool, Input: input})
		},
		OnToolResult: func(tool, output string) {
			send(messages.ToolResultMsg{Tool: tool, Output: output})
		},
		OnHandoff: func(fromAgent, toAgent, reason string) {
			send(messages.HandoffMsg{FromAgent: fromAgent, ToAgent: toAgent, Reason: reason})
		},
		OnError: func(message string) {
			send(messages.StreamErrorMsg{Message: message})
		},
		OnComplete: func(usage map[string]any) {
			send(messages.CompleteMsg{Usage: usage})
		},
	}
}
