package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"eagle/internal/client"
	"eagle/internal/messages"
	"eagle/internal/session"
)

// defaultAgent is the label of the orchestrating agent a new exchange
// starts under.
const defaultAgent = "Supervisor"

// Update handles all application messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.state == StateStreaming {
				m.abortStream()
				return m, m.input.Focus()
			}
			return m, tea.Quit

		case "esc":
			if m.state == StateStreaming {
				m.abortStream()
				return m, m.input.Focus()
			}
			return m, tea.Quit

		case "enter":
			if m.state != StateStreaming && m.input.Value() != "" {
				return m.sendMessage()
			}

		case "ctrl+l":
			m.chat.Clear()
			m.ws.Log.Clear()
			m.sidebar.Refresh()
			if m.sess != nil {
				m.sess.Messages = nil
			}
			return m, nil

		case "ctrl+n":
			// New session: workspace state is per-session and is
			// cleared on switch.
			m.sess = nil
			m.chat.Clear()
			m.ws.Reset()
			m.sidebar.Refresh()
			return m, tea.Batch(m.createSessionCmd(), m.fetchToolsCmd())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Protocol events, in arrival order.
	case messages.TextMsg:
		if m.acc != nil {
			m.acc.Text(msg.Content)
			m.chat.Refresh()
		}
		return m, nil

	case messages.ReasoningMsg:
		if m.acc != nil {
			m.acc.Reasoning(msg.Content)
			m.sidebar.Refresh()
		}
		return m, nil

	case messages.ToolUseMsg:
		if m.acc != nil {
			m.acc.ToolUse(msg.Tool, msg.Input)
			m.sidebar.Refresh()
		}
		return m, nil

	case messages.ToolResultMsg:
		if m.acc != nil {
			m.acc.ToolResult(msg.Tool, msg.Output)
			m.sidebar.Refresh()
		}
		return m, nil

	case messages.HandoffMsg:
		if m.acc != nil {
			m.acc.Handoff(msg.FromAgent, msg.ToAgent, msg.Reason)
			m.chat.Refresh()
			m.sidebar.Refresh()
		}
		return m, nil

	case messages.StreamErrorMsg:
		if m.acc != nil {
			m.acc.Fail(msg.Message)
			m.acc = nil
		}
		m.err = fmt.Errorf("%s", msg.Message)
		m.state = StateError
		m.handle = nil
		m.chat.SetMessages(m.sessionMessages())
		m.sidebar.Refresh()
		return m, m.input.Focus()

	case messages.CompleteMsg:
		if m.acc != nil {
			m.acc.Complete(msg.Usage)
			m.acc = nil
		}
		m.state = StateIdle
		m.handle = nil
		m.chat.Refresh()
		// Checklist refreshes from its out-of-band source after every
		// complete event.
		return m, tea.Batch(m.input.Focus(), m.fetchChecklistCmd())

	case messages.StreamEndMsg:
		// Stream closed without a terminal protocol event (server hung
		// up, or abort raced the sentinel).
		if m.acc != nil {
			m.acc.Complete(nil)
			m.acc = nil
			m.chat.Refresh()
		}
		if m.state == StateStreaming {
			m.state = StateIdle
		}
		m.handle = nil
		return m, m.input.Focus()

	// Out-of-band projections.
	case messages.SessionCreatedMsg:
		m.sess = session.New(msg.Info.TenantID, msg.Info.UserID, msg.Info.SessionID)
		m.chat.SetMessages(m.sess.Messages)
		return m, m.fetchChecklistCmd()

	case messages.ChecklistMsg:
		m.ws.Checklist.Replace(msg.Items)
		m.sidebar.Refresh()
		m.resize()
		return m, nil

	case messages.ToolCatalogMsg:
		m.ws.Tools.Replace(msg.Tools)
		m.sidebar.Refresh()
		m.resize()
		return m, nil

	case messages.ErrMsg:
		m.err = msg.Err
		return m, nil
	}

	if m.state != StateStreaming {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// sendMessage starts a new exchange from the input contents.
func (m Model) sendMessage() (tea.Model, tea.Cmd) {
	content := m.input.Value()

	acc, err := session.Begin(m.sess, m.ws, content, defaultAgent)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.acc = acc
	m.err = nil

	m.input.Clear()
	m.input.Blur()
	m.state = StateStreaming
	m.chat.SetMessages(m.sess.Messages)

	req := &client.ChatRequest{
		Message:       content,
		TenantContext: m.sess.TenantContext(),
	}
	m.handle = m.client.StreamChat(context.Background(), req, m.streamHandlers())

	return m, waitForEnd(m.handle)
}

// abortStream cancels the outstanding exchange. Cancellation is silent:
// partial text stays, no error notice is produced.
func (m *Model) abortStream() {
	if m.handle != nil {
		m.handle.Abort()
		m.handle = nil
	}
	if m.acc != nil {
		m.acc.Abort()
		m.acc = nil
	}
	m.state = StateIdle
	m.chat.Refresh()
}

func (m *Model) sessionMessages() []*session.ChatMessage {
	if m.sess == nil {
		return nil
	}
	return m.sess.Messages
}

// resize recomputes the pane layout. Sidebar takes a third of the width.
func (m *Model) resize() {
	if !m.ready {
		return
	}

	sidebarWidth := m.width / 3
	if sidebarWidth > 48 {
		sidebarWidth = 48
	}
	chatWidth := m.width - sidebarWidth - 2

	// Header (1), input (4), status bar (1), padding (2).
	paneHeight := m.height - 8
	if paneHeight < 5 {
		paneHeight = 5
	}

	m.chat.SetSize(chatWidth, paneHeight)
	m.sidebar.SetSize(sidebarWidth, paneHeight)
	m.input.SetWidth(m.width - 2)
}
