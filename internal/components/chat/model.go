// Package chat renders the session transcript.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"eagle/internal/session"
)

// Model is the chat transcript component.
type Model struct {
	viewport viewport.Model
	messages []*session.ChatMessage
	width    int
	height   int
}

// New creates a new chat model.
func New(width, height int) Model {
	vp := viewport.New(width, height)
	vp.SetContent("")

	return Model{
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init initializes the chat component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the chat component.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			m.viewport.ViewUp()
		case "pgdown":
			m.viewport.ViewDown()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the chat component.
func (m Model) View() string {
	return m.viewport.View()
}

// SetMessages points the transcript at the session's message list and
// re-renders. The session owns the messages; the component only reads.
func (m *Model) SetMessages(msgs []*session.ChatMessage) {
	m.messages = msgs
	m.updateContent()
}

// Refresh re-renders after in-place message mutation (streamed appends).
func (m *Model) Refresh() {
	m.updateContent()
}

// SetSize updates the chat dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateContent()
}

// Clear empties the transcript.
func (m *Model) Clear() {
	m.messages = nil
	m.viewport.SetContent("")
}

// IsEmpty returns true if there are no messages.
func (m Model) IsEmpty() bool {
	return len(m.messages) == 0
}

// updateContent rebuilds the viewport content and follows the newest
// message.
func (m *Model) updateContent() {
	var content strings.Builder

	for i, msg := range m.messages {
		content.WriteString(Render(msg, m.width))
		if i < len(m.messages)-1 {
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}
