// Package input is the message entry component.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eagle/internal/styles"
)

// Model wraps a textarea for composing messages.
type Model struct {
	textarea textarea.Model
	width    int
}

// New creates the input component.
func New(width int) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about your acquisition..."
	ta.Prompt = "┃ "
	ta.CharLimit = 4000
	ta.SetWidth(width)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	return Model{
		textarea: ta,
		width:    width,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the input component.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the input component.
func (m Model) View() string {
	return m.textarea.View()
}

// Value returns the trimmed input text.
func (m Model) Value() string {
	return strings.TrimSpace(m.textarea.Value())
}

// Clear empties the input.
func (m *Model) Clear() {
	m.textarea.Reset()
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.textarea.Blur()
}

// SetWidth updates the input width.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width)
}

// Disabled renders the placeholder shown while a stream is active.
func Disabled(width int) string {
	return styles.StatusBarStreaming.
		Italic(true).
		Width(width).
		Render("Waiting for response... (Esc to cancel)")
}
