package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"eagle/internal/components/chat"
	"eagle/internal/components/input"
	"eagle/internal/styles"
)

// View renders the application.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var sections []string

	header := styles.Header.Render("EAGLE — Acquisition Assistant")
	sections = append(sections, header)

	chatView := m.chat.View()
	if m.chat.IsEmpty() {
		welcomeStyle := lipgloss.NewStyle().
			Foreground(styles.Muted).
			Width(m.width - m.sidebarWidth()).
			Align(lipgloss.Center).
			Padding(2, 0)
		chatView = welcomeStyle.Render(chat.WelcomeText)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, chatView, m.sidebar.View())
	sections = append(sections, panes)

	if m.state == StateStreaming {
		sections = append(sections, input.Disabled(m.width-2))
	} else {
		sections = append(sections, m.input.View())
	}

	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar renders the status bar at the bottom.
func (m Model) renderStatusBar() string {
	var status string
	var statusStyle lipgloss.Style

	switch m.state {
	case StateIdle:
		status = "Ready"
		if m.sess != nil {
			status = fmt.Sprintf("Ready · %s/%s", m.sess.TenantID, shortID(m.sess.ID))
		}
		statusStyle = styles.StatusBar
	case StateStreaming:
		status = m.spinner.View() + " Streaming..."
		statusStyle = styles.StatusBarStreaming
	case StateError:
		status = fmt.Sprintf("Error: %v", m.err)
		statusStyle = styles.StatusBarError
	}

	left := statusStyle.Render(status)
	help := styles.StatusBar.Render("Enter: send • Esc: cancel/quit • Ctrl+N: new session • Ctrl+L: clear")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(help)
	spacerWidth := m.width - leftWidth - rightWidth - 2
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := strings.Repeat(" ", spacerWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, help)
}

func (m Model) sidebarWidth() int {
	w := m.width / 3
	if w > 48 {
		w = 48
	}
	return w
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
