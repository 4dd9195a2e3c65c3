// Package styles holds the shared lipgloss palette and styles.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Palette
	Primary = lipgloss.Color("12")
	Accent  = lipgloss.Color("10")
	Muted   = lipgloss.Color("240")
	Warn    = lipgloss.Color("11")
	Danger  = lipgloss.Color("9")

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Padding(0, 1)

	UserLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	AgentLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	SystemLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(Warn)

	UserMessage = lipgloss.NewStyle().
			PaddingLeft(2)

	AgentMessage = lipgloss.NewStyle().
			PaddingLeft(2)

	SystemNotice = lipgloss.NewStyle().
			PaddingLeft(2).
			Italic(true).
			Foreground(Warn)

	StreamingCursor = lipgloss.NewStyle().
			Foreground(Primary)

	SidebarTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	SidebarBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Muted).
			PaddingLeft(1)

	LogAgent = lipgloss.NewStyle().
			Foreground(Accent)

	LogKind = lipgloss.NewStyle().
		Foreground(Muted)

	ChecklistDone = lipgloss.NewStyle().
			Foreground(Accent)

	ChecklistPending = lipgloss.NewStyle().
				Foreground(Muted)

	StatusBar = lipgloss.NewStyle().
			Foreground(Muted)

	StatusBarStreaming = lipgloss.NewStyle().
				Foreground(Warn)

	StatusBarError = lipgloss.NewStyle().
			Foreground(Danger)
)
