// Package sidebar renders the agent workspace: checklist, activity log,
// and tool catalog.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"eagle/internal/styles"
	"eagle/internal/workspace"
)

// Model is the workspace panel.
type Model struct {
	ws     *workspace.Workspace
	log    viewport.Model
	width  int
	height int
}

// New creates the sidebar bound to a workspace.
func New(ws *workspace.Workspace, width, height int) Model {
	vp := viewport.New(width, 8)
	return Model{
		ws:     ws,
		log:    vp,
		width:  width,
		height: height,
	}
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sidebar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	logHeight := height - m.checklistHeight() - m.toolsHeight() - 4
	if logHeight < 3 {
		logHeight = 3
	}
	m.log.Width = width
	m.log.Height = logHeight
	m.Refresh()
}

// Refresh re-renders the projections. The log always follows its newest
// entry.
func (m *Model) Refresh() {
	var sb strings.Builder
	for _, e := range m.ws.Log.Entries() {
		sb.WriteString(renderLogEntry(e, m.width))
		sb.WriteString("\n")
	}
	m.log.SetContent(sb.String())
	m.log.GotoBottom()
}

// View renders the three projections stacked.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.SidebarTitle.Render("Checklist"))
	sb.WriteString("  ")
	sb.WriteString(styles.StatusBar.Render(m.ws.Checklist.Summary()))
	sb.WriteString("\n")
	sb.WriteString(m.renderChecklist())
	sb.WriteString("\n")

	sb.WriteString(styles.SidebarTitle.Render("Agent activity"))
	sb.WriteString("\n")
	sb.WriteString(m.log.View())
	sb.WriteString("\n")

	sb.WriteString(styles.SidebarTitle.Render("Tools"))
	sb.WriteString("\n")
	sb.WriteString(m.renderTools())

	return styles.SidebarBorder.Width(m.width).Render(sb.String())
}

func (m Model) renderChecklist() string {
	items := m.ws.Checklist.Items()
	if len(items) == 0 {
		return styles.StatusBar.Render("  (no checklist yet)")
	}

	var sb strings.Builder
	for _, item := range items {
		var icon string
		var style = styles.ChecklistPending
		switch item.Status {
		case workspace.StatusCompleted:
			icon, style = "✓", styles.ChecklistDone
		case workspace.StatusInProgress:
			icon = "◐"
		case workspace.StatusSkipped:
			icon = "↷"
		default:
			icon = "○"
		}
		name := item.Name
		if item.Required {
			name += " *"
		}
		sb.WriteString(style.Render(fmt.Sprintf("  %s %s", icon, truncate(name, m.width-6))))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderTools() string {
	tools := m.ws.Tools.Tools()
	if len(tools) == 0 {
		return styles.StatusBar.Render("  (no tools available)")
	}

	var sb strings.Builder
	for _, t := range tools {
		sb.WriteString(styles.LogAgent.Render("  " + t.Name))
		sb.WriteString(styles.StatusBar.Render(" — " + truncate(t.Description, m.width-len(t.Name)-8)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) checklistHeight() int {
	n := len(m.ws.Checklist.Items())
	if n == 0 {
		return 1
	}
	return n
}

func (m Model) toolsHeight() int {
	n := len(m.ws.Tools.Tools())
	if n == 0 {
		return 1
	}
	return n
}

func renderLogEntry(e workspace.LogEntry, width int) string {
	ts := e.Time.Format("15:04:05")
	head := fmt.Sprintf("%s %s %s",
		styles.StatusBar.Render(ts),
		styles.LogAgent.Render(e.Agent),
		styles.LogKind.Render(string(e.Kind)))
	return head + "\n  " + truncate(e.Content, width*2)
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if maxLen < 4 {
		maxLen = 4
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
