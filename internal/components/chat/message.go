package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"eagle/internal/session"
	"eagle/internal/styles"
)

// WelcomeText is shown before the first message.
const WelcomeText = `Welcome to EAGLE.

Type a message and press Enter to start.

Try:
• "Hello" - meet the supervisor agent
• "Is this within the simplified acquisition threshold?" - legal review
• "Estimate the cost of a 12-month support contract" - cost estimate
• "What vendors are in this market?" - market research`

// Render renders one transcript message.
func Render(msg *session.ChatMessage, width int) string {
	var sb strings.Builder

	switch msg.Role {
	case session.RoleUser:
		sb.WriteString(styles.UserLabel.Render("You"))
	case session.RoleAgent:
		label := msg.AgentLabel
		if label == "" {
			label = "Agent"
		}
		sb.WriteString(styles.AgentLabel.Render(label))
	case session.RoleSystem:
		sb.WriteString(styles.SystemLabel.Render("System"))
	}
	sb.WriteString("\n")

	content := msg.Content
	if msg.Role == session.RoleAgent && content != "" && !msg.Streaming {
		if rendered, err := renderMarkdown(content, width-4); err == nil {
			content = strings.TrimSpace(rendered)
		}
	}

	if msg.Streaming {
		content += styles.StreamingCursor.Render("▊")
	}

	switch msg.Role {
	case session.RoleUser:
		sb.WriteString(styles.UserMessage.Width(width - 2).Render(content))
	case session.RoleAgent:
		sb.WriteString(styles.AgentMessage.Width(width - 2).Render(content))
	case session.RoleSystem:
		sb.WriteString(styles.SystemNotice.Width(width - 2).Render(content))
	}
	sb.WriteString("\n")

	return sb.String()
}

// renderMarkdown renders markdown content for the terminal.
func renderMarkdown(content string, width int) (string, error) {
	if width < 10 {
		width = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content, err
	}
	return r.Render(content)
}
