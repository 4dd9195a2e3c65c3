// Package messages defines the tea.Msg values that bridge protocol events
// and REST results into the update loop.
package messages

import "eagle/internal/client"

// Protocol events from the stream.

type TextMsg struct {
	Content string
}

type ReasoningMsg struct {
	Content string
}

type ToolUseMsg struct {
	Tool  string
	Input map[string]any
}

type ToolResultMsg struct {
	Tool   string
	Output string
}

type HandoffMsg struct {
	FromAgent string
	ToAgent   string
	Reason    string
}

type StreamErrorMsg struct {
	Message string
}

type CompleteMsg struct {
	Usage map[string]any
}

// Internal app messages.

type StreamEndMsg struct{}

type SessionCreatedMsg struct {
	Info *client.SessionInfo
}

type ChecklistMsg struct {
	Items []client.ChecklistItem
}

type ToolCatalogMsg struct {
	Tools []client.ToolDescriptor
}

type ErrMsg struct {
	Err error
}
