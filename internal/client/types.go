package client

// TenantContext scopes every request to a tenant, user, and session.
type TenantContext struct {
	TenantID  string `json:"tenant_id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// ChatRequest is the request body for the /api/chat streaming endpoint.
type ChatRequest struct {
	Message       string        `json:"message"`
	TenantContext TenantContext `json:"tenant_context"`
}

// Protocol event payloads, discriminated by the "type" field.

type TextEvent struct {
	Content string `json:"content"`
}

type ReasoningEvent struct {
	Content string `json:"content"`
}

type ToolUseEvent struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

type ToolResultEvent struct {
	Tool   string `json:"tool"`
	Output string `json:"output"`
}

type HandoffEvent struct {
	FromAgent string `json:"from_agent"`
	ToAgent   string `json:"to_agent"`
	Reason    string `json:"reason"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

type CompleteEvent struct {
	Usage map[string]any `json:"usage"`
}

// SessionInfo is the response from POST /api/sessions.
type SessionInfo struct {
	TenantID  string `json:"tenant_id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
}

// ChecklistItem is one tracked deliverable from the status endpoint.
type ChecklistItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"` // pending, in_progress, completed, skipped
	Required bool   `json:"required"`
}

// ChecklistResponse is the response from the checklist status endpoint.
type ChecklistResponse struct {
	Items []ChecklistItem `json:"items"`
}

// ToolDescriptor describes one tool available to the tenant's tier.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolsResponse is the response from the tool catalog endpoint.
type ToolsResponse struct {
	Tools []ToolDescriptor `json:"tools"`
}

// HealthResponse is the response from the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
