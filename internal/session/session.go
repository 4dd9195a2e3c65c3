// Package session holds per-session chat state and the per-exchange
// accumulator that builds one agent reply out of a stream of protocol
// events.
package session

import (
	"time"

	"github.com/google/uuid"

	"eagle/internal/client"
)

// Role identifies who a chat message belongs to.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
	RoleSystem Role = "system"
)

// ChatMessage is one entry in a session transcript. Content is mutable
// only while its owning exchange is streaming, then frozen.
type ChatMessage struct {
	ID         string
	Role       Role
	AgentLabel string
	Content    string
	Reasoning  string
	Timestamp  time.Time
	Streaming  bool
}

// Session owns an ordered list of chat messages for one tenant user
// conversation. It is not safe for concurrent use; the caller serializes
// access (in the TUI, everything runs on the update loop).
type Session struct {
	ID       string
	TenantID string
	UserID   string
	Messages []*ChatMessage
}

// New creates a session for the given tenant user. A backend-issued
// session ID can be passed in; otherwise one is generated locally.
func New(tenantID, userID, sessionID string) *Session {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Session{
		ID:       sessionID,
		TenantID: tenantID,
		UserID:   userID,
	}
}

// TenantContext returns the request scope for this session.
func (s *Session) TenantContext() client.TenantContext {
	return client.TenantContext{
		TenantID:  s.TenantID,
		UserID:    s.UserID,
		SessionID: s.ID,
	}
}

// append adds a message and returns it.
func (s *Session) append(role Role, agentLabel, content string) *ChatMessage {
	msg := &ChatMessage{
		ID:         uuid.NewString(),
		Role:       role,
		AgentLabel: agentLabel,
		Content:    content,
		Timestamp:  time.Now(),
	}
	s.Messages = append(s.Messages, msg)
	return msg
}
