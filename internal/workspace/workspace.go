// Package workspace maintains the agent workspace projections: the
// document checklist, the append-only agent activity log, and the tool
// catalog. Each projection is updated independently; the checklist and
// catalog are replaced wholesale while the log only grows (or is wholly
// cleared).
package workspace

import (
	"fmt"
	"sync"
	"time"

	"eagle/internal/client"
)

// Checklist item statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusSkipped    = "skipped"
)

// LogKind classifies an agent log entry.
type LogKind string

const (
	LogReasoning  LogKind = "reasoning"
	LogToolUse    LogKind = "tool_use"
	LogToolResult LogKind = "tool_result"
	LogHandoff    LogKind = "handoff"
	LogError      LogKind = "error"
)

// LogEntry is one line of agent telemetry. Entries keep arrival order and
// are never re-sorted.
type LogEntry struct {
	Time    time.Time
	Agent   string
	Kind    LogKind
	Content string
}

// Checklist is a replaceable snapshot of the document checklist. Updates
// always overwrite the whole set; there is no incremental patching.
type Checklist struct {
	mu    sync.Mutex
	items []client.ChecklistItem
}

// Replace overwrites the checklist with a new snapshot. Calling it twice
// with the same items yields the same state as calling it once.
func (c *Checklist) Replace(items []client.ChecklistItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]client.ChecklistItem(nil), items...)
}

// Items returns a copy of the current snapshot.
func (c *Checklist) Items() []client.ChecklistItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]client.ChecklistItem(nil), c.items...)
}

// Summary reports checklist progress, e.g. "2 of 6 items completed".
func (c *Checklist) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	completed := 0
	for _, item := range c.items {
		if item.Status == StatusCompleted {
			completed++
		}
	}
	return fmt.Sprintf("%d of %d items completed", completed, len(c.items))
}

// AgentLog is the append-only activity log. It only grows, or is wholly
// cleared on session switch.
type AgentLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Append adds an entry at the end of the log.
func (l *AgentLog) Append(entry LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	l.entries = append(l.entries, entry)
}

// Clear discards every entry.
func (l *AgentLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Entries returns a copy of the log in arrival order.
func (l *AgentLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *AgentLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ToolCatalog is a replaceable snapshot of the tools available to the
// tenant's tier.
type ToolCatalog struct {
	mu    sync.Mutex
	tools []client.ToolDescriptor
}

// Replace overwrites the catalog with a new snapshot.
func (t *ToolCatalog) Replace(tools []client.ToolDescriptor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tools = append([]client.ToolDescriptor(nil), tools...)
}

// Tools returns a copy of the current snapshot.
func (t *ToolCatalog) Tools() []client.ToolDescriptor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]client.ToolDescriptor(nil), t.tools...)
}

// Workspace bundles the three projections. State persists for the
// session's lifetime; Reset clears it on session switch.
type Workspace struct {
	Checklist Checklist
	Log       AgentLog
	Tools     ToolCatalog
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// Reset clears all three projections.
func (w *Workspace) Reset() {
	w.Checklist.Replace(nil)
	w.Log.Clear()
	w.Tools.Replace(nil)
}
