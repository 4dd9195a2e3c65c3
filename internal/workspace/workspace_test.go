package workspace

import (
	"reflect"
	"testing"

	"eagle/internal/client"
)

func sixItems() []client.ChecklistItem {
	return []client.ChecklistItem{
		{ID: "intake", Name: "Intake form", Status: StatusCompleted, Required: true},
		{ID: "market", Name: "Market research", Status: StatusCompleted, Required: true},
		{ID: "igce", Name: "Cost estimate", Status: StatusInProgress, Required: true},
		{ID: "sow", Name: "Statement of work", Status: StatusPending, Required: true},
		{ID: "jna", Name: "Justification", Status: StatusSkipped, Required: false},
		{ID: "legal", Name: "Legal review", Status: StatusPending, Required: true},
	}
}

func TestChecklistReplaceIsWholesale(t *testing.T) {
	var c Checklist
	c.Replace(sixItems())
	c.Replace([]client.ChecklistItem{{ID: "only", Name: "Only", Status: StatusPending}})

	items := c.Items()
	if len(items) != 1 || items[0].ID != "only" {
		t.Fatalf("replace must overwrite the whole set, got %+v", items)
	}
}

func TestChecklistReplaceIsIdempotent(t *testing.T) {
	var a, b Checklist
	a.Replace(sixItems())

	b.Replace(sixItems())
	b.Replace(sixItems())

	if !reflect.DeepEqual(a.Items(), b.Items()) {
		t.Fatal("double replace must equal single replace")
	}
	if a.Summary() != b.Summary() {
		t.Fatalf("summaries differ: %q vs %q", a.Summary(), b.Summary())
	}
}

func TestChecklistSummary(t *testing.T) {
	var c Checklist
	c.Replace(sixItems())

	if got := c.Summary(); got != "2 of 6 items completed" {
		t.Fatalf("expected %q, got %q", "2 of 6 items completed", got)
	}

	c.Replace(nil)
	if got := c.Summary(); got != "0 of 0 items completed" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestAgentLogAppendOnly(t *testing.T) {
	var l AgentLog

	l.Append(LogEntry{Agent: "Supervisor", Kind: LogReasoning, Content: "a"})
	l.Append(LogEntry{Agent: "LegalCounsel", Kind: LogToolUse, Content: "b"})
	l.Append(LogEntry{Agent: "LegalCounsel", Kind: LogToolResult, Content: "c"})

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Arrival order, never re-sorted.
	for i, want := range []string{"a", "b", "c"} {
		if entries[i].Content != want {
			t.Fatalf("entry %d: expected %q, got %q", i, want, entries[i].Content)
		}
	}
	if entries[0].Time.IsZero() {
		t.Fatal("append must stamp a time")
	}

	// Mutating the returned copy must not touch the log.
	entries[0].Content = "mutated"
	if l.Entries()[0].Content != "a" {
		t.Fatal("Entries must return a copy")
	}

	l.Clear()
	if l.Len() != 0 {
		t.Fatal("clear must empty the log")
	}
}

func TestToolCatalogReplace(t *testing.T) {
	var tc ToolCatalog
	tc.Replace([]client.ToolDescriptor{
		{Name: "search_far", Description: "FAR search"},
		{Name: "cost_estimator", Description: "IGCE builder"},
	})
	tc.Replace([]client.ToolDescriptor{
		{Name: "document_generator", Description: "Drafts documents"},
	})

	tools := tc.Tools()
	if len(tools) != 1 || tools[0].Name != "document_generator" {
		t.Fatalf("replace must overwrite the catalog, got %+v", tools)
	}
}

func TestWorkspaceReset(t *testing.T) {
	ws := New()
	ws.Checklist.Replace(sixItems())
	ws.Log.Append(LogEntry{Agent: "Supervisor", Kind: LogReasoning, Content: "x"})
	ws.Tools.Replace([]client.ToolDescriptor{{Name: "search_far"}})

	ws.Reset()

	if len(ws.Checklist.Items()) != 0 || ws.Log.Len() != 0 || len(ws.Tools.Tools()) != 0 {
		t.Fatal("reset must clear all three projections")
	}
}
