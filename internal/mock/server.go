// Package mock serves a scripted EAGLE backend over the real wire
// protocol. It backs the `eagle mock` command and the end-to-end tests.
package mock

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

// Server is a mock multi-agent chat backend.
type Server struct {
	port       int
	tokenDelay time.Duration
	logger     *slog.Logger
}

// NewServer creates a mock server listening on the given port.
func NewServer(port int) *Server {
	return &Server{
		port:       port,
		tokenDelay: 15 * time.Millisecond,
		logger:     slog.Default(),
	}
}

// WithTokenDelay overrides the per-token streaming delay. Tests set it to
// zero.
func (s *Server) WithTokenDelay(d time.Duration) *Server {
	s.tokenDelay = d
	return s
}

// Handler returns the routing handler, so tests can mount the mock on an
// httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/sessions/", s.handleChecklist)
	mux.HandleFunc("/api/tools", s.handleTools)
	return mux
}

// Start blocks serving the mock backend.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("mock backend listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		TenantID string `json:"tenant_id"`
		UserID   string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"tenant_id":  req.TenantID,
		"user_id":    req.UserID,
		"session_id": uuid.NewString(),
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/checklist") {
		http.NotFound(w, r)
		return
	}

	items := []map[string]any{
		{"id": "intake", "name": "Acquisition intake form", "status": "completed", "required": true},
		{"id": "market-research", "name": "Market research report", "status": "completed", "required": true},
		{"id": "igce", "name": "Independent government cost estimate", "status": "in_progress", "required": true},
		{"id": "sow", "name": "Statement of work", "status": "pending", "required": true},
		{"id": "jna", "name": "Justification and approval", "status": "pending", "required": false},
		{"id": "legal-review", "name": "Legal sufficiency review", "status": "pending", "required": true},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	tools := []map[string]string{
		{"name": "search_far", "description": "Search the Federal Acquisition Regulation"},
		{"name": "cost_estimator", "description": "Build an independent government cost estimate"},
		{"name": "vendor_lookup", "description": "Query SAM.gov vendor registrations"},
	}
	if r.URL.Query().Get("tier") == "premium" {
		tools = append(tools, map[string]string{
			"name": "document_generator", "description": "Draft acquisition documents from templates",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"tools": tools})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message       string `json:"message"`
		TenantContext struct {
			TenantID  string `json:"tenant_id"`
			UserID    string `json:"user_id"`
			SessionID string `json:"session_id"`
		} `json:"tenant_context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	s.streamResponse(w, flusher, req.Message)
}

func (s *Server) streamResponse(w http.ResponseWriter, flusher http.Flusher, userMessage string) {
	lowerMsg := strings.ToLower(userMessage)

	s.sendEvent(w, flusher, event("reasoning",
		"content", "Reviewing the request and deciding which specialist to involve."))

	switch {
	case strings.Contains(lowerMsg, "legal") || strings.Contains(lowerMsg, "far"):
		s.simulateLegalReview(w, flusher)
	case strings.Contains(lowerMsg, "cost") || strings.Contains(lowerMsg, "estimate"):
		s.simulateCostEstimate(w, flusher)
	case strings.Contains(lowerMsg, "vendor") || strings.Contains(lowerMsg, "market"):
		s.simulateMarketResearch(w, flusher)
	}

	// Keep-alive comment; clients must discard it without effect.
	fmt.Fprint(w, ": ping\n\n")
	flusher.Flush()

	s.streamText(w, flusher, s.responseFor(lowerMsg))

	s.sendEvent(w, flusher, event("complete", "usage.tokens", 128, "usage.cost_usd", 0.004))
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func (s *Server) simulateLegalReview(w http.ResponseWriter, flusher http.Flusher) {
	s.sendEvent(w, flusher, event("handoff",
		"from_agent", "Supervisor",
		"to_agent", "LegalCounsel",
		"reason", "Regulatory interpretation requires the legal specialist"))

	s.sendEvent(w, flusher, event("tool_use",
		"tool", "search_far",
		"input.query", "simplified acquisition threshold",
		"input.part", "13"))
	time.Sleep(s.tokenDelay)

	s.sendEvent(w, flusher, event("tool_result",
		"tool", "search_far",
		"output", "FAR 13.003: agencies shall use simplified acquisition procedures to the maximum extent practicable for purchases at or below the simplified acquisition threshold."))
}

func (s *Server) simulateCostEstimate(w http.ResponseWriter, flusher http.Flusher) {
	s.sendEvent(w, flusher, event("tool_use",
		"tool", "cost_estimator",
		"input.labor_categories", 3,
		"input.period_months", 12))
	time.Sleep(s.tokenDelay)

	s.sendEvent(w, flusher, event("tool_result",
		"tool", "cost_estimator",
		"output", "Estimated total: $214,500 across 3 labor categories over 12 months."))
}

func (s *Server) simulateMarketResearch(w http.ResponseWriter, flusher http.Flusher) {
	s.sendEvent(w, flusher, event("handoff",
		"from_agent", "Supervisor",
		"to_agent", "MarketIntelligence",
		"reason", "Vendor landscape question"))

	s.sendEvent(w, flusher, event("tool_use",
		"tool", "vendor_lookup",
		"input.naics", "541512"))
	time.Sleep(s.tokenDelay)

	s.sendEvent(w, flusher, event("tool_result",
		"tool", "vendor_lookup",
		"output", "37 registered small-business vendors under NAICS 541512 within scope."))
}

func (s *Server) responseFor(lowerMsg string) string {
	switch {
	case strings.Contains(lowerMsg, "hello") || strings.Contains(lowerMsg, "hi"):
		return "Hello! I'm the EAGLE acquisition assistant. I can walk you through intake, market research, cost estimates, and legal review. What are you working on?"
	case strings.Contains(lowerMsg, "legal") || strings.Contains(lowerMsg, "far"):
		return "Based on FAR 13.003, this purchase falls under simplified acquisition procedures. You will still need the legal sufficiency review on your checklist before award."
	case strings.Contains(lowerMsg, "cost") || strings.Contains(lowerMsg, "estimate"):
		return "I've drafted an independent government cost estimate of **$214,500**. Review the labor category breakdown and I can attach it to your acquisition package."
	case strings.Contains(lowerMsg, "vendor") || strings.Contains(lowerMsg, "market"):
		return "Market research found 37 registered small-business vendors in scope. A set-aside looks viable; shall I draft the market research report?"
	default:
		return "I understand. Tell me about your acquisition — its rough dollar value and what you're buying — and I'll route it to the right specialist."
	}
}

// streamText batches the reply into small rune-safe chunks, the way the
// real backend streams model deltas.
func (s *Server) streamText(w http.ResponseWriter, flusher http.Flusher, response string) {
	const batchSize = 3
	runes := []rune(response)

	for i := 0; i < len(runes); i += batchSize {
		end := i + batchSize
		if end > len(runes) {
			end = len(runes)
		}
		s.sendEvent(w, flusher, event("text", "content", string(runes[i:end])))
		time.Sleep(s.tokenDelay)
	}
}

func (s *Server) sendEvent(w http.ResponseWriter, flusher http.Flusher, payload string) {
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}

// event builds one payload JSON from alternating key/value pairs, keys in
// sjson path syntax.
func event(kind string, kv ...any) string {
	out, _ := sjson.Set("", "type", kind)
	for i := 0; i+1 < len(kv); i += 2 {
		out, _ = sjson.Set(out, kv[i].(string), kv[i+1])
	}
	return out
}
