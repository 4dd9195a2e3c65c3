// Package app wires the transport, session state, and workspace into the
// terminal UI.
package app

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"eagle/internal/client"
	"eagle/internal/components/chat"
	"eagle/internal/components/input"
	"eagle/internal/components/sidebar"
	"eagle/internal/config"
	"eagle/internal/session"
	"eagle/internal/workspace"
)

// State represents the application state.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateError
)

// SharedState holds state shared between model copies.
type SharedState struct {
	mu      sync.Mutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (s *SharedState) SetProgram(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

// GetProgram gets the program reference.
func (s *SharedState) GetProgram() *tea.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}

// Model is the main application model.
type Model struct {
	cfg    *client.TenantContext
	tier   string
	client *client.Client

	sess *session.Session
	ws   *workspace.Workspace
	acc  *session.Accumulator

	// handle is the cancellation token for the outstanding exchange.
	// Cleared when the exchange ends.
	handle *client.StreamHandle

	chat    chat.Model
	sidebar sidebar.Model
	input   input.Model
	spinner spinner.Model
	shared  *SharedState

	state  State
	width  int
	height int
	err    error
	ready  bool
}

// New creates the application model.
func New(cfg *config.Config, c *client.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Points

	ws := workspace.New()

	return Model{
		cfg: &client.TenantContext{
			TenantID: cfg.TenantID,
			UserID:   cfg.UserID,
		},
		tier:    cfg.Tier,
		client:  c,
		ws:      ws,
		chat:    chat.New(80, 20),
		sidebar: sidebar.New(ws, 40, 20),
		input:   input.New(80),
		spinner: sp,
		shared:  &SharedState{},
		state:   StateIdle,
	}
}

// SetProgram sets the tea.Program reference used to inject stream events.
func (m *Model) SetProgram(p *tea.Program) {
	m.shared.SetProgram(p)
}

// Init initializes the application.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Init(),
		m.spinner.Tick,
		m.createSessionCmd(),
		m.fetchToolsCmd(),
	)
}
