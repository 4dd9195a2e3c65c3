// Package client implements the EAGLE chat wire protocol: a streaming
// transport that turns raw network bytes into complete protocol lines, and
// a typed dispatcher that routes each decoded event to its handler.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// CredentialProvider supplies a bearer token per request. Token issuance
// and refresh are external concerns.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a CredentialProvider backed by a fixed token. An empty
// token sends no Authorization header.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}

// Client talks to the EAGLE backend: one streaming chat endpoint plus the
// out-of-band REST endpoints for sessions, checklist status, and tooling.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialProvider
	logger     *slog.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client for REST requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithCredentials sets the bearer token source used on every request.
func WithCredentials(p CredentialProvider) ClientOption {
	return func(client *Client) {
		client.creds = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = l
	}
}

// NewClient creates a new client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// StreamChat opens one streaming exchange. It returns immediately; the
// returned handle is the exchange's cancellation token. Decoded events are
// delivered to h strictly in arrival order from a single goroutine, and
// delivery stops after the stream ends or Abort is called. The caller is
// responsible for not starting a second exchange before the first one's
// terminal event.
func (c *Client) StreamChat(ctx context.Context, req *ChatRequest, h Handlers) *StreamHandle {
	streamCtx, cancel := context.WithCancel(ctx)
	handle := newStreamHandle(cancel)

	go c.runStream(streamCtx, handle, req, h)

	return handle
}

// runStream owns the whole lifecycle of one stream. handle.finish runs on
// every exit path, so resources are released regardless of where the loop
// stops.
func (c *Client) runStream(ctx context.Context, handle *StreamHandle, req *ChatRequest, h Handlers) {
	defer handle.finish()

	body, err := json.Marshal(req)
	if err != nil {
		h.emitError(fmt.Sprintf("marshal request body: %v", err))
		return
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		h.emitError(fmt.Sprintf("create request: %v", err))
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	if err := c.authorize(ctx, httpReq); err != nil {
		h.emitError(fmt.Sprintf("obtain credentials: %v", err))
		return
	}

	// No client timeout on the streaming connection; idle termination is
	// the transport's job.
	streamClient := &http.Client{}
	resp, err := streamClient.Do(httpReq)
	if err != nil {
		if handle.Aborted() || ctx.Err() != nil {
			return
		}
		h.emitError(fmt.Sprintf("connect: %v", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		h.emitError(fmt.Sprintf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
		return
	}

	c.readLoop(ctx, handle, resp.Body, h)
}

// readLoop assembles complete protocol lines from the byte stream and runs
// each through the line rules. Partial bytes, including a UTF-8 character
// split across network chunks, stay buffered until the terminating newline
// arrives, so a split character is never surfaced.
func (c *Client) readLoop(ctx context.Context, handle *StreamHandle, body io.Reader, h Handlers) {
	reader := bufio.NewReader(body)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if line != "" {
			// On EOF this flushes the final line that lacked a
			// trailing newline through the same rules.
			c.processLine(line, h)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if handle.Aborted() || ctx.Err() != nil {
				return
			}
			h.emitError(fmt.Sprintf("stream read failed: %v", err))
			return
		}
	}
}

// processLine applies the framing rules to one complete line: only lines
// carrying the data prefix matter, the end-of-stream sentinel is dropped,
// and a payload that fails to parse is logged and discarded without
// interrupting the stream.
func (c *Client) processLine(line string, h Handlers) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, dataPrefix) {
		// Blank separators and keep-alive comments.
		return
	}

	payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
	if payload == "" || payload == doneSentinel {
		return
	}

	if err := h.dispatch([]byte(payload)); err != nil {
		c.logger.Warn("dropping malformed protocol line", "error", err)
	}
}

// authorize attaches the bearer token, if a credential source is set.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.creds == nil {
		return nil
	}
	token, err := c.creds.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}
