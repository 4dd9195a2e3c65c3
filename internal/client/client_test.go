package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"eagle/internal/client"
)

// recorder collects dispatched events as flat strings so tests can assert
// on exact sequences.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) handlers() client.Handlers {
	return client.Handlers{
		OnText: func(content string) {
			r.add("text:" + content)
		},
		OnReasoning: func(content string) {
			r.add("reasoning:" + content)
		},
		OnToolUse: func(tool string, input map[string]any) {
			r.add(fmt.Sprintf("tool_use:%s:%v", tool, input["query"]))
		},
		OnToolResult: func(tool, output string) {
			r.add("tool_result:" + tool + ":" + output)
		},
		OnHandoff: func(from, to, reason string) {
			r.add("handoff:" + from + ">" + to)
		},
		OnError: func(message string) {
			r.add("error:" + message)
		},
		OnComplete: func(usage map[string]any) {
			r.add(fmt.Sprintf("complete:%v", usage["tokens"]))
		},
	}
}

func (r *recorder) errors() []string {
	var out []string
	for _, ev := range r.snapshot() {
		if len(ev) > 6 && ev[:6] == "error:" {
			out = append(out, ev)
		}
	}
	return out
}

func testRequest() *client.ChatRequest {
	return &client.ChatRequest{
		Message: "hello",
		TenantContext: client.TenantContext{
			TenantID:  "tenant-001",
			UserID:    "user-001",
			SessionID: "sess-001",
		},
	}
}

// stream runs one exchange against the server and waits for it to finish.
func stream(t *testing.T, url string, rec *recorder) {
	t.Helper()

	c := client.NewClient(url)
	handle := c.StreamChat(context.Background(), testRequest(), rec.handlers())

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not finish in time")
	}
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestStreamChatDeliversEventsInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req client.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.TenantContext.TenantID != "tenant-001" {
			t.Errorf("unexpected tenant context: %+v", req.TenantContext)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"text\",\"content\":\"Hello\"}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"text\",\"content\":\" world\"}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"complete\",\"usage\":{\"tokens\":12}}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	rec := &recorder{}
	stream(t, server.URL, rec)

	assertEvents(t, rec.snapshot(), []string{
		"text:Hello",
		"text: world",
		"complete:12",
	})
}

func TestStreamChatChunkBoundaryIndependence(t *testing.T) {
	// Multi-byte content so chunk splits land inside UTF-8 sequences.
	body := "data: {\"type\":\"reasoning\",\"content\":\"审查请求…\"}\n\n" +
		"data: {\"type\":\"text\",\"content\":\"Héllo \"}\n\n" +
		"data: {\"type\":\"text\",\"content\":\"wörld 🌍\"}\n\n" +
		"data: {\"type\":\"complete\",\"usage\":{\"tokens\":7}}\n\n" +
		"data: [DONE]\n\n"

	want := []string{
		"reasoning:审查请求…",
		"text:Héllo ",
		"text:wörld 🌍",
		"complete:7",
	}

	for _, chunkSize := range []int{1, 2, 3, 5, 7, 64, len(body)} {
		t.Run(fmt.Sprintf("chunk-%d", chunkSize), func(t *testing.T) {
			raw := []byte(body)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				flusher := w.(http.Flusher)
				for i := 0; i < len(raw); i += chunkSize {
					end := i + chunkSize
					if end > len(raw) {
						end = len(raw)
					}
					w.Write(raw[i:end])
					flusher.Flush()
				}
			}))
			defer server.Close()

			rec := &recorder{}
			stream(t, server.URL, rec)
			assertEvents(t, rec.snapshot(), want)
		})
	}
}

func TestStreamChatSkipsMalformedLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"text\",\"content\":\"A\"}\n\n")
		fmt.Fprint(w, "data: {not valid json at all\n\n")
		fmt.Fprint(w, "data: {\"type\":\"text\",\"content\":\"B\"}\n\n")
	}))
	defer server.Close()

	rec := &recorder{}
	stream(t, server.URL, rec)

	assertEvents(t, rec.snapshot(), []string{"text:A", "text:B"})
}

func TestStreamChatIgnoresUnknownEventTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"telemetry_v2\",\"payload\":{\"x\":1}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"text\",\"content\":\"still here\"}\n\n")
	}))
	defer server.Close()

	rec := &recorder{}
	stream(t, server.URL, rec)

	assertEvents(t, rec.snapshot(), []string{"text:still here"})
}

func TestStreamChatDiscardsKeepAlivesAndSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": ping\n\n")
		fmt.Fprint(w, "\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	rec := &recorder{}
	stream(t, server.URL, rec)

	if events := rec.snapshot(); len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestStreamChatFlushesFinalUnterminatedLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		// No trailing newline before the connection closes.
		fmt.Fprint(w, "data: {\"type\":\"text\",\"content\":\"tail\"}")
	}))
	defer server.Close()

	rec := &recorder{}
	stream(t, server.URL, rec)

	assertEvents(t, rec.snapshot(), []string{"text:tail"})
}

func TestStreamChatEstablishmentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	rec := &recorder{}
	stream(t, server.URL, rec)

	events := rec.snapshot()
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %v", events)
	}
	if errs := rec.errors(); len(errs) != 1 {
		t.Fatalf("expected a single error event, got %v", events)
	}
}

func TestStreamChatMidStreamReadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"text\",\"content\":\"partial\"}\n\n")
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer server.Close()

	rec := &recorder{}
	stream(t, server.URL, rec)

	events := rec.snapshot()
	if len(events) != 2 {
		t.Fatalf("expected text then error, got %v", events)
	}
	if events[0] != "text:partial" {
		t.Fatalf("already-delivered content must stand, got %v", events)
	}
	if errs := rec.errors(); len(errs) != 1 {
		t.Fatalf("expected a single error event, got %v", events)
	}
}

func TestAbortStopsEmissionSilently(t *testing.T) {
	firstEvent := make(chan struct{})
	var once sync.Once

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for i := 0; ; i++ {
			select {
			case <-r.Context().Done():
				return
			default:
			}
			fmt.Fprintf(w, "data: {\"type\":\"text\",\"content\":\"tick %d\"}\n\n", i)
			flusher.Flush()
			time.Sleep(10 * time.Millisecond)
		}
	}))
	defer server.Close()

	rec := &recorder{}
	handlers := rec.handlers()
	baseOnText := handlers.OnText
	handlers.OnText = func(content string) {
		baseOnText(content)
		once.Do(func() { close(firstEvent) })
	}

	c := client.NewClient(server.URL)
	handle := c.StreamChat(context.Background(), testRequest(), handlers)

	select {
	case <-firstEvent:
	case <-time.After(5 * time.Second):
		t.Fatal("no event before abort")
	}

	handle.Abort()

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not shut down after abort")
	}

	count := len(rec.snapshot())
	time.Sleep(50 * time.Millisecond)

	if after := len(rec.snapshot()); after != count {
		t.Fatalf("events emitted after abort: had %d, now %d", count, after)
	}
	if errs := rec.errors(); len(errs) != 0 {
		t.Fatalf("cancellation must not surface as an error, got %v", errs)
	}
}

func TestAbortIsIdempotentAndNoopWhenFinished(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	rec := &recorder{}
	c := client.NewClient(server.URL)
	handle := c.StreamChat(context.Background(), testRequest(), rec.handlers())

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not finish")
	}

	// Abort after the stream has ended, twice.
	handle.Abort()
	handle.Abort()

	if handle.Aborted() {
		t.Fatal("abort after completion should be a no-op")
	}
}

func TestStreamChatSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	rec := &recorder{}
	c := client.NewClient(server.URL, client.WithCredentials(client.StaticToken("tok-123")))
	handle := c.StreamChat(context.Background(), testRequest(), rec.handlers())
	<-handle.Done()

	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
}
