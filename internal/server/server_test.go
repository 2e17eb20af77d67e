package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/vergeframework/verge"
	"github.com/vergeframework/verge/internal/sync"
)

func testConfig(apps ...string) *Config {
	return &Config{
		Host:   "127.0.0.1",
		Port:   0, // Use random available port
		Apps:   apps,
		Logger: log.New(os.Stderr, "[test] ", log.LstdFlags),
	}
}

func startTestServer(t *testing.T, apps ...string) *Server {
	t.Helper()

	server := NewServer(testConfig(apps...))
	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Cleanup(func() {
		if err := server.Stop(); err != nil {
			t.Errorf("Failed to stop server: %v", err)
		}
	})

	// Give server time to start
	time.Sleep(100 * time.Millisecond)
	return server
}

func TestServerStartStop(t *testing.T) {
	server := NewServer(testConfig("blog"))

	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	addr := server.GetAddr()
	if addr == "" {
		t.Fatal("Server address is empty")
	}

	if err := server.Stop(); err != nil {
		t.Fatalf("Failed to stop server: %v", err)
	}
}

func TestWebSocketConnection(t *testing.T) {
	verge.UnregisterAll()
	t.Cleanup(verge.UnregisterAll)
	verge.Register("blog", verge.New("Post", verge.Text("title", verge.Indexed())))

	server := startTestServer(t, "blog")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws://" + server.GetAddr() + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect WebSocket: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	if count := server.ClientCount(); count != 1 {
		t.Errorf("Expected 1 client, got %d", count)
	}

	// The welcome message carries the schema overview
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Failed to read welcome message: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if msg.Type != MessageTypeSchema {
		t.Errorf("Expected welcome message type %s, got %s", MessageTypeSchema, msg.Type)
	}

	var overview SchemaOverview
	if err := json.Unmarshal(msg.Data, &overview); err != nil {
		t.Fatalf("Failed to unmarshal schema overview: %v", err)
	}
	if len(overview.Apps) != 1 || overview.Apps[0].Name != "blog" {
		t.Errorf("Expected blog app in overview, got %+v", overview.Apps)
	}
	if len(overview.Apps[0].Models) != 1 || overview.Apps[0].Models[0].Table != "post" {
		t.Errorf("Expected post table in overview, got %+v", overview.Apps[0].Models)
	}
}

func TestMultipleClients(t *testing.T) {
	verge.UnregisterAll()
	t.Cleanup(verge.UnregisterAll)

	server := startTestServer(t, "blog")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws://" + server.GetAddr() + "/ws"

	numClients := 3
	for i := 0; i < numClients; i++ {
		conn, _, err := websocket.Dial(ctx, wsURL, nil)
		if err != nil {
			t.Fatalf("Failed to connect client %d: %v", i, err)
		}
		defer conn.Close(websocket.StatusNormalClosure, "")

		// Read welcome message
		if _, _, err := conn.Read(ctx); err != nil {
			t.Fatalf("Failed to read welcome message for client %d: %v", i, err)
		}
	}

	if count := server.ClientCount(); count != numClients {
		t.Errorf("Expected %d clients, got %d", numClients, count)
	}
}

func TestHandlerSyncComplete(t *testing.T) {
	verge.UnregisterAll()
	t.Cleanup(verge.UnregisterAll)
	verge.Register("blog", verge.New("Post", verge.Text("title")))

	server := startTestServer(t, "blog")
	handler := NewHandler(server, log.New(os.Stderr, "[test-handler] ", log.LstdFlags))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws://" + server.GetAddr() + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect WebSocket: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// Read welcome message
	if _, _, err := conn.Read(ctx); err != nil {
		t.Fatalf("Failed to read welcome message: %v", err)
	}

	report := &sync.Report{
		Apps: []sync.AppResult{
			{App: "blog", Models: []sync.ModelResult{
				{
					Model:   "Post",
					Table:   "post",
					Outcome: sync.Outcome{Status: sync.StatusCreated},
				},
			}},
		},
	}

	handler.OnSyncComplete(report)

	// Read sync report message
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Failed to read sync report: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if msg.Type != MessageTypeSyncReport {
		t.Errorf("Expected message type %s, got %s", MessageTypeSyncReport, msg.Type)
	}

	var received sync.Report
	if err := json.Unmarshal(msg.Data, &received); err != nil {
		t.Fatalf("Failed to unmarshal report: %v", err)
	}
	if len(received.Apps) != 1 || received.Apps[0].App != "blog" {
		t.Errorf("Report data mismatch: %+v", received)
	}

	// Read the refreshed schema overview
	_, data, err = conn.Read(ctx)
	if err != nil {
		t.Fatalf("Failed to read schema update: %v", err)
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to unmarshal schema message: %v", err)
	}
	if msg.Type != MessageTypeSchema {
		t.Errorf("Expected message type %s, got %s", MessageTypeSchema, msg.Type)
	}
}

func TestHealthEndpoint(t *testing.T) {
	verge.UnregisterAll()
	t.Cleanup(verge.UnregisterAll)

	server := startTestServer(t, "blog", "shop")

	resp, err := http.Get("http://" + server.GetAddr() + "/health")
	if err != nil {
		t.Fatalf("Failed to GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var health map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", health["status"])
	}
	if health["apps"] != float64(2) {
		t.Errorf("Expected 2 apps, got %v", health["apps"])
	}
}

func TestSchemaEndpoint(t *testing.T) {
	verge.UnregisterAll()
	t.Cleanup(verge.UnregisterAll)

	verge.Register("blog", verge.New("Post",
		verge.Text("title", verge.Indexed()),
		verge.Reference("author", "User"),
	))
	verge.Register("blog", verge.New("Draft", verge.Text("title")).SkipSync())

	server := startTestServer(t, "blog")

	resp, err := http.Get("http://" + server.GetAddr() + "/schema")
	if err != nil {
		t.Fatalf("Failed to GET /schema: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json, got %s", got)
	}

	var overview SchemaOverview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		t.Fatalf("Failed to decode schema overview: %v", err)
	}

	if len(overview.Apps) != 1 {
		t.Fatalf("Expected 1 app, got %d", len(overview.Apps))
	}
	models := overview.Apps[0].Models
	if len(models) != 2 {
		t.Fatalf("Expected 2 models, got %d", len(models))
	}

	post := models[0]
	if post.Name != "Post" || post.Table != "post" || post.SkipSync {
		t.Errorf("Post model mismatch: %+v", post)
	}
	if len(post.Fields) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(post.Fields))
	}
	if post.Fields[0].Index != "title_index" {
		t.Errorf("Expected title_index, got %q", post.Fields[0].Index)
	}
	if post.Fields[1].Ref != "User" {
		t.Errorf("Expected author ref User, got %q", post.Fields[1].Ref)
	}

	draft := models[1]
	if !draft.SkipSync {
		t.Error("Draft model should be marked skip_sync")
	}
}

func TestBuildSchemaOverviewUnknownApp(t *testing.T) {
	verge.UnregisterAll()
	t.Cleanup(verge.UnregisterAll)

	overview := BuildSchemaOverview([]string{"ghost"})
	if len(overview.Apps) != 1 {
		t.Fatalf("Expected 1 app entry, got %d", len(overview.Apps))
	}
	if len(overview.Apps[0].Models) != 0 {
		t.Errorf("Expected no models for unknown app, got %+v", overview.Apps[0].Models)
	}
}
