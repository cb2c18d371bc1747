package service

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicepool/internal/preset"
	"github.com/louisbranch/dicepool/internal/services/engine"
	"github.com/louisbranch/dicepool/internal/services/mcp/domain"
)

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := New(engine.New(preset.Builtin()))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server
}

func connectInMemory(t *testing.T, ctx context.Context, server *Server) (*mcp.ClientSession, <-chan error) {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	return session, serveErr
}

// TestServeWithTransportServesAndStops ensures the server answers tool calls and exits on cancel.
func TestServeWithTransportServesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, serveErr := connectInMemory(t, ctx, newTestServer(t))
	defer session.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer callCancel()

	tools, err := session.ListTools(callCtx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"roll_dice_pool", "dice_pool_probability", "list_presets"} {
		if !names[want] {
			t.Fatalf("tool %q not registered; have %v", want, names)
		}
	}

	result, err := session.CallTool(callCtx, &mcp.CallToolParams{
		Name: "roll_dice_pool",
		Arguments: map[string]any{
			"dice":    []string{"6d6"},
			"success": 5,
			"seed":    42,
		},
	})
	if err != nil {
		t.Fatalf("call roll_dice_pool: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatalf("roll_dice_pool failed: %+v", result)
	}
	output := decodeStructuredContent[domain.RollDicePoolResult](t, result.StructuredContent)
	if output.Seed != 42 || len(output.Rolls) != 1 || len(output.Rolls[0].Dice) != 6 {
		t.Fatalf("output = %+v", output)
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestToolErrorsAreReportedToClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, _ := connectInMemory(t, ctx, newTestServer(t))
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "roll_dice_pool",
		Arguments: map[string]any{"preset": "missing"},
	})
	if err != nil {
		t.Fatalf("call roll_dice_pool: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error, got %+v", result)
	}
}

func TestPresetsResourceIsReadable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, _ := connectInMemory(t, ctx, newTestServer(t))
	defer session.Close()

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: domain.PresetsResourceURI})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(res.Contents) != 1 || !strings.Contains(res.Contents[0].Text, "shadowrun-test") {
		t.Fatalf("contents = %+v", res.Contents)
	}
}

// TestRunUnsupportedTransport ensures Run rejects unknown transport kinds.
func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), engine.New(preset.Builtin()), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestNewRequiresEngine(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for missing engine")
	}
}

func TestServeHTTP(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	base := "http://" + listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- newTestServer(t).serveHTTP(ctx, listener)
	}()

	resp, err := http.Get(base + "/mcp/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health = %d %q", resp.StatusCode, body)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, &mcp.StreamableClientTransport{Endpoint: base + "/mcp"}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	result, err := session.CallTool(clientCtx, &mcp.CallToolParams{Name: "list_presets", Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("call list_presets: %v", err)
	}
	output := decodeStructuredContent[domain.ListPresetsResult](t, result.StructuredContent)
	if len(output.Presets) != preset.Builtin().Len() {
		t.Fatalf("presets = %d", len(output.Presets))
	}
	session.Close()

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serveHTTP returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serveHTTP did not stop after cancel")
	}
}
