package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/contract"
	toolx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/tool"
)

func TestToolParamsConversion(t *testing.T) {
	t.Parallel()

	params, err := toolParams(toolx.Infos())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(params) != 3 {
		t.Fatalf("expected 3 tool params, got %d", len(params))
	}
	if params[0].Function.Name != toolx.ToolLeadsFind {
		t.Fatalf("unexpected first tool: %s", params[0].Function.Name)
	}
	if params[1].Function.Parameters == nil {
		t.Fatal("expected parameters schema for leads.save")
	}
	if _, ok := params[1].Function.Parameters["properties"]; !ok {
		t.Fatalf("expected properties in schema: %v", params[1].Function.Parameters)
	}
}

func completionJSON(content string, toolCalls ...map[string]any) map[string]any {
	message := map[string]any{
		"role":    "assistant",
		"content": content,
	}
	if len(toolCalls) > 0 {
		message["tool_calls"] = toolCalls
	}
	return map[string]any{
		"id":     "cmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{"index": 0, "message": message, "finish_reason": "stop"},
		},
	}
}

func TestRespondExecutesToolCalls(t *testing.T) {
	t.Parallel()

	turn := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		turn++
		w.Header().Set("Content-Type", "application/json")
		switch turn {
		case 1:
			json.NewEncoder(w).Encode(completionJSON("", map[string]any{
				"id":   "call_1",
				"type": "function",
				"function": map[string]any{
					"name":      toolx.ToolLeadsFindAndSave,
					"arguments": `{"city_state":"Boston, MA"}`,
				},
			}))
		default:
			json.NewEncoder(w).Encode(completionJSON("Saved 2 companies to data/boston_ma_pool_companies.csv."))
		}
	}))
	t.Cleanup(srv.Close)

	client := openaisdk.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
	)

	var gotTool string
	var gotArgs map[string]any
	execute := func(_ context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		gotTool = tool
		gotArgs = args
		return contractx.ToolResult{
			Tool: tool,
			Result: contractx.FindAndSaveOutput{
				Status:    contractx.StatusSuccess,
				Path:      "data/boston_ma_pool_companies.csv",
				Count:     2,
				CityState: "Boston, MA",
			},
		}, nil
	}

	r, err := New(&client, Options{Model: "test-model"}, toolx.Infos(), execute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := []openaisdk.ChatCompletionMessageParamUnion{
		openaisdk.UserMessage("find pool companies in Boston, MA and save them"),
	}
	reply, updated, err := r.Respond(context.Background(), history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotTool != toolx.ToolLeadsFindAndSave {
		t.Fatalf("unexpected tool executed: %s", gotTool)
	}
	if gotArgs["city_state"] != "Boston, MA" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
	if reply == "" {
		t.Fatal("expected non-empty reply")
	}
	// user + assistant(tool call) + tool result + final assistant
	if len(updated) != 4 {
		t.Fatalf("unexpected history length: %d", len(updated))
	}
}

func TestRespondPropagatesToolError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionJSON("", map[string]any{
			"id":   "call_1",
			"type": "function",
			"function": map[string]any{
				"name":      toolx.ToolLeadsFind,
				"arguments": `{"city_state":"Boston, MA"}`,
			},
		}))
	}))
	t.Cleanup(srv.Close)

	client := openaisdk.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
	)

	upstream := &contractx.UpstreamError{Endpoint: "places:searchText", Status: 500, BodySnippet: "boom"}
	execute := func(_ context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{}, fmt.Errorf("tool=%s: %w", tool, upstream)
	}

	r, err := New(&client, Options{Model: "test-model"}, toolx.Infos(), execute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err = r.Respond(context.Background(), []openaisdk.ChatCompletionMessageParamUnion{
		openaisdk.UserMessage("find pool companies in Boston, MA"),
	})
	if err == nil {
		t.Fatal("expected propagated upstream error")
	}
}

func TestNewRequiresClientAndModel(t *testing.T) {
	t.Parallel()

	execute := func(context.Context, string, map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{}, nil
	}

	if _, err := New(nil, Options{Model: "m"}, nil, execute); err == nil {
		t.Fatal("expected error for nil client")
	}

	client := openaisdk.NewClient(option.WithAPIKey("k"))
	if _, err := New(&client, Options{}, nil, execute); err == nil {
		t.Fatal("expected error for missing model")
	}
	if _, err := New(&client, Options{Model: "m"}, nil, nil); err == nil {
		t.Fatal("expected error for nil executor")
	}
}
