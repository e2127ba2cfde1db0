package conformance_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func newRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, serverURL+path, r)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// doRequest sends an authenticated request. The caller closes the body.
func doRequest(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	req := newRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// readJSON decodes the response body into a map and closes it.
func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal response (status %d): body=%s err=%v", resp.StatusCode, string(b), err)
	}
	return out
}

func mustStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d; body=%s", want, resp.StatusCode, string(b))
	}
}

// call performs the request, checks the status and decodes the body.
func call(t *testing.T, method, path string, body any, want int) map[string]any {
	t.Helper()
	resp := doRequest(t, method, path, body)
	mustStatus(t, resp, want)
	return readJSON(t, resp)
}

// resetServer restores the seeded state.
func resetServer(t *testing.T) {
	t.Helper()
	call(t, http.MethodPost, "/_propgrid/reset", nil, http.StatusOK)
}

// assertError checks the error envelope.
func assertError(t *testing.T, body map[string]any, category string) {
	t.Helper()
	if body["status"] != "error" {
		t.Errorf("status = %v, want error", body["status"])
	}
	if s, _ := body["message"].(string); s == "" {
		t.Error("message is empty")
	}
	if s, _ := body["correlationId"].(string); s == "" {
		t.Error("correlationId is empty")
	}
	if category != "" && body["category"] != category {
		t.Errorf("category = %v, want %s", body["category"], category)
	}
}

func results(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	raw, ok := body["results"].([]any)
	if !ok {
		t.Fatalf("results is %T, want array", body["results"])
	}
	out := make([]map[string]any, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("results[%d] is %T, want object", i, v)
		}
		out[i] = m
	}
	return out
}

func names(rows []map[string]any) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r["name"].(string)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
