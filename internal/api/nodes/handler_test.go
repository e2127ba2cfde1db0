package nodes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnwards/propgrid/internal/api"
	"github.com/johnwards/propgrid/internal/api/nodes"
	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/seed"
	"github.com/johnwards/propgrid/internal/store"
	"github.com/johnwards/propgrid/internal/testhelpers"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := testhelpers.NewMigratedDB(t)
	if err := seed.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mux := http.NewServeMux()
	nodes.RegisterRoutes(mux, store.New(db))

	srv := httptest.NewServer(api.Chain(mux, api.RequestID()))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestList(t *testing.T) {
	srv := setupTestServer(t)

	var all api.CollectionResponse[domain.Node]
	if err := json.NewDecoder(get(t, srv.URL+"/v1/nodes").Body).Decode(&all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(all.Results) != 5 {
		t.Errorf("nodes = %d, want 5", len(all.Results))
	}

	var lights api.CollectionResponse[domain.Node]
	if err := json.NewDecoder(get(t, srv.URL+"/v1/nodes?kind=light").Body).Decode(&lights); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(lights.Results) != 2 {
		t.Errorf("lights = %d, want 2", len(lights.Results))
	}
}

func TestCreateGetDelete(t *testing.T) {
	srv := setupTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/nodes", map[string]string{"kind": "geometry", "name": "Sphere"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created domain.Node
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("id should be generated")
	}

	resp = get(t, srv.URL+"/v1/nodes/"+created.ID)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d, want 200", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/nodes/"+created.ID, http.NoBody)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	_ = del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", del.StatusCode)
	}

	if resp := get(t, srv.URL+"/v1/nodes/"+created.ID); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", resp.StatusCode)
	}
}

func TestCreate_Validation(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"missing name", map[string]string{"kind": "light"}, http.StatusBadRequest},
		{"unknown kind", map[string]string{"kind": "sound", "name": "Beep"}, http.StatusBadRequest},
		{"duplicate id", map[string]string{"id": "light-key", "kind": "light", "name": "Again"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/v1/nodes", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}
