package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pii-sanitizer/config"
	"pii-sanitizer/sanitizerlog"
	"pii-sanitizer/sanitizermetrics"
)

// testServer builds a Server whose rule config actually wires the built-in
// @email/@ip rules to the "databag" piikind — out of the box, an empty
// applications map (spec.md §6) means no rule runs against any field, so
// exercising the HTTP surface needs a minimal rules-config file on disk,
// just as a real deployment would supply one.
func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	rulesConfig := `{"applications": {"databag": ["@email:replace", "@ip:replace"]}}`
	if err := os.WriteFile(path, []byte(rulesConfig), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := config.Load("")
	cfg.DefaultHashKey = "test-key"
	cfg.RuleConfigFile = path

	engine, err := buildEngine(cfg)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}

	return &Server{
		cfg:     cfg,
		log:     sanitizerlog.New("TEST", "error"),
		metrics: sanitizermetrics.New(),
		engine:  engine,
	}
}

func TestHandleSanitizeRedactsEmailInPayload(t *testing.T) {
	s := testServer(t)
	router := newRouter(s)

	body := `{"piiKind":"databag","payload":{"email":"jane@example.com","note":"hello"}}`
	req := httptest.NewRequest(http.MethodPost, "/sanitize", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp sanitizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if strings.Contains(string(resp.Payload), "jane@example.com") {
		t.Errorf("expected email to be redacted, got payload %s", resp.Payload)
	}
}

func TestHandleSanitizeRejectsInvalidJSON(t *testing.T) {
	s := testServer(t)
	router := newRouter(s)

	req := httptest.NewRequest(http.MethodPost, "/sanitize", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHealthReportsOK(t *testing.T) {
	s := testServer(t)
	router := newRouter(s)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s, want status ok", rec.Body.String())
	}
}

func TestHandleMetricsServesPrometheusFormat(t *testing.T) {
	s := testServer(t)
	router := newRouter(s)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
