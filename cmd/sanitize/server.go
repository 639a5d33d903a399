package main

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pii-sanitizer/config"
	"pii-sanitizer/meta"
	"pii-sanitizer/piikind"
	"pii-sanitizer/processor"
	"pii-sanitizer/sanitizerlog"
	"pii-sanitizer/sanitizermetrics"
	"pii-sanitizer/value"
)

// Server wires the rule engine into an HTTP API, adapted from the proxy's
// own management.Server shape: a small struct holding its dependencies,
// methods registered onto a mux.Router in newRouter.
type Server struct {
	cfg     *config.Config
	log     *sanitizerlog.Logger
	metrics *sanitizermetrics.Registry
	engine  *processor.Engine
}

// newRouter builds the complete HTTP surface: POST /sanitize, GET
// {metricsPath}, GET {healthPath}.
func newRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/sanitize", s.handleSanitize).Methods(http.MethodPost)
	r.Handle(s.cfg.MetricsPath, s.metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc(s.cfg.HealthPath, s.handleHealth).Methods(http.MethodGet)
	return r
}

// sanitizeRequest is the POST /sanitize body: an arbitrary JSON document
// plus which piikind the whole document should be treated as (defaulting
// to "databag", which is hereditary to every descendant field).
type sanitizeRequest struct {
	PiiKind piikind.Kind    `json:"piiKind"`
	Payload json.RawMessage `json:"payload"`
}

type sanitizeResponse struct {
	Payload json.RawMessage `json:"payload"`
	Errors  []string        `json:"errors,omitempty"`
}

func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { s.metrics.ObserveDuration(time.Since(start)) }()

	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxPayloadBytes))
	if err != nil {
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	var req sanitizeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request JSON", http.StatusBadRequest)
		return
	}
	kind := req.PiiKind
	if kind == "" {
		kind = piikind.Databag
	}

	root, err := value.FromJSON(req.Payload)
	if err != nil {
		http.Error(w, "invalid payload JSON", http.StatusBadRequest)
		return
	}

	info := piikind.Of(kind, piikind.CapDatabag)
	rewritten := s.engine.ProcessRoot(root, info)

	out, err := value.ToJSON(rewritten)
	if err != nil {
		s.log.Errorf("sanitize_encode", "%v", err)
		http.Error(w, "encoding response", http.StatusInternalServerError)
		return
	}

	s.metrics.PayloadsProcessed.Inc()
	for _, remark := range rewritten.Meta.Remarks {
		s.metrics.RedactionsApplied.WithLabelValues(remark.Note.RuleID).Inc()
		s.log.RuleApplied("$", remark.Note.RuleID, remark.Type)
	}
	s.log.Summary("$", len(rewritten.Meta.Remarks), len(rewritten.Meta.Errors))

	resp := sanitizeResponse{Payload: out, Errors: collectErrors(rewritten.Meta)}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func collectErrors(m meta.Meta) []string {
	if len(m.Errors) == 0 {
		return nil
	}
	return append([]string(nil), m.Errors...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
