package sanitizermetrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewRegistersAllCollectorsWithoutPanicking(t *testing.T) {
	reg := New()
	reg.PayloadsProcessed.Inc()
	reg.RedactionsApplied.WithLabelValues("@email:mask").Inc()
	reg.ConfigErrors.Inc()
	reg.ObserveDuration(5 * time.Millisecond)
}

func TestHandlerServesExposedCounters(t *testing.T) {
	reg := New()
	reg.PayloadsProcessed.Inc()
	reg.RedactionsApplied.WithLabelValues("@ip:replace").Inc()

	srv := httptest.NewServer(reg.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 64*1024)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	if !strings.Contains(body, "sanitizer_payloads_processed_total") {
		t.Errorf("metrics output missing payloads counter:\n%s", body)
	}
	if !strings.Contains(body, "sanitizer_redactions_applied_total") {
		t.Errorf("metrics output missing redactions counter:\n%s", body)
	}
}
