// Command sanitize is the PII redaction HTTP service.
//
// It accepts an arbitrary JSON payload, walks it applying a declarative
// rule configuration (built-in catalog merged with an optional
// rules-config file), and returns the redacted payload alongside the
// remarks that explain every change.
//
// Usage:
//
//	./sanitize
//	SANITIZER_RULE_CONFIG_FILE=rules.json SANITIZER_HASH_KEY=secret ./sanitize
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pii-sanitizer/config"
	"pii-sanitizer/processor"
	"pii-sanitizer/rule"
	"pii-sanitizer/sanitizerlog"
	"pii-sanitizer/sanitizermetrics"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML service config file")
	flag.Parse()

	cfg := config.Load(*configPath)
	log := sanitizerlog.New("SANITIZE", cfg.LogLevel)
	metricsReg := sanitizermetrics.New()

	printBanner(cfg)

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("rule_config_build", "%v", err)
	}

	srv := &Server{cfg: cfg, log: log, metrics: metricsReg, engine: engine}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutdown", "received signal, shutting down…")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Errorf("shutdown", "%v", err)
		}
	}()

	log.Infof("listen", "listening on %s", cfg.ListenAddress)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen", "%v", err)
	}
}

// buildEngine merges the optional rules-config file over the built-in
// catalog and compiles it into a processor.Engine, failing fast at
// startup rather than at request time (spec.md §7).
func buildEngine(cfg *config.Config) (*processor.Engine, error) {
	ruleCfg := &rule.RuleConfig{DefaultHashKey: cfg.DefaultHashKey}
	if cfg.RuleConfigFile != "" {
		data, err := os.ReadFile(cfg.RuleConfigFile)
		if err != nil {
			return nil, fmt.Errorf("reading rule config: %w", err)
		}
		parsed, err := rule.ParseConfig(data, cfg.DefaultHashKey)
		if err != nil {
			return nil, err
		}
		ruleCfg = parsed
	}

	proc, err := rule.NewProcessor(ruleCfg)
	if err != nil {
		return nil, fmt.Errorf("building rule processor: %w", err)
	}
	return processor.New(proc), nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf(`
╔══════════════════════════════════════════════════════╗
║            PII Sanitizer  (Go)                        ║
╚══════════════════════════════════════════════════════╝
  Listen address    : %s
  Rule config file  : %s
  Metrics path      : %s
  Health path       : %s

`, cfg.ListenAddress, orNone(cfg.RuleConfigFile), cfg.MetricsPath, cfg.HealthPath)
}

func orNone(s string) string {
	if s == "" {
		return "(built-in catalog only)"
	}
	return s
}
