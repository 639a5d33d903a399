package protocol

import (
	"testing"

	"pii-sanitizer/meta"
	"pii-sanitizer/piikind"
	"pii-sanitizer/processor"
	"pii-sanitizer/rule"
	"pii-sanitizer/value"
)

func buildEngine(t *testing.T) *processor.Engine {
	t.Helper()
	p, err := rule.NewProcessor(&rule.RuleConfig{
		DefaultHashKey: "k",
		Applications: map[piikind.Kind][]string{
			piikind.Email:   {"@email:replace"},
			piikind.IP:      {"@ip:replace"},
			piikind.Databag: {"@email:replace", "@ip:replace"},
		},
	})
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	return processor.New(p)
}

func TestEventProcessRewritesUserFields(t *testing.T) {
	eng := buildEngine(t)

	ev := NewEvent()
	ev.User = &User{
		Email:     meta.FromValue("jane@example.com"),
		IPAddress: meta.FromValue("10.0.0.5"),
		Username:  meta.FromValue("jane"),
	}

	ev.Process(eng)

	email, _ := ev.User.Email.Get()
	if email == "jane@example.com" {
		t.Errorf("expected user email to be rewritten")
	}
	ip, _ := ev.User.IPAddress.Get()
	if ip == "10.0.0.5" {
		t.Errorf("expected user ip to be rewritten")
	}
	username, _ := ev.User.Username.Get()
	if username != "jane" {
		t.Errorf("username has no application rule configured, expected it untouched, got %q", username)
	}
}

func TestEventProcessRewritesExtraMap(t *testing.T) {
	eng := buildEngine(t)

	ev := NewEvent()
	ev.Extra = value.Map{
		"contact": meta.FromValue(value.OfString("jane@example.com")),
	}

	ev.Process(eng)

	entry, ok := ev.Extra["contact"].Get()
	if !ok {
		t.Fatal("expected the contact entry to survive")
	}
	if entry.String == "jane@example.com" {
		t.Errorf("expected the databag-classified extra field to be rewritten")
	}
}
