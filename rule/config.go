package rule

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"pii-sanitizer/detectors"
	"pii-sanitizer/piikind"
)

// RuleConfig is the JSON-driven rule configuration described in spec.md §6:
// a table of named rules plus an "applications" map from piikind.Kind to
// the ordered list of rule ids that should run against fields of that kind.
type RuleConfig struct {
	Rules        map[string]RuleSpec       `json:"rules"`
	Applications map[piikind.Kind][]string `json:"applications"`

	// DefaultHashKey is used by keyless Hash redactions when neither the
	// redaction nor the config overrides it. Leaving this empty means a
	// keyless hash rule that is user-defined or named by an application
	// fails to build (ErrMissingHashKey) rather than silently hashing under
	// an empty key — the Open Question 1 decision.
	DefaultHashKey string `json:"-"`
}

// wireConfig mirrors RuleConfig's JSON-visible shape (DefaultHashKey is
// supplied programmatically, never via the wire format).
type wireConfig struct {
	Rules        map[string]RuleSpec       `json:"rules"`
	Applications map[piikind.Kind][]string `json:"applications"`
}

// ParseConfig decodes a RuleConfig from its JSON wire form.
func ParseConfig(data []byte, defaultHashKey string) (*RuleConfig, error) {
	var w wireConfig
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("rule: parsing config: %w", err)
	}
	return &RuleConfig{Rules: w.Rules, Applications: w.Applications, DefaultHashKey: defaultHashKey}, nil
}

// Processor compiles a RuleConfig (merged with the built-in catalog) into a
// ready-to-use set of resolved Rule objects.
type Processor struct {
	config *RuleConfig
	rules  map[string]*Rule
	// applications is Applications with every alias already resolved to the
	// rule id it ultimately names, preserving order and duplicates as given.
	applications map[piikind.Kind][]*Rule
}

// NewProcessor merges cfg's rules over the built-in catalog (user rules of
// the same name win), resolves aliases (detecting cycles), compiles every
// pattern, validates every hash rule's algorithm, and validates that every
// user-defined or application-named hash rule has a key (a keyless built-in
// hash rule that no application names is omitted), and returns the fully
// built Processor — or the first construction-time error encountered,
// matching spec.md §7's "fail fast at config-build time, not at
// process-value time" design.
func NewProcessor(cfg *RuleConfig) (*Processor, error) {
	merged := make(map[string]RuleSpec, len(Builtins)+len(cfg.Rules))
	for id, spec := range Builtins {
		merged[id] = spec
	}
	for id, spec := range cfg.Rules {
		merged[id] = spec
	}

	resolved := make(map[string]RuleSpec, len(merged))
	for id := range merged {
		spec, err := resolveAlias(merged, id, nil)
		if err != nil {
			return nil, err
		}
		resolved[id] = spec
	}

	referenced := make(map[string]bool)
	for _, ids := range cfg.Applications {
		for _, id := range ids {
			referenced[id] = true
		}
	}

	p := &Processor{config: cfg, rules: make(map[string]*Rule, len(resolved))}
	for id, spec := range resolved {
		r, err := buildRule(id, spec, cfg.DefaultHashKey)
		if err != nil {
			_, userRule := cfg.Rules[id]
			if errors.Is(err, ErrMissingHashKey) && !userRule && !referenced[id] {
				// A keyless built-in hash rule no application names is left
				// out of the processor instead of failing construction.
				continue
			}
			return nil, err
		}
		p.rules[id] = r
	}

	p.applications = make(map[piikind.Kind][]*Rule, len(cfg.Applications))
	for kind, ids := range cfg.Applications {
		for _, id := range ids {
			r, ok := p.rules[id]
			if !ok {
				return nil, fmt.Errorf("applications[%s] names unknown rule %q", kind, id)
			}
			p.applications[kind] = append(p.applications[kind], r)
		}
	}

	return p, nil
}

// RulesFor returns the ordered rules that apply to fields classified as
// kind, or nil if none do.
func (p *Processor) RulesFor(kind piikind.Kind) []*Rule {
	return p.applications[kind]
}

// Rule looks up a single rule by id, for direct (non-application-table)
// invocation — e.g. a protocol field annotated with a specific rule rather
// than a whole piikind.
func (p *Processor) Rule(id string) (*Rule, bool) {
	r, ok := p.rules[id]
	return r, ok
}

// resolveAlias follows a chain of TypeAlias rule types to the terminal,
// non-alias RuleSpec, detecting cycles via the seen path.
func resolveAlias(rules map[string]RuleSpec, id string, seen []string) (RuleSpec, error) {
	for _, s := range seen {
		if s == id {
			return RuleSpec{}, fmt.Errorf("rule: alias cycle detected: %v -> %s", seen, id)
		}
	}
	spec, ok := rules[id]
	if !ok {
		return RuleSpec{}, fmt.Errorf("rule: unknown rule id %q", id)
	}
	if spec.Type.Kind != TypeAlias {
		return spec, nil
	}
	target, err := resolveAlias(rules, spec.Type.Rule, append(seen, id))
	if err != nil {
		return RuleSpec{}, err
	}
	if spec.Note != "" {
		target.Note = spec.Note
	}
	return target, nil
}

// buildRule compiles id/spec into a ready-to-apply Rule, validating that
// Hash redactions have a usable key.
func buildRule(id string, spec RuleSpec, defaultHashKey string) (*Rule, error) {
	r := &Rule{ID: id, Spec: spec, Redaction: spec.Redaction}

	if spec.Redaction.Kind == RedactHash {
		if _, err := spec.Redaction.Algorithm.newHash(nil); err != nil {
			return nil, fmt.Errorf("rule %q: %w", id, err)
		}
	}

	if spec.Redaction.Kind == RedactHash && spec.Redaction.Key == nil {
		if defaultHashKey == "" {
			return nil, fmt.Errorf("rule %q: %w", id, ErrMissingHashKey)
		}
		key := defaultHashKey
		r.Redaction.Key = &key
	}

	switch spec.Type.Kind {
	case TypePattern:
		re, err := regexp.Compile(spec.Type.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: compiling pattern: %w", id, err)
		}
		r.pattern = &compiledPattern{re: re, replaceGroups: spec.Type.ReplaceGroups}
	case TypeRemovePair:
		re, err := regexp.Compile(spec.Type.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: compiling removePair pattern: %w", id, err)
		}
		r.pattern = &compiledPattern{re: re}
	case TypeEmail:
		r.detector = detectors.EmailRegex
	case TypeIpv4:
		r.detector = detectors.IPv4Regex
	case TypeIpv6:
		r.detector = detectors.IPv6Regex
	case TypeIP:
		r.detector = nil // two-pass Ipv4-then-Ipv6 composition, see apply.go
	case TypeCreditcard:
		r.detector = detectors.CreditCardRegex
	case TypeRemove, TypeAlias:
		// no compiled matcher needed: Remove always matches the whole value,
		// Alias is resolved away before buildRule ever sees it.
	}

	return r, nil
}

// Detector returns the compiled regex this rule matches against, for rule
// types backed by one of the engine's built-in detectors or a user pattern.
// TypeIP is handled separately as a two-pass composition (apply.go) and has
// no single detector regex, so it returns nil here.
func (r *Rule) Detector() *regexp.Regexp {
	if r.pattern != nil {
		return r.pattern.re
	}
	return r.detector
}
