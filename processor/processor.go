// Package processor implements the type-directed recursive traversal that
// walks a value.Value tree applying a rule.Processor's rules according to
// each node's piikind.ValueInfo (spec.md §4.5). The original implementation
// derives this traversal per-type via a Processor/ProcessAnnotatedValue
// trait pair generated by a derive macro; Go has no derive macros, so this
// package hand-writes the equivalent dispatch as a single recursive
// function over value.Value's tagged union plus typed entry points for the
// generic containers (value.GenArray, value.GenMap, value.Values).
package processor

import (
	"strconv"

	"pii-sanitizer/meta"
	"pii-sanitizer/piikind"
	"pii-sanitizer/rule"
	"pii-sanitizer/value"
)

// Engine pairs a compiled rule.Processor with the traversal that applies
// it to a payload.
type Engine struct {
	Rules *rule.Processor
}

// New builds an Engine around an already-compiled rule.Processor.
func New(p *rule.Processor) *Engine {
	return &Engine{Rules: p}
}

// ProcessRoot walks root's whole tree, applying e's rules wherever info (or
// a descendant's own annotation) names a piikind. It returns the rewritten
// value.
func (e *Engine) ProcessRoot(root meta.Annotated[value.Value], info piikind.ValueInfo) meta.Annotated[value.Value] {
	return e.processValue(root, info, "")
}

// ProcessString applies e's rules directly to a string field, without
// boxing it into a value.Value first — the common case for the typed
// protocol fields in pii-sanitizer/protocol, which are meta.Annotated[string]
// rather than meta.Annotated[value.Value]. No key path is passed, so
// removePair rules never match a field processed here.
func (e *Engine) ProcessString(a meta.Annotated[string], info piikind.ValueInfo) meta.Annotated[string] {
	s, present := a.Get()
	if !present || info.PiiKind == nil {
		return a
	}
	boxed := meta.New(value.OfString(s), a.Meta)
	out := e.processScalar(boxed, value.OfString(s), info, "")
	v, ok := out.Get()
	if !ok {
		return meta.Annotated[string]{Meta: out.Meta}
	}
	if v.Kind != value.KindString {
		return meta.Annotated[string]{Meta: out.Meta}
	}
	return meta.New(v.String, out.Meta)
}

// ProcessMap applies e's rules to every entry of a value.Map field (e.g.
// Request.Headers, User.Extra), recursing exactly as processMap does for a
// boxed value.Value map.
func (e *Engine) ProcessMap(m value.Map, info piikind.ValueInfo) value.Map {
	boxed := meta.FromValue(value.OfMap(m))
	out := e.processMap(boxed, value.OfMap(m), info, "")
	v, ok := out.Get()
	if !ok {
		return value.Map{}
	}
	return v.Map
}

// processValue is the central dispatch: it applies e's rules to scalar
// leaves directly, and recurses into Array/Map children, deriving each
// child's ValueInfo from its parent (piikind.ValueInfo.Derive). path is the
// dotted key path leading to this node (spec.md §3's meta.Path), used by
// removePair rules to match a specific nesting level rather than a bare key.
func (e *Engine) processValue(a meta.Annotated[value.Value], info piikind.ValueInfo, path string) meta.Annotated[value.Value] {
	v, present := a.Get()
	if !present {
		return a
	}

	switch v.Kind {
	case value.KindArray:
		return e.processArray(a, v, info, path)
	case value.KindMap:
		return e.processMap(a, v, info, path)
	default:
		return e.processScalar(a, v, info, path)
	}
}

// processScalar applies every rule named by info's piikind to a leaf value.
// String values go to processStringScalar, which runs the chunk-aware
// pattern/detector rules (preserving prior redactions) and falls back to the
// value-level rules (Remove/RemovePair) only when no chunk-capable rule is
// configured for the kind; non-string values go straight to the value-level
// rules.
func (e *Engine) processScalar(a meta.Annotated[value.Value], v value.Value, info piikind.ValueInfo, path string) meta.Annotated[value.Value] {
	if info.PiiKind == nil {
		return a
	}
	rules := e.Rules.RulesFor(*info.PiiKind)
	if len(rules) == 0 {
		return a
	}

	if v.Kind == value.KindString {
		return e.processStringScalar(a, v.String, rules, path)
	}

	out, fired := e.applyValueRules(a, rules, path)
	if !fired {
		return a
	}
	return coerceKindMismatch(v.Kind, out)
}

// processStringScalar runs every chunk-capable rule (Pattern, Email, Ipv4,
// Ipv6, IP, Creditcard) against text in sequence. If at least one such rule
// is present in rules — regardless of whether it actually matched anything,
// matching original_source/src/rule.rs's process_chunks returning Ok
// unconditionally for those types — the chunk-rewritten string wins.
// Otherwise (only Remove/RemovePair rules are configured for this kind)
// value-level rules run instead, and a result of the wrong kind (e.g. a
// Replace redaction whose newValue isn't a string) collapses to null.
func (e *Engine) processStringScalar(a meta.Annotated[value.Value], text string, rules []*rule.Rule, path string) meta.Annotated[value.Value] {
	m := a.Meta
	anyChunkRule := false
	for _, r := range rules {
		if r.IsRemove() || r.IsRemovePair() {
			continue
		}
		anyChunkRule = true
		var err error
		text, m, err = r.ApplyToString(text, m)
		if err != nil {
			m.AddError(err.Error())
		}
	}
	if anyChunkRule {
		return meta.New(value.OfString(text), m)
	}

	fallback := meta.New(value.OfString(text), m)
	out, fired := e.applyValueRules(fallback, rules, path)
	if !fired {
		return fallback
	}
	return coerceKindMismatch(value.KindString, out)
}

// applyValueRules runs the value-level rule types (Remove, RemovePair)
// against a in order, stopping at the first one that applies — mirroring
// process_value's per-rule Ok/Err short-circuit. Pattern/Email/Ipv4/Ipv6/
// IP/Creditcard rules never match at this level; only chunk-based string
// rewriting reaches them.
func (e *Engine) applyValueRules(a meta.Annotated[value.Value], rules []*rule.Rule, path string) (meta.Annotated[value.Value], bool) {
	for _, r := range rules {
		switch {
		case r.IsRemove():
			return r.ApplyToValue(a), true
		case r.IsRemovePair():
			if path != "" && r.MatchesKey(path) {
				return r.ApplyToValue(a), true
			}
		}
	}
	return a, false
}

// coerceKindMismatch implements spec.md §7's "type mismatch during scalar
// rewrite → coerce to null": a Remove/RemovePair rule's redaction may
// produce a value of a different kind than the field originally held (e.g.
// a Replace redaction with a string newValue applied to a field that was a
// bool); when that happens the field becomes absent rather than silently
// changing type, while the remark explaining the rewrite is kept.
func coerceKindMismatch(want value.Kind, a meta.Annotated[value.Value]) meta.Annotated[value.Value] {
	v, ok := a.Get()
	if !ok || v.Kind == want {
		return a
	}
	return meta.Annotated[value.Value]{Meta: a.Meta}
}

// processArray recurses into each element, deriving the element's
// ValueInfo from the array's own (spec.md §4.5's Array<T> case) and
// extending path with the element's index.
func (e *Engine) processArray(a meta.Annotated[value.Value], v value.Value, info piikind.ValueInfo, path string) meta.Annotated[value.Value] {
	preLen := len(v.Array)
	out := make(value.Array, 0, preLen)
	for i, elem := range v.Array {
		out = append(out, e.processValue(elem, info, joinPath(path, strconv.Itoa(i))))
	}
	m := a.Meta
	m.RecordLengthChange(preLen, len(out))
	return meta.New(value.OfArray(out), m)
}

// processMap recurses into each entry. Every entry's dotted path (spec.md
// §3's meta.Path) is recorded on its Meta before it's checked against this
// kind's removePair rules or recursed into, so a removePair pattern can
// anchor to a specific nesting level instead of matching any occurrence of
// a bare key anywhere in the tree.
func (e *Engine) processMap(a meta.Annotated[value.Value], v value.Value, info piikind.ValueInfo, path string) meta.Annotated[value.Value] {
	var rules []*rule.Rule
	var removePairRules []*rule.Rule
	if info.PiiKind != nil {
		rules = e.Rules.RulesFor(*info.PiiKind)
		for _, r := range rules {
			if r.IsRemovePair() {
				removePairRules = append(removePairRules, r)
			}
		}
	}

	preLen := len(v.Map)
	out := make(value.Map, preLen)
	for _, key := range v.Map.SortedKeys() {
		entry := v.Map[key]
		childPath := joinPath(path, key)
		entry.Meta.SetPath(childPath)

		if rp := matchingRule(removePairRules, childPath); rp != nil {
			out[key] = rp.ApplyToValue(entry)
			continue
		}
		out[key] = e.processValue(entry, info, childPath)
	}
	m := a.Meta
	m.RecordLengthChange(preLen, len(out))
	return meta.New(value.OfMap(out), m)
}

func matchingRule(rules []*rule.Rule, path string) *rule.Rule {
	for _, r := range rules {
		if r.MatchesKey(path) {
			return r
		}
	}
	return nil
}

func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}
