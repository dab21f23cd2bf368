package validator

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// RuleFunc builds a rule for a field from textual parameters, as written in a
// struct tag or a rule set.
type RuleFunc func(field string, value any, params []string, opts ...RuleOption) (Rule, error)

// Registry maps rule names to rule constructors. Names are case-insensitive.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]RuleFunc)}
}

// DefaultRegistry holds the built-in rules "empty" and "notinrange".
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("empty", emptyRule)
	r.Register("notinrange", notInRangeRule)
	return r
}

// Register adds or replaces the rule called name.
func (r *Registry) Register(name string, fn RuleFunc) {
	if name == "" || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[strings.ToLower(name)] = fn
}

// Has reports whether a rule called name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[strings.ToLower(name)]
	return ok
}

// Names returns the registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build constructs the rule called name for field.
func (r *Registry) Build(name, field string, value any, params []string, opts ...RuleOption) (Rule, error) {
	r.mu.RLock()
	fn, ok := r.rules[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return fn(field, value, params, opts...)
}

func emptyRule(field string, value any, params []string, opts ...RuleOption) (Rule, error) {
	if len(params) != 0 {
		return Rule{}, fmt.Errorf("%w: empty takes no parameters, got %d", ErrInvalidRuleParams, len(params))
	}
	return Empty(field, value, opts...), nil
}

func notInRangeRule(field string, value any, params []string, opts ...RuleOption) (Rule, error) {
	if len(params) != 2 {
		return Rule{}, fmt.Errorf("%w: notinrange takes min and max, got %d", ErrInvalidRuleParams, len(params))
	}
	return NotInRange(field, value, params[0], params[1], opts...), nil
}
