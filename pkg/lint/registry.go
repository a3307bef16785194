package lint

import (
	"slices"
	"sync"

	"github.com/eds-tools/eds-go/pkg/eds"
)

// Registry holds the data sheet rules a validator runs, together with the
// per-rule enablement and severity overrides taken from configuration. One
// registry is shared by every file of a batch, so reads may run concurrently
// with each other but not with reconfiguration.
type Registry struct {
	mu        sync.RWMutex
	rules     map[string]Rule
	enabled   map[string]bool
	severity  map[string]Severity
	ruleOrder []string // registration order, for deterministic output
}

// NewRegistry returns a registry with no rules. Most callers want
// rules.NewDefaultRegistry instead.
func NewRegistry() *Registry {
	return &Registry{
		rules:    make(map[string]Rule),
		enabled:  make(map[string]bool),
		severity: make(map[string]Severity),
	}
}

// Register adds rule, enabled at its default severity. Registering an ID
// again replaces the rule and resets its overrides but keeps its place in
// the report order.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if _, exists := r.rules[id]; !exists {
		r.ruleOrder = append(r.ruleOrder, id)
	}
	r.rules[id] = rule
	r.enabled[id] = true
	r.severity[id] = rule.DefaultSeverity()
}

// Enable turns a rule back on.
func (r *Registry) Enable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[id] = true
}

// Disable stops a rule from running, as the lint.disabled config key does.
func (r *Registry) Disable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[id] = false
}

// SetSeverity overrides the severity reported for a rule's violations.
func (r *Registry) SetSeverity(id string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.severity[id] = severity
}

// IsEnabled reports whether the rule with id runs.
func (r *Registry) IsEnabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[id]
}

// Severity returns the severity violations of id are reported with.
// Unknown rules report as errors.
func (r *Registry) Severity(id string) Severity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sev, ok := r.severity[id]; ok {
		return sev
	}
	if rule, ok := r.rules[id]; ok {
		return rule.DefaultSeverity()
	}
	return SeverityError
}

// Rule returns a rule by ID, or nil if not found.
func (r *Registry) Rule(id string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[id]
}

// EnabledRules returns the rules that run, in report order.
func (r *Registry) EnabledRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []Rule
	for _, id := range r.ruleOrder {
		if r.enabled[id] {
			rules = append(rules, r.rules[id])
		}
	}
	return rules
}

// AllRules returns every registered rule in report order.
func (r *Registry) AllRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, len(r.ruleOrder))
	for i, id := range r.ruleOrder {
		rules[i] = r.rules[id]
	}
	return rules
}

// RulesByCategory returns the rules of one category such as "mandatory".
func (r *Registry) RulesByCategory(category string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []Rule
	for _, id := range r.ruleOrder {
		if r.rules[id].Category() == category {
			rules = append(rules, r.rules[id])
		}
	}
	return rules
}

// Categories returns the categories in use, sorted.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var categories []string
	for _, rule := range r.rules {
		if !slices.Contains(categories, rule.Category()) {
			categories = append(categories, rule.Category())
		}
	}
	slices.Sort(categories)
	return categories
}

// RunRules checks f against every enabled rule. Unlike Validator.Validate it
// neither splits by severity nor traces.
func (r *Registry) RunRules(f *eds.File) []Violation {
	var violations []Violation
	for _, rule := range r.EnabledRules() {
		violations = append(violations, r.check(rule, f)...)
	}
	return violations
}

// check runs one rule and stamps its violations with the rule ID, when the
// rule left it out, and the configured severity.
func (r *Registry) check(rule Rule, f *eds.File) []Violation {
	found := rule.Check(f)
	for i := range found {
		if found[i].RuleID == "" {
			found[i].RuleID = rule.ID()
		}
		found[i].Severity = r.Severity(found[i].RuleID)
	}
	return found
}

// Count returns how many rules are registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// EnabledCount returns how many registered rules run.
func (r *Registry) EnabledCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.ruleOrder {
		if r.enabled[id] {
			count++
		}
	}
	return count
}

// EnableCategory turns on every rule of category.
func (r *Registry) EnableCategory(category string) {
	r.setCategory(category, true)
}

// DisableCategory turns off every rule of category.
func (r *Registry) DisableCategory(category string) {
	r.setCategory(category, false)
}

func (r *Registry) setCategory(category string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rule := range r.rules {
		if rule.Category() == category {
			r.enabled[id] = enabled
		}
	}
}
