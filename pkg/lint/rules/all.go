package rules

import "github.com/eds-tools/eds-go/pkg/lint"

// RegisterAllRules registers all lint rules with the given registry.
func RegisterAllRules(registry *lint.Registry) {
	RegisterMandatoryRules(registry)
	RegisterRangeRules(registry)
	RegisterConsistencyRules(registry)
}

// NewDefaultRegistry creates a new registry with all rules registered.
func NewDefaultRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	RegisterAllRules(registry)
	return registry
}
