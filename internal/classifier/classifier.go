// Package classifier maps free-text call descriptions to a call type via
// ordered keyword matching.
package classifier

import (
	"strings"

	"github.com/spec-kit/console-service/internal/domain"
)

// Rule pairs a keyword set with the type it indicates. Rules are evaluated
// in order; the first rule with any substring match wins.
type Rule struct {
	Keywords []string
	Type     domain.CallType
}

// Engine classifies descriptions deterministically against a rule table.
type Engine struct {
	rules           []Rule
	defaultCategory domain.CallType
}

// DefaultRules mirrors the keyword lists the console was trained on,
// with one rule per reachable call type. Complaints are tested first so
// billing disputes do not fall through to the broader support keywords.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"reclamo", "queja", "cobro", "factura", "reembolso", "cancelar"}, Type: domain.CallTypeComplaint},
		{Keywords: []string{"comprar", "plan", "precio", "upgrade", "contratar", "premium"}, Type: domain.CallTypeSales},
		{Keywords: []string{"problema", "error", "falla", "no funciona"}, Type: domain.CallTypeTechnicalSupport},
		{Keywords: []string{"consulta", "información", "ayuda", "pregunta"}, Type: domain.CallTypeTechnicalSupport},
	}
}

// New builds an engine. A nil rule set uses DefaultRules.
func New(rules []Rule, defaultCategory domain.CallType) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules, defaultCategory: defaultCategory}
}

// Classify returns the type of the first matching rule, or the default
// category when nothing matches. Empty and whitespace-only descriptions
// always fall to the default. No side effects.
func (e *Engine) Classify(description string) domain.CallType {
	lowered := strings.ToLower(strings.TrimSpace(description))
	if lowered == "" {
		return e.defaultCategory
	}
	for _, rule := range e.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Type
			}
		}
	}
	return e.defaultCategory
}
