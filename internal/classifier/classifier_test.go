package classifier

import (
	"testing"

	"github.com/spec-kit/console-service/internal/domain"
)

func TestClassify(t *testing.T) {
	engine := New(nil, domain.CallTypeTechnicalSupport)

	tests := []struct {
		name        string
		description string
		want        domain.CallType
	}{
		{"empty falls to default", "", domain.CallTypeTechnicalSupport},
		{"whitespace falls to default", "   ", domain.CallTypeTechnicalSupport},
		{"no keyword falls to default", "buenos días", domain.CallTypeTechnicalSupport},
		{"technical problem", "tengo un problema con el servicio", domain.CallTypeTechnicalSupport},
		{"service not working", "el internet no funciona", domain.CallTypeTechnicalSupport},
		{"general question", "una consulta sobre mi cuenta", domain.CallTypeTechnicalSupport},
		{"billing complaint", "quiero hacer un reclamo por el cobro", domain.CallTypeComplaint},
		{"cancellation", "deseo cancelar el servicio", domain.CallTypeComplaint},
		{"purchase intent", "quiero comprar un plan premium", domain.CallTypeSales},
		{"pricing", "cuál es el precio del upgrade", domain.CallTypeSales},
		{"complaint wins over sales keywords", "reclamo por el precio del plan", domain.CallTypeComplaint},
		{"uppercase input", "TENGO UN PROBLEMA", domain.CallTypeTechnicalSupport},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Classify(tc.description); got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.description, got, tc.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	engine := New(nil, domain.CallTypeTechnicalSupport)
	const description = "reclamo por el precio del plan premium"

	first := engine.Classify(description)
	for i := 0; i < 10; i++ {
		if got := engine.Classify(description); got != first {
			t.Fatalf("classification changed between runs: %q then %q", first, got)
		}
	}
}

func TestClassifyCustomRules(t *testing.T) {
	rules := []Rule{
		{Keywords: []string{"venta"}, Type: domain.CallTypeSales},
	}
	engine := New(rules, domain.CallTypeComplaint)

	if got := engine.Classify("venta directa"); got != domain.CallTypeSales {
		t.Errorf("custom rule ignored, got %q", got)
	}
	if got := engine.Classify("problema"); got != domain.CallTypeComplaint {
		t.Errorf("expected custom default, got %q", got)
	}
}
