package rule

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestToTOML_Sections(t *testing.T) {
	r := Rule{
		"rule_id":    "r-1",
		"name":       "Suspicious Login",
		"enabled":    true,
		"severity":   "high",
		"created_at": "2026-01-01T00:00:00Z",
		"updated_at": "2026-02-01T00:00:00Z",
	}

	out, err := ToTOML(r)
	assert.NoError(t, err)
	assert.Contains(t, out, "[metadata]")
	assert.Contains(t, out, "[rule]")
	assert.Contains(t, out, "creation_date = '2026-01-01T00:00:00Z'")
	assert.Contains(t, out, "maturity = 'production'")
	assert.Contains(t, out, "rule_id = 'r-1'")
	assert.Contains(t, out, "name = 'Suspicious Login'")
}

func TestToTOML_DisabledRuleIsDevelopment(t *testing.T) {
	out, err := ToTOML(Rule{"rule_id": "r-1", "enabled": false})
	assert.NoError(t, err)
	assert.Contains(t, out, "maturity = 'development'")
}

func TestToTOML_SkipsVolatileAndNilFields(t *testing.T) {
	r := Rule{
		"rule_id":  "r-1",
		"id":       "internal-uuid",
		"revision": 3,
		"license":  nil,
	}
	out, err := ToTOML(r)
	assert.NoError(t, err)
	assert.NotContains(t, out, "internal-uuid")
	assert.NotContains(t, out, "revision")
	assert.NotContains(t, out, "license")
}

func TestToTOML_NumbersStayNumeric(t *testing.T) {
	r := Rule{
		"rule_id":   "r-1",
		"max_span":  json.Number("500"),
		"threshold": json.Number("0.75"),
	}
	out, err := ToTOML(r)
	assert.NoError(t, err)
	assert.Contains(t, out, "max_span = 500")
	assert.Contains(t, out, "threshold = 0.75")
}
