package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_JSON(t *testing.T) {
	r, err := Parse([]byte(`{"rule_id":"r-1","name":"n","enabled":true}`), "", "")
	assert.NoError(t, err)
	assert.Equal(t, "r-1", r.ID())
	assert.True(t, r.Enabled())
}

func TestParse_JSONWithRuleWrapper(t *testing.T) {
	r, err := Parse([]byte(`{"rule":{"rule_id":"r-2"}}`), FormatJSON, "")
	assert.NoError(t, err)
	assert.Equal(t, "r-2", r.ID())
}

func TestParse_TOML(t *testing.T) {
	content := []byte("[metadata]\nmaturity = 'production'\n\n[rule]\nrule_id = 'r-3'\nname = 'From TOML'\nenabled = true\n")
	r, err := Parse(content, FormatTOML, "")
	assert.NoError(t, err)
	assert.Equal(t, "r-3", r.ID())
	assert.Equal(t, "From TOML", r.Name())
}

func TestParse_FormatFromFilename(t *testing.T) {
	r, err := Parse([]byte("[rule]\nrule_id = 'r-4'\n"), "", "export/r-4.toml")
	assert.NoError(t, err)
	assert.Equal(t, "r-4", r.ID())

	r, err = Parse([]byte(`{"rule_id":"r-5"}`), "", "export/r-5.json")
	assert.NoError(t, err)
	assert.Equal(t, "r-5", r.ID())
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse([]byte("rule_id: r-6"), "yaml", "")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"rule_id":`), FormatJSON, "")
	assert.ErrorContains(t, err, "parse failed")

	_, err = Parse([]byte(`"just a string"`), FormatJSON, "")
	assert.ErrorContains(t, err, "does not contain a rule object")
}
