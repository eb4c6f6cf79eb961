package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskField_SensitiveName(t *testing.T) {
	m := NewMasker(true, nil)

	assert.Equal(t, MaskToken, m.MaskField("password", "s3cret"))
	assert.Equal(t, MaskToken, m.MaskField("db_password", "s3cret"))
	assert.Equal(t, MaskToken, m.MaskField("API_TOKEN", "abc"))
	assert.Equal(t, "visible", m.MaskField("host", "visible"))
}

func TestMaskField_DisabledPassesThrough(t *testing.T) {
	m := NewMasker(false, nil)

	assert.Equal(t, "s3cret", m.MaskField("password", "s3cret"))
	assert.Equal(t, `{"password": "x"}`, m.MaskExtra(`{"password": "x"}`))
}

func TestMaskField_ExtraNames(t *testing.T) {
	m := NewMasker(true, []string{"login"})

	assert.Equal(t, MaskToken, m.MaskField("login", "etl_user"))
	assert.Equal(t, "etl_user", NewMasker(true, nil).MaskField("login", "etl_user"))
}

func TestMaskExtra_MasksSensitiveKeys(t *testing.T) {
	m := NewMasker(true, nil)

	assert.Equal(t, `{"password": "***"}`, m.MaskExtra(`{"password": "test-password"}`))
	assert.Equal(t, `{"charset": "utf8", "api_key": "***"}`, m.MaskExtra(`{"charset": "utf8", "api_key": "k"}`))
}

func TestMaskExtra_PreservesTextualForm(t *testing.T) {
	m := NewMasker(true, nil)

	// Key order, spacing and untouched values keep their exact bytes; only
	// sensitive values are rewritten in place.
	assert.Equal(t,
		`{ "host": "h",  "password": "***","charset":"utf8" }`,
		m.MaskExtra(`{ "host": "h",  "password": "top secret","charset":"utf8" }`))
	assert.Equal(t,
		`{"port": 3306, "api_key": "***"}`,
		m.MaskExtra(`{"port": 3306, "api_key": {"id": 1, "k": "v"}}`))
}

func TestMaskExtra_NoSensitiveKeysKeepsText(t *testing.T) {
	m := NewMasker(true, nil)

	// Untouched input keeps its exact textual form, whitespace included.
	original := `{"extra_key": "extra_value"}`
	assert.Equal(t, original, m.MaskExtra(original))
}

func TestMaskExtra_UnparseablePassesThrough(t *testing.T) {
	m := NewMasker(true, nil)

	assert.Equal(t, "not-json", m.MaskExtra("not-json"))
	assert.Equal(t, `["password"]`, m.MaskExtra(`["password"]`))
	assert.Equal(t, "", m.MaskExtra(""))
}

func TestMaskExtra_Idempotent(t *testing.T) {
	m := NewMasker(true, nil)

	once := m.MaskExtra(`{"password": "x", "secret_key": 42}`)
	assert.Equal(t, once, m.MaskExtra(once))
	assert.Equal(t, MaskToken, m.MaskField("password", MaskToken))
}
