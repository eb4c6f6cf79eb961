// Package redact masks sensitive field values before they leave the service.
// Masking is irreversible and total: inputs that cannot be interpreted are
// passed through unchanged rather than rejected.
package redact

import (
	"encoding/json"
	"strings"
)

// MaskToken replaces every redacted value.
const MaskToken = "***"

// Field names treated as sensitive by default. Matching is a case-insensitive
// substring check, so e.g. "db_password" and "API_TOKEN" are both caught.
var defaultSensitiveNames = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"api_key",
	"apikey",
	"private_key",
}

// Masker redacts sensitive values from read-facing output.
// When disabled it passes everything through unchanged.
type Masker struct {
	enabled  bool
	patterns []string
}

// NewMasker creates a masker. extraNames extends the built-in sensitive-name
// set with deployment-specific patterns.
func NewMasker(enabled bool, extraNames []string) *Masker {
	patterns := make([]string, 0, len(defaultSensitiveNames)+len(extraNames))
	patterns = append(patterns, defaultSensitiveNames...)
	for _, name := range extraNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			patterns = append(patterns, strings.ToLower(trimmed))
		}
	}
	return &Masker{enabled: enabled, patterns: patterns}
}

// Enabled reports whether redaction mode is on.
func (m *Masker) Enabled() bool {
	return m.enabled
}

// Sensitive reports whether an attribute name matches the sensitive-name set.
func (m *Masker) Sensitive(name string) bool {
	lowered := strings.ToLower(name)
	for _, pattern := range m.patterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// MaskField returns the mask token for sensitive attribute names when
// redaction is enabled, otherwise the value unchanged.
func (m *Masker) MaskField(name, value string) string {
	if m.enabled && m.Sensitive(name) {
		return MaskToken
	}
	return value
}

// MaskExtra inspects a serialized key/value blob and masks the values of keys
// matching the sensitive-name set. Mask tokens are spliced into the original
// text, so key order and whitespace of everything untouched stay byte
// identical. Input that does not parse as a flat JSON object is returned
// unchanged.
func (m *Masker) MaskExtra(extra string) string {
	if !m.enabled {
		return extra
	}
	spans, ok := m.sensitiveValueSpans(extra)
	if !ok || len(spans) == 0 {
		return extra
	}
	var masked strings.Builder
	masked.Grow(len(extra))
	prev := 0
	for _, s := range spans {
		masked.WriteString(extra[prev:s.start])
		masked.WriteString(`"` + MaskToken + `"`)
		prev = s.end
	}
	masked.WriteString(extra[prev:])
	return masked.String()
}

type valueSpan struct {
	start, end int
}

// sensitiveValueSpans walks the blob as a top-level JSON object and returns
// the byte ranges of values whose keys match the sensitive-name set. ok is
// false when the input is not a well-formed JSON object.
func (m *Masker) sensitiveValueSpans(extra string) ([]valueSpan, bool) {
	dec := json.NewDecoder(strings.NewReader(extra))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return nil, false
	}

	var spans []valueSpan
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, _ := keyTok.(string)
		// RawMessage keeps the value's original bytes, so the span end from
		// InputOffset and the raw length pin down its exact position.
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}
		if m.Sensitive(key) {
			end := int(dec.InputOffset())
			spans = append(spans, valueSpan{start: end - len(raw), end: end})
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	return spans, true
}
