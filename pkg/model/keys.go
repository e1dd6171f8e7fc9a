package model

import (
	"regexp"
	"strconv"
	"strings"
)

var nonKeyCharacters = regexp.MustCompile(`[^a-z0-9]+`)

// FieldKey converts a label into the submission payload key used for a field,
// e.g. "Email Address *" becomes "email_address".
func FieldKey(label string) string {
	lowered := strings.ToLower(strings.TrimSpace(label))
	return strings.Trim(nonKeyCharacters.ReplaceAllString(lowered, "_"), "_")
}

// FieldKeys derives one unique payload key per field, in field order. Fields
// without a usable label fall back to field_<position>; collisions receive a
// numeric suffix (_2, _3, ...) in order of appearance.
func FieldKeys(fields []FieldDescriptor) []string {
	keys := make([]string, len(fields))
	seen := make(map[string]int, len(fields))
	for idx, field := range fields {
		key := FieldKey(field.Label)
		if key == "" {
			key = "field_" + strconv.Itoa(idx+1)
		}
		seen[key]++
		if count := seen[key]; count > 1 {
			key = key + "_" + strconv.Itoa(count)
		}
		keys[idx] = key
	}
	return keys
}

// CloneData copies a submission payload.
func CloneData(data map[string]string) map[string]string {
	if data == nil {
		return nil
	}
	out := make(map[string]string, len(data))
	for key, value := range data {
		out[key] = value
	}
	return out
}
