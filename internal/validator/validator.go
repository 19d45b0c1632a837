// Package validator accumulates field-level warnings for user input.
package validator

import "regexp"

// YearRX matches exactly four ASCII digits.
var YearRX = regexp.MustCompile(`^[0-9]{4}$`)

// Validator holds a map of field names to their warning messages.
// A Validator with an empty Warnings map is considered valid.
type Validator struct {
	Warnings map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Warnings: make(map[string]string)}
}

// Valid returns true if no warnings were recorded.
func (v *Validator) Valid() bool {
	return len(v.Warnings) == 0
}

// AddWarning records key as failing with the given message.
// The first failure for a field is the one that is kept.
func (v *Validator) AddWarning(key, message string) {
	if _, exists := v.Warnings[key]; !exists {
		v.Warnings[key] = message
	}
}

// Check adds a warning for key only when ok is false:
//
//	v.Check(strings.TrimSpace(search) != "", "search", "Search is required.")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddWarning(key, message)
	}
}

// Get returns the warning for key, or "" when the field is valid.
func (v *Validator) Get(key string) string {
	return v.Warnings[key]
}

// In returns true if value is present in the list slice.
func In[T comparable](value T, list ...T) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
