package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword_TooShortMentionsMinimumLength(t *testing.T) {
	errs := ValidatePassword("abc", "abc")
	assert.NotEmpty(t, errs)

	found := false
	for _, e := range errs {
		if strings.Contains(e, "minimum length") {
			found = true
		}
	}
	assert.True(t, found, "short password error should name the minimum length")
}

func TestValidatePassword_AcceptsCompliantPassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Abcdef1!", "Abcdef1!"))
}

func TestValidatePassword_Rules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		fragment string
	}{
		{"missing uppercase", "abcdef1!", "abcdef1!", "uppercase"},
		{"missing lowercase", "ABCDEF1!", "ABCDEF1!", "lowercase"},
		{"missing digit", "Abcdefg!", "Abcdefg!", "digit"},
		{"missing special", "Abcdefg1", "Abcdefg1", "special"},
		{"mismatched confirmation", "Abcdef1!", "Abcdef2!", "match"},
		{"too long", strings.Repeat("Ab1!", 20), strings.Repeat("Ab1!", 20), "at most"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePassword(tt.password, tt.confirm)
			assert.NotEmpty(t, errs)
			assert.Contains(t, strings.Join(errs, "; "), tt.fragment)
		})
	}
}

func TestValidatePassword_ReportsAllViolationsAtOnce(t *testing.T) {
	errs := ValidatePassword("a", "b")
	// short, no upper, no digit, no special, mismatch
	assert.GreaterOrEqual(t, len(errs), 5)
}
