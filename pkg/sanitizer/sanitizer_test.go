package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citelab/bibcat/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "user@example.org", want: "user@example.org"},
		{name: "mixed case with spaces", input: "  Test.User+Tag@EXAMPLE.COM  ", want: "test.user+tag@example.com"},
		{name: "consecutive dots in local part", input: "a..b@example.org", want: "a.b@example.org"},
		{name: "leading and trailing dots", input: ".user.@example.org", want: "user@example.org"},
		{name: "not an email", input: "Plain String", want: "plain string"},
		{name: "two at signs", input: "a@b@c", want: "a@b@c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.input))
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	got := sanitizer.Apply("  Hello   World  ",
		sanitizer.Trim,
		sanitizer.CollapseWhitespace,
		sanitizer.ToLower,
	)
	assert.Equal(t, "hello world", got)
}
