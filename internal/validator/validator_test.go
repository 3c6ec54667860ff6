package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := New()
	require.NotNil(t, v)
}

func TestNotblankValidator(t *testing.T) {
	v := New()

	type subject struct {
		Name string `validate:"notblank"`
	}

	testCases := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "normal_string", input: "Widget", expectError: false},
		{name: "padded_string", input: "  Widget  ", expectError: false},
		{name: "single_char", input: "a", expectError: false},
		{name: "unicode_content", input: "日本語", expectError: false},
		{name: "empty_string", input: "", expectError: true},
		{name: "spaces_only", input: "   ", expectError: true},
		{name: "tabs_only", input: "\t\t", expectError: true},
		{name: "mixed_whitespace", input: " \t\n ", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(subject{Name: tc.input})
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotblank_NonStringField(t *testing.T) {
	v := New()

	type subject struct {
		Count int `validate:"notblank"`
	}

	// Non-string fields are passed through for other validators to handle.
	assert.NoError(t, v.Struct(subject{Count: 0}))
}
