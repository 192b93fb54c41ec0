package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object",
			input: `{"matched_role": "Backend Developer"}`,
			want:  `{"matched_role": "Backend Developer"}`,
		},
		{
			name:  "surrounding whitespace",
			input: "\n\t  {\"a\": 1}  \n",
			want:  `{"a": 1}`,
		},
		{
			name:  "json code fence",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "bare code fence",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "prose around object",
			input: "Here is the result:\n{\"a\": 1}\nLet me know if you need more.",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested objects keep outer braces",
			input: `prefix {"outer": {"inner": 2}} suffix`,
			want:  `{"outer": {"inner": 2}}`,
		},
		{
			name:  "no object at all",
			input: "I could not produce a result.",
			want:  "I could not produce a result.",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cleanJSON(tt.input))
		})
	}
}
