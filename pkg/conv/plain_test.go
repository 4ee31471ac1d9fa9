package conv

import (
	"testing"
)

func TestMarkdownToPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Ciao, come posso aiutarti?",
			expected: "Ciao, come posso aiutarti?",
		},
		{
			name:     "bold stripped",
			input:    "**Ospedale di Borgo Trento**",
			expected: "Ospedale di Borgo Trento",
		},
		{
			name:     "italic stripped",
			input:    "orario *continuato*",
			expected: "orario continuato",
		},
		{
			name:     "inline code stripped",
			input:    "chiama il `045 807 1111`",
			expected: "chiama il 045 807 1111",
		},
		{
			name:     "paragraphs preserved",
			input:    "Primo paragrafo.\n\nSecondo paragrafo.",
			expected: "Primo paragrafo.\n\nSecondo paragrafo.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToPlainText([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToPlainText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
