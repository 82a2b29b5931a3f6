package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewDefault()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Plain words",
			input:    "three plain words",
			expected: []string{"three", "plain", "words"},
		},
		{
			name:     "Comma joins digit groups",
			input:    "12,450 units",
			expected: []string{"12450", "units"},
		},
		{
			name:     "Spaced comma joins the same way",
			input:    "12 , 450 units",
			expected: []string{"12450", "units"},
		},
		{
			name:     "Preserved currency stays attached",
			input:    "Total: $500",
			expected: []string{"total", "$500"},
		},
		{
			name:     "Slash keeps dates whole",
			input:    "due 15/09/2024",
			expected: []string{"due", "15092024"},
		},
		{
			name:     "Hyphen splits identifiers",
			input:    "INV-10234",
			expected: []string{"inv", "10234"},
		},
		{
			name:     "Markup is ignored",
			input:    "<p>Hello&nbsp;world</p>",
			expected: []string{"hello", "world"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "Punctuation only",
			input:    "?! .. ;;",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeNeverReturnsEmptyTokens(t *testing.T) {
	tok := NewDefault()
	for _, input := range []string{"  a  b  ", "a\t\nb", ". a . b .", ", ,"} {
		for _, token := range tok.Tokenize(input) {
			if token == "" {
				t.Errorf("Tokenize(%q) produced an empty token", input)
			}
		}
	}
}
