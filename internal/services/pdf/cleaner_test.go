// cleaner_test.go contains unit tests for text cleaning and statistics.
//
// Test function names follow the pattern: TestFunctionName_Scenario
package pdf

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"only whitespace", " \n\t\n  ", ""},
		{"only page numbers", "1\n2\n 3 \n", ""},
		{"single line untouched", "Hello World", "Hello World"},
		{"trims each line", "  Hello  \n  World  ", "Hello World"},
		{"drops digit-only lines", "Intro\n42\nBody", "Intro Body"},
		{"keeps mixed digits", "Page 42 of 100", "Page 42 of 100"},
		{"keeps digits with punctuation", "3.14\n1,000", "3.14 1,000"},
		{"collapses internal runs", "More   text\t\there", "More text here"},
		{"windows line endings", "first\r\n2\r\nsecond\r\n", "first second"},
		{"unicode text", "Größe  über\n7\nçà", "Größe über çà"},
		{"drops superscript footnote marks", "Intro\n²\nBody ²", "Intro Body ²"},
		{"keeps fractions", "Serves\n½", "Serves ½"},
		{
			name:     "page markers and numbers",
			input:    "--- Page 1 ---\nHello World\n42\n--- Page 2 ---\nMore   text here\n",
			expected: "--- Page 1 --- Hello World --- Page 2 --- More text here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clean(tt.input)
			if result != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestClean_OutputShape checks the invariants every cleaned string holds:
// one line, no outer whitespace, no doubled whitespace, and idempotence.
func TestClean_OutputShape(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"a\nb\nc",
		"  leading and trailing  ",
		"tabs\tand nbsp em space",
		"12\n\n  34  \nfive 6\n",
		"line one\r\nline two\r\n\r\n3\r\n",
		"12 34",
		strings.Repeat("word  ", 50) + "\n" + strings.Repeat("9", 20),
	}

	for _, in := range inputs {
		out := Clean(in)

		if strings.ContainsAny(out, "\r\n") {
			t.Errorf("Clean(%q) = %q contains a line break", in, out)
		}
		if out != strings.TrimSpace(out) {
			t.Errorf("Clean(%q) = %q has leading/trailing whitespace", in, out)
		}
		if len(strings.Fields(out)) > 0 && strings.Join(strings.Fields(out), " ") != out {
			t.Errorf("Clean(%q) = %q has a whitespace run", in, out)
		}
		if again := Clean(out); again != out {
			t.Errorf("Clean is not idempotent for %q: %q then %q", in, out, again)
		}
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"0", true},
		{"2024", true},
		{"٣٤", true}, // Arabic-Indic digits are decimal digits too
		{"12a", false},
		{"1 2", false},
		{"-1", false},
		{"²", true},
		{"¹²³", true},
		{"₄₂", true},
		{"③", true},
		{"⑩", false}, // a number, not a digit
		{"½", false},
		{"x²", false},
	}

	for _, tt := range tests {
		if got := isDigits(tt.input); got != tt.want {
			t.Errorf("isDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	cleaned := "--- Page 1 --- Hello World --- Page 2 --- More text here"

	tests := []struct {
		name  string
		input string
		want  Stats
	}{
		{"empty", "", Stats{}},
		{"three chars", "abc", Stats{WordCount: 1, CharCount: 3, EstimatedTokens: 0}},
		{"exactly four chars", "abcd", Stats{WordCount: 1, CharCount: 4, EstimatedTokens: 1}},
		{"two words", "Hello World", Stats{WordCount: 2, CharCount: 11, EstimatedTokens: 2}},
		{"multibyte counts runes", "héllo wörld", Stats{WordCount: 2, CharCount: 11, EstimatedTokens: 2}},
		{
			name:  "page-marked text",
			input: cleaned,
			want: Stats{
				WordCount:       13,
				CharCount:       len(cleaned),
				EstimatedTokens: len(cleaned) / 4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.input)
			if got != tt.want {
				t.Errorf("ComputeStats(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.CharCount != utf8.RuneCountInString(tt.input) {
				t.Errorf("CharCount = %d, want rune count %d", got.CharCount, utf8.RuneCountInString(tt.input))
			}
		})
	}
}
