package engine

import "testing"

func TestEvaluateMultipleChoiceVerbatim(t *testing.T) {
	q := Question{
		ID:             "q1",
		Kind:           KindMultipleChoice,
		Options:        []string{"Mercury", "Venus", "Mars"},
		ExpectedAnswer: "Venus",
	}

	tests := []struct {
		name      string
		submitted string
		want      bool
	}{
		{"exact match", "Venus", true},
		{"wrong option", "Mars", false},
		// Multiple choice does no trimming: the option string must match
		// verbatim. This asymmetry with free text is intentional.
		{"trailing whitespace rejected", "Venus ", false},
		{"case mismatch rejected", "venus", false},
		{"blank", "", false},
	}

	for _, tt := range tests {
		if got := Evaluate(q, tt.submitted); got != tt.want {
			t.Errorf("%s: Evaluate(%q) = %v, want %v", tt.name, tt.submitted, got, tt.want)
		}
	}
}

func TestEvaluateFreeTextNormalizes(t *testing.T) {
	q := Question{
		ID:             "q2",
		Kind:           KindFreeText,
		ExpectedAnswer: "ATOM",
	}

	tests := []struct {
		name      string
		submitted string
		want      bool
	}{
		{"canonical", "ATOM", true},
		{"lowercase with trailing space", "atom ", true},
		{"mixed case padded", "  Atom  ", true},
		{"wrong answer", "molecule", false},
		{"blank", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		if got := Evaluate(q, tt.submitted); got != tt.want {
			t.Errorf("%s: Evaluate(%q) = %v, want %v", tt.name, tt.submitted, got, tt.want)
		}
	}
}
