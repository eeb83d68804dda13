package engine

import "strings"

// Evaluate judges a submitted answer against the question's expected answer.
// Evaluation is binary, no partial credit.
//
// Multiple choice compares verbatim: options are pre-rendered exact strings,
// so no normalization is applied: "Paris " does not match "Paris".
//
// Free text trims surrounding whitespace and uppercases the submission before
// comparing against the canonical uppercase expected answer.
//
// Blank submissions always evaluate false. The UI blocks submitting an empty
// input; this path only exists so a bypassed guard cannot corrupt a session.
func Evaluate(q Question, submitted string) bool {
	if strings.TrimSpace(submitted) == "" {
		return false
	}

	switch q.Kind {
	case KindFreeText:
		return strings.ToUpper(strings.TrimSpace(submitted)) == q.ExpectedAnswer
	default:
		return submitted == q.ExpectedAnswer
	}
}
