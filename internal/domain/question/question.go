// Package question models a single incoming question and its scope classification.
package question

import "strings"

// Classification is the domain-scope verdict for a question.
type Classification string

const (
	// InDomain means the question matches the assistant's declared subject scope.
	InDomain Classification = "in_domain"
	// OutOfDomain means the question matches none of the allowed topics.
	OutOfDomain Classification = "out_of_domain"
	// Unknown means the classifier could not produce a verdict (malformed input).
	// Routing treats Unknown exactly like OutOfDomain: fail closed.
	Unknown Classification = "unknown"
)

// IsValid checks if the classification is one of the known verdicts.
func (c Classification) IsValid() bool {
	return c == InDomain || c == OutOfDomain || c == Unknown
}

// Question is a per-request value object. It is created Unknown, classified
// once, routed once, then discarded. No state survives the request.
type Question struct {
	text           string
	classification Classification
}

// New creates an unclassified question with trimmed text.
func New(text string) Question {
	return Question{text: strings.TrimSpace(text), classification: Unknown}
}

// Text returns the question text.
func (q Question) Text() string { return q.text }

// Classification returns the current verdict (Unknown until classified).
func (q Question) Classification() Classification { return q.classification }

// WithClassification returns a copy carrying the verdict. Invalid values
// collapse to Unknown so downstream routing stays fail-closed.
func (q Question) WithClassification(c Classification) Question {
	if !c.IsValid() {
		c = Unknown
	}
	q.classification = c
	return q
}
