package prakriti

import (
	"fmt"
	"strings"
)

// Category is one of the three doshas a questionnaire answer votes for.
type Category string

const (
	Vata  Category = "vata"
	Pitta Category = "pitta"
	Kapha Category = "kapha"
)

// Categories returns every category in tie-break priority order.
func Categories() []Category {
	return []Category{Vata, Pitta, Kapha}
}

// IsValid checks if the category is one of the known doshas
func (c Category) IsValid() bool {
	for _, valid := range Categories() {
		if c == valid {
			return true
		}
	}
	return false
}

func (c Category) priority() int {
	for i, valid := range Categories() {
		if c == valid {
			return i
		}
	}
	return len(Categories())
}

// ParseCategory accepts a category name in any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// QuestionID identifies one constitution question.
type QuestionID string

const (
	Digestion QuestionID = "digestion"
	Energy    QuestionID = "energy"
	Sleep     QuestionID = "sleep"
)

// StandardQuestions is the fixed question set of the patient assessment.
func StandardQuestions() []QuestionID {
	return []QuestionID{Digestion, Energy, Sleep}
}

// Response maps question identifiers to the raw answer value. An empty value
// means the question has not been answered yet.
type Response map[QuestionID]string

// With returns a copy of the response with one answer set.
func (r Response) With(q QuestionID, value string) Response {
	out := make(Response, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[q] = value
	return out
}
