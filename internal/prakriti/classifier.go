// Package prakriti scores the constitution questionnaire into a dosha label.
package prakriti

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompleteResponse means at least one required question has no answer.
	ErrIncompleteResponse = errors.New("incomplete questionnaire response")
	// ErrInvalidCategory means an answer is not vata, pitta or kapha.
	ErrInvalidCategory = errors.New("invalid constitution category")
)

// Result is the outcome of a successful classification.
type Result struct {
	Label Label `json:"prakriti"`
	Score Score `json:"scores"`
}

// Classifier tallies answers for a fixed, ordered set of questions.
type Classifier struct {
	questions []QuestionID
}

// NewClassifier creates a classifier over the given questions. Answers to
// questions outside this set are ignored.
func NewClassifier(questions ...QuestionID) *Classifier {
	qs := make([]QuestionID, len(questions))
	copy(qs, questions)
	return &Classifier{questions: qs}
}

var standard = NewClassifier(StandardQuestions()...)

// Classify scores a response to the standard three-question assessment.
func Classify(r Response) (Result, error) {
	return standard.Classify(r)
}

// Questions returns the question set in order.
func (c *Classifier) Questions() []QuestionID {
	out := make([]QuestionID, len(c.questions))
	copy(out, c.questions)
	return out
}

// Validate checks completeness and category membership without scoring.
func (c *Classifier) Validate(r Response) error {
	var missing []string
	for _, q := range c.questions {
		if strings.TrimSpace(r[q]) == "" {
			missing = append(missing, string(q))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteResponse, strings.Join(missing, ", "))
	}
	for _, q := range c.questions {
		if !Category(r[q]).IsValid() {
			return fmt.Errorf("%w: %q for %s", ErrInvalidCategory, r[q], q)
		}
	}
	return nil
}

// Classify tallies one vote per question and labels the maximum. Two or more
// categories sharing the maximum are all named, in priority order.
func (c *Classifier) Classify(r Response) (Result, error) {
	if err := c.Validate(r); err != nil {
		return Result{}, err
	}

	var score Score
	for _, q := range c.questions {
		score = score.add(Category(r[q]))
	}

	best := 0
	for _, cat := range Categories() {
		if n := score.Of(cat); n > best {
			best = n
		}
	}

	var top []Category
	for _, cat := range Categories() {
		if best > 0 && score.Of(cat) == best {
			top = append(top, cat)
		}
	}

	label, err := NewLabel(top...)
	if err != nil {
		return Result{}, err
	}
	return Result{Label: label, Score: score}, nil
}
