package prakriti

import (
	"fmt"
	"sort"
	"strings"
)

// Score holds one vote count per category. It is a value type; derive a new
// one instead of mutating.
type Score struct {
	Vata  int `json:"vata"`
	Pitta int `json:"pitta"`
	Kapha int `json:"kapha"`
}

// Of returns the count for a category.
func (s Score) Of(c Category) int {
	switch c {
	case Vata:
		return s.Vata
	case Pitta:
		return s.Pitta
	case Kapha:
		return s.Kapha
	}
	return 0
}

// Total is the number of votes tallied.
func (s Score) Total() int {
	return s.Vata + s.Pitta + s.Kapha
}

func (s Score) add(c Category) Score {
	switch c {
	case Vata:
		s.Vata++
	case Pitta:
		s.Pitta++
	case Kapha:
		s.Kapha++
	}
	return s
}

// Label is a constitution: one dominant category, or every category that tied
// for the maximum, ordered by priority.
type Label struct {
	categories []Category
}

// NewLabel builds a label from distinct categories, normalising their order.
func NewLabel(categories ...Category) (Label, error) {
	seen := make(map[Category]bool, len(categories))
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsValid() {
			return Label{}, fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].priority() < out[j].priority() })
	return Label{categories: out}, nil
}

// ParseLabel reads the display form back, e.g. "Vata-pitta".
func ParseLabel(s string) (Label, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Label{}, nil
	}
	parts := strings.Split(s, "-")
	cats := make([]Category, 0, len(parts))
	for _, p := range parts {
		c, err := ParseCategory(p)
		if err != nil {
			return Label{}, err
		}
		cats = append(cats, c)
	}
	return NewLabel(cats...)
}

// Categories returns a copy of the categories the label names.
func (l Label) Categories() []Category {
	out := make([]Category, len(l.categories))
	copy(out, l.categories)
	return out
}

// Contains reports whether the label names c.
func (l Label) Contains(c Category) bool {
	for _, lc := range l.categories {
		if lc == c {
			return true
		}
	}
	return false
}

// IsZero reports whether no classification has been made.
func (l Label) IsZero() bool {
	return len(l.categories) == 0
}

// IsDual reports whether more than one category tied for the maximum.
func (l Label) IsDual() bool {
	return len(l.categories) > 1
}

// String renders the label with only the first letter capitalised, the form
// stored in patient profiles.
func (l Label) String() string {
	if l.IsZero() {
		return ""
	}
	names := make([]string, len(l.categories))
	for i, c := range l.categories {
		names[i] = string(c)
	}
	joined := strings.Join(names, "-")
	return strings.ToUpper(joined[:1]) + joined[1:]
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
