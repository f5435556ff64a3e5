package prakriti_test

import (
	"encoding/json"
	"testing"

	"ayurdiet-backend/internal/prakriti"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answers(digestion, energy, sleep string) prakriti.Response {
	return prakriti.Response{
		prakriti.Digestion: digestion,
		prakriti.Energy:    energy,
		prakriti.Sleep:     sleep,
	}
}

func TestClassifySingleDominant(t *testing.T) {
	tests := []struct {
		name  string
		resp  prakriti.Response
		label string
		score prakriti.Score
	}{
		{"all vata", answers("vata", "vata", "vata"), "Vata", prakriti.Score{Vata: 3}},
		{"two vata one pitta", answers("vata", "pitta", "vata"), "Vata", prakriti.Score{Vata: 2, Pitta: 1}},
		{"two pitta one vata", answers("vata", "pitta", "pitta"), "Pitta", prakriti.Score{Vata: 1, Pitta: 2}},
		{"two kapha one pitta", answers("kapha", "pitta", "kapha"), "Kapha", prakriti.Score{Pitta: 1, Kapha: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := prakriti.Classify(tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.label, res.Label.String())
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, 3, res.Score.Total())
		})
	}
}

func TestClassifyThreeWayTieNamesEveryCategory(t *testing.T) {
	res, err := prakriti.Classify(answers("kapha", "vata", "pitta"))
	require.NoError(t, err)

	assert.Equal(t, "Vata-pitta-kapha", res.Label.String())
	assert.Equal(t, prakriti.Score{Vata: 1, Pitta: 1, Kapha: 1}, res.Score)
}

func TestClassifyTwoWayTieUsesPriorityOrder(t *testing.T) {
	// Three questions can never produce a two-way tie, so use four.
	c := prakriti.NewClassifier("a", "b", "c", "d")

	res, err := c.Classify(prakriti.Response{"a": "pitta", "b": "vata", "c": "pitta", "d": "vata"})
	require.NoError(t, err)
	assert.Equal(t, "Vata-pitta", res.Label.String())

	res, err = c.Classify(prakriti.Response{"a": "kapha", "b": "pitta", "c": "kapha", "d": "pitta"})
	require.NoError(t, err)
	assert.Equal(t, "Pitta-kapha", res.Label.String())
	assert.Equal(t, 0, res.Score.Vata)
}

func TestClassifyRejectsIncompleteResponse(t *testing.T) {
	_, err := prakriti.Classify(answers("vata", "", "pitta"))
	require.Error(t, err)
	assert.ErrorIs(t, err, prakriti.ErrIncompleteResponse)
	assert.Contains(t, err.Error(), "energy")

	_, err = prakriti.Classify(prakriti.Response{prakriti.Digestion: "vata"})
	assert.ErrorIs(t, err, prakriti.ErrIncompleteResponse)

	_, err = prakriti.Classify(nil)
	assert.ErrorIs(t, err, prakriti.ErrIncompleteResponse)
}

func TestClassifyRejectsUnknownCategory(t *testing.T) {
	for _, bad := range []string{"fire", "Vata", "vata "} {
		_, err := prakriti.Classify(answers("vata", bad, "pitta"))
		assert.ErrorIs(t, err, prakriti.ErrInvalidCategory, "value %q", bad)
	}
}

func TestClassifyIgnoresUnknownQuestions(t *testing.T) {
	resp := answers("pitta", "pitta", "kapha").With("appetite", "vata")
	res, err := prakriti.Classify(resp)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Score.Total())
	assert.Equal(t, 0, res.Score.Vata)
}

func TestClassifyIsDeterministic(t *testing.T) {
	cats := prakriti.Categories()
	for _, d := range cats {
		for _, e := range cats {
			for _, s := range cats {
				resp := answers(string(d), string(e), string(s))
				first, err := prakriti.Classify(resp)
				require.NoError(t, err)
				for i := 0; i < 5; i++ {
					again, err := prakriti.Classify(resp)
					require.NoError(t, err)
					assert.Equal(t, first, again)
				}
			}
		}
	}
}

func TestLabelNamesExactlyTheWinningNonzeroCategories(t *testing.T) {
	cats := prakriti.Categories()
	for _, d := range cats {
		for _, e := range cats {
			for _, s := range cats {
				res, err := prakriti.Classify(answers(string(d), string(e), string(s)))
				require.NoError(t, err)
				assert.Equal(t, 3, res.Score.Total())
				for _, c := range cats {
					if res.Label.Contains(c) {
						assert.Positive(t, res.Score.Of(c), "%s named with zero votes", c)
					} else {
						assert.Zero(t, res.Score.Of(c), "%s not named in %s", c, res.Label)
					}
				}
			}
		}
	}
}

func TestParseLabelRoundTrip(t *testing.T) {
	l, err := prakriti.ParseLabel("pitta-Vata")
	require.NoError(t, err)
	assert.Equal(t, "Vata-pitta", l.String())
	assert.True(t, l.IsDual())

	_, err = prakriti.ParseLabel("vata-air")
	assert.ErrorIs(t, err, prakriti.ErrInvalidCategory)

	empty, err := prakriti.ParseLabel("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestResultJSON(t *testing.T) {
	res, err := prakriti.Classify(answers("kapha", "kapha", "vata"))
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"prakriti":"Kapha","scores":{"vata":1,"pitta":0,"kapha":2}}`, string(raw))
}

func TestPlanFor(t *testing.T) {
	vata, _ := prakriti.NewLabel(prakriti.Vata)
	plan := prakriti.PlanFor(vata)
	assert.Contains(t, plan.Foods, "Warm, cooked meals")
	assert.Len(t, plan.Avoid, 3)

	dual, _ := prakriti.NewLabel(prakriti.Pitta, prakriti.Kapha)
	merged := prakriti.PlanFor(dual)
	assert.Contains(t, merged.Foods, "Leafy greens")
	assert.Contains(t, merged.Foods, "Legumes and beans")

	empty := prakriti.PlanFor(prakriti.Label{})
	assert.Empty(t, empty.Foods)
	assert.NotNil(t, empty.Foods)
}
