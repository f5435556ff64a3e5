package usecase

import (
	"errors"
	"fmt"
	"strings"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/prakriti"
	"ayurdiet-backend/internal/wizard"

	"github.com/go-playground/validator/v10"
)

// Patient assessment steps.
const (
	StepConstitution       wizard.StepID = "constitution"
	StepHealthGoals        wizard.StepID = "health_goals"
	StepDietaryPreferences wizard.StepID = "dietary_preferences"
	StepPlan               wizard.StepID = "plan"
)

// Dietitian onboarding steps.
const (
	StepClinic       wizard.StepID = "clinic"
	StepFirstPatient wizard.StepID = "first_patient"
	StepFoodDatabase wizard.StepID = "food_database"
	StepDietPlan     wizard.StepID = "diet_plan"
)

var (
	errNoHealthGoal    = errors.New("select at least one health goal")
	errDuplicateAnswer = errors.New("question answered more than once")
)

// NewAssessmentFlow lays out the four patient assessment steps. The
// constitution step only accepts answers the classifier can score.
func NewAssessmentFlow(validate *validator.Validate) *wizard.Definition {
	return wizard.MustDefinition("patient_assessment",
		wizard.Step{
			ID:    StepConstitution,
			Title: "Prakriti Assessment",
			Validate: wizard.Typed(func(r prakriti.Response) error {
				_, err := prakriti.Classify(r)
				return err
			}),
		},
		wizard.Step{
			ID:       StepHealthGoals,
			Title:    "Health Goals",
			Validate: wizard.Typed(validateHealthGoals),
		},
		wizard.Step{
			ID:    StepDietaryPreferences,
			Title: "Dietary Preferences",
			Validate: wizard.Typed(func(p domain.DietaryPreferences) error {
				return validate.Struct(p)
			}),
		},
		wizard.Step{ID: StepPlan, Title: "Your Plan"},
	)
}

// NewOnboardingFlow lays out dietitian onboarding. The last two steps are
// walkthroughs and take no input.
func NewOnboardingFlow(validate *validator.Validate) *wizard.Definition {
	return wizard.MustDefinition("dietitian_onboarding",
		wizard.Step{
			ID:    StepClinic,
			Title: "Clinic Details",
			Validate: wizard.Typed(func(c domain.ClinicDetails) error {
				return validate.Struct(c)
			}),
		},
		wizard.Step{
			ID:    StepFirstPatient,
			Title: "First Patient",
			Validate: wizard.Typed(func(p domain.FirstPatient) error {
				return validate.Struct(p)
			}),
		},
		wizard.Step{ID: StepFoodDatabase, Title: "Food Database"},
		wizard.Step{ID: StepDietPlan, Title: "AI Diet Plan"},
	)
}

func validateHealthGoals(goals []domain.HealthGoal) error {
	if len(goals) == 0 {
		return errNoHealthGoal
	}
	seen := make(map[domain.HealthGoal]bool, len(goals))
	for _, g := range goals {
		if !g.IsValid() {
			return fmt.Errorf("unknown health goal %q", g)
		}
		if seen[g] {
			return fmt.Errorf("duplicate health goal %q", g)
		}
		seen[g] = true
	}
	return nil
}

// toResponse keys raw answers by question id. Values are left untouched so
// the classifier can reject them. Two keys naming the same question are
// refused, otherwise the surviving answer would depend on map order.
func toResponse(answers map[string]string) (prakriti.Response, error) {
	r := make(prakriti.Response, len(answers))
	for k := range answers {
		id := prakriti.QuestionID(strings.ToLower(strings.TrimSpace(k)))
		if _, dup := r[id]; dup {
			return nil, fmt.Errorf("%w: %s", errDuplicateAnswer, id)
		}
		r[id] = answers[k]
	}
	return r, nil
}
