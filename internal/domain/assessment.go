package domain

import (
	"context"
	"time"

	"ayurdiet-backend/internal/prakriti"
)

// HealthGoal keys offered on the second assessment step.
type HealthGoal string

const (
	GoalWeightLoss HealthGoal = "weight-loss"
	GoalDiabetes   HealthGoal = "diabetes"
	GoalDigestion  HealthGoal = "digestion"
	GoalEnergy     HealthGoal = "energy"
	GoalStress     HealthGoal = "stress"
	GoalImmunity   HealthGoal = "immunity"
)

func ValidHealthGoals() []HealthGoal {
	return []HealthGoal{GoalWeightLoss, GoalDiabetes, GoalDigestion, GoalEnergy, GoalStress, GoalImmunity}
}

func (g HealthGoal) IsValid() bool {
	for _, valid := range ValidHealthGoals() {
		if g == valid {
			return true
		}
	}
	return false
}

type DietaryPreferences struct {
	FoodOption   string `json:"food_option" validate:"required,oneof=vegetarian non-vegetarian vegan"`
	SpiceLevel   string `json:"spice_level" validate:"required,oneof=mild moderate warm-spicy"`
	MealTiming   string `json:"meal_timing" validate:"required,oneof=irregular regular skipping-meals"`
	CookingStyle string `json:"cooking_style" validate:"required,oneof=raw cooked-light heavy-oily"`
}

// ClassifyRequest carries the constitution answers, keyed by question id.
type ClassifyRequest struct {
	Constitution map[string]string `json:"constitution"`
}

// AssessmentSubmitRequest is the whole patient wizard in one payload.
type AssessmentSubmitRequest struct {
	Constitution       map[string]string  `json:"constitution"`
	HealthGoals        []HealthGoal       `json:"health_goals"`
	DietaryPreferences DietaryPreferences `json:"dietary_preferences"`
}

// PatientAssessment is the stored outcome of a completed assessment.
type PatientAssessment struct {
	UserID             string             `json:"user_id"`
	Completed          bool               `json:"assessment_completed"`
	Prakriti           prakriti.Label     `json:"prakriti_type"`
	Scores             prakriti.Score     `json:"constitution_scores"`
	HealthGoals        []HealthGoal       `json:"health_goals"`
	DietaryPreferences DietaryPreferences `json:"dietary_preferences"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// DietPlan is the plan preview for a stored constitution.
type DietPlan struct {
	Prakriti prakriti.Label `json:"prakriti"`
	prakriti.Plan
}

type PatientProfileRepository interface {
	GetAssessment(ctx context.Context, userID string) (*PatientAssessment, error)
	SaveAssessment(ctx context.Context, assessment *PatientAssessment) error
	ClearAssessment(ctx context.Context, userID string) error
}

type AssessmentUsecase interface {
	Classify(ctx context.Context, req *ClassifyRequest) (*prakriti.Result, error)
	Submit(ctx context.Context, userID string, req *AssessmentSubmitRequest) (*PatientAssessment, error)
	Get(ctx context.Context, userID string) (*PatientAssessment, error)
	Retake(ctx context.Context, userID string) error
	Plan(ctx context.Context, userID string) (*DietPlan, error)
}
