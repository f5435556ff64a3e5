package domain

import (
	"context"
	"time"
)

// ============================================================================
// Dietitian onboarding
// ============================================================================

// ClinicDetails is step one of dietitian onboarding.
type ClinicDetails struct {
	Name           string `json:"name" validate:"required,min=2,max=200,no_emoji"`
	Specialization string `json:"specialization" validate:"required,max=200"`
	Contact        string `json:"contact" validate:"required,valid_phone"`
	Address        string `json:"address" validate:"required,max=500"`
}

// FirstPatient is step two: the first patient the dietitian registers.
type FirstPatient struct {
	Name      string `json:"name" validate:"required,min=2,max=100,valid_name"`
	Age       int    `json:"age" validate:"required,min=1,max=120"`
	Gender    string `json:"gender" validate:"required,oneof=male female other"`
	Prakriti  string `json:"prakriti" validate:"required,prakriti"`
	Condition string `json:"condition" validate:"omitempty,max=500"`
}

type OnboardingSubmitRequest struct {
	Clinic       ClinicDetails `json:"clinic"`
	FirstPatient FirstPatient  `json:"first_patient"`
}

type OnboardingStatus struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ClinicName  string     `json:"clinic_name,omitempty"`
}

// RosterPatient is one row of a dietitian's patient list.
type RosterPatient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	Prakriti  string    `json:"prakriti"`
	Condition string    `json:"condition,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DietitianRepository interface {
	GetOnboardingStatus(ctx context.Context, userID string) (*OnboardingStatus, error)
	// SaveOnboarding stores the clinic and first patient atomically.
	SaveOnboarding(ctx context.Context, userID string, clinic ClinicDetails, patient FirstPatient) error
	ListPatients(ctx context.Context, userID string) ([]RosterPatient, error)
}

type OnboardingUsecase interface {
	GetOnboardingStatus(ctx context.Context, userID string) (*OnboardingStatus, error)
	CompleteOnboarding(ctx context.Context, userID string, req *OnboardingSubmitRequest) error
	ListPatients(ctx context.Context, userID string) ([]RosterPatient, error)
}
