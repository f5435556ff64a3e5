package usecase

import (
	"context"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/wizard"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type onboardingUsecase struct {
	repo domain.DietitianRepository
	flow *wizard.Definition
}

func NewOnboardingUsecase(repo domain.DietitianRepository, validate *validator.Validate) domain.OnboardingUsecase {
	return &onboardingUsecase{
		repo: repo,
		flow: NewOnboardingFlow(validate),
	}
}

func (u *onboardingUsecase) GetOnboardingStatus(ctx context.Context, userID string) (*domain.OnboardingStatus, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return u.repo.GetOnboardingStatus(ctx, userID)
}

func (u *onboardingUsecase) CompleteOnboarding(ctx context.Context, userID string, req *domain.OnboardingSubmitRequest) error {
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}

	logger.Log.Info("Dietitian onboarding submitted", "user_id", userID)

	_, err := u.flow.Replay(map[wizard.StepID]any{
		StepClinic:       req.Clinic,
		StepFirstPatient: req.FirstPatient,
	})
	if err != nil {
		return stepError(err)
	}

	status, err := u.repo.GetOnboardingStatus(ctx, userID)
	if err != nil {
		return err
	}
	if status.Completed {
		return apperror.Conflict("Onboarding already completed")
	}

	if err := u.repo.SaveOnboarding(ctx, userID, req.Clinic, req.FirstPatient); err != nil {
		logger.Log.Error("Dietitian onboarding save failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}

func (u *onboardingUsecase) ListPatients(ctx context.Context, userID string) ([]domain.RosterPatient, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	patients, err := u.repo.ListPatients(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patients == nil {
		patients = []domain.RosterPatient{}
	}
	return patients, nil
}
