package usecase

import (
	"context"
	"errors"
	"time"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/prakriti"
	"ayurdiet-backend/internal/wizard"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/logger"
	"ayurdiet-backend/pkg/metrics"
	"ayurdiet-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type assessmentUsecase struct {
	repo    domain.PatientProfileRepository
	flow    *wizard.Definition
	metrics *metrics.Recorder
}

func NewAssessmentUsecase(repo domain.PatientProfileRepository, validate *validator.Validate, rec *metrics.Recorder) domain.AssessmentUsecase {
	return &assessmentUsecase{
		repo:    repo,
		flow:    NewAssessmentFlow(validate),
		metrics: rec,
	}
}

// Classify scores the constitution answers without saving anything.
func (u *assessmentUsecase) Classify(ctx context.Context, req *domain.ClassifyRequest) (*prakriti.Result, error) {
	answers, err := toResponse(req.Constitution)
	if err != nil {
		u.metrics.Classification("rejected")
		return nil, stepError(err)
	}
	res, err := prakriti.Classify(answers)
	if err != nil {
		u.metrics.Classification("rejected")
		return nil, stepError(err)
	}
	u.metrics.Classification(res.Label.String())
	return &res, nil
}

// Submit replays the whole wizard and stores the completed assessment.
func (u *assessmentUsecase) Submit(ctx context.Context, userID string, req *domain.AssessmentSubmitRequest) (*domain.PatientAssessment, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	answers, err := toResponse(req.Constitution)
	if err != nil {
		u.metrics.Classification("rejected")
		return nil, stepError(err)
	}
	state, err := u.flow.Replay(map[wizard.StepID]any{
		StepConstitution:       answers,
		StepHealthGoals:        req.HealthGoals,
		StepDietaryPreferences: req.DietaryPreferences,
	})
	if err != nil {
		step, _ := state.CurrentStep()
		logger.Log.Debug("Assessment step rejected", "user_id", userID, "step", step, "error", err)
		if step == StepConstitution {
			u.metrics.Classification("rejected")
		}
		return nil, stepError(err)
	}

	// The constitution step already accepted these answers.
	res, err := prakriti.Classify(answers)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.metrics.Classification(res.Label.String())

	assessment := &domain.PatientAssessment{
		UserID:             userID,
		Completed:          state.Completed,
		Prakriti:           res.Label,
		Scores:             res.Score,
		HealthGoals:        req.HealthGoals,
		DietaryPreferences: req.DietaryPreferences,
		UpdatedAt:          time.Now(),
	}
	if err := u.repo.SaveAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	logger.Log.Info("Assessment completed", "user_id", userID, "prakriti", res.Label.String())
	return assessment, nil
}

func (u *assessmentUsecase) Get(ctx context.Context, userID string) (*domain.PatientAssessment, error) {
	assessment, err := u.repo.GetAssessment(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !assessment.Completed {
		return nil, apperror.NotFound("Assessment not completed")
	}
	return assessment, nil
}

// Retake clears the stored result; the next submission starts from scratch.
func (u *assessmentUsecase) Retake(ctx context.Context, userID string) error {
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	return u.repo.ClearAssessment(ctx, userID)
}

func (u *assessmentUsecase) Plan(ctx context.Context, userID string) (*domain.DietPlan, error) {
	assessment, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.DietPlan{
		Prakriti: assessment.Prakriti,
		Plan:     prakriti.PlanFor(assessment.Prakriti),
	}, nil
}

// stepError maps a rejected wizard step to an API error: field validation and
// duplicated answers are a 400, a questionnaire the classifier refuses is a 422.
func stepError(err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return apperror.BadRequest("Validation failed").WithDetails(validation.FormatValidationErrors(verrs))
	case errors.Is(err, prakriti.ErrIncompleteResponse):
		return apperror.Unprocessable("Please answer every question", err).WithDetails(err.Error())
	case errors.Is(err, prakriti.ErrInvalidCategory):
		return apperror.Unprocessable("Answers must be vata, pitta or kapha", err).WithDetails(err.Error())
	case errors.Is(err, errDuplicateAnswer):
		return apperror.BadRequest("Each question may be answered once").WithDetails(err.Error())
	case errors.Is(err, wizard.ErrInputType):
		return apperror.BadRequest("Invalid request body")
	case errors.Is(err, wizard.ErrStepRejected):
		return apperror.Unprocessable("Step rejected", err).WithDetails(err.Error())
	default:
		return apperror.Internal(err)
	}
}
