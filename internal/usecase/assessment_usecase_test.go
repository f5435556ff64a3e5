package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/prakriti"
	"ayurdiet-backend/internal/usecase"
	"ayurdiet-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSubmission() *domain.AssessmentSubmitRequest {
	return &domain.AssessmentSubmitRequest{
		Constitution: map[string]string{"digestion": "kapha", "energy": "vata", "sleep": "kapha"},
		HealthGoals:  []domain.HealthGoal{domain.GoalDigestion, domain.GoalStress},
		DietaryPreferences: domain.DietaryPreferences{
			FoodOption:   "vegetarian",
			SpiceLevel:   "mild",
			MealTiming:   "regular",
			CookingStyle: "cooked-light",
		},
	}
}

func TestAssessmentSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Should classify and persist a complete assessment", func(t *testing.T) {
		repo := new(MockPatientRepo)
		uc := usecase.NewAssessmentUsecase(repo, newValidator(), nil)

		repo.On("SaveAssessment", ctx, mock.MatchedBy(func(a *domain.PatientAssessment) bool {
			return a.UserID == "p1" && a.Completed && a.Prakriti.String() == "Kapha"
		})).Return(nil).Once()

		got, err := uc.Submit(ctx, "p1", validSubmission())
		require.NoError(t, err)
		assert.Equal(t, prakriti.Score{Vata: 1, Pitta: 0, Kapha: 2}, got.Scores)
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		mutate func(r *domain.AssessmentSubmitRequest)
		code   int
	}{
		{"incomplete questionnaire", func(r *domain.AssessmentSubmitRequest) { delete(r.Constitution, "sleep") }, http.StatusUnprocessableEntity},
		{"empty answer", func(r *domain.AssessmentSubmitRequest) { r.Constitution["energy"] = "" }, http.StatusUnprocessableEntity},
		{"unknown category", func(r *domain.AssessmentSubmitRequest) { r.Constitution["energy"] = "agni" }, http.StatusUnprocessableEntity},
		{"no health goal", func(r *domain.AssessmentSubmitRequest) { r.HealthGoals = nil }, http.StatusUnprocessableEntity},
		{"unknown health goal", func(r *domain.AssessmentSubmitRequest) { r.HealthGoals = []domain.HealthGoal{"flying"} }, http.StatusUnprocessableEntity},
		{"missing preference", func(r *domain.AssessmentSubmitRequest) { r.DietaryPreferences.SpiceLevel = "" }, http.StatusBadRequest},
		{"bad preference", func(r *domain.AssessmentSubmitRequest) { r.DietaryPreferences.FoodOption = "carnivore" }, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run("Should reject "+tt.name, func(t *testing.T) {
			repo := new(MockPatientRepo)
			uc := usecase.NewAssessmentUsecase(repo, newValidator(), nil)

			req := validSubmission()
			tt.mutate(req)
			_, err := uc.Submit(ctx, "p1", req)
			assert.Equal(t, tt.code, appCode(t, err))
			repo.AssertNotCalled(t, "SaveAssessment", mock.Anything, mock.Anything)
		})
	}

	t.Run("Should require a user", func(t *testing.T) {
		uc := usecase.NewAssessmentUsecase(new(MockPatientRepo), newValidator(), nil)
		_, err := uc.Submit(ctx, "", validSubmission())
		assert.Equal(t, http.StatusUnauthorized, appCode(t, err))
	})
}

func TestAssessmentClassifyPreview(t *testing.T) {
	uc := usecase.NewAssessmentUsecase(new(MockPatientRepo), newValidator(), nil)

	res, err := uc.Classify(context.Background(), &domain.ClassifyRequest{
		Constitution: map[string]string{"Digestion": "vata", "energy": "pitta", "sleep": "kapha"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Vata-pitta-kapha", res.Label.String())

	_, err = uc.Classify(context.Background(), &domain.ClassifyRequest{Constitution: map[string]string{"digestion": "vata"}})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
}

func TestAssessmentRejectsDuplicateQuestion(t *testing.T) {
	ctx := context.Background()
	answers := map[string]string{"digestion": "vata", "DIGESTION": "kapha", "energy": "kapha", "sleep": "vata"}

	t.Run("Should reject the same question under two spellings on classify", func(t *testing.T) {
		uc := usecase.NewAssessmentUsecase(new(MockPatientRepo), newValidator(), nil)
		for i := 0; i < 50; i++ {
			_, err := uc.Classify(ctx, &domain.ClassifyRequest{Constitution: answers})
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, appCode(t, err))

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Details, "digestion")
		}
	})

	t.Run("Should reject it on submit without saving", func(t *testing.T) {
		repo := new(MockPatientRepo)
		uc := usecase.NewAssessmentUsecase(repo, newValidator(), nil)

		req := validSubmission()
		req.Constitution = answers
		_, err := uc.Submit(ctx, "p1", req)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		repo.AssertNotCalled(t, "SaveAssessment", mock.Anything, mock.Anything)
	})
}

func TestAssessmentPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("Should merge recommendations of a dual label", func(t *testing.T) {
		repo := new(MockPatientRepo)
		uc := usecase.NewAssessmentUsecase(repo, newValidator(), nil)

		label, err := prakriti.ParseLabel("Vata-pitta")
		require.NoError(t, err)
		repo.On("GetAssessment", ctx, "p1").Return(&domain.PatientAssessment{UserID: "p1", Completed: true, Prakriti: label}, nil)

		plan, err := uc.Plan(ctx, "p1")
		require.NoError(t, err)
		assert.Contains(t, plan.Foods, "Warm, cooked meals")
		assert.Contains(t, plan.Foods, "Leafy greens")
		assert.NotContains(t, plan.Foods, "Legumes and beans")
	})

	t.Run("Should 404 after a retake", func(t *testing.T) {
		repo := new(MockPatientRepo)
		uc := usecase.NewAssessmentUsecase(repo, newValidator(), nil)

		repo.On("ClearAssessment", ctx, "p1").Return(nil)
		repo.On("GetAssessment", ctx, "p1").Return(&domain.PatientAssessment{UserID: "p1"}, nil)

		require.NoError(t, uc.Retake(ctx, "p1"))
		_, err := uc.Plan(ctx, "p1")
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})

	t.Run("Should pass repository not found through", func(t *testing.T) {
		repo := new(MockPatientRepo)
		uc := usecase.NewAssessmentUsecase(repo, newValidator(), nil)

		repo.On("GetAssessment", ctx, "p2").Return(nil, apperror.NotFound("Patient profile not found"))
		_, err := uc.Get(ctx, "p2")
		assert.True(t, apperror.IsNotFound(err))
	})
}
