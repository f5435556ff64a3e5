package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/prakriti"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type patientProfileRepo struct {
	db *pgxpool.Pool
}

func NewPatientProfileRepository(db *pgxpool.Pool) domain.PatientProfileRepository {
	return &patientProfileRepo{db: db}
}

func (r *patientProfileRepo) GetAssessment(ctx context.Context, userID string) (*domain.PatientAssessment, error) {
	query := `
		SELECT user_id, assessment_completed, COALESCE(prakriti_type, ''),
		       constitution_scores, health_goals, dietary_preferences, updated_at
		FROM patient_profiles
		WHERE user_id = $1
	`

	var (
		a         domain.PatientAssessment
		label     string
		scoresRaw []byte
		prefsRaw  []byte
		goals     []string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&a.UserID, &a.Completed, &label, &scoresRaw, pq.Array(&goals), &prefsRaw, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Patient profile not found")
		}
		return nil, apperror.Internal(fmt.Errorf("get patient assessment: %w", err))
	}

	if a.Prakriti, err = prakriti.ParseLabel(label); err != nil {
		// Written by an older client; treat as not assessed.
		logger.Log.Warn("Stored prakriti unreadable", "user_id", userID, "value", label)
		a.Completed = false
	}
	if len(scoresRaw) > 0 {
		if err := json.Unmarshal(scoresRaw, &a.Scores); err != nil {
			return nil, apperror.Internal(fmt.Errorf("decode constitution_scores: %w", err))
		}
	}
	if len(prefsRaw) > 0 {
		if err := json.Unmarshal(prefsRaw, &a.DietaryPreferences); err != nil {
			return nil, apperror.Internal(fmt.Errorf("decode dietary_preferences: %w", err))
		}
	}
	a.HealthGoals = make([]domain.HealthGoal, len(goals))
	for i, g := range goals {
		a.HealthGoals[i] = domain.HealthGoal(g)
	}
	return &a, nil
}

// SaveAssessment upserts the profile row; a retake overwrites the previous
// result.
func (r *patientProfileRepo) SaveAssessment(ctx context.Context, a *domain.PatientAssessment) error {
	scores, err := json.Marshal(a.Scores)
	if err != nil {
		return apperror.Internal(err)
	}
	prefs, err := json.Marshal(a.DietaryPreferences)
	if err != nil {
		return apperror.Internal(err)
	}
	goals := make([]string, len(a.HealthGoals))
	for i, g := range a.HealthGoals {
		goals[i] = string(g)
	}

	query := `
		INSERT INTO patient_profiles
			(user_id, assessment_completed, prakriti_type, constitution_scores, health_goals, dietary_preferences, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			assessment_completed = EXCLUDED.assessment_completed,
			prakriti_type        = EXCLUDED.prakriti_type,
			constitution_scores  = EXCLUDED.constitution_scores,
			health_goals         = EXCLUDED.health_goals,
			dietary_preferences  = EXCLUDED.dietary_preferences,
			updated_at           = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		a.UserID, a.Completed, a.Prakriti.String(), scores, pq.Array(goals), prefs, a.UpdatedAt,
	)
	if err != nil {
		return apperror.Internal(fmt.Errorf("save patient assessment: %w", err))
	}
	return nil
}

func (r *patientProfileRepo) ClearAssessment(ctx context.Context, userID string) error {
	query := `
		UPDATE patient_profiles
		SET assessment_completed = false, prakriti_type = NULL, constitution_scores = NULL, updated_at = NOW()
		WHERE user_id = $1
	`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return apperror.Internal(fmt.Errorf("clear patient assessment: %w", err))
	}
	return nil
}
