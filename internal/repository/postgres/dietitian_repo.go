package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dietitianRepo struct {
	db *pgxpool.Pool
}

func NewDietitianRepository(db *pgxpool.Pool) domain.DietitianRepository {
	return &dietitianRepo{db: db}
}

func (r *dietitianRepo) GetOnboardingStatus(ctx context.Context, userID string) (*domain.OnboardingStatus, error) {
	var (
		completedAt *time.Time
		clinicName  *string
	)
	err := r.db.QueryRow(ctx, `
		SELECT onboarding_completed_at, clinic_name
		FROM dietitian_profiles
		WHERE user_id = $1
	`, userID).Scan(&completedAt, &clinicName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.OnboardingStatus{}, nil
		}
		return nil, apperror.Internal(fmt.Errorf("failed to check onboarding status: %w", err))
	}

	status := &domain.OnboardingStatus{
		Completed:   completedAt != nil,
		CompletedAt: completedAt,
	}
	if clinicName != nil {
		status.ClinicName = *clinicName
	}
	return status, nil
}

// ============================================================================
// Save Onboarding Data (Atomic Transaction)
// ============================================================================

func (r *dietitianRepo) SaveOnboarding(ctx context.Context, userID string, clinic domain.ClinicDetails, patient domain.FirstPatient) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Log.Error("Onboarding rollback failed", "user_id", userID, "error", rbErr)
		}
	}()

	now := time.Now()

	// 1. Upsert clinic details and mark onboarding complete
	_, err = tx.Exec(ctx, `
		INSERT INTO dietitian_profiles (user_id, clinic_name, specialization, contact, address, onboarding_completed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			clinic_name             = EXCLUDED.clinic_name,
			specialization          = EXCLUDED.specialization,
			contact                 = EXCLUDED.contact,
			address                 = EXCLUDED.address,
			onboarding_completed_at = EXCLUDED.onboarding_completed_at,
			updated_at              = EXCLUDED.updated_at
	`, userID, clinic.Name, clinic.Specialization, clinic.Contact, clinic.Address, now)
	if err != nil {
		return apperror.Internal(fmt.Errorf("failed to save clinic details: %w", err))
	}

	// 2. Register the first patient on the roster
	_, err = tx.Exec(ctx, `
		INSERT INTO dietitian_patients (dietitian_id, name, age, gender, prakriti, condition, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, patient.Name, patient.Age, patient.Gender, patient.Prakriti, patient.Condition, now)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Patient already registered")
		}
		return apperror.Internal(fmt.Errorf("failed to save first patient: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(fmt.Errorf("failed to commit onboarding: %w", err))
	}
	return nil
}

func (r *dietitianRepo) ListPatients(ctx context.Context, userID string) ([]domain.RosterPatient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, age, gender, prakriti, COALESCE(condition, ''), created_at
		FROM dietitian_patients
		WHERE dietitian_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list patients: %w", err))
	}
	defer rows.Close()

	var patients []domain.RosterPatient
	for rows.Next() {
		var p domain.RosterPatient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Prakriti, &p.Condition, &p.CreatedAt); err != nil {
			return nil, apperror.Internal(fmt.Errorf("failed to scan patient row: %w", err))
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(fmt.Errorf("error iterating patient rows: %w", err))
	}
	return patients, nil
}
