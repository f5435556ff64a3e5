package domain

import (
	"context"
	"time"

	"ayurdiet-backend/internal/navigation"
)

type User struct {
	ID        string          `json:"id"` // Supabase UUID
	Email     string          `json:"email"`
	Role      navigation.Role `json:"role"`
	FullName  string          `json:"full_name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Identity is who the caller is, as asserted by a verified access token.
type Identity struct {
	UserID        string          `json:"userId"`
	Email         string          `json:"email"`
	Role          navigation.Role `json:"role"`
	EmailVerified bool            `json:"emailVerified"`
}

// Status is the auth status the router sees for this identity.
func (i *Identity) Status() navigation.AuthStatus {
	if i == nil {
		return navigation.UnauthenticatedStatus()
	}
	return navigation.AuthenticatedAs(i.Role)
}

// TokenClaims is the verified token content the auth boundary works from.
type TokenClaims struct {
	Subject       string
	Email         string
	UserType      string
	FullName      string
	EmailVerified bool
}

// ============================================================================
// Sign-up / Sign-in DTOs
// ============================================================================

type PatientSignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name" validate:"required,min=2,max=100,valid_name,no_emoji"`
	Age             int    `json:"age" validate:"required,min=1,max=120"`
	Gender          string `json:"gender" validate:"required,oneof=male female other"`
	Location        string `json:"location" validate:"required,max=200,no_emoji"`
	ContactNumber   string `json:"contact_number" validate:"required,valid_phone"`
}

type DietitianSignUpRequest struct {
	Email               string   `json:"email" validate:"required,email"`
	Password            string   `json:"password" validate:"required,min=6"`
	ConfirmPassword     string   `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName            string   `json:"full_name" validate:"required,min=2,max=100,valid_name,no_emoji"`
	LicenseNumber       string   `json:"license_number" validate:"required,max=50"`
	Qualification       string   `json:"qualification" validate:"required,max=200"`
	SpecializationAreas []string `json:"specialization_areas" validate:"required,min=1,dive,required,max=100"`
	YearsExperience     int      `json:"years_experience" validate:"min=0,max=70"`
	ClinicName          string   `json:"clinic_name" validate:"required,max=200,no_emoji"`
	Location            string   `json:"location" validate:"required,max=200,no_emoji"`
	ContactNumber       string   `json:"contact_number" validate:"required,valid_phone"`
	PreferredLanguages  []string `json:"preferred_languages" validate:"omitempty,dive,required,max=50"`
	PracticeType        string   `json:"practice_type" validate:"required,oneof=clinic hospital online hybrid"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthSession is what the hosted auth service returns for a session.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	UserID       string
	Email        string
	UserType     string
	FullName     string
}

// AuthResult is returned by sign-up and login. Token is empty when the
// account still awaits email confirmation.
type AuthResult struct {
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	User         *User  `json:"user"`
	Home         string `json:"home"`
}

// ============================================================================
// Interfaces
// ============================================================================

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// AuthGateway talks to the hosted auth service. It owns credentials,
// confirmation mail and refresh; the API only proxies.
type AuthGateway interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*AuthSession, error)
	SignIn(ctx context.Context, email, password string) (*AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *PatientSignUpRequest) (*AuthResult, error)
	RegisterDietitian(ctx context.Context, req *DietitianSignUpRequest) (*AuthResult, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResult, error)
	Logout(ctx context.Context, identity *Identity, accessToken string) error
	ResolveIdentity(ctx context.Context, claims TokenClaims) (*Identity, error)
	EnsureUserExists(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
