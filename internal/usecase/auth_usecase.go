package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/navigation"
	"ayurdiet-backend/internal/session"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/logger"
	"ayurdiet-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultIdentityCacheSize = 1024
	defaultIdentityCacheTTL  = 30 * time.Second
)

type AuthConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

type authUsecase struct {
	userRepo domain.UserRepository
	gateway  domain.AuthGateway
	hub      *session.Hub
	validate *validator.Validate
	// users already synced to the local table, by id
	known *expirable.LRU[string, domain.User]
}

func NewAuthUsecase(userRepo domain.UserRepository, gateway domain.AuthGateway, hub *session.Hub, validate *validator.Validate, cfg AuthConfig) domain.AuthUsecase {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultIdentityCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultIdentityCacheTTL
	}
	if hub == nil {
		hub = session.NewHub()
	}
	return &authUsecase{
		userRepo: userRepo,
		gateway:  gateway,
		hub:      hub,
		validate: validate,
		known:    expirable.NewLRU[string, domain.User](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *domain.PatientSignUpRequest) (*domain.AuthResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	return u.register(ctx, req.Email, req.Password, navigation.Patient, map[string]interface{}{
		"user_type":      string(navigation.Patient),
		"full_name":      req.FullName,
		"age":            req.Age,
		"gender":         req.Gender,
		"location":       req.Location,
		"contact_number": req.ContactNumber,
	})
}

func (u *authUsecase) RegisterDietitian(ctx context.Context, req *domain.DietitianSignUpRequest) (*domain.AuthResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	return u.register(ctx, req.Email, req.Password, navigation.Dietitian, map[string]interface{}{
		"user_type":            string(navigation.Dietitian),
		"full_name":            req.FullName,
		"license_number":       req.LicenseNumber,
		"qualification":        req.Qualification,
		"specialization_areas": req.SpecializationAreas,
		"years_experience":     req.YearsExperience,
		"clinic_name":          req.ClinicName,
		"location":             req.Location,
		"contact_number":       req.ContactNumber,
		"preferred_languages":  req.PreferredLanguages,
		"practice_type":        req.PracticeType,
	})
}

func (u *authUsecase) register(ctx context.Context, email, password string, role navigation.Role, metadata map[string]interface{}) (*domain.AuthResult, error) {
	sess, err := u.gateway.SignUp(ctx, email, password, metadata)
	if err != nil {
		return nil, err
	}

	fullName, _ := metadata["full_name"].(string)
	user := &domain.User{ID: sess.UserID, Email: email, Role: role, FullName: fullName}
	result := &domain.AuthResult{User: user, Home: role.Home()}

	// Without a session the account waits for email confirmation; the local
	// row is created on first login.
	if sess.AccessToken == "" {
		return result, nil
	}

	if err := u.EnsureUserExists(ctx, user); err != nil {
		return nil, err
	}
	result.Token = sess.AccessToken
	result.RefreshToken = sess.RefreshToken
	result.ExpiresIn = sess.ExpiresIn
	return result, nil
}

func (u *authUsecase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResult, error) {
	sess, err := u.gateway.SignIn(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return nil, err
	}

	role, ok := navigation.ParseRole(sess.UserType)
	if !ok {
		logger.Log.Warn("Login rejected: unknown user_type", "user_id", sess.UserID, "user_type", sess.UserType)
		return nil, apperror.Forbidden("Account has no valid role")
	}

	user := &domain.User{ID: sess.UserID, Email: sess.Email, Role: role, FullName: sess.FullName}
	if err := u.EnsureUserExists(ctx, user); err != nil {
		return nil, err
	}
	u.hub.Publish(user.ID, navigation.AuthenticatedAs(role))

	return &domain.AuthResult{
		Token:        sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
		User:         user,
		Home:         role.Home(),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, identity *domain.Identity, accessToken string) error {
	if identity == nil {
		return apperror.Unauthorized("User not authenticated")
	}
	if err := u.gateway.SignOut(ctx, accessToken); err != nil {
		// The local session ends either way; the token expires on its own.
		logger.Log.Warn("Auth service sign-out failed", "user_id", identity.UserID, "error", err)
	}
	u.known.Remove(identity.UserID)
	u.hub.Publish(identity.UserID, navigation.UnauthenticatedStatus())
	return nil
}

// ResolveIdentity turns verified token claims into an Identity. The role comes
// from user_metadata.user_type and is validated here once; anything unknown is
// rejected. The local users row is synced at most once per cache TTL.
func (u *authUsecase) ResolveIdentity(ctx context.Context, claims domain.TokenClaims) (*domain.Identity, error) {
	if claims.Subject == "" {
		return nil, apperror.Unauthorized("Invalid token")
	}
	role, ok := navigation.ParseRole(claims.UserType)
	if !ok {
		return nil, apperror.Unauthorized("Unknown user role")
	}

	identity := &domain.Identity{
		UserID:        claims.Subject,
		Email:         claims.Email,
		Role:          role,
		EmailVerified: claims.EmailVerified,
	}

	if cached, ok := u.known.Get(claims.Subject); !ok || cached.Role != role {
		user := &domain.User{ID: claims.Subject, Email: claims.Email, Role: role, FullName: claims.FullName}
		if err := u.EnsureUserExists(ctx, user); err != nil {
			return nil, err
		}
	}

	u.hub.Publish(identity.UserID, identity.Status())
	return identity, nil
}

// EnsureUserExists creates the local users row or syncs its role.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	if !user.Role.IsValid() {
		return apperror.BadRequest("Invalid role")
	}

	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	now := time.Now()
	if existing != nil {
		if existing.Role != user.Role {
			logger.Log.Info("Syncing user role", "user_id", user.ID, "from", existing.Role, "to", user.Role)
			existing.Role = user.Role
			existing.UpdatedAt = now
			if err := u.userRepo.Update(ctx, existing); err != nil {
				return err
			}
		}
		u.known.Add(existing.ID, *existing)
		return nil
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	if err := u.userRepo.Create(ctx, user); err != nil {
		var appErr *apperror.AppError
		// Lost a race with a concurrent first request for the same user.
		if errors.As(err, &appErr) && appErr.Code == http.StatusConflict {
			return nil
		}
		return err
	}
	u.known.Add(user.ID, *user)
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return u.userRepo.GetByID(ctx, id)
}

func validationError(err error) error {
	return apperror.BadRequest("Validation failed").WithDetails(validation.FormatValidationErrors(err))
}
