package middleware

import (
	"errors"
	"net/http"
	"strings"

	"ayurdiet-backend/internal/delivery/http/response"
	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/navigation"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/auth"
	"ayurdiet-backend/pkg/logger"
	"ayurdiet-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const AuthCookieName = "auth_token"

// Authenticator resolves the caller of each request into an auth status.
type Authenticator struct {
	verifier *auth.Verifier
	authUC   domain.AuthUsecase
	metrics  *metrics.Recorder
}

func NewAuthenticator(verifier *auth.Verifier, authUC domain.AuthUsecase, rec *metrics.Recorder) *Authenticator {
	return &Authenticator{verifier: verifier, authUC: authUC, metrics: rec}
}

// TokenFromRequest reads the bearer token, falling back to the auth cookie.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
			return strings.TrimSpace(h[7:])
		}
		return ""
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// Resolve sets the request's auth status without rejecting anyone. A missing
// or invalid token, or an unknown role, is Unauthenticated. Only a failing
// backing store aborts the request.
func (a *Authenticator) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := navigation.UnauthenticatedStatus()

		if token := TokenFromRequest(c); token != "" {
			claims, err := a.verifier.Verify(c.Request.Context(), token)
			if err != nil {
				logger.Log.Debug("Token rejected", "error", err, "ip", c.ClientIP())
			} else {
				identity, err := a.authUC.ResolveIdentity(c.Request.Context(), domain.TokenClaims{
					Subject:       claims.Subject,
					Email:         claims.Email,
					UserType:      claims.UserMetadata.UserType,
					FullName:      claims.UserMetadata.FullName,
					EmailVerified: claims.UserMetadata.EmailVerified,
				})
				switch {
				case err == nil:
					setIdentity(c, identity)
					status = identity.Status()
				case isClientError(err):
					logger.Log.Debug("Identity rejected", "sub", claims.Subject, "error", err)
				default:
					c.Error(err)
					c.Abort()
					return
				}
			}
		}

		c.Set(string(domain.KeyAuthStatus), status)
		c.Next()
	}
}

// RequireRole gates a route group with the navigation role gate. Allow
// continues; a login redirect becomes 401 and a role-home redirect becomes
// 403, both carrying where the client should go.
func RequireRole(required navigation.Requirement, rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := navigation.Decide(StatusFrom(c), required, c.Request.URL.Path)
		rec.Decision(decision.Kind.String(), required.String())

		switch decision.Kind {
		case navigation.Allow:
			c.Next()
		case navigation.RedirectToRoleHome:
			logger.Log.Debug("Role gate redirect", "required", required.String(), "role", decision.Role, "location", decision.Location)
			response.Abort(c, http.StatusForbidden, "This area belongs to another role", decision)
		default:
			response.Abort(c, http.StatusUnauthorized, "Authentication required", decision)
		}
	}
}

// IdentityFrom returns the resolved caller, if any.
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	v, ok := c.Get(string(domain.KeyIdentity))
	if !ok {
		return nil, false
	}
	id, ok := v.(*domain.Identity)
	return id, ok && id != nil
}

// StatusFrom returns the auth status set by Resolve. Without it the caller is
// Unauthenticated.
func StatusFrom(c *gin.Context) navigation.AuthStatus {
	if v, ok := c.Get(string(domain.KeyAuthStatus)); ok {
		if s, ok := v.(navigation.AuthStatus); ok {
			return s
		}
	}
	return navigation.UnauthenticatedStatus()
}

func setIdentity(c *gin.Context, id *domain.Identity) {
	c.Set(string(domain.KeyIdentity), id)
	c.Set(string(domain.KeyUserID), id.UserID)
	c.Set(string(domain.KeyUserEmail), id.Email)
	c.Set(string(domain.KeyUserRole), string(id.Role))
}

func isClientError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError
}
