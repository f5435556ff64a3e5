package v1

import (
	"errors"
	"net/http"
	"strconv"

	"ayurdiet-backend/internal/delivery/http/middleware"
	"ayurdiet-backend/internal/delivery/http/response"
	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/lockout"
	"ayurdiet-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	lockout      *lockout.Tracker
	secureCookie bool
}

// NewAuthHandler mounts sign-up and login on public (behind the strict rate
// limit) and the session routes on protected.
// A nil tracker disables the login lockout.
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, tracker *lockout.Tracker, secureCookie bool) {
	handler := &AuthHandler{authUC: authUC, lockout: tracker, secureCookie: secureCookie}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register/patient", handler.RegisterPatient)
		publicAuth.POST("/register/dietitian", handler.RegisterDietitian)
		publicAuth.POST("/login", handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.POST("/logout", handler.Logout)
	}
}

// RegisterPatient godoc
// @Summary      Patient sign-up
// @Description  Create a patient account. When email confirmation is on, no token is returned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.PatientSignUpRequest  true  "Patient details"
// @Success      201      {object}  response.Response{data=domain.AuthResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /auth/register/patient [post]
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req domain.PatientSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	result, err := h.authUC.RegisterPatient(c, &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.respondRegistered(c, result)
}

// RegisterDietitian godoc
// @Summary      Dietitian sign-up
// @Description  Create a dietitian account with professional details.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.DietitianSignUpRequest  true  "Dietitian details"
// @Success      201      {object}  response.Response{data=domain.AuthResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /auth/register/dietitian [post]
func (h *AuthHandler) RegisterDietitian(c *gin.Context) {
	var req domain.DietitianSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	result, err := h.authUC.RegisterDietitian(c, &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.respondRegistered(c, result)
}

func (h *AuthHandler) respondRegistered(c *gin.Context, result *domain.AuthResult) {
	msg := "Registration successful. Please check your email to confirm your account."
	if result.Token != "" {
		h.setAuthCookie(c, result.Token, result.ExpiresIn)
		msg = "Registration successful"
	}
	response.Success(c, http.StatusCreated, msg, result)
}

// Login godoc
// @Summary      Login
// @Description  Password login for patients and dietitians. Returns the token and the role home screen.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=domain.AuthResult}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	ip := c.ClientIP()
	if h.lockout != nil {
		left, err := h.lockout.Blocked(c, req.Email, ip)
		if err != nil {
			logger.Log.Warn("Lockout check failed", "error", err)
		} else if left > 0 {
			c.Header("Retry-After", strconv.Itoa(int(left.Seconds())+1))
			c.Error(apperror.New(http.StatusTooManyRequests, "Too many failed attempts. Please try again later.", nil))
			return
		}
	}

	result, err := h.authUC.Login(c, &req)
	if err != nil {
		h.recordFailure(c, req.Email, ip, err)
		c.Error(err)
		return
	}
	if h.lockout != nil {
		if err := h.lockout.Clear(c, req.Email, ip); err != nil {
			logger.Log.Warn("Lockout clear failed", "error", err)
		}
	}

	h.setAuthCookie(c, result.Token, result.ExpiresIn)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	user, err := h.authUC.GetCurrentUser(c, identity.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User details", gin.H{
		"identity": identity,
		"user":     user,
		"home":     identity.Role.Home(),
	})
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the session upstream and notify open session streams.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.authUC.Logout(c, identity, middleware.TokenFromRequest(c)); err != nil {
		c.Error(err)
		return
	}

	h.clearAuthCookie(c)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) recordFailure(c *gin.Context, email, ip string, loginErr error) {
	var appErr *apperror.AppError
	if h.lockout == nil || !errors.As(loginErr, &appErr) || appErr.Code != http.StatusUnauthorized {
		return
	}
	blocked, err := h.lockout.RecordFailure(c, email, ip)
	if err != nil {
		logger.Log.Warn("Lockout record failed", "error", err)
	}
	if blocked {
		logger.Log.Warn("Login blocked after repeated failures", "email", email, "ip", ip)
	}
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	if token == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secureCookie, true)
}
