package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"ayurdiet-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	CSRFTokenCookieName = "csrf_token"
	CSRFTokenHeaderName = "X-CSRF-Token"
	// 32 bytes, 64 hex chars
	CSRFTokenLength = 32
	CSRFTokenExpiry = 24 * time.Hour
)

// csrfExemptPaths have no session yet and sit behind the auth rate limit.
var csrfExemptPaths = map[string]bool{
	"/v1/auth/login":              true,
	"/v1/auth/register/patient":   true,
	"/v1/auth/register/dietitian": true,
	"/v1/health":                  true,
}

func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func setCSRFCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	// HttpOnly off so the web client can echo it back.
	c.SetCookie(CSRFTokenCookieName, token, int(CSRFTokenExpiry.Seconds()), "/", "", true, false)
}

// CSRFMiddleware implements the double-submit cookie pattern for callers that
// authenticate with the auth cookie. Requests carrying an Authorization header
// cannot be forged cross-site and skip the check.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Abort(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				return
			}
			setCSRFCookie(c, newToken)
			csrfCookie = newToken
		}

		if csrfExemptPaths[c.Request.URL.Path] || c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			response.Abort(c, http.StatusForbidden, "Missing CSRF token", nil)
			return
		}
		if headerToken != csrfCookie {
			response.Abort(c, http.StatusForbidden, "Invalid CSRF token", nil)
			return
		}

		c.Next()
	}
}
