package v1

import (
	"context"
	"io"
	"net/http"
	"time"

	"ayurdiet-backend/internal/delivery/http/middleware"
	"ayurdiet-backend/internal/delivery/http/response"
	"ayurdiet-backend/internal/navigation"
	"ayurdiet-backend/internal/session"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const streamHeartbeat = 25 * time.Second

type NavigationHandler struct {
	registry *navigation.Registry
	hub      *session.Hub
	metrics  *metrics.Recorder
}

// NavigationResult is what the web client needs to route one attempt.
type NavigationResult struct {
	Status   navigation.AuthStatus `json:"status"`
	Screen   navigation.Screen     `json:"screen"`
	Decision navigation.Decision   `json:"decision"`
}

// SessionEvent is pushed on the session stream whenever the status changes.
type SessionEvent struct {
	Status   navigation.AuthStatus `json:"status"`
	Path     string                `json:"path"`
	Decision navigation.Decision   `json:"decision"`
}

// NewNavigationHandler mounts the decision routes on optional (auth resolved,
// never required) and the session stream on protected.
func NewNavigationHandler(optional, protected *gin.RouterGroup, registry *navigation.Registry, hub *session.Hub, rec *metrics.Recorder) {
	handler := &NavigationHandler{registry: registry, hub: hub, metrics: rec}

	nav := optional.Group("/navigation")
	{
		nav.GET("/decide", handler.Decide)
		nav.GET("/screens", handler.Screens)
	}

	protected.GET("/session/stream", handler.Stream)
}

// Decide godoc
// @Summary      Decide a navigation attempt
// @Description  Evaluates the caller's auth status against a client path. "required" overrides the screen's own rule.
// @Tags         navigation
// @Produce      json
// @Param        path      query     string  true   "Client path, e.g. /dietitian/dashboard"
// @Param        required  query     string  false  "any, patient or dietitian"
// @Success      200       {object}  response.Response{data=NavigationResult}
// @Failure      400       {object}  response.Response
// @Router       /navigation/decide [get]
func (h *NavigationHandler) Decide(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.Error(apperror.BadRequest("path is required"))
		return
	}

	status := middleware.StatusFrom(c)
	screen := h.registry.Lookup(path)

	var decision navigation.Decision
	if raw, ok := c.GetQuery("required"); ok {
		required, err := parseRequirement(raw)
		if err != nil {
			c.Error(err)
			return
		}
		decision = navigation.Decide(status, required, path)
		h.metrics.Decision(decision.Kind.String(), required.String())
	} else {
		decision = h.registry.Evaluate(status, path)
		h.metrics.Decision(decision.Kind.String(), screen.Required.String())
	}

	response.Success(c, http.StatusOK, "Navigation decided", NavigationResult{
		Status:   status,
		Screen:   screen,
		Decision: decision,
	})
}

// Screens godoc
// @Summary      List client screens
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  response.Response{data=[]navigation.Screen}
// @Router       /navigation/screens [get]
func (h *NavigationHandler) Screens(c *gin.Context) {
	response.Success(c, http.StatusOK, "Screens retrieved", h.registry.Screens())
}

// Stream godoc
// @Summary      Session stream
// @Description  Server-sent events carrying the caller's auth status and the decision for "path" each time the status changes.
// @Tags         navigation
// @Produce      text/event-stream
// @Param        path  query  string  false  "Client path to evaluate; defaults to the role home"
// @Success      200
// @Failure      401  {object}  response.Response
// @Router       /session/stream [get]
// @Security     BearerAuth
func (h *NavigationHandler) Stream(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}
	path := c.DefaultQuery("path", identity.Role.Home())

	ctx, cancel := context.WithCancel(c.Request.Context())
	updates := h.hub.Subscribe(ctx, identity.UserID)
	h.metrics.StreamOpened()
	defer func() {
		cancel()
		// Wait for the subscription to close before dropping the source.
		for range updates {
		}
		h.hub.Forget(identity.UserID)
		h.metrics.StreamClosed()
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case status, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("session", SessionEvent{
				Status:   status,
				Path:     path,
				Decision: h.registry.Evaluate(status, path),
			})
			// Signed out: the client leaves, so does the stream.
			return status.Kind() != navigation.Unauthenticated
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}

func parseRequirement(raw string) (navigation.Requirement, error) {
	if raw == "" || raw == "any" {
		return navigation.RequireAny, nil
	}
	role, ok := navigation.ParseRole(raw)
	if !ok {
		return navigation.RequireAny, apperror.BadRequest("required must be any, patient or dietitian")
	}
	return navigation.Requirement(role), nil
}
