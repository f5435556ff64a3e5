package v1

import (
	"net/http"

	"ayurdiet-backend/internal/delivery/http/response"
	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
}

func NewOnboardingHandler(r *gin.RouterGroup, onboardingUC domain.OnboardingUsecase) {
	handler := &OnboardingHandler{onboardingUC: onboardingUC}

	onboarding := r.Group("/onboarding")
	{
		onboarding.GET("/status", handler.GetStatus)
		onboarding.POST("", handler.Complete)
	}
	r.GET("/patients", handler.ListPatients)
}

// GetStatus godoc
// @Summary      Get onboarding status
// @Description  Check if the current dietitian has completed onboarding
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingStatus}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /dietitian/onboarding/status [get]
// @Security     BearerAuth
func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	status, err := h.onboardingUC.GetOnboardingStatus(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Onboarding status retrieved", status)
}

// Complete godoc
// @Summary      Complete onboarding
// @Description  Submit clinic details and the first patient in one go
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OnboardingSubmitRequest  true  "Onboarding data"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /dietitian/onboarding [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.OnboardingSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	if err := h.onboardingUC.CompleteOnboarding(c, userID, &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Onboarding completed successfully", nil)
}

// ListPatients godoc
// @Summary      List patients
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.RosterPatient}
// @Router       /dietitian/patients [get]
// @Security     BearerAuth
func (h *OnboardingHandler) ListPatients(c *gin.Context) {
	patients, err := h.onboardingUC.ListPatients(c, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Patients retrieved", patients)
}
