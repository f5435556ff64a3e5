package v1

import (
	"net/http"

	"ayurdiet-backend/internal/delivery/http/response"
	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentUC domain.AssessmentUsecase
}

func NewAssessmentHandler(r *gin.RouterGroup, assessmentUC domain.AssessmentUsecase) {
	handler := &AssessmentHandler{assessmentUC: assessmentUC}

	assessment := r.Group("/assessment")
	{
		assessment.POST("/classify", handler.Classify)
		assessment.POST("", handler.Submit)
		assessment.GET("", handler.Get)
		assessment.DELETE("", handler.Retake)
	}
	r.GET("/plan", handler.Plan)
}

// Classify godoc
// @Summary      Classify constitution answers
// @Description  Scores the three constitution questions without storing anything.
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ClassifyRequest  true  "Answers keyed by question"
// @Success      200      {object}  response.Response{data=prakriti.Result}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /patient/assessment/classify [post]
// @Security     BearerAuth
func (h *AssessmentHandler) Classify(c *gin.Context) {
	var req domain.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	result, err := h.assessmentUC.Classify(c, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Constitution classified", result)
}

// Submit godoc
// @Summary      Submit the assessment
// @Description  Runs every wizard step and stores the constitution, goals and preferences.
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        request  body      domain.AssessmentSubmitRequest  true  "Assessment"
// @Success      201      {object}  response.Response{data=domain.PatientAssessment}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /patient/assessment [post]
// @Security     BearerAuth
func (h *AssessmentHandler) Submit(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.AssessmentSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	assessment, err := h.assessmentUC.Submit(c, userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Assessment saved", assessment)
}

// Get godoc
// @Summary      Get the stored assessment
// @Tags         assessment
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.PatientAssessment}
// @Failure      404  {object}  response.Response
// @Router       /patient/assessment [get]
// @Security     BearerAuth
func (h *AssessmentHandler) Get(c *gin.Context) {
	assessment, err := h.assessmentUC.Get(c, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Assessment retrieved", assessment)
}

// Retake godoc
// @Summary      Retake the assessment
// @Description  Clears the stored constitution so the wizard starts over.
// @Tags         assessment
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /patient/assessment [delete]
// @Security     BearerAuth
func (h *AssessmentHandler) Retake(c *gin.Context) {
	if err := h.assessmentUC.Retake(c, c.GetString(string(domain.KeyUserID))); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Assessment cleared", nil)
}

// Plan godoc
// @Summary      Diet plan preview
// @Tags         assessment
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DietPlan}
// @Failure      404  {object}  response.Response
// @Router       /patient/plan [get]
// @Security     BearerAuth
func (h *AssessmentHandler) Plan(c *gin.Context) {
	plan, err := h.assessmentUC.Plan(c, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Diet plan retrieved", plan)
}
