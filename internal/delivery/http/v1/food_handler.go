package v1

import (
	"net/http"

	"ayurdiet-backend/internal/delivery/http/response"
	"ayurdiet-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type FoodHandler struct {
	foodUC domain.FoodUsecase
}

func NewFoodHandler(r *gin.RouterGroup, foodUC domain.FoodUsecase) {
	handler := &FoodHandler{foodUC: foodUC}

	foods := r.Group("/foods")
	{
		foods.GET("", handler.Search)
		foods.GET("/categories", handler.Categories)
	}
}

// Search godoc
// @Summary      Search the food database
// @Description  Case-insensitive match on the food name, optionally within a category
// @Tags         foods
// @Produce      json
// @Param        q         query     string  false  "Search text"
// @Param        category  query     string  false  "Category id or all"
// @Success      200       {object}  response.Response{data=[]fooddb.Food}
// @Failure      400       {object}  response.Response
// @Router       /foods [get]
// @Security     BearerAuth
func (h *FoodHandler) Search(c *gin.Context) {
	foods, err := h.foodUC.Search(c, c.Query("q"), c.Query("category"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Foods retrieved", foods)
}

// Categories godoc
// @Summary      Food categories with counts
// @Tags         foods
// @Produce      json
// @Success      200  {object}  response.Response{data=[]fooddb.CategoryInfo}
// @Router       /foods/categories [get]
// @Security     BearerAuth
func (h *FoodHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, "Categories retrieved", h.foodUC.Categories(c))
}
