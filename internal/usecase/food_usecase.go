package usecase

import (
	"context"
	"fmt"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/fooddb"
	"ayurdiet-backend/pkg/apperror"
)

type foodUsecase struct {
	foods []fooddb.Food
}

// NewFoodUsecase serves the given catalogue, or the built-in one when nil.
func NewFoodUsecase(foods []fooddb.Food) domain.FoodUsecase {
	if foods == nil {
		foods = fooddb.Catalogue()
	}
	return &foodUsecase{foods: foods}
}

func (u *foodUsecase) Search(ctx context.Context, query, category string) ([]fooddb.Food, error) {
	if !fooddb.IsKnownCategory(category) {
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown category %q", category))
	}
	return fooddb.Filter(u.foods, query, category), nil
}

func (u *foodUsecase) Categories(ctx context.Context) []fooddb.CategoryInfo {
	return fooddb.Categories(u.foods)
}
