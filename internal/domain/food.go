package domain

import (
	"context"

	"ayurdiet-backend/internal/fooddb"
)

type FoodUsecase interface {
	Search(ctx context.Context, query, category string) ([]fooddb.Food, error)
	Categories(ctx context.Context) []fooddb.CategoryInfo
}

type HealthUsecase interface {
	// Check returns per-dependency status and whether all are healthy.
	Check(ctx context.Context) (map[string]string, bool)
}
