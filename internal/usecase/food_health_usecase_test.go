package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ayurdiet-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodSearch(t *testing.T) {
	uc := usecase.NewFoodUsecase(nil)
	ctx := context.Background()

	foods, err := uc.Search(ctx, "gin", "all")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Ginger", foods[0].Name)

	_, err = uc.Search(ctx, "", "dairy")
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))

	cats := uc.Categories(ctx)
	require.NotEmpty(t, cats)
	assert.Equal(t, "all", cats[0].ID)
	assert.Equal(t, 6, cats[0].Count)
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("Should be healthy when all checks pass", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"database": func(context.Context) error { return nil },
			"redis":    nil,
		})
		status, ok := uc.Check(ctx)
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"status": "ok", "database": "ok", "redis": "not_configured"}, status)
	})

	t.Run("Should degrade when one check fails", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"database": func(context.Context) error { return errors.New("connection refused") },
			"redis":    func(context.Context) error { return nil },
		})
		status, ok := uc.Check(ctx)
		assert.False(t, ok)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "error", status["database"])
		for _, v := range status {
			assert.NotContains(t, v, "connection refused")
		}
		assert.Equal(t, "ok", status["redis"])
	})
}
