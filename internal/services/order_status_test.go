package services

import (
	"testing"

	"kedai/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to preparing", models.StatusPending, models.StatusPreparing, true},
		{"pending to cancelled", models.StatusPending, models.StatusCancelled, true},
		{"preparing to on_the_way", models.StatusPreparing, models.StatusOnTheWay, true},
		{"preparing to cancelled", models.StatusPreparing, models.StatusCancelled, true},
		{"on_the_way to delivered", models.StatusOnTheWay, models.StatusDelivered, true},

		{"pending skips to on_the_way", models.StatusPending, models.StatusOnTheWay, false},
		{"pending skips to delivered", models.StatusPending, models.StatusDelivered, false},
		{"on_the_way can no longer cancel", models.StatusOnTheWay, models.StatusCancelled, false},
		{"delivered is terminal", models.StatusDelivered, models.StatusPending, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusPreparing, false},
		{"no backwards move", models.StatusPreparing, models.StatusPending, false},
		{"no self transition", models.StatusPending, models.StatusPending, false},
		{"no terminal self transition", models.StatusDelivered, models.StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.StatusPending, models.StatusPreparing, models.StatusOnTheWay,
		models.StatusDelivered, models.StatusCancelled,
	} {
		assert.True(t, ValidStatus(status), string(status))
	}
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
}
