package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/storefront-api/internal/domain"
)

func TestNewOrder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	order, err := domain.NewOrder("Widget", 9.99, userID)
	require.NoError(t, err)

	assert.Equal(t, "Widget", order.Title)
	assert.Equal(t, 9.99, order.Price)
	assert.Equal(t, userID, order.UserID)
	assert.Nil(t, order.User)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestOrderValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		price   float64
		userID  uuid.UUID
		wantErr error
	}{
		{
			name:   "valid order",
			title:  "Widget",
			price:  9.99,
			userID: uuid.New(),
		},
		{
			name:   "free order is allowed",
			title:  "Sample",
			price:  0,
			userID: uuid.New(),
		},
		{
			name:    "blank title",
			title:   "   ",
			price:   9.99,
			userID:  uuid.New(),
			wantErr: domain.ErrEmptyOrderTitle,
		},
		{
			name:    "negative price",
			title:   "Widget",
			price:   -0.01,
			userID:  uuid.New(),
			wantErr: domain.ErrNegativePrice,
		},
		{
			name:    "missing user reference",
			title:   "Widget",
			price:   9.99,
			userID:  uuid.Nil,
			wantErr: domain.ErrMissingOrderUser,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			order, err := domain.NewOrder(tc.title, tc.price, tc.userID)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.NotNil(t, order)
				return
			}

			assert.Nil(t, order)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
