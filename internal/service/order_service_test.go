package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

func TestOrderService_UpdateStatus(t *testing.T) {
	id := uuid.New()

	t.Run("allowed transition", func(t *testing.T) {
		repo := new(mockOrderRepository)
		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Order{ID: id, Status: domain.OrderStatusPending}, nil).Once()
		repo.On("UpdateStatus", mock.Anything, id, domain.OrderStatusProcessing).Return(nil)
		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Order{ID: id, Status: domain.OrderStatusProcessing}, nil).Once()

		order, err := NewOrderService(repo, zap.NewNop()).UpdateStatus(context.Background(), id.String(), "processing")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusProcessing, order.Status)
		repo.AssertExpectations(t)
	})

	t.Run("disallowed transition", func(t *testing.T) {
		repo := new(mockOrderRepository)
		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Order{ID: id, Status: domain.OrderStatusDelivered}, nil)

		_, err := NewOrderService(repo, zap.NewNop()).UpdateStatus(context.Background(), id.String(), "pending")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidStateTransition(err))
		assert.Equal(t, "invalid status transition from delivered to pending", err.Error())
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid input", func(t *testing.T) {
		repo := new(mockOrderRepository)
		svc := NewOrderService(repo, zap.NewNop())

		_, err := svc.UpdateStatus(context.Background(), "not-a-uuid", "shipped")
		assert.True(t, errors.IsValidation(err))

		_, err = svc.UpdateStatus(context.Background(), id.String(), "lost")
		assert.True(t, errors.IsValidation(err))

		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		repo := new(mockOrderRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, &errors.NotFoundError{Resource: "order", ID: id.String()})

		_, err := NewOrderService(repo, zap.NewNop()).UpdateStatus(context.Background(), id.String(), "shipped")
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestOrderService_List(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("List", mock.Anything, (*domain.OrderStatus)(nil)).Return([]*domain.Order{{}, {}}, nil)
	repo.On("List", mock.Anything, mock.MatchedBy(func(s *domain.OrderStatus) bool {
		return s != nil && *s == domain.OrderStatusShipped
	})).Return([]*domain.Order{{}}, nil)

	svc := NewOrderService(repo, zap.NewNop())

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shipped, err := svc.List(context.Background(), "shipped")
	require.NoError(t, err)
	assert.Len(t, shipped, 1)

	_, err = svc.List(context.Background(), "bogus")
	assert.True(t, errors.IsValidation(err))
}
