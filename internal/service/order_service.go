package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/internal/repository"
	"github.com/suratdiamond/storefront/pkg/errors"
)

type orderService struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) *orderService {
	return &orderService{
		orders: orders,
		logger: logger,
	}
}

// ListForUser returns the caller's orders, newest first
func (s *orderService) ListForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// List returns all orders, optionally filtered by status
func (s *orderService) List(ctx context.Context, status string) ([]*domain.Order, error) {
	if status == "" {
		return s.orders.List(ctx, nil)
	}

	filter := domain.OrderStatus(status)
	if !filter.IsValid() {
		return nil, &errors.ValidationError{Field: "status", Message: "invalid status"}
	}

	return s.orders.List(ctx, &filter)
}

// UpdateStatus moves an order to a new status if the transition is allowed
func (s *orderService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, &errors.ValidationError{Field: "id", Message: "invalid order ID"}
	}

	newStatus := domain.OrderStatus(status)
	if !newStatus.IsValid() {
		return nil, &errors.ValidationError{Field: "status", Message: "invalid status"}
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(newStatus) {
		return nil, &errors.InvalidStateTransitionError{
			From: string(order.Status),
			To:   string(newStatus),
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(newStatus)),
	)

	return s.orders.GetByID(ctx, orderID)
}
