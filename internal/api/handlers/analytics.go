package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/api/middleware"
	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/internal/service"
)

// AnalyticsService records visits and summarises them
type AnalyticsService interface {
	Track(ctx context.Context, req service.AnalyticsEventRequest, userID *string, clientIP string) (*domain.AnalyticsEvent, error)
	Summary(ctx context.Context) (*domain.AnalyticsSummary, error)
}

// HandleTrackEvent handles POST /v1/analytics/events
func HandleTrackEvent(analytics AnalyticsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AnalyticsEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		var userID *string
		if user, ok := middleware.GetUserFromContext(c); ok {
			userID = &user.ID
		}

		event, err := analytics.Track(c.Request.Context(), req, userID, c.ClientIP())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": event.ID.String()})
	}
}

// HandleAnalyticsSummary handles GET /v1/admin/analytics
func HandleAnalyticsSummary(analytics AnalyticsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := analytics.Summary(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
