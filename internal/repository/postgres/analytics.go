package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
)

type analyticsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *sql.DB, logger *zap.Logger) *analyticsRepository {
	return &analyticsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *analyticsRepository) Create(ctx context.Context, e *domain.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (id, event_type, page_path, metadata, user_id, session_id, visitor_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.EventType,
		e.PagePath,
		e.Metadata,
		e.UserID,
		e.SessionID,
		e.VisitorHash,
		e.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create analytics event", zap.Error(err))
		return err
	}

	return nil
}

func (r *analyticsRepository) List(ctx context.Context) ([]*domain.AnalyticsEvent, error) {
	query := `
		SELECT id, event_type, page_path, metadata, user_id, session_id, visitor_hash, created_at
		FROM analytics_events
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list analytics events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []*domain.AnalyticsEvent
	for rows.Next() {
		var e domain.AnalyticsEvent
		var userID sql.NullString
		if err := rows.Scan(
			&e.ID,
			&e.EventType,
			&e.PagePath,
			&e.Metadata,
			&userID,
			&e.SessionID,
			&e.VisitorHash,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.UserID = nullStringPtr(userID)
		events = append(events, &e)
	}

	return events, rows.Err()
}
