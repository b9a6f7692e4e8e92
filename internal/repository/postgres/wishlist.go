package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type wishlistRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *sql.DB, logger *zap.Logger) *wishlistRepository {
	return &wishlistRepository{
		db:     db,
		logger: logger,
	}
}

func (r *wishlistRepository) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT product_id FROM wishlist WHERE user_id::text = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list wishlist", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Add is a no-op when the product is already saved
func (r *wishlistRepository) Add(ctx context.Context, userID, productID string) error {
	query := `
		INSERT INTO wishlist (id, user_id, product_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), userID, productID); err != nil {
		r.logger.Error("Failed to add to wishlist", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM wishlist WHERE user_id::text = $1 AND product_id::text = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		r.logger.Error("Failed to remove from wishlist", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	return nil
}
