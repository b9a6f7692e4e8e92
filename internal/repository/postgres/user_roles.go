package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
)

type userRoleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRoleRepository creates a new user role repository
func NewUserRoleRepository(db *sql.DB, logger *zap.Logger) *userRoleRepository {
	return &userRoleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRoleRepository) HasRole(ctx context.Context, userID string, role domain.Role) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id::text = $1 AND role = $2)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID, string(role)).Scan(&ok); err != nil {
		r.logger.Error("Failed to check user role",
			zap.String("user_id", userID),
			zap.String("role", string(role)),
			zap.Error(err),
		)
		return false, err
	}

	return ok, nil
}

// Grant assigns role to userID; granting an existing role is a no-op
func (r *userRoleRepository) Grant(ctx context.Context, userID string, role domain.Role) error {
	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, string(role)); err != nil {
		r.logger.Error("Failed to grant role", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	return nil
}
