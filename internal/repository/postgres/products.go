package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

const productColumns = `
	id, name, name_lv, name_ru, description, description_lv, description_ru,
	price, category, image_url, carat, clarity, cut, color, metal,
	is_active, created_at, updated_at`

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var nameLV, nameRU, desc, descLV, descRU sql.NullString
	var imageURL, carat, clarity, cut, color, metal sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&nameLV,
		&nameRU,
		&desc,
		&descLV,
		&descRU,
		&p.Price,
		&p.Category,
		&imageURL,
		&carat,
		&clarity,
		&cut,
		&color,
		&metal,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.NameLV = nullStringPtr(nameLV)
	p.NameRU = nullStringPtr(nameRU)
	p.Description = nullStringPtr(desc)
	p.DescriptionLV = nullStringPtr(descLV)
	p.DescriptionRU = nullStringPtr(descRU)
	p.ImageURL = nullStringPtr(imageURL)
	p.Carat = nullStringPtr(carat)
	p.Clarity = nullStringPtr(clarity)
	p.Cut = nullStringPtr(cut)
	p.Color = nullStringPtr(color)
	p.Metal = nullStringPtr(metal)

	return &p, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetByIDs loads every product whose id is in ids with a single query.
// Ids that do not exist, including ids that are not valid UUIDs, are simply absent from the result.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id::text = ANY($1)`

	products, err := r.queryProducts(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get products by IDs", zap.Int("count", len(ids)), zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id::text = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "product", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}

	return p, nil
}

// FindBySKU matches the short SKU printed in WhatsApp order requests
func (r *productRepository) FindBySKU(ctx context.Context, sku string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE upper(left(id::text, 8)) = $1 ORDER BY created_at DESC`

	products, err := r.queryProducts(ctx, query, strings.ToUpper(strings.TrimSpace(sku)))
	if err != nil {
		r.logger.Error("Failed to find products by SKU", zap.String("sku", sku), zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ListActive(ctx context.Context, category string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = true`
	args := []interface{}{}
	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list active products", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	products, err := r.queryProducts(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}

	return products, nil
}

const insertProductQuery = `
	INSERT INTO products (` + productColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

func prepareForInsert(p *domain.Product) {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
}

func insertArgs(p *domain.Product) []interface{} {
	return []interface{}{
		p.ID,
		p.Name,
		p.NameLV,
		p.NameRU,
		p.Description,
		p.DescriptionLV,
		p.DescriptionRU,
		p.Price,
		p.Category,
		p.ImageURL,
		p.Carat,
		p.Clarity,
		p.Cut,
		p.Color,
		p.Metal,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	prepareForInsert(p)

	if _, err := r.db.ExecContext(ctx, insertProductQuery, insertArgs(p)...); err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

// CreateBatch inserts all products in one transaction
func (r *productRepository) CreateBatch(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertProductQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		prepareForInsert(p)
		if _, err := stmt.ExecContext(ctx, insertArgs(p)...); err != nil {
			r.logger.Error("Failed to insert product in batch", zap.String("name", p.Name), zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, name_lv = $3, name_ru = $4, description = $5, description_lv = $6,
		    description_ru = $7, price = $8, category = $9, image_url = $10, carat = $11,
		    clarity = $12, cut = $13, color = $14, metal = $15, is_active = $16, updated_at = $17
		WHERE id::text = $1
	`

	p.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.NameLV,
		p.NameRU,
		p.Description,
		p.DescriptionLV,
		p.DescriptionRU,
		p.Price,
		p.Category,
		p.ImageURL,
		p.Carat,
		p.Clarity,
		p.Cut,
		p.Color,
		p.Metal,
		p.IsActive,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update product", zap.String("product_id", p.ID), zap.Error(err))
		return err
	}

	return requireAffected(res, "product", p.ID)
}

func (r *productRepository) SetActive(ctx context.Context, id string, isActive bool) error {
	query := `UPDATE products SET is_active = $2, updated_at = $3 WHERE id::text = $1`

	res, err := r.db.ExecContext(ctx, query, id, isActive, time.Now())
	if err != nil {
		r.logger.Error("Failed to set product status", zap.String("product_id", id), zap.Error(err))
		return err
	}

	return requireAffected(res, "product", id)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id::text = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.String("product_id", id), zap.Error(err))
		return err
	}

	return requireAffected(res, "product", id)
}

func requireAffected(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
