package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attire-rental/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access. Edits
// and deletes write their audit row and mutate the live row inside a single
// transaction so the audit trail can never diverge from the table.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	ListByModel(ctx context.Context, modelID int64) ([]*domain.Product, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
	ListWithModel(ctx context.Context) ([]*domain.ProductListing, error)
	UpdateWithAudit(ctx context.Context, old, updated *domain.Product) error
	DeleteWithAudit(ctx context.Context, product *domain.Product) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (product_name, products_image, price, category, model_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING products_id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.ImageURL,
		product.Price,
		product.Category,
		nullInt64(product.ModelID),
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT products_id, product_name, products_image, price, category, model_id
		FROM products
		WHERE products_id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// ListByModel retrieves all products referencing a model, across categories
func (r *productRepository) ListByModel(ctx context.Context, modelID int64) ([]*domain.Product, error) {
	query := `
		SELECT products_id, product_name, products_image, price, category, model_id
		FROM products
		WHERE model_id = $1
		ORDER BY products_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by model: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListByIDs resolves a set of product IDs to their rows. IDs with no
// matching product are silently dropped; each matching product appears
// once regardless of how many times its ID occurs in the input.
func (r *productRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	query := `
		SELECT products_id, product_name, products_image, price, category, model_id
		FROM products
		WHERE products_id = ANY($1)
		ORDER BY products_id ASC
	`

	// The pgx stdlib driver encodes []int64 as a Postgres array.
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by IDs: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListWithModel retrieves all products left-joined with their model for the
// admin dashboard and product list pages
func (r *productRepository) ListWithModel(ctx context.Context) ([]*domain.ProductListing, error) {
	query := `
		SELECT p.products_id, p.product_name, p.products_image, p.price, p.category, p.model_id,
		       COALESCE(m.model_name, ''), COALESCE(m.model_image, '')
		FROM products p
		LEFT JOIN model m ON p.model_id = m.model_id
		ORDER BY p.products_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products with models: %w", err)
	}
	defer rows.Close()

	listings := []*domain.ProductListing{}
	for rows.Next() {
		listing := &domain.ProductListing{}
		var modelID sql.NullInt64
		err := rows.Scan(
			&listing.ID,
			&listing.Name,
			&listing.ImageURL,
			&listing.Price,
			&listing.Category,
			&modelID,
			&listing.ModelName,
			&listing.ModelImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product listing: %w", err)
		}
		if modelID.Valid {
			listing.ModelID = &modelID.Int64
		}
		listings = append(listings, listing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product listings: %w", err)
	}

	return listings, nil
}

// UpdateWithAudit writes one product_edits row pairing the old and submitted
// values of every field, then applies the update to the live row. Both
// writes happen in one transaction and roll back together.
func (r *productRepository) UpdateWithAudit(ctx context.Context, old, updated *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	auditQuery := `
		INSERT INTO product_edits (
			product_id,
			old_product_name, new_product_name,
			old_products_image, new_products_image,
			old_price, new_price,
			old_category, new_category,
			old_model_id, new_model_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.ExecContext(
		ctx,
		auditQuery,
		old.ID,
		old.Name, updated.Name,
		old.ImageURL, updated.ImageURL,
		old.Price, updated.Price,
		old.Category, updated.Category,
		nullInt64(old.ModelID), nullInt64(updated.ModelID),
	)
	if err != nil {
		return fmt.Errorf("failed to write product edit audit: %w", err)
	}

	updateQuery := `
		UPDATE products
		SET product_name = $2, products_image = $3, price = $4, category = $5, model_id = $6
		WHERE products_id = $1
	`

	result, err := tx.ExecContext(
		ctx,
		updateQuery,
		old.ID,
		updated.Name,
		updated.ImageURL,
		updated.Price,
		updated.Category,
		nullInt64(updated.ModelID),
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product update: %w", err)
	}

	return nil
}

// DeleteWithAudit writes one deleted_products row snapshotting the live
// values, then removes the live row, in one transaction.
func (r *productRepository) DeleteWithAudit(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	auditQuery := `
		INSERT INTO deleted_products (product_id, product_name, products_image, price, category, model_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.ExecContext(
		ctx,
		auditQuery,
		product.ID,
		product.Name,
		product.ImageURL,
		product.Price,
		product.Category,
		nullInt64(product.ModelID),
	)
	if err != nil {
		return fmt.Errorf("failed to write deleted product audit: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM products WHERE products_id = $1`, product.ID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product delete: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var modelID sql.NullInt64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.ImageURL,
		&product.Price,
		&product.Category,
		&modelID,
	)
	if err != nil {
		return nil, err
	}

	if modelID.Valid {
		product.ModelID = &modelID.Int64
	}

	return product, nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
