package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attire-rental/internal/domain"
)

var (
	ErrModelNotFound = errors.New("model not found")
)

// ModelRepository defines the interface for model (look/style) data access
type ModelRepository interface {
	Create(ctx context.Context, model *domain.Model) error
	List(ctx context.Context) ([]*domain.Model, error)
	FindByID(ctx context.Context, id int64) (*domain.Model, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Model, error)
}

type modelRepository struct {
	db *sql.DB
}

// NewModelRepository creates a new instance of ModelRepository
func NewModelRepository(db *sql.DB) ModelRepository {
	return &modelRepository{db: db}
}

// Create inserts a new model into the database using parameterized queries
func (r *modelRepository) Create(ctx context.Context, model *domain.Model) error {
	query := `
		INSERT INTO model (model_name, model_image)
		VALUES ($1, $2)
		RETURNING model_id
	`

	err := r.db.QueryRowContext(ctx, query, model.Name, model.ImageURL).Scan(&model.ID)
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	return nil
}

// List retrieves all models
func (r *modelRepository) List(ctx context.Context) ([]*domain.Model, error) {
	query := `
		SELECT model_id, model_name, model_image
		FROM model
		ORDER BY model_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	return scanModels(rows)
}

// FindByID retrieves a model by ID using parameterized queries
func (r *modelRepository) FindByID(ctx context.Context, id int64) (*domain.Model, error) {
	query := `
		SELECT model_id, model_name, model_image
		FROM model
		WHERE model_id = $1
	`

	model := &domain.Model{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&model.ID,
		&model.Name,
		&model.ImageURL,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to find model by ID: %w", err)
	}

	return model, nil
}

// ListByCategory retrieves the distinct set of models that have at least one
// product in the given category. A model with zero products in the category
// is excluded.
func (r *modelRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Model, error) {
	query := `
		SELECT DISTINCT m.model_id, m.model_name, m.model_image
		FROM model m
		JOIN products p ON m.model_id = p.model_id
		WHERE p.category = $1
		ORDER BY m.model_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list models by category: %w", err)
	}
	defer rows.Close()

	return scanModels(rows)
}

func scanModels(rows *sql.Rows) ([]*domain.Model, error) {
	models := []*domain.Model{}
	for rows.Next() {
		model := &domain.Model{}
		if err := rows.Scan(&model.ID, &model.Name, &model.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating models: %w", err)
	}

	return models, nil
}
