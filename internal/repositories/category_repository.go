package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lokalBack/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.CreatedAt = time.Now()
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO categories (name, icon_url, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, category.Name, category.IconURL, category.CreatedAt).Scan(&category.ID)
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, icon_url, created_at, updated_at
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.IconURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, models.ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, icon_url, created_at, updated_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.IconURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, icon_url = $2, updated_at = NOW()
		WHERE id = $3
	`, category.Name, category.IconURL, category.ID)
	if err != nil {
		return models.Category{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Category{}, err
	}
	if rows == 0 {
		return models.Category{}, models.ErrCategoryNotFound
	}
	return r.GetCategoryByID(ctx, category.ID)
}

// DeleteCategory refuses to orphan providers: deletion fails while any
// provider profile still references the category.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var inUse int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM provider_profiles WHERE category_id = $1`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return models.ErrCategoryInUse
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCategoryNotFound
	}
	return tx.Commit()
}
