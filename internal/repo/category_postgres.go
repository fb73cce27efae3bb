package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

const categoryColumns = `id, name, name_nl, name_fr, name_en, description, color, icon, sort_order, is_active, created_at, updated_at`

func scanCategory(row rowScanner) (models.Category, error) {
	var (
		c                  models.Category
		createdAt, updated time.Time
	)
	err := row.Scan(&c.ID, &c.Name, &c.NameNL, &c.NameFR, &c.NameEN, &c.Description, &c.Color, &c.Icon,
		&c.SortOrder, &c.IsActive, &createdAt, &updated)
	if err != nil {
		return models.Category{}, err
	}
	c.CreatedAt = timestamp(createdAt)
	c.UpdatedAt = timestamp(updated)
	return c, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	query := `INSERT INTO categories (id, name, name_nl, name_fr, name_en, description, color, icon, sort_order,
		is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING ` + categoryColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanCategory(r.db.QueryRowContext(ctx, query, uuid.NewString(), c.Name, c.NameNL, c.NameFR,
		c.NameEN, c.Description, c.Color, c.Icon, c.SortOrder, c.IsActive, time.Now().UTC()))
	if err != nil {
		return models.Category{}, mapPgError(err)
	}
	return created, nil
}

func (r *PostgresCategoryRepository) GetAll(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, name`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	c, err := scanCategory(r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c models.Category) (models.Category, error) {
	query := `UPDATE categories SET name = $1, name_nl = $2, name_fr = $3, name_en = $4, description = $5,
		color = $6, icon = $7, sort_order = $8, is_active = $9, updated_at = $10
		WHERE id = $11 RETURNING ` + categoryColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updated, err := scanCategory(r.db.QueryRowContext(ctx, query, c.Name, c.NameNL, c.NameFR, c.NameEN,
		c.Description, c.Color, c.Icon, c.SortOrder, c.IsActive, time.Now().UTC(), c.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, mapPgError(err)
	}
	return updated, nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return ErrCategoryInUse
	}
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
