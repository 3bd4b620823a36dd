package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"realestate-agent/internal/model"

	"github.com/pgvector/pgvector-go"
)

const (
	DefaultPropertyLimit = 50
	MaxPropertyLimit     = 200
)

const propertyColumns = `id, title, description, price, location, property_type, bedrooms,
	bathrooms, area_sqft, amenities, images, available_from, created_at, updated_at`

// CreateProperty inserts a property and fills its generated fields
func (r *PostgresRepository) CreateProperty(ctx context.Context, p *model.Property) error {
	query := `
		INSERT INTO properties (title, description, price, location, property_type, bedrooms,
			bathrooms, area_sqft, amenities, images, available_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.Title, p.Description, p.Price, p.Location, p.PropertyType, p.Bedrooms,
		p.Bathrooms, p.AreaSqft, p.Amenities, p.Images, p.AvailableFrom,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetProperty retrieves a single property by its ID
func (r *PostgresRepository) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	var p model.Property
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

// ListProperties returns one page of properties matching the filter and the
// total number of matches
func (r *PostgresRepository) ListProperties(ctx context.Context, filter model.PropertyFilter) ([]model.Property, int, error) {
	whereClause, args, argIndex := buildPropertyWhere(filter)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties WHERE %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, propertyColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	props := []model.Property{}
	if err := r.db.SelectContext(ctx, &props, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}
	return props, total, nil
}

// ListAvailableProperties returns properties already available at now
func (r *PostgresRepository) ListAvailableProperties(ctx context.Context, now time.Time, limit int) ([]model.Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE available_from <= $1
		ORDER BY available_from DESC, id DESC
		LIMIT $2`

	var props []model.Property
	if err := r.db.SelectContext(ctx, &props, query, now, limit); err != nil {
		return nil, fmt.Errorf("failed to list available properties: %w", err)
	}
	return props, nil
}

const nearestPropertiesQuery = `SELECT ` + propertyColumns + `
		FROM properties
		WHERE embedding IS NOT NULL AND available_from <= $2
		ORDER BY embedding <=> $1
		LIMIT $3`

// NearestProperties returns the embedded properties available at now that
// are closest to vec by cosine distance
func (r *PostgresRepository) NearestProperties(ctx context.Context, vec pgvector.Vector, now time.Time, limit int) ([]model.Property, error) {
	var props []model.Property
	if err := r.db.SelectContext(ctx, &props, nearestPropertiesQuery, vec, now, limit); err != nil {
		return nil, fmt.Errorf("failed to search nearest properties: %w", err)
	}
	return props, nil
}

// PropertiesMissingEmbedding returns up to limit properties without an embedding
func (r *PostgresRepository) PropertiesMissingEmbedding(ctx context.Context, limit int) ([]model.Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE embedding IS NULL
		ORDER BY id
		LIMIT $1`

	var props []model.Property
	if err := r.db.SelectContext(ctx, &props, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list properties missing embeddings: %w", err)
	}
	return props, nil
}

// CountEmbedded reports how many properties carry an embedding
func (r *PostgresRepository) CountEmbedded(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM properties WHERE embedding IS NOT NULL`); err != nil {
		return 0, fmt.Errorf("failed to count embedded properties: %w", err)
	}
	return n, nil
}

// BatchUpdateEmbeddings updates embeddings for multiple properties in one
// transaction. Rows that fail are reported and skipped.
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, []string{fmt.Sprintf("failed to start transaction: %v", err)}
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		return 0, []string{fmt.Sprintf("failed to prepare statement: %v", err)}
	}
	defer stmt.Close()

	success, errs, err := applyEmbeddings(ctx, tx, stmt, items)
	if err != nil {
		return 0, append(errs, err.Error())
	}

	if err := tx.Commit(); err != nil {
		return 0, append(errs, fmt.Sprintf("failed to commit transaction: %v", err))
	}
	return success, errs
}

type txExecer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type stmtExecer interface {
	ExecContext(ctx context.Context, args ...interface{}) (sql.Result, error)
}

// applyEmbeddings runs the prepared update once per item, each behind its own
// savepoint. A non-nil error means the transaction can no longer be committed.
func applyEmbeddings(ctx context.Context, tx txExecer, stmt stmtExecer, items []model.EmbeddingItem) (int, []string, error) {
	success := 0
	var errs []string

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT item"); err != nil {
			return success, errs, fmt.Errorf("property_id %d: failed to create savepoint: %w", item.PropertyID, err)
		}
		res, err := stmt.ExecContext(ctx, pgvector.NewVector(item.Embedding), item.PropertyID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("property_id %d: %v", item.PropertyID, err))
			if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT item"); err != nil {
				return success, errs, fmt.Errorf("property_id %d: failed to roll back savepoint: %w", item.PropertyID, err)
			}
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			errs = append(errs, fmt.Sprintf("property_id %d: %v", item.PropertyID, ErrNotFound))
			continue
		}
		success++
	}
	return success, errs, nil
}

// buildPropertyWhere renders the filter as a WHERE clause with positional args.
// It also returns the next free placeholder index.
func buildPropertyWhere(filter model.PropertyFilter) (string, []interface{}, int) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("location ILIKE $%d", argIndex))
		args = append(args, "%"+strings.TrimSpace(*filter.Location)+"%")
		argIndex++
	}
	if filter.PropertyType != nil && *filter.PropertyType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("property_type = $%d", argIndex))
		args = append(args, *filter.PropertyType)
		argIndex++
	}
	if filter.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}
	if filter.Bedrooms != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("bedrooms >= $%d", argIndex))
		args = append(args, *filter.Bedrooms)
		argIndex++
	}
	if len(filter.Amenities) > 0 {
		conds, params, next := buildAmenityConditions(filter.Amenities, argIndex)
		whereClauses = append(whereClauses, conds...)
		args = append(args, params...)
		argIndex = next
	}

	return strings.Join(whereClauses, " AND "), args, argIndex
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPropertyLimit
	}
	if limit > MaxPropertyLimit {
		limit = MaxPropertyLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
