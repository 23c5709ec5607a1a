package storage

import (
	"allegro_sync/internal/allegro/business/models"
	"context"
	"database/sql"
	"fmt"
)

type CompatibleProductRepository struct {
	db *sql.DB
}

func NewCompatibleProductRepository(db *sql.DB) *CompatibleProductRepository {
	return &CompatibleProductRepository{db: db}
}

// GetCompatibleProducts - справочник Allegro для списков совместимости по id.
func (r *CompatibleProductRepository) GetCompatibleProducts(ctx context.Context) ([]models.CompatibleProduct, error) {
	query := `
		SELECT id, name, type, group_name
		FROM allegro.compatible_products`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch compatible products: %w", err)
	}
	defer rows.Close()

	var products []models.CompatibleProduct
	for rows.Next() {
		var p models.CompatibleProduct
		var group sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &group); err != nil {
			return nil, fmt.Errorf("failed to scan compatible product: %w", err)
		}
		p.GroupName = group.String
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}
