package storage

import (
	"allegro_sync/internal/allegro/business/models"
	"context"
	"database/sql"
	"fmt"
)

type OfferRepository struct {
	db       *sql.DB
	products *ProductRepository
}

func NewOfferRepository(db *sql.DB, products *ProductRepository) *OfferRepository {
	return &OfferRepository{db: db, products: products}
}

// GetOffers возвращает оферты вместе с товарами; оферты без товара пропускаются.
func (r *OfferRepository) GetOffers(ctx context.Context) ([]models.Offer, error) {
	query := `
		SELECT id, product_id, category_id
		FROM allegro.offers
		ORDER BY product_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	var productIDs []int
	for rows.Next() {
		var o models.Offer
		var categoryID sql.NullString
		if err := rows.Scan(&o.ID, &o.ProductID, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		o.CategoryID = categoryID.String
		offers = append(offers, o)
		productIDs = append(productIDs, o.ProductID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if len(offers) == 0 {
		return nil, nil
	}

	products, err := r.products.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	result := offers[:0]
	for _, o := range offers {
		if p, ok := byID[o.ProductID]; ok {
			o.Product = p
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *OfferRepository) SaveOffer(ctx context.Context, offer models.Offer) error {
	query := `
		INSERT INTO allegro.offers (id, product_id, category_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET product_id = EXCLUDED.product_id, category_id = EXCLUDED.category_id`

	if _, err := r.db.ExecContext(ctx, query, offer.ID, offer.ProductID, offer.CategoryID); err != nil {
		return fmt.Errorf("failed to save offer %s: %w", offer.ID, err)
	}
	return nil
}

func (r *OfferRepository) SaveCategory(ctx context.Context, productID, categoryID int) error {
	query := `UPDATE allegro.products SET category_id = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, productID, categoryID); err != nil {
		return fmt.Errorf("failed to save category for product %d: %w", productID, err)
	}
	return nil
}

func (r *OfferRepository) SaveParameterValue(ctx context.Context, productID, categoryParameterID int, value string) error {
	query := `
		INSERT INTO allegro.product_parameters (product_id, category_parameter_id, value, is_for_product)
		VALUES ($1, $2, $3, false)
		ON CONFLICT (product_id, category_parameter_id) DO UPDATE SET value = EXCLUDED.value`

	if _, err := r.db.ExecContext(ctx, query, productID, categoryParameterID, value); err != nil {
		return fmt.Errorf("failed to save parameter %d for product %d: %w", categoryParameterID, productID, err)
	}
	return nil
}
