package storage

import (
	"allegro_sync/internal/allegro/business/models"
	"context"
	"database/sql"
	"fmt"
	"github.com/patrickmn/go-cache"
	"time"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]models.AllegroCategory, error) {
	query := `
		SELECT id, category_id, name, parent_id
		FROM allegro.categories
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	var categories []models.AllegroCategory
	for rows.Next() {
		var c models.AllegroCategory
		var parentID sql.NullInt64
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.Name, &parentID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if parentID.Valid {
			id := int(parentID.Int64)
			c.ParentID = &id
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

type CategorySource interface {
	GetCategories(ctx context.Context) ([]models.AllegroCategory, error)
}

const categoriesKey = "categories"

// CachedCategoryRepository держит дерево категорий в памяти, пока не истечёт TTL.
type CachedCategoryRepository struct {
	source CategorySource
	cache  *cache.Cache
}

func NewCachedCategoryRepository(source CategorySource, ttl time.Duration) *CachedCategoryRepository {
	return &CachedCategoryRepository{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (r *CachedCategoryRepository) GetCategories(ctx context.Context) ([]models.AllegroCategory, error) {
	if cached, found := r.cache.Get(categoriesKey); found {
		return cached.([]models.AllegroCategory), nil
	}
	categories, err := r.source.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(categoriesKey, categories)
	return categories, nil
}

// Invalidate сбрасывает кэш, например после исправления категорий.
func (r *CachedCategoryRepository) Invalidate() {
	r.cache.Delete(categoriesKey)
}
