package storage

import (
	"allegro_sync/internal/allegro/business/models"
	"context"
	"database/sql"
	"fmt"
	"github.com/lib/pq"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProductIDsWithoutOffers - товары с категорией, для которых ещё нет оферты.
func (r *ProductRepository) GetProductIDsWithoutOffers(ctx context.Context) ([]int, error) {
	query := `
		SELECT p.id
		FROM allegro.products AS p
		LEFT JOIN allegro.offers AS o ON o.product_id = p.id
		WHERE o.id IS NULL AND p.category_id IS NOT NULL
		ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetProducts загружает товары по id вместе со всеми вложенными коллекциями.
func (r *ProductRepository) GetProducts(ctx context.Context, ids []int) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, code, supplier_name, description, technical_details, unit,
		       in_stock, gross_price, weight, product_type, category_id
		FROM allegro.products
		WHERE id = ANY($1)
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	index := make(map[int]int)
	for rows.Next() {
		var p models.Product
		var supplier, description, details, unit, productType sql.NullString
		var categoryID sql.NullInt64
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &supplier, &description, &details, &unit,
			&p.InStock, &p.GrossPrice, &p.Weight, &productType, &categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.SupplierName = supplier.String
		p.Description = description.String
		p.TechnicalDetails = details.String
		p.Unit = unit.String
		p.Type = models.ParseProductType(productType.String)
		p.CategoryID = int(categoryID.Int64)

		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if len(products) == 0 {
		return nil, nil
	}

	found := make([]int, 0, len(products))
	for _, p := range products {
		found = append(found, p.ID)
	}

	loaders := []func(context.Context, []int, []models.Product, map[int]int) error{
		r.loadParameters,
		r.loadApplications,
		r.loadImages,
		r.loadCrossNumbers,
		r.loadPackages,
		r.loadAttributes,
	}
	for _, load := range loaders {
		if err := load(ctx, found, products, index); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *ProductRepository) loadParameters(ctx context.Context, ids []int, products []models.Product, index map[int]int) error {
	query := `
		SELECT pp.product_id, pp.category_parameter_id, pp.value, pp.is_for_product,
		       cp.category_parameter_id, cp.name, cp.type, cp.required, cp.required_for_product,
		       COALESCE(cp.min, 0), COALESCE(cp.max, 0)
		FROM allegro.product_parameters AS pp
		JOIN allegro.category_parameters AS cp ON cp.id = pp.category_parameter_id
		WHERE pp.product_id = ANY($1)
		ORDER BY pp.product_id, cp.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch product parameters: %w", err)
	}
	defer rows.Close()

	var definitionIDs []int
	seen := make(map[int]bool)
	for rows.Next() {
		var p models.ProductParameter
		var paramType string
		err := rows.Scan(&p.ProductID, &p.CategoryParameterID, &p.Value, &p.IsForProduct,
			&p.Definition.ExternalID, &p.Definition.Name, &paramType, &p.Definition.Required,
			&p.Definition.RequiredForProduct, &p.Definition.Min, &p.Definition.Max)
		if err != nil {
			return fmt.Errorf("failed to scan product parameter: %w", err)
		}
		p.Definition.ID = p.CategoryParameterID
		p.Definition.Type = models.ParseParameterType(paramType)

		i := index[p.ProductID]
		products[i].Parameters = append(products[i].Parameters, p)
		if p.Definition.Type == models.ParameterDictionary && !seen[p.CategoryParameterID] {
			seen[p.CategoryParameterID] = true
			definitionIDs = append(definitionIDs, p.CategoryParameterID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	if len(definitionIDs) == 0 {
		return nil
	}

	dictionaries, err := r.loadDictionaries(ctx, definitionIDs)
	if err != nil {
		return err
	}
	for i := range products {
		for j := range products[i].Parameters {
			param := &products[i].Parameters[j]
			param.Definition.Dictionary = dictionaries[param.CategoryParameterID]
		}
	}
	return nil
}

func (r *ProductRepository) loadDictionaries(ctx context.Context, definitionIDs []int) (map[int][]models.DictionaryValue, error) {
	query := `
		SELECT category_parameter_id, value_id, value
		FROM allegro.parameter_dictionary
		WHERE category_parameter_id = ANY($1)
		ORDER BY category_parameter_id, value`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(definitionIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parameter dictionaries: %w", err)
	}
	defer rows.Close()

	dictionaries := make(map[int][]models.DictionaryValue)
	for rows.Next() {
		var definitionID int
		var v models.DictionaryValue
		if err := rows.Scan(&definitionID, &v.ID, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to scan dictionary value: %w", err)
		}
		dictionaries[definitionID] = append(dictionaries[definitionID], v)
	}
	return dictionaries, rows.Err()
}

func (r *ProductRepository) loadApplications(ctx context.Context, ids []int, products []models.Product, index map[int]int) error {
	query := `
		SELECT product_id, application_id, COALESCE(parent_id, 0), name
		FROM allegro.applications
		WHERE product_id = ANY($1)`

	return r.each(ctx, query, ids, "applications", func(rows *sql.Rows) error {
		var productID int
		var a models.Application
		if err := rows.Scan(&productID, &a.ApplicationID, &a.ParentID, &a.Name); err != nil {
			return err
		}
		i := index[productID]
		products[i].Applications = append(products[i].Applications, a)
		return nil
	})
}

func (r *ProductRepository) loadImages(ctx context.Context, ids []int, products []models.Product, index map[int]int) error {
	query := `
		SELECT product_id, id, url, COALESCE(allegro_url, ''), position
		FROM allegro.product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, position`

	return r.each(ctx, query, ids, "images", func(rows *sql.Rows) error {
		var productID int
		var img models.Image
		if err := rows.Scan(&productID, &img.ID, &img.URL, &img.AllegroURL, &img.Position); err != nil {
			return err
		}
		i := index[productID]
		products[i].Images = append(products[i].Images, img)
		return nil
	})
}

func (r *ProductRepository) loadCrossNumbers(ctx context.Context, ids []int, products []models.Product, index map[int]int) error {
	query := `
		SELECT product_id, number, COALESCE(producer, '')
		FROM allegro.cross_numbers
		WHERE product_id = ANY($1)`

	return r.each(ctx, query, ids, "cross numbers", func(rows *sql.Rows) error {
		var productID int
		var c models.CrossNumber
		if err := rows.Scan(&productID, &c.Number, &c.Producer); err != nil {
			return err
		}
		i := index[productID]
		products[i].CrossNumbers = append(products[i].CrossNumbers, c)
		return nil
	})
}

func (r *ProductRepository) loadPackages(ctx context.Context, ids []int, products []models.Product, index map[int]int) error {
	query := `
		SELECT product_id, quantity, unit, required
		FROM allegro.packages
		WHERE product_id = ANY($1)`

	return r.each(ctx, query, ids, "packages", func(rows *sql.Rows) error {
		var productID int
		var p models.Package
		if err := rows.Scan(&productID, &p.Quantity, &p.Unit, &p.Required); err != nil {
			return err
		}
		i := index[productID]
		products[i].Packages = append(products[i].Packages, p)
		return nil
	})
}

func (r *ProductRepository) loadAttributes(ctx context.Context, ids []int, products []models.Product, index map[int]int) error {
	query := `
		SELECT product_id, name, value, display
		FROM allegro.attributes
		WHERE product_id = ANY($1)`

	return r.each(ctx, query, ids, "attributes", func(rows *sql.Rows) error {
		var productID int
		var a models.Attribute
		if err := rows.Scan(&productID, &a.Name, &a.Value, &a.Display); err != nil {
			return err
		}
		i := index[productID]
		products[i].Attributes = append(products[i].Attributes, a)
		return nil
	})
}

// each выполняет запрос по списку товаров и вызывает scan для каждой строки.
func (r *ProductRepository) each(ctx context.Context, query string, ids []int, what string, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", what, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s: %w", what, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}
