package storage

import (
	"allegro_sync/internal/allegro/business/models"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// expectProduct описывает полную загрузку одного товара с id 10.
func expectProduct(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM allegro.products`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "name", "code", "supplier_name", "description", "technical_details", "unit",
		"in_stock", "gross_price", "weight", "product_type", "category_id",
	}).AddRow(10, "Filtr", "F-001", "URSUS", nil, nil, "szt", 3.0, "12.60", 0.4, "gabaryt", 2))

	mock.ExpectQuery(`FROM allegro.product_parameters`).WillReturnRows(sqlmock.NewRows([]string{
		"product_id", "category_parameter_id", "value", "is_for_product",
		"category_parameter_id", "name", "type", "required", "required_for_product", "min", "max",
	}).
		AddRow(10, 40, "Nowy", false, "11323", "Stan", "dictionary", true, false, 0.0, 0.0).
		AddRow(10, 41, "F-001", true, "224017", "Numer katalogowy", "string", false, true, 0.0, 40.0))

	mock.ExpectQuery(`FROM allegro.parameter_dictionary`).WillReturnRows(sqlmock.NewRows([]string{
		"category_parameter_id", "value_id", "value",
	}).AddRow(40, "11323_1", "Nowy").AddRow(40, "11323_2", "Używany"))

	mock.ExpectQuery(`FROM allegro.applications`).WillReturnRows(sqlmock.NewRows([]string{
		"product_id", "application_id", "parent_id", "name",
	}).AddRow(10, 1, 0, "URSUS").AddRow(10, 2, 1, "C-360"))

	mock.ExpectQuery(`FROM allegro.product_images`).WillReturnRows(sqlmock.NewRows([]string{
		"product_id", "id", "url", "allegro_url", "position",
	}).AddRow(10, 100, "https://img/1.jpg", "", 1))

	mock.ExpectQuery(`FROM allegro.cross_numbers`).WillReturnRows(sqlmock.NewRows([]string{
		"product_id", "number", "producer",
	}).AddRow(10, "5011", "URSUS"))

	mock.ExpectQuery(`FROM allegro.packages`).WillReturnRows(sqlmock.NewRows([]string{
		"product_id", "quantity", "unit", "required",
	}).AddRow(10, 2, "szt", true))

	mock.ExpectQuery(`FROM allegro.attributes`).WillReturnRows(sqlmock.NewRows([]string{
		"product_id", "name", "value", "display",
	}).AddRow(10, "Średnica", "50 mm", true))
}

func TestProductRepository_GetProducts(t *testing.T) {
	db, mock := newMock(t)
	expectProduct(mock)

	products, err := NewProductRepository(db).GetProducts(context.Background(), []int{10})
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "URSUS", p.SupplierName)
	assert.Empty(t, p.Description)
	assert.True(t, decimal.RequireFromString("12.60").Equal(p.GrossPrice))
	assert.Equal(t, models.Bulky, p.Type)
	assert.Equal(t, 2, p.CategoryID)

	require.Len(t, p.Parameters, 2)
	assert.Equal(t, models.ParameterDictionary, p.Parameters[0].Definition.Type)
	assert.Len(t, p.Parameters[0].Definition.Dictionary, 2)
	assert.Empty(t, p.Parameters[1].Definition.Dictionary)
	assert.Equal(t, 40.0, p.Parameters[1].Definition.Max)

	assert.Len(t, p.Applications, 2)
	assert.Equal(t, "https://img/1.jpg", p.Images[0].Link())
	assert.Equal(t, []models.CrossNumber{{Number: "5011", Producer: "URSUS"}}, p.CrossNumbers)
	assert.Equal(t, 2, p.SaleQuantity())
	assert.Len(t, p.DisplayAttributes(), 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetProductsEmptyIDs(t *testing.T) {
	db, mock := newMock(t)

	products, err := NewProductRepository(db).GetProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_QueryError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM allegro.products`).WillReturnError(errors.New("connection refused"))

	_, err := NewProductRepository(db).GetProducts(context.Background(), []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch products")
}

func TestProductRepository_GetProductIDsWithoutOffers(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`LEFT JOIN allegro.offers`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(5))

	ids, err := NewProductRepository(db).GetProductIDsWithoutOffers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, ids)
}

func TestCategoryRepository_GetCategories(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM allegro.categories`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "category_id", "name", "parent_id",
	}).AddRow(1, "3", "Motoryzacja", nil).AddRow(2, "4029", "Części do maszyn", 1))

	categories, err := NewCategoryRepository(db).GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Nil(t, categories[0].ParentID)
	require.NotNil(t, categories[1].ParentID)
	assert.Equal(t, 1, *categories[1].ParentID)
}

type countingSource struct {
	calls int
}

func (s *countingSource) GetCategories(context.Context) ([]models.AllegroCategory, error) {
	s.calls++
	return []models.AllegroCategory{{ID: 1, CategoryID: "3"}}, nil
}

func TestCachedCategoryRepository(t *testing.T) {
	source := &countingSource{}
	repo := NewCachedCategoryRepository(source, time.Minute)

	for i := 0; i < 3; i++ {
		categories, err := repo.GetCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	}
	assert.Equal(t, 1, source.calls)

	repo.Invalidate()
	_, err := repo.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestOfferRepository_GetOffers(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM allegro.offers`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "product_id", "category_id",
	}).AddRow("7712", 10, "4029").AddRow("7713", 99, nil))
	expectProduct(mock)

	offers, err := NewOfferRepository(db, NewProductRepository(db)).GetOffers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "7712", offers[0].ID)
	assert.Equal(t, "4029", offers[0].CategoryID)
	require.NotNil(t, offers[0].Product)
	assert.Equal(t, 10, offers[0].Product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepository_Saves(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOfferRepository(db, NewProductRepository(db))

	mock.ExpectExec(`INSERT INTO allegro.offers`).
		WithArgs("7712", 10, "4029").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE allegro.products SET category_id`).
		WithArgs(10, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO allegro.product_parameters`).
		WithArgs(10, 40, "Nowy").
		WillReturnError(errors.New("deadlock detected"))

	ctx := context.Background()
	require.NoError(t, repo.SaveOffer(ctx, models.Offer{ID: "7712", ProductID: 10, CategoryID: "4029"}))
	require.NoError(t, repo.SaveCategory(ctx, 10, 2))

	err := repo.SaveParameterValue(ctx, 10, 40, "Nowy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter 40")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompatibleProductRepository(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM allegro.compatible_products`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "name", "type", "group_name",
	}).AddRow("abc-1", "URSUS C-360", "ID", nil))

	products, err := NewCompatibleProductRepository(db).GetCompatibleProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CompatibleProduct{{ID: "abc-1", Name: "URSUS C-360", Type: "ID"}}, products)
}
