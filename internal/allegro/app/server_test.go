package app

import (
	"allegro_sync/config"
	"allegro_sync/config/values"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Connect(context.Context) (*sql.DB, error) { return m.db, nil }
func (m *mockDatabase) Ping(ctx context.Context) error { return m.db.PingContext(ctx) }
func (m *mockDatabase) Close() error { return m.db.Close() }

func testConfig(apiURL string) *config.AppConfig {
	return &config.AppConfig{
		Allegro: config.AllegroConfig{
			ApiURL:      apiURL,
			Token:       "secret",
			RateLimit:   100,
			WorkerCount: 2,
			Timeout:     time.Second,
		},
		Margin: values.MarginConfig{OwnMarginPercent: 10, OwnMarginPercentUnder10: 10},
		Offer:  values.DefaultOfferValues(),
	}
}

func expectCategories(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM allegro.categories`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "category_id", "name", "parent_id",
	}).AddRow(1, "3", "Motoryzacja", nil).AddRow(2, "4029", "Filtry", 1))
}

func expectNewProduct(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`LEFT JOIN allegro.offers`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`FROM allegro.products`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "name", "code", "supplier_name", "description", "technical_details", "unit",
		"in_stock", "gross_price", "weight", "product_type", "category_id",
	}).AddRow(10, "Filtr oleju", "F-001", "URSUS", "Opis", nil, "szt", 3.0, "12.60", 0.4, nil, 2))
	for _, table := range []string{"product_parameters", "applications", "product_images", "cross_numbers", "packages", "attributes"} {
		mock.ExpectQuery(`FROM allegro.` + table).WillReturnRows(sqlmock.NewRows([]string{"product_id"}))
	}
}

func TestAllegroServer_Run(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]interface{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"offer-1"}`))
	}))
	defer api.Close()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	expectCategories(mock)
	mock.ExpectQuery(`FROM allegro.compatible_products`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "group_name"}))
	expectNewProduct(mock)
	mock.ExpectExec(`INSERT INTO allegro.offers`).
		WithArgs("offer-1", 10, "4029").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`FROM allegro.offers`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "category_id"}))
	mock.ExpectClose()

	server := NewAllegroServer(&mockDatabase{db: db}, testConfig(api.URL), io.Discard)
	require.NoError(t, server.Run(context.Background()))

	require.Len(t, bodies, 1)
	assert.Equal(t, map[string]interface{}{"id": "4029"}, bodies[0]["category"])
	assert.Contains(t, bodies[0]["name"], "F-001")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllegroServer_RunReloadsCategoriesAfterMismatch(t *testing.T) {
	var calls int
	var mu sync.Mutex
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"code":"CategoryMismatch","details":"5000"}]}`))
	}))
	defer api.Close()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	expectCategories(mock)
	mock.ExpectQuery(`FROM allegro.compatible_products`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "group_name"}))
	expectNewProduct(mock)
	expectCategories(mock)
	mock.ExpectQuery(`FROM allegro.offers`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "category_id"}))
	mock.ExpectClose()

	server := NewAllegroServer(&mockDatabase{db: db}, testConfig(api.URL), io.Discard)
	require.NoError(t, server.Run(context.Background()))

	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
