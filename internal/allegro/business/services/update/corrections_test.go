package update

import (
	"allegro_sync/internal/allegro/business/models"
	"allegro_sync/internal/allegro/business/models/dto/response"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCorrection(t *testing.T) {
	tests := []struct {
		name   string
		errors []response.ErrorDetail
		want   Correction
		ok     bool
	}{
		{
			name:   "category from details",
			errors: []response.ErrorDetail{{Code: CodeCategoryMismatch, Details: strPtr("257931")}},
			want:   Correction{Kind: CorrectCategory, CategoryID: "257931"},
			ok:     true,
		},
		{
			name:   "category from user message",
			errors: []response.ErrorDetail{{Code: CodeCategoryMismatch, UserMessage: "Wybierz kategorię 4127"}},
			want:   Correction{Kind: CorrectCategory, CategoryID: "4127"},
			ok:     true,
		},
		{
			name:   "parameter from path",
			errors: []response.ErrorDetail{{Code: CodeParameterMismatch, Path: strPtr("parameters[11323]"), Details: strPtr(" Nowy ")}},
			want:   Correction{Kind: CorrectParameter, ParameterID: "11323", Value: "Nowy"},
			ok:     true,
		},
		{
			name: "first usable error wins",
			errors: []response.ErrorDetail{
				{Code: "ConstraintViolationException", Message: "name too long"},
				{Code: CodeParameterMismatch, Path: strPtr("parameters.225693"), Details: strPtr("Tak")},
			},
			want: Correction{Kind: CorrectParameter, ParameterID: "225693", Value: "Tak"},
			ok:   true,
		},
		{
			name:   "parameter without value",
			errors: []response.ErrorDetail{{Code: CodeParameterMismatch, Path: strPtr("parameters[11323]")}},
		},
		{
			name:   "unknown code",
			errors: []response.ErrorDetail{{Code: "NotFound", Details: strPtr("123")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCorrection(response.ErrorResponse{Errors: tt.errors})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyCorrection_Parameter(t *testing.T) {
	product := &models.Product{ID: 3, CategoryID: 2, Parameters: []models.ProductParameter{
		{CategoryParameterID: 40, Value: "Używany", Definition: models.CategoryParameter{ExternalID: "11323"}},
	}}
	store := newFakeStore()

	fixed, ok := applyCorrection(Item{Product: product}, Correction{Kind: CorrectParameter, ParameterID: "11323", Value: "Nowy"}, testCategories())
	require.True(t, ok)
	assert.Equal(t, "Nowy", fixed.Product.Parameters[0].Value)
	assert.Equal(t, "Używany", product.Parameters[0].Value)

	require.NoError(t, persistCorrection(context.Background(), store, fixed, Correction{Kind: CorrectParameter, ParameterID: "11323"}))
	assert.Equal(t, "Nowy", store.params[40])
}

func TestApplyCorrection_NotApplicable(t *testing.T) {
	product := &models.Product{ID: 3, CategoryID: 2}
	categories := testCategories()

	_, ok := applyCorrection(Item{Product: product}, Correction{Kind: CorrectCategory, CategoryID: "2002"}, categories)
	assert.False(t, ok, "та же категория")

	_, ok = applyCorrection(Item{Product: product}, Correction{Kind: CorrectCategory, CategoryID: "9999"}, categories)
	assert.False(t, ok, "неизвестная категория")

	_, ok = applyCorrection(Item{Product: product}, Correction{Kind: CorrectParameter, ParameterID: "1"}, categories)
	assert.False(t, ok, "у товара нет параметра")
}

func TestApplyCorrection_OfferKeepsCategoryInSync(t *testing.T) {
	offer := &models.Offer{ID: "77", CategoryID: "1001", Product: &models.Product{ID: 3, CategoryID: 1}}

	fixed, ok := applyCorrection(Item{Offer: offer}, Correction{Kind: CorrectCategory, CategoryID: "2002"}, testCategories())
	require.True(t, ok)
	assert.Equal(t, "2002", fixed.Offer.CategoryID)
	assert.Equal(t, 2, fixed.Offer.Product.CategoryID)
	assert.Equal(t, "1001", offer.CategoryID)
}
