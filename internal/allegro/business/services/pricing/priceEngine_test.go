package pricing

import (
	"allegro_sync/config/values"
	"allegro_sync/internal/allegro/business/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_MidTier(t *testing.T) {
	cfg := values.MarginConfig{OwnMarginPercent: 20, MarginMidPercent: 5}

	price := CalculateRounded(dec("10.00"), models.Normal, 1, cfg)

	assert.Equal(t, "12.60", price.StringFixed(2))
}

func TestCalculate_LowTierFallsThroughToMid(t *testing.T) {
	cfg := values.MarginConfig{OwnMarginPercentUnder10: 10, MarginUnder5: 1, MarginMidPercent: 5}

	raw := Calculate(dec("4.50"), models.Normal, 1, cfg)

	assert.True(t, raw.Equal(dec("5.1975")), raw.String())
	assert.Equal(t, "5.20", Round(raw).StringFixed(2))
}

func TestCalculate_LowTierKeepsFlatMargin(t *testing.T) {
	cfg := values.MarginConfig{OwnMarginPercentUnder10: 0, MarginUnder5: 1, MarginMidPercent: 5}

	raw := Calculate(dec("2.00"), models.Normal, 1, cfg)

	assert.True(t, raw.Equal(dec("3.00")), raw.String())
}

func TestCalculate_MidOvershootUsesFlatAddOn(t *testing.T) {
	cfg := values.MarginConfig{OwnMarginPercent: 0, MarginMidPercent: 10, MarginOver1000: 50}

	raw := Calculate(dec("950"), models.Normal, 1, cfg)

	assert.True(t, raw.Equal(dec("1000")), raw.String())
}

func TestCalculate_Boundaries(t *testing.T) {
	cfg := values.MarginConfig{MarginUnder5: 1, MarginMidPercent: 10, MarginOver1000: 50}

	// ровно 5 - уже средняя полоса
	assert.True(t, Calculate(dec("5"), models.Normal, 1, cfg).Equal(dec("5.5")))
	// ровно 1000 - средняя полоса, но процент выводит за 1000, поэтому плоская надбавка
	assert.True(t, Calculate(dec("1000"), models.Normal, 1, cfg).Equal(dec("1050")))
	assert.True(t, Calculate(dec("1000.01"), models.Normal, 1, cfg).Equal(dec("1050.01")))
}

func TestCalculate_SurchargesAndQuantity(t *testing.T) {
	cfg := values.MarginConfig{OwnMarginPercent: 10, AddToBulky: 30, AddToCustom: 15, MarginMidPercent: 0}

	assert.True(t, Calculate(dec("100"), models.Bulky, 1, cfg).Equal(dec("140")))
	assert.True(t, Calculate(dec("100"), models.Custom, 1, cfg).Equal(dec("125")))
	assert.True(t, Calculate(dec("100"), models.Normal, 3, cfg).Equal(dec("330")))
	assert.True(t, Calculate(dec("100"), models.Normal, 0, cfg).Equal(dec("110")))
}

func TestCalculate_MonotonicWithinMidTier(t *testing.T) {
	cfg := values.MarginConfig{OwnMarginPercent: 20, OwnMarginPercentUnder10: 30, MarginUnder5: 1, MarginMidPercent: 5, MarginOver1000: 20}

	prev := decimal.Zero
	for cents := int64(1000); cents <= 70000; cents += 37 {
		price := Calculate(decimal.New(cents, -2), models.Normal, 1, cfg)
		assert.False(t, price.LessThan(prev), "price dropped at %d cents", cents)
		prev = price
	}
}
