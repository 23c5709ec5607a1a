package pricing

import (
	"allegro_sync/config/values"
	"allegro_sync/internal/allegro/business/models"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// границы ценовых полос
	LOW_TIER_LIMIT    = decimal.NewFromInt(5)
	HIGH_TIER_LIMIT   = decimal.NewFromInt(1000)
	CHEAP_BASE_LIMIT  = decimal.NewFromInt(10)
	DIVISION_ROUNDING = int32(2)
)

// Calculate считает цену оферты по полосам наценки. Результат не округлён.
// Порядок проверок полос важен: на границах 5 и 1000 он определяет результат.
func Calculate(basePrice decimal.Decimal, productType models.ProductType, quantity int, cfg values.MarginConfig) decimal.Decimal {
	if quantity < 1 {
		quantity = 1
	}

	price := basePrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(percent(ownMargin(basePrice, cfg)))
	price = price.Add(typeSurcharge(productType, cfg))

	switch {
	case price.LessThan(LOW_TIER_LIMIT):
		return calculateLow(price, cfg)
	case price.LessThanOrEqual(HIGH_TIER_LIMIT):
		return calculateMid(price, cfg)
	default:
		return calculateHigh(price, cfg)
	}
}

// CalculateRounded - цена, готовая к сериализации (2 знака).
func CalculateRounded(basePrice decimal.Decimal, productType models.ProductType, quantity int, cfg values.MarginConfig) decimal.Decimal {
	return Round(Calculate(basePrice, productType, quantity, cfg))
}

func Round(price decimal.Decimal) decimal.Decimal {
	return price.Round(DIVISION_ROUNDING)
}

func ownMargin(basePrice decimal.Decimal, cfg values.MarginConfig) float64 {
	if basePrice.LessThan(CHEAP_BASE_LIMIT) {
		return cfg.OwnMarginPercentUnder10
	}
	return cfg.OwnMarginPercent
}

func typeSurcharge(productType models.ProductType, cfg values.MarginConfig) decimal.Decimal {
	switch productType {
	case models.Bulky:
		return decimal.NewFromFloat(cfg.AddToBulky)
	case models.Custom:
		return decimal.NewFromFloat(cfg.AddToCustom)
	default:
		return decimal.Zero
	}
}

func calculateLow(price decimal.Decimal, cfg values.MarginConfig) decimal.Decimal {
	raised := price.Add(decimal.NewFromFloat(cfg.MarginUnder5))
	if raised.LessThan(LOW_TIER_LIMIT) {
		return raised
	}
	return price.Mul(percent(cfg.MarginMidPercent))
}

func calculateMid(price decimal.Decimal, cfg values.MarginConfig) decimal.Decimal {
	tentative := price.Mul(percent(cfg.MarginMidPercent))
	if tentative.GreaterThan(HIGH_TIER_LIMIT) {
		return calculateHigh(price, cfg)
	}
	return tentative
}

func calculateHigh(price decimal.Decimal, cfg values.MarginConfig) decimal.Decimal {
	return price.Add(decimal.NewFromFloat(cfg.MarginOver1000))
}

// percent превращает 20 в множитель 1.20.
func percent(p float64) decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromFloat(p).Div(hundred))
}
