package values

// MarginConfig - параметры наценки, из которых считается цена оферты.
type MarginConfig struct {
	OwnMarginPercent        float64 `yaml:"own-margin-percent" validate:"gte=0"`
	OwnMarginPercentUnder10 float64 `yaml:"own-margin-percent-under-10" validate:"gte=0"`
	AddToBulky              float64 `yaml:"add-to-bulky" validate:"gte=0"`
	AddToCustom             float64 `yaml:"add-to-custom" validate:"gte=0"`
	MarginUnder5            float64 `yaml:"margin-under-5" validate:"gte=0"`
	MarginMidPercent        float64 `yaml:"margin-mid-percent" validate:"gte=0"`
	MarginOver1000          float64 `yaml:"margin-over-1000" validate:"gte=0"`
}

// DescriptionLayout выбирает способ раскладки описания по секциям.
type DescriptionLayout string

const (
	// LayoutHeader - картинка, общий HTML-блок, применения, оставшиеся картинки.
	LayoutHeader DescriptionLayout = "header"
	// LayoutFlat - отдельные TEXT и IMAGE элементы, нарезанные по секциям.
	LayoutFlat DescriptionLayout = "flat"
)

type DeliveryValues struct {
	ShippingRatesName       string `yaml:"shipping-rates-name" validate:"required"`
	BulkyShippingRatesName  string `yaml:"bulky-shipping-rates-name"`
	CustomShippingRatesName string `yaml:"custom-shipping-rates-name"`
	HandlingTime            string `yaml:"handling-time" validate:"required"`
}

type AfterSalesValues struct {
	ReturnPolicyID    string `yaml:"return-policy-id"`
	ImpliedWarrantyID string `yaml:"implied-warranty-id"`
	WarrantyID        string `yaml:"warranty-id"`
}

// OfferValues - значения по умолчанию для сборки оферт, различающиеся между развёртываниями.
type OfferValues struct {
	Currency               string            `yaml:"currency" validate:"required,len=3"`
	MinStockThreshold      float64           `yaml:"min-stock-threshold" validate:"gte=0"`
	MaxItemsPerSection     int               `yaml:"max-items-per-section" validate:"gte=1"`
	CompatibilityCap       int               `yaml:"compatibility-cap" validate:"gte=1"`
	TractorCategoryID      int               `yaml:"tractor-category-id"`
	MultiValueParameters   []string          `yaml:"multi-value-parameters"`
	MaxMultiValues         int               `yaml:"max-multi-values" validate:"gte=1"`
	ProhibitedCompatTokens []string          `yaml:"prohibited-compatibility-tokens"`
	DescriptionLayout      DescriptionLayout `yaml:"description-layout" validate:"omitempty,oneof=header flat"`
	FallbackSupplierName   string            `yaml:"fallback-supplier-name"`
	Delivery               DeliveryValues    `yaml:"delivery"`
	AfterSales             AfterSalesValues  `yaml:"after-sales"`
}

func DefaultOfferValues() OfferValues {
	return OfferValues{
		Currency:               "PLN",
		MinStockThreshold:      1,
		MaxItemsPerSection:     2,
		CompatibilityCap:       99,
		MultiValueParameters:   []string{"numery katalogowe zamienników", "marka"},
		MaxMultiValues:         15,
		ProhibitedCompatTokens: []string{"marka"},
		DescriptionLayout:      LayoutHeader,
		Delivery: DeliveryValues{
			ShippingRatesName: "Standard",
			HandlingTime:      "PT24H",
		},
	}
}
