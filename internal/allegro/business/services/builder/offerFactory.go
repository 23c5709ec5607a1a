package builder

import (
	"allegro_sync/config/values"
	"allegro_sync/internal/allegro/business/models"
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/internal/allegro/business/services/compatibility"
	"allegro_sync/internal/allegro/business/services/description"
	"allegro_sync/internal/allegro/business/services/naming"
	"allegro_sync/internal/allegro/business/services/parameters"
	"allegro_sync/internal/allegro/business/services/pricing"
	"allegro_sync/internal/allegro/business/services/tree"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNilProduct      = errors.New("product is nil")
	ErrNilOffer        = errors.New("offer or its product is nil")
	ErrMissingCategory = errors.New("product has no category")
	ErrUnknownCategory = errors.New("category is not present in category tree")
	ErrEmptyName       = errors.New("product name is empty")
	ErrInvalidPrice    = errors.New("product price must be positive")
)

// Config - неизменяемые настройки фабрики, передаются один раз при создании.
type Config struct {
	Margin values.MarginConfig
	Offer  values.OfferValues
}

// OfferFactory собирает оферту из товара: цена, название, параметры, совместимость, описание.
// Без сетевых вызовов и общего изменяемого состояния, безопасна для параллельного использования.
type OfferFactory struct {
	cfg      Config
	names    *naming.Normalizer
	params   *parameters.Mapper
	compat   *compatibility.Builder
	composer *description.Composer
	validate *validator.Validate
}

// NewOfferFactory - lookup может быть nil, тогда ветка совместимости по id не используется.
func NewOfferFactory(cfg Config, lookup compatibility.CompatibleProductLookup) *OfferFactory {
	opts := []compatibility.Option{
		compatibility.WithCap(cfg.Offer.CompatibilityCap),
		compatibility.WithProhibited(cfg.Offer.ProhibitedCompatTokens),
	}
	if lookup != nil && cfg.Offer.TractorCategoryID != 0 {
		opts = append(opts, compatibility.WithTractorLookup(cfg.Offer.TractorCategoryID, lookup))
	}

	return &OfferFactory{
		cfg:      cfg,
		names:    naming.NewNormalizer(),
		params:   parameters.NewMapper(cfg.Offer.MultiValueParameters, cfg.Offer.MaxMultiValues),
		compat:   compatibility.NewBuilder(opts...),
		composer: description.NewComposer(cfg.Offer.DescriptionLayout, cfg.Offer.MaxItemsPerSection),
		validate: validator.New(),
	}
}

// BuildCreatePayload - полная оферта для POST.
func (f *OfferFactory) BuildCreatePayload(product *models.Product, categories *tree.CategoryTree) (*request.OfferPayload, error) {
	if product == nil {
		return nil, ErrNilProduct
	}
	if product.CategoryID == 0 {
		return nil, fmt.Errorf("product %d: %w", product.ID, ErrMissingCategory)
	}
	category, ok := lookupCategory(categories, product.CategoryID)
	if !ok {
		return nil, fmt.Errorf("product %d, category %d: %w", product.ID, product.CategoryID, ErrUnknownCategory)
	}
	if strings.TrimSpace(product.Name) == "" {
		return nil, fmt.Errorf("product %d: %w", product.ID, ErrEmptyName)
	}

	b, available, err := f.mutableFields(product, product.CategoryID, categories)
	if err != nil {
		return nil, err
	}

	apps := tree.NewApplicationTree(product.Applications)
	name := f.names.Normalize(product.Name, product.Code, f.fallbackSupplier(product), apps.BrandNames())

	status := request.StatusInactive
	if float64(available) >= f.cfg.Offer.MinStockThreshold {
		status = request.StatusActive
	}

	return b.WithName(name).
		WithCategory(category.CategoryID).
		WithExternalID(strconv.Itoa(product.ID)).
		WithPublication(status).
		Build()
}

// BuildUpdatePayload - частичная оферта для PATCH: name и category не меняются.
func (f *OfferFactory) BuildUpdatePayload(offer *models.Offer, categories *tree.CategoryTree) (*request.OfferPayload, error) {
	if offer == nil || offer.Product == nil {
		return nil, ErrNilOffer
	}

	categoryID := offer.Product.CategoryID
	if c, ok := lookupExternalCategory(categories, offer.CategoryID); ok {
		categoryID = c.ID
	}

	b, available, err := f.mutableFields(offer.Product, categoryID, categories)
	if err != nil {
		return nil, err
	}

	status := request.StatusEnded
	if float64(available) >= f.cfg.Offer.MinStockThreshold {
		status = request.StatusActive
	}

	return b.WithExternalID(strconv.Itoa(offer.Product.ID)).
		WithPublication(status).
		Build()
}

// mutableFields заполняет всё, что одинаково для создания и обновления.
func (f *OfferFactory) mutableFields(product *models.Product, categoryID int, categories *tree.CategoryTree) (*OfferBuilder, int, error) {
	if !product.GrossPrice.IsPositive() {
		return nil, 0, fmt.Errorf("product %d: %w", product.ID, ErrInvalidPrice)
	}

	quantity := product.SaleQuantity()
	price := pricing.CalculateRounded(product.GrossPrice, product.Type, quantity, f.cfg.Margin)
	available := availableStock(product.InStock, quantity)
	images := product.ImageLinks()

	safety, _ := f.params.SafetyInformation(product.Parameters)

	b := NewOfferBuilder(f.validate).
		WithProductParameters(f.params.BuildParameters(product.Parameters, true), safety).
		WithParameters(f.params.BuildParameters(product.Parameters, false)).
		WithStock(available, models.MarketplaceUnit(product.Unit)).
		WithPrice(price, f.cfg.Offer.Currency).
		WithImages(images).
		WithDescription(f.composer.Compose(product, images)).
		WithDelivery(f.delivery(product.Type)).
		WithAfterSales(f.afterSales()).
		WithCompatibility(f.compat.Build(categoryID, product.Applications, categories))

	return b, available, nil
}

func (f *OfferFactory) fallbackSupplier(product *models.Product) string {
	if strings.TrimSpace(product.SupplierName) != "" {
		return product.SupplierName
	}
	return f.cfg.Offer.FallbackSupplierName
}

func (f *OfferFactory) delivery(productType models.ProductType) *request.Delivery {
	d := f.cfg.Offer.Delivery
	name := d.ShippingRatesName
	switch {
	case productType == models.Bulky && d.BulkyShippingRatesName != "":
		name = d.BulkyShippingRatesName
	case productType == models.Custom && d.CustomShippingRatesName != "":
		name = d.CustomShippingRatesName
	}

	delivery := &request.Delivery{HandlingTime: d.HandlingTime}
	if name != "" {
		delivery.ShippingRates = &request.ShippingRates{Name: name}
	}
	return delivery
}

func (f *OfferFactory) afterSales() *request.AfterSalesServices {
	a := f.cfg.Offer.AfterSales
	if a.ReturnPolicyID == "" && a.ImpliedWarrantyID == "" && a.WarrantyID == "" {
		return nil
	}
	return &request.AfterSalesServices{
		ReturnPolicy:    policy(a.ReturnPolicyID),
		ImpliedWarranty: policy(a.ImpliedWarrantyID),
		Warranty:        policy(a.WarrantyID),
	}
}

func policy(id string) *request.PolicyRef {
	if id == "" {
		return nil
	}
	return &request.PolicyRef{ID: id}
}

// availableStock - сколько продаваемых позиций (комплектов) есть на складе.
func availableStock(inStock float64, quantity int) int {
	if inStock <= 0 || quantity <= 0 {
		return 0
	}
	return int(math.Floor(inStock / float64(quantity)))
}

func lookupCategory(categories *tree.CategoryTree, id int) (models.AllegroCategory, bool) {
	if categories == nil {
		return models.AllegroCategory{}, false
	}
	return categories.Get(id)
}

func lookupExternalCategory(categories *tree.CategoryTree, externalID string) (models.AllegroCategory, bool) {
	if categories == nil || externalID == "" {
		return models.AllegroCategory{}, false
	}
	return categories.GetByExternalID(externalID)
}
