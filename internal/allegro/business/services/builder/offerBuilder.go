package builder

import (
	"allegro_sync/internal/allegro/business/models/dto/request"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidationError - собранная оферта не прошла проверку структуры.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid offer payload: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// OfferBuilder накапливает поля оферты; Build отдаёт готовую неизменяемую копию.
type OfferBuilder struct {
	validate *validator.Validate

	Name              string
	CategoryID        string
	ProductParameters []request.Parameter
	SafetyInformation string
	Parameters        []request.Parameter
	Available         int
	Unit              string
	Price             decimal.Decimal
	Currency          string
	Images            []string
	Description       *request.Description
	ExternalID        string
	Status            string
	Delivery          *request.Delivery
	AfterSales        *request.AfterSalesServices
	Compatibility     *request.CompatibilityList
}

func NewOfferBuilder(validate *validator.Validate) *OfferBuilder {
	return &OfferBuilder{validate: validate}
}

func (b *OfferBuilder) WithName(name string) *OfferBuilder {
	b.Name = name
	return b
}

func (b *OfferBuilder) WithCategory(categoryID string) *OfferBuilder {
	b.CategoryID = categoryID
	return b
}

func (b *OfferBuilder) WithProductParameters(params []request.Parameter, safetyInformation string) *OfferBuilder {
	b.ProductParameters = params
	b.SafetyInformation = safetyInformation
	return b
}

func (b *OfferBuilder) WithParameters(params []request.Parameter) *OfferBuilder {
	b.Parameters = params
	return b
}

func (b *OfferBuilder) WithStock(available int, unit string) *OfferBuilder {
	b.Available = available
	b.Unit = unit
	return b
}

func (b *OfferBuilder) WithPrice(price decimal.Decimal, currency string) *OfferBuilder {
	b.Price = price
	b.Currency = currency
	return b
}

func (b *OfferBuilder) WithImages(images []string) *OfferBuilder {
	b.Images = images
	return b
}

func (b *OfferBuilder) WithDescription(description *request.Description) *OfferBuilder {
	b.Description = description
	return b
}

func (b *OfferBuilder) WithExternalID(id string) *OfferBuilder {
	b.ExternalID = id
	return b
}

func (b *OfferBuilder) WithPublication(status string) *OfferBuilder {
	b.Status = status
	return b
}

func (b *OfferBuilder) WithDelivery(delivery *request.Delivery) *OfferBuilder {
	b.Delivery = delivery
	return b
}

func (b *OfferBuilder) WithAfterSales(afterSales *request.AfterSalesServices) *OfferBuilder {
	b.AfterSales = afterSales
	return b
}

func (b *OfferBuilder) WithCompatibility(list *request.CompatibilityList) *OfferBuilder {
	b.Compatibility = list
	return b
}

func (b *OfferBuilder) Build() (*request.OfferPayload, error) {
	payload := &request.OfferPayload{
		Name:               b.Name,
		Parameters:         b.Parameters,
		Stock:              &request.Stock{Available: b.Available, Unit: b.Unit},
		SellingMode:        &request.SellingMode{Format: "BUY_NOW", Price: request.Price{Amount: b.Price.StringFixed(2), Currency: b.Currency}},
		Images:             b.Images,
		Description:        b.Description,
		Publication:        &request.Publication{Status: b.Status},
		Delivery:           b.Delivery,
		AfterSalesServices: b.AfterSales,
		CompatibilityList:  b.Compatibility,
	}
	if b.CategoryID != "" {
		payload.Category = &request.Category{ID: b.CategoryID}
	}
	if b.ExternalID != "" {
		payload.External = &request.External{ID: b.ExternalID}
	}
	if item, ok := b.productSetItem(); ok {
		payload.ProductSet = []request.ProductSetItem{item}
	}

	if b.validate != nil {
		if err := b.validate.Struct(payload); err != nil {
			return nil, &ValidationError{Err: err}
		}
	}
	return payload, nil
}

func (b *OfferBuilder) productSetItem() (request.ProductSetItem, bool) {
	if b.Name == "" && b.CategoryID == "" && len(b.ProductParameters) == 0 && b.SafetyInformation == "" {
		return request.ProductSetItem{}, false
	}
	item := request.ProductSetItem{
		Product: request.ProductSetProduct{
			Name:       b.Name,
			Parameters: b.ProductParameters,
			Images:     b.Images,
		},
	}
	if b.CategoryID != "" {
		item.Product.Category = &request.Category{ID: b.CategoryID}
	}
	if b.SafetyInformation != "" {
		item.SafetyInformation = &request.SafetyInformation{Type: "TEXT", Description: b.SafetyInformation}
	}
	return item, true
}
