package request

import "encoding/json"

// Model - всё, что можно отправить в API маркетплейса.
type Model interface {
	ToBytes() ([]byte, error)
}

// OfferPayload - тело POST/PATCH /sale/product-offers.
// На обновлении name и category не заполняются.
type OfferPayload struct {
	Name               string              `json:"name,omitempty" validate:"omitempty,max=75"`
	Category           *Category           `json:"category,omitempty"`
	ProductSet         []ProductSetItem    `json:"productSet,omitempty" validate:"dive"`
	Parameters         []Parameter         `json:"parameters,omitempty" validate:"dive"`
	Stock              *Stock              `json:"stock,omitempty" validate:"required"`
	SellingMode        *SellingMode        `json:"sellingMode,omitempty" validate:"required"`
	Images             []string            `json:"images,omitempty"`
	Description        *Description        `json:"description,omitempty"`
	External           *External           `json:"external,omitempty"`
	Publication        *Publication        `json:"publication,omitempty" validate:"required"`
	Delivery           *Delivery           `json:"delivery,omitempty"`
	AfterSalesServices *AfterSalesServices `json:"afterSalesServices,omitempty"`
	CompatibilityList  *CompatibilityList  `json:"compatibilityList,omitempty"`
}

func (p OfferPayload) ToBytes() ([]byte, error) {
	return json.Marshal(p)
}

type Category struct {
	ID string `json:"id" validate:"required"`
}

type ProductSetItem struct {
	Product           ProductSetProduct  `json:"product"`
	SafetyInformation *SafetyInformation `json:"safetyInformation,omitempty"`
}

type ProductSetProduct struct {
	Name       string      `json:"name,omitempty"`
	Category   *Category   `json:"category,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty" validate:"dive"`
	Images     []string    `json:"images,omitempty"`
}

type SafetyInformation struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Parameter struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name" validate:"required"`
	Values    []string `json:"values,omitempty"`
	ValuesIDs []string `json:"valuesIds,omitempty"`
}

type Stock struct {
	Available int    `json:"available" validate:"gte=0"`
	Unit      string `json:"unit" validate:"required"`
}

type SellingMode struct {
	Format string `json:"format,omitempty"`
	Price  Price  `json:"price"`
}

// Price.Amount - десятичная строка с двумя знаками после точки.
type Price struct {
	Amount   string `json:"amount" validate:"required,numeric"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type ItemType string

const (
	ItemText  ItemType = "TEXT"
	ItemImage ItemType = "IMAGE"
)

type Description struct {
	Sections []Section `json:"sections"`
}

type Section struct {
	Items []SectionItem `json:"items"`
}

type SectionItem struct {
	Type    ItemType `json:"type"`
	Content string   `json:"content,omitempty"`
	URL     string   `json:"url,omitempty"`
}

func TextItem(content string) SectionItem {
	return SectionItem{Type: ItemText, Content: content}
}

func ImageItem(url string) SectionItem {
	return SectionItem{Type: ItemImage, URL: url}
}

type External struct {
	ID string `json:"id"`
}

type Publication struct {
	Status     string  `json:"status"`
	StartingAt *string `json:"startingAt,omitempty"`
}

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusEnded    = "ENDED"
)

type Delivery struct {
	ShippingRates *ShippingRates `json:"shippingRates,omitempty"`
	HandlingTime  string         `json:"handlingTime,omitempty"`
}

type ShippingRates struct {
	Name string `json:"name"`
}

type AfterSalesServices struct {
	ReturnPolicy    *PolicyRef `json:"returnPolicy,omitempty"`
	ImpliedWarranty *PolicyRef `json:"impliedWarranty,omitempty"`
	Warranty        *PolicyRef `json:"warranty,omitempty"`
}

type PolicyRef struct {
	ID string `json:"id"`
}

type CompatibilityList struct {
	Items []CompatibilityItem `json:"items"`
}

type CompatibilityItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
