package models

import (
	"github.com/shopspring/decimal"
	"sort"
	"strings"
)

type ProductType int

const (
	Normal ProductType = iota
	Bulky
	Custom
)

// ParseProductType - неизвестный тип поставки считается обычным.
func ParseProductType(s string) ProductType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bulky", "gabaryt", "gabarytowy":
		return Bulky
	case "custom", "niestandardowy":
		return Custom
	default:
		return Normal
	}
}

func (t ProductType) String() string {
	switch t {
	case Bulky:
		return "bulky"
	case Custom:
		return "custom"
	default:
		return "normal"
	}
}

// Product - товар поставщика вместе со всеми вложенными коллекциями.
type Product struct {
	ID               int
	Name             string
	Code             string
	SupplierName     string
	Description      string
	TechnicalDetails string
	Unit             string
	InStock          float64
	GrossPrice       decimal.Decimal
	Weight           float64
	Type             ProductType
	// CategoryID - внутренний id категории Allegro, 0 означает «не определена».
	CategoryID int

	Parameters   []ProductParameter
	Applications []Application
	Images       []Image
	CrossNumbers []CrossNumber
	Packages     []Package
	Attributes   []Attribute
}

type Image struct {
	ID         int
	URL        string
	AllegroURL string
	Position   int
}

// Link - адрес, под которым картинка уже лежит на стороне маркетплейса, иначе исходный.
func (i Image) Link() string {
	if i.AllegroURL != "" {
		return i.AllegroURL
	}
	return i.URL
}

type CrossNumber struct {
	Number   string
	Producer string
}

type Package struct {
	Quantity int
	Unit     string
	Required bool
}

type Attribute struct {
	Name    string
	Value   string
	Display bool
}

// RequiredPackage возвращает обязательную упаковку, если поставщик продаёт товар только комплектом.
func (p *Product) RequiredPackage() (Package, bool) {
	for _, pkg := range p.Packages {
		if pkg.Required && pkg.Quantity > 0 {
			return pkg, true
		}
	}
	return Package{}, false
}

// SaleQuantity - сколько единиц входит в одну продаваемую позицию.
func (p *Product) SaleQuantity() int {
	if pkg, ok := p.RequiredPackage(); ok {
		return pkg.Quantity
	}
	return 1
}

func (p *Product) DisplayAttributes() []Attribute {
	var attrs []Attribute
	for _, a := range p.Attributes {
		if a.Display && strings.TrimSpace(a.Value) != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// ImageLinks - ссылки на картинки в порядке позиции.
func (p *Product) ImageLinks() []string {
	images := make([]Image, len(p.Images))
	copy(images, p.Images)
	sort.SliceStable(images, func(i, j int) bool { return images[i].Position < images[j].Position })

	links := make([]string, 0, len(images))
	for _, img := range images {
		if link := img.Link(); link != "" {
			links = append(links, link)
		}
	}
	return links
}

// MarketplaceUnit переводит единицу поставщика в единицу Allegro.
func MarketplaceUnit(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "szt", "szt.", "sztuka":
		return "UNIT"
	case "kpl", "kpl.", "komplet":
		return "SET"
	case "para", "pary", "par":
		return "PAIR"
	default:
		return "UNIT"
	}
}
