package description

import (
	"allegro_sync/config/values"
	"allegro_sync/internal/allegro/business/models"
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/internal/allegro/business/services/tree"
	"allegro_sync/pkg/business/service"
	"fmt"
	"regexp"
	"strings"
)

const DefaultMaxItemsPerSection = 2

// значения атрибутов приходят из выгрузки поставщика с разметкой и ссылками
const maxAttributeValueLength = 120

const (
	runningMeterNotice = "Uwaga! Cena dotyczy 1 metra bieżącego."
	setNoticeFormat    = "Uwaga! Cena dotyczy kompletu: %d %s."
)

var lineBreakRe = regexp.MustCompile(`\r?\n+`)

// Composer собирает описание оферты из секций TEXT/IMAGE.
type Composer struct {
	layout   values.DescriptionLayout
	maxItems int
	text     service.ITextService
}

func NewComposer(layout values.DescriptionLayout, maxItemsPerSection int) *Composer {
	if layout == "" {
		layout = values.LayoutHeader
	}
	if maxItemsPerSection <= 0 {
		maxItemsPerSection = DefaultMaxItemsPerSection
	}
	return &Composer{layout: layout, maxItems: maxItemsPerSection, text: service.NewTextService()}
}

func (c *Composer) Compose(product *models.Product, images []string) *request.Description {
	if c.layout == values.LayoutFlat {
		return &request.Description{Sections: c.composeFlat(product, images)}
	}
	return &request.Description{Sections: c.composeHeader(product, images)}
}

// composeHeader: картинка, общий блок (+картинка), применения (с картинкой), остальные картинки.
func (c *Composer) composeHeader(product *models.Product, images []string) []request.Section {
	var sections []request.Section
	next := 0
	takeImage := func() (string, bool) {
		if next >= len(images) {
			return "", false
		}
		next++
		return images[next-1], true
	}

	if img, ok := takeImage(); ok {
		sections = append(sections, section(request.ImageItem(img)))
	}

	blob := c.headerHTML(product) + c.bodyHTML(product)
	main := section(request.TextItem(blob))
	if img, ok := takeImage(); ok {
		main.Items = append(main.Items, request.ImageItem(img))
	}
	sections = append(sections, main)

	if apps := c.applicationsHTML(product.Applications); apps != "" {
		appSection := section()
		if img, ok := takeImage(); ok {
			appSection.Items = append(appSection.Items, request.ImageItem(img))
		}
		appSection.Items = append(appSection.Items, request.TextItem(apps))
		sections = append(sections, appSection)
	}

	var rest []request.SectionItem
	for img, ok := takeImage(); ok; img, ok = takeImage() {
		rest = append(rest, request.ImageItem(img))
	}
	return append(sections, Chunk(rest, c.maxItems)...)
}

// composeFlat: все TEXT-блоки, затем все IMAGE, нарезанные по maxItems.
func (c *Composer) composeFlat(product *models.Product, images []string) []request.Section {
	var texts []request.SectionItem
	for _, block := range c.blocks(product) {
		if block != "" {
			texts = append(texts, request.TextItem(block))
		}
	}

	imageItems := make([]request.SectionItem, 0, len(images))
	for _, img := range images {
		imageItems = append(imageItems, request.ImageItem(img))
	}

	return append(Chunk(texts, c.maxItems), Chunk(imageItems, c.maxItems)...)
}

func (c *Composer) blocks(product *models.Product) []string {
	return []string{
		c.headerHTML(product),
		c.paragraphs(product.Description),
		c.paragraphs(product.TechnicalDetails),
		c.attributesHTML(product.DisplayAttributes()),
		c.crossNumbersHTML(product.CrossNumbers),
		c.warningHTML(product),
		c.applicationsHTML(product.Applications),
	}
}

func (c *Composer) headerHTML(product *models.Product) string {
	var b strings.Builder
	if name := c.clean(product.Name); name != "" {
		fmt.Fprintf(&b, "<p><b>%s</b></p>", name)
	}
	if code := c.clean(product.Code); code != "" {
		fmt.Fprintf(&b, "<p>Kod: %s</p>", code)
	}
	if producer := c.clean(product.SupplierName); producer != "" {
		fmt.Fprintf(&b, "<p>Producent: %s</p>", producer)
	}
	return b.String()
}

func (c *Composer) bodyHTML(product *models.Product) string {
	return c.paragraphs(product.Description) +
		c.paragraphs(product.TechnicalDetails) +
		c.attributesHTML(product.DisplayAttributes()) +
		c.crossNumbersHTML(product.CrossNumbers) +
		c.warningHTML(product)
}

func (c *Composer) paragraphs(text string) string {
	var b strings.Builder
	for _, line := range lineBreakRe.Split(c.text.RemoveTags(text), -1) {
		if cleaned := c.clean(line); cleaned != "" {
			fmt.Fprintf(&b, "<p>%s</p>", cleaned)
		}
	}
	return b.String()
}

func (c *Composer) attributesHTML(attrs []models.Attribute) string {
	var b strings.Builder
	for _, a := range attrs {
		value := c.text.Encode(c.text.ClearAndReduce(a.Value, maxAttributeValueLength))
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "<li>%s: %s</li>", c.clean(a.Name), value)
	}
	if b.Len() == 0 {
		return ""
	}
	return "<ul>" + b.String() + "</ul>"
}

func (c *Composer) crossNumbersHTML(numbers []models.CrossNumber) string {
	var parts []string
	for _, n := range numbers {
		number := c.clean(n.Number)
		if number == "" {
			continue
		}
		if producer := c.clean(n.Producer); producer != "" {
			number = producer + " " + number
		}
		parts = append(parts, number)
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("<p><b>Numery zamienników:</b> %s</p>", strings.Join(parts, ", "))
}

func (c *Composer) warningHTML(product *models.Product) string {
	if strings.EqualFold(strings.TrimSpace(product.Unit), "mb") {
		return fmt.Sprintf("<p><b>%s</b></p>", c.clean(runningMeterNotice))
	}
	if pkg, ok := product.RequiredPackage(); ok {
		unit := pkg.Unit
		if unit == "" {
			unit = product.Unit
		}
		notice := fmt.Sprintf(setNoticeFormat, pkg.Quantity, Conjugate(pkg.Quantity, unit))
		return fmt.Sprintf("<p><b>%s</b></p>", c.clean(notice))
	}
	return ""
}

// applicationsHTML: марка → группа второго уровня → все более глубокие узлы через запятую.
func (c *Composer) applicationsHTML(applications []models.Application) string {
	if len(applications) == 0 {
		return ""
	}
	apps := tree.NewApplicationTree(applications)

	var entries []string
	for _, brand := range apps.Roots() {
		groups := apps.Children(brand.ApplicationID)
		if len(groups) == 0 {
			entries = append(entries, c.clean(brand.Name))
			continue
		}
		for _, group := range groups {
			entry := c.clean(brand.Name) + " - " + c.clean(group.Name)
			var leaves []string
			for _, d := range apps.Descendants(group.ApplicationID) {
				if name := c.clean(d.Name); name != "" {
					leaves = append(leaves, name)
				}
			}
			if len(leaves) > 0 {
				entry += ": " + strings.Join(leaves, ", ")
			}
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<p><b>Zastosowanie:</b></p><ul>")
	for _, e := range entries {
		fmt.Fprintf(&b, "<li>%s</li>", e)
	}
	b.WriteString("</ul>")
	return b.String()
}

func (c *Composer) clean(s string) string {
	return c.text.Encode(c.text.CollapseSpaces(s))
}

// Chunk режет элементы на секции не длиннее maxItems, последняя может быть короче.
func Chunk(items []request.SectionItem, maxItems int) []request.Section {
	if maxItems <= 0 {
		maxItems = DefaultMaxItemsPerSection
	}
	var sections []request.Section
	for start := 0; start < len(items); start += maxItems {
		end := start + maxItems
		if end > len(items) {
			end = len(items)
		}
		sections = append(sections, section(items[start:end]...))
	}
	return sections
}

func section(items ...request.SectionItem) request.Section {
	out := make([]request.SectionItem, 0, len(items))
	return request.Section{Items: append(out, items...)}
}
