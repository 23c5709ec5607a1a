package compatibility

import (
	"allegro_sync/internal/allegro/business/models"
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/internal/allegro/business/services/tree"
	"golang.org/x/text/cases"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultCap = 99

	TypeText = "TEXT"
	TypeID   = "ID"
)

var (
	DefaultProhibited = []string{"marka"}

	trailingNumberRe = regexp.MustCompile(`^(.*?)(\d+)$`)
)

// CompatibleProductLookup ищет запись справочника совместимых продуктов по названию.
type CompatibleProductLookup interface {
	FindByName(name string) (models.CompatibleProduct, bool)
}

type Option func(*Builder)

func WithCap(limit int) Option {
	return func(b *Builder) {
		if limit > 0 {
			b.limit = limit
		}
	}
}

func WithProhibited(tokens []string) Option {
	return func(b *Builder) {
		if tokens != nil {
			b.prohibited = tokens
		}
	}
}

// WithTractorLookup включает сопоставление по id для категорий под tractorCategoryID.
func WithTractorLookup(tractorCategoryID int, lookup CompatibleProductLookup) Option {
	return func(b *Builder) {
		b.tractorCategoryID = tractorCategoryID
		b.lookup = lookup
	}
}

type Builder struct {
	limit             int
	prohibited        []string
	tractorCategoryID int
	lookup            CompatibleProductLookup
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{limit: DefaultCap, prohibited: DefaultProhibited}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Cap() int {
	return b.limit
}

// Build возвращает список совместимости или nil, если строить его не из чего.
func (b *Builder) Build(categoryID int, applications []models.Application, categories *tree.CategoryTree) *request.CompatibilityList {
	if len(applications) == 0 || categories == nil {
		return nil
	}
	if _, ok := categories.Get(categoryID); !ok {
		return nil
	}

	apps := tree.NewApplicationTree(applications)
	leaves := apps.Leaves()

	var candidates []request.CompatibilityItem
	if b.useTractorLookup(categoryID, categories) {
		candidates = b.byID(apps, leaves)
	} else {
		candidates = b.byText(apps, leaves)
	}

	items := b.filter(candidates)
	if len(items) == 0 {
		return nil
	}
	return &request.CompatibilityList{Items: items}
}

func (b *Builder) useTractorLookup(categoryID int, categories *tree.CategoryTree) bool {
	return b.tractorCategoryID != 0 && b.lookup != nil && categories.IsDescendantOf(categoryID, b.tractorCategoryID)
}

func (b *Builder) byText(apps *tree.ApplicationTree, leaves []models.Application) []request.CompatibilityItem {
	items := make([]request.CompatibilityItem, 0, len(leaves))
	for _, leaf := range leaves {
		if text := leafText(apps.Path(leaf.ApplicationID)); text != "" {
			items = append(items, request.CompatibilityItem{Type: TypeText, Text: text})
		}
	}
	return items
}

// leafText: корень и лист всегда, родитель листа - только если он глубже второго уровня.
func leafText(path []models.Application) string {
	if len(path) == 0 {
		return ""
	}
	names := []string{path[0].Name}
	if len(path) > 3 {
		names = append(names, path[len(path)-2].Name)
	}
	if len(path) > 1 {
		names = append(names, path[len(path)-1].Name)
	}
	return joinNames(names)
}

func (b *Builder) byID(apps *tree.ApplicationTree, leaves []models.Application) []request.CompatibilityItem {
	var items []request.CompatibilityItem
	for _, leaf := range leaves {
		path := apps.Path(leaf.ApplicationID)
		if len(path) == 0 {
			continue
		}
		names := []string{path[0].Name}
		if len(path) > 1 {
			names = append(names, leaf.Name)
		}
		name := joinNames(names)

		product, ok := b.lookup.FindByName(name)
		if !ok {
			if next, incremented := incrementTrailingNumber(name); incremented {
				product, ok = b.lookup.FindByName(next)
			}
		}
		if ok && product.ID != "" {
			items = append(items, request.CompatibilityItem{Type: TypeID, Text: product.ID})
		}
	}
	return items
}

func (b *Builder) filter(candidates []request.CompatibilityItem) []request.CompatibilityItem {
	seen := make(map[string]struct{}, len(candidates))
	items := make([]request.CompatibilityItem, 0, len(candidates))
	for _, item := range candidates {
		if b.isProhibited(item.Text) {
			continue
		}
		if _, dup := seen[item.Text]; dup {
			continue
		}
		seen[item.Text] = struct{}{}
		items = append(items, item)
		if len(items) == b.limit {
			break
		}
	}
	return items
}

func (b *Builder) isProhibited(text string) bool {
	folded := fold(text)
	for _, token := range b.prohibited {
		if token != "" && strings.Contains(folded, fold(token)) {
			return true
		}
	}
	return false
}

func incrementTrailingNumber(name string) (string, bool) {
	m := trailingNumberRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	return m[1] + strconv.Itoa(n+1), true
}

func joinNames(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}

func fold(s string) string {
	return cases.Fold().String(s)
}
