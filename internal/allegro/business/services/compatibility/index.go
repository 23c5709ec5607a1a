package compatibility

import (
	"allegro_sync/internal/allegro/business/models"
	"strings"
)

// ProductIndex - справочник совместимых продуктов в памяти, ключ - название без учёта регистра.
type ProductIndex struct {
	byName map[string]models.CompatibleProduct
}

func NewProductIndex(products []models.CompatibleProduct) *ProductIndex {
	idx := &ProductIndex{byName: make(map[string]models.CompatibleProduct, len(products))}
	for _, p := range products {
		key := fold(strings.TrimSpace(p.Name))
		if _, exists := idx.byName[key]; !exists {
			idx.byName[key] = p
		}
	}
	return idx
}

func (idx *ProductIndex) FindByName(name string) (models.CompatibleProduct, bool) {
	p, ok := idx.byName[fold(strings.TrimSpace(name))]
	return p, ok
}

func (idx *ProductIndex) Len() int {
	return len(idx.byName)
}
