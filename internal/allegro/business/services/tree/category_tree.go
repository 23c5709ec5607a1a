package tree

import (
	"allegro_sync/internal/allegro/business/models"
)

// CategoryTree - неизменяемый индекс дерева категорий Allegro по внутреннему и внешнему id.
type CategoryTree struct {
	nodes      map[int]models.AllegroCategory
	byExternal map[string]int
}

func NewCategoryTree(categories []models.AllegroCategory) *CategoryTree {
	t := &CategoryTree{
		nodes:      make(map[int]models.AllegroCategory, len(categories)),
		byExternal: make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		t.nodes[c.ID] = c
		if c.CategoryID != "" {
			t.byExternal[c.CategoryID] = c.ID
		}
	}
	return t
}

func (t *CategoryTree) Len() int {
	return len(t.nodes)
}

func (t *CategoryTree) Get(id int) (models.AllegroCategory, bool) {
	c, ok := t.nodes[id]
	return c, ok
}

func (t *CategoryTree) GetByExternalID(categoryID string) (models.AllegroCategory, bool) {
	id, ok := t.byExternal[categoryID]
	if !ok {
		return models.AllegroCategory{}, false
	}
	return t.Get(id)
}

// Ancestors возвращает путь от узла к корню, начиная с самого узла.
// Обход обрывается на узле без родителя, на отсутствующем родителе и на повторе.
func (t *CategoryTree) Ancestors(id int) []models.AllegroCategory {
	var path []models.AllegroCategory
	seen := make(map[int]struct{})

	current, ok := t.nodes[id]
	for ok {
		if _, loop := seen[current.ID]; loop {
			break
		}
		seen[current.ID] = struct{}{}
		path = append(path, current)

		if current.ParentID == nil {
			break
		}
		current, ok = t.nodes[*current.ParentID]
	}
	return path
}

// IsDescendantOf - true, если id равен ancestorID или лежит под ним.
func (t *CategoryTree) IsDescendantOf(id, ancestorID int) bool {
	for _, c := range t.Ancestors(id) {
		if c.ID == ancestorID {
			return true
		}
	}
	return false
}
