package tree

import (
	"allegro_sync/internal/allegro/business/models"
	"sort"
)

// ApplicationTree - лес применимости товара. Узлы упорядочены по ApplicationID.
type ApplicationTree struct {
	nodes    map[int]models.Application
	children map[int][]int
	order    []int
}

func NewApplicationTree(applications []models.Application) *ApplicationTree {
	t := &ApplicationTree{
		nodes:    make(map[int]models.Application, len(applications)),
		children: make(map[int][]int),
	}
	for _, a := range applications {
		if _, dup := t.nodes[a.ApplicationID]; dup {
			continue
		}
		t.nodes[a.ApplicationID] = a
		t.order = append(t.order, a.ApplicationID)
	}
	sort.Ints(t.order)

	for _, id := range t.order {
		a := t.nodes[id]
		if a.ParentID != 0 && a.ParentID != a.ApplicationID {
			t.children[a.ParentID] = append(t.children[a.ParentID], id)
		}
	}
	return t
}

func (t *ApplicationTree) Len() int {
	return len(t.order)
}

func (t *ApplicationTree) Get(id int) (models.Application, bool) {
	a, ok := t.nodes[id]
	return a, ok
}

func (t *ApplicationTree) Children(id int) []models.Application {
	ids := t.children[id]
	out := make([]models.Application, 0, len(ids))
	for _, c := range ids {
		out = append(out, t.nodes[c])
	}
	return out
}

// Leaves - узлы, на которые не ссылается ни один другой узел, по возрастанию id.
func (t *ApplicationTree) Leaves() []models.Application {
	var leaves []models.Application
	for _, id := range t.order {
		if len(t.children[id]) == 0 {
			leaves = append(leaves, t.nodes[id])
		}
	}
	return leaves
}

// Roots - узлы с ParentID == 0, а также узлы, чей родитель отсутствует в выборке.
func (t *ApplicationTree) Roots() []models.Application {
	var roots []models.Application
	for _, id := range t.order {
		a := t.nodes[id]
		if _, ok := t.nodes[a.ParentID]; a.ParentID == 0 || !ok || a.ParentID == a.ApplicationID {
			roots = append(roots, a)
		}
	}
	return roots
}

// BrandNames - имена марок, то есть узлов с ParentID == 0. Узлы с потерянным родителем маркой не считаются.
func (t *ApplicationTree) BrandNames() []string {
	var names []string
	for _, id := range t.order {
		if a := t.nodes[id]; a.ParentID == 0 {
			names = append(names, a.Name)
		}
	}
	return names
}

// Path возвращает цепочку корень → узел.
func (t *ApplicationTree) Path(id int) []models.Application {
	var path []models.Application
	seen := make(map[int]struct{})

	current, ok := t.nodes[id]
	for ok {
		if _, loop := seen[current.ApplicationID]; loop {
			break
		}
		seen[current.ApplicationID] = struct{}{}
		path = append([]models.Application{current}, path...)

		if current.ParentID == 0 {
			break
		}
		current, ok = t.nodes[current.ParentID]
	}
	return path
}

// Descendants - все потомки узла в порядке обхода в глубину.
func (t *ApplicationTree) Descendants(id int) []models.Application {
	var out []models.Application
	seen := map[int]struct{}{id: {}}
	var walk func(int)
	walk = func(parent int) {
		for _, c := range t.children[parent] {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, t.nodes[c])
			walk(c)
		}
	}
	walk(id)
	return out
}
