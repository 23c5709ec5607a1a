package models

// AllegroCategory - узел дерева категорий маркетплейса.
type AllegroCategory struct {
	ID         int
	CategoryID string
	Name       string
	ParentID   *int
}

// Application - узел дерева применимости; ParentID == 0 означает корень (обычно марку).
type Application struct {
	ApplicationID int
	ParentID      int
	Name          string
}

type CompatibleProduct struct {
	ID        string
	Name      string
	Type      string
	GroupName string
}

// Offer - уже выставленное предложение, связанное с товаром.
type Offer struct {
	ID         string
	ProductID  int
	CategoryID string
	Product    *Product
}
