package model

// Category is the closed set of sale categories a product can belong to.
type Category string

const (
	CategoryBeer     Category = "beer"
	CategoryWine     Category = "wine"
	CategoryLiquor   Category = "liquor"
	CategoryCocktail Category = "cocktail"
	CategoryNA       Category = "na"
	CategoryFood     Category = "food"
)

// OrderingKeyAll is the sentinel ordering key covering the whole catalog.
// It is an independent override slot, not a parent of the per-category keys.
const OrderingKeyAll = "all"

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryBeer,
		CategoryWine,
		CategoryLiquor,
		CategoryCocktail,
		CategoryNA,
		CategoryFood,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a sellable catalog entry. StockQuantity is nil for products
// whose inventory is not tracked; depletion skips those silently.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Price         float64  `json:"price"`
	Hidden        bool     `json:"hidden"`
	DisplayOrder  int      `json:"display_order"`
	StockQuantity *float64 `json:"stock_quantity,omitempty"`
	ParLevel      float64  `json:"par_level,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	ServingSize   float64  `json:"serving_size,omitempty"`
	ServingUnit   string   `json:"serving_unit,omitempty"`
	Cost          float64  `json:"cost,omitempty"`
	Supplier      string   `json:"supplier,omitempty"`
	OutOfStock    bool     `json:"out_of_stock"`
	CaseSize      int      `json:"case_size,omitempty"`
}
