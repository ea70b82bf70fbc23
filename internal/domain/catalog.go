package domain

import "time"

// Category is one of the fixed storefront categories. The home page only
// surfaces products whose category matches a known slug; nothing validates
// the column, an unknown value simply never shows up.
type Category string

const (
	CategoryThaiTraditionalDress Category = "thai-traditional-dress"
	CategoryBridalDress          Category = "bridal-dress"
	CategoryGroomSuit            Category = "groom-suit"
)

// Categories returns the catalog categories in display order.
func Categories() []Category {
	return []Category{
		CategoryThaiTraditionalDress,
		CategoryBridalDress,
		CategoryGroomSuit,
	}
}

// Model is a look/style that groups rentable products. Business-domain
// naming, unrelated to MVC models.
type Model struct {
	ID       int64  `json:"id" db:"model_id"`
	Name     string `json:"name" db:"model_name"`
	ImageURL string `json:"image_url" db:"model_image"`
}

// Product is a single rentable item.
type Product struct {
	ID       int64    `json:"id" db:"products_id"`
	Name     string   `json:"name" db:"product_name"`
	ImageURL string   `json:"image_url" db:"products_image"`
	Price    float64  `json:"price" db:"price"`
	Category Category `json:"category" db:"category"`
	ModelID  *int64   `json:"model_id" db:"model_id"`
}

// ProductListing is a product joined with its owning model for the admin
// dashboard and product list pages.
type ProductListing struct {
	Product
	ModelName  string `json:"model_name" db:"model_name"`
	ModelImage string `json:"model_image" db:"model_image"`
}

// ProductEdit is an append-only audit snapshot written once per successful
// product edit, pairing the pre-edit and submitted values of every field.
type ProductEdit struct {
	ID          int64     `json:"id" db:"edit_id"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	OldName     string    `json:"old_name" db:"old_product_name"`
	NewName     string    `json:"new_name" db:"new_product_name"`
	OldImageURL string    `json:"old_image_url" db:"old_products_image"`
	NewImageURL string    `json:"new_image_url" db:"new_products_image"`
	OldPrice    float64   `json:"old_price" db:"old_price"`
	NewPrice    float64   `json:"new_price" db:"new_price"`
	OldCategory Category  `json:"old_category" db:"old_category"`
	NewCategory Category  `json:"new_category" db:"new_category"`
	OldModelID  *int64    `json:"old_model_id" db:"old_model_id"`
	NewModelID  *int64    `json:"new_model_id" db:"new_model_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DeletedProduct is an append-only audit snapshot of a product's live values
// taken at the moment of deletion.
type DeletedProduct struct {
	ID        int64     `json:"id" db:"deleted_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"product_name"`
	ImageURL  string    `json:"image_url" db:"products_image"`
	Price     float64   `json:"price" db:"price"`
	Category  Category  `json:"category" db:"category"`
	ModelID   *int64    `json:"model_id" db:"model_id"`
	DeletedAt time.Time `json:"deleted_at" db:"deleted_at"`
}
