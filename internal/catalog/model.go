package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	CategoryID    *string `json:"category_id"`
	SubcategoryID *string `json:"subcategory_id"`
	// CategoryName is joined from categories at read time; products do
	// not store a copy of the name.
	CategoryName string  `json:"category"`
	IconName     string  `json:"icon_name,omitempty"`
	ImageURL     *string `json:"image_url"`
	// Price is NUMERIC in Postgres; nil means "price on request".
	Price           *decimal.Decimal `json:"price"`
	Characteristics Fields           `json:"characteristics,omitempty"`
	TechnicalSheet  Fields           `json:"technical_sheet,omitempty"`
	DisplayOrder    int              `json:"display_order"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	Q      string    `json:"q,omitempty"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
	Items  []Product `json:"items"`
}

// SaveProductRequest payload of creation and update.
// swagger:model SaveProductRequest
type SaveProductRequest struct {
	Title           string  `json:"title" example:"Milho Híbrido CV-220"`
	Description     string  `json:"description" example:"Alto potencial produtivo para safrinha"`
	CategoryID      *string `json:"category_id"`
	SubcategoryID   *string `json:"subcategory_id"`
	IconName        string  `json:"icon_name" example:"Sprout"`
	ImageURL        *string `json:"image_url"`
	Price           *string `json:"price" example:"389.90"`
	Characteristics Fields  `json:"characteristics"`
	TechnicalSheet  Fields  `json:"technical_sheet"`
	DisplayOrder    *int    `json:"display_order"`
	IsActive        *bool   `json:"is_active"`
}
