package category

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type Subcategory struct {
	ID           string `json:"id"`
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// SaveCategoryRequest payload of creation and update.
// swagger:model SaveCategoryRequest
type SaveCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// SaveSubcategoryRequest payload of creation and update.
// swagger:model SaveSubcategoryRequest
type SaveSubcategoryRequest struct {
	CategoryID   string `json:"category_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}
