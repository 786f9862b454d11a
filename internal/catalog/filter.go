package catalog

import "strings"

// AllCategories is the selector value that disables category filtering.
const AllCategories = "Todos"

// Filter narrows an already-fetched product list the same way the
// storefront toolbar does: exact category name, exact subcategory id
// (only meaningful together with a category), and a case-insensitive
// substring match on title or description. All three are ANDed.
func Filter(products []Product, category, subcategoryID, search string) []Product {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, category) {
			continue
		}
		if !matchSubcategory(p, category, subcategoryID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchCategory(p Product, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return p.CategoryName == category
}

func matchSubcategory(p Product, category, subcategoryID string) bool {
	if subcategoryID == "" || category == "" || category == AllCategories {
		return true
	}
	return p.SubcategoryID != nil && *p.SubcategoryID == subcategoryID
}
