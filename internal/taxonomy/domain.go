// internal/taxonomy/domain.go
package taxonomy

// Category is one registered (mainCategory, subCategory) classification
// pair. The pair is the classification key for items and is immutable once
// registered.
type Category struct {
	MainCategory string `json:"mainCategory" db:"main_category"`
	SubCategory  string `json:"subCategory" db:"sub_category"`
}
