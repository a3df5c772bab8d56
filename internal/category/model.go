package category

// Category is read-only reference data used to populate selection controls.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
