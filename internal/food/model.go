package food

// Food is a menu entry as both backends expose it. Image is an opaque
// reference (URL or asset filename) that the UI layer resolves.
type Food struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// FormData carries the fields of the admin create/update form.
type FormData struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}
