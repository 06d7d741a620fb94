package scopes

// Renderer returns the layout hints for a category row. Even rows are laid
// out as a grid, odd rows as a carousel.
func Renderer(row int) map[string]any {
	layout := "grid"
	if row%2 != 0 {
		layout = "carousel"
	}
	return map[string]any{
		"category-layout": layout,
		"card-size":       "small",
	}
}

// Components maps card components to result fields.
func Components() map[string]any {
	return map[string]any{
		"art": map[string]any{
			"aspect-ratio": "1.0",
			"field":        "art",
		},
		"title": "title",
	}
}
