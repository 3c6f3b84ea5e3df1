package trending

import "fmt"

// displayNames maps category labels to presentation names. Unknown labels
// fall back to the label itself.
var displayNames = map[string]string{
	"ai":       "Artificial Intelligence",
	"tech":     "Technology",
	"business": "Business",
	"product":  "Product & Design",
	"general":  "Trending",
}

// DisplayName returns the human-readable name of a category.
func DisplayName(category string) string {
	if n, ok := displayNames[category]; ok {
		return n
	}
	return category
}

// FallbackTitle is the deterministic list title used when AI enrichment is
// disabled or its title call fails.
func FallbackTitle(category string, count int) string {
	return fmt.Sprintf("%s Top%d", DisplayName(category), count)
}
