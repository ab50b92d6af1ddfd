package models

// AllCategories is the category id that selects every category
const AllCategories = "all"

// Category describes one sidebar section of the gallery
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
}

// CategoryIcon returns the icon for a category, preferring the one on the descriptor
func CategoryIcon(c Category) string {
	if c.Icon != "" {
		return c.Icon
	}
	if icon, ok := categoryIcons[c.ID]; ok {
		return icon
	}
	return "folder"
}

// BadgeClass returns the CSS class of the badge shown on a card
func BadgeClass(categoryID string) string {
	if class, ok := badgeClasses[categoryID]; ok {
		return class
	}
	return "category-badge"
}

// BadgeLabel returns the short category label shown on a card
func BadgeLabel(categoryID string) string {
	if label, ok := badgeLabels[categoryID]; ok {
		return label
	}
	return categoryID
}

var categoryIcons = map[string]string{
	"ai-gems":             "auto_awesome",
	"processing-sketches": "code",
	"ai-simulations":      "hub",
	"huggingface-apps":    "cloud",
	"audio-max-msp":       "music_note",
}

var badgeClasses = map[string]string{
	"ai-gems":             "category-badge ai-gems",
	"processing-sketches": "category-badge processing",
	"ai-simulations":      "category-badge simulation",
	"huggingface-apps":    "category-badge huggingface",
	"audio-max-msp":       "category-badge audio",
}

var badgeLabels = map[string]string{
	"ai-gems":             "AI Gems",
	"processing-sketches": "Processing",
	"ai-simulations":      "Simulation",
	"huggingface-apps":    "Hugging Face",
	"audio-max-msp":       "Audio / MSP",
}
