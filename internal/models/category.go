package models

// Category is one of the fixed expense classification tags.
type Category string

// Expense categories, in display order.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryHousing       Category = "housing"
	CategoryEducation     Category = "education"
	CategoryTravel        Category = "travel"
	CategoryOther         Category = "other"
)

// Fallback display values for a tag missing from the table.
const (
	DefaultCategoryName  = "Unknown"
	DefaultCategoryColor = "#B8B8B8"
	DefaultCategoryIcon  = "CircleDot"
)

type categoryDisplay struct {
	name  string
	color string
	icon  string
}

var categoryOrder = [...]Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryHousing,
	CategoryEducation,
	CategoryTravel,
	CategoryOther,
}

var categoryTable = map[Category]categoryDisplay{
	CategoryFood:          {"Food & Dining", "#FF6B6B", "UtensilsCrossed"},
	CategoryTransport:     {"Transportation", "#48BEFF", "Car"},
	CategoryUtilities:     {"Utilities", "#8C82FC", "Lightbulb"},
	CategoryEntertainment: {"Entertainment", "#FF9F1C", "Tv"},
	CategoryShopping:      {"Shopping", "#FF85EA", "ShoppingBag"},
	CategoryHealth:        {"Health & Medical", "#4ECDC4", "Stethoscope"},
	CategoryHousing:       {"Housing & Rent", "#8A9BA8", "Home"},
	CategoryEducation:     {"Education", "#41EAD4", "GraduationCap"},
	CategoryTravel:        {"Travel", "#FBAD50", "Plane"},
	CategoryOther:         {"Other", "#B8B8B8", "CircleDot"},
}

// Categories returns every category in stable display order.
// The returned slice is a fresh copy.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder[:])
	return out
}

// Valid reports whether c is one of the known tags.
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Index returns the display position of c, or -1 for an unknown tag.
func (c Category) Index() int {
	for i, known := range categoryOrder {
		if known == c {
			return i
		}
	}
	return -1
}

func lookupDisplay(c Category) categoryDisplay {
	if d, ok := categoryTable[c]; ok {
		return d
	}
	return categoryDisplay{DefaultCategoryName, DefaultCategoryColor, DefaultCategoryIcon}
}

// DisplayName returns the human-readable name of a category.
func DisplayName(c Category) string { return lookupDisplay(c).name }

// DisplayColor returns the hex color used for a category.
func DisplayColor(c Category) string { return lookupDisplay(c).color }

// DisplayIcon returns the icon key used for a category.
func DisplayIcon(c Category) string { return lookupDisplay(c).icon }
