package domain

// Glyph is a single pictograph shown next to a food or meal
type Glyph string

// DefaultGlyph is returned whenever no keyword matches a food name
const DefaultGlyph Glyph = "🍽️"

// Category groups glyph keywords. The declaration order is also the
// tie-break order used when two keywords of equal length match.
type Category int

const (
	CategoryFruits Category = iota
	CategoryVegetables
	CategoryProteins
	CategoryGrains
	CategoryDairy
	CategoryDrinks
	CategorySnacks
	CategoryCuisine
	CategoryOther
)

var categoryNames = [...]string{
	CategoryFruits:     "fruits",
	CategoryVegetables: "vegetables",
	CategoryProteins:   "proteins",
	CategoryGrains:     "grains",
	CategoryDairy:      "dairy",
	CategoryDrinks:     "drinks",
	CategorySnacks:     "snacks",
	CategoryCuisine:    "cuisine",
	CategoryOther:      "other",
}

// String returns the lowercase category name
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the declared categories
func (c Category) Valid() bool {
	return c >= CategoryFruits && c <= CategoryOther
}

// GlyphEntry associates a lowercase keyword fragment with a glyph
type GlyphEntry struct {
	Keyword  string   `json:"keyword"`
	Glyph    Glyph    `json:"icon"`
	Category Category `json:"-"`
}

// MatchKind describes how a food name was resolved to a glyph
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchDefault   MatchKind = "default"
)

// Resolution is the outcome of resolving a single food name.
// Keyword and Category are only meaningful when Match is not MatchDefault.
type Resolution struct {
	Input      string    `json:"name"`
	Normalized string    `json:"normalized"`
	Icon       Glyph     `json:"icon"`
	Match      MatchKind `json:"match"`
	Keyword    string    `json:"keyword,omitempty"`
	Category   string    `json:"category,omitempty"`
}
