package usecase

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/plateup/backend/internal/domain"
)

// GlyphTable is an immutable ordered list of keyword→glyph records.
// It is safe for concurrent use once built.
type GlyphTable struct {
	entries  []domain.GlyphEntry
	priority []domain.GlyphEntry
	index    map[string]int
}

// NewGlyphTable validates entries and builds the lookup index and the
// substring priority order (longest keyword first, then category, then
// declaration order).
func NewGlyphTable(entries []domain.GlyphEntry) (*GlyphTable, error) {
	t := &GlyphTable{
		entries: make([]domain.GlyphEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		switch {
		case e.Keyword == "" || strings.TrimSpace(e.Keyword) != e.Keyword:
			return nil, fmt.Errorf("%w: entry %d has empty or padded keyword %q", domain.ErrInvalidGlyphEntry, i, e.Keyword)
		case strings.ToLower(e.Keyword) != e.Keyword:
			return nil, fmt.Errorf("%w: keyword %q must be lowercase", domain.ErrInvalidGlyphEntry, e.Keyword)
		case e.Glyph == "":
			return nil, fmt.Errorf("%w: keyword %q has no glyph", domain.ErrInvalidGlyphEntry, e.Keyword)
		case !e.Category.Valid():
			return nil, fmt.Errorf("%w: keyword %q has unknown category %d", domain.ErrInvalidGlyphEntry, e.Keyword, e.Category)
		}
		if _, dup := t.index[e.Keyword]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateKeyword, e.Keyword)
		}
		t.index[e.Keyword] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	t.priority = make([]domain.GlyphEntry, len(t.entries))
	copy(t.priority, t.entries)
	sort.SliceStable(t.priority, func(i, j int) bool {
		li := utf8.RuneCountInString(t.priority[i].Keyword)
		lj := utf8.RuneCountInString(t.priority[j].Keyword)
		if li != lj {
			return li > lj
		}
		return t.priority[i].Category < t.priority[j].Category
	})

	return t, nil
}

// MustNewGlyphTable is like NewGlyphTable but panics on invalid input
func MustNewGlyphTable(entries []domain.GlyphEntry) *GlyphTable {
	t, err := NewGlyphTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the entry whose keyword equals key exactly
func (t *GlyphTable) Lookup(key string) (domain.GlyphEntry, bool) {
	i, ok := t.index[key]
	if !ok {
		return domain.GlyphEntry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of the entries in declaration order
func (t *GlyphTable) Entries() []domain.GlyphEntry {
	out := make([]domain.GlyphEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ByPriority returns a copy of the entries in substring-match priority order
func (t *GlyphTable) ByPriority() []domain.GlyphEntry {
	out := make([]domain.GlyphEntry, len(t.priority))
	copy(out, t.priority)
	return out
}

// Len returns the number of entries
func (t *GlyphTable) Len() int {
	return len(t.entries)
}

// firstContained returns the highest priority entry whose keyword occurs in s
func (t *GlyphTable) firstContained(s string) (domain.GlyphEntry, bool) {
	for _, e := range t.priority {
		if strings.Contains(s, e.Keyword) {
			return e, true
		}
	}
	return domain.GlyphEntry{}, false
}

var defaultGlyphTable = MustNewGlyphTable(defaultGlyphEntries())

// DefaultGlyphTable returns the process-wide canonical table
func DefaultGlyphTable() *GlyphTable {
	return defaultGlyphTable
}

func defaultGlyphEntries() []domain.GlyphEntry {
	var entries []domain.GlyphEntry
	add := func(c domain.Category, pairs ...string) {
		for i := 0; i+1 < len(pairs); i += 2 {
			entries = append(entries, domain.GlyphEntry{
				Keyword:  pairs[i],
				Glyph:    domain.Glyph(pairs[i+1]),
				Category: c,
			})
		}
	}

	add(domain.CategoryFruits,
		"banana", "🍌",
		"apple", "🍎",
		"orange", "🍊",
		"grape", "🍇",
		"strawberry", "🍓",
		"blueberry", "🫐",
		"raspberry", "🫐",
		"pear", "🍐",
		"peach", "🍑",
		"pineapple", "🍍",
		"watermelon", "🍉",
		"melon", "🍈",
		"lemon", "🍋",
		"lime", "🍋",
		"cherry", "🍒",
		"mango", "🥭",
		"coconut", "🥥",
		"kiwi", "🥝",
	)

	add(domain.CategoryVegetables,
		"broccoli", "🥦",
		"carrot", "🥕",
		"corn", "🌽",
		"mushroom", "🍄",
		"tomato", "🍅",
		"cucumber", "🥒",
		"lettuce", "🥬",
		"salad", "🥗",
		"pepper", "🌶️",
		"bell pepper", "🫑",
		"onion", "🧅",
		"garlic", "🧄",
		"potato", "🥔",
		"sweet potato", "🍠",
		"eggplant", "🍆",
		"avocado", "🥑",
	)

	add(domain.CategoryProteins,
		"chicken", "🍗",
		"turkey", "🦃",
		"beef", "🥩",
		"steak", "🥩",
		"pork", "🥓",
		"bacon", "🥓",
		"ham", "🍖",
		"fish", "🐟",
		"salmon", "🐟",
		"tuna", "🐟",
		"shrimp", "🦐",
		"lobster", "🦞",
		"crab", "🦀",
		"egg", "🥚",
		"tofu", "🟦",
	)

	add(domain.CategoryGrains,
		"bread", "🍞",
		"toast", "🍞",
		"bagel", "🥯",
		"croissant", "🥐",
		"rice", "🍚",
		"pasta", "🍝",
		"spaghetti", "🍝",
		"noodles", "🍜",
		"pizza", "🍕",
		"sandwich", "🥪",
		"burger", "🍔",
		"taco", "🌮",
		"burrito", "🌯",
		"wrap", "🌯",
		"pancake", "🥞",
		"waffle", "🧇",
		"cereal", "🥣",
		"oatmeal", "🥣",
	)

	add(domain.CategoryDairy,
		"milk", "🥛",
		"cheese", "🧀",
		"yogurt", "🥛",
		"butter", "🧈",
		"ice cream", "🍨",
	)

	add(domain.CategoryDrinks,
		"water", "💧",
		"coffee", "☕",
		"tea", "🍵",
		"juice", "🧃",
		"smoothie", "🥤",
		"protein shake", "🥤",
		"soda", "🥤",
		"beer", "🍺",
		"wine", "🍷",
	)

	add(domain.CategorySnacks,
		"cookie", "🍪",
		"cake", "🍰",
		"pie", "🥧",
		"donut", "🍩",
		"chocolate", "🍫",
		"candy", "🍬",
		"chips", "🍿",
		"popcorn", "🍿",
		"pretzel", "🥨",
		"nuts", "🥜",
		"peanut", "🥜",
		"almond", "🌰",
	)

	add(domain.CategoryCuisine,
		"sushi", "🍱",
		"ramen", "🍜",
		"dumpling", "🥟",
		"spring roll", "🥟",
	)

	add(domain.CategoryOther,
		"soup", "🍲",
		"stew", "🍲",
		"curry", "🍛",
		"honey", "🍯",
		"maple syrup", "🥞",
		"jam", "🍓",
		"peanut butter", "🥜",
		"olive oil", "🫒",
		"oil", "🛢️",
		"sauce", "🥫",
		"salt", "🧂",
		"herb", "🌿",
		"spice", "🌶️",
	)

	return entries
}
