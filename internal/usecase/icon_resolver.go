package usecase

import (
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/plateup/backend/internal/domain"
)

// IconResolverConfig holds configuration for the icon resolver
type IconResolverConfig struct {
	Table              *GlyphTable
	EnableDebugLogging bool
}

// IconResolver maps free-text food names to glyphs using a GlyphTable.
// It holds no mutable state and is safe for concurrent use.
type IconResolver struct {
	table              *GlyphTable
	enableDebugLogging bool
}

// NewIconResolver creates a resolver. A nil table falls back to DefaultGlyphTable.
func NewIconResolver(config IconResolverConfig) *IconResolver {
	table := config.Table
	if table == nil {
		table = DefaultGlyphTable()
	}

	return &IconResolver{
		table:              table,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Table returns the table backing this resolver
func (r *IconResolver) Table() *GlyphTable {
	return r.table
}

// Resolve returns the glyph for foodName. It never returns an empty glyph.
func (r *IconResolver) Resolve(foodName string) domain.Glyph {
	return r.Explain(foodName).Icon
}

// Explain resolves foodName and reports how the glyph was chosen:
// exact keyword match, then highest priority substring match, then the default glyph.
func (r *IconResolver) Explain(foodName string) domain.Resolution {
	normalized := NormalizeFoodName(foodName)
	res := domain.Resolution{
		Input:      foodName,
		Normalized: normalized,
		Icon:       domain.DefaultGlyph,
		Match:      domain.MatchDefault,
	}

	if e, ok := r.table.Lookup(normalized); ok {
		res.Icon, res.Match = e.Glyph, domain.MatchExact
		res.Keyword, res.Category = e.Keyword, e.Category.String()
	} else if e, ok := r.table.firstContained(normalized); ok {
		res.Icon, res.Match = e.Glyph, domain.MatchSubstring
		res.Keyword, res.Category = e.Keyword, e.Category.String()
	}

	if r.enableDebugLogging {
		log.Printf("[ICON] %q → %s (match: %s, keyword: %q)", foodName, res.Icon, res.Match, res.Keyword)
	}

	return res
}

// NormalizeFoodName trims surrounding whitespace and case-folds s. Inner
// whitespace is left untouched.
//
// Two steps go beyond plain folding. NFKC first maps compatibility forms
// such as fullwidth letters to their canonical spelling. The string is then
// upper-cased before folding, because folding alone keeps letters like the
// dotless ı whose upper-case form folds to a different letter; this keeps
// NormalizeFoodName(s) == NormalizeFoodName(strings.ToUpper(s)).
func NormalizeFoodName(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToUpper(norm.NFKC.String(s))
	// Casers are stateful, so one is created per call.
	s = cases.Fold().String(s)
	return strings.TrimSpace(s)
}
