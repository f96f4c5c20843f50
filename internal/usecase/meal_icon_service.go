package usecase

import (
	"log"

	"github.com/plateup/backend/internal/domain"
)

// DefaultIconLimit is the number of glyphs shown for a meal when no limit is given
const DefaultIconLimit = 3

// MealIconServiceConfig holds configuration for the meal icon service
type MealIconServiceConfig struct {
	DefaultLimit       int
	EnableDebugLogging bool
}

// MealIconService derives a bounded, de-duplicated glyph summary for meals
type MealIconService struct {
	resolver           domain.IconResolver
	defaultLimit       int
	enableDebugLogging bool
}

// NewMealIconService creates a new meal icon service with dependencies
func NewMealIconService(resolver domain.IconResolver, config MealIconServiceConfig) *MealIconService {
	if resolver == nil {
		resolver = NewIconResolver(IconResolverConfig{})
	}

	limit := config.DefaultLimit
	if limit <= 0 {
		limit = DefaultIconLimit
	}

	return &MealIconService{
		resolver:           resolver,
		defaultLimit:       limit,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// DefaultLimit returns the limit applied when callers pass limit <= 0
func (s *MealIconService) DefaultLimit() int {
	return s.defaultLimit
}

// IngredientIcon returns the precomputed icon of ingredient, or resolves its name
func (s *MealIconService) IngredientIcon(ingredient domain.Ingredient) domain.Glyph {
	if ingredient.Icon != "" {
		return ingredient.Icon
	}
	return s.resolver.Resolve(ingredient.Name)
}

// Icons returns up to limit unique glyphs for ingredients in first-occurrence
// order. limit <= 0 uses the service default. An empty ingredient list yields
// a single DefaultGlyph.
func (s *MealIconService) Icons(ingredients []domain.Ingredient, limit int) []domain.Glyph {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if len(ingredients) == 0 {
		return []domain.Glyph{domain.DefaultGlyph}
	}

	glyphs := make([]domain.Glyph, len(ingredients))
	for i, ingredient := range ingredients {
		glyphs[i] = s.IngredientIcon(ingredient)
	}

	icons := FirstUnique(glyphs, limit)

	if s.enableDebugLogging {
		log.Printf("[MEAL] %d ingredients → %d icons (limit %d): %v", len(ingredients), len(icons), limit, icons)
	}

	return icons
}

// MealIcons returns Icons for the meal's analysed ingredients. A meal without
// analysis yields a single DefaultGlyph.
func (s *MealIconService) MealIcons(meal *domain.Meal, limit int) []domain.Glyph {
	return s.Icons(meal.Ingredients(), limit)
}

// DisplayIcon returns the single glyph representing meal
func (s *MealIconService) DisplayIcon(meal *domain.Meal) domain.Glyph {
	icons := s.MealIcons(meal, 1)
	if len(icons) == 0 {
		return domain.DefaultGlyph
	}
	return icons[0]
}
