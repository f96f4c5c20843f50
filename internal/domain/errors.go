package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidGlyphEntry is returned when a glyph table entry is malformed
	ErrInvalidGlyphEntry = errors.New("invalid glyph entry")

	// ErrDuplicateKeyword is returned when a glyph table declares the same keyword twice
	ErrDuplicateKeyword = errors.New("duplicate glyph keyword")
)
