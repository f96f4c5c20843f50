package usecase

// Unique returns items with duplicates removed, keeping the first occurrence
// of each element in its original position.
func Unique[T comparable](items []T) []T {
	return FirstUnique(items, len(items))
}

// FirstUnique returns at most n distinct elements of items in first-occurrence
// order. It stops scanning as soon as n elements have been collected.
func FirstUnique[T comparable](items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}

	seen := make(map[T]struct{}, min(n, len(items)))
	out := make([]T, 0, min(n, len(items)))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out
}
