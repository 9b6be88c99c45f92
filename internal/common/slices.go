package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Contains returns true if v is an element of s.
func Contains[S ~[]E, E comparable](s S, v E) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}

	return false
}

// Unique returns the distinct elements of s in first-seen order.
func Unique[S ~[]E, E comparable](s S) S {
	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		out = append(out, e)
	}

	return out
}

// AppendUnique appends the elements of items that dst does not hold yet,
// keeping their order.
func AppendUnique[S ~[]E, E comparable](dst S, items ...E) S {
	seen := make(map[E]struct{}, len(dst)+len(items))
	for _, e := range dst {
		seen[e] = struct{}{}
	}

	for _, e := range items {
		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		dst = append(dst, e)
	}

	return dst
}
