package model

// WordContainer is anything that can answer whether it holds a word form.
type WordContainer interface {
	Has(word string) bool
}

// Set is an unordered collection of unique values.
type Set[T comparable] map[T]struct{}

// NewSet returns a set holding the given values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Add(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

func (s Set[T]) Remove(values ...T) {
	for _, v := range values {
		delete(s, v)
	}
}

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int {
	return len(s)
}

func (s Set[T]) Clone() Set[T] {
	c := make(Set[T], len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// Union returns a new set with the members of s and other.
func (s Set[T]) Union(other Set[T]) Set[T] {
	u := s.Clone()
	for v := range other {
		u[v] = struct{}{}
	}
	return u
}

// Difference returns a new set with the members of s not in other.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	d := make(Set[T], len(s))
	for v := range s {
		if !other.Has(v) {
			d[v] = struct{}{}
		}
	}
	return d
}

// Intersect returns a new set with the members present in both sets.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	i := make(Set[T])
	for v := range small {
		if large.Has(v) {
			i[v] = struct{}{}
		}
	}
	return i
}

// Overlaps reports whether the sets share at least one member.
func (s Set[T]) Overlaps(other Set[T]) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for v := range small {
		if large.Has(v) {
			return true
		}
	}
	return false
}

// Slice returns the members in no particular order.
func (s Set[T]) Slice() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// UnionAll folds the given sets into a single new set.
func UnionAll[T comparable](sets ...Set[T]) Set[T] {
	u := make(Set[T])
	for _, s := range sets {
		for v := range s {
			u[v] = struct{}{}
		}
	}
	return u
}
