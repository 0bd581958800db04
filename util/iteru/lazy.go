package iteru

import (
	"iter"
)

// MapErr adapts seq into a sequence of f's results. Nothing is evaluated
// until the sequence is ranged over and every range starts a fresh pass over
// seq. When f fails for an element, that element is yielded as (zero, err)
// and iteration continues with the next one; callers that treat the error as
// fatal simply stop ranging.
func MapErr[K, V, T any](seq iter.Seq2[K, V], f func(K, V) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for k, v := range seq {
			if !yield(f(k, v)) {
				return
			}
		}
	}
}

// FlatMapErr maps every successful element of seq to a sequence and yields
// the elements of those sequences in order. Errors from seq are passed
// through.
func FlatMapErr[T, U any](seq iter.Seq2[T, error], f func(T) iter.Seq2[U, error]) iter.Seq2[U, error] {
	return func(yield func(U, error) bool) {
		for t, err := range seq {
			if err != nil {
				var zero U
				if !yield(zero, err) {
					return
				}
				continue
			}
			for u, err := range f(t) {
				if !yield(u, err) {
					return
				}
			}
		}
	}
}

// FilterErr yields the elements for which keep returns true. An error from
// seq or from keep is yielded in place of the element.
func FilterErr[T any](seq iter.Seq2[T, error], keep func(T) (bool, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for t, err := range seq {
			if err == nil {
				var ok bool
				ok, err = keep(t)
				if err == nil && !ok {
					continue
				}
			}
			if !yield(t, err) {
				return
			}
		}
	}
}

// Take2 yields at most the first n pairs of seq.
func Take2[K, V any](seq iter.Seq2[K, V], n int) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for k, v := range seq {
			if !yield(k, v) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	}
}

// Count2 returns the number of pairs in seq.
func Count2[K, V any](seq iter.Seq2[K, V]) int {
	count := 0
	for range seq {
		count++
	}
	return count
}

// CollectErr collects the elements of seq, stopping at the first error.
func CollectErr[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for t, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FindErr returns the first element for which match returns true. Errors
// stop the search.
func FindErr[T any](seq iter.Seq2[T, error], match func(T) (bool, error)) (T, bool, error) {
	var zero T
	for t, err := range seq {
		if err != nil {
			return zero, false, err
		}
		ok, err := match(t)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return t, true, nil
		}
	}
	return zero, false, nil
}
