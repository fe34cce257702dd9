package stack

// The stack package contains a generic slice backed stack whose contents stay
// sorted, used for tracking monotonic state such as cumulative tx counts per
// height, and answering bisect queries against it.

import (
	"fmt"
	"sync"

	"github.com/lbryio/bisect/internal/metrics"
	"github.com/lbryio/bisect/search"
	"github.com/lbryio/lbry.go/v2/extras/errors"
	"golang.org/x/exp/constraints"
)

// ErrOutOfOrder is returned by Push when the value is less than the tip.
var ErrOutOfOrder = errors.Base("value out of order")

type SliceBacked[T constraints.Ordered] struct {
	slice []T
	len   uint32
	mut   sync.RWMutex
}

func NewSliceBacked[T constraints.Ordered](size int) *SliceBacked[T] {
	return &SliceBacked[T]{
		slice: make([]T, size),
		len:   0,
		mut:   sync.RWMutex{},
	}
}

// Push appends v. The stack is left unchanged if v would break the
// non-decreasing order.
func (s *SliceBacked[T]) Push(v T) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.len > 0 && v < s.slice[s.len-1] {
		metrics.OutOfOrderPushCounter.Inc()
		return errors.Prefix(fmt.Sprintf("push %v onto tip %v", v, s.slice[s.len-1]), ErrOutOfOrder)
	}

	if s.len == uint32(len(s.slice)) {
		s.slice = append(s.slice, v)
	} else {
		s.slice[s.len] = v
	}
	s.len++
	return nil
}

func (s *SliceBacked[T]) Pop() (T, bool) {
	s.mut.Lock()
	defer s.mut.Unlock()

	var zero T
	if s.len == 0 {
		return zero, false
	}
	s.len--
	v := s.slice[s.len]
	s.slice[s.len] = zero
	return v, true
}

func (s *SliceBacked[T]) Get(i uint32) (T, bool) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	if i >= s.len {
		var zero T
		return zero, false
	}
	return s.slice[i], true
}

func (s *SliceBacked[T]) GetTip() (T, bool) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	if s.len == 0 {
		var zero T
		return zero, false
	}
	return s.slice[s.len-1], true
}

func (s *SliceBacked[T]) Len() uint32 {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.len
}

func (s *SliceBacked[T]) Cap() int {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return cap(s.slice)
}

// GetSlice returns a copy of the live elements.
func (s *SliceBacked[T]) GetSlice() []T {
	s.mut.RLock()
	defer s.mut.RUnlock()

	res := make([]T, s.len)
	copy(res, s.slice[:s.len])
	return res
}

// Search returns the index of an element equal to v.
func (s *SliceBacked[T]) Search(v T) (uint32, bool) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	i, ok := search.Search(s.slice[:s.len], v)
	metrics.Observe("stack_search", int(s.len), ok)
	if !ok {
		return 0, false
	}
	return uint32(i), true
}

func (s *SliceBacked[T]) InsertionPoint(v T) uint32 {
	s.mut.RLock()
	defer s.mut.RUnlock()

	metrics.ObservePosition("stack_insertion_point", int(s.len))
	return uint32(search.InsertionPoint(s.slice[:s.len], v))
}

// BisectRight returns the number of elements less than or equal to v.
func (s *SliceBacked[T]) BisectRight(v T) uint32 {
	s.mut.RLock()
	defer s.mut.RUnlock()

	metrics.ObservePosition("stack_bisect_right", int(s.len))
	return uint32(search.BisectRight(s.slice[:s.len], v))
}

// BisectRightPair bisects a and b against the same snapshot. With cumulative
// tx counts this maps a tx number and its root tx number to their heights.
func (s *SliceBacked[T]) BisectRightPair(a, b T) (uint32, uint32) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	live := s.slice[:s.len]
	metrics.ObservePosition("stack_bisect_right", len(live))
	metrics.ObservePosition("stack_bisect_right", len(live))
	return uint32(search.BisectRight(live, a)), uint32(search.BisectRight(live, b))
}
