// Package combination enumerates the combinations (with repetition) of a
// fixed list of denominations that sum exactly to a target.
//
// The search is a depth-first backtracking walk over two choices per step:
// take the current denomination again, or advance to the next one. Taking
// again is always explored first, so combinations are emitted in a
// deterministic "repeat-before-advance" discovery order. Picks never move
// backwards in the list, which means every combination is emitted once.
//
// For denominations [1 2] and target 3 the discovery order is:
//
//	1 1 1
//	1 2
package combination

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveDenomination is returned when a denomination is zero or negative.
	ErrNonPositiveDenomination = errors.New("denominations must be positive")

	// ErrStop can be returned by a Sink to end the search early without an error.
	ErrStop = errors.New("stop enumeration")
)

const (
	// maxPreallocatedPath caps the initial path capacity for very deep searches.
	maxPreallocatedPath = 1024

	// cancelCheckInterval is the number of visited nodes between context checks.
	cancelCheckInterval = 1024
)

// Sink receives each complete combination in discovery order.
// The slice is a fresh copy owned by the sink.
type Sink interface {
	Emit(combination []int) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(combination []int) error

// Emit calls f(combination).
func (f SinkFunc) Emit(combination []int) error {
	return f(combination)
}

// Validate reports whether every denomination is positive.
func Validate(denominations []int) error {
	for i, d := range denominations {
		if d <= 0 {
			return fmt.Errorf("%w: denominations[%d] = %d", ErrNonPositiveDenomination, i, d)
		}
	}
	return nil
}

// Enumerate emits every combination of denominations summing to target.
//
// A negative target yields nothing. A target of zero yields exactly one
// empty combination. If the sink returns ErrStop the search ends and
// Enumerate returns nil; any other sink error ends the search and is
// returned unchanged.
func Enumerate(denominations []int, target int, sink Sink) error {
	return EnumerateContext(context.Background(), denominations, target, sink)
}

// EnumerateContext is Enumerate bounded by ctx. The context is checked
// before every emission and periodically while the search explores
// branches that emit nothing, so a fruitless search still stops promptly.
// On cancellation it returns ctx.Err().
func EnumerateContext(ctx context.Context, denominations []int, target int, sink Sink) error {
	if err := Validate(denominations); err != nil {
		return err
	}

	s := &search{
		ctx:           ctx,
		done:          ctx.Done(),
		denominations: denominations,
		sink:          sink,
	}
	if target > 0 && len(denominations) > 0 {
		depth := target / minOf(denominations)
		if depth > maxPreallocatedPath {
			depth = maxPreallocatedPath
		}
		s.path = make([]int, 0, depth)
	}

	err := s.walk(0, target)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// Collect returns all combinations in discovery order.
func Collect(denominations []int, target int) ([][]int, error) {
	var out [][]int
	err := Enumerate(denominations, target, SinkFunc(func(c []int) error {
		out = append(out, c)
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of combinations without retaining them.
func Count(denominations []int, target int) (int, error) {
	n := 0
	err := Enumerate(denominations, target, SinkFunc(func([]int) error {
		n++
		return nil
	}))
	return n, err
}

// Sum returns the sum of a combination.
func Sum(combination []int) int {
	total := 0
	for _, v := range combination {
		total += v
	}
	return total
}

// search holds the only mutable state of an enumeration: the path.
type search struct {
	ctx           context.Context
	done          <-chan struct{}
	denominations []int
	path          []int
	sink          Sink
	visited       int
}

// walk explores (index, remaining). Invariant: Sum(path)+remaining == target.
func (s *search) walk(index, remaining int) error {
	if s.done != nil {
		s.visited++
		if s.visited%cancelCheckInterval == 0 || remaining == 0 {
			if err := s.ctx.Err(); err != nil {
				return err
			}
		}
	}

	if remaining == 0 {
		found := make([]int, len(s.path))
		copy(found, s.path)
		return s.sink.Emit(found)
	}
	if remaining < 0 || index >= len(s.denominations) {
		return nil
	}

	d := s.denominations[index]
	s.path = append(s.path, d)
	err := s.walk(index, remaining-d)
	s.path = s.path[:len(s.path)-1]
	if err != nil {
		return err
	}

	return s.walk(index+1, remaining)
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
