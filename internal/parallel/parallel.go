// Package parallel runs work over the sub-views of a tensor concurrently.
package parallel

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/idx/internal/tensor"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Maximum number of goroutines running at once.
	MinItems   int  // Below this many items the work runs sequentially.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinItems:   4,
	}
}

// For calls f(i) for i in [0, n) and returns the first error.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || n < cfg.MinItems || cfg.NumWorkers < 2 {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for i := 0; i < n; i++ {
		g.Go(func() error { return f(i) })
	}
	return g.Wait()
}

// ForEachSlice calls fn with every sub-view of t along dimension d,
// running up to cfg.NumWorkers calls at once. Each view is released
// after fn returns. Calls that write must touch disjoint elements, which
// holds whenever fn only writes through the slice it is given.
func ForEachSlice[T any](t *tensor.Tensor[T], d int, fn func(i int, slice *tensor.Tensor[T]) error, cfg Config) error {
	if t.Released() {
		return fmt.Errorf("for each slice: %w", tensor.ErrReleased)
	}
	if d < 0 || d >= t.Order() {
		return fmt.Errorf("for each slice: %w: dimension %d, order is %d", tensor.ErrDimension, d, t.Order())
	}
	return For(t.Size(d), func(i int) error {
		slice, err := t.Select(d, i)
		if err != nil {
			return err
		}
		defer slice.Release()
		return fn(i, slice)
	}, cfg)
}

// Apply replaces every element x of t with fn(x), splitting the work
// along dimension 0.
func Apply[T any](t *tensor.Tensor[T], fn func(T) T, cfg Config) error {
	if t.Order() == 0 {
		return tensor.Apply(t, fn)
	}
	return ForEachSlice(t, 0, func(_ int, slice *tensor.Tensor[T]) error {
		return tensor.Apply(slice, fn)
	}, cfg)
}
