package stream

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// errStop signals an early, successful end of iteration (e.g. Take).
var errStop = errors.New("stream: stop iteration")

// Stream is a lazy sequence of values. Building a stream performs no work;
// a terminal operation drives the whole pipeline.
type Stream[T any] struct {
	forEach func(ctx context.Context, yield func(T) error) error
}

// Generate creates a stream from a producer function. The producer calls
// emit for every value and must return emit's error unchanged, so early
// termination and cancellation propagate.
func Generate[T any](producer func(ctx context.Context, emit func(T) error) error) *Stream[T] {
	return &Stream[T]{forEach: producer}
}

// From creates a stream over the given items.
func From[T any](items ...T) *Stream[T] {
	return Generate(func(ctx context.Context, emit func(T) error) error {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(item); err != nil {
				return err
			}
		}
		return nil
	})
}

// FromChannel creates a stream draining ch until it closes or the context is
// cancelled.
func FromChannel[T any](ch <-chan T) *Stream[T] {
	return Generate(func(ctx context.Context, emit func(T) error) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case item, ok := <-ch:
				if !ok {
					return nil
				}
				if err := emit(item); err != nil {
					return err
				}
			}
		}
	})
}

// Filter keeps the values for which predicate returns true.
func (s *Stream[T]) Filter(predicate func(T) bool) *Stream[T] {
	return Generate(func(ctx context.Context, emit func(T) error) error {
		return s.forEach(ctx, func(v T) error {
			if !predicate(v) {
				return nil
			}
			return emit(v)
		})
	})
}

// Tap invokes callback for every value without altering the stream.
func (s *Stream[T]) Tap(callback func(T)) *Stream[T] {
	return Generate(func(ctx context.Context, emit func(T) error) error {
		return s.forEach(ctx, func(v T) error {
			callback(v)
			return emit(v)
		})
	})
}

// Take passes through at most count values.
func (s *Stream[T]) Take(count int) *Stream[T] {
	return Generate(func(ctx context.Context, emit func(T) error) error {
		if count <= 0 {
			return nil
		}
		seen := 0
		err := s.forEach(ctx, func(v T) error {
			if err := emit(v); err != nil {
				return err
			}
			seen++
			if seen >= count {
				return errStop
			}
			return nil
		})
		if errors.Is(err, errStop) {
			return nil
		}
		return err
	})
}

// Skip drops the first count values.
func (s *Stream[T]) Skip(count int) *Stream[T] {
	return Generate(func(ctx context.Context, emit func(T) error) error {
		skipped := 0
		return s.forEach(ctx, func(v T) error {
			if skipped < count {
				skipped++
				return nil
			}
			return emit(v)
		})
	})
}

// Merge interleaves this stream with others. Values arrive in completion
// order; the merged stream ends when every source is drained, or on the
// first source error.
func (s *Stream[T]) Merge(others ...*Stream[T]) *Stream[T] {
	sources := append([]*Stream[T]{s}, others...)
	return Generate(func(ctx context.Context, emit func(T) error) error {
		ch := make(chan T)

		g, gctx := errgroup.WithContext(ctx)
		for _, src := range sources {
			src := src
			g.Go(func() error {
				return src.forEach(gctx, func(v T) error {
					select {
					case ch <- v:
						return nil
					case <-gctx.Done():
						return gctx.Err()
					}
				})
			})
		}

		done := make(chan error, 1)
		go func() {
			done <- g.Wait()
			close(ch)
		}()

		for v := range ch {
			if err := emit(v); err != nil {
				// Unblock producers before reporting.
				go func() {
					for range ch {
					}
				}()
				<-done
				return err
			}
		}
		return <-done
	})
}

// Map transforms every value of s through fn.
func Map[T, R any](s *Stream[T], fn func(T) R) *Stream[R] {
	return Generate(func(ctx context.Context, emit func(R) error) error {
		return s.forEach(ctx, func(v T) error {
			return emit(fn(v))
		})
	})
}

// MapErr transforms every value of s through fn, stopping on the first
// error.
func MapErr[T, R any](s *Stream[T], fn func(context.Context, T) (R, error)) *Stream[R] {
	return Generate(func(ctx context.Context, emit func(R) error) error {
		return s.forEach(ctx, func(v T) error {
			r, err := fn(ctx, v)
			if err != nil {
				return err
			}
			return emit(r)
		})
	})
}

// Chunk groups consecutive values into slices of at most size elements. A
// final partial chunk is emitted if the stream ends mid-group.
func Chunk[T any](s *Stream[T], size int) *Stream[[]T] {
	if size <= 0 {
		size = 1
	}
	return Generate(func(ctx context.Context, emit func([]T) error) error {
		buf := make([]T, 0, size)
		err := s.forEach(ctx, func(v T) error {
			buf = append(buf, v)
			if len(buf) < size {
				return nil
			}
			out := buf
			buf = make([]T, 0, size)
			return emit(out)
		})
		if err != nil {
			return err
		}
		if len(buf) > 0 {
			return emit(buf)
		}
		return nil
	})
}

// Collect drives the stream and gathers every value into a slice.
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	err := s.forEach(ctx, func(v T) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Each drives the stream, invoking fn sequentially for every value and
// stopping on the first error.
func (s *Stream[T]) Each(ctx context.Context, fn func(context.Context, T) error) error {
	return s.forEach(ctx, func(v T) error {
		return fn(ctx, v)
	})
}

// Sink drives the stream, invoking fn for every value with at most
// parallelism concurrent invocations. The first error cancels in-flight work
// and is returned.
func (s *Stream[T]) Sink(ctx context.Context, parallelism int, fn func(context.Context, T) error) error {
	if parallelism <= 1 {
		return s.Each(ctx, fn)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	err := s.forEach(gctx, func(v T) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		g.Go(func() error {
			return fn(gctx, v)
		})
		return nil
	})

	if werr := g.Wait(); werr != nil {
		return werr
	}
	return err
}
