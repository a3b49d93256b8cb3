// Package stream provides lazy combinators over sequences of values.
//
// A Stream does no work until a terminal operation (Collect, Each, Sink)
// drives it, and every terminal operation honors context cancellation.
// Same-type transformations are methods; type-changing transformations (Map,
// Chunk) are package functions because Go methods cannot introduce type
// parameters.
//
//	evens, err := stream.From(1, 2, 3, 4, 5, 6).
//	    Filter(func(v int) bool { return v%2 == 0 }).
//	    Take(2).
//	    Collect(ctx)
//
// Sink consumes a stream with bounded parallelism, stopping on the first
// error:
//
//	err := s.Sink(ctx, 8, func(ctx context.Context, v Job) error {
//	    return process(ctx, v)
//	})
package stream
