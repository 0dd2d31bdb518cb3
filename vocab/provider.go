package vocab

import "context"

// Provider streams vocabulary records. Records calls fn once per record, in
// source order, and stops at the first error returned by fn. Implementations
// must hand fn a freshly allocated vector for every record; the store keeps
// the slice without copying it.
type Provider interface {
	Records(ctx context.Context, fn func(token string, vec []float32) error) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, fn func(token string, vec []float32) error) error

// Records implements Provider.
func (f ProviderFunc) Records(ctx context.Context, fn func(token string, vec []float32) error) error {
	return f(ctx, fn)
}

// Record is a single in-memory vocabulary entry.
type Record struct {
	Token  string
	Vector []float32
}

// Records is an in-memory Provider, mostly useful for tests and small
// hand-made vocabularies.
type Records []Record

// Records implements Provider.
func (r Records) Records(ctx context.Context, fn func(token string, vec []float32) error) error {
	for _, rec := range r {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(rec.Token, append([]float32(nil), rec.Vector...)); err != nil {
			return err
		}
	}
	return nil
}
